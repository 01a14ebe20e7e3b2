package indicators

// EMA represents the Exponential Moving Average technical indicator.
// The recursion is seeded with the first observation and is defined from
// the first bar onward; there is no minimum-periods gate.
type EMA struct {
	span  int
	alpha float64
}

// NewEMA creates a new EMA indicator with the given span.
func NewEMA(span int) *EMA {
	return &EMA{
		span:  span,
		alpha: 2.0 / float64(span+1), // Standard EMA alpha calculation
	}
}

// Calculate computes the EMA over the whole input, one value per bar.
func (e *EMA) Calculate(values []float64) Series {
	out := make(Series, len(values))
	if len(values) == 0 {
		return out
	}

	prev := values[0]
	out[0] = Defined(prev)
	for i := 1; i < len(values); i++ {
		// EMA = (Value * Alpha) + (Previous EMA * (1 - Alpha))
		prev = (values[i] * e.alpha) + (prev * (1 - e.alpha))
		out[i] = Defined(prev)
	}
	return out
}

// calculateRaw is Calculate without the optional wrapping, for internal
// chaining (MACD signal line over the MACD series).
func (e *EMA) calculateRaw(values []float64) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	prev := values[0]
	out[0] = prev
	for i := 1; i < len(values); i++ {
		prev = (values[i] * e.alpha) + (prev * (1 - e.alpha))
		out[i] = prev
	}
	return out
}

// Span returns the configured span.
func (e *EMA) Span() int {
	return e.span
}

// GetName returns the indicator name.
func (e *EMA) GetName() string {
	return "EMA"
}
