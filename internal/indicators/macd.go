package indicators

// MACD computes the Moving Average Convergence Divergence line, its signal
// line, and the histogram. All three are defined from the first bar since
// the underlying EMAs are seeded immediately.
type MACD struct {
	fastPeriod   int
	slowPeriod   int
	signalPeriod int
}

// NewMACD creates a new MACD instance with specified fast, slow, and signal periods.
func NewMACD(fast, slow, signal int) *MACD {
	return &MACD{
		fastPeriod:   fast,
		slowPeriod:   slow,
		signalPeriod: signal,
	}
}

// Calculate computes the MACD line, signal line, and histogram series.
// The identity hist = macd - signal holds exactly at every bar.
func (m *MACD) Calculate(closes []float64) (macdLine, signalLine, histogram Series) {
	n := len(closes)
	macdLine = make(Series, n)
	signalLine = make(Series, n)
	histogram = make(Series, n)
	if n == 0 {
		return macdLine, signalLine, histogram
	}

	fast := NewEMA(m.fastPeriod).calculateRaw(closes)
	slow := NewEMA(m.slowPeriod).calculateRaw(closes)

	macdRaw := make([]float64, n)
	for i := 0; i < n; i++ {
		macdRaw[i] = fast[i] - slow[i]
	}
	signalRaw := NewEMA(m.signalPeriod).calculateRaw(macdRaw)

	for i := 0; i < n; i++ {
		macdLine[i] = Defined(macdRaw[i])
		signalLine[i] = Defined(signalRaw[i])
		histogram[i] = Defined(macdRaw[i] - signalRaw[i])
	}
	return macdLine, signalLine, histogram
}

// GetName returns the indicator name.
func (m *MACD) GetName() string {
	return "MACD"
}
