package indicators

// SMA represents the Simple Moving Average technical indicator.
// Values are undefined until a full window of bars exists.
type SMA struct {
	period int
}

// NewSMA creates a new SMA indicator.
func NewSMA(period int) *SMA {
	return &SMA{period: period}
}

// Calculate computes the rolling mean over the whole input, one value per
// bar. The first period-1 positions are undefined.
func (s *SMA) Calculate(values []float64) Series {
	out := undefinedSeries(len(values))
	if len(values) < s.period {
		return out
	}

	// Running window sum instead of re-summing every window.
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= s.period {
			sum -= values[i-s.period]
		}
		if i >= s.period-1 {
			out[i] = Defined(sum / float64(s.period))
		}
	}
	return out
}

// Period returns the configured window length.
func (s *SMA) Period() int {
	return s.period
}

// GetName returns the indicator name.
func (s *SMA) GetName() string {
	return "SMA"
}
