package indicators

// RSI calculates the Relative Strength Index.
//
// Per-bar deltas are split into up-moves and down-moves and each side is
// smoothed with a Wilder-style exponential weighted mean (center of mass =
// period-1, weight-adjusted form). RSI is undefined until `period` deltas
// have been observed.
type RSI struct {
	period int
}

// NewRSI creates a new RSI instance with the given period.
func NewRSI(period int) *RSI {
	return &RSI{period: period}
}

// Calculate computes the RSI over the whole input, one value per bar.
//
// When the smoothed down-move average is zero while up-moves are positive,
// RSI saturates at 100. When both averages are zero (a flat series) the
// value stays undefined rather than dividing zero by zero.
func (r *RSI) Calculate(closes []float64) Series {
	out := undefinedSeries(len(closes))
	if len(closes) < r.period+1 {
		return out
	}

	// Weight-adjusted exponential mean: num_t = x_t + (1-alpha)*num_{t-1},
	// den_t = 1 + (1-alpha)*den_{t-1}, mean = num/den. With center of mass
	// period-1, alpha = 1/period.
	alpha := 1.0 / float64(r.period)
	decay := 1.0 - alpha

	var upNum, upDen, downNum, downDen float64
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		up, down := 0.0, 0.0
		if delta > 0 {
			up = delta
		} else {
			down = -delta
		}

		upNum = up + decay*upNum
		upDen = 1 + decay*upDen
		downNum = down + decay*downNum
		downDen = 1 + decay*downDen

		// Warm-up: the first delta appears at bar 1, so `period` deltas
		// exist from bar `period` onward.
		if i < r.period {
			continue
		}

		avgUp := upNum / upDen
		avgDown := downNum / downDen

		switch {
		case avgDown == 0 && avgUp == 0:
			// Flat history: relative strength is indeterminate.
		case avgDown == 0:
			out[i] = Defined(100)
		default:
			rs := avgUp / avgDown
			out[i] = Defined(100 - (100 / (1 + rs)))
		}
	}
	return out
}

// Period returns the configured smoothing period.
func (r *RSI) Period() int {
	return r.period
}

// GetName returns the indicator name.
func (r *RSI) GetName() string {
	return "RSI"
}
