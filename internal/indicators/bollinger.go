package indicators

import "math"

// BollingerBands represents the Bollinger Bands indicator: a rolling-mean
// middle band widened by a multiple of the rolling sample standard
// deviation. All three bands are undefined until a full window exists.
type BollingerBands struct {
	period         int
	stdDevMultiple float64
}

// NewBollingerBands creates a new BollingerBands instance with the given
// period and standard deviation multiplier.
func NewBollingerBands(period int, stdDev float64) *BollingerBands {
	return &BollingerBands{
		period:         period,
		stdDevMultiple: stdDev,
	}
}

// Calculate computes the upper, middle, and lower band series. Wherever
// defined, lower <= middle <= upper.
func (bb *BollingerBands) Calculate(closes []float64) (upper, middle, lower Series) {
	n := len(closes)
	upper = undefinedSeries(n)
	middle = undefinedSeries(n)
	lower = undefinedSeries(n)
	if n < bb.period {
		return upper, middle, lower
	}

	for i := bb.period - 1; i < n; i++ {
		window := closes[i-bb.period+1 : i+1]
		mean := sum(window) / float64(bb.period)
		std := sampleStdDev(window, mean)

		middle[i] = Defined(mean)
		upper[i] = Defined(mean + bb.stdDevMultiple*std)
		lower[i] = Defined(mean - bb.stdDevMultiple*std)
	}
	return upper, middle, lower
}

// Period returns the configured window length.
func (bb *BollingerBands) Period() int {
	return bb.period
}

// GetName returns the indicator name.
func (bb *BollingerBands) GetName() string {
	return "Bollinger Bands"
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}

// sampleStdDev uses the n-1 denominator. A single-element window has no
// dispersion estimate and reports zero.
func sampleStdDev(values []float64, mean float64) float64 {
	if len(values) < 2 {
		return 0
	}
	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	variance /= float64(len(values) - 1)
	return math.Sqrt(variance)
}
