package analysis

// Direction is the consolidated trading signal for one asset.
type Direction string

const (
	Buy     Direction = "Buy"
	Sell    Direction = "Sell"
	Neutral Direction = "Neutral"
)

// Strength tiers a Buy or Sell signal; it is empty for Neutral.
type Strength string

const (
	Moderate Strength = "moderate"
	Strong   Strength = "strong"
)

// Indicator selection labels. The vocabulary is exact: unrecognized names
// are ignored rather than rejected.
const (
	IndicatorRSI       = "RSI"
	IndicatorMACD      = "MACD"
	IndicatorBollinger = "Bollinger Bands"
	IndicatorEMA       = "EMA"
	IndicatorSMA       = "SMA"
)

// IndicatorSet is the caller-chosen subset of indicators that gates which
// clauses contribute to scoring and consolidation.
type IndicatorSet map[string]bool

// NewIndicatorSet builds a selection from labels, keeping only the names
// the engine recognizes.
func NewIndicatorSet(names ...string) IndicatorSet {
	recognized := map[string]bool{
		IndicatorRSI:       true,
		IndicatorMACD:      true,
		IndicatorBollinger: true,
		IndicatorEMA:       true,
		IndicatorSMA:       true,
	}
	set := make(IndicatorSet)
	for _, name := range names {
		if recognized[name] {
			set[name] = true
		}
	}
	return set
}

// AllIndicators selects every indicator the engine recognizes.
func AllIndicators() IndicatorSet {
	return NewIndicatorSet(IndicatorRSI, IndicatorMACD, IndicatorBollinger, IndicatorEMA, IndicatorSMA)
}

// Has reports whether the label is selected.
func (s IndicatorSet) Has(name string) bool {
	return s[name]
}

// Detail is one formatted indicator reading or interpretation.
type Detail struct {
	Label string
	Value string
}

// DetailMap is an ordered list of details; insertion order is preserved so
// report output stays stable across runs.
type DetailMap []Detail

// Add appends a detail entry.
func (d *DetailMap) Add(label, value string) {
	*d = append(*d, Detail{Label: label, Value: value})
}

// Get returns the value for a label, if present.
func (d DetailMap) Get(label string) (string, bool) {
	for _, entry := range d {
		if entry.Label == label {
			return entry.Value, true
		}
	}
	return "", false
}

// Signal is the consolidated evaluation result for one asset.
type Signal struct {
	Direction Direction
	Strength  Strength
	Reason    string
	Details   DetailMap
	Advice    string
}

// SymbolScore pairs a symbol with its promise score for ranking.
type SymbolScore struct {
	Symbol string
	Score  float64
}
