package types

import (
	"fmt"
	"math"
	"time"
)

// Bar is a single OHLCV candle for one symbol.
type Bar struct {
	Timestamp time.Time
	Open      float64
	High      float64
	Low       float64
	Close     float64
	Volume    float64
}

// PriceSeries is a chronological sequence of bars for one symbol.
// It is read-only to the analytical core; callers must Validate it
// once at ingestion before handing it to the engine.
type PriceSeries []Bar

// Ticker is a point-in-time price observation.
type Ticker struct {
	Symbol    string
	Price     float64
	Volume    float64
	Timestamp time.Time
}

// Validate checks the ingestion contract: strictly increasing timestamps,
// positive finite OHLC prices and non-negative finite volume. An empty
// series is valid (the engine treats it as degenerate input and produces
// an empty snapshot).
func (s PriceSeries) Validate() error {
	for i, bar := range s {
		if bar.Open <= 0 || bar.High <= 0 || bar.Low <= 0 || bar.Close <= 0 {
			return fmt.Errorf("invalid price data at index %d: prices must be positive", i)
		}
		if !isFinite(bar.Open) || !isFinite(bar.High) || !isFinite(bar.Low) || !isFinite(bar.Close) {
			return fmt.Errorf("invalid price data at index %d: prices must be finite", i)
		}
		if bar.Volume < 0 || !isFinite(bar.Volume) {
			return fmt.Errorf("invalid volume at index %d: volume must be non-negative and finite", i)
		}
		if bar.High < bar.Low {
			return fmt.Errorf("invalid price data at index %d: high (%.4f) cannot be less than low (%.4f)",
				i, bar.High, bar.Low)
		}
		if i > 0 && !bar.Timestamp.After(s[i-1].Timestamp) {
			return fmt.Errorf("invalid timestamp sequence at index %d: timestamps must be strictly increasing", i)
		}
	}
	return nil
}

// Closes returns the close prices of the series.
func (s PriceSeries) Closes() []float64 {
	out := make([]float64, len(s))
	for i, bar := range s {
		out[i] = bar.Close
	}
	return out
}

// Volumes returns the volumes of the series.
func (s PriceSeries) Volumes() []float64 {
	out := make([]float64, len(s))
	for i, bar := range s {
		out[i] = bar.Volume
	}
	return out
}

// Last returns the most recent bar, or false for an empty series.
func (s PriceSeries) Last() (Bar, bool) {
	if len(s) == 0 {
		return Bar{}, false
	}
	return s[len(s)-1], true
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
