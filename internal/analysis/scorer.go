package analysis

import (
	"github.com/ducminhle1904/crypto-signal-engine/internal/indicators"
)

// Scoring thresholds and awards. Each clause contributes independently;
// the score is used only for relative ranking across a peer set.
const (
	momentumWindow      = 7
	volumeMeanWindow    = 7
	goldenCrossLookback = 20

	// Bollinger proximity for ranking; consolidation shares the same
	// 1.05 profile while the per-bar chart markers use 1.01/0.99.
	bollingerBuyZone = 1.05
)

// ScoreSnapshot computes the promise score for one asset at the latest bar.
// Clauses whose indicator is unselected or undefined at the bars they need
// contribute nothing. The result is always >= 0.
func ScoreSnapshot(snap *indicators.Snapshot, selected IndicatorSet) float64 {
	if snap == nil || snap.Bars == 0 {
		return 0
	}

	score := momentumPoints(snap.Closes)

	if selected.Has(IndicatorRSI) {
		score += rsiPoints(snap)
	}
	if selected.Has(IndicatorMACD) {
		score += macdPoints(snap)
	}
	if selected.Has(IndicatorBollinger) {
		score += bollingerPoints(snap)
	}
	if selected.Has(IndicatorEMA) {
		score += emaPoints(snap)
	}
	if selected.Has(IndicatorSMA) {
		score += smaPoints(snap)
	}

	score += volumePoints(snap.Volumes)
	return score
}

// momentumPoints rewards the recent close return, measured over a
// seven-bar window (or from the first bar when the series is shorter).
func momentumPoints(closes []float64) float64 {
	n := len(closes)
	if n == 0 {
		return 0
	}
	base := 0
	if n >= momentumWindow {
		base = n - momentumWindow
	}
	if closes[base] == 0 {
		return 0
	}
	change := (closes[n-1]/closes[base] - 1) * 100

	switch {
	case change > 10:
		return 2.0
	case change > 5:
		return 1.0
	case change > 0:
		return 0.5
	default:
		return 0
	}
}

// rsiPoints rewards balanced-to-oversold RSI readings.
func rsiPoints(snap *indicators.Snapshot) float64 {
	rsi, ok := snap.RSI.Last()
	if !ok {
		return 0
	}
	switch {
	case rsi >= 40 && rsi <= 60:
		return 0.5
	case rsi >= 30 && rsi < 40:
		return 1.0
	case rsi < 30:
		return 1.5
	default:
		return 0
	}
}

// macdPoints rewards MACD above its signal line, a rising histogram, and
// a fresh bullish crossover.
func macdPoints(snap *indicators.Snapshot) float64 {
	last := snap.Bars - 1
	macd, okM := snap.MACD.At(last)
	sig, okS := snap.MACDSignal.At(last)
	if !okM || !okS {
		return 0
	}

	points := 0.0
	if macd > sig {
		points += 1.0
	}
	if hist, ok := snap.MACDHist.At(last); ok {
		if prev, okPrev := snap.MACDHist.At(last - 1); okPrev && hist > prev {
			points += 0.5
		}
	}
	if indicators.CrossedAbove(snap.MACD, snap.MACDSignal, last) {
		points += 1.5
	}
	return points
}

// bollingerPoints rewards prices near the lower band and a bounce off it.
func bollingerPoints(snap *indicators.Snapshot) float64 {
	last := snap.Bars - 1
	lower, ok := snap.BBLower.At(last)
	if !ok {
		return 0
	}

	points := 0.0
	close := snap.Closes[last]
	if close < lower*bollingerBuyZone {
		points += 1.0
	}
	if prevLower, okPrev := snap.BBLower.At(last - 1); okPrev && last > 0 {
		prevClose := snap.Closes[last-1]
		if close > prevClose && prevClose < prevLower {
			points += 1.5
		}
	}
	return points
}

// emaPoints rewards the short EMA above the long EMA and a fresh crossover.
func emaPoints(snap *indicators.Snapshot) float64 {
	last := snap.Bars - 1
	ema20, ok20 := snap.EMA20.At(last)
	ema50, ok50 := snap.EMA50.At(last)
	if !ok20 || !ok50 {
		return 0
	}

	points := 0.0
	if ema20 > ema50 {
		points += 1.0
	}
	if indicators.CrossedAbove(snap.EMA20, snap.EMA50, last) {
		points += 1.5
	}
	return points
}

// smaPoints rewards price above both SMAs, a bullish SMA alignment, and a
// recent Golden Cross (checked against the bar 20 positions earlier).
func smaPoints(snap *indicators.Snapshot) float64 {
	last := snap.Bars - 1
	sma50, ok50 := snap.SMA50.At(last)
	sma200, ok200 := snap.SMA200.At(last)
	if !ok50 || !ok200 {
		return 0
	}

	points := 0.0
	close := snap.Closes[last]
	if close > sma50 && close > sma200 {
		points += 1.0
	}
	if sma50 > sma200 {
		points += 1.0
	}
	if indicators.CrossedAboveLookback(snap.SMA50, snap.SMA200, last, goldenCrossLookback) {
		points += 2.0
	}
	return points
}

// volumePoints rewards the latest volume standing clear of its recent mean.
func volumePoints(volumes []float64) float64 {
	n := len(volumes)
	if n < volumeMeanWindow {
		return 0
	}

	mean := 0.0
	for _, v := range volumes[n-volumeMeanWindow:] {
		mean += v
	}
	mean /= float64(volumeMeanWindow)
	if mean <= 0 {
		return 0
	}

	ratio := volumes[n-1] / mean
	switch {
	case ratio > 1.5:
		return 1.0
	case ratio > 1.2:
		return 0.5
	default:
		return 0
	}
}
