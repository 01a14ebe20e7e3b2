package analysis

import (
	"fmt"

	"github.com/ducminhle1904/crypto-signal-engine/internal/indicators"
)

// Consolidation constants. The 0.5 margin is the hysteresis band that keeps
// a single weak vote from flipping the outcome; a winner at twice the loser
// is tiered "strong".
const (
	voteMargin       = 0.5
	strongVoteFactor = 2.0

	bollingerSellZone = 0.95
)

// Canned advisory lines, keyed on the final direction only.
const (
	adviceBuy     = "Consider scaling in gradually to reduce risk. Watch the resistance levels above the current price."
	adviceSell    = "Consider taking profits or reducing your position. Watch the support levels below the current price."
	adviceNeutral = "Wait for a clearer signal before making a decision. Keep a close eye on how the indicators develop."
)

// votes accumulates weighted directional opinions from the indicators.
// Crossovers carry more weight than plain positioning, hence floats.
type votes struct {
	buy     float64
	sell    float64
	neutral float64
}

// Consolidate evaluates each selected indicator at the latest bar and folds
// the weighted votes into one tagged signal with reason, details and advice.
func Consolidate(snap *indicators.Snapshot, selected IndicatorSet) Signal {
	var v votes
	var details DetailMap

	if snap != nil && snap.Bars > 0 {
		if selected.Has(IndicatorRSI) {
			voteRSI(snap, &v, &details)
		}
		if selected.Has(IndicatorMACD) {
			voteMACD(snap, &v, &details)
		}
		if selected.Has(IndicatorBollinger) {
			voteBollinger(snap, &v, &details)
		}
		if selected.Has(IndicatorSMA) {
			voteSMA(snap, &v, &details)
		}
		if selected.Has(IndicatorEMA) {
			voteEMA(snap, &v, &details)
		}
	}

	return resolve(v, details)
}

// resolve applies the tie-break rule to the accumulated votes.
func resolve(v votes, details DetailMap) Signal {
	switch {
	case v.buy > v.sell+voteMargin:
		strength := Moderate
		if v.buy >= strongVoteFactor*v.sell {
			strength = Strong
		}
		return Signal{
			Direction: Buy,
			Strength:  strength,
			Reason: fmt.Sprintf("%s buy signal based on %.1f bullish indicators against %.1f bearish",
				strength, v.buy, v.sell),
			Details: details,
			Advice:  adviceBuy,
		}
	case v.sell > v.buy+voteMargin:
		strength := Moderate
		if v.sell >= strongVoteFactor*v.buy {
			strength = Strong
		}
		return Signal{
			Direction: Sell,
			Strength:  strength,
			Reason: fmt.Sprintf("%s sell signal based on %.1f bearish indicators against %.1f bullish",
				strength, v.sell, v.buy),
			Details: details,
			Advice:  adviceSell,
		}
	default:
		return Signal{
			Direction: Neutral,
			Reason: fmt.Sprintf("mixed signals with %.1f bullish indicators and %.1f bearish",
				v.buy, v.sell),
			Details: details,
			Advice:  adviceNeutral,
		}
	}
}

// voteRSI: oversold is a buy, overbought is a sell, anything else neutral.
func voteRSI(snap *indicators.Snapshot, v *votes, details *DetailMap) {
	rsi, ok := snap.RSI.Last()
	if !ok {
		return
	}
	details.Add("RSI", fmt.Sprintf("%.2f", rsi))

	switch {
	case rsi < 30:
		v.buy++
		details.Add("RSI_signal", "Buy (oversold)")
	case rsi > 70:
		v.sell++
		details.Add("RSI_signal", "Sell (overbought)")
	default:
		v.neutral++
		details.Add("RSI_signal", "Neutral")
	}
}

// voteMACD: a fresh crossover is a full vote, plain positioning half a vote.
func voteMACD(snap *indicators.Snapshot, v *votes, details *DetailMap) {
	last := snap.Bars - 1
	macd, okM := snap.MACD.At(last)
	sig, okS := snap.MACDSignal.At(last)
	if !okM || !okS {
		return
	}

	details.Add("MACD", fmt.Sprintf("%.2f", macd))
	details.Add("MACD_signal", fmt.Sprintf("%.2f", sig))
	if hist, ok := snap.MACDHist.At(last); ok {
		details.Add("MACD_hist", fmt.Sprintf("%.2f", hist))
	}

	switch {
	case indicators.CrossedAbove(snap.MACD, snap.MACDSignal, last):
		v.buy++
		details.Add("MACD_crossover", "Buy (bullish crossover)")
	case indicators.CrossedBelow(snap.MACD, snap.MACDSignal, last):
		v.sell++
		details.Add("MACD_crossover", "Sell (bearish crossover)")
	case macd > sig:
		v.buy += 0.5
		details.Add("MACD_position", "Positive (MACD > signal)")
	case macd < sig:
		v.sell += 0.5
		details.Add("MACD_position", "Negative (MACD < signal)")
	default:
		v.neutral++
		details.Add("MACD_position", "Neutral")
	}
}

// voteBollinger: proximity to a band is a full vote either way.
func voteBollinger(snap *indicators.Snapshot, v *votes, details *DetailMap) {
	last := snap.Bars - 1
	upper, okU := snap.BBUpper.At(last)
	lower, okL := snap.BBLower.At(last)
	if !okU || !okL {
		return
	}

	price := snap.Closes[last]
	details.Add("Price", fmt.Sprintf("%.2f", price))
	details.Add("BB_upper", fmt.Sprintf("%.2f", upper))
	details.Add("BB_lower", fmt.Sprintf("%.2f", lower))

	switch {
	case price < lower*bollingerBuyZone:
		v.buy++
		details.Add("Bollinger", "Buy (near lower band)")
	case price > upper*bollingerSellZone:
		v.sell++
		details.Add("Bollinger", "Sell (near upper band)")
	default:
		v.neutral++
		details.Add("Bollinger", "Neutral (between bands)")
	}
}

// voteSMA: a Golden or Death Cross against the bar 20 positions back is a
// double-weight vote; plain alignment half a vote.
func voteSMA(snap *indicators.Snapshot, v *votes, details *DetailMap) {
	last := snap.Bars - 1
	sma50, ok50 := snap.SMA50.At(last)
	sma200, ok200 := snap.SMA200.At(last)
	if !ok50 || !ok200 {
		return
	}

	details.Add("SMA_50", fmt.Sprintf("%.2f", sma50))
	details.Add("SMA_200", fmt.Sprintf("%.2f", sma200))

	switch {
	case indicators.CrossedAboveLookback(snap.SMA50, snap.SMA200, last, goldenCrossLookback):
		v.buy += 2
		details.Add("SMA_crossover", "Strong buy (recent Golden Cross)")
	case indicators.CrossedBelowLookback(snap.SMA50, snap.SMA200, last, goldenCrossLookback):
		v.sell += 2
		details.Add("SMA_crossover", "Strong sell (recent Death Cross)")
	case sma50 > sma200:
		v.buy += 0.5
		details.Add("SMA_position", "Positive (SMA 50 > SMA 200)")
	case sma50 < sma200:
		v.sell += 0.5
		details.Add("SMA_position", "Negative (SMA 50 < SMA 200)")
	default:
		v.neutral += 0.5
		details.Add("SMA_position", "Neutral")
	}
}

// voteEMA: a fresh crossover is a full vote, plain positioning half a vote.
func voteEMA(snap *indicators.Snapshot, v *votes, details *DetailMap) {
	last := snap.Bars - 1
	ema20, ok20 := snap.EMA20.At(last)
	ema50, ok50 := snap.EMA50.At(last)
	if !ok20 || !ok50 {
		return
	}

	details.Add("EMA_20", fmt.Sprintf("%.2f", ema20))
	details.Add("EMA_50", fmt.Sprintf("%.2f", ema50))

	switch {
	case indicators.CrossedAbove(snap.EMA20, snap.EMA50, last):
		v.buy++
		details.Add("EMA_crossover", "Buy (bullish crossover)")
	case indicators.CrossedBelow(snap.EMA20, snap.EMA50, last):
		v.sell++
		details.Add("EMA_crossover", "Sell (bearish crossover)")
	case ema20 > ema50:
		v.buy += 0.5
		details.Add("EMA_position", "Positive (EMA 20 > EMA 50)")
	case ema20 < ema50:
		v.sell += 0.5
		details.Add("EMA_position", "Negative (EMA 20 < EMA 50)")
	default:
		v.neutral += 0.5
		details.Add("EMA_position", "Neutral")
	}
}
