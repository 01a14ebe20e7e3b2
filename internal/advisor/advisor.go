// Package advisor renders template-based investment commentary for one asset
// from its latest indicator readings and recent price performance. All text is
// assembled from fixed templates; there is no generated content.
package advisor

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/ducminhle1904/crypto-signal-engine/internal/analysis"
	"github.com/ducminhle1904/crypto-signal-engine/internal/indicators"
)

// Risk levels run 1 (low) to 5 (high), starting from a moderate base.
const (
	riskMin  = 1
	riskBase = 3
	riskMax  = 5
)

// MarketContext carries the price performance figures the commentary needs
// beyond the indicator snapshot.
type MarketContext struct {
	Symbol       string
	CurrentPrice float64
	Change24h    float64 // percent
	Change7d     float64 // percent
}

// Report is the assembled advisory for one asset.
type Report struct {
	MarketAnalysis    string
	TechnicalAnalysis string
	Recommendation    analysis.Direction
	RiskLevel         int
	ShortTermOutlook  string
	MediumTermOutlook string
	Summary           string
	GeneratedAt       time.Time
}

type opinion int

const (
	opinionWait opinion = iota
	opinionBuy
	opinionSell
)

// Analyze builds the advisory report. Indicators still inside their warm-up
// window contribute a wait opinion rather than a directional one.
func Analyze(ctx MarketContext, snap *indicators.Snapshot) Report {
	rsiText, rsiOp := rsiCommentary(ctx.Symbol, snap)
	macdText, macdOp := macdCommentary(snap)
	bbText, bbOp := bollingerCommentary(ctx.CurrentPrice, snap)

	rec := recommend(rsiOp, macdOp, bbOp)

	return Report{
		MarketAnalysis:    marketCommentary(ctx),
		TechnicalAnalysis: strings.Join([]string{rsiText, macdText, bbText}, " "),
		Recommendation:    rec,
		RiskLevel:         riskLevel(ctx, rsiOp, macdOp, bbOp),
		ShortTermOutlook:  shortTermOutlook(ctx, rec),
		MediumTermOutlook: fmt.Sprintf("Over the medium term, %s will track the broader crypto market and project-specific developments. A staggered entry strategy helps smooth out price swings.", ctx.Symbol),
		Summary: fmt.Sprintf("%s analysis: %s. Current price: %.2f, 7-day change: %.2f%%. Risk level: %d/5.",
			ctx.Symbol, rec, ctx.CurrentPrice, ctx.Change7d, riskLevel(ctx, rsiOp, macdOp, bbOp)),
		GeneratedAt: time.Now(),
	}
}

func rsiCommentary(symbol string, snap *indicators.Snapshot) (string, opinion) {
	rsi, ok := snapRSI(snap)
	if !ok {
		return "RSI has not completed its warm-up window yet.", opinionWait
	}
	switch {
	case rsi > 70:
		return fmt.Sprintf("An RSI of %.2f shows %s is currently overbought.", rsi, symbol), opinionSell
	case rsi < 30:
		return fmt.Sprintf("An RSI of %.2f shows %s is currently oversold.", rsi, symbol), opinionBuy
	default:
		return fmt.Sprintf("An RSI of %.2f puts %s in neutral territory.", rsi, symbol), opinionWait
	}
}

func macdCommentary(snap *indicators.Snapshot) (string, opinion) {
	if snap == nil || snap.Bars == 0 {
		return "MACD readings are not available yet.", opinionWait
	}
	last := snap.Bars - 1
	macd, okM := snap.MACD.At(last)
	sig, okS := snap.MACDSignal.At(last)
	if !okM || !okS {
		return "MACD readings are not available yet.", opinionWait
	}
	if macd > sig {
		return fmt.Sprintf("MACD (%.2f) sits above its signal line (%.2f), pointing to upward momentum.", macd, sig), opinionBuy
	}
	return fmt.Sprintf("MACD (%.2f) sits below its signal line (%.2f), pointing to downward momentum.", macd, sig), opinionSell
}

func bollingerCommentary(price float64, snap *indicators.Snapshot) (string, opinion) {
	if snap == nil || snap.Bars == 0 {
		return "Bollinger Bands have not completed their warm-up window yet.", opinionWait
	}
	last := snap.Bars - 1
	upper, okU := snap.BBUpper.At(last)
	lower, okL := snap.BBLower.At(last)
	if !okU || !okL {
		return "Bollinger Bands have not completed their warm-up window yet.", opinionWait
	}
	switch {
	case price > upper:
		return fmt.Sprintf("The current price (%.2f) is above the upper Bollinger Band (%.2f), suggesting an overbought condition.", price, upper), opinionSell
	case price < lower:
		return fmt.Sprintf("The current price (%.2f) is below the lower Bollinger Band (%.2f), suggesting an oversold condition.", price, lower), opinionBuy
	default:
		return fmt.Sprintf("The current price (%.2f) is between the Bollinger Bands, suggesting normal volatility.", price), opinionWait
	}
}

func recommend(ops ...opinion) analysis.Direction {
	buys, sells := 0, 0
	for _, op := range ops {
		switch op {
		case opinionBuy:
			buys++
		case opinionSell:
			sells++
		}
	}
	switch {
	case buys > sells:
		return analysis.Buy
	case sells > buys:
		return analysis.Sell
	default:
		return analysis.Neutral
	}
}

// riskLevel starts moderate, shifts one step on volatility, and adds one
// when the three indicators fully disagree.
func riskLevel(ctx MarketContext, ops ...opinion) int {
	risk := riskBase
	switch {
	case math.Abs(ctx.Change24h) > 10 || math.Abs(ctx.Change7d) > 20:
		risk++
	case math.Abs(ctx.Change24h) < 2 && math.Abs(ctx.Change7d) < 5:
		risk--
	}

	seen := make(map[opinion]bool, len(ops))
	for _, op := range ops {
		seen[op] = true
	}
	if len(seen) == 3 {
		risk++
	}

	if risk < riskMin {
		risk = riskMin
	}
	if risk > riskMax {
		risk = riskMax
	}
	return risk
}

func marketCommentary(ctx MarketContext) string {
	var week string
	switch {
	case ctx.Change7d > 10:
		week = fmt.Sprintf("%s rallied %.2f%% over the past 7 days, a sign of strong investor interest.", ctx.Symbol, ctx.Change7d)
	case ctx.Change7d < -10:
		week = fmt.Sprintf("%s corrected %.2f%% over the past 7 days, which may point to significant selling pressure.", ctx.Symbol, math.Abs(ctx.Change7d))
	default:
		week = fmt.Sprintf("%s moved %.2f%% over the past 7 days, showing relative stability.", ctx.Symbol, ctx.Change7d)
	}

	switch {
	case ctx.Change24h > 5:
		return week + fmt.Sprintf(" The %.2f%% gain in the last 24 hours suggests positive short-term momentum.", ctx.Change24h)
	case ctx.Change24h < -5:
		return week + fmt.Sprintf(" The %.2f%% drop in the last 24 hours could indicate temporary weakness.", math.Abs(ctx.Change24h))
	default:
		return week + fmt.Sprintf(" The price held relatively steady at %.2f%% over the last 24 hours.", ctx.Change24h)
	}
}

func shortTermOutlook(ctx MarketContext, rec analysis.Direction) string {
	switch rec {
	case analysis.Buy:
		return fmt.Sprintf("In the short term, %s could extend its positive momentum. Watch resistance levels around %.2f and %.2f.",
			ctx.Symbol, ctx.CurrentPrice*1.1, ctx.CurrentPrice*1.2)
	case analysis.Sell:
		return fmt.Sprintf("In the short term, %s may face selling pressure. Potential support levels sit around %.2f and %.2f.",
			ctx.Symbol, ctx.CurrentPrice*0.9, ctx.CurrentPrice*0.8)
	default:
		return fmt.Sprintf("In the short term, %s could consolidate between %.2f and %.2f.",
			ctx.Symbol, ctx.CurrentPrice*0.95, ctx.CurrentPrice*1.05)
	}
}

func snapRSI(snap *indicators.Snapshot) (float64, bool) {
	if snap == nil {
		return 0, false
	}
	return snap.RSI.Last()
}
