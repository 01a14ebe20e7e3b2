package advisor

import (
	"strings"
	"testing"

	"github.com/ducminhle1904/crypto-signal-engine/internal/analysis"
	"github.com/ducminhle1904/crypto-signal-engine/internal/indicators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// snapshotWith builds a 20-bar snapshot carrying only the readings a test
// cares about at the final bar.
func snapshotWith(rsi, macd, sig, bbUpper, bbLower float64) *indicators.Snapshot {
	n := 20
	snap := &indicators.Snapshot{Bars: n}
	snap.RSI = make(indicators.Series, n)
	snap.MACD = make(indicators.Series, n)
	snap.MACDSignal = make(indicators.Series, n)
	snap.BBUpper = make(indicators.Series, n)
	snap.BBLower = make(indicators.Series, n)

	snap.RSI[n-1] = indicators.Defined(rsi)
	snap.MACD[n-1] = indicators.Defined(macd)
	snap.MACDSignal[n-1] = indicators.Defined(sig)
	snap.BBUpper[n-1] = indicators.Defined(bbUpper)
	snap.BBLower[n-1] = indicators.Defined(bbLower)
	return snap
}

func TestAnalyze_BullishReadingsRecommendBuy(t *testing.T) {
	// Oversold RSI, bullish MACD, price below the lower band.
	snap := snapshotWith(25, 1.5, 1.0, 110, 105)
	ctx := MarketContext{Symbol: "BTC", CurrentPrice: 100, Change24h: 1, Change7d: 3}

	report := Analyze(ctx, snap)

	assert.Equal(t, analysis.Buy, report.Recommendation)
	assert.Contains(t, report.TechnicalAnalysis, "oversold")
	assert.Contains(t, report.ShortTermOutlook, "resistance")
}

func TestAnalyze_BearishReadingsRecommendSell(t *testing.T) {
	// Overbought RSI, bearish MACD, price above the upper band.
	snap := snapshotWith(80, -1.5, -1.0, 95, 90)
	ctx := MarketContext{Symbol: "BTC", CurrentPrice: 100, Change24h: -1, Change7d: -3}

	report := Analyze(ctx, snap)

	assert.Equal(t, analysis.Sell, report.Recommendation)
	assert.Contains(t, report.TechnicalAnalysis, "overbought")
	assert.Contains(t, report.ShortTermOutlook, "support")
}

func TestAnalyze_MixedReadingsRecommendNeutral(t *testing.T) {
	// Neutral RSI, bullish MACD, bearish Bollinger: one buy, one sell.
	snap := snapshotWith(50, 1.5, 1.0, 95, 90)
	ctx := MarketContext{Symbol: "BTC", CurrentPrice: 100, Change24h: 0.5, Change7d: 1}

	report := Analyze(ctx, snap)

	assert.Equal(t, analysis.Neutral, report.Recommendation)
	assert.Contains(t, report.ShortTermOutlook, "consolidate")
}

func TestAnalyze_RiskLevel(t *testing.T) {
	cases := []struct {
		name string
		ctx  MarketContext
		snap *indicators.Snapshot
		want int
	}{
		{
			name: "calm market lowers risk",
			ctx:  MarketContext{CurrentPrice: 100, Change24h: 0.5, Change7d: 1},
			snap: snapshotWith(50, 1, 2, 110, 90), // wait, sell, wait
			want: 2,
		},
		{
			name: "volatile market raises risk",
			ctx:  MarketContext{CurrentPrice: 100, Change24h: 12, Change7d: 8},
			snap: snapshotWith(50, 1, 2, 110, 90),
			want: 4,
		},
		{
			name: "two-way split stays at base",
			ctx:  MarketContext{CurrentPrice: 100, Change24h: 3, Change7d: 8},
			snap: snapshotWith(25, -1, 1, 95, 90), // buy, sell, sell
			want: 3,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			report := Analyze(tc.ctx, tc.snap)
			assert.Equal(t, tc.want, report.RiskLevel)
		})
	}
}

func TestAnalyze_ConflictingOpinionsRaiseRisk(t *testing.T) {
	// Oversold RSI (buy), bearish MACD (sell), price inside the bands (wait):
	// three distinct opinions on a moderately volatile tape.
	snap := snapshotWith(25, -1, 1, 110, 90)
	ctx := MarketContext{CurrentPrice: 100, Change24h: 3, Change7d: 8}

	report := Analyze(ctx, snap)

	assert.Equal(t, 4, report.RiskLevel)
}

func TestAnalyze_WarmupIndicatorsProduceWait(t *testing.T) {
	snap := &indicators.Snapshot{Bars: 5,
		RSI:        make(indicators.Series, 5),
		MACD:       make(indicators.Series, 5),
		MACDSignal: make(indicators.Series, 5),
		BBUpper:    make(indicators.Series, 5),
		BBLower:    make(indicators.Series, 5),
	}
	ctx := MarketContext{Symbol: "BTC", CurrentPrice: 100, Change24h: 1, Change7d: 2}

	report := Analyze(ctx, snap)

	assert.Equal(t, analysis.Neutral, report.Recommendation)
	assert.Contains(t, report.TechnicalAnalysis, "warm-up")
}

func TestAnalyze_SummaryAndMarketCommentary(t *testing.T) {
	snap := snapshotWith(50, 1.5, 1.0, 110, 90)
	ctx := MarketContext{Symbol: "SOL", CurrentPrice: 150, Change24h: 6, Change7d: 15}

	report := Analyze(ctx, snap)

	require.NotEmpty(t, report.Summary)
	assert.True(t, strings.HasPrefix(report.Summary, "SOL analysis:"))
	assert.Contains(t, report.MarketAnalysis, "rallied")
	assert.Contains(t, report.MarketAnalysis, "positive short-term momentum")
	assert.False(t, report.GeneratedAt.IsZero())
}
