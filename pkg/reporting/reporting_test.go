package reporting

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ducminhle1904/crypto-signal-engine/internal/advisor"
	"github.com/ducminhle1904/crypto-signal-engine/internal/analysis"
	"github.com/ducminhle1904/crypto-signal-engine/internal/indicators"
	"github.com/ducminhle1904/crypto-signal-engine/pkg/types"
)

func sampleSnapshot(t *testing.T, bars int) *indicators.Snapshot {
	t.Helper()

	series := make(types.PriceSeries, bars)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	price := 100.0
	for i := range series {
		if i%2 == 0 {
			price *= 1.01
		} else {
			price *= 0.995
		}
		series[i] = types.Bar{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Open:      price,
			High:      price * 1.01,
			Low:       price * 0.99,
			Close:     price,
			Volume:    1000,
		}
	}
	return indicators.NewEngine().Compute(series)
}

func sampleEntries(t *testing.T) []Entry {
	t.Helper()

	snap := sampleSnapshot(t, 60)
	return []Entry{
		{
			Rank:     1,
			Symbol:   "BTCUSDT",
			Score:    6.5,
			Snapshot: snap,
			Signal: analysis.Signal{
				Direction: analysis.Buy,
				Strength:  analysis.Strong,
				Reason:    "BTCUSDT buy signal based on 3.0 bullish indicators against 1.0 bearish",
				Advice:    "Favorable buy conditions, consider entering gradually.",
				Details: analysis.DetailMap{
					{Label: "RSI", Value: "45.20"},
					{Label: "MACD", Value: "Buy (bullish crossover)"},
				},
			},
		},
		{
			Rank:     2,
			Symbol:   "ETHUSDT",
			Score:    2.0,
			Snapshot: snap,
			Signal:   analysis.Signal{Direction: analysis.Neutral},
		},
	}
}

func TestBuildEntries(t *testing.T) {
	snap := sampleSnapshot(t, 30)
	evals := map[string]*analysis.Evaluation{
		"BTCUSDT": {Symbol: "BTCUSDT", Snapshot: snap, Score: 5, Signal: analysis.Signal{Direction: analysis.Buy, Strength: analysis.Strong}},
		"ETHUSDT": {Symbol: "ETHUSDT", Snapshot: snap, Score: 1, Signal: analysis.Signal{Direction: analysis.Neutral}},
	}
	ranked := []analysis.SymbolScore{
		{Symbol: "ETHUSDT", Score: 1},
		{Symbol: "DOGEUSDT", Score: 0}, // not evaluated, must be dropped
		{Symbol: "BTCUSDT", Score: 5},
	}
	advisories := map[string]advisor.Report{
		"BTCUSDT": {Recommendation: analysis.Buy, RiskLevel: 3},
	}

	entries := BuildEntries(ranked, evals, advisories)
	require.Len(t, entries, 2)

	assert.Equal(t, "ETHUSDT", entries[0].Symbol)
	assert.Equal(t, 1, entries[0].Rank)
	assert.Nil(t, entries[0].Advisory)

	assert.Equal(t, "BTCUSDT", entries[1].Symbol)
	assert.Equal(t, 2, entries[1].Rank)
	require.NotNil(t, entries[1].Advisory)
	assert.Equal(t, 3, entries[1].Advisory.RiskLevel)
}

func TestConsoleRanking(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewConsoleReporterTo(&buf)

	reporter.RenderRanking(sampleEntries(t))
	out := buf.String()

	assert.Contains(t, out, "MOST PROMISING ASSETS")
	assert.Contains(t, out, "BTCUSDT")
	assert.Contains(t, out, "ETHUSDT")
	assert.Contains(t, out, "6.5")
	assert.Contains(t, out, "Buy (strong)")
	assert.Contains(t, out, "Neutral")
}

func TestConsoleSignal_DetailOrder(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewConsoleReporterTo(&buf)

	reporter.RenderSignal(sampleEntries(t)[0])
	out := buf.String()

	assert.Contains(t, out, "SIGNAL: BTCUSDT")
	assert.Contains(t, out, "bullish crossover")

	rsiAt := strings.Index(out, "45.20")
	macdAt := strings.Index(out, "bullish crossover")
	require.GreaterOrEqual(t, rsiAt, 0)
	require.GreaterOrEqual(t, macdAt, 0)
	assert.Less(t, rsiAt, macdAt)
}

func TestConsoleAdvisory(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewConsoleReporterTo(&buf)

	entry := sampleEntries(t)[0]
	entry.Advisory = &advisor.Report{
		MarketAnalysis:    "BTC has moved by 1.50% over the last 7 days.",
		TechnicalAnalysis: "The RSI indicates neutral momentum.",
		Recommendation:    analysis.Buy,
		RiskLevel:         2,
		ShortTermOutlook:  "Short-term outlook is positive.",
		MediumTermOutlook: "Medium-term outlook depends on the broader market.",
	}

	reporter.RenderAdvisory(entry)
	out := buf.String()

	assert.Contains(t, out, "ADVISORY: BTCUSDT")
	assert.Contains(t, out, "2/5")
	assert.Contains(t, out, "neutral momentum")
}

func TestConsoleAdvisory_SkippedWhenAbsent(t *testing.T) {
	var buf bytes.Buffer
	reporter := NewConsoleReporterTo(&buf)

	reporter.RenderAdvisory(sampleEntries(t)[1])
	assert.Empty(t, buf.String())
}

func TestExcelWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "screener.xlsx")

	err := NewExcelReporter().WriteWorkbook(path, sampleEntries(t))
	require.NoError(t, err)

	fx, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer fx.Close()

	sheets := fx.GetSheetList()
	assert.Contains(t, sheets, "Ranking")
	assert.Contains(t, sheets, "Signals")
	assert.Contains(t, sheets, "Indicators")

	symbol, err := fx.GetCellValue("Ranking", "B2")
	require.NoError(t, err)
	assert.Equal(t, "BTCUSDT", symbol)

	signal, err := fx.GetCellValue("Ranking", "D2")
	require.NoError(t, err)
	assert.Equal(t, "Buy (strong)", signal)

	direction, err := fx.GetCellValue("Signals", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Buy", direction)

	detail, err := fx.GetCellValue("Signals", "F2")
	require.NoError(t, err)
	assert.Equal(t, "RSI", detail)

	header, err := fx.GetCellValue("Indicators", "B1")
	require.NoError(t, err)
	assert.Equal(t, "RSI", header)

	// 60 bars is past the RSI warm-up, so the latest reading is present.
	rsi, err := fx.GetCellValue("Indicators", "B2")
	require.NoError(t, err)
	assert.NotEmpty(t, rsi)
}
