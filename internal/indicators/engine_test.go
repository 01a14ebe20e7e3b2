package indicators

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/ducminhle1904/crypto-signal-engine/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seriesFromCloses builds an hourly price series from close prices.
func seriesFromCloses(closes []float64) types.PriceSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(types.PriceSeries, len(closes))
	for i, c := range closes {
		series[i] = types.Bar{
			Timestamp: start.Add(time.Duration(i) * time.Hour),
			Open:      c,
			High:      c * 1.01,
			Low:       c * 0.99,
			Close:     c,
			Volume:    1000.0,
		}
	}
	return series
}

// geometricUptrend produces n closes where each is pct above the prior.
func geometricUptrend(n int, start, pct float64) []float64 {
	closes := make([]float64, n)
	price := start
	for i := 0; i < n; i++ {
		closes[i] = price
		price *= 1 + pct
	}
	return closes
}

// flatCloses produces n identical closes.
func flatCloses(n int, price float64) []float64 {
	closes := make([]float64, n)
	for i := range closes {
		closes[i] = price
	}
	return closes
}

func TestEngine_Compute_EmptySeries(t *testing.T) {
	snap := NewEngine().Compute(nil)

	require.NotNil(t, snap)
	assert.Equal(t, 0, snap.Bars)

	_, ok := snap.RSI.Last()
	assert.False(t, ok)
	_, ok = snap.LastClose()
	assert.False(t, ok)
}

func TestEngine_Compute_DoesNotMutateInput(t *testing.T) {
	series := seriesFromCloses(geometricUptrend(60, 100, 0.01))
	before := make(types.PriceSeries, len(series))
	copy(before, series)

	NewEngine().Compute(series)

	assert.Equal(t, before, series)
}

func TestEngine_Compute_Idempotent(t *testing.T) {
	series := seriesFromCloses(geometricUptrend(250, 100, 0.005))
	engine := NewEngine()

	first := engine.Compute(series)
	second := engine.Compute(series)

	if !reflect.DeepEqual(first, second) {
		t.Error("two computations over the same series must be identical")
	}
}

func TestEngine_Compute_SeriesAlignment(t *testing.T) {
	series := seriesFromCloses(geometricUptrend(120, 100, 0.002))
	snap := NewEngine().Compute(series)

	for _, col := range snap.Columns() {
		assert.Len(t, col.Series, snap.Bars, "column %s must align with the bars", col.Name)
	}
	assert.Len(t, snap.Markers, snap.Bars)
}

func TestEngine_Compute_WarmupBoundaries(t *testing.T) {
	snap := NewEngine().Compute(seriesFromCloses(geometricUptrend(250, 100, 0.005)))

	assert.Equal(t, DefaultRSIPeriod, snap.RSI.DefinedFrom())
	assert.Equal(t, DefaultBollingerSpan-1, snap.BBMiddle.DefinedFrom())
	assert.Equal(t, DefaultSMAShort-1, snap.SMA50.DefinedFrom())
	assert.Equal(t, DefaultSMALong-1, snap.SMA200.DefinedFrom())

	// Recursive EMAs and MACD are seeded immediately.
	assert.Equal(t, 0, snap.EMA20.DefinedFrom())
	assert.Equal(t, 0, snap.EMA50.DefinedFrom())
	assert.Equal(t, 0, snap.MACD.DefinedFrom())
	assert.Equal(t, 0, snap.MACDSignal.DefinedFrom())
}

func TestEngine_Compute_FlatSeries(t *testing.T) {
	snap := NewEngine().Compute(seriesFromCloses(flatCloses(60, 100)))

	// No price movement: relative strength is indeterminate.
	assert.Equal(t, -1, snap.RSI.DefinedFrom())

	for i := DefaultBollingerSpan - 1; i < snap.Bars; i++ {
		upper, _ := snap.BBUpper.At(i)
		middle, _ := snap.BBMiddle.At(i)
		lower, _ := snap.BBLower.At(i)
		assert.Equal(t, middle, upper)
		assert.Equal(t, middle, lower)
	}

	macd, ok := snap.MACD.Last()
	require.True(t, ok)
	assert.InDelta(t, 0, macd, 1e-9)
}

func TestEngine_Compute_UptrendLevels(t *testing.T) {
	snap := NewEngine().Compute(seriesFromCloses(geometricUptrend(250, 100, 0.005)))

	rsi, ok := snap.RSI.Last()
	require.True(t, ok)
	assert.Greater(t, rsi, 50.0)

	macd, ok := snap.MACD.Last()
	require.True(t, ok)
	assert.Greater(t, macd, 0.0, "MACD should be positive in a sustained uptrend")

	sma50, ok := snap.SMA50.Last()
	require.True(t, ok)
	sma200, ok := snap.SMA200.Last()
	require.True(t, ok)
	assert.Greater(t, sma50, sma200)
}

func TestEngine_Compute_MarkersFollowRSIBands(t *testing.T) {
	// Steep decline drives RSI deep into oversold territory.
	closes := make([]float64, 60)
	price := 100.0
	for i := range closes {
		closes[i] = price
		price *= 0.97
	}
	snap := NewEngine().Compute(seriesFromCloses(closes))

	rsi, ok := snap.RSI.Last()
	require.True(t, ok)
	require.Less(t, rsi, 30.0)
	assert.Equal(t, 1, snap.Markers[snap.Bars-1])
}

func TestSnapshot_Get(t *testing.T) {
	snap := NewEngine().Compute(seriesFromCloses(geometricUptrend(30, 100, 0.01)))

	series, ok := snap.Get(NameRSI)
	require.True(t, ok)
	assert.Len(t, series, snap.Bars)

	_, ok = snap.Get("ADX")
	assert.False(t, ok)
}

func TestSnapshot_HistogramIdentity(t *testing.T) {
	snap := NewEngine().Compute(seriesFromCloses(geometricUptrend(100, 100, 0.004)))

	for i := 0; i < snap.Bars; i++ {
		macd, okM := snap.MACD.At(i)
		sig, okS := snap.MACDSignal.At(i)
		hist, okH := snap.MACDHist.At(i)
		require.True(t, okM && okS && okH)
		if math.Abs(hist-(macd-sig)) > 0 {
			t.Fatalf("hist != macd-signal at bar %d", i)
		}
	}
}

func BenchmarkEngine_Compute(b *testing.B) {
	series := seriesFromCloses(geometricUptrend(500, 100, 0.002))
	engine := NewEngine()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.Compute(series)
	}
}
