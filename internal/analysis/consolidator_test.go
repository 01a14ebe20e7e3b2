package analysis

import (
	"testing"

	"github.com/ducminhle1904/crypto-signal-engine/internal/indicators"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_TieBreak(t *testing.T) {
	cases := []struct {
		name     string
		v        votes
		want     Direction
		strength Strength
	}{
		{"no votes", votes{}, Neutral, ""},
		{"buy inside margin", votes{buy: 1.5, sell: 1.0}, Neutral, ""},
		{"buy clears margin strongly", votes{buy: 2.0, sell: 1.0}, Buy, Strong},
		{"buy clears margin moderately", votes{buy: 1.8, sell: 1.2}, Buy, Moderate},
		{"sell inside margin", votes{buy: 1.0, sell: 1.5}, Neutral, ""},
		{"sell clears margin strongly", votes{buy: 1.0, sell: 2.0}, Sell, Strong},
		{"sell clears margin moderately", votes{buy: 1.2, sell: 1.8}, Sell, Moderate},
		{"unopposed buy", votes{buy: 1.0}, Buy, Strong},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolve(tc.v, nil)
			assert.Equal(t, tc.want, got.Direction)
			assert.Equal(t, tc.strength, got.Strength)
			assert.NotEmpty(t, got.Reason)
			assert.NotEmpty(t, got.Advice)
		})
	}
}

func TestResolve_AdviceMatchesDirection(t *testing.T) {
	assert.Equal(t, adviceBuy, resolve(votes{buy: 3}, nil).Advice)
	assert.Equal(t, adviceSell, resolve(votes{sell: 3}, nil).Advice)
	assert.Equal(t, adviceNeutral, resolve(votes{neutral: 3}, nil).Advice)
}

func TestConsolidate_NilSnapshot(t *testing.T) {
	sig := Consolidate(nil, AllIndicators())

	assert.Equal(t, Neutral, sig.Direction)
	assert.Empty(t, sig.Details)
}

func TestConsolidate_OversoldRSI(t *testing.T) {
	snap := priceSnapshot(constant(20, 100), constant(20, 1000))
	snap.RSI = make(indicators.Series, 20)
	snap.RSI[19] = indicators.Defined(25)

	sig := Consolidate(snap, NewIndicatorSet(IndicatorRSI))

	assert.Equal(t, Buy, sig.Direction)
	assert.Equal(t, Strong, sig.Strength)

	interp, ok := sig.Details.Get("RSI_signal")
	require.True(t, ok)
	assert.Equal(t, "Buy (oversold)", interp)
}

func TestConsolidate_OverboughtRSI(t *testing.T) {
	snap := priceSnapshot(constant(20, 100), constant(20, 1000))
	snap.RSI = make(indicators.Series, 20)
	snap.RSI[19] = indicators.Defined(78)

	sig := Consolidate(snap, NewIndicatorSet(IndicatorRSI))

	assert.Equal(t, Sell, sig.Direction)
	interp, ok := sig.Details.Get("RSI_signal")
	require.True(t, ok)
	assert.Equal(t, "Sell (overbought)", interp)
}

func TestConsolidate_GoldenCrossOutvotesEverything(t *testing.T) {
	n := 30
	snap := priceSnapshot(constant(n, 100), constant(n, 1000))
	snap.SMA50 = make(indicators.Series, n)
	snap.SMA200 = make(indicators.Series, n)
	for i := 0; i < n; i++ {
		snap.SMA50[i] = indicators.Defined(200 + float64(i))
		snap.SMA200[i] = indicators.Defined(215)
	}

	sig := Consolidate(snap, NewIndicatorSet(IndicatorSMA))

	assert.Equal(t, Buy, sig.Direction)
	assert.Equal(t, Strong, sig.Strength)

	interp, ok := sig.Details.Get("SMA_crossover")
	require.True(t, ok)
	assert.Equal(t, "Strong buy (recent Golden Cross)", interp)
}

func TestConsolidate_UndefinedIndicatorCastsNoVote(t *testing.T) {
	snap := priceSnapshot(constant(5, 100), constant(5, 1000))
	snap.RSI = make(indicators.Series, 5) // warm-up, entirely undefined

	sig := Consolidate(snap, NewIndicatorSet(IndicatorRSI))

	assert.Equal(t, Neutral, sig.Direction)
	_, ok := sig.Details.Get("RSI")
	assert.False(t, ok, "undefined readings must not appear in details")
}

func TestConsolidate_FlatMarketIsNeutral(t *testing.T) {
	snap := indicators.NewEngine().Compute(seriesFromCloses(constant(250, 100)))

	sig := Consolidate(snap, NewIndicatorSet(IndicatorRSI, IndicatorMACD, IndicatorSMA, IndicatorEMA))

	assert.Equal(t, Neutral, sig.Direction)
	assert.Equal(t, adviceNeutral, sig.Advice)
}

func TestConsolidate_DetailOrderFollowsIndicatorOrder(t *testing.T) {
	closes := make([]float64, 250)
	price := 100.0
	for i := range closes {
		if i%2 == 0 {
			price *= 1.015
		} else {
			price *= 0.99
		}
		closes[i] = price
	}
	snap := indicators.NewEngine().Compute(seriesFromCloses(closes))

	sig := Consolidate(snap, AllIndicators())
	require.NotEmpty(t, sig.Details)

	// RSI entries come first, SMA before EMA at the tail.
	assert.Equal(t, "RSI", sig.Details[0].Label)

	position := func(label string) int {
		for i, d := range sig.Details {
			if d.Label == label {
				return i
			}
		}
		return -1
	}
	require.NotEqual(t, -1, position("SMA_50"))
	require.NotEqual(t, -1, position("EMA_20"))
	assert.Less(t, position("SMA_50"), position("EMA_20"))
}
