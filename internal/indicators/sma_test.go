package indicators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSMA_Calculate_Warmup(t *testing.T) {
	values := NewSMA(5).Calculate(geometricUptrend(10, 100, 0.01))

	assert.Equal(t, 4, values.DefinedFrom())
}

func TestSMA_Calculate_InsufficientData(t *testing.T) {
	values := NewSMA(50).Calculate(geometricUptrend(20, 100, 0.01))

	assert.Equal(t, -1, values.DefinedFrom())
}

func TestSMA_Calculate_RollingMean(t *testing.T) {
	closes := []float64{10, 20, 30, 40, 50, 60}
	values := NewSMA(3).Calculate(closes)

	expected := []float64{20, 30, 40, 50}
	for i, want := range expected {
		got, ok := values.At(i + 2)
		require.True(t, ok)
		assert.InDelta(t, want, got, 1e-9, "window ending at bar %d", i+2)
	}
}

func TestSMA_Calculate_FlatData(t *testing.T) {
	values := NewSMA(5).Calculate(flatCloses(10, 42))

	v, ok := values.Last()
	require.True(t, ok)
	assert.Equal(t, 42.0, v)
}

func TestEMA_Calculate_SeededFromFirstClose(t *testing.T) {
	closes := []float64{100, 110, 120}
	values := NewEMA(20).Calculate(closes)

	first, ok := values.At(0)
	require.True(t, ok)
	assert.Equal(t, 100.0, first)
}

func TestEMA_Calculate_RecursiveFormula(t *testing.T) {
	closes := []float64{100, 110}
	values := NewEMA(19).Calculate(closes) // alpha = 0.1

	v, ok := values.At(1)
	require.True(t, ok)
	assert.InDelta(t, 110*0.1+100*0.9, v, 1e-9)
}

func TestEMA_Calculate_ConvergesTowardPrice(t *testing.T) {
	closes := flatCloses(100, 50)
	closes[0] = 100 // single outlier decays away

	v, ok := NewEMA(20).Calculate(closes).Last()
	require.True(t, ok)
	assert.InDelta(t, 50, v, 0.1)
}

func TestSMA_GetName(t *testing.T) {
	assert.Equal(t, "SMA", NewSMA(50).GetName())
	assert.Equal(t, "EMA", NewEMA(20).GetName())
}
