package indicators

import (
	"github.com/ducminhle1904/crypto-signal-engine/pkg/types"
)

// Default indicator parameters, matching the usual charting conventions.
const (
	DefaultRSIPeriod      = 14
	DefaultMACDFast       = 12
	DefaultMACDSlow       = 26
	DefaultMACDSignal     = 9
	DefaultBollingerSpan  = 20
	DefaultBollingerWidth = 2.0
	DefaultSMAShort       = 50
	DefaultSMALong        = 200
	DefaultEMAShort       = 20
	DefaultEMALong        = 50
)

// Canonical indicator column names, also used as persistence keys.
const (
	NameRSI        = "RSI"
	NameMACD       = "MACD"
	NameMACDSignal = "MACD_signal"
	NameMACDHist   = "MACD_hist"
	NameBBUpper    = "BB_upper"
	NameBBMiddle   = "BB_middle"
	NameBBLower    = "BB_lower"
	NameSMA50      = "SMA_50"
	NameSMA200     = "SMA_200"
	NameEMA20      = "EMA_20"
	NameEMA50      = "EMA_50"

	// NameMarker labels the persisted per-bar marker column; it is not part
	// of Columns because it is an int series, not an optional float one.
	NameMarker = "marker"
)

// Snapshot holds every indicator series computed from one price series,
// aligned bar for bar with the input. It is immutable after Compute and
// never shares backing storage with the input series.
type Snapshot struct {
	Bars    int
	Closes  []float64
	Volumes []float64

	RSI        Series
	MACD       Series
	MACDSignal Series
	MACDHist   Series
	BBUpper    Series
	BBMiddle   Series
	BBLower    Series
	SMA50      Series
	SMA200     Series
	EMA20      Series
	EMA50      Series

	// Markers is the per-bar chart annotation series: +1 bullish,
	// -1 bearish, 0 neutral.
	Markers []int
}

// Engine computes indicator snapshots from price series. The zero-value
// configuration is not usable; construct with NewEngine.
type Engine struct {
	rsi       *RSI
	macd      *MACD
	bollinger *BollingerBands
	smaShort  *SMA
	smaLong   *SMA
	emaShort  *EMA
	emaLong   *EMA
}

// NewEngine creates an engine with the default parameter set
// (RSI 14, MACD 12/26/9, Bollinger 20/2, SMA 50/200, EMA 20/50).
func NewEngine() *Engine {
	return &Engine{
		rsi:       NewRSI(DefaultRSIPeriod),
		macd:      NewMACD(DefaultMACDFast, DefaultMACDSlow, DefaultMACDSignal),
		bollinger: NewBollingerBands(DefaultBollingerSpan, DefaultBollingerWidth),
		smaShort:  NewSMA(DefaultSMAShort),
		smaLong:   NewSMA(DefaultSMALong),
		emaShort:  NewEMA(DefaultEMAShort),
		emaLong:   NewEMA(DefaultEMALong),
	}
}

// Compute derives the full indicator snapshot for a price series. The input
// is not mutated and the result is deterministic for identical input.
// An empty series yields an empty snapshot.
func (e *Engine) Compute(series types.PriceSeries) *Snapshot {
	snap := &Snapshot{Bars: len(series)}
	if len(series) == 0 {
		return snap
	}

	closes := series.Closes()
	snap.Closes = closes
	snap.Volumes = series.Volumes()

	snap.RSI = e.rsi.Calculate(closes)
	snap.MACD, snap.MACDSignal, snap.MACDHist = e.macd.Calculate(closes)
	snap.BBUpper, snap.BBMiddle, snap.BBLower = e.bollinger.Calculate(closes)
	snap.SMA50 = e.smaShort.Calculate(closes)
	snap.SMA200 = e.smaLong.Calculate(closes)
	snap.EMA20 = e.emaShort.Calculate(closes)
	snap.EMA50 = e.emaLong.Calculate(closes)
	snap.Markers = e.computeMarkers(snap)

	return snap
}

// computeMarkers builds the per-bar bullish/bearish marker column. Later
// rules override earlier ones at the same bar: RSI bands, then MACD
// crossovers, then Bollinger proximity, then SMA Golden/Death Cross.
// The Bollinger proximity here uses the tight 1.01/0.99 chart-annotation
// thresholds; scoring and consolidation use their own wider 1.05/0.95
// profile.
func (e *Engine) computeMarkers(snap *Snapshot) []int {
	markers := make([]int, snap.Bars)

	for i := 0; i < snap.Bars; i++ {
		if rsi, ok := snap.RSI.At(i); ok {
			if rsi < 30 {
				markers[i] = 1
			} else if rsi > 70 {
				markers[i] = -1
			}
		}

		if CrossedAbove(snap.MACD, snap.MACDSignal, i) {
			markers[i] = 1
		} else if CrossedBelow(snap.MACD, snap.MACDSignal, i) {
			markers[i] = -1
		}

		if lower, ok := snap.BBLower.At(i); ok && snap.Closes[i] < lower*1.01 {
			markers[i] = 1
		}
		if upper, ok := snap.BBUpper.At(i); ok && snap.Closes[i] > upper*0.99 {
			markers[i] = -1
		}

		if CrossedAbove(snap.SMA50, snap.SMA200, i) {
			markers[i] = 1
		} else if CrossedBelow(snap.SMA50, snap.SMA200, i) {
			markers[i] = -1
		}
	}
	return markers
}

// Columns returns the snapshot as named series in a stable order, for
// persistence and charting consumers.
func (s *Snapshot) Columns() []NamedSeries {
	return []NamedSeries{
		{NameRSI, s.RSI},
		{NameMACD, s.MACD},
		{NameMACDSignal, s.MACDSignal},
		{NameMACDHist, s.MACDHist},
		{NameBBUpper, s.BBUpper},
		{NameBBMiddle, s.BBMiddle},
		{NameBBLower, s.BBLower},
		{NameSMA50, s.SMA50},
		{NameSMA200, s.SMA200},
		{NameEMA20, s.EMA20},
		{NameEMA50, s.EMA50},
	}
}

// NamedSeries pairs an indicator column name with its series.
type NamedSeries struct {
	Name   string
	Series Series
}

// Get returns the series for a canonical column name.
func (s *Snapshot) Get(name string) (Series, bool) {
	for _, col := range s.Columns() {
		if col.Name == name {
			return col.Series, true
		}
	}
	return nil, false
}

// LastClose returns the close of the latest bar.
func (s *Snapshot) LastClose() (float64, bool) {
	if s.Bars == 0 {
		return 0, false
	}
	return s.Closes[s.Bars-1], true
}
