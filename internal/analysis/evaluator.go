package analysis

import (
	"sync"

	"github.com/ducminhle1904/crypto-signal-engine/internal/indicators"
	"github.com/ducminhle1904/crypto-signal-engine/pkg/types"
)

// Evaluation is the complete per-symbol result of one engine pass.
type Evaluation struct {
	Symbol   string
	Snapshot *indicators.Snapshot
	Score    float64
	Signal   Signal
}

// Evaluator runs the full pipeline (indicators, score, consolidated signal)
// over a batch of symbols.
type Evaluator struct {
	engine *indicators.Engine
}

// NewEvaluator creates an evaluator with the default indicator engine.
func NewEvaluator() *Evaluator {
	return &Evaluator{engine: indicators.NewEngine()}
}

// EvaluateSymbol runs the pipeline for a single symbol. An empty series
// yields nil: the symbol is skipped rather than scored on no data.
func (e *Evaluator) EvaluateSymbol(symbol string, series types.PriceSeries, selected IndicatorSet) *Evaluation {
	if len(series) == 0 {
		return nil
	}

	snap := e.engine.Compute(series)
	return &Evaluation{
		Symbol:   symbol,
		Snapshot: snap,
		Score:    ScoreSnapshot(snap, selected),
		Signal:   Consolidate(snap, selected),
	}
}

// EvaluateAll evaluates every symbol concurrently. Each symbol's pipeline
// touches only its own series, so there is no ordering between symbols;
// empty series are skipped.
func (e *Evaluator) EvaluateAll(data map[string]types.PriceSeries, selected IndicatorSet) map[string]*Evaluation {
	results := make(map[string]*Evaluation, len(data))
	var wg sync.WaitGroup
	var mu sync.Mutex

	for symbol, series := range data {
		wg.Add(1)
		go func(sym string, s types.PriceSeries) {
			defer wg.Done()

			eval := e.EvaluateSymbol(sym, s, selected)
			if eval == nil {
				return
			}

			mu.Lock()
			results[sym] = eval
			mu.Unlock()
		}(symbol, series)
	}

	wg.Wait()
	return results
}
