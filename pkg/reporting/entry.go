// Package reporting renders screener results as console tables and Excel
// workbooks.
package reporting

import (
	"fmt"

	"github.com/ducminhle1904/crypto-signal-engine/internal/advisor"
	"github.com/ducminhle1904/crypto-signal-engine/internal/analysis"
	"github.com/ducminhle1904/crypto-signal-engine/internal/indicators"
)

// Entry is one ranked symbol with everything the reporters need to render it.
type Entry struct {
	Rank     int
	Symbol   string
	Score    float64
	Signal   analysis.Signal
	Snapshot *indicators.Snapshot
	Advisory *advisor.Report // nil when no advisory was requested
}

// BuildEntries joins a ranking with its evaluations and optional advisories
// into render-ready entries, preserving the ranking order. Symbols missing
// from evals are dropped.
func BuildEntries(ranked []analysis.SymbolScore, evals map[string]*analysis.Evaluation, advisories map[string]advisor.Report) []Entry {
	entries := make([]Entry, 0, len(ranked))
	for _, score := range ranked {
		eval, ok := evals[score.Symbol]
		if !ok || eval == nil {
			continue
		}

		entry := Entry{
			Rank:     len(entries) + 1,
			Symbol:   score.Symbol,
			Score:    score.Score,
			Signal:   eval.Signal,
			Snapshot: eval.Snapshot,
		}
		if advisory, ok := advisories[score.Symbol]; ok {
			report := advisory
			entry.Advisory = &report
		}
		entries = append(entries, entry)
	}
	return entries
}

// signalText formats a consolidated signal as a single cell value.
func signalText(sig analysis.Signal) string {
	if sig.Strength == "" {
		return string(sig.Direction)
	}
	return fmt.Sprintf("%s (%s)", sig.Direction, sig.Strength)
}

// lastClose returns the latest close formatted for display, or a dash for an
// empty snapshot.
func lastClose(snap *indicators.Snapshot) string {
	if snap == nil {
		return "-"
	}
	close, ok := snap.LastClose()
	if !ok {
		return "-"
	}
	return fmt.Sprintf("%.2f", close)
}
