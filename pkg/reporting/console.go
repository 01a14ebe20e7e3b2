package reporting

import (
	"fmt"
	"io"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// ConsoleReporter renders screener output as rounded tables.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a reporter writing to stdout.
func NewConsoleReporter() *ConsoleReporter {
	return &ConsoleReporter{out: os.Stdout}
}

// NewConsoleReporterTo creates a reporter writing to w.
func NewConsoleReporterTo(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: w}
}

// RenderRanking prints the ranked symbol table.
func (r *ConsoleReporter) RenderRanking(entries []Entry) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle("MOST PROMISING ASSETS")
	t.SetStyle(table.StyleRounded)

	t.AppendHeader(table.Row{"Rank", "Symbol", "Score", "Signal", "Last Close"})
	for _, entry := range entries {
		t.AppendRow(table.Row{
			entry.Rank,
			entry.Symbol,
			fmt.Sprintf("%.1f", entry.Score),
			signalText(entry.Signal),
			lastClose(entry.Snapshot),
		})
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 5, Align: text.AlignRight},
	})

	t.Render()
	fmt.Fprintln(r.out)
}

// RenderSignal prints the full consolidated signal for one symbol, with the
// per-indicator details in their evaluation order.
func (r *ConsoleReporter) RenderSignal(entry Entry) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle(fmt.Sprintf("SIGNAL: %s", entry.Symbol))
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"Signal", signalText(entry.Signal)},
		{"Score", fmt.Sprintf("%.1f", entry.Score)},
		{"Reason", entry.Signal.Reason},
		{"Advice", entry.Signal.Advice},
	})

	if len(entry.Signal.Details) > 0 {
		t.AppendSeparator()
		for _, detail := range entry.Signal.Details {
			t.AppendRow(table.Row{detail.Label, detail.Value})
		}
	}

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 15, WidthMax: 18, Align: text.AlignLeft},
		{Number: 2, WidthMin: 30, WidthMax: 60, Align: text.AlignLeft},
	})

	t.Render()
	fmt.Fprintln(r.out)
}

// RenderAdvisory prints the advisory report for one symbol. Entries without
// an advisory are skipped.
func (r *ConsoleReporter) RenderAdvisory(entry Entry) {
	if entry.Advisory == nil {
		return
	}
	advisory := entry.Advisory

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetTitle(fmt.Sprintf("ADVISORY: %s", entry.Symbol))
	t.SetStyle(table.StyleRounded)

	t.AppendRows([]table.Row{
		{"Recommendation", string(advisory.Recommendation)},
		{"Risk Level", fmt.Sprintf("%d/5", advisory.RiskLevel)},
	})
	t.AppendSeparator()
	t.AppendRows([]table.Row{
		{"Market", advisory.MarketAnalysis},
		{"Technical", advisory.TechnicalAnalysis},
		{"Short Term", advisory.ShortTermOutlook},
		{"Medium Term", advisory.MediumTermOutlook},
	})

	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, WidthMin: 15, WidthMax: 15, Align: text.AlignLeft},
		{Number: 2, WidthMin: 40, WidthMax: 70, Align: text.AlignLeft},
	})

	t.Render()
	fmt.Fprintln(r.out)
}

// RenderAll prints the ranking followed by the signal and advisory of every
// ranked symbol.
func (r *ConsoleReporter) RenderAll(entries []Entry) {
	r.RenderRanking(entries)
	for _, entry := range entries {
		r.RenderSignal(entry)
		r.RenderAdvisory(entry)
	}
}
