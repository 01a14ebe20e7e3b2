package reporting

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// ExcelReporter writes screener results as a multi-sheet workbook.
type ExcelReporter struct{}

// NewExcelReporter creates a new Excel reporter
func NewExcelReporter() *ExcelReporter {
	return &ExcelReporter{}
}

// excelStyles holds the style IDs shared across sheets.
type excelStyles struct {
	Header int
	Number int
}

// WriteWorkbook writes the ranking, signals and latest indicator readings to
// an xlsx file, creating parent directories as needed.
func (r *ExcelReporter) WriteWorkbook(path string, entries []Entry) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	fx := excelize.NewFile()
	defer fx.Close()

	const rankingSheet = "Ranking"
	const signalsSheet = "Signals"
	const indicatorsSheet = "Indicators"

	fx.SetSheetName(fx.GetSheetName(0), rankingSheet)
	fx.NewSheet(signalsSheet)
	fx.NewSheet(indicatorsSheet)

	styles, err := r.createStyles(fx)
	if err != nil {
		return err
	}

	if err := r.writeRankingSheet(fx, rankingSheet, entries, styles); err != nil {
		return err
	}
	if err := r.writeSignalsSheet(fx, signalsSheet, entries, styles); err != nil {
		return err
	}
	if err := r.writeIndicatorsSheet(fx, indicatorsSheet, entries, styles); err != nil {
		return err
	}

	return fx.SaveAs(path)
}

// createStyles creates the shared workbook styles.
func (r *ExcelReporter) createStyles(fx *excelize.File) (excelStyles, error) {
	var styles excelStyles
	var err error

	// Header style - dark slate background with white text
	styles.Header, err = fx.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold:   true,
			Size:   11,
			Color:  "FFFFFF",
			Family: "Calibri",
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"2F4F4F"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return styles, err
	}

	// Number style (right aligned, two decimals)
	styles.Number, err = fx.NewStyle(&excelize.Style{
		NumFmt: 2,
		Alignment: &excelize.Alignment{
			Horizontal: "right",
		},
	})
	return styles, err
}

func (r *ExcelReporter) writeHeader(fx *excelize.File, sheet string, headers []string, styles excelStyles) error {
	for i, header := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := fx.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
		if err := fx.SetCellStyle(sheet, cell, cell, styles.Header); err != nil {
			return err
		}
	}
	return nil
}

func (r *ExcelReporter) writeRankingSheet(fx *excelize.File, sheet string, entries []Entry, styles excelStyles) error {
	headers := []string{"Rank", "Symbol", "Score", "Signal", "Last Close"}
	if err := r.writeHeader(fx, sheet, headers, styles); err != nil {
		return err
	}

	for i, entry := range entries {
		row := i + 2
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), entry.Rank)
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), entry.Symbol)
		fx.SetCellValue(sheet, fmt.Sprintf("C%d", row), entry.Score)
		fx.SetCellValue(sheet, fmt.Sprintf("D%d", row), signalText(entry.Signal))
		if entry.Snapshot != nil {
			if close, ok := entry.Snapshot.LastClose(); ok {
				fx.SetCellValue(sheet, fmt.Sprintf("E%d", row), close)
			}
		}
		fx.SetCellStyle(sheet, fmt.Sprintf("C%d", row), fmt.Sprintf("C%d", row), styles.Number)
		fx.SetCellStyle(sheet, fmt.Sprintf("E%d", row), fmt.Sprintf("E%d", row), styles.Number)
	}

	fx.SetColWidth(sheet, "B", "B", 12)
	fx.SetColWidth(sheet, "D", "D", 18)
	return nil
}

func (r *ExcelReporter) writeSignalsSheet(fx *excelize.File, sheet string, entries []Entry, styles excelStyles) error {
	headers := []string{"Symbol", "Direction", "Strength", "Reason", "Advice", "Detail", "Value"}
	if err := r.writeHeader(fx, sheet, headers, styles); err != nil {
		return err
	}

	// One row per indicator detail; the symbol-level columns repeat only on
	// the first detail row so the sheet stays scannable.
	row := 2
	for _, entry := range entries {
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), entry.Symbol)
		fx.SetCellValue(sheet, fmt.Sprintf("B%d", row), string(entry.Signal.Direction))
		fx.SetCellValue(sheet, fmt.Sprintf("C%d", row), string(entry.Signal.Strength))
		fx.SetCellValue(sheet, fmt.Sprintf("D%d", row), entry.Signal.Reason)
		fx.SetCellValue(sheet, fmt.Sprintf("E%d", row), entry.Signal.Advice)

		if len(entry.Signal.Details) == 0 {
			row++
			continue
		}
		for _, detail := range entry.Signal.Details {
			fx.SetCellValue(sheet, fmt.Sprintf("F%d", row), detail.Label)
			fx.SetCellValue(sheet, fmt.Sprintf("G%d", row), detail.Value)
			row++
		}
	}

	fx.SetColWidth(sheet, "D", "E", 50)
	fx.SetColWidth(sheet, "F", "G", 24)
	return nil
}

func (r *ExcelReporter) writeIndicatorsSheet(fx *excelize.File, sheet string, entries []Entry, styles excelStyles) error {
	headers := []string{"Symbol"}
	var columnNames []string
	if len(entries) > 0 && entries[0].Snapshot != nil {
		for _, col := range entries[0].Snapshot.Columns() {
			columnNames = append(columnNames, col.Name)
		}
	}
	headers = append(headers, columnNames...)
	headers = append(headers, "Marker")
	if err := r.writeHeader(fx, sheet, headers, styles); err != nil {
		return err
	}

	for i, entry := range entries {
		row := i + 2
		fx.SetCellValue(sheet, fmt.Sprintf("A%d", row), entry.Symbol)
		if entry.Snapshot == nil || entry.Snapshot.Bars == 0 {
			continue
		}

		last := entry.Snapshot.Bars - 1
		for j, col := range entry.Snapshot.Columns() {
			cell, err := excelize.CoordinatesToCellName(j+2, row)
			if err != nil {
				return err
			}
			// Warm-up values stay blank.
			if v, ok := col.Series.At(last); ok {
				fx.SetCellValue(sheet, cell, v)
				fx.SetCellStyle(sheet, cell, cell, styles.Number)
			}
		}

		markerCell, err := excelize.CoordinatesToCellName(len(columnNames)+2, row)
		if err != nil {
			return err
		}
		fx.SetCellValue(sheet, markerCell, entry.Snapshot.Markers[last])
	}

	fx.SetColWidth(sheet, "A", "A", 12)
	return nil
}
