package data

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/ducminhle1904/crypto-signal-engine/pkg/types"
)

// CSVColumnMapping defines the column positions and timestamp layout of a
// CSV file.
type CSVColumnMapping struct {
	TimestampCol int
	OpenCol      int
	HighCol      int
	LowCol       int
	CloseCol     int
	VolumeCol    int
	MinColumns   int
	DateFormat   string
}

// DefaultCSVFormat matches "timestamp,open,high,low,close,volume" exports.
var DefaultCSVFormat = CSVColumnMapping{
	TimestampCol: 0,
	OpenCol:      1,
	HighCol:      2,
	LowCol:       3,
	CloseCol:     4,
	VolumeCol:    5,
	MinColumns:   6,
	DateFormat:   "2006-01-02 15:04:05",
}

// CSVProvider loads one file per symbol from a data directory.
type CSVProvider struct {
	dir    string
	format CSVColumnMapping
}

// NewCSVProvider creates a CSV provider reading <dir>/<symbol>.csv files in
// the default format.
func NewCSVProvider(dir string) *CSVProvider {
	return &CSVProvider{dir: dir, format: DefaultCSVFormat}
}

// NewCSVProviderWithFormat creates a CSV provider with a custom column layout.
func NewCSVProviderWithFormat(dir string, format CSVColumnMapping) *CSVProvider {
	return &CSVProvider{dir: dir, format: format}
}

// GetName returns the name of the data provider
func (p *CSVProvider) GetName() string {
	return "CSV Provider"
}

// Fetch reads the symbol's file and returns its most recent bars. The loaded
// series must satisfy the ingestion contract; a malformed file is an error,
// not a silently shortened series.
func (p *CSVProvider) Fetch(_ context.Context, symbol string, bars int) (types.PriceSeries, error) {
	path := filepath.Join(p.dir, symbol+".csv")
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open data file for %s: %w", symbol, err)
	}
	defer file.Close()

	series, err := p.parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("invalid series in %s: %w", path, err)
	}
	return tail(series, bars), nil
}

func (p *CSVProvider) parse(r io.Reader) (types.PriceSeries, error) {
	reader := csv.NewReader(r)

	// Skip header
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var series types.PriceSeries
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read error at line %d: %w", line, err)
		}
		line++

		if len(record) < p.format.MinColumns {
			return nil, fmt.Errorf("insufficient columns at line %d (expected %d, got %d)", line, p.format.MinColumns, len(record))
		}

		bar, err := p.parseRecord(record)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		series = append(series, bar)
	}
	return series, nil
}

func (p *CSVProvider) parseRecord(record []string) (types.Bar, error) {
	timestamp, err := time.Parse(p.format.DateFormat, record[p.format.TimestampCol])
	if err != nil {
		return types.Bar{}, fmt.Errorf("invalid timestamp %q: %w", record[p.format.TimestampCol], err)
	}

	open, err := strconv.ParseFloat(record[p.format.OpenCol], 64)
	if err != nil {
		return types.Bar{}, fmt.Errorf("invalid open %q: %w", record[p.format.OpenCol], err)
	}
	high, err := strconv.ParseFloat(record[p.format.HighCol], 64)
	if err != nil {
		return types.Bar{}, fmt.Errorf("invalid high %q: %w", record[p.format.HighCol], err)
	}
	low, err := strconv.ParseFloat(record[p.format.LowCol], 64)
	if err != nil {
		return types.Bar{}, fmt.Errorf("invalid low %q: %w", record[p.format.LowCol], err)
	}
	closePrice, err := strconv.ParseFloat(record[p.format.CloseCol], 64)
	if err != nil {
		return types.Bar{}, fmt.Errorf("invalid close %q: %w", record[p.format.CloseCol], err)
	}
	volume, err := strconv.ParseFloat(record[p.format.VolumeCol], 64)
	if err != nil {
		return types.Bar{}, fmt.Errorf("invalid volume %q: %w", record[p.format.VolumeCol], err)
	}

	return types.Bar{
		Timestamp: timestamp,
		Open:      open,
		High:      high,
		Low:       low,
		Close:     closePrice,
		Volume:    volume,
	}, nil
}
