// Package data supplies price series to the screener from CSV files, a
// synthetic demo generator, or any other source implementing Provider.
package data

import (
	"context"

	"github.com/ducminhle1904/crypto-signal-engine/pkg/types"
)

// Provider loads the price series of one symbol.
type Provider interface {
	// Fetch returns up to bars of the most recent history for symbol.
	Fetch(ctx context.Context, symbol string, bars int) (types.PriceSeries, error)

	// GetName returns the name of the data provider
	GetName() string
}

// FetchAll loads every requested symbol through the provider. Symbols that
// fail are reported through the returned error map; the good series are
// still returned.
func FetchAll(ctx context.Context, p Provider, symbols []string, bars int) (map[string]types.PriceSeries, map[string]error) {
	series := make(map[string]types.PriceSeries, len(symbols))
	errs := make(map[string]error)

	for _, symbol := range symbols {
		s, err := p.Fetch(ctx, symbol, bars)
		if err != nil {
			errs[symbol] = err
			continue
		}
		series[symbol] = s
	}
	return series, errs
}

// tail keeps the most recent n bars.
func tail(series types.PriceSeries, n int) types.PriceSeries {
	if n <= 0 || len(series) <= n {
		return series
	}
	return series[len(series)-n:]
}
