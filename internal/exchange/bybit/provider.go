package bybit

import (
	"context"
	"fmt"

	"github.com/ducminhle1904/crypto-signal-engine/pkg/types"
)

// Provider adapts the Bybit kline API to the screener's data source
// interface.
type Provider struct {
	client   *Client
	category string
	interval KlineInterval
}

// NewProvider creates a provider fetching spot klines at the given interval.
func NewProvider(client *Client, interval KlineInterval) *Provider {
	return &Provider{
		client:   client,
		category: "spot",
		interval: interval,
	}
}

// GetName returns the name of the data provider
func (p *Provider) GetName() string {
	return fmt.Sprintf("Bybit %s Provider", p.client.Environment())
}

// Fetch loads up to bars of kline history for symbol and converts it to a
// validated price series.
func (p *Provider) Fetch(ctx context.Context, symbol string, bars int) (types.PriceSeries, error) {
	klines, err := p.client.GetKlines(ctx, KlineParams{
		Category: p.category,
		Symbol:   symbol,
		Interval: p.interval,
		Limit:    bars,
	})
	if err != nil {
		return nil, err
	}

	series := make(types.PriceSeries, len(klines))
	for i, k := range klines {
		series[i] = types.Bar{
			Timestamp: k.StartTime,
			Open:      k.OpenPrice,
			High:      k.HighPrice,
			Low:       k.LowPrice,
			Close:     k.ClosePrice,
			Volume:    k.Volume,
		}
	}

	if err := series.Validate(); err != nil {
		return nil, fmt.Errorf("invalid kline series for %s: %w", symbol, err)
	}
	return series, nil
}
