package data

import (
	"context"
	"fmt"
	"sync"

	"github.com/ducminhle1904/crypto-signal-engine/pkg/types"
)

// CachedProvider wraps another Provider with an in-memory cache keyed on
// symbol and bar count. Series are copied on the way in and out, so cached
// data cannot be mutated by callers.
type CachedProvider struct {
	provider Provider

	mutex sync.RWMutex
	cache map[string]types.PriceSeries
}

// NewCachedProvider creates a new cached data provider.
func NewCachedProvider(provider Provider) *CachedProvider {
	return &CachedProvider{
		provider: provider,
		cache:    make(map[string]types.PriceSeries),
	}
}

// GetName returns the name of the underlying provider with cache indication
func (p *CachedProvider) GetName() string {
	return "Cached " + p.provider.GetName()
}

// Fetch returns the cached series when present, otherwise delegates to the
// underlying provider and caches the result.
func (p *CachedProvider) Fetch(ctx context.Context, symbol string, bars int) (types.PriceSeries, error) {
	key := cacheKey(symbol, bars)

	p.mutex.RLock()
	cached, ok := p.cache[key]
	p.mutex.RUnlock()
	if ok {
		return copySeries(cached), nil
	}

	series, err := p.provider.Fetch(ctx, symbol, bars)
	if err != nil {
		return nil, err
	}

	p.mutex.Lock()
	p.cache[key] = copySeries(series)
	p.mutex.Unlock()

	return series, nil
}

// ClearCache drops all cached series.
func (p *CachedProvider) ClearCache() {
	p.mutex.Lock()
	defer p.mutex.Unlock()
	p.cache = make(map[string]types.PriceSeries)
}

// CacheSize returns the number of cached entries.
func (p *CachedProvider) CacheSize() int {
	p.mutex.RLock()
	defer p.mutex.RUnlock()
	return len(p.cache)
}

func cacheKey(symbol string, bars int) string {
	return fmt.Sprintf("%s:%d", symbol, bars)
}

func copySeries(series types.PriceSeries) types.PriceSeries {
	out := make(types.PriceSeries, len(series))
	copy(out, series)
	return out
}
