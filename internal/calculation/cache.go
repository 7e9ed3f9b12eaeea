package calculation

import (
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rgehrsitz/zatax/internal/domain"
)

// CachingCalculator memoizes results on the full input tuple. Results are
// a pure function of the input, so a hit is indistinguishable from a fresh
// calculation. Rejected inputs are never stored.
type CachingCalculator struct {
	calc  TaxCalculator
	cache *cache.Cache
}

// NewCachingCalculator wraps calc with a cache whose entries live for ttl.
// A ttl <= 0 keeps entries until the process exits.
func NewCachingCalculator(calc TaxCalculator, ttl time.Duration) *CachingCalculator {
	cleanup := 2 * ttl
	if ttl <= 0 {
		ttl, cleanup = cache.NoExpiration, 0
	}
	return &CachingCalculator{calc: calc, cache: cache.New(ttl, cleanup)}
}

// Calculate returns a memoized result or delegates to the wrapped calculator.
func (cc *CachingCalculator) Calculate(input domain.TaxInput) (domain.TaxResult, error) {
	key := input.CacheKey()
	if cached, found := cc.cache.Get(key); found {
		return cached.(domain.TaxResult), nil
	}
	result, err := cc.calc.Calculate(input)
	if err != nil {
		return domain.TaxResult{}, err
	}
	cc.cache.Set(key, result, cache.DefaultExpiration)
	return result, nil
}

// Len returns the number of cached results.
func (cc *CachingCalculator) Len() int { return cc.cache.ItemCount() }

// Flush drops every cached result.
func (cc *CachingCalculator) Flush() { cc.cache.Flush() }
