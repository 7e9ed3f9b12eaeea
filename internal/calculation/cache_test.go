package calculation

import (
	"sync"
	"testing"
	"time"

	"github.com/rgehrsitz/zatax/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingCalculator counts calls to the wrapped calculator.
type countingCalculator struct {
	mu    sync.Mutex
	calls int
	inner TaxCalculator
}

func (c *countingCalculator) Calculate(in domain.TaxInput) (domain.TaxResult, error) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
	return c.inner.Calculate(in)
}

func TestCachingCalculator_MemoizesValidInputs(t *testing.T) {
	counter := &countingCalculator{inner: mustCalculator(rules2025())}
	cached := NewCachingCalculator(counter, time.Minute)

	in := domain.TaxInput{GrossIncome: d(450000), Age: 40}
	first, err := cached.Calculate(in)
	require.NoError(t, err)
	second, err := cached.Calculate(in)
	require.NoError(t, err)

	assert.Equal(t, 1, counter.calls)
	assert.Equal(t, 1, cached.Len())
	assert.True(t, first.AmountOwing.Equal(second.AmountOwing))

	// Same value, different scale, same key.
	in.GrossIncome = in.GrossIncome.Round(2)
	_, err = cached.Calculate(in)
	require.NoError(t, err)
	assert.Equal(t, 1, counter.calls)
}

func TestCachingCalculator_DoesNotCacheErrors(t *testing.T) {
	counter := &countingCalculator{inner: mustCalculator(rules2025())}
	cached := NewCachingCalculator(counter, time.Minute)

	bad := domain.TaxInput{GrossIncome: d(-10)}
	_, err := cached.Calculate(bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = cached.Calculate(bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Equal(t, 2, counter.calls)
	assert.Equal(t, 0, cached.Len())
}

func TestCachingCalculator_Flush(t *testing.T) {
	cached := NewCachingCalculator(mustCalculator(rules2025()), 0)

	for _, income := range []int64{100000, 200000, 300000} {
		_, err := cached.Calculate(domain.TaxInput{GrossIncome: d(income)})
		require.NoError(t, err)
	}
	assert.Equal(t, 3, cached.Len())

	cached.Flush()
	assert.Equal(t, 0, cached.Len())
}

func TestCachingCalculator_MatchesUncached(t *testing.T) {
	calc := mustCalculator(rules2025())
	cached := NewCachingCalculator(calc, time.Minute)

	in := domain.TaxInput{GrossIncome: d(1234567), Age: 70, MedicalMonths: 12, MedicalDependants: 1}
	want, err := calc.Calculate(in)
	require.NoError(t, err)
	for i := 0; i < 2; i++ {
		got, err := cached.Calculate(in)
		require.NoError(t, err)
		assert.True(t, want.FinalLiability.Equal(got.FinalLiability))
		assert.True(t, want.TaxThreshold.Equal(got.TaxThreshold))
	}
}
