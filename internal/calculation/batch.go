package calculation

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/zatax/internal/domain"
	"golang.org/x/sync/errgroup"
)

// CalculateBatch evaluates inputs with at most concurrency calculations in
// flight (unlimited when concurrency <= 0). Results keep the input order.
// The first failure cancels the remaining work and no results are returned.
func CalculateBatch(ctx context.Context, calc TaxCalculator, inputs []domain.TaxInput, concurrency int) ([]domain.TaxResult, error) {
	results := make([]domain.TaxResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	if concurrency > 0 {
		g.SetLimit(concurrency)
	}
	for i := range inputs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := calc.Calculate(inputs[i])
			if err != nil {
				return fmt.Errorf("record %d: %w", i, err)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
