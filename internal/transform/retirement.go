package transform

import (
	"fmt"

	"github.com/rgehrsitz/zatax/internal/domain"
	"github.com/shopspring/decimal"
)

// SetRetirementContribution replaces the annual retirement fund
// contribution with an absolute amount.
type SetRetirementContribution struct {
	Amount decimal.Decimal
}

func (t *SetRetirementContribution) Name() string {
	return "set_retirement"
}

func (t *SetRetirementContribution) Description() string {
	return fmt.Sprintf("Set retirement contributions to R%s", t.Amount.StringFixed(2))
}

func (t *SetRetirementContribution) Validate(domain.TaxInput) error {
	if t.Amount.IsNegative() {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("amount must be non-negative, got %s", t.Amount), nil)
	}
	return nil
}

func (t *SetRetirementContribution) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	base.RetirementContribution = t.Amount
	return base, nil
}

// RaiseRetirementContribution adds to the existing contribution. This is
// the "top up my RA" scenario.
type RaiseRetirementContribution struct {
	Amount decimal.Decimal
}

func (t *RaiseRetirementContribution) Name() string {
	return "raise_retirement"
}

func (t *RaiseRetirementContribution) Description() string {
	return fmt.Sprintf("Contribute an extra R%s to retirement funds", t.Amount.StringFixed(2))
}

func (t *RaiseRetirementContribution) Validate(domain.TaxInput) error {
	if !t.Amount.IsPositive() {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("amount must be positive, got %s", t.Amount), nil)
	}
	return nil
}

func (t *RaiseRetirementContribution) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	base.RetirementContribution = base.RetirementContribution.Add(t.Amount)
	return base, nil
}

// MaximizeRetirementContribution sets the contribution to the largest
// deductible amount under the given limit.
type MaximizeRetirementContribution struct {
	Limit domain.RetirementLimit
}

func (t *MaximizeRetirementContribution) Name() string {
	return "max_retirement"
}

func (t *MaximizeRetirementContribution) Description() string {
	return fmt.Sprintf("Contribute the maximum deductible amount (%s%% of income, capped at R%s)",
		t.Limit.PercentageOfIncome.Mul(decimal.NewFromInt(100)).String(), t.Limit.AbsoluteCap.StringFixed(0))
}

func (t *MaximizeRetirementContribution) Validate(domain.TaxInput) error {
	if !t.Limit.AbsoluteCap.IsPositive() || !t.Limit.PercentageOfIncome.IsPositive() {
		return NewTransformError(t.Name(), "validate", "retirement limit must be positive", nil)
	}
	return nil
}

func (t *MaximizeRetirementContribution) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	max := decimal.Min(base.GrossIncome.Mul(t.Limit.PercentageOfIncome), t.Limit.AbsoluteCap)
	base.RetirementContribution = max.Round(2)
	return base, nil
}
