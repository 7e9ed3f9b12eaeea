package transform

import (
	"fmt"

	"github.com/rgehrsitz/zatax/internal/domain"
	"github.com/shopspring/decimal"
)

// AddOtherDeductions adds a deductible amount such as a donation.
type AddOtherDeductions struct {
	Amount decimal.Decimal
	Label  string
}

func (t *AddOtherDeductions) Name() string {
	return "add_deductions"
}

func (t *AddOtherDeductions) Description() string {
	label := t.Label
	if label == "" {
		label = "deductions"
	}
	return fmt.Sprintf("Claim an extra R%s in %s", t.Amount.StringFixed(2), label)
}

func (t *AddOtherDeductions) Validate(domain.TaxInput) error {
	if !t.Amount.IsPositive() {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("amount must be positive, got %s", t.Amount), nil)
	}
	return nil
}

func (t *AddOtherDeductions) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	base.OtherDeductions = base.OtherDeductions.Add(t.Amount)
	return base, nil
}

// AddIncome raises gross income, e.g. for a salary increase or bonus.
type AddIncome struct {
	Amount decimal.Decimal
}

func (t *AddIncome) Name() string {
	return "add_income"
}

func (t *AddIncome) Description() string {
	return fmt.Sprintf("Earn an extra R%s", t.Amount.StringFixed(2))
}

func (t *AddIncome) Validate(base domain.TaxInput) error {
	if base.GrossIncome.Add(t.Amount).IsNegative() {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("income cannot drop below zero (base %s, change %s)", base.GrossIncome, t.Amount), nil)
	}
	return nil
}

func (t *AddIncome) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	base.GrossIncome = base.GrossIncome.Add(t.Amount)
	return base, nil
}

// SetAge changes the taxpayer's age, which moves them between rebate tiers.
type SetAge struct {
	Age int
}

func (t *SetAge) Name() string {
	return "set_age"
}

func (t *SetAge) Description() string {
	return fmt.Sprintf("Be %d at the end of the tax year", t.Age)
}

func (t *SetAge) Validate(domain.TaxInput) error {
	if t.Age < 0 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("age must be non-negative, got %d", t.Age), nil)
	}
	return nil
}

func (t *SetAge) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	base.Age = t.Age
	return base, nil
}
