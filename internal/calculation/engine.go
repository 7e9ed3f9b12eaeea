package calculation

import (
	"fmt"

	"github.com/rgehrsitz/zatax/internal/domain"
	"github.com/shopspring/decimal"
)

// TaxCalculator is anything that maps a TaxInput to a TaxResult.
// *Calculator and *CachingCalculator both implement it.
type TaxCalculator interface {
	Calculate(input domain.TaxInput) (domain.TaxResult, error)
}

// Calculator computes tax liability under one tax year's rule set. It is
// immutable after construction and safe for concurrent use.
type Calculator struct {
	rules  domain.RuleSet
	table  BracketTable
	logger Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithLogger sets the logger used for debug tracing of calculations.
func WithLogger(l Logger) Option {
	return func(c *Calculator) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewCalculator validates the rule set and compiles its bracket table.
func NewCalculator(rules domain.RuleSet, opts ...Option) (*Calculator, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	c := &Calculator{
		rules:  rules,
		table:  NewBracketTable(rules.Brackets),
		logger: NopLogger{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Calculate is a convenience wrapper that builds a Calculator for a single
// computation.
func Calculate(input domain.TaxInput, rules domain.RuleSet) (domain.TaxResult, error) {
	c, err := NewCalculator(rules)
	if err != nil {
		return domain.TaxResult{}, err
	}
	return c.Calculate(input)
}

// RuleSet returns the rule set the calculator was built from.
func (c *Calculator) RuleSet() domain.RuleSet { return c.rules }

// Table returns the compiled bracket table.
func (c *Calculator) Table() BracketTable { return c.table }

// Calculate validates input and computes the full result. On invalid input
// it returns a zero TaxResult and an error that matches
// domain.ErrInvalidInput.
func (c *Calculator) Calculate(input domain.TaxInput) (domain.TaxResult, error) {
	if err := input.Validate(); err != nil {
		c.logger.Debugf("rejected input: %v", err)
		return domain.TaxResult{}, err
	}

	rules := c.rules
	retirement := ComputeRetirementDeduction(input.RetirementContribution, input.GrossIncome, rules.RetirementLimit)
	taxable := ComputeTaxableIncome(input, rules.RetirementLimit)
	beforeRebates := ComputeTaxBeforeRebates(taxable, c.table)
	rebates := ComputeRebates(input.Age, rules.Rebates)
	afterRebates := decimal.Max(decimal.Zero, beforeRebates.Sub(rebates))
	credits := ComputeMedicalCredits(input.MedicalMonths, input.MedicalDependants, rules.MedicalCredits)
	afterCredits := decimal.Max(decimal.Zero, afterRebates.Sub(credits))

	net := afterCredits.Sub(input.PAYEWithheld).Sub(input.ProvisionalTaxPaid)

	result := domain.TaxResult{
		TaxYear:             rules.TaxYear,
		GrossIncome:         input.GrossIncome,
		RetirementDeduction: retirement,
		TaxableIncome:       taxable,
		TaxBeforeRebates:    beforeRebates,
		Rebates:             rebates,
		TaxAfterRebates:     afterRebates,
		MedicalCredits:      credits,
		TaxAfterCredits:     afterCredits,
		FinalLiability:      net,
		RefundAmount:        decimal.Zero,
		AmountOwing:         decimal.Zero,
		EffectiveRate:       decimal.Zero,
		MarginalRate:        MarginalRate(taxable, c.table),
		MonthlyTax:          afterCredits.Div(twelve),
		NetIncome:           input.GrossIncome.Sub(afterCredits),
	}

	if net.IsNegative() {
		result.IsRefund = true
		result.RefundAmount = net.Neg()
	} else {
		result.AmountOwing = net
	}

	if input.GrossIncome.IsPositive() {
		result.EffectiveRate = afterCredits.Div(input.GrossIncome)
	}

	threshold, ok := TaxThreshold(rebates, c.table)
	if ok {
		result.TaxThreshold = threshold.Ceil()
		result.BelowThreshold = taxable.LessThanOrEqual(threshold)
	} else {
		result.TaxThreshold = decimal.Zero
		result.BelowThreshold = true
	}

	c.logger.Debugf("tax year %d: taxable=%s before_rebates=%s after_credits=%s final=%s",
		rules.TaxYear, taxable.StringFixed(2), beforeRebates.StringFixed(2),
		afterCredits.StringFixed(2), net.StringFixed(2))

	return result, nil
}

// String describes the calculator for log output.
func (c *Calculator) String() string {
	return fmt.Sprintf("Calculator(tax_year=%d, brackets=%d)", c.rules.TaxYear, c.table.Len())
}
