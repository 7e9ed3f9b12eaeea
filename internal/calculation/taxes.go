package calculation

import (
	"github.com/rgehrsitz/zatax/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Brackets are contiguous and lower-inclusive: income exactly on a
//    threshold is taxed (at the margin) by the higher bracket. Tax is
//    continuous across thresholds because each bracket's base is the
//    cumulative tax of all brackets below it.
//
// 2. Rebates are cumulative: 65+ gets primary + secondary, 75+ gets
//    primary + secondary + tertiary.
//
// 3. Medical scheme fees tax credits scale with months of membership. The
//    main member and first dependant share one monthly rate; every further
//    dependant gets the lower additional rate.
//
// 4. Retirement fund contributions are deductible up to the smaller of a
//    percentage of gross income and an absolute cap.
//
// All functions here assume validated, non-negative input.

var twelve = decimal.NewFromInt(domain.MonthsPerYear)

// BracketTable is a compiled, validated set of brackets with precomputed
// cumulative bases.
type BracketTable struct {
	brackets []domain.TaxBracket
	bases    []decimal.Decimal
}

// NewBracketTable compiles brackets that have already passed
// RuleSet.Validate.
func NewBracketTable(brackets []domain.TaxBracket) BracketTable {
	cp := append([]domain.TaxBracket(nil), brackets...)
	return BracketTable{brackets: cp, bases: domain.CumulativeBases(cp)}
}

// Len returns the number of brackets.
func (t BracketTable) Len() int { return len(t.brackets) }

// Bracket returns bracket i and its cumulative base.
func (t BracketTable) Bracket(i int) (domain.TaxBracket, decimal.Decimal) {
	return t.brackets[i], t.bases[i]
}

// index finds the bracket whose [Lower, Upper) range holds amount.
func (t BracketTable) index(amount decimal.Decimal) int {
	for i := len(t.brackets) - 1; i > 0; i-- {
		if amount.GreaterThanOrEqual(t.brackets[i].Lower) {
			return i
		}
	}
	return 0
}

// ComputeRetirementDeduction clamps a retirement fund contribution to the
// statutory limit: min(contribution, grossIncome × percentage, cap).
func ComputeRetirementDeduction(contribution, grossIncome decimal.Decimal, limit domain.RetirementLimit) decimal.Decimal {
	percentageCap := grossIncome.Mul(limit.PercentageOfIncome)
	return decimal.Min(contribution, percentageCap, limit.AbsoluteCap)
}

// ComputeTaxableIncome subtracts the allowed retirement deduction and other
// deductions from gross income, never going below zero.
func ComputeTaxableIncome(input domain.TaxInput, limit domain.RetirementLimit) decimal.Decimal {
	retirement := ComputeRetirementDeduction(input.RetirementContribution, input.GrossIncome, limit)
	taxable := input.GrossIncome.Sub(retirement).Sub(input.OtherDeductions)
	return decimal.Max(decimal.Zero, taxable)
}

// ComputeTaxBeforeRebates applies the progressive rate table:
// base of the containing bracket + (income − lower) × rate.
func ComputeTaxBeforeRebates(taxableIncome decimal.Decimal, table BracketTable) decimal.Decimal {
	if !taxableIncome.IsPositive() || table.Len() == 0 {
		return decimal.Zero
	}
	i := table.index(taxableIncome)
	b := table.brackets[i]
	return table.bases[i].Add(taxableIncome.Sub(b.Lower).Mul(b.Rate))
}

// MarginalRate returns the rate of the bracket containing taxableIncome.
func MarginalRate(taxableIncome decimal.Decimal, table BracketTable) decimal.Decimal {
	if table.Len() == 0 {
		return decimal.Zero
	}
	return table.brackets[table.index(taxableIncome)].Rate
}

// ComputeRebates returns the total rebate for a taxpayer of the given age.
// Precondition: age >= 0.
func ComputeRebates(age int, schedule domain.RebateSchedule) decimal.Decimal {
	rebate := schedule.Primary
	if age >= domain.SecondaryRebateAge {
		rebate = rebate.Add(schedule.Secondary)
	}
	if age >= domain.TertiaryRebateAge {
		rebate = rebate.Add(schedule.Tertiary)
	}
	return rebate
}

// ComputeMedicalCredits returns the annual medical scheme fees tax credit
// for the months of membership and number of dependants.
func ComputeMedicalCredits(medicalMonths, dependants int, schedule domain.MedicalCreditSchedule) decimal.Decimal {
	months := decimal.NewFromInt(int64(medicalMonths))
	credits := months.Mul(schedule.MainMemberMonthly)
	if dependants >= 1 {
		credits = credits.Add(months.Mul(schedule.FirstDependantMonthly))
	}
	if dependants >= 2 {
		extra := decimal.NewFromInt(int64(dependants - 1))
		credits = credits.Add(months.Mul(schedule.AdditionalDependantMonthly).Mul(extra))
	}
	return credits
}

// TaxThreshold returns the taxable income at which tax before rebates
// first equals the rebate, i.e. below which nothing is payable. ok is false
// when no bracket ever reaches the rebate (all rates zero).
func TaxThreshold(rebate decimal.Decimal, table BracketTable) (threshold decimal.Decimal, ok bool) {
	if !rebate.IsPositive() {
		return decimal.Zero, true
	}
	for i, b := range table.brackets {
		if b.Rate.IsZero() {
			continue
		}
		base := table.bases[i]
		if !b.Unbounded() {
			top := base.Add(b.Upper.Sub(b.Lower).Mul(b.Rate))
			if top.LessThan(rebate) {
				continue
			}
		}
		return b.Lower.Add(rebate.Sub(base).Div(b.Rate)), true
	}
	return decimal.Zero, false
}
