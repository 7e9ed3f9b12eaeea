package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// MonthsPerYear bounds TaxInput.MedicalMonths.
const MonthsPerYear = 12

// TaxInput is the flat record supplied for a single calculation. All money
// fields are annual amounts in rand.
type TaxInput struct {
	GrossIncome            decimal.Decimal `yaml:"gross_income" json:"gross_income"`
	Age                    int             `yaml:"age" json:"age"`
	RetirementContribution decimal.Decimal `yaml:"retirement_contribution" json:"retirement_contribution"`
	MedicalMonths          int             `yaml:"medical_months" json:"medical_months"`
	MedicalDependants      int             `yaml:"medical_dependants" json:"medical_dependants"` // excludes the main member
	PAYEWithheld           decimal.Decimal `yaml:"paye_withheld" json:"paye_withheld"`
	ProvisionalTaxPaid     decimal.Decimal `yaml:"provisional_tax_paid" json:"provisional_tax_paid"`
	OtherDeductions        decimal.Decimal `yaml:"other_deductions" json:"other_deductions"`
}

// Validate reports every precondition the input violates. Amounts are
// decimals, so only sign and range checks are needed here; finiteness is
// enforced where floats are converted (see internal/intake).
func (in TaxInput) Validate() error {
	var errs error
	money := []struct {
		field string
		value decimal.Decimal
	}{
		{"gross_income", in.GrossIncome},
		{"retirement_contribution", in.RetirementContribution},
		{"paye_withheld", in.PAYEWithheld},
		{"provisional_tax_paid", in.ProvisionalTaxPaid},
		{"other_deductions", in.OtherDeductions},
	}
	for _, m := range money {
		if m.value.IsNegative() {
			errs = multierr.Append(errs, NewInputError(m.field, "cannot be negative"))
		}
	}
	if in.Age < 0 {
		errs = multierr.Append(errs, NewInputError("age", "cannot be negative"))
	}
	if in.MedicalMonths < 0 || in.MedicalMonths > MonthsPerYear {
		errs = multierr.Append(errs, NewInputError("medical_months", fmt.Sprintf("must be between 0 and %d", MonthsPerYear)))
	}
	if in.MedicalDependants < 0 {
		errs = multierr.Append(errs, NewInputError("medical_dependants", "cannot be negative"))
	}
	return errs
}

// CacheKey renders the input tuple as a stable string. Decimals are
// normalised so that 100 and 100.00 share a key.
func (in TaxInput) CacheKey() string {
	return fmt.Sprintf("%s|%d|%s|%d|%d|%s|%s|%s",
		in.GrossIncome.String(), in.Age, in.RetirementContribution.String(),
		in.MedicalMonths, in.MedicalDependants,
		in.PAYEWithheld.String(), in.ProvisionalTaxPaid.String(), in.OtherDeductions.String())
}

// TaxResult is the fully populated outcome of one calculation. It is never
// returned partially filled.
type TaxResult struct {
	TaxYear             int             `yaml:"tax_year" json:"tax_year"`
	GrossIncome         decimal.Decimal `yaml:"gross_income" json:"gross_income"`
	RetirementDeduction decimal.Decimal `yaml:"retirement_deduction" json:"retirement_deduction"`
	TaxableIncome       decimal.Decimal `yaml:"taxable_income" json:"taxable_income"`
	TaxBeforeRebates    decimal.Decimal `yaml:"tax_before_rebates" json:"tax_before_rebates"`
	Rebates             decimal.Decimal `yaml:"rebates" json:"rebates"`
	TaxAfterRebates     decimal.Decimal `yaml:"tax_after_rebates" json:"tax_after_rebates"`
	MedicalCredits      decimal.Decimal `yaml:"medical_credits" json:"medical_credits"`
	TaxAfterCredits     decimal.Decimal `yaml:"tax_after_credits" json:"tax_after_credits"`

	// FinalLiability is signed: negative means a refund is due.
	FinalLiability decimal.Decimal `yaml:"final_liability" json:"final_liability"`
	IsRefund       bool            `yaml:"is_refund" json:"is_refund"`
	RefundAmount   decimal.Decimal `yaml:"refund_amount" json:"refund_amount"`
	AmountOwing    decimal.Decimal `yaml:"amount_owing" json:"amount_owing"`

	EffectiveRate decimal.Decimal `yaml:"effective_rate" json:"effective_rate"`
	MarginalRate  decimal.Decimal `yaml:"marginal_rate" json:"marginal_rate"`

	MonthlyTax     decimal.Decimal `yaml:"monthly_tax" json:"monthly_tax"`
	NetIncome      decimal.Decimal `yaml:"net_income" json:"net_income"`
	TaxThreshold   decimal.Decimal `yaml:"tax_threshold" json:"tax_threshold"`
	BelowThreshold bool            `yaml:"below_threshold" json:"below_threshold"`
}
