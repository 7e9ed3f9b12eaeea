package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// RuleSet contains all statutory data for one tax year. It is loaded from
// YAML (see internal/config/rules) and never mutated after validation.
type RuleSet struct {
	TaxYear         int                   `yaml:"tax_year" json:"tax_year"`
	Description     string                `yaml:"description" json:"description"`
	Brackets        []TaxBracket          `yaml:"brackets" json:"brackets"`
	Rebates         RebateSchedule        `yaml:"rebates" json:"rebates"`
	MedicalCredits  MedicalCreditSchedule `yaml:"medical_credits" json:"medical_credits"`
	RetirementLimit RetirementLimit       `yaml:"retirement_limit" json:"retirement_limit"`
}

// TaxBracket is one band of the progressive rate table. Lower is inclusive.
// A nil Upper marks the top, unbounded bracket. Base is optional; when
// present it must equal the cumulative tax owed at Lower.
type TaxBracket struct {
	Lower decimal.Decimal  `yaml:"lower" json:"lower"`
	Upper *decimal.Decimal `yaml:"upper,omitempty" json:"upper,omitempty"`
	Rate  decimal.Decimal  `yaml:"rate" json:"rate"`
	Base  *decimal.Decimal `yaml:"base,omitempty" json:"base,omitempty"`
}

// Unbounded reports whether the bracket has no upper limit.
func (b TaxBracket) Unbounded() bool { return b.Upper == nil }

// Contains reports whether amount falls inside [Lower, Upper).
func (b TaxBracket) Contains(amount decimal.Decimal) bool {
	if amount.LessThan(b.Lower) {
		return false
	}
	return b.Unbounded() || amount.LessThan(*b.Upper)
}

// RebateSchedule holds the age-based rebates. Secondary and tertiary are
// added on top of primary.
type RebateSchedule struct {
	Primary   decimal.Decimal `yaml:"primary" json:"primary"`
	Secondary decimal.Decimal `yaml:"secondary" json:"secondary"` // age 65+
	Tertiary  decimal.Decimal `yaml:"tertiary" json:"tertiary"`   // age 75+
}

// MedicalCreditSchedule holds the monthly medical scheme fees tax credits.
type MedicalCreditSchedule struct {
	MainMemberMonthly          decimal.Decimal `yaml:"main_member_monthly" json:"main_member_monthly"`
	FirstDependantMonthly      decimal.Decimal `yaml:"first_dependant_monthly" json:"first_dependant_monthly"`
	AdditionalDependantMonthly decimal.Decimal `yaml:"additional_dependant_monthly" json:"additional_dependant_monthly"`
}

// RetirementLimit caps the deductible retirement fund contribution.
type RetirementLimit struct {
	PercentageOfIncome decimal.Decimal `yaml:"percentage_of_income" json:"percentage_of_income"`
	AbsoluteCap        decimal.Decimal `yaml:"absolute_cap" json:"absolute_cap"`
}

// Age thresholds for the secondary and tertiary rebates.
const (
	SecondaryRebateAge = 65
	TertiaryRebateAge  = 75
)

// CumulativeBases returns, for each bracket, the tax owed on income up to
// its lower bound: base[0] = 0 and base[i] = base[i-1] + rate[i-1] × (lower[i] − lower[i-1]).
// The brackets must already be validated as contiguous.
func CumulativeBases(brackets []TaxBracket) []decimal.Decimal {
	bases := make([]decimal.Decimal, len(brackets))
	for i := 1; i < len(brackets); i++ {
		width := brackets[i].Lower.Sub(brackets[i-1].Lower)
		bases[i] = bases[i-1].Add(width.Mul(brackets[i-1].Rate))
	}
	return bases
}

// Validate checks every rule set invariant and returns all violations
// combined. A nil return means the rule set is safe to compile.
func (rs *RuleSet) Validate() error {
	var errs error
	if rs.TaxYear <= 0 {
		errs = multierr.Append(errs, NewRuleSetError("tax_year", "must be positive"))
	}
	errs = multierr.Append(errs, validateBrackets(rs.Brackets))

	nonNegative := []struct {
		field string
		value decimal.Decimal
	}{
		{"rebates.primary", rs.Rebates.Primary},
		{"rebates.secondary", rs.Rebates.Secondary},
		{"rebates.tertiary", rs.Rebates.Tertiary},
		{"medical_credits.main_member_monthly", rs.MedicalCredits.MainMemberMonthly},
		{"medical_credits.first_dependant_monthly", rs.MedicalCredits.FirstDependantMonthly},
		{"medical_credits.additional_dependant_monthly", rs.MedicalCredits.AdditionalDependantMonthly},
		{"retirement_limit.absolute_cap", rs.RetirementLimit.AbsoluteCap},
	}
	for _, nn := range nonNegative {
		if nn.value.IsNegative() {
			errs = multierr.Append(errs, NewRuleSetError(nn.field, "cannot be negative"))
		}
	}
	if !isFraction(rs.RetirementLimit.PercentageOfIncome) {
		errs = multierr.Append(errs, NewRuleSetError("retirement_limit.percentage_of_income", "must be between 0 and 1"))
	}
	return errs
}

func validateBrackets(brackets []TaxBracket) error {
	if len(brackets) == 0 {
		return NewRuleSetError("brackets", "at least one bracket is required")
	}

	var errs error
	if !brackets[0].Lower.IsZero() {
		errs = multierr.Append(errs, NewRuleSetError("brackets[0].lower", "must be 0"))
	}
	last := len(brackets) - 1
	for i, b := range brackets {
		field := fmt.Sprintf("brackets[%d]", i)
		if !isFraction(b.Rate) {
			errs = multierr.Append(errs, NewRuleSetError(field+".rate", "must be between 0 and 1"))
		}
		if b.Unbounded() {
			if i != last {
				errs = multierr.Append(errs, NewRuleSetError(field+".upper", "only the last bracket may be unbounded"))
			}
		} else {
			if i == last {
				errs = multierr.Append(errs, NewRuleSetError(field+".upper", "last bracket must be unbounded"))
			}
			if !b.Upper.GreaterThan(b.Lower) {
				errs = multierr.Append(errs, NewRuleSetError(field+".upper", "must be greater than lower"))
			}
		}
		if i > 0 {
			prev := brackets[i-1]
			if prev.Upper != nil && !b.Lower.Equal(*prev.Upper) {
				errs = multierr.Append(errs, NewRuleSetError(field+".lower",
					fmt.Sprintf("must equal previous upper bound %s (brackets must be contiguous)", prev.Upper.String())))
			}
		}
	}
	if errs != nil {
		return errs
	}

	for i, base := range CumulativeBases(brackets) {
		declared := brackets[i].Base
		if declared != nil && !declared.Equal(base) {
			errs = multierr.Append(errs, NewRuleSetError(fmt.Sprintf("brackets[%d].base", i),
				fmt.Sprintf("declared %s but rates imply %s", declared.String(), base.String())))
		}
	}
	return errs
}

func isFraction(d decimal.Decimal) bool {
	return !d.IsNegative() && d.LessThanOrEqual(decimal.NewFromInt(1))
}
