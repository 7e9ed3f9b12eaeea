package intake

import (
	"fmt"
	"math"

	"github.com/rgehrsitz/zatax/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"
)

// Limits holds the caps and rates the builder applies to individual claims
// before they are folded into OtherDeductions.
type Limits struct {
	HomeOfficeCap   decimal.Decimal `yaml:"home_office_cap" json:"home_office_cap"`
	SolarPVCap      decimal.Decimal `yaml:"solar_pv_cap" json:"solar_pv_cap"`
	KmRateThreshold decimal.Decimal `yaml:"km_rate_threshold" json:"km_rate_threshold"`
	KmRateLow       decimal.Decimal `yaml:"km_rate_low" json:"km_rate_low"`   // per km up to the threshold
	KmRateHigh      decimal.Decimal `yaml:"km_rate_high" json:"km_rate_high"` // per km beyond it
}

// DefaultLimits returns the 2025 claim limits.
func DefaultLimits() Limits {
	return Limits{
		HomeOfficeCap:   decimal.NewFromInt(15000),
		SolarPVCap:      decimal.NewFromInt(1000000),
		KmRateThreshold: decimal.NewFromInt(20000),
		KmRateLow:       decimal.RequireFromString("4.20"),
		KmRateHigh:      decimal.RequireFromString("2.95"),
	}
}

// Breakdown itemises how a submission was reduced to a TaxInput.
type Breakdown struct {
	GrossIncome            decimal.Decimal `yaml:"gross_income" json:"gross_income"`
	RetirementContribution decimal.Decimal `yaml:"retirement_contribution" json:"retirement_contribution"`
	Donations              decimal.Decimal `yaml:"donations" json:"donations"`
	HomeOffice             decimal.Decimal `yaml:"home_office" json:"home_office"`
	SolarPV                decimal.Decimal `yaml:"solar_pv" json:"solar_pv"`
	TravelClaim            decimal.Decimal `yaml:"travel_claim" json:"travel_claim"`
	OtherTravelExpenses    decimal.Decimal `yaml:"other_travel_expenses" json:"other_travel_expenses"`
	OtherDeductions        decimal.Decimal `yaml:"other_deductions" json:"other_deductions"`
	HomeOfficeCapped       bool            `yaml:"home_office_capped" json:"home_office_capped"`
	SolarPVCapped          bool            `yaml:"solar_pv_capped" json:"solar_pv_capped"`
}

// Builder maps submissions to calculator input.
type Builder struct {
	limits Limits
}

// NewBuilder creates a builder with the given limits.
func NewBuilder(limits Limits) *Builder {
	return &Builder{limits: limits}
}

// Limits returns the builder's claim limits.
func (b *Builder) Limits() Limits { return b.limits }

// Build converts a submission into a TaxInput.
func (b *Builder) Build(s Submission) (domain.TaxInput, error) {
	in, _, err := b.BuildBreakdown(s)
	return in, err
}

// BuildBreakdown converts a submission and also reports the per-claim
// amounts that made up OtherDeductions. Every non-finite or negative field
// is reported; the resulting TaxInput is then validated as a whole.
func (b *Builder) BuildBreakdown(s Submission) (domain.TaxInput, Breakdown, error) {
	c := converter{}

	gross := sum(
		c.money("basic_salary", s.BasicSalary),
		c.money("bonus", s.Bonus),
		c.money("overtime", s.Overtime),
		c.money("travel_allowance", s.TravelAllowance),
		c.money("cellphone_allowance", s.CellphoneAllowance),
		c.money("other_allowances", s.OtherAllowances),
		c.money("interest_income", s.InterestIncome),
		c.money("dividend_income", s.DividendIncome),
		c.money("rental_income", s.RentalIncome),
	)
	retirement := sum(
		c.money("pension_fund", s.PensionFund),
		c.money("provident_fund", s.ProvidentFund),
		c.money("retirement_annuity", s.RetirementAnnuity),
	)

	bd := Breakdown{
		GrossIncome:            gross,
		RetirementContribution: retirement,
		Donations:              c.money("donations", s.Donations),
		OtherTravelExpenses:    c.money("other_travel_expenses", s.OtherTravelExpenses),
	}
	bd.HomeOffice, bd.HomeOfficeCapped = capAt(c.money("home_office", s.HomeOffice), b.limits.HomeOfficeCap)
	bd.SolarPV, bd.SolarPVCapped = capAt(c.money("solar_pv", s.SolarPV), b.limits.SolarPVCap)
	bd.TravelClaim = b.travelClaim(&c, s.Travel)
	bd.OtherDeductions = sum(bd.Donations, bd.HomeOffice, bd.SolarPV, bd.TravelClaim, bd.OtherTravelExpenses)

	in := domain.TaxInput{
		GrossIncome:            gross,
		Age:                    s.Age,
		RetirementContribution: retirement,
		MedicalMonths:          s.MedicalMonths,
		MedicalDependants:      s.MedicalDependants,
		PAYEWithheld:           c.money("paye_withheld", s.PAYEWithheld),
		ProvisionalTaxPaid:     c.money("provisional_tax_paid", s.ProvisionalTaxPaid),
		OtherDeductions:        bd.OtherDeductions,
	}

	if c.errs != nil {
		return domain.TaxInput{}, Breakdown{}, c.errs
	}
	if err := in.Validate(); err != nil {
		return domain.TaxInput{}, Breakdown{}, err
	}
	return in, bd, nil
}

// TravelClaimForKm applies the two-tier per-km rate to business distance.
func (b *Builder) TravelClaimForKm(km decimal.Decimal) decimal.Decimal {
	low := decimal.Min(km, b.limits.KmRateThreshold)
	high := decimal.Max(decimal.Zero, km.Sub(b.limits.KmRateThreshold))
	return low.Mul(b.limits.KmRateLow).Add(high.Mul(b.limits.KmRateHigh)).Round(2)
}

func (b *Builder) travelClaim(c *converter, t TravelClaim) decimal.Decimal {
	switch t.Method {
	case "", TravelAssessed:
		return c.money("travel.assessed_amount", t.AssessedAmount)
	case TravelKilometres:
		return b.TravelClaimForKm(c.money("travel.business_km", t.BusinessKm))
	default:
		c.fail("travel.method", fmt.Sprintf("must be %q or %q, got %q", TravelAssessed, TravelKilometres, t.Method))
		return decimal.Zero
	}
}

// converter accumulates field errors while converting floats.
type converter struct {
	errs error
}

func (c *converter) money(field string, v float64) decimal.Decimal {
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		c.fail(field, "must be a finite number")
		return decimal.Zero
	case v < 0:
		c.fail(field, "cannot be negative")
		return decimal.Zero
	}
	return decimal.NewFromFloat(v).Round(2)
}

func (c *converter) fail(field, reason string) {
	c.errs = multierr.Append(c.errs, domain.NewInputError(field, reason))
}

func sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

func capAt(v, limit decimal.Decimal) (decimal.Decimal, bool) {
	if v.GreaterThan(limit) {
		return limit, true
	}
	return v, false
}
