// Package intake turns raw, form-shaped submissions into the flat
// domain.TaxInput the calculator consumes. The calculator never sees the
// individual income components or claim details.
package intake

// TravelMethod selects how the business travel claim is determined.
type TravelMethod string

const (
	// TravelAssessed uses an amount already assessed by the employer or
	// logbook.
	TravelAssessed TravelMethod = "assessed"
	// TravelKilometres derives the claim from business kilometres at the
	// prescribed per-km rates.
	TravelKilometres TravelMethod = "km"
)

// TravelClaim describes business travel. An empty Method means assessed.
type TravelClaim struct {
	Method         TravelMethod `yaml:"method,omitempty" json:"method,omitempty"`
	AssessedAmount float64      `yaml:"assessed_amount,omitempty" json:"assessed_amount,omitempty"`
	BusinessKm     float64      `yaml:"business_km,omitempty" json:"business_km,omitempty"`
}

// Submission holds the raw fields of a taxpayer's return as they arrive
// from a form, file or API. All money values are annual rand amounts.
type Submission struct {
	Age int `yaml:"age" json:"age"`

	// Income
	BasicSalary        float64 `yaml:"basic_salary,omitempty" json:"basic_salary,omitempty"`
	Bonus              float64 `yaml:"bonus,omitempty" json:"bonus,omitempty"`
	Overtime           float64 `yaml:"overtime,omitempty" json:"overtime,omitempty"`
	TravelAllowance    float64 `yaml:"travel_allowance,omitempty" json:"travel_allowance,omitempty"`
	CellphoneAllowance float64 `yaml:"cellphone_allowance,omitempty" json:"cellphone_allowance,omitempty"`
	OtherAllowances    float64 `yaml:"other_allowances,omitempty" json:"other_allowances,omitempty"`
	InterestIncome     float64 `yaml:"interest_income,omitempty" json:"interest_income,omitempty"`
	DividendIncome     float64 `yaml:"dividend_income,omitempty" json:"dividend_income,omitempty"`
	RentalIncome       float64 `yaml:"rental_income,omitempty" json:"rental_income,omitempty"`

	// Retirement funding
	PensionFund       float64 `yaml:"pension_fund,omitempty" json:"pension_fund,omitempty"`
	ProvidentFund     float64 `yaml:"provident_fund,omitempty" json:"provident_fund,omitempty"`
	RetirementAnnuity float64 `yaml:"retirement_annuity,omitempty" json:"retirement_annuity,omitempty"`

	// Medical scheme membership
	MedicalMonths     int `yaml:"medical_months,omitempty" json:"medical_months,omitempty"`
	MedicalDependants int `yaml:"medical_dependants,omitempty" json:"medical_dependants,omitempty"`

	// Other deductions
	Donations           float64     `yaml:"donations,omitempty" json:"donations,omitempty"`
	HomeOffice          float64     `yaml:"home_office,omitempty" json:"home_office,omitempty"`
	SolarPV             float64     `yaml:"solar_pv,omitempty" json:"solar_pv,omitempty"`
	Travel              TravelClaim `yaml:"travel,omitempty" json:"travel,omitempty"`
	OtherTravelExpenses float64     `yaml:"other_travel_expenses,omitempty" json:"other_travel_expenses,omitempty"`

	// Payments already made
	PAYEWithheld       float64 `yaml:"paye_withheld,omitempty" json:"paye_withheld,omitempty"`
	ProvisionalTaxPaid float64 `yaml:"provisional_tax_paid,omitempty" json:"provisional_tax_paid,omitempty"`
}
