package intake

import (
	"math"
	"testing"

	"github.com/rgehrsitz/zatax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_Build(t *testing.T) {
	b := NewBuilder(DefaultLimits())

	in, err := b.Build(Submission{
		Age:                40,
		BasicSalary:        420000,
		Bonus:              35000,
		Overtime:           5000.50,
		CellphoneAllowance: 6000,
		InterestIncome:     2500,
		DividendIncome:     1200,
		RentalIncome:       30000,
		PensionFund:        30000,
		RetirementAnnuity:  12000,
		MedicalMonths:      12,
		MedicalDependants:  2,
		Donations:          1000,
		HomeOffice:         8000,
		PAYEWithheld:       70000,
	})
	require.NoError(t, err)

	assert.Equal(t, "499700.5", in.GrossIncome.String())
	assert.Equal(t, "42000", in.RetirementContribution.String())
	assert.Equal(t, "9000", in.OtherDeductions.String())
	assert.Equal(t, "70000", in.PAYEWithheld.String())
	assert.Equal(t, 40, in.Age)
	assert.Equal(t, 12, in.MedicalMonths)
	assert.Equal(t, 2, in.MedicalDependants)
}

func TestBuilder_BuildBreakdownCapsClaims(t *testing.T) {
	b := NewBuilder(DefaultLimits())

	_, bd, err := b.BuildBreakdown(Submission{
		BasicSalary:         900000,
		HomeOffice:          40000,
		SolarPV:             1500000,
		Donations:           5000,
		OtherTravelExpenses: 1234.567,
		Travel:              TravelClaim{Method: TravelAssessed, AssessedAmount: 20000},
	})
	require.NoError(t, err)

	assert.Equal(t, "15000", bd.HomeOffice.String())
	assert.True(t, bd.HomeOfficeCapped)
	assert.Equal(t, "1000000", bd.SolarPV.String())
	assert.True(t, bd.SolarPVCapped)
	assert.Equal(t, "20000", bd.TravelClaim.String())
	assert.Equal(t, "1234.57", bd.OtherTravelExpenses.String())
	assert.Equal(t, "1041234.57", bd.OtherDeductions.String())
}

func TestBuilder_TravelByKilometres(t *testing.T) {
	b := NewBuilder(DefaultLimits())

	tests := []struct {
		km       float64
		expected string
	}{
		{km: 0, expected: "0"},
		{km: 10000, expected: "42000"},
		{km: 20000, expected: "84000"},
		{km: 25000, expected: "98750"},
	}
	for _, tt := range tests {
		_, bd, err := b.BuildBreakdown(Submission{Travel: TravelClaim{Method: TravelKilometres, BusinessKm: tt.km}})
		require.NoError(t, err)
		assert.Equal(t, tt.expected, bd.TravelClaim.String(), "km %v", tt.km)
	}

	assert.Equal(t, "84002.95", b.TravelClaimForKm(decimal.NewFromInt(20001)).String())
}

func TestBuilder_EmptyMethodMeansAssessed(t *testing.T) {
	b := NewBuilder(DefaultLimits())

	in, err := b.Build(Submission{Travel: TravelClaim{AssessedAmount: 3000, BusinessKm: 99999}})
	require.NoError(t, err)
	assert.Equal(t, "3000", in.OtherDeductions.String())
}

func TestBuilder_RejectsBadFields(t *testing.T) {
	b := NewBuilder(DefaultLimits())

	tests := []struct {
		name   string
		sub    Submission
		fields []string
	}{
		{name: "NaN salary", sub: Submission{BasicSalary: math.NaN()}, fields: []string{"basic_salary"}},
		{name: "infinite bonus", sub: Submission{Bonus: math.Inf(1)}, fields: []string{"bonus"}},
		{name: "negative donations", sub: Submission{Donations: -1}, fields: []string{"donations"}},
		{name: "unknown travel method", sub: Submission{Travel: TravelClaim{Method: "bus"}}, fields: []string{"travel.method"}},
		{name: "negative km", sub: Submission{Travel: TravelClaim{Method: TravelKilometres, BusinessKm: -5}}, fields: []string{"travel.business_km"}},
		{
			name:   "several fields",
			sub:    Submission{RentalIncome: -1, PensionFund: math.Inf(-1), PAYEWithheld: -2},
			fields: []string{"rental_income", "pension_fund", "paye_withheld"},
		},
		{name: "negative age reaches input validation", sub: Submission{Age: -1}, fields: []string{"age"}},
		{name: "too many medical months", sub: Submission{MedicalMonths: 14}, fields: []string{"medical_months"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, bd, err := b.BuildBreakdown(tt.sub)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, tt.fields, domain.InvalidFields(err))
			assert.Equal(t, domain.TaxInput{}, in)
			assert.Equal(t, Breakdown{}, bd)
		})
	}
}
