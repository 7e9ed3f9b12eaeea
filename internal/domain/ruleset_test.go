package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func ptr(v int64) *decimal.Decimal {
	x := decimal.NewFromInt(v)
	return &x
}

func validRuleSet() RuleSet {
	return RuleSet{
		TaxYear: 2025,
		Brackets: []TaxBracket{
			{Lower: dec(0), Upper: ptr(100), Rate: decimal.RequireFromString("0.1")},
			{Lower: dec(100), Upper: ptr(300), Rate: decimal.RequireFromString("0.2"), Base: ptr(10)},
			{Lower: dec(300), Rate: decimal.RequireFromString("0.3"), Base: ptr(50)},
		},
		Rebates:         RebateSchedule{Primary: dec(5), Secondary: dec(2), Tertiary: dec(1)},
		MedicalCredits:  MedicalCreditSchedule{MainMemberMonthly: dec(3), FirstDependantMonthly: dec(3), AdditionalDependantMonthly: dec(2)},
		RetirementLimit: RetirementLimit{PercentageOfIncome: decimal.RequireFromString("0.275"), AbsoluteCap: dec(1000)},
	}
}

func TestRuleSet_ValidateAcceptsValidSet(t *testing.T) {
	rs := validRuleSet()
	assert.NoError(t, rs.Validate())

	rs.Brackets[1].Base = nil
	rs.Brackets[2].Base = nil
	assert.NoError(t, rs.Validate(), "bases are optional")
}

func TestRuleSet_ValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(rs *RuleSet)
		field  string
	}{
		{name: "zero tax year", mutate: func(rs *RuleSet) { rs.TaxYear = 0 }, field: "tax_year"},
		{name: "no brackets", mutate: func(rs *RuleSet) { rs.Brackets = nil }, field: "brackets"},
		{name: "first lower not zero", mutate: func(rs *RuleSet) { rs.Brackets[0].Lower = dec(1) }, field: "brackets[0].lower"},
		{name: "gap between brackets", mutate: func(rs *RuleSet) { rs.Brackets[1].Lower = dec(150) }, field: "brackets[1].lower"},
		{name: "overlapping brackets", mutate: func(rs *RuleSet) { rs.Brackets[2].Lower = dec(250) }, field: "brackets[2].lower"},
		{name: "upper not above lower", mutate: func(rs *RuleSet) { rs.Brackets[1].Upper = ptr(100) }, field: "brackets[1].upper"},
		{name: "unbounded middle bracket", mutate: func(rs *RuleSet) { rs.Brackets[1].Upper = nil }, field: "brackets[1].upper"},
		{name: "bounded last bracket", mutate: func(rs *RuleSet) { rs.Brackets[2].Upper = ptr(900) }, field: "brackets[2].upper"},
		{name: "rate above one", mutate: func(rs *RuleSet) { rs.Brackets[0].Rate = dec(2) }, field: "brackets[0].rate"},
		{name: "negative rate", mutate: func(rs *RuleSet) { rs.Brackets[2].Rate = dec(-1) }, field: "brackets[2].rate"},
		{name: "wrong base", mutate: func(rs *RuleSet) { rs.Brackets[2].Base = ptr(51) }, field: "brackets[2].base"},
		{name: "negative primary rebate", mutate: func(rs *RuleSet) { rs.Rebates.Primary = dec(-5) }, field: "rebates.primary"},
		{name: "negative medical credit", mutate: func(rs *RuleSet) { rs.MedicalCredits.AdditionalDependantMonthly = dec(-1) }, field: "medical_credits.additional_dependant_monthly"},
		{name: "negative cap", mutate: func(rs *RuleSet) { rs.RetirementLimit.AbsoluteCap = dec(-1) }, field: "retirement_limit.absolute_cap"},
		{name: "percentage above one", mutate: func(rs *RuleSet) { rs.RetirementLimit.PercentageOfIncome = decimal.RequireFromString("1.5") }, field: "retirement_limit.percentage_of_income"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rs := validRuleSet()
			tt.mutate(&rs)

			err := rs.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidRuleSet))
			assert.False(t, errors.Is(err, ErrInvalidInput))
			assert.Contains(t, InvalidFields(err), tt.field)
		})
	}
}

func TestRuleSet_ValidateSkipsBasesWhenShapeIsBroken(t *testing.T) {
	rs := validRuleSet()
	rs.Brackets[1].Lower = dec(120)
	rs.Brackets[2].Base = ptr(999)

	fields := InvalidFields(rs.Validate())
	assert.Equal(t, []string{"brackets[1].lower"}, fields)
}

func TestRuleSet_ValidateCollectsEveryViolation(t *testing.T) {
	rs := validRuleSet()
	rs.TaxYear = -1
	rs.Rebates.Secondary = dec(-1)
	rs.RetirementLimit.PercentageOfIncome = dec(-1)

	assert.Equal(t,
		[]string{"tax_year", "rebates.secondary", "retirement_limit.percentage_of_income"},
		InvalidFields(rs.Validate()))
}

func TestCumulativeBases(t *testing.T) {
	bases := CumulativeBases(validRuleSet().Brackets)
	require.Len(t, bases, 3)
	assert.True(t, bases[0].IsZero())
	assert.True(t, dec(10).Equal(bases[1]))
	assert.True(t, dec(50).Equal(bases[2]))
}

func TestTaxBracket_Contains(t *testing.T) {
	rs := validRuleSet()

	assert.True(t, rs.Brackets[0].Contains(dec(0)))
	assert.True(t, rs.Brackets[0].Contains(dec(99)))
	assert.False(t, rs.Brackets[0].Contains(dec(100)), "upper bound belongs to the next bracket")
	assert.True(t, rs.Brackets[1].Contains(dec(100)))
	assert.True(t, rs.Brackets[2].Contains(dec(1000000)))
	assert.False(t, rs.Brackets[2].Contains(dec(299)))
	assert.True(t, rs.Brackets[2].Unbounded())
}

func TestValidationError(t *testing.T) {
	err := NewInputError("age", "cannot be negative")
	assert.Equal(t, "invalid input: age cannot be negative", err.Error())
	assert.ErrorIs(t, err, ErrInvalidInput)

	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, KindInput, ve.Kind)
	assert.Equal(t, "input", ve.Kind.String())

	err = NewRuleSetError("brackets", "at least one bracket is required")
	assert.Equal(t, "invalid rule set: brackets at least one bracket is required", err.Error())
	assert.ErrorIs(t, err, ErrInvalidRuleSet)
	assert.Equal(t, "rule set", KindRuleSet.String())

	assert.Nil(t, InvalidFields(nil))
}
