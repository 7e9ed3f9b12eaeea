package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTaxInput_Validate(t *testing.T) {
	tests := []struct {
		name   string
		input  TaxInput
		fields []string
	}{
		{name: "zero value is valid", input: TaxInput{}},
		{name: "typical input", input: TaxInput{GrossIncome: dec(350000), Age: 41, MedicalMonths: 12, MedicalDependants: 2}},
		{name: "full year boundary", input: TaxInput{MedicalMonths: 12}},
		{name: "negative gross", input: TaxInput{GrossIncome: dec(-1)}, fields: []string{"gross_income"}},
		{name: "negative contribution", input: TaxInput{RetirementContribution: dec(-1)}, fields: []string{"retirement_contribution"}},
		{name: "negative provisional", input: TaxInput{ProvisionalTaxPaid: dec(-1)}, fields: []string{"provisional_tax_paid"}},
		{name: "negative age", input: TaxInput{Age: -1}, fields: []string{"age"}},
		{name: "negative months", input: TaxInput{MedicalMonths: -1}, fields: []string{"medical_months"}},
		{name: "thirteen months", input: TaxInput{MedicalMonths: 13}, fields: []string{"medical_months"}},
		{
			name:   "everything wrong",
			input:  TaxInput{GrossIncome: dec(-1), Age: -1, MedicalMonths: 20, MedicalDependants: -2},
			fields: []string{"gross_income", "age", "medical_months", "medical_dependants"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate()
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, tt.fields, InvalidFields(err))
		})
	}
}

func TestTaxInput_CacheKey(t *testing.T) {
	a := TaxInput{GrossIncome: dec(100000), Age: 30}
	b := TaxInput{GrossIncome: decimal.RequireFromString("100000.00"), Age: 30}
	c := TaxInput{GrossIncome: dec(100000), Age: 31}

	assert.Equal(t, a.CacheKey(), b.CacheKey())
	assert.NotEqual(t, a.CacheKey(), c.CacheKey())
	assert.Equal(t, "100000|30|0|0|0|0|0|0", a.CacheKey())
}
