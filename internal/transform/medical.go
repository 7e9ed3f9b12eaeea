package transform

import (
	"fmt"

	"github.com/rgehrsitz/zatax/internal/domain"
)

// SetMedicalMonths changes the months of medical scheme membership.
type SetMedicalMonths struct {
	Months int
}

func (t *SetMedicalMonths) Name() string {
	return "set_medical_months"
}

func (t *SetMedicalMonths) Description() string {
	return fmt.Sprintf("Belong to a medical scheme for %d months", t.Months)
}

func (t *SetMedicalMonths) Validate(domain.TaxInput) error {
	if t.Months < 0 || t.Months > domain.MonthsPerYear {
		return NewTransformError(t.Name(), "validate",
			fmt.Sprintf("months must be between 0 and %d, got %d", domain.MonthsPerYear, t.Months), nil)
	}
	return nil
}

func (t *SetMedicalMonths) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	base.MedicalMonths = t.Months
	return base, nil
}

// AddDependants adds dependants to the medical scheme. A taxpayer with no
// membership months is given a full year, since credits need membership.
type AddDependants struct {
	Count int
}

func (t *AddDependants) Name() string {
	return "add_dependants"
}

func (t *AddDependants) Description() string {
	if t.Count == 1 {
		return "Add a dependant to the medical scheme"
	}
	return fmt.Sprintf("Add %d dependants to the medical scheme", t.Count)
}

func (t *AddDependants) Validate(domain.TaxInput) error {
	if t.Count <= 0 {
		return NewTransformError(t.Name(), "validate", fmt.Sprintf("count must be positive, got %d", t.Count), nil)
	}
	return nil
}

func (t *AddDependants) Apply(base domain.TaxInput) (domain.TaxInput, error) {
	base.MedicalDependants += t.Count
	if base.MedicalMonths == 0 {
		base.MedicalMonths = domain.MonthsPerYear
	}
	return base, nil
}
