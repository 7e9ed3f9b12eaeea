package transform

import (
	"fmt"

	"github.com/rgehrsitz/zatax/internal/domain"
)

// InputTransform defines the interface for all what-if transformations of a
// TaxInput. Transforms are composable: each receives the previous output.
type InputTransform interface {
	// Apply returns a modified copy of base. TaxInput is a value, so base
	// itself is never changed.
	Apply(base domain.TaxInput) (domain.TaxInput, error)

	// Name returns a short identifier for this transform (e.g., "add_dependants").
	Name() string

	// Description returns a human-readable description of what this transform does.
	Description() string

	// Validate checks if the transform parameters are valid without applying it.
	Validate(base domain.TaxInput) error
}

// ApplyTransforms applies a sequence of transforms to a base input.
// Transforms are applied in order, and the result is validated as a
// TaxInput before it is returned.
func ApplyTransforms(base domain.TaxInput, transforms []InputTransform) (domain.TaxInput, error) {
	current := base

	for i, transform := range transforms {
		if transform == nil {
			return domain.TaxInput{}, fmt.Errorf("transform at index %d is nil", i)
		}

		if err := transform.Validate(current); err != nil {
			return domain.TaxInput{}, fmt.Errorf("transform %s validation failed: %w", transform.Name(), err)
		}

		next, err := transform.Apply(current)
		if err != nil {
			return domain.TaxInput{}, fmt.Errorf("transform %s failed: %w", transform.Name(), err)
		}

		current = next
	}

	if err := current.Validate(); err != nil {
		return domain.TaxInput{}, fmt.Errorf("transformed input is invalid: %w", err)
	}
	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}

// NewTransformError creates a new TransformError.
func NewTransformError(transformName, operation, reason string, err error) error {
	return &TransformError{
		TransformName: transformName,
		Operation:     operation,
		Reason:        reason,
		Err:           err,
	}
}
