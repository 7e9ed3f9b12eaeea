package domain

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"
)

// Sentinel errors for the two precondition families. Every ValidationError
// unwraps to exactly one of them.
var (
	ErrInvalidInput   = errors.New("invalid input")
	ErrInvalidRuleSet = errors.New("invalid rule set")
)

// ErrorKind tells which family a validation failure belongs to.
type ErrorKind int

const (
	KindInput ErrorKind = iota
	KindRuleSet
)

func (k ErrorKind) String() string {
	if k == KindRuleSet {
		return "rule set"
	}
	return "input"
}

// ValidationError identifies the field or invariant that a caller violated.
type ValidationError struct {
	Kind   ErrorKind
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s %s", e.sentinel(), e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return e.sentinel()
}

func (e *ValidationError) sentinel() error {
	if e.Kind == KindRuleSet {
		return ErrInvalidRuleSet
	}
	return ErrInvalidInput
}

// NewInputError creates a ValidationError for a TaxInput field.
func NewInputError(field, reason string) error {
	return &ValidationError{Kind: KindInput, Field: field, Reason: reason}
}

// NewRuleSetError creates a ValidationError for a rule set field.
func NewRuleSetError(field, reason string) error {
	return &ValidationError{Kind: KindRuleSet, Field: field, Reason: reason}
}

// InvalidFields returns the field names of every ValidationError contained
// in err, in the order they were recorded.
func InvalidFields(err error) []string {
	errs := multierr.Errors(err)
	var group interface{ Errors() []error }
	if len(errs) == 1 && errors.As(err, &group) {
		// err wraps a combined error
		errs = group.Errors()
	}

	var fields []string
	for _, e := range errs {
		var ve *ValidationError
		if errors.As(e, &ve) {
			fields = append(fields, ve.Field)
		}
	}
	return fields
}
