package transform

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rgehrsitz/zatax/internal/domain"
	"github.com/shopspring/decimal"
)

// TransformRegistry provides a central registry for all available transforms.
// It enables creation of transforms from string parameters, useful for CLI commands.
type TransformRegistry struct {
	factories map[string]TransformFactory
}

// TransformFactory is a function that creates a transform from parameters.
type TransformFactory func(params map[string]string) (InputTransform, error)

// NewTransformRegistry creates a new registry with all built-in transforms
// registered. limit is used by max_retirement.
func NewTransformRegistry(limit domain.RetirementLimit) *TransformRegistry {
	registry := &TransformRegistry{
		factories: make(map[string]TransformFactory),
	}

	registry.Register("set_retirement", createSetRetirement)
	registry.Register("raise_retirement", createRaiseRetirement)
	registry.Register("max_retirement", func(map[string]string) (InputTransform, error) {
		return &MaximizeRetirementContribution{Limit: limit}, nil
	})
	registry.Register("set_medical_months", createSetMedicalMonths)
	registry.Register("add_dependants", createAddDependants)
	registry.Register("add_deductions", createAddDeductions)
	registry.Register("add_income", createAddIncome)
	registry.Register("set_age", createSetAge)

	return registry
}

// Register adds a transform factory to the registry.
func (r *TransformRegistry) Register(name string, factory TransformFactory) {
	r.factories[name] = factory
}

// Create creates a transform by name with the given parameters.
func (r *TransformRegistry) Create(name string, params map[string]string) (InputTransform, error) {
	factory, exists := r.factories[name]
	if !exists {
		return nil, fmt.Errorf("unknown transform: %s", name)
	}

	return factory(params)
}

// List returns the names of all registered transforms, sorted.
func (r *TransformRegistry) List() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ParseTransformSpec parses a transform specification string.
// Format: "transform_name:param1=value1,param2=value2"
// Example: "add_deductions:amount=10000,label=donations"
// Transforms without parameters may omit the colon.
func (r *TransformRegistry) ParseTransformSpec(spec string) (InputTransform, error) {
	parts := strings.SplitN(spec, ":", 2)
	name := strings.TrimSpace(parts[0])
	if name == "" {
		return nil, fmt.Errorf("invalid transform spec format, expected 'name:params', got: %s", spec)
	}

	params := make(map[string]string)
	if len(parts) == 2 {
		if paramsStr := strings.TrimSpace(parts[1]); paramsStr != "" {
			for _, paramPair := range strings.Split(paramsStr, ",") {
				kv := strings.SplitN(paramPair, "=", 2)
				if len(kv) != 2 {
					return nil, fmt.Errorf("invalid parameter format, expected 'key=value', got: %s", paramPair)
				}
				params[strings.TrimSpace(kv[0])] = strings.TrimSpace(kv[1])
			}
		}
	}

	return r.Create(name, params)
}

// Factory functions for each transform

func requireDecimal(transform string, params map[string]string, key string) (decimal.Decimal, error) {
	s, ok := params[key]
	if !ok {
		return decimal.Zero, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func requireInt(transform string, params map[string]string, key string) (int, error) {
	s, ok := params[key]
	if !ok {
		return 0, fmt.Errorf("%s requires '%s' parameter", transform, key)
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value: %w", key, err)
	}
	return v, nil
}

func createSetRetirement(params map[string]string) (InputTransform, error) {
	amount, err := requireDecimal("set_retirement", params, "amount")
	if err != nil {
		return nil, err
	}
	return &SetRetirementContribution{Amount: amount}, nil
}

func createRaiseRetirement(params map[string]string) (InputTransform, error) {
	amount, err := requireDecimal("raise_retirement", params, "amount")
	if err != nil {
		return nil, err
	}
	return &RaiseRetirementContribution{Amount: amount}, nil
}

func createSetMedicalMonths(params map[string]string) (InputTransform, error) {
	months, err := requireInt("set_medical_months", params, "months")
	if err != nil {
		return nil, err
	}
	return &SetMedicalMonths{Months: months}, nil
}

func createAddDependants(params map[string]string) (InputTransform, error) {
	count := 1
	if _, ok := params["count"]; ok {
		var err error
		if count, err = requireInt("add_dependants", params, "count"); err != nil {
			return nil, err
		}
	}
	return &AddDependants{Count: count}, nil
}

func createAddDeductions(params map[string]string) (InputTransform, error) {
	amount, err := requireDecimal("add_deductions", params, "amount")
	if err != nil {
		return nil, err
	}
	return &AddOtherDeductions{Amount: amount, Label: params["label"]}, nil
}

func createAddIncome(params map[string]string) (InputTransform, error) {
	amount, err := requireDecimal("add_income", params, "amount")
	if err != nil {
		return nil, err
	}
	return &AddIncome{Amount: amount}, nil
}

func createSetAge(params map[string]string) (InputTransform, error) {
	age, err := requireInt("set_age", params, "age")
	if err != nil {
		return nil, err
	}
	return &SetAge{Age: age}, nil
}
