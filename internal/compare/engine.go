package compare

import (
	"context"
	"fmt"

	"github.com/rgehrsitz/zatax/internal/calculation"
	"github.com/rgehrsitz/zatax/internal/domain"
	"github.com/rgehrsitz/zatax/internal/transform"
)

// Scenario is a named input to compare.
type Scenario struct {
	Name        string
	Description string
	Input       domain.TaxInput
}

// CompareEngine orchestrates what-if comparison
type CompareEngine struct {
	Calculator        calculation.TaxCalculator
	MetricsCalculator *MetricsCalculator
	TemplateRegistry  *transform.TemplateRegistry
	TransformRegistry *transform.TransformRegistry
	TaxYear           int
}

// NewCompareEngine creates a comparison engine whose templates follow the
// given rule set. calc is normally a calculator built from the same rules.
func NewCompareEngine(calc calculation.TaxCalculator, rules domain.RuleSet) *CompareEngine {
	return &CompareEngine{
		Calculator:        calc,
		MetricsCalculator: NewMetricsCalculator(),
		TemplateRegistry:  transform.CreateBuiltInTemplates(rules),
		TransformRegistry: transform.NewTransformRegistry(rules.RetirementLimit),
		TaxYear:           rules.TaxYear,
	}
}

// CompareOptions configures comparison behavior
type CompareOptions struct {
	BaseScenarioName string   // Label for the unmodified input
	Templates        []string // Template names to apply
	Transforms       []string // Ad-hoc transform specs ("name:k=v,...")
	InputPath        string
}

// Compare calculates the base input and one alternative per template or
// transform spec.
func (ce *CompareEngine) Compare(
	ctx context.Context,
	base domain.TaxInput,
	options CompareOptions,
) (*ComparisonSet, error) {
	if len(options.Templates) == 0 && len(options.Transforms) == 0 {
		return nil, fmt.Errorf("at least one template or transform is required")
	}

	baseName := options.BaseScenarioName
	if baseName == "" {
		baseName = "base"
	}

	alternatives := make([]Scenario, 0, len(options.Templates)+len(options.Transforms))

	for _, templateName := range options.Templates {
		template, ok := ce.TemplateRegistry.Get(templateName)
		if !ok {
			return nil, fmt.Errorf("template %s not found (available: %v)", templateName, ce.TemplateRegistry.List())
		}

		modified, err := transform.ApplyTransforms(base, template.Transforms)
		if err != nil {
			return nil, fmt.Errorf("failed to apply template %s: %w", templateName, err)
		}
		alternatives = append(alternatives, Scenario{Name: template.Name, Description: template.Description, Input: modified})
	}

	for _, spec := range options.Transforms {
		tr, err := ce.TransformRegistry.ParseTransformSpec(spec)
		if err != nil {
			return nil, fmt.Errorf("invalid transform %q: %w", spec, err)
		}

		modified, err := transform.ApplyTransforms(base, []transform.InputTransform{tr})
		if err != nil {
			return nil, fmt.Errorf("failed to apply transform %s: %w", tr.Name(), err)
		}
		alternatives = append(alternatives, Scenario{Name: tr.Name(), Description: tr.Description(), Input: modified})
	}

	compSet, err := ce.CompareScenarios(ctx, Scenario{Name: baseName, Input: base}, alternatives)
	if err != nil {
		return nil, err
	}
	compSet.InputPath = options.InputPath
	return compSet, nil
}

// CompareScenarios compares explicit inputs (not using templates)
func (ce *CompareEngine) CompareScenarios(
	ctx context.Context,
	base Scenario,
	alternatives []Scenario,
) (*ComparisonSet, error) {
	baseResult, err := ce.run(ctx, base)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate base scenario: %w", err)
	}

	results := make([]ComparisonResult, 0, len(alternatives))
	for _, alt := range alternatives {
		altResult, err := ce.run(ctx, alt)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate scenario %s: %w", alt.Name, err)
		}
		results = append(results, ce.MetricsCalculator.CalculateComparison(altResult, baseResult))
	}

	compSet := &ComparisonSet{
		BaseScenarioName:   base.Name,
		BaseResult:         &baseResult,
		AlternativeResults: results,
		TaxYear:            ce.TaxYear,
	}
	compSet.Recommendations = GenerateRecommendations(compSet)

	return compSet, nil
}

func (ce *CompareEngine) run(ctx context.Context, s Scenario) (ComparisonResult, error) {
	if err := ctx.Err(); err != nil {
		return ComparisonResult{}, err
	}
	res, err := ce.Calculator.Calculate(s.Input)
	if err != nil {
		return ComparisonResult{}, err
	}
	cr := ce.MetricsCalculator.CalculateMetrics(s.Name, s.Input, res)
	cr.Description = s.Description
	return cr, nil
}
