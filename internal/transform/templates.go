package transform

import (
	"sort"
	"strings"

	"github.com/rgehrsitz/zatax/internal/domain"
	"github.com/shopspring/decimal"
)

// TemplateRegistry manages built-in what-if templates
type TemplateRegistry struct {
	templates map[string]Template
}

// Template represents a named collection of transforms
type Template struct {
	Name        string
	Description string
	Transforms  []InputTransform
}

// NewTemplateRegistry creates an empty template registry
func NewTemplateRegistry() *TemplateRegistry {
	return &TemplateRegistry{
		templates: make(map[string]Template),
	}
}

// Register adds a template to the registry
func (tr *TemplateRegistry) Register(t Template) {
	tr.templates[strings.ToLower(t.Name)] = t
}

// Get retrieves a template by name (case-insensitive)
func (tr *TemplateRegistry) Get(name string) (Template, bool) {
	t, ok := tr.templates[strings.ToLower(name)]
	return t, ok
}

// List returns all registered template names, sorted
func (tr *TemplateRegistry) List() []string {
	names := make([]string, 0, len(tr.templates))
	for name := range tr.templates {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CreateBuiltInTemplates creates a template registry with common what-if
// scenarios for the given rule set.
func CreateBuiltInTemplates(rules domain.RuleSet) *TemplateRegistry {
	registry := NewTemplateRegistry()

	registry.Register(Template{
		Name:        "max_retirement",
		Description: "Contribute the maximum deductible amount to retirement funds",
		Transforms: []InputTransform{
			&MaximizeRetirementContribution{Limit: rules.RetirementLimit},
		},
	})

	registry.Register(Template{
		Name:        "full_year_medical",
		Description: "Belong to a medical scheme for the full year",
		Transforms: []InputTransform{
			&SetMedicalMonths{Months: domain.MonthsPerYear},
		},
	})

	registry.Register(Template{
		Name:        "add_dependant",
		Description: "Add one dependant to the medical scheme",
		Transforms: []InputTransform{
			&AddDependants{Count: 1},
		},
	})

	registry.Register(Template{
		Name:        "donate_10k",
		Description: "Donate R10,000 to an approved public benefit organisation",
		Transforms: []InputTransform{
			&AddOtherDeductions{Amount: decimal.NewFromInt(10000), Label: "donations"},
		},
	})

	registry.Register(Template{
		Name:        "turn_65",
		Description: "Be 65 at year end and qualify for the secondary rebate",
		Transforms: []InputTransform{
			&SetAge{Age: domain.SecondaryRebateAge},
		},
	})

	return registry
}
