package output

import (
	"github.com/rgehrsitz/zatax/internal/domain"
	"github.com/rgehrsitz/zatax/internal/intake"
)

// Report is one calculated return ready for formatting.
type Report struct {
	Name      string            `json:"name,omitempty" yaml:"name,omitempty"`
	TaxYear   int               `json:"tax_year" yaml:"tax_year"`
	Input     domain.TaxInput   `json:"input" yaml:"input"`
	Result    domain.TaxResult  `json:"result" yaml:"result"`
	Breakdown *intake.Breakdown `json:"breakdown,omitempty" yaml:"breakdown,omitempty"`
}

// NewReport assembles a report. breakdown may be nil.
func NewReport(name string, input domain.TaxInput, result domain.TaxResult, breakdown *intake.Breakdown) Report {
	return Report{
		Name:      name,
		TaxYear:   result.TaxYear,
		Input:     input,
		Result:    result,
		Breakdown: breakdown,
	}
}

// Position describes the final liability in words.
func (r Report) Position() string {
	switch {
	case r.Result.IsRefund:
		return "Refund due"
	case r.Result.AmountOwing.IsPositive():
		return "Amount owing"
	default:
		return "Settled"
	}
}
