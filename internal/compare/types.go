package compare

import (
	"fmt"

	"github.com/rgehrsitz/zatax/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// ComparisonResult represents a single what-if scenario with its metrics
type ComparisonResult struct {
	ScenarioName string            `json:"scenarioName"`
	Description  string            `json:"description"`
	Input        *domain.TaxInput  `json:"input,omitempty"`
	Result       *domain.TaxResult `json:"result,omitempty"`

	// Key Metrics
	TaxableIncome  decimal.Decimal `json:"taxableIncome"`
	TaxPayable     decimal.Decimal `json:"taxPayable"` // tax after rebates and credits
	FinalLiability decimal.Decimal `json:"finalLiability"`
	NetIncome      decimal.Decimal `json:"netIncome"`
	EffectiveRate  decimal.Decimal `json:"effectiveRate"`
	MarginalRate   decimal.Decimal `json:"marginalRate"`
	RefundAmount   decimal.Decimal `json:"refundAmount"`
	TaxThreshold   decimal.Decimal `json:"taxThreshold"`
	BelowThreshold bool            `json:"belowThreshold"`

	// Comparison to Base
	TaxDiffFromBase       decimal.Decimal `json:"taxDiffFromBase"`
	TaxPctFromBase        decimal.Decimal `json:"taxPctFromBase"`
	LiabilityDiffFromBase decimal.Decimal `json:"liabilityDiffFromBase"`
	NetIncomeDiffFromBase decimal.Decimal `json:"netIncomeDiffFromBase"`
	EffectiveRateDiff     decimal.Decimal `json:"effectiveRateDiff"` // percentage points
}

// ComparisonSet represents a collection of scenario comparisons
type ComparisonSet struct {
	BaseScenarioName   string             `json:"baseScenarioName"`
	BaseResult         *ComparisonResult  `json:"baseResult"`
	AlternativeResults []ComparisonResult `json:"alternativeResults"`
	Recommendations    []string           `json:"recommendations"`
	InputPath          string             `json:"inputPath,omitempty"`
	TaxYear            int                `json:"taxYear"`
}

// MetricsCalculator extracts key metrics from tax results
type MetricsCalculator struct{}

// NewMetricsCalculator creates a new metrics calculator
func NewMetricsCalculator() *MetricsCalculator {
	return &MetricsCalculator{}
}

// CalculateMetrics builds a comparison result for one calculated scenario
func (mc *MetricsCalculator) CalculateMetrics(name string, input domain.TaxInput, result domain.TaxResult) ComparisonResult {
	return ComparisonResult{
		ScenarioName:   name,
		Input:          &input,
		Result:         &result,
		TaxableIncome:  result.TaxableIncome,
		TaxPayable:     result.TaxAfterCredits,
		FinalLiability: result.FinalLiability,
		NetIncome:      result.NetIncome,
		EffectiveRate:  result.EffectiveRate,
		MarginalRate:   result.MarginalRate,
		RefundAmount:   result.RefundAmount,
		TaxThreshold:   result.TaxThreshold,
		BelowThreshold: result.BelowThreshold,
	}
}

// CalculateComparison computes deltas between a scenario and a base
func (mc *MetricsCalculator) CalculateComparison(scenario, base ComparisonResult) ComparisonResult {
	scenario.TaxDiffFromBase = scenario.TaxPayable.Sub(base.TaxPayable)
	if !base.TaxPayable.IsZero() {
		scenario.TaxPctFromBase = scenario.TaxDiffFromBase.Div(base.TaxPayable).Mul(hundred)
	}
	scenario.LiabilityDiffFromBase = scenario.FinalLiability.Sub(base.FinalLiability)
	scenario.NetIncomeDiffFromBase = scenario.NetIncome.Sub(base.NetIncome)
	scenario.EffectiveRateDiff = scenario.EffectiveRate.Sub(base.EffectiveRate).Mul(hundred)
	return scenario
}

// GenerateRecommendations creates recommendations based on comparison results
func GenerateRecommendations(compSet *ComparisonSet) []string {
	recommendations := []string{}

	if compSet.BaseResult == nil || len(compSet.AlternativeResults) == 0 {
		return recommendations
	}
	base := compSet.BaseResult

	// Lowest tax payable
	lowestTax := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.TaxPayable.LessThan(lowestTax.TaxPayable) {
			lowestTax = alt
		}
	}
	if lowestTax != base {
		savings := base.TaxPayable.Sub(lowestTax.TaxPayable)
		recommendations = append(recommendations,
			fmt.Sprintf("Lowest Tax: %s saves R%s in tax", lowestTax.ScenarioName, savings.StringFixed(2)))
	}

	// Best refund position
	bestPosition := base
	for i := range compSet.AlternativeResults {
		alt := &compSet.AlternativeResults[i]
		if alt.FinalLiability.LessThan(bestPosition.FinalLiability) {
			bestPosition = alt
		}
	}
	if bestPosition != base && bestPosition.RefundAmount.IsPositive() {
		recommendations = append(recommendations,
			fmt.Sprintf("Largest Refund: %s results in a refund of R%s",
				bestPosition.ScenarioName, bestPosition.RefundAmount.StringFixed(2)))
	}

	// Scenarios that drop below the tax threshold
	if !base.BelowThreshold {
		for _, alt := range compSet.AlternativeResults {
			if alt.BelowThreshold {
				recommendations = append(recommendations,
					fmt.Sprintf("No Tax: %s brings taxable income below the R%s threshold",
						alt.ScenarioName, alt.TaxThreshold.StringFixed(0)))
			}
		}
	}

	// Marginal rate drops
	for _, alt := range compSet.AlternativeResults {
		if alt.MarginalRate.LessThan(base.MarginalRate) {
			recommendations = append(recommendations,
				fmt.Sprintf("Lower Bracket: %s moves the marginal rate from %s%% to %s%%",
					alt.ScenarioName,
					base.MarginalRate.Mul(hundred).StringFixed(0),
					alt.MarginalRate.Mul(hundred).StringFixed(0)))
		}
	}

	return recommendations
}

// withoutDetail returns a copy of the set with per-scenario inputs and
// results removed.
func (cs *ComparisonSet) withoutDetail() *ComparisonSet {
	out := *cs
	if cs.BaseResult != nil {
		base := *cs.BaseResult
		base.Input, base.Result = nil, nil
		out.BaseResult = &base
	}
	out.AlternativeResults = make([]ComparisonResult, len(cs.AlternativeResults))
	for i, alt := range cs.AlternativeResults {
		alt.Input, alt.Result = nil, nil
		out.AlternativeResults[i] = alt
	}
	return &out
}
