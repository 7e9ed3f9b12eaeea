package compare

import (
	"context"
	"testing"

	"github.com/rgehrsitz/zatax/internal/calculation"
	"github.com/rgehrsitz/zatax/internal/config"
	"github.com/rgehrsitz/zatax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *CompareEngine {
	t.Helper()
	rules, err := config.RuleSetForYear(2025)
	require.NoError(t, err)
	calc, err := calculation.NewCalculator(rules)
	require.NoError(t, err)
	return NewCompareEngine(calc, rules)
}

func baseInput() domain.TaxInput {
	return domain.TaxInput{
		GrossIncome:            decimal.NewFromInt(600000),
		Age:                    45,
		RetirementContribution: decimal.NewFromInt(30000),
		MedicalMonths:          12,
		MedicalDependants:      1,
		PAYEWithheld:           decimal.NewFromInt(120000),
	}
}

func TestCompareEngine_Compare(t *testing.T) {
	engine := newTestEngine(t)

	compSet, err := engine.Compare(context.Background(), baseInput(), CompareOptions{
		BaseScenarioName: "Thandi",
		Templates:        []string{"max_retirement", "donate_10k"},
		InputPath:        "thandi.yaml",
	})
	require.NoError(t, err)

	assert.Equal(t, "Thandi", compSet.BaseScenarioName)
	assert.Equal(t, 2025, compSet.TaxYear)
	assert.Equal(t, "thandi.yaml", compSet.InputPath)
	require.NotNil(t, compSet.BaseResult)
	assert.Equal(t, "116096", compSet.BaseResult.TaxPayable.String())
	assert.Equal(t, "-3904", compSet.BaseResult.FinalLiability.String())

	require.Len(t, compSet.AlternativeResults, 2)
	maxRA := compSet.AlternativeResults[0]
	assert.Equal(t, "max_retirement", maxRA.ScenarioName)
	assert.Equal(t, "71386", maxRA.TaxPayable.String())
	assert.Equal(t, "-44710", maxRA.TaxDiffFromBase.String())
	assert.Equal(t, "165000", maxRA.Input.RetirementContribution.String())

	donate := compSet.AlternativeResults[1]
	assert.Equal(t, "donate_10k", donate.ScenarioName)
	assert.Equal(t, "-3600", donate.TaxDiffFromBase.String())

	assert.Equal(t, []string{
		"Lowest Tax: max_retirement saves R44710.00 in tax",
		"Largest Refund: max_retirement results in a refund of R48614.00",
		"Lower Bracket: max_retirement moves the marginal rate from 36% to 31%",
	}, compSet.Recommendations)
}

func TestCompareEngine_CompareWithTransformSpecs(t *testing.T) {
	engine := newTestEngine(t)

	compSet, err := engine.Compare(context.Background(), baseInput(), CompareOptions{
		Transforms: []string{"set_age:age=65", "add_income:amount=100000"},
	})
	require.NoError(t, err)

	assert.Equal(t, "base", compSet.BaseScenarioName)
	require.Len(t, compSet.AlternativeResults, 2)
	assert.Equal(t, "set_age", compSet.AlternativeResults[0].ScenarioName)
	assert.Equal(t, "-9444", compSet.AlternativeResults[0].TaxDiffFromBase.String())
	assert.True(t, compSet.AlternativeResults[1].TaxDiffFromBase.IsPositive())
	assert.True(t, compSet.AlternativeResults[1].NetIncomeDiffFromBase.IsPositive())
}

func TestCompareEngine_Errors(t *testing.T) {
	engine := newTestEngine(t)
	ctx := context.Background()

	_, err := engine.Compare(ctx, baseInput(), CompareOptions{})
	assert.ErrorContains(t, err, "at least one template or transform")

	_, err = engine.Compare(ctx, baseInput(), CompareOptions{Templates: []string{"retire_early"}})
	assert.ErrorContains(t, err, "template retire_early not found")

	_, err = engine.Compare(ctx, baseInput(), CompareOptions{Transforms: []string{"set_age:age=x"}})
	assert.ErrorContains(t, err, "invalid transform")

	bad := baseInput()
	bad.Age = -1
	_, err = engine.Compare(ctx, bad, CompareOptions{Templates: []string{"donate_10k"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = engine.Compare(cancelled, baseInput(), CompareOptions{Templates: []string{"donate_10k"}})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompareEngine_CompareScenarios(t *testing.T) {
	engine := newTestEngine(t)

	low := baseInput()
	low.GrossIncome = decimal.NewFromInt(90000)
	low.RetirementContribution = decimal.Zero

	compSet, err := engine.CompareScenarios(context.Background(),
		Scenario{Name: "current", Input: baseInput()},
		[]Scenario{{Name: "part-time", Description: "Drop to part-time", Input: low}},
	)
	require.NoError(t, err)

	alt := compSet.AlternativeResults[0]
	assert.Equal(t, "Drop to part-time", alt.Description)
	assert.True(t, alt.BelowThreshold)
	assert.Contains(t, compSet.Recommendations,
		"No Tax: part-time brings taxable income below the R95750 threshold")
}
