package compare

import (
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rgehrsitz/zatax/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSet() *ComparisonSet {
	in := domain.TaxInput{GrossIncome: decimal.NewFromInt(600000)}
	res := domain.TaxResult{TaxYear: 2025}
	return &ComparisonSet{
		BaseScenarioName: "Thandi",
		InputPath:        "/path/to/thandi.yaml",
		TaxYear:          2025,
		BaseResult: &ComparisonResult{
			ScenarioName:   "Thandi",
			Input:          &in,
			Result:         &res,
			TaxableIncome:  decimal.NewFromInt(570000),
			TaxPayable:     decimal.NewFromInt(116096),
			FinalLiability: decimal.NewFromInt(-3904),
			NetIncome:      decimal.NewFromInt(483904),
			EffectiveRate:  decimal.RequireFromString("0.1935"),
			MarginalRate:   decimal.RequireFromString("0.36"),
		},
		AlternativeResults: []ComparisonResult{
			{
				ScenarioName:          "max_retirement",
				Description:           "Contribute the maximum deductible amount to retirement funds",
				TaxableIncome:         decimal.NewFromInt(435000),
				TaxPayable:            decimal.NewFromInt(71386),
				FinalLiability:        decimal.NewFromInt(-48614),
				NetIncome:             decimal.NewFromInt(528614),
				EffectiveRate:         decimal.RequireFromString("0.119"),
				MarginalRate:          decimal.RequireFromString("0.31"),
				TaxDiffFromBase:       decimal.NewFromInt(-44710),
				TaxPctFromBase:        decimal.RequireFromString("-38.51"),
				LiabilityDiffFromBase: decimal.NewFromInt(-44710),
				NetIncomeDiffFromBase: decimal.NewFromInt(44710),
				EffectiveRateDiff:     decimal.RequireFromString("-7.45"),
			},
		},
		Recommendations: []string{"Lowest Tax: max_retirement saves R44710.00 in tax"},
	}
}

func TestTableFormatter_Format(t *testing.T) {
	out := (&TableFormatter{}).Format(sampleSet())

	for _, want := range []string{
		"TAX SCENARIO COMPARISON",
		"Tax Year: 2025",
		"Base Scenario: Thandi",
		"Input: /path/to/thandi.yaml",
		"Thandi (base)",
		"R570.0K",
		"-R3.9K",
		"19.35%",
		"COMPARISON TO BASE",
		"Tax Payable:      -R44.7K (-38.5%)",
		"Net Income:       +R44.7K",
		"Effective Rate:   -7.45 pts",
		"RECOMMENDATIONS",
		"* Lowest Tax: max_retirement saves R44710.00 in tax",
	} {
		assert.Contains(t, out, want)
	}
}

func TestTableFormatter_NoAlternatives(t *testing.T) {
	set := sampleSet()
	set.AlternativeResults = nil
	set.Recommendations = nil

	out := (&TableFormatter{}).Format(set)
	assert.NotContains(t, out, "COMPARISON TO BASE")
	assert.NotContains(t, out, "RECOMMENDATIONS")
}

func TestTableFormatter_Helpers(t *testing.T) {
	tf := &TableFormatter{}

	assert.Equal(t, "1.50M", tf.formatDecimal(decimal.NewFromInt(1500000)))
	assert.Equal(t, "12.3K", tf.formatDecimal(decimal.NewFromInt(12345)))
	assert.Equal(t, "765", tf.formatDecimal(decimal.NewFromInt(765)))
	assert.Equal(t, "abcdefg...", tf.truncate("abcdefghijklmnop", 10))
	assert.Equal(t, "short", tf.truncate("short", 10))
	assert.Equal(t, " ", tf.deltaSymbol(decimal.Zero))
}

func TestTableFormatter_FormatCompact(t *testing.T) {
	set := sampleSet()
	set.AlternativeResults = append(set.AlternativeResults, ComparisonResult{ScenarioName: "same"})

	assert.Equal(t, "Base: Thandi | max_retirement: -R44.7K tax | same: =",
		(&TableFormatter{}).FormatCompact(set))
}

func TestCSVFormatter_Format(t *testing.T) {
	out, err := (&CSVFormatter{}).Format(sampleSet())
	require.NoError(t, err)

	rows, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, "Scenario", rows[0][0])
	assert.Len(t, rows[0], 12)
	assert.Equal(t, []string{"Thandi", "base", "570000.00", "116096.00", "-3904.00"}, rows[1][:5])
	assert.Equal(t, "alternative", rows[2][1])
	assert.Equal(t, "-44710.00", rows[2][8])
}

func TestJSONFormatter_Format(t *testing.T) {
	set := sampleSet()

	out, err := (&JSONFormatter{}).Format(set)
	require.NoError(t, err)
	assert.NotContains(t, out, "\n")
	assert.NotContains(t, out, `"input"`)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "Thandi", decoded["baseScenarioName"])

	pretty, err := (&JSONFormatter{Pretty: true, Detailed: true}).Format(set)
	require.NoError(t, err)
	assert.Contains(t, pretty, "\n  ")
	assert.Contains(t, pretty, `"input"`)
	assert.Contains(t, pretty, `"gross_income": "600000"`)
}
