package calculation

import (
	"github.com/rgehrsitz/zatax/internal/domain"
	"github.com/shopspring/decimal"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func dp(v int64) *decimal.Decimal {
	x := decimal.NewFromInt(v)
	return &x
}

func rate(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// rules2025 mirrors the embedded 2025 rule set so these tests do not depend
// on the config package.
func rules2025() domain.RuleSet {
	return domain.RuleSet{
		TaxYear: 2025,
		Brackets: []domain.TaxBracket{
			{Lower: d(0), Upper: dp(237100), Rate: rate("0.18")},
			{Lower: d(237100), Upper: dp(370500), Rate: rate("0.26"), Base: dp(42678)},
			{Lower: d(370500), Upper: dp(512800), Rate: rate("0.31"), Base: dp(77362)},
			{Lower: d(512800), Upper: dp(673000), Rate: rate("0.36"), Base: dp(121475)},
			{Lower: d(673000), Upper: dp(857900), Rate: rate("0.39"), Base: dp(179147)},
			{Lower: d(857900), Upper: dp(1817000), Rate: rate("0.41"), Base: dp(251258)},
			{Lower: d(1817000), Rate: rate("0.45"), Base: dp(644489)},
		},
		Rebates: domain.RebateSchedule{Primary: d(17235), Secondary: d(9444), Tertiary: d(3145)},
		MedicalCredits: domain.MedicalCreditSchedule{
			MainMemberMonthly:          d(364),
			FirstDependantMonthly:      d(364),
			AdditionalDependantMonthly: d(246),
		},
		RetirementLimit: domain.RetirementLimit{PercentageOfIncome: rate("0.275"), AbsoluteCap: d(350000)},
	}
}

func mustCalculator(rs domain.RuleSet) *Calculator {
	c, err := NewCalculator(rs)
	if err != nil {
		panic(err)
	}
	return c
}

// walkBrackets computes tax by summing each bracket's slice of income. It
// is the slow reference the closed form is checked against.
func walkBrackets(income decimal.Decimal, brackets []domain.TaxBracket) decimal.Decimal {
	total := decimal.Zero
	for _, b := range brackets {
		if income.LessThanOrEqual(b.Lower) {
			break
		}
		top := income
		if !b.Unbounded() && b.Upper.LessThan(income) {
			top = *b.Upper
		}
		total = total.Add(top.Sub(b.Lower).Mul(b.Rate))
	}
	return total
}
