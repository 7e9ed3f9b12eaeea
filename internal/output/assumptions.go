package output

// DefaultAssumptions lists the simplifications behind every estimate. The
// console formatter prints them under each report.
var DefaultAssumptions = []string{
	"Brackets are lower-inclusive: income on a threshold falls in the higher bracket",
	"Rebates are cumulative by age at the end of the tax year (65+, 75+)",
	"Medical credits use the fixed monthly amounts; additional medical expenses are ignored",
	"Retirement fund deduction: min(contribution, 27.5% of gross income, cap)",
	"Estimate only; not a substitute for an assessment by the revenue service",
}
