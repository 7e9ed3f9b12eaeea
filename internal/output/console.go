package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	colorPrimary = lipgloss.Color("#0B6E4F")
	colorMuted   = lipgloss.Color("#7A7A7A")
	colorRefund  = lipgloss.Color("#2E8B57")
	colorOwing   = lipgloss.Color("#C0392B")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPrimary)
	labelStyle = lipgloss.NewStyle().Width(28)
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	cardStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(1, 2)
)

// ConsoleFormatter renders each report as a bordered card for a terminal.
type ConsoleFormatter struct {
	// HideAssumptions drops the assumptions footer.
	HideAssumptions bool
}

func (ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(reports []Report) ([]byte, error) {
	var buf bytes.Buffer
	for i, r := range reports {
		if i > 0 {
			buf.WriteString("\n")
		}
		buf.WriteString(cardStyle.Render(renderCard(r)))
		buf.WriteString("\n")
	}
	if !c.HideAssumptions && len(reports) > 0 {
		buf.WriteString("\n")
		buf.WriteString(mutedStyle.Render("ASSUMPTIONS:"))
		buf.WriteString("\n")
		for _, a := range DefaultAssumptions {
			buf.WriteString(mutedStyle.Render("* " + a))
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}

func renderCard(r Report) string {
	res := r.Result
	var lines []string

	title := fmt.Sprintf("INCOME TAX ESTIMATE %d", r.TaxYear)
	if r.Name != "" {
		title += " - " + r.Name
	}
	lines = append(lines, titleStyle.Render(title), "")

	row := func(label string, value string) {
		lines = append(lines, labelStyle.Render(label)+value)
	}

	if b := r.Breakdown; b != nil {
		lines = append(lines, mutedStyle.Render("Deductions claimed"))
		row("  Donations", FormatCurrency(b.Donations))
		row("  Home office", FormatCurrency(b.HomeOffice)+cappedNote(b.HomeOfficeCapped))
		row("  Solar PV", FormatCurrency(b.SolarPV)+cappedNote(b.SolarPVCapped))
		row("  Travel", FormatCurrency(b.TravelClaim.Add(b.OtherTravelExpenses)))
		lines = append(lines, "")
	}

	row("Gross income", FormatCurrency(res.GrossIncome))
	row("Retirement deduction", FormatCurrency(res.RetirementDeduction))
	row("Other deductions", FormatCurrency(r.Input.OtherDeductions))
	row("Taxable income", FormatCurrency(res.TaxableIncome))
	lines = append(lines, "")
	row("Tax before rebates", FormatCurrency(res.TaxBeforeRebates))
	row("Rebates", "-"+FormatCurrency(res.Rebates))
	row("Medical credits", "-"+FormatCurrency(res.MedicalCredits))
	row("Tax payable", FormatCurrency(res.TaxAfterCredits))
	row("PAYE withheld", "-"+FormatCurrency(r.Input.PAYEWithheld))
	if r.Input.ProvisionalTaxPaid.IsPositive() {
		row("Provisional tax paid", "-"+FormatCurrency(r.Input.ProvisionalTaxPaid))
	}
	lines = append(lines, "")

	position := lipgloss.NewStyle().Bold(true)
	amount := res.AmountOwing
	if res.IsRefund {
		position = position.Foreground(colorRefund)
		amount = res.RefundAmount
	} else if res.AmountOwing.IsPositive() {
		position = position.Foreground(colorOwing)
	}
	lines = append(lines, labelStyle.Render(position.Render(r.Position()))+position.Render(FormatCurrency(amount)))
	lines = append(lines, "")

	row("Effective rate", FormatPercentage(res.EffectiveRate))
	row("Marginal rate", FormatPercentage(res.MarginalRate))
	row("Monthly tax", FormatCurrency(res.MonthlyTax))
	row("Net income", FormatCurrency(res.NetIncome))
	row("Tax threshold", FormatCurrency(res.TaxThreshold))
	if res.BelowThreshold {
		lines = append(lines, mutedStyle.Render("Taxable income is below the tax threshold"))
	}

	return strings.Join(lines, "\n")
}

func cappedNote(capped bool) string {
	if capped {
		return mutedStyle.Render(" (capped)")
	}
	return ""
}

// SummaryLine is a single-line rendering used in batch progress logs.
func SummaryLine(r Report) string {
	amount := r.Result.AmountOwing
	if r.Result.IsRefund {
		amount = r.Result.RefundAmount
	}
	name := r.Name
	if name == "" {
		name = "-"
	}
	return fmt.Sprintf("%s: taxable %s, payable %s, %s %s", name,
		FormatCurrency(r.Result.TaxableIncome), FormatCurrency(r.Result.TaxAfterCredits),
		strings.ToLower(r.Position()), FormatCurrency(decimal.Max(amount, decimal.Zero)))
}
