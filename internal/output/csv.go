package output

import (
	"bytes"
	"encoding/csv"
	"strconv"
)

var csvHeader = []string{
	"Name", "TaxYear", "GrossIncome", "RetirementDeduction", "TaxableIncome",
	"TaxBeforeRebates", "Rebates", "MedicalCredits", "TaxPayable",
	"PAYEWithheld", "ProvisionalTaxPaid", "FinalLiability", "IsRefund",
	"EffectiveRate", "MarginalRate", "MonthlyTax", "NetIncome",
	"TaxThreshold", "BelowThreshold",
}

// CSVFormatter writes one row per report, in input order.
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) Format(reports []Report) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for _, r := range reports {
		res := r.Result
		row := []string{
			r.Name,
			strconv.Itoa(r.TaxYear),
			res.GrossIncome.StringFixed(2),
			res.RetirementDeduction.StringFixed(2),
			res.TaxableIncome.StringFixed(2),
			res.TaxBeforeRebates.StringFixed(2),
			res.Rebates.StringFixed(2),
			res.MedicalCredits.StringFixed(2),
			res.TaxAfterCredits.StringFixed(2),
			r.Input.PAYEWithheld.StringFixed(2),
			r.Input.ProvisionalTaxPaid.StringFixed(2),
			res.FinalLiability.StringFixed(2),
			strconv.FormatBool(res.IsRefund),
			res.EffectiveRate.StringFixed(4),
			res.MarginalRate.StringFixed(2),
			res.MonthlyTax.StringFixed(2),
			res.NetIncome.StringFixed(2),
			res.TaxThreshold.StringFixed(2),
			strconv.FormatBool(res.BelowThreshold),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
