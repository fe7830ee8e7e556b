package output

import (
	"bytes"
	"encoding/csv"

	"github.com/immocalc/property-calculator/internal/domain"
)

// CSVSummarizer implements the simple summary CSV output (one row per scenario).
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "EquityContribution", "TotalInvestmentCost", "CashflowYear1", "CashflowAfterTaxYear1", "TaxesYear1", "TotalTaxes", "TotalCashflowAfterTax", "PropertyValueFinal", "LoanBalanceFinal", "EquityFinal", "LoanPaidOffYear", "FinalWealth", "AlternativeFinalWealth", "BreakEven"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range sortedScenarios(results) {
		s := sc.Summary
		row := []string{
			sc.Name,
			s.EquityContribution.StringFixed(2),
			s.TotalInvestmentCost.StringFixed(2),
			s.CashflowYear1.StringFixed(2),
			s.CashflowAfterTaxYear1.StringFixed(2),
			s.TaxesYear1.StringFixed(2),
			s.TotalTaxes.StringFixed(2),
			s.TotalCashflowAfterTax.StringFixed(2),
			s.PropertyValueFinal.StringFixed(2),
			s.LoanBalanceFinal.StringFixed(2),
			s.EquityFinal.StringFixed(2),
			intToString(s.LoanPaidOffYear),
			sc.FinalWealth.StringFixed(2),
			sc.AlternativeFinalWealth.StringFixed(2),
			FormatBreakEven(sc.BreakEven),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
