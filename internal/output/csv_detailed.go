package output

import (
	"bytes"
	"encoding/csv"

	"github.com/immocalc/property-calculator/internal/domain"
)

// CSVDetailedExporter provides the raw yearly records per scenario/year.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "PropertyValueEnd", "LoanBalanceEnd", "EquityEnd", "AnnuityPaid", "InterestPaid", "PrincipalPaid", "NetColdRentMonth", "WarmRentYear", "DepreciationAnnual", "BookValue", "TaxableIncome", "Taxes", "CashflowOperating", "CashflowAfterTax", "LoanPaidOff", "PropertyWealth", "AlternativeWealth"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range sortedScenarios(results) {
		for i, yr := range sc.Records {
			row := []string{
				sc.Name,
				intToString(yr.Year),
				yr.PropertyValueEnd.StringFixed(2),
				yr.LoanBalanceEnd.StringFixed(2),
				yr.EquityEnd.StringFixed(2),
				yr.AnnuityPaid.StringFixed(2),
				yr.InterestPaid.StringFixed(2),
				yr.PrincipalPaid.StringFixed(2),
				yr.NetColdRentMonth.StringFixed(2),
				yr.WarmRentYear.StringFixed(2),
				yr.DepreciationAnnual.StringFixed(2),
				yr.BookValue.StringFixed(2),
				yr.TaxableIncome.StringFixed(2),
				yr.Taxes.StringFixed(2),
				yr.CashflowOperating.StringFixed(2),
				yr.CashflowAfterTax.StringFixed(2),
				boolToString(!yr.LoanBalanceEnd.IsPositive()),
				wealthAt(sc.PropertyWealth, i).StringFixed(2),
				wealthAt(sc.AlternativeWealth, i).StringFixed(2),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
