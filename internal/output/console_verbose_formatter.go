package output

import (
	"bytes"
	"fmt"

	"github.com/immocalc/property-calculator/internal/domain"
)

// ConsoleVerboseFormatter renders the detailed console report with a yearly
// table per scenario.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer

	fmt.Fprintln(&buf, RenderTitle("BUY-TO-LET PROPERTY ANALYSIS"))
	if results.RunID != "" {
		fmt.Fprintln(&buf, mutedStyle.Render(fmt.Sprintf("Run %s, generated %s", results.RunID, results.GeneratedAt.Format("2006-01-02 15:04"))))
	}
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, headerStyle.Render("KEY ASSUMPTIONS:"))
	for _, a := range assumptionsFor(results) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	writeComparisonTable(&buf, results)

	for i, sc := range results.Scenarios {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, headerStyle.Render(fmt.Sprintf("SCENARIO %d: %s", i+1, sc.Name)))
		if sc.Description != "" {
			fmt.Fprintln(&buf, mutedStyle.Render(sc.Description))
		}
		writeScenarioDetail(&buf, sc)
	}

	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, headerStyle.Render("RECOMMENDATION"))
		fmt.Fprintf(&buf, "Highest final wealth: %s with %s\n", rec.ScenarioName, FormatCurrency(rec.FinalWealth))
		if rec.HasAlternative {
			fmt.Fprintf(&buf, "Advantage over the capital market: %s (%s)\n",
				signed(FormatCurrency(rec.AdvantageOverMarket), rec.AdvantageOverMarket.IsNegative()),
				FormatPercentage(rec.PercentageAdvantage))
			if rec.BreakEven != nil && rec.MonthsToBreakEven > 0 {
				fmt.Fprintf(&buf, "Break-even against the alternative: %s (%d months after purchase)\n", FormatBreakEven(rec.BreakEven), rec.MonthsToBreakEven)
			} else {
				fmt.Fprintf(&buf, "Break-even against the alternative: %s\n", FormatBreakEven(rec.BreakEven))
			}
		}
	}
	return buf.Bytes(), nil
}

// writeComparisonTable renders one row of headline figures per scenario
func writeComparisonTable(buf *bytes.Buffer, results *domain.ScenarioComparison) {
	t := Table{
		Title:   "SCENARIO COMPARISON",
		Headers: []string{"Scenario", "Equity", "After-tax CF Y1", "Total taxes", "Equity end", "Final wealth"},
	}
	withAlternative := results.Alternative != nil
	if withAlternative {
		t.Headers = append(t.Headers, "Alternative", "Break-even")
	}
	for _, sc := range results.Scenarios {
		row := []string{
			sc.Name,
			FormatCurrency(sc.Summary.EquityContribution),
			FormatCurrency(sc.Summary.CashflowAfterTaxYear1),
			FormatCurrency(sc.Summary.TotalTaxes),
			FormatCurrency(sc.Summary.EquityFinal),
			FormatCurrency(sc.FinalWealth),
		}
		if withAlternative {
			row = append(row, FormatCurrency(sc.AlternativeFinalWealth), FormatBreakEven(sc.BreakEven))
		}
		t.Rows = append(t.Rows, row)
	}
	fmt.Fprint(buf, RenderTable(t))
}

// writeScenarioDetail renders the yearly records of one scenario
func writeScenarioDetail(buf *bytes.Buffer, sc domain.ScenarioSummary) {
	s := sc.Summary
	fmt.Fprintf(buf, "Total investment cost: %s   Equity contribution: %s\n", FormatCurrency(s.TotalInvestmentCost), FormatCurrency(s.EquityContribution))
	if s.LoanPaidOffYear != 0 {
		fmt.Fprintf(buf, "Loan repaid in %d\n", s.LoanPaidOffYear)
	} else {
		fmt.Fprintf(buf, "Loan balance at end of horizon: %s\n", FormatCurrency(s.LoanBalanceFinal))
	}

	t := Table{
		Headers: []string{"Year", "Value", "Loan", "Warm rent", "Interest", "AfA", "Taxable", "Taxes", "CF after tax", "Wealth"},
	}
	spark := make([]float64, 0, len(sc.Records))
	for i, r := range sc.Records {
		wealth := wealthAt(sc.PropertyWealth, i)
		spark = append(spark, wealth.InexactFloat64())
		t.Rows = append(t.Rows, []string{
			intToString(r.Year),
			FormatCurrency(r.PropertyValueEnd),
			FormatCurrency(r.LoanBalanceEnd),
			FormatCurrency(r.WarmRentYear),
			FormatCurrency(r.InterestPaid),
			FormatCurrency(r.DepreciationAnnual),
			FormatCurrency(r.TaxableIncome),
			FormatCurrency(r.Taxes),
			FormatCurrency(r.CashflowAfterTax),
			FormatCurrency(wealth),
		})
	}
	fmt.Fprint(buf, RenderTable(t))
	if len(spark) > 1 {
		fmt.Fprintf(buf, "Wealth trend: %s\n", RenderSparkline(spark))
	}
}
