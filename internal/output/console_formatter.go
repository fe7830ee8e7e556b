package output

import (
	"bytes"
	"fmt"

	"github.com/immocalc/property-calculator/internal/domain"
)

// ConsoleFormatter provides a concise console style summary via the formatter interface.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "PROPERTY SCENARIO SUMMARY")
	fmt.Fprintln(&buf, "================================")
	if results.Alternative != nil {
		fmt.Fprintf(&buf, "Alternative: %s (%s expected return, %s fees)\n",
			results.Alternative.Name, FormatRate(results.Alternative.ExpectedReturnRate), FormatRate(results.Alternative.FeesPct))
	}
	fmt.Fprintln(&buf)
	for _, sc := range sortedScenarios(results) {
		fmt.Fprintf(&buf, "%s: Equity=%s CashflowY1=%s AfterTaxY1=%s FinalWealth=%s\n",
			sc.Name,
			FormatCurrency(sc.Summary.EquityContribution),
			FormatCurrency(sc.Summary.CashflowYear1),
			FormatCurrency(sc.Summary.CashflowAfterTaxYear1),
			FormatCurrency(sc.FinalWealth),
		)
		if len(sc.AlternativeWealth) > 0 {
			fmt.Fprintf(&buf, "  Alternative=%s BreakEven=%s\n", FormatCurrency(sc.AlternativeFinalWealth), FormatBreakEven(sc.BreakEven))
		}
	}
	rec := AnalyzeScenarios(results)
	if rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		if rec.HasAlternative {
			fmt.Fprintf(&buf, "Recommended: %s (vs. market %s / %s)\n", rec.ScenarioName, FormatCurrency(rec.AdvantageOverMarket), FormatPercentage(rec.PercentageAdvantage))
		} else {
			fmt.Fprintf(&buf, "Recommended: %s (final wealth %s)\n", rec.ScenarioName, FormatCurrency(rec.FinalWealth))
		}
	}
	return buf.Bytes(), nil
}
