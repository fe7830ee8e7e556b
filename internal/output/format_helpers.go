package output

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/immocalc/property-calculator/internal/domain"
	money "github.com/immocalc/property-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// FormatCurrency formats a decimal as a euro amount in German notation (1.234,56 €).
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string { return money.NewMoneyFromDecimal(amount).Format() }

// FormatPercentage formats a decimal that is already a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate formats a fractional rate (0.035) as a percentage (3.50%).
func FormatRate(rate decimal.Decimal) string { return FormatPercentage(rate.Mul(decimalHundred)) }

// FormatBreakEven renders a crossover as MM/YYYY, or "none" when the
// property never overtakes the alternative.
func FormatBreakEven(be *domain.BreakEvenPoint) string {
	if be == nil {
		return "none"
	}
	return fmt.Sprintf("%02d/%d", be.BreakEvenMonth, be.BreakEvenYear)
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

// sortedScenarios returns the scenarios ordered by name for deterministic output
func sortedScenarios(results *domain.ScenarioComparison) []domain.ScenarioSummary {
	scenarios := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.SliceStable(scenarios, func(i, j int) bool { return scenarios[i].Name < scenarios[j].Name })
	return scenarios
}

// wealthAt returns the series value for a record index, zero when absent
func wealthAt(series []decimal.Decimal, i int) decimal.Decimal {
	if i < 0 || i >= len(series) {
		return decimal.Zero
	}
	return series[i]
}
