package output

import (
	"sort"

	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/immocalc/property-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName string
	FinalWealth  decimal.Decimal
	// Set only when a capital-market alternative was simulated
	HasAlternative      bool
	AlternativeWealth   decimal.Decimal
	AdvantageOverMarket decimal.Decimal
	PercentageAdvantage decimal.Decimal
	BreakEven           *domain.BreakEvenPoint
	// Months from the January of the first simulated year to the break-even month
	MonthsToBreakEven int
}

// AnalyzeScenarios determines the scenario with the highest final wealth and
// how it compares to the capital-market alternative.
func AnalyzeScenarios(results *domain.ScenarioComparison) Recommendation {
	if len(results.Scenarios) == 0 {
		return Recommendation{}
	}
	ranks := append([]domain.ScenarioSummary(nil), results.Scenarios...)
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].FinalWealth.GreaterThan(ranks[j].FinalWealth) })
	best := ranks[0]

	rec := Recommendation{
		ScenarioName: best.Name,
		FinalWealth:  best.FinalWealth,
		BreakEven:    best.BreakEven,
	}
	if best.BreakEven != nil && len(best.Records) > 0 {
		rec.MonthsToBreakEven = dateutil.MonthsBetween(best.Records[0].Year, 1, best.BreakEven.BreakEvenYear, best.BreakEven.BreakEvenMonth)
	}
	if results.Alternative == nil && len(best.AlternativeWealth) == 0 {
		return rec
	}
	rec.HasAlternative = true
	rec.AlternativeWealth = best.AlternativeFinalWealth
	rec.AdvantageOverMarket = best.FinalWealth.Sub(best.AlternativeFinalWealth)
	if !best.AlternativeFinalWealth.IsZero() {
		rec.PercentageAdvantage = rec.AdvantageOverMarket.Div(best.AlternativeFinalWealth).Mul(decimalHundred)
	}
	return rec
}
