package calculation

import (
	"github.com/immocalc/property-calculator/internal/domain"
)

// generateLongTermAnalysis generates long-term analysis
func (ce *CalculationEngine) generateLongTermAnalysis(scenarios []domain.ScenarioSummary, withAlternative bool) *domain.LongTermAnalysis {
	if len(scenarios) == 0 {
		return nil
	}

	analysis := &domain.LongTermAnalysis{
		BestWealthScenario:   scenarios[0].Name,
		BestWealth:           scenarios[0].FinalWealth,
		BestCashflowScenario: scenarios[0].Name,
		BestCashflowYear1:    scenarios[0].Summary.CashflowAfterTaxYear1,
	}
	best := scenarios[0]

	for _, scenario := range scenarios[1:] {
		if scenario.FinalWealth.GreaterThan(analysis.BestWealth) {
			analysis.BestWealth = scenario.FinalWealth
			analysis.BestWealthScenario = scenario.Name
			best = scenario
		}
		if scenario.Summary.CashflowAfterTaxYear1.GreaterThan(analysis.BestCashflowYear1) {
			analysis.BestCashflowYear1 = scenario.Summary.CashflowAfterTaxYear1
			analysis.BestCashflowScenario = scenario.Name
		}
	}

	if withAlternative {
		analysis.AlternativeWealth = best.AlternativeFinalWealth
		analysis.AdvantageOverMarket = best.FinalWealth.Sub(best.AlternativeFinalWealth)
	}
	return analysis
}
