package output

import (
	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultAssumptions lists key modeling assumptions rendered in detailed
// outputs when a comparison carries none of its own.
var DefaultAssumptions = []string{
	"Rental income taxed at a flat 25.0% (losses are not offset)",
	"Tax brackets: 2026 tariff held constant (no indexing)",
	"Rent increases are stepped: the full increase applies once per interval",
	"Depreciation (AfA) is straight-line and stops at the depreciation basis",
	"Loan cash flows stop once the balance is repaid",
}

// assumptionsFor prefers the assumptions recorded with the run
func assumptionsFor(results *domain.ScenarioComparison) []string {
	if len(results.Assumptions) == 0 {
		return DefaultAssumptions
	}
	return results.Assumptions
}

var decimalHundred = decimal.NewFromInt(100)
