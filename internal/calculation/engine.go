package calculation

import (
	"context"
	"fmt"

	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates the scenario calculations of a configuration
type CalculationEngine struct {
	TaxCalc *TaxCalculator
	Debug   bool // Enable debug output for detailed calculations
	Logger  Logger
}

// NewCalculationEngine creates a new calculation engine using the default tariff
func NewCalculationEngine() *CalculationEngine {
	return &CalculationEngine{
		TaxCalc: NewTaxCalculator(),
		Logger:  NopLogger{},
	}
}

// NewCalculationEngineWithConfig creates a calculation engine for a tariff
// year and bracket shift. A zero year selects the default tariff.
func NewCalculationEngineWithConfig(tableYear int, shiftRate decimal.Decimal) (*CalculationEngine, error) {
	taxCalc := NewTaxCalculator()
	if tableYear != 0 {
		var err error
		taxCalc, err = NewTaxCalculatorForYear(tableYear)
		if err != nil {
			return nil, err
		}
	}
	return &CalculationEngine{
		TaxCalc: taxCalc.WithShiftRate(shiftRate),
		Logger:  NopLogger{},
	}, nil
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// startYear resolves the first simulated calendar year of a configuration
func startYear(config *domain.Configuration) int {
	if config.GlobalAssumptions.StartYear != 0 {
		return config.GlobalAssumptions.StartYear
	}
	return nowFunc().Year()
}

// resolvedAssumptions fills the defaults a run actually used into a copy of
// the global assumptions: start year, tariff year and bracket shift
func (ce *CalculationEngine) resolvedAssumptions(config *domain.Configuration) *domain.GlobalAssumptions {
	ga := config.GlobalAssumptions
	ga.StartYear = startYear(config)
	if ce.TaxCalc != nil {
		ga.TaxTableYear = ce.TaxCalc.Table.Year
		if ga.Tax.Policy == domain.TaxPolicyMarginal && !ga.Tax.IndexBrackets && !ce.TaxCalc.ShiftRate.IsZero() {
			ga.Tax.IndexBrackets = true
			ga.Tax.ShiftRate = ce.TaxCalc.ShiftRate
		}
	} else if ga.TaxTableYear == 0 {
		ga.TaxTableYear = Tariff2026.Year
	}
	return &ga
}

// RunScenario simulates one configured scenario and compares it against the
// capital-market alternative when one is configured
func (ce *CalculationEngine) RunScenario(ctx context.Context, config *domain.Configuration, scenario *domain.Scenario) (*domain.ScenarioSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	investment := scenario.Investment(config.GlobalAssumptions)
	params := investment.ToSimulationParams(startYear(config))

	records, err := SimulateWith(params, ce.TaxCalc)
	if err != nil {
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}
	simSummary := Summarize(params, records)

	summary := &domain.ScenarioSummary{
		Name:           scenario.Name,
		Description:    scenario.Description,
		Params:         params,
		Records:        records,
		Summary:        simSummary,
		PropertyWealth: PropertyWealth(records),
	}
	summary.FinalWealth = summary.PropertyWealth[len(summary.PropertyWealth)-1]

	if config.Alternative != nil {
		summary.AlternativeWealth = AlternativeSeries(*config.Alternative, simSummary.EquityContribution, len(records))
		summary.AlternativeFinalWealth = summary.AlternativeWealth[len(summary.AlternativeWealth)-1]

		breakEven, err := FindWealthBreakEven(params.StartYear, summary.PropertyWealth, summary.AlternativeWealth)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: break-even analysis failed: %w", scenario.Name, err)
		}
		summary.BreakEven = breakEven
	}

	if ce.Debug {
		ce.Logger.Debugf("SCENARIO %s", scenario.Name)
		ce.Logger.Debugf("  Years:                 %d (%d-%d)", len(records), params.StartYear, params.StartYear+len(records)-1)
		ce.Logger.Debugf("  Total investment cost: %s", simSummary.TotalInvestmentCost.StringFixed(2))
		ce.Logger.Debugf("  Equity contribution:   %s", simSummary.EquityContribution.StringFixed(2))
		ce.Logger.Debugf("  Cash flow year 1:      %s", simSummary.CashflowYear1.StringFixed(2))
		ce.Logger.Debugf("  After tax year 1:      %s", simSummary.CashflowAfterTaxYear1.StringFixed(2))
		ce.Logger.Debugf("  Final equity:          %s", simSummary.EquityFinal.StringFixed(2))
		ce.Logger.Debugf("  Final wealth:          %s", summary.FinalWealth.StringFixed(2))
		if config.Alternative != nil {
			ce.Logger.Debugf("  Alternative wealth:    %s", summary.AlternativeFinalWealth.StringFixed(2))
		}
	}

	return summary, nil
}

// RunScenarios runs all scenarios and returns a comparison
func (ce *CalculationEngine) RunScenarios(ctx context.Context, config *domain.Configuration) (*domain.ScenarioComparison, error) {
	scenarios := make([]domain.ScenarioSummary, len(config.Scenarios))

	for i := range config.Scenarios {
		summary, err := ce.RunScenario(ctx, config, &config.Scenarios[i])
		if err != nil {
			return nil, fmt.Errorf("RunScenario failed: %w", err)
		}
		scenarios[i] = *summary
		ce.Logger.Infof("scenario %s: final wealth %s", summary.Name, summary.FinalWealth.StringFixed(2))
	}

	comparison := &domain.ScenarioComparison{
		RunID:       runIDFunc(),
		GeneratedAt: nowFunc(),
		Scenarios:   scenarios,
		Alternative: config.Alternative,
		Assumptions: ce.resolvedAssumptions(config).GenerateAssumptions(),
	}
	comparison.LongTermProjection = ce.generateLongTermAnalysis(scenarios, config.Alternative != nil)

	return comparison, nil
}
