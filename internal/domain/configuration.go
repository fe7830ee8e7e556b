package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Configuration is the root of a scenario file
type Configuration struct {
	GlobalAssumptions GlobalAssumptions        `yaml:"global_assumptions" json:"global_assumptions"`
	Scenarios         []Scenario               `yaml:"scenarios" json:"scenarios"`
	Alternative       *CapitalMarketInvestment `yaml:"capital_market_alternative,omitempty" json:"capital_market_alternative,omitempty"`
}

// GlobalAssumptions apply to every scenario unless the scenario overrides them
type GlobalAssumptions struct {
	StartYear       int       `yaml:"start_year" json:"start_year"`
	ProjectionYears int       `yaml:"projection_years" json:"projection_years"`
	TaxTableYear    int       `yaml:"tax_table_year" json:"tax_table_year"`
	Tax             TaxParams `yaml:"tax" json:"tax"`
}

// Scenario is one buy-to-let case in a configuration file
type Scenario struct {
	Name                  string          `yaml:"name" json:"name"`
	Description           string          `yaml:"description,omitempty" json:"description,omitempty"`
	Property              PropertyParams  `yaml:"property" json:"property"`
	Loan                  LoanParams      `yaml:"loan" json:"loan"`
	Rent                  RentParams      `yaml:"rent" json:"rent"`
	VacancyRate           decimal.Decimal `yaml:"vacancy_rate" json:"vacancy_rate"`
	MaintenanceReservePct decimal.Decimal `yaml:"maintenance_reserve_pct" json:"maintenance_reserve_pct"`
	HoldingYears          int             `yaml:"holding_years,omitempty" json:"holding_years,omitempty"`
	Tax                   *TaxParams      `yaml:"tax,omitempty" json:"tax,omitempty"`
}

// Investment resolves the scenario against the global assumptions
func (s Scenario) Investment(global GlobalAssumptions) RentalInvestment {
	years := s.HoldingYears
	if years == 0 {
		years = global.ProjectionYears
	}
	tax := global.Tax
	if s.Tax != nil {
		tax = *s.Tax
	}
	return RentalInvestment{
		Property:              s.Property,
		Loan:                  s.Loan,
		Rent:                  s.Rent,
		Tax:                   tax,
		HoldingYears:          years,
		VacancyRate:           s.VacancyRate,
		MaintenanceReservePct: s.MaintenanceReservePct,
	}
}

// GenerateAssumptions lists the modeling assumptions behind a run
func (ga *GlobalAssumptions) GenerateAssumptions() []string {
	policy := ga.Tax.Policy
	if policy == "" {
		policy = TaxPolicyFlat
	}
	taxLine := fmt.Sprintf("Rental income taxed at a flat %.1f%% (losses are not offset)", ga.Tax.Rate.Mul(decimal.NewFromInt(100)).InexactFloat64())
	if policy == TaxPolicyMarginal {
		taxLine = fmt.Sprintf("Rental income taxed at the marginal bracket rate on top of %s EUR base income (%s filing)",
			ga.Tax.BaseIncome.StringFixed(0), filingOrDefault(ga.Tax.FilingStatus))
	}
	brackets := fmt.Sprintf("Tax brackets: %d tariff held constant (no indexing)", ga.TaxTableYear)
	if ga.Tax.IndexBrackets {
		brackets = fmt.Sprintf("Tax brackets: %d tariff shifted by %.1f%% per year", ga.TaxTableYear, ga.Tax.ShiftRate.Mul(decimal.NewFromInt(100)).InexactFloat64())
	}
	return []string{
		fmt.Sprintf("Projection horizon: %d years starting %d", ga.ProjectionYears, ga.StartYear),
		taxLine,
		brackets,
		"Rent increases are stepped: the full increase applies once per interval",
		"Depreciation (AfA) is straight-line and stops at the depreciation basis",
		"Loan cash flows stop once the balance is repaid",
	}
}

func filingOrDefault(status FilingStatus) FilingStatus {
	if status == "" {
		return FilingSingle
	}
	return status
}
