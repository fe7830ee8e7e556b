package domain

import (
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// FilingStatus selects single assessment or joint assessment (splitting)
type FilingStatus string

const (
	FilingSingle  FilingStatus = "single"
	FilingMarried FilingStatus = "married"
)

// TaxPolicy selects how the yearly tax effect of a rental property is derived
type TaxPolicy string

const (
	// TaxPolicyFlat taxes positive taxable income at a flat rate; losses are dropped
	TaxPolicyFlat TaxPolicy = "flat"
	// TaxPolicyMarginal takes the bracket-tax difference the property adds on top of the base income
	TaxPolicyMarginal TaxPolicy = "marginal"
)

// PropertyParams describes the purchased property
type PropertyParams struct {
	PurchasePrice         decimal.Decimal `yaml:"purchase_price" json:"purchase_price"`
	TransactionCostFactor decimal.Decimal `yaml:"transaction_cost_factor" json:"transaction_cost_factor"`
	ValueGrowthRate       decimal.Decimal `yaml:"value_growth_rate" json:"value_growth_rate"`
	DepreciationBasis     decimal.Decimal `yaml:"depreciation_basis" json:"depreciation_basis"`
	DepreciationRate      decimal.Decimal `yaml:"depreciation_rate" json:"depreciation_rate"`
}

// TotalInvestmentCost returns the purchase price including transaction costs
func (p PropertyParams) TotalInvestmentCost() decimal.Decimal {
	return p.PurchasePrice.Mul(decimal.NewFromInt(1).Add(p.TransactionCostFactor))
}

// LoanParams describes an annuity loan. Annuity is optional; when nil it is
// derived from principal, rate and term.
type LoanParams struct {
	Principal    decimal.Decimal  `yaml:"principal" json:"principal"`
	InterestRate decimal.Decimal  `yaml:"interest_rate" json:"interest_rate"`
	Years        int              `yaml:"years" json:"years"`
	Annuity      *decimal.Decimal `yaml:"annuity,omitempty" json:"annuity,omitempty"`
}

// UnmarshalYAML treats a non-positive annuity as absent
func (lp *LoanParams) UnmarshalYAML(value *yaml.Node) error {
	type Alias struct {
		Principal    decimal.Decimal `yaml:"principal"`
		InterestRate decimal.Decimal `yaml:"interest_rate"`
		Years        int             `yaml:"years"`
		Annuity      *string         `yaml:"annuity,omitempty"`
	}

	var aux Alias
	if err := value.Decode(&aux); err != nil {
		return err
	}

	lp.Principal = aux.Principal
	lp.InterestRate = aux.InterestRate
	lp.Years = aux.Years
	lp.Annuity = nil

	if aux.Annuity != nil && *aux.Annuity != "" {
		val, err := decimal.NewFromString(*aux.Annuity)
		if err != nil {
			return err
		}
		if val.IsPositive() {
			lp.Annuity = &val
		}
	}

	return nil
}

// RentParams describes the rent side of a buy-to-let property
type RentParams struct {
	NetColdRentMonth      decimal.Decimal `yaml:"net_cold_rent_month" json:"net_cold_rent_month"`
	OperatingCostsMonth   decimal.Decimal `yaml:"operating_costs_month" json:"operating_costs_month"`
	MgmtCostsAnnual       decimal.Decimal `yaml:"mgmt_costs_annual" json:"mgmt_costs_annual"`
	IncreaseRate          decimal.Decimal `yaml:"rent_increase_rate" json:"rent_increase_rate"`
	IncreaseIntervalYears int             `yaml:"rent_increase_interval_years" json:"rent_increase_interval_years"`
}

// TaxParams configures the tax effect applied in each simulated year.
// Rate is used by the flat policy; BaseIncome, FilingStatus and the
// indexing fields are used by the marginal policy.
type TaxParams struct {
	Policy        TaxPolicy       `yaml:"policy" json:"policy"`
	Rate          decimal.Decimal `yaml:"rate" json:"rate"`
	FilingStatus  FilingStatus    `yaml:"filing_status" json:"filing_status"`
	BaseIncome    decimal.Decimal `yaml:"base_income" json:"base_income"`
	IndexBrackets bool            `yaml:"index_brackets" json:"index_brackets"`
	ShiftRate     decimal.Decimal `yaml:"shift_rate" json:"shift_rate"`
}

// SimulationParams is the complete, immutable input of one rental simulation
type SimulationParams struct {
	StartYear int            `yaml:"start_year" json:"start_year"`
	Years     int            `yaml:"n_years" json:"n_years"`
	Property  PropertyParams `yaml:"property" json:"property"`
	Loan      LoanParams     `yaml:"loan" json:"loan"`
	Rent      RentParams     `yaml:"rent" json:"rent"`
	Tax       TaxParams      `yaml:"tax" json:"tax"`
}

// RentalInvestment bundles a buy-to-let case with vacancy and maintenance assumptions
type RentalInvestment struct {
	Property              PropertyParams  `yaml:"property" json:"property"`
	Loan                  LoanParams      `yaml:"loan" json:"loan"`
	Rent                  RentParams      `yaml:"rent" json:"rent"`
	Tax                   TaxParams       `yaml:"tax" json:"tax"`
	HoldingYears          int             `yaml:"holding_years" json:"holding_years"`
	VacancyRate           decimal.Decimal `yaml:"vacancy_rate" json:"vacancy_rate"`
	MaintenanceReservePct decimal.Decimal `yaml:"maintenance_reserve_pct" json:"maintenance_reserve_pct"`
}

// AdjustedRent applies vacancy to the cold rent and adds the maintenance
// reserve (a share of the purchase price) to the annual management costs.
func (ri RentalInvestment) AdjustedRent() RentParams {
	one := decimal.NewFromInt(1)
	occupancy := one.Sub(ri.VacancyRate)
	if occupancy.IsNegative() {
		occupancy = decimal.Zero
	}
	if occupancy.GreaterThan(one) {
		occupancy = one
	}
	reserve := ri.Property.PurchasePrice.Mul(ri.MaintenanceReservePct)

	adjusted := ri.Rent
	adjusted.NetColdRentMonth = ri.Rent.NetColdRentMonth.Mul(occupancy)
	adjusted.MgmtCostsAnnual = ri.Rent.MgmtCostsAnnual.Add(reserve)
	return adjusted
}

// ToSimulationParams translates the investment into simulation input
func (ri RentalInvestment) ToSimulationParams(startYear int) SimulationParams {
	return SimulationParams{
		StartYear: startYear,
		Years:     ri.HoldingYears,
		Property:  ri.Property,
		Loan:      ri.Loan,
		Rent:      ri.AdjustedRent(),
		Tax:       ri.Tax,
	}
}

// OwnerOccupiedInvestment describes a self-used property
type OwnerOccupiedInvestment struct {
	Property              PropertyParams  `yaml:"property" json:"property"`
	Loan                  LoanParams      `yaml:"loan" json:"loan"`
	ImputedRentSavings    decimal.Decimal `yaml:"imputed_rent_savings" json:"imputed_rent_savings"`
	MaintenanceReservePct decimal.Decimal `yaml:"maintenance_reserve_pct" json:"maintenance_reserve_pct"`
	OpportunityCostRate   decimal.Decimal `yaml:"opportunity_cost_rate" json:"opportunity_cost_rate"`
	HoldingYears          int             `yaml:"holding_years" json:"holding_years"`
}

// CapitalMarketInvestment holds the assumptions of a portfolio alternative.
// A zero InitialInvestment means "invest the property's equity contribution instead".
type CapitalMarketInvestment struct {
	Name               string          `yaml:"name" json:"name"`
	Ticker             string          `yaml:"ticker" json:"ticker"`
	ExpectedReturnRate decimal.Decimal `yaml:"expected_return_rate" json:"expected_return_rate"`
	DividendYield      decimal.Decimal `yaml:"dividend_yield" json:"dividend_yield"`
	FeesPct            decimal.Decimal `yaml:"fees_pct" json:"fees_pct"`
	InitialInvestment  decimal.Decimal `yaml:"initial_investment" json:"initial_investment"`
	YearlyContribution decimal.Decimal `yaml:"yearly_contribution" json:"yearly_contribution"`
}
