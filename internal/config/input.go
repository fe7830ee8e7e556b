package config

import (
	"fmt"
	"os"

	"github.com/immocalc/property-calculator/internal/calculation"
	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MaxProjectionYears bounds the simulation horizon of a configuration
const MaxProjectionYears = 60

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates configuration data
func (ip *InputParser) Parse(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	// Validate the configuration
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	// Validate global assumptions
	if err := ip.validateGlobalAssumptions(&config.GlobalAssumptions); err != nil {
		return fmt.Errorf("global assumptions validation failed: %w", err)
	}

	// Validate scenarios
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]bool, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if err := ip.validateScenario(i, &scenario); err != nil {
			return fmt.Errorf("scenario %d validation failed: %w", i, err)
		}
		if seen[scenario.Name] {
			return fmt.Errorf("scenario %d validation failed: duplicate scenario name %q", i, scenario.Name)
		}
		seen[scenario.Name] = true
	}

	if config.Alternative != nil {
		if err := ip.validateAlternative(config.Alternative); err != nil {
			return fmt.Errorf("capital market alternative validation failed: %w", err)
		}
	}

	return nil
}

// validateGlobalAssumptions validates global assumptions
func (ip *InputParser) validateGlobalAssumptions(assumptions *domain.GlobalAssumptions) error {
	if assumptions.ProjectionYears <= 0 || assumptions.ProjectionYears > MaxProjectionYears {
		return fmt.Errorf("projection years must be between 1 and %d", MaxProjectionYears)
	}
	if assumptions.StartYear < 0 {
		return fmt.Errorf("start year cannot be negative")
	}
	if assumptions.TaxTableYear != 0 {
		if _, err := calculation.TaxTableForYear(assumptions.TaxTableYear); err != nil {
			return err
		}
	}
	return ip.validateTax(&assumptions.Tax)
}

// validateTax validates the tax settings of a scenario or the global default
func (ip *InputParser) validateTax(tax *domain.TaxParams) error {
	switch tax.Policy {
	case "", domain.TaxPolicyFlat, domain.TaxPolicyMarginal:
	default:
		return fmt.Errorf("tax policy must be 'flat' or 'marginal', got %q", tax.Policy)
	}
	switch tax.FilingStatus {
	case "", domain.FilingSingle, domain.FilingMarried:
	default:
		return fmt.Errorf("filing status must be 'single' or 'married', got %q", tax.FilingStatus)
	}
	if tax.Rate.LessThan(decimal.Zero) || tax.Rate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("tax rate must be between 0 and 1")
	}
	if tax.BaseIncome.LessThan(decimal.Zero) {
		return fmt.Errorf("base income cannot be negative")
	}
	if tax.ShiftRate.LessThan(decimal.NewFromFloat(-0.5)) {
		return fmt.Errorf("bracket shift rate cannot be less than -50%%")
	}
	return nil
}

// validateScenario validates a single scenario
func (ip *InputParser) validateScenario(_ int, scenario *domain.Scenario) error {
	if scenario.Name == "" {
		return fmt.Errorf("scenario name is required")
	}

	p := scenario.Property
	if !p.PurchasePrice.IsPositive() {
		return fmt.Errorf("purchase price must be positive")
	}
	if p.TransactionCostFactor.LessThan(decimal.Zero) {
		return fmt.Errorf("transaction cost factor cannot be negative")
	}
	if p.ValueGrowthRate.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return fmt.Errorf("value growth rate must be greater than -100%%")
	}
	if p.DepreciationBasis.LessThan(decimal.Zero) {
		return fmt.Errorf("depreciation basis cannot be negative")
	}
	if p.DepreciationRate.LessThan(decimal.Zero) || p.DepreciationRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("depreciation rate must be between 0 and 1")
	}

	l := scenario.Loan
	if l.Principal.LessThan(decimal.Zero) {
		return fmt.Errorf("loan principal cannot be negative")
	}
	if l.InterestRate.LessThan(decimal.Zero) {
		return fmt.Errorf("loan interest rate cannot be negative")
	}
	if l.Principal.IsPositive() && l.Annuity == nil && l.Years <= 0 {
		return fmt.Errorf("loan years are required when no annuity is given")
	}

	r := scenario.Rent
	if r.NetColdRentMonth.LessThan(decimal.Zero) || r.OperatingCostsMonth.LessThan(decimal.Zero) || r.MgmtCostsAnnual.LessThan(decimal.Zero) {
		return fmt.Errorf("rent and cost amounts cannot be negative")
	}
	if r.IncreaseIntervalYears < 1 {
		return fmt.Errorf("rent increase interval must be at least 1 year")
	}

	if scenario.VacancyRate.LessThan(decimal.Zero) || scenario.VacancyRate.GreaterThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("vacancy rate must be between 0 and 1")
	}
	if scenario.MaintenanceReservePct.LessThan(decimal.Zero) {
		return fmt.Errorf("maintenance reserve cannot be negative")
	}
	if scenario.HoldingYears < 0 || scenario.HoldingYears > MaxProjectionYears {
		return fmt.Errorf("holding years must be between 0 and %d", MaxProjectionYears)
	}

	if scenario.Tax != nil {
		if err := ip.validateTax(scenario.Tax); err != nil {
			return fmt.Errorf("tax override: %w", err)
		}
	}

	return nil
}

// validateAlternative validates the capital-market alternative
func (ip *InputParser) validateAlternative(alt *domain.CapitalMarketInvestment) error {
	if alt.ExpectedReturnRate.LessThanOrEqual(decimal.NewFromInt(-1)) {
		return fmt.Errorf("expected return rate must be greater than -100%%")
	}
	if alt.FeesPct.LessThan(decimal.Zero) {
		return fmt.Errorf("fees cannot be negative")
	}
	if alt.InitialInvestment.LessThan(decimal.Zero) || alt.YearlyContribution.LessThan(decimal.Zero) {
		return fmt.Errorf("investment amounts cannot be negative")
	}
	return nil
}

// CreateExampleConfiguration creates an example configuration file
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	flatProperty := domain.PropertyParams{
		PurchasePrice:         decimal.NewFromInt(400000),
		TransactionCostFactor: decimal.NewFromFloat(0.105),
		ValueGrowthRate:       decimal.NewFromFloat(0.02),
		DepreciationBasis:     decimal.NewFromInt(320000),
		DepreciationRate:      decimal.NewFromFloat(0.02),
	}
	flatRent := domain.RentParams{
		NetColdRentMonth:      decimal.NewFromInt(1400),
		OperatingCostsMonth:   decimal.NewFromInt(220),
		MgmtCostsAnnual:       decimal.NewFromInt(1200),
		IncreaseRate:          decimal.NewFromFloat(0.03),
		IncreaseIntervalYears: 3,
	}

	return &domain.Configuration{
		GlobalAssumptions: domain.GlobalAssumptions{
			StartYear:       2026,
			ProjectionYears: 20,
			TaxTableYear:    2026,
			Tax: domain.TaxParams{
				Policy: domain.TaxPolicyFlat,
				Rate:   decimal.NewFromFloat(0.25),
			},
		},
		Scenarios: []domain.Scenario{
			{
				Name:        "Leveraged Flat",
				Description: "80% financing over 30 years",
				Property:    flatProperty,
				Loan: domain.LoanParams{
					Principal:    decimal.NewFromInt(320000),
					InterestRate: decimal.NewFromFloat(0.035),
					Years:        30,
				},
				Rent:                  flatRent,
				VacancyRate:           decimal.NewFromFloat(0.02),
				MaintenanceReservePct: decimal.NewFromFloat(0.005),
			},
			{
				Name:        "High Earner Marginal Tax",
				Description: "Same flat, losses offset against salary",
				Property:    flatProperty,
				Loan: domain.LoanParams{
					Principal:    decimal.NewFromInt(360000),
					InterestRate: decimal.NewFromFloat(0.035),
					Years:        25,
				},
				Rent:                  flatRent,
				VacancyRate:           decimal.NewFromFloat(0.02),
				MaintenanceReservePct: decimal.NewFromFloat(0.005),
				Tax: &domain.TaxParams{
					Policy:        domain.TaxPolicyMarginal,
					FilingStatus:  domain.FilingSingle,
					BaseIncome:    decimal.NewFromInt(85000),
					IndexBrackets: true,
					ShiftRate:     decimal.NewFromFloat(0.02),
				},
			},
		},
		Alternative: &domain.CapitalMarketInvestment{
			Name:               "MSCI World ETF",
			Ticker:             "IWDA",
			ExpectedReturnRate: decimal.NewFromFloat(0.06),
			DividendYield:      decimal.NewFromFloat(0.015),
			FeesPct:            decimal.NewFromFloat(0.002),
		},
	}
}
