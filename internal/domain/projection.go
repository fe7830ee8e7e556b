package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// YearRecord is the complete financial picture of one simulated year
type YearRecord struct {
	Year int `json:"year"`

	// Property and equity
	PropertyValueStart decimal.Decimal `json:"property_value_start"`
	PropertyValueEnd   decimal.Decimal `json:"property_value_end"`
	EquityStart        decimal.Decimal `json:"equity_start"`
	EquityEnd          decimal.Decimal `json:"equity_end"`

	// Loan
	LoanBalanceStart decimal.Decimal `json:"loan_rest_start"`
	LoanBalanceEnd   decimal.Decimal `json:"loan_rest_end"`
	AnnuityPaid      decimal.Decimal `json:"annuity_annual"`
	InterestPaid     decimal.Decimal `json:"interest_paid"`
	PrincipalPaid    decimal.Decimal `json:"principal_paid"`

	// Rent
	NetColdRentMonth decimal.Decimal `json:"net_cold_rent_month"`
	WarmRentMonth    decimal.Decimal `json:"warm_rent_month"`
	WarmRentYear     decimal.Decimal `json:"warm_rent_year"`
	MgmtCostsAnnual  decimal.Decimal `json:"mgmt_costs_annual"`

	// Depreciation and taxes
	DepreciationAnnual     decimal.Decimal `json:"depreciation_annual"`
	DepreciationCumulative decimal.Decimal `json:"depreciation_cum"`
	BookValue              decimal.Decimal `json:"book_value"`
	TaxableIncome          decimal.Decimal `json:"taxable_income"`
	Taxes                  decimal.Decimal `json:"taxes"`

	// Cash flow
	CashflowOperating decimal.Decimal `json:"cashflow_operating"`
	CashflowAfterTax  decimal.Decimal `json:"cashflow_after_tax"`
}

// Rounded returns a copy with every amount rounded to cents
func (r YearRecord) Rounded() YearRecord {
	round := func(d decimal.Decimal) decimal.Decimal { return d.Round(2) }
	return YearRecord{
		Year:                   r.Year,
		PropertyValueStart:     round(r.PropertyValueStart),
		PropertyValueEnd:       round(r.PropertyValueEnd),
		EquityStart:            round(r.EquityStart),
		EquityEnd:              round(r.EquityEnd),
		LoanBalanceStart:       round(r.LoanBalanceStart),
		LoanBalanceEnd:         round(r.LoanBalanceEnd),
		AnnuityPaid:            round(r.AnnuityPaid),
		InterestPaid:           round(r.InterestPaid),
		PrincipalPaid:          round(r.PrincipalPaid),
		NetColdRentMonth:       round(r.NetColdRentMonth),
		WarmRentMonth:          round(r.WarmRentMonth),
		WarmRentYear:           round(r.WarmRentYear),
		MgmtCostsAnnual:        round(r.MgmtCostsAnnual),
		DepreciationAnnual:     round(r.DepreciationAnnual),
		DepreciationCumulative: round(r.DepreciationCumulative),
		BookValue:              round(r.BookValue),
		TaxableIncome:          round(r.TaxableIncome),
		Taxes:                  round(r.Taxes),
		CashflowOperating:      round(r.CashflowOperating),
		CashflowAfterTax:       round(r.CashflowAfterTax),
	}
}

// SimulationSummary condenses a record series into headline figures
type SimulationSummary struct {
	CashflowYear1         decimal.Decimal `json:"cashflow_year1"`
	CashflowAfterTaxYear1 decimal.Decimal `json:"cashflow_after_tax_year1"`
	WarmRentYear1         decimal.Decimal `json:"warm_rent_year1"`
	TaxesYear1            decimal.Decimal `json:"taxes_year1"`

	EquityFinal        decimal.Decimal `json:"equity_final"`
	PropertyValueFinal decimal.Decimal `json:"property_value_final"`
	LoanBalanceFinal   decimal.Decimal `json:"loan_rest_final"`

	TotalTaxes             decimal.Decimal `json:"total_taxes"`
	TotalOperatingCashflow decimal.Decimal `json:"total_operating_cashflow"`
	TotalCashflowAfterTax  decimal.Decimal `json:"total_cashflow_after_tax"`
	TotalInvestmentCost    decimal.Decimal `json:"total_investment_cost"`
	EquityContribution     decimal.Decimal `json:"equity_contribution"`

	// LoanPaidOffYear is the calendar year the balance reached zero, 0 if it never did
	LoanPaidOffYear int `json:"loan_paid_off_year"`
}

// ScheduleEntry is one year of a standalone mortgage schedule
type ScheduleEntry struct {
	Year      int             `json:"year"`
	Interest  decimal.Decimal `json:"interest"`
	Principal decimal.Decimal `json:"principal"`
	Payment   decimal.Decimal `json:"payment"`
	Balance   decimal.Decimal `json:"balance"`
}

// MortgageSchedule is the outcome of amortizing a loan from a target initial repayment rate
type MortgageSchedule struct {
	Entries       []ScheduleEntry `json:"entries"`
	Annuity       decimal.Decimal `json:"annuity"`
	TotalInterest decimal.Decimal `json:"total_interest"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	PaidOff       bool            `json:"paid_off"`
}

// Years returns the schedule length
func (ms MortgageSchedule) Years() int { return len(ms.Entries) }

// FinancingQuote summarizes the financing of a purchase with a given equity amount
type FinancingQuote struct {
	PurchasePrice      decimal.Decimal `json:"purchase_price"`
	AdditionalCostRate decimal.Decimal `json:"additional_cost_rate"`
	AdditionalCosts    decimal.Decimal `json:"additional_costs"`
	TotalPrice         decimal.Decimal `json:"total_price"`
	AvailableAssets    decimal.Decimal `json:"available_assets"`
	LoanAmount         decimal.Decimal `json:"loan_amount"`
	InterestRate       decimal.Decimal `json:"interest_rate"`
	TilgungRate        decimal.Decimal `json:"tilgung_rate"`
	AnnualAnnuity      decimal.Decimal `json:"annual_annuity"`
	MonthlyRate        decimal.Decimal `json:"monthly_rate"`
	Years              int             `json:"years"`
	TotalInterest      decimal.Decimal `json:"total_interest"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	PaidOff            bool            `json:"paid_off"`
}

// TaxResult is the evaluated income tax for one income
type TaxResult struct {
	Income       decimal.Decimal `json:"zve"`
	Tax          decimal.Decimal `json:"est"`
	AverageRate  decimal.Decimal `json:"avg_rate"`
	MarginalRate decimal.Decimal `json:"marginal_rate"`
}

// TaxCurvePoint is one charting point of the tax curve
type TaxCurvePoint TaxResult

// BreakEvenPoint describes where two wealth trajectories cross
type BreakEvenPoint struct {
	// 1-based index of the year in which the crossover happens
	YearIndex int `json:"year_index"`

	// Fractional calendar year of the crossover (e.g. 2031.5)
	CalendarYear float64 `json:"calendar_year"`

	// Fraction (0..1) of the crossover year that had elapsed
	Fraction decimal.Decimal `json:"fraction_of_year"`

	// Wealth of the first series at the crossover
	Amount decimal.Decimal `json:"amount"`

	BreakEvenMonth int `json:"break_even_month"`
	BreakEvenYear  int `json:"break_even_year"`
}

// ScenarioSummary holds the results of one configured scenario
type ScenarioSummary struct {
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Params      SimulationParams  `json:"inputs"`
	Records     []YearRecord      `json:"records"`
	Summary     SimulationSummary `json:"summary"`

	// Property wealth per year: equity at year end plus cumulative after-tax cash flow
	PropertyWealth []decimal.Decimal `json:"property_wealth"`
	// Capital-market alternative value per year (empty when no alternative configured)
	AlternativeWealth []decimal.Decimal `json:"alternative_wealth,omitempty"`

	FinalWealth            decimal.Decimal `json:"final_wealth"`
	AlternativeFinalWealth decimal.Decimal `json:"alternative_final_wealth"`
	BreakEven              *BreakEvenPoint `json:"break_even,omitempty"`
}

// LongTermAnalysis compares the scenarios at the end of the horizon
type LongTermAnalysis struct {
	BestWealthScenario   string          `json:"best_wealth_scenario"`
	BestWealth           decimal.Decimal `json:"best_wealth"`
	BestCashflowScenario string          `json:"best_cashflow_scenario"`
	BestCashflowYear1    decimal.Decimal `json:"best_cashflow_year1"`
	AlternativeWealth    decimal.Decimal `json:"alternative_wealth"`
	AdvantageOverMarket  decimal.Decimal `json:"advantage_over_market"`
}

// ScenarioComparison is the top-level result of running every configured scenario
type ScenarioComparison struct {
	RunID              string                   `json:"run_id"`
	GeneratedAt        time.Time                `json:"generated_at"`
	Scenarios          []ScenarioSummary        `json:"scenarios"`
	Alternative        *CapitalMarketInvestment `json:"alternative,omitempty"`
	LongTermProjection *LongTermAnalysis        `json:"long_term_projection,omitempty"`
	Assumptions        []string                 `json:"assumptions"`
}

// AffordabilityInput describes the living-space affordability estimate of a
// buy-to-let purchase financed from rent
type AffordabilityInput struct {
	Wealth                  decimal.Decimal `json:"wealth"`
	InterestRate            decimal.Decimal `json:"interest_rate"`
	RepaymentRate           decimal.Decimal `json:"repayment_rate"`
	PricePerSqm             decimal.Decimal `json:"price_per_square_meter"`
	BaseRentPerSqm          decimal.Decimal `json:"base_rent_per_square_meter"`
	NonChargeableCostPerSqm decimal.Decimal `json:"non_chargeable_operating_costs_per_square_meter"`
	PurchaseCostFactor      decimal.Decimal `json:"additional_purchase_costs_factor"`
}
