package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/immocalc/property-calculator/internal/calculation"
	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// Request defaults of the rental simulation
var (
	defaultPurchasePrice = decimal.NewFromInt(400000)
	defaultLoanShare     = decimal.RequireFromString("0.8")
	defaultGrowthRate    = decimal.RequireFromString("0.02")
	defaultAfARate       = decimal.RequireFromString("0.02")
	defaultColdRent      = decimal.NewFromInt(1400)
	defaultOperatingCost = decimal.NewFromInt(220)
	defaultMgmtCosts     = decimal.NewFromInt(1200)
	defaultRentIncrease  = decimal.RequireFromString("0.03")
	defaultFlatTaxRate   = decimal.RequireFromString("0.25")
)

const (
	defaultLoanYears      = 30
	defaultRentInterval   = 3
	defaultStartYear      = 2025
	defaultSimulationSpan = 20
	maxSimulationYears    = 100
	defaultMarketYears    = 10
)

var minTilgungRate = decimal.RequireFromString("0.0001")

// Handler serves the calculator endpoints
type Handler struct {
	taxCalc *calculation.TaxCalculator
	logger  *slog.Logger
}

// NewHandler creates a handler evaluating taxes with calc (the 2026 tariff when nil)
func NewHandler(calc *calculation.TaxCalculator, logger *slog.Logger) *Handler {
	if calc == nil {
		calc = calculation.NewTaxCalculator()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{taxCalc: calc, logger: logger}
}

func (h *Handler) fail(c *gin.Context, status int, err error) {
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed", slog.String(requestIDKey, c.GetString(requestIDKey)), slog.Any("error", err))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": err.Error()})
}

// Health reports liveness
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Tax evaluates the income tax of a single or jointly assessed income and
// returns the tariff curve for charting.
func (h *Handler) Tax(c *gin.Context) {
	p, err := bindPayload(c)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}

	primary := decimal.Max(p.number("zve", decimal.Zero), decimal.Zero)
	partner := decimal.Max(p.number("partner_zve", decimal.Zero), decimal.Zero)
	status := domain.FilingStatus(strings.ToLower(p.text("filing_status", string(domain.FilingSingle))))

	calc := h.taxCalc
	if tableYear, ok := p.lookupInteger("table_year"); ok {
		calc, err = calculation.NewTaxCalculatorForYear(tableYear)
		if err != nil {
			h.fail(c, http.StatusUnprocessableEntity, err)
			return
		}
	}

	var result domain.TaxResult
	curveStatus := domain.FilingSingle
	total := primary
	if status == domain.FilingMarried {
		total = primary.Add(partner)
		curveStatus = domain.FilingMarried
		result = calc.EvaluateJoint(primary, partner)
	} else {
		result = calc.EvaluateSingle(primary)
	}

	if year, ok := p.lookupInteger("year"); ok {
		shifted := calc.WithShiftRate(p.number("bracket_shift_rate", decimal.Zero))
		result, err = shifted.EvaluateForYear(total, curveStatus, year)
		if err != nil {
			h.fail(c, http.StatusUnprocessableEntity, err)
			return
		}
	}

	responsePartner := decimal.Zero
	if status == domain.FilingMarried {
		responsePartner = partner
	}
	c.JSON(http.StatusOK, gin.H{
		"zve":           total,
		"est":           result.Tax.Round(2),
		"avg_rate":      result.AverageRate.Round(2),
		"marginal_rate": result.MarginalRate.Round(2),
		"curve":         calc.Curve(total, curveStatus, decimal.Zero),
		"filing_status": status,
		"partner_zve":   responsePartner,
	})
}

// simulationParams reads the rental simulation input, substituting defaults
func simulationParams(p payload) domain.SimulationParams {
	price := p.number("purchase_price", defaultPurchasePrice)

	var annuity *decimal.Decimal
	if a := p.number("loan_annuity", decimal.Zero); a.IsPositive() {
		annuity = &a
	}

	tax := domain.TaxParams{
		Policy: domain.TaxPolicyFlat,
		Rate:   decimal.Max(p.number("tax_rate", defaultFlatTaxRate), decimal.Zero),
	}
	if policy := strings.ToLower(p.text("tax_policy", "")); policy != "" {
		tax.Policy = domain.TaxPolicy(policy)
	}
	if tax.Policy == domain.TaxPolicyMarginal {
		tax.BaseIncome = decimal.Max(p.number("base_income", decimal.Zero), decimal.Zero)
		tax.FilingStatus = domain.FilingStatus(strings.ToLower(p.text("filing_status", string(domain.FilingSingle))))
		if shift := p.number("bracket_shift_rate", decimal.Zero); !shift.IsZero() {
			tax.IndexBrackets = true
			tax.ShiftRate = shift
		}
	}

	return domain.SimulationParams{
		StartYear: p.integer("start_year", defaultStartYear),
		Years:     min(max(p.integer("n_years", defaultSimulationSpan), 1), maxSimulationYears),
		Property: domain.PropertyParams{
			PurchasePrice:         price,
			TransactionCostFactor: p.number("transaction_cost_factor", calculation.DefaultAdditionalCostRate),
			ValueGrowthRate:       p.number("value_growth_rate", defaultGrowthRate),
			DepreciationBasis:     p.number("depreciation_basis", price.Mul(defaultLoanShare)),
			DepreciationRate:      p.number("depreciation_rate", defaultAfARate),
		},
		Loan: domain.LoanParams{
			Principal:    p.number("loan_principal", price.Mul(defaultLoanShare)),
			InterestRate: p.number("loan_interest_rate", calculation.DefaultInterestRate),
			Years:        max(p.integer("loan_years", defaultLoanYears), 1),
			Annuity:      annuity,
		},
		Rent: domain.RentParams{
			NetColdRentMonth:      p.number("net_cold_rent_month", defaultColdRent),
			OperatingCostsMonth:   p.number("operating_costs_month", defaultOperatingCost),
			MgmtCostsAnnual:       p.number("mgmt_costs_annual", defaultMgmtCosts),
			IncreaseRate:          p.number("rent_increase_rate", defaultRentIncrease),
			IncreaseIntervalYears: max(p.integer("rent_increase_interval_years", defaultRentInterval), 1),
		},
		Tax: tax,
	}
}

// RentalSimulation runs the buy-to-let simulation
func (h *Handler) RentalSimulation(c *gin.Context) {
	p, err := bindPayload(c)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	params := simulationParams(p)

	records, err := calculation.SimulateWith(params, h.taxCalc)
	if err != nil {
		h.fail(c, http.StatusUnprocessableEntity, err)
		return
	}

	rounded := make([]domain.YearRecord, len(records))
	for i, r := range records {
		rounded[i] = r.Rounded()
	}
	c.JSON(http.StatusOK, gin.H{
		"inputs":                params,
		"summary":               calculation.Summarize(params, records),
		"records":               rounded,
		"property_wealth":       roundAll(calculation.PropertyWealth(records)),
		"total_investment_cost": params.Property.TotalInvestmentCost().Round(2),
	})
}

// MaxAffordableSize estimates the living space financeable from wealth and rent
func (h *Handler) MaxAffordableSize(c *gin.Context) {
	p, err := bindPayload(c)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	in := domain.AffordabilityInput{
		Wealth:                  p.number("wealth", decimal.NewFromInt(200000)),
		RepaymentRate:           p.number("repayment_rate", decimal.RequireFromString("0.02")),
		InterestRate:            p.number("interest_rate", decimal.RequireFromString("0.04")),
		PricePerSqm:             p.number("price_per_square_meter", decimal.NewFromInt(4000)),
		BaseRentPerSqm:          p.number("base_rent_per_square_meter", decimal.NewFromInt(10)),
		NonChargeableCostPerSqm: p.number("non_chargeable_operating_costs_per_square_meter", decimal.NewFromInt(1)),
		PurchaseCostFactor:      p.number("additional_purchase_costs_factor", decimal.RequireFromString("1.105")),
	}

	size, err := calculation.MaxAffordableSize(in)
	if err != nil {
		h.fail(c, http.StatusUnprocessableEntity, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"inputs":              in,
		"max_affordable_size": size.Round(2),
		"purchase_price":      size.Mul(in.PricePerSqm).Round(2),
	})
}

// FinancingQuote finances a purchase price with the available assets
func (h *Handler) FinancingQuote(c *gin.Context) {
	p, err := bindPayload(c)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	assets := p.number("available_assets", decimal.Zero)
	costRate := p.number("additional_cost_rate", calculation.DefaultAdditionalCostRate)
	interest := decimal.Max(p.number("interest_rate", calculation.DefaultInterestRate), decimal.Zero)
	tilgung := decimal.Max(p.number("tilgung_rate", calculation.DefaultTilgungRate), minTilgungRate)

	quote, err := calculation.FinancingQuote(p.number("purchase_price", defaultPurchasePrice), assets, costRate, interest, tilgung)
	if err != nil {
		h.fail(c, http.StatusUnprocessableEntity, err)
		return
	}
	resp := gin.H{"quote": quote}
	if budget := p.number("monthly_budget", decimal.Zero); budget.IsPositive() {
		maxPrice, err := calculation.MaxAffordablePrice(budget, assets, interest, tilgung, costRate)
		if err != nil {
			h.fail(c, http.StatusUnprocessableEntity, err)
			return
		}
		resp["max_affordable_price"] = maxPrice.Round(2)
	}
	c.JSON(http.StatusOK, resp)
}

// CapitalMarketProjection projects a portfolio at its net return
func (h *Handler) CapitalMarketProjection(c *gin.Context) {
	p, err := bindPayload(c)
	if err != nil {
		h.fail(c, http.StatusBadRequest, err)
		return
	}
	inv := domain.CapitalMarketInvestment{
		Name:               p.text("name", ""),
		Ticker:             p.text("ticker", ""),
		ExpectedReturnRate: p.number("expected_return_rate", decimal.RequireFromString("0.06")),
		DividendYield:      p.number("dividend_yield", decimal.Zero),
		FeesPct:            p.number("fees_pct", decimal.Zero),
		InitialInvestment:  decimal.Max(p.number("initial_investment", decimal.NewFromInt(10000)), decimal.Zero),
		YearlyContribution: decimal.Max(p.number("yearly_contribution", decimal.Zero), decimal.Zero),
	}
	if inv.ExpectedReturnRate.Sub(inv.FeesPct).LessThanOrEqual(decimal.NewFromInt(-1)) {
		h.fail(c, http.StatusUnprocessableEntity, errors.New("net return must be greater than -100%"))
		return
	}
	years := min(max(p.integer("years", defaultMarketYears), 1), maxSimulationYears)

	series := calculation.ProjectCapitalMarket(calculation.NetReturnRate(inv), inv.InitialInvestment, inv.YearlyContribution, years)
	contributions := inv.InitialInvestment.Add(inv.YearlyContribution.Mul(decimal.NewFromInt(int64(years))))
	final := series[len(series)-1]
	c.JSON(http.StatusOK, gin.H{
		"inputs":                   inv,
		"years":                    years,
		"net_return_rate":          calculation.NetReturnRate(inv),
		"series":                   roundAll(series),
		"final_value":              final.Round(2),
		"total_contributions":      contributions.Round(2),
		"gain":                     final.Sub(contributions).Round(2),
		"expected_dividend_income": calculation.ExpectedDividendIncome(inv, inv.InitialInvestment),
	})
}

func roundAll(series []decimal.Decimal) []decimal.Decimal {
	out := make([]decimal.Decimal, len(series))
	for i, d := range series {
		out[i] = d.Round(2)
	}
	return out
}
