package calculation

import (
	"errors"
	"fmt"

	"github.com/immocalc/property-calculator/internal/domain"
	money "github.com/immocalc/property-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// ErrUnboundedAffordability is returned when the rent alone covers the
// financing of any living space
var ErrUnboundedAffordability = errors.New("affordability is unbounded")

// Financing defaults used when a caller does not specify them
var (
	DefaultInterestRate       = decimal.RequireFromString("0.01")
	DefaultTilgungRate        = decimal.RequireFromString("0.04")
	DefaultAdditionalCostRate = decimal.RequireFromString("0.105")
)

// FinancingQuote finances a purchase price plus additional costs with the
// available assets and an annuity loan for the remainder. Negative assets or
// cost rates count as zero.
func FinancingQuote(price, assets, costRate, interestRate, tilgungRate decimal.Decimal) (domain.FinancingQuote, error) {
	available := money.NewMoneyFromDecimal(assets).NonNegative()
	costRate = decimal.Max(costRate, decimal.Zero)

	purchase := money.NewMoneyFromDecimal(price)
	additional := purchase.Share(costRate)
	totalPrice := purchase.Add(additional)
	quote := domain.FinancingQuote{
		PurchasePrice:      price,
		AdditionalCostRate: costRate,
		AdditionalCosts:    additional.Decimal.Round(0),
		TotalPrice:         totalPrice.Decimal.Round(0),
		AvailableAssets:    available.Decimal,
		LoanAmount:         totalPrice.Sub(available).NonNegative().Decimal,
		InterestRate:       interestRate,
		TilgungRate:        tilgungRate,
		AnnualAnnuity:      decimal.Zero,
		MonthlyRate:        decimal.Zero,
		TotalInterest:      decimal.Zero,
		TotalPaid:          decimal.Zero,
		PaidOff:            true,
	}
	if !quote.LoanAmount.IsPositive() {
		return quote, nil
	}

	schedule, err := MortgageSchedule(quote.LoanAmount, interestRate, tilgungRate, MaxAmortizationYears)
	if err != nil {
		return domain.FinancingQuote{}, fmt.Errorf("failed to build mortgage schedule: %w", err)
	}
	quote.AnnualAnnuity = schedule.Annuity
	quote.MonthlyRate = money.NewMoneyFromDecimal(schedule.Annuity).Monthly().Round().Decimal
	quote.Years = schedule.Years()
	quote.TotalInterest = schedule.TotalInterest.Round(2)
	quote.TotalPaid = schedule.TotalPaid.Round(2)
	quote.PaidOff = schedule.PaidOff
	return quote, nil
}

// MaxAffordablePrice returns the highest purchase price whose loan can be
// serviced from a monthly budget: loan = budget*12/(interest+tilgung),
// price = (loan+assets)/(1+costRate).
func MaxAffordablePrice(monthlyBudget, assets, interestRate, tilgungRate, costRate decimal.Decimal) (decimal.Decimal, error) {
	annuityRate := interestRate.Add(tilgungRate)
	if !annuityRate.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: interest plus repayment rate must be positive, got %s", ErrInvalidLoanConfiguration, annuityRate)
	}
	loan := money.NewMoneyFromDecimal(monthlyBudget).NonNegative().Annual().Decimal.Div(annuityRate)
	total := loan.Add(money.NewMoneyFromDecimal(assets).NonNegative().Decimal)
	return total.Div(decimal.NewFromInt(1).Add(decimal.Max(costRate, decimal.Zero))), nil
}

// MaxAffordableSize estimates the largest living space whose financing is
// covered by wealth and the rent it earns:
//
//	size = -wealth*(a/12) / (rent - nonChargeable - (a/12)*price*costFactor),  a = interest + repayment
func MaxAffordableSize(in domain.AffordabilityInput) (decimal.Decimal, error) {
	monthlyRate := in.InterestRate.Add(in.RepaymentRate).Div(decimal.NewFromInt(12))

	numerator := in.Wealth.Neg().Mul(monthlyRate)
	denominator := in.BaseRentPerSqm.
		Sub(in.NonChargeableCostPerSqm).
		Sub(monthlyRate.Mul(in.PricePerSqm).Mul(in.PurchaseCostFactor))
	if !denominator.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: rent %s per sqm covers the monthly financing cost",
			ErrUnboundedAffordability, in.BaseRentPerSqm.StringFixed(2))
	}
	return numerator.Div(denominator), nil
}
