package calculation

import (
	"github.com/immocalc/property-calculator/internal/domain"
	money "github.com/immocalc/property-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// mortgageProjection returns the remaining balance and the cumulative
// interest after the given number of years
func mortgageProjection(loan domain.LoanParams, years int) (balance, interestPaid decimal.Decimal, err error) {
	annuity, err := ResolveAnnuity(loan)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	balance = loan.Principal
	interestPaid = decimal.Zero
	for year := 0; year < years && balance.IsPositive(); year++ {
		var interest decimal.Decimal
		balance, interest, _, _ = amortizeYear(balance, loan.InterestRate, annuity)
		interestPaid = interestPaid.Add(interest)
	}
	return balance, interestPaid, nil
}

// ProjectedEquity estimates the owner's equity after appreciation and amortization
func ProjectedEquity(inv domain.OwnerOccupiedInvestment, years int) (decimal.Decimal, error) {
	balance, _, err := mortgageProjection(inv.Loan, years)
	if err != nil {
		return decimal.Zero, err
	}
	growth := decimal.NewFromInt(1).Add(inv.Property.ValueGrowthRate).Pow(decimal.NewFromInt(int64(years)))
	return inv.Property.PurchasePrice.Mul(growth).Sub(balance), nil
}

// TotalCostOfOwnership approximates the cumulative cost of owning a self-used
// property, net of the rent the owner no longer pays. Transaction costs,
// maintenance reserve, interest and the opportunity cost of the equity
// contribution are added up.
func TotalCostOfOwnership(inv domain.OwnerOccupiedInvestment, years int) (decimal.Decimal, error) {
	_, interestPaid, err := mortgageProjection(inv.Loan, years)
	if err != nil {
		return decimal.Zero, err
	}

	n := decimal.NewFromInt(int64(years))
	price := money.NewMoneyFromDecimal(inv.Property.PurchasePrice)
	transactionCosts := price.Share(inv.Property.TransactionCostFactor).Decimal
	maintenance := price.Share(inv.MaintenanceReservePct).Decimal.Mul(n)
	imputedSavings := money.NewMoneyFromDecimal(inv.ImputedRentSavings).Annual().Decimal.Mul(n)

	equityContribution := price.Add(money.NewMoneyFromDecimal(transactionCosts)).
		Sub(money.NewMoneyFromDecimal(inv.Loan.Principal)).NonNegative().Decimal
	opportunityCost := equityContribution.Mul(decimal.NewFromInt(1).Add(inv.OpportunityCostRate).Pow(n).Sub(decimal.NewFromInt(1)))

	return transactionCosts.Add(maintenance).Add(interestPaid).Add(opportunityCost).Sub(imputedSavings), nil
}
