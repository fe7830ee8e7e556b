package calculation

import (
	"testing"

	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ownerCase() domain.OwnerOccupiedInvestment {
	return domain.OwnerOccupiedInvestment{
		Property: domain.PropertyParams{
			PurchasePrice:         dec(400000),
			TransactionCostFactor: dec(0.1),
		},
		Loan:                  domain.LoanParams{Principal: dec(300000), InterestRate: decimal.Zero, Years: 10},
		ImputedRentSavings:    dec(1000),
		MaintenanceReservePct: dec(0.01),
		OpportunityCostRate:   dec(0.05),
		HoldingYears:          5,
	}
}

func TestProjectedEquity(t *testing.T) {
	inv := ownerCase()
	inv.Property.ValueGrowthRate = dec(0.02)

	equity, err := ProjectedEquity(inv, 5)
	require.NoError(t, err)
	// value 400000 * 1.02^5, balance 300000 - 5 * 30000
	assert.InDelta(t, 441632.32-150000, equity.InexactFloat64(), 0.01)

	equity, err = ProjectedEquity(inv, 12)
	require.NoError(t, err)
	value := dec(400000).Mul(dec(1.02).Pow(decimal.NewFromInt(12)))
	assert.True(t, equity.Equal(value), "paid-off loan leaves the full value, got %s", equity)
}

func TestTotalCostOfOwnership(t *testing.T) {
	inv := ownerCase()

	cost, err := TotalCostOfOwnership(inv, inv.HoldingYears)
	require.NoError(t, err)
	// 40000 transaction + 20000 maintenance + 0 interest + 140000*(1.05^5-1) - 60000 imputed rent
	assert.InDelta(t, 38679.41875, cost.InexactFloat64(), 0.000001)
}

func TestTotalCostOfOwnership_OverFinancedHasNoOpportunityCost(t *testing.T) {
	inv := ownerCase()
	inv.Loan.Principal = dec(500000)
	inv.Loan.Years = 50

	cost, err := TotalCostOfOwnership(inv, inv.HoldingYears)
	require.NoError(t, err)
	// 40000 transaction + 20000 maintenance + 0 interest + 0 opportunity - 60000 imputed rent
	assert.True(t, cost.IsZero(), "got %s", cost)
}

func TestTotalCostOfOwnership_InterestStopsAtPayoff(t *testing.T) {
	annuity := dec(60000)
	inv := domain.OwnerOccupiedInvestment{
		Property: domain.PropertyParams{PurchasePrice: dec(100000)},
		Loan:     domain.LoanParams{Principal: dec(100000), InterestRate: dec(0.05), Years: 2, Annuity: &annuity},
	}

	cost, err := TotalCostOfOwnership(inv, 3)
	require.NoError(t, err)
	assert.True(t, cost.Equal(dec(7250)), "got %s", cost)

	tooSmall := dec(1000)
	inv.Loan.Annuity = &tooSmall
	_, err = TotalCostOfOwnership(inv, 3)
	assert.ErrorIs(t, err, ErrInvalidLoanConfiguration)
}
