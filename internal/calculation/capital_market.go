package calculation

import (
	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ProjectCapitalMarket returns the portfolio value at the end of each year.
// The first year compounds initial plus the yearly contribution; each later
// year adds the contribution to the previous value and compounds.
func ProjectCapitalMarket(expectedReturn, initial, yearly decimal.Decimal, years int) []decimal.Decimal {
	if years <= 0 {
		return []decimal.Decimal{}
	}
	growth := decimal.NewFromInt(1).Add(expectedReturn)
	values := make([]decimal.Decimal, years)
	current := initial
	for year := 0; year < years; year++ {
		current = current.Add(yearly).Mul(growth)
		values[year] = current
	}
	return values
}

// NetReturnRate is the expected yearly return after fees
func NetReturnRate(inv domain.CapitalMarketInvestment) decimal.Decimal {
	return inv.ExpectedReturnRate.Sub(inv.FeesPct)
}

// ProjectedValue compounds an initial amount at the net return, rounded to
// cents. Non-positive amounts or horizons are returned unchanged.
func ProjectedValue(inv domain.CapitalMarketInvestment, initial decimal.Decimal, years int) decimal.Decimal {
	if !initial.IsPositive() || years <= 0 {
		return initial
	}
	growth := decimal.NewFromInt(1).Add(NetReturnRate(inv)).Pow(decimal.NewFromInt(int64(years)))
	return initial.Mul(growth).Round(2)
}

// ExpectedDividendIncome estimates one year of dividends on a position
func ExpectedDividendIncome(inv domain.CapitalMarketInvestment, initial decimal.Decimal) decimal.Decimal {
	if !initial.IsPositive() {
		return decimal.Zero
	}
	return initial.Mul(decimal.Max(inv.DividendYield, decimal.Zero)).Round(2)
}

// AlternativeSeries projects the capital-market alternative of a property
// purchase. Without an explicit initial investment the equity contribution
// is invested instead.
func AlternativeSeries(inv domain.CapitalMarketInvestment, equityContribution decimal.Decimal, years int) []decimal.Decimal {
	initial := inv.InitialInvestment
	if !initial.IsPositive() {
		initial = equityContribution
	}
	return ProjectCapitalMarket(NetReturnRate(inv), initial, inv.YearlyContribution, years)
}
