package calculation

import (
	"github.com/immocalc/property-calculator/internal/domain"
	money "github.com/immocalc/property-calculator/pkg/decimal"
	"github.com/shopspring/decimal"
)

// RentFigures is the rent due in one simulated year
type RentFigures struct {
	NetColdMonth decimal.Decimal
	WarmMonth    decimal.Decimal
	WarmYear     decimal.Decimal
}

// RentForYear returns the rent for the zero-based simulation year. Increases
// are stepped: the rent only rises once a full increase interval has elapsed.
func RentForYear(params domain.RentParams, yearIndex int) RentFigures {
	interval := params.IncreaseIntervalYears
	if interval < 1 {
		interval = 1
	}
	increases := yearIndex / interval
	multiplier := decimal.NewFromInt(1).Add(params.IncreaseRate).Pow(decimal.NewFromInt(int64(increases)))

	coldMonth := params.NetColdRentMonth.Mul(multiplier)
	warmMonth := coldMonth.Add(params.OperatingCostsMonth)
	return RentFigures{
		NetColdMonth: coldMonth,
		WarmMonth:    warmMonth,
		WarmYear:     money.NewMoneyFromDecimal(warmMonth).Annual().Decimal,
	}
}
