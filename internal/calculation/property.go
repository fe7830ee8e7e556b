package calculation

import (
	"github.com/shopspring/decimal"
)

// DepreciationState tracks straight-line depreciation (AfA) of the building share
type DepreciationState struct {
	CumulativeDepreciation decimal.Decimal
	BookValue              decimal.Decimal
	FullyDepreciated       bool
}

// NewDepreciationState starts depreciation with the full basis as book value
func NewDepreciationState(basis decimal.Decimal) DepreciationState {
	basis = decimal.Max(basis, decimal.Zero)
	return DepreciationState{
		CumulativeDepreciation: decimal.Zero,
		BookValue:              basis,
		FullyDepreciated:       !basis.IsPositive(),
	}
}

// GrowValue compounds a property value by one year
func GrowValue(value, rate decimal.Decimal) decimal.Decimal {
	return value.Mul(decimal.NewFromInt(1).Add(rate))
}

// Depreciate returns this year's depreciation and the advanced state. The
// amount is capped so that cumulative depreciation never exceeds the basis.
func Depreciate(state DepreciationState, basis, rate decimal.Decimal) (decimal.Decimal, DepreciationState) {
	if state.FullyDepreciated || !rate.IsPositive() {
		return decimal.Zero, state
	}

	amount := basis.Mul(rate)
	remaining := decimal.Max(basis.Sub(state.CumulativeDepreciation), decimal.Zero)
	if amount.GreaterThan(remaining) {
		amount = remaining
	}

	cumulative := state.CumulativeDepreciation.Add(amount)
	book := decimal.Max(basis.Sub(cumulative), decimal.Zero)
	return amount, DepreciationState{
		CumulativeDepreciation: cumulative,
		BookValue:              book,
		FullyDepreciated:       !book.IsPositive(),
	}
}
