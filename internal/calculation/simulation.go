package calculation

import (
	"errors"
	"fmt"

	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrInvalidSimulation is returned for simulation parameters that cannot be projected
var ErrInvalidSimulation = errors.New("invalid simulation parameters")

// SimulationState is carried from one simulated year to the next
type SimulationState struct {
	PropertyValue decimal.Decimal
	LoanBalance   decimal.Decimal
	DepreciationState
}

// InitialState is the state before the first simulated year
func InitialState(params domain.SimulationParams) SimulationState {
	return SimulationState{
		PropertyValue:     params.Property.PurchasePrice,
		LoanBalance:       params.Loan.Principal,
		DepreciationState: NewDepreciationState(params.Property.DepreciationBasis),
	}
}

// YearTaxFunc computes the tax effect of a year's taxable rental income
type YearTaxFunc func(year int, taxable decimal.Decimal) (decimal.Decimal, error)

// TaxFuncFor returns the tax function of the configured policy. An empty
// policy means flat. Under the marginal policy a calculator with a non-zero
// shift rate indexes the brackets unless the parameters bring their own.
func TaxFuncFor(params domain.TaxParams, calc *TaxCalculator) (YearTaxFunc, error) {
	switch params.Policy {
	case "", domain.TaxPolicyFlat:
		rate := params.Rate
		return func(_ int, taxable decimal.Decimal) (decimal.Decimal, error) {
			return decimal.Max(taxable, decimal.Zero).Mul(rate), nil
		}, nil

	case domain.TaxPolicyMarginal:
		if calc == nil {
			calc = NewTaxCalculator()
		}
		status := params.FilingStatus
		if status == "" {
			status = domain.FilingSingle
		}
		base := params.BaseIncome
		if params.IndexBrackets || !calc.ShiftRate.IsZero() {
			// a scenario that indexes its brackets overrides the calculator's shift
			indexed := calc
			if params.IndexBrackets {
				indexed = calc.WithShiftRate(params.ShiftRate)
			}
			return func(year int, taxable decimal.Decimal) (decimal.Decimal, error) {
				return indexed.MarginalDeltaForYear(base, taxable, status, year)
			}, nil
		}
		return func(_ int, taxable decimal.Decimal) (decimal.Decimal, error) {
			return calc.MarginalDelta(base, taxable, status), nil
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown tax policy %q", ErrInvalidSimulation, params.Policy)
	}
}

// Step simulates the zero-based year i. It does not modify the given state.
func Step(params domain.SimulationParams, annuity decimal.Decimal, taxFn YearTaxFunc, state SimulationState, i int) (domain.YearRecord, SimulationState, error) {
	year := params.StartYear + i

	valueStart := state.PropertyValue
	valueEnd := GrowValue(valueStart, params.Property.ValueGrowthRate)

	balanceStart := state.LoanBalance
	equityStart := valueStart.Sub(balanceStart)

	balanceEnd, interest, principal, payment := amortizeYear(balanceStart, params.Loan.InterestRate, annuity)

	rent := RentForYear(params.Rent, i)
	mgmt := params.Rent.MgmtCostsAnnual
	cashflowOperating := rent.WarmYear.Sub(mgmt).Sub(interest).Sub(principal)

	depreciation, depState := Depreciate(state.DepreciationState, params.Property.DepreciationBasis, params.Property.DepreciationRate)

	taxable := rent.WarmYear.Sub(mgmt).Sub(interest).Sub(depreciation)
	taxes, err := taxFn(year, taxable)
	if err != nil {
		return domain.YearRecord{}, state, fmt.Errorf("tax for year %d: %w", year, err)
	}

	record := domain.YearRecord{
		Year:                   year,
		PropertyValueStart:     valueStart,
		PropertyValueEnd:       valueEnd,
		EquityStart:            equityStart,
		EquityEnd:              valueEnd.Sub(balanceEnd),
		LoanBalanceStart:       balanceStart,
		LoanBalanceEnd:         balanceEnd,
		AnnuityPaid:            payment,
		InterestPaid:           interest,
		PrincipalPaid:          principal,
		NetColdRentMonth:       rent.NetColdMonth,
		WarmRentMonth:          rent.WarmMonth,
		WarmRentYear:           rent.WarmYear,
		MgmtCostsAnnual:        mgmt,
		DepreciationAnnual:     depreciation,
		DepreciationCumulative: depState.CumulativeDepreciation,
		BookValue:              depState.BookValue,
		TaxableIncome:          taxable,
		Taxes:                  taxes,
		CashflowOperating:      cashflowOperating,
		CashflowAfterTax:       cashflowOperating.Sub(taxes),
	}

	next := SimulationState{
		PropertyValue:     valueEnd,
		LoanBalance:       balanceEnd,
		DepreciationState: depState,
	}
	return record, next, nil
}

// Simulate projects a rental property year by year using the default tariff
// for the marginal tax policy.
func Simulate(params domain.SimulationParams) ([]domain.YearRecord, error) {
	return SimulateWith(params, NewTaxCalculator())
}

// SimulateWith is Simulate with an explicit tax calculator
func SimulateWith(params domain.SimulationParams, calc *TaxCalculator) ([]domain.YearRecord, error) {
	if err := validateSimulation(params); err != nil {
		return nil, err
	}
	annuity, err := ResolveAnnuity(params.Loan)
	if err != nil {
		return nil, err
	}
	taxFn, err := TaxFuncFor(params.Tax, calc)
	if err != nil {
		return nil, err
	}

	records := make([]domain.YearRecord, 0, params.Years)
	state := InitialState(params)
	for i := 0; i < params.Years; i++ {
		var record domain.YearRecord
		record, state, err = Step(params, annuity, taxFn, state, i)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func validateSimulation(params domain.SimulationParams) error {
	if params.Years < 1 {
		return fmt.Errorf("%w: at least one year is required, got %d", ErrInvalidSimulation, params.Years)
	}
	if params.Rent.IncreaseIntervalYears < 1 {
		return fmt.Errorf("%w: rent increase interval must be at least one year, got %d", ErrInvalidSimulation, params.Rent.IncreaseIntervalYears)
	}
	return nil
}

// Summarize condenses simulated records into headline figures
func Summarize(params domain.SimulationParams, records []domain.YearRecord) domain.SimulationSummary {
	totalCost := params.Property.TotalInvestmentCost()
	summary := domain.SimulationSummary{
		TotalInvestmentCost: totalCost,
		EquityContribution:  decimal.Max(totalCost.Sub(params.Loan.Principal), decimal.Zero),
	}
	if len(records) == 0 {
		return summary
	}

	first := records[0]
	last := records[len(records)-1]
	summary.CashflowYear1 = first.CashflowOperating
	summary.CashflowAfterTaxYear1 = first.CashflowAfterTax
	summary.WarmRentYear1 = first.WarmRentYear
	summary.TaxesYear1 = first.Taxes
	summary.EquityFinal = last.EquityEnd
	summary.PropertyValueFinal = last.PropertyValueEnd
	summary.LoanBalanceFinal = last.LoanBalanceEnd

	for _, r := range records {
		summary.TotalTaxes = summary.TotalTaxes.Add(r.Taxes)
		summary.TotalOperatingCashflow = summary.TotalOperatingCashflow.Add(r.CashflowOperating)
		summary.TotalCashflowAfterTax = summary.TotalCashflowAfterTax.Add(r.CashflowAfterTax)
		if summary.LoanPaidOffYear == 0 && r.LoanBalanceStart.IsPositive() && r.LoanBalanceEnd.IsZero() {
			summary.LoanPaidOffYear = r.Year
		}
	}
	return summary
}

// PropertyWealth returns equity at year end plus cumulative after-tax cash flow for each year
func PropertyWealth(records []domain.YearRecord) []decimal.Decimal {
	wealth := make([]decimal.Decimal, len(records))
	cumulative := decimal.Zero
	for i, r := range records {
		cumulative = cumulative.Add(r.CashflowAfterTax)
		wealth[i] = r.EquityEnd.Add(cumulative)
	}
	return wealth
}
