package calculation

import (
	"errors"
	"fmt"

	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// MaxAmortizationYears bounds every amortization loop so a loan that never
// amortizes still terminates.
const MaxAmortizationYears = 100

// ErrInvalidLoanConfiguration is returned for loans that cannot amortize
var ErrInvalidLoanConfiguration = errors.New("invalid loan configuration")

// balanceEpsilon is the residue below which a balance counts as repaid
var balanceEpsilon = decimal.NewFromFloat(0.01)

// CalcAnnuity returns the constant yearly payment that repays principal over
// the given number of years. A zero rate degenerates to straight-line repayment.
func CalcAnnuity(principal, rate decimal.Decimal, years int) (decimal.Decimal, error) {
	if years <= 0 {
		return decimal.Zero, fmt.Errorf("%w: term must be at least one year, got %d", ErrInvalidLoanConfiguration, years)
	}
	n := decimal.NewFromInt(int64(years))
	if rate.IsZero() {
		return principal.Div(n), nil
	}
	one := decimal.NewFromInt(1)
	discount := one.Add(rate).Pow(n.Neg())
	return principal.Mul(rate).Div(one.Sub(discount)), nil
}

// AmortizationStep advances a balance by one year. It does not clamp; a
// payment larger than the balance yields a negative new balance.
func AmortizationStep(balance, rate, annuity decimal.Decimal) (newBalance, interest, principalPayment decimal.Decimal) {
	interest = balance.Mul(rate)
	principalPayment = annuity.Sub(interest)
	newBalance = balance.Sub(principalPayment)
	return newBalance, interest, principalPayment
}

// snapBalance removes sub-cent residue left over by the final payment
func snapBalance(balance decimal.Decimal) decimal.Decimal {
	if balance.Abs().LessThan(balanceEpsilon) {
		return decimal.Zero
	}
	return balance
}

// amortizeYear is AmortizationStep with payoff handling: the final payment is
// capped at the remaining balance and a repaid loan produces no further flows.
func amortizeYear(balance, rate, annuity decimal.Decimal) (newBalance, interest, principalPayment, payment decimal.Decimal) {
	if !balance.IsPositive() {
		return decimal.Zero, decimal.Zero, decimal.Zero, decimal.Zero
	}
	newBalance, interest, principalPayment = AmortizationStep(balance, rate, annuity)
	payment = annuity
	if principalPayment.GreaterThanOrEqual(balance) {
		principalPayment = balance
		payment = interest.Add(principalPayment)
		newBalance = decimal.Zero
	}
	return snapBalance(newBalance), interest, principalPayment, payment
}

// ResolveAnnuity returns the explicit annuity of a loan or derives it from
// principal, rate and term. An explicit annuity must exceed the first year's
// interest, otherwise the loan never amortizes.
func ResolveAnnuity(loan domain.LoanParams) (decimal.Decimal, error) {
	if loan.InterestRate.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: interest rate must not be negative, got %s", ErrInvalidLoanConfiguration, loan.InterestRate)
	}
	if loan.Principal.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: principal must not be negative, got %s", ErrInvalidLoanConfiguration, loan.Principal.StringFixed(2))
	}
	if loan.Annuity == nil {
		if loan.Principal.IsZero() {
			return decimal.Zero, nil
		}
		return CalcAnnuity(loan.Principal, loan.InterestRate, loan.Years)
	}

	annuity := *loan.Annuity
	firstInterest := loan.Principal.Mul(loan.InterestRate)
	if loan.Principal.IsPositive() && annuity.LessThanOrEqual(firstInterest) {
		return decimal.Zero, fmt.Errorf("%w: annuity %s does not exceed first-year interest %s",
			ErrInvalidLoanConfiguration, annuity.StringFixed(2), firstInterest.StringFixed(2))
	}
	return annuity, nil
}

// MortgageSchedule amortizes a loan whose annuity is derived from a target
// initial repayment rate (Tilgung). It stops when the balance reaches zero or
// after maxYears; in the latter case the schedule reports the loan as unpaid.
func MortgageSchedule(principal, interestRate, initialTilgungRate decimal.Decimal, maxYears int) (domain.MortgageSchedule, error) {
	if interestRate.IsNegative() {
		return domain.MortgageSchedule{}, fmt.Errorf("%w: interest rate must not be negative, got %s", ErrInvalidLoanConfiguration, interestRate)
	}
	if !initialTilgungRate.IsPositive() {
		return domain.MortgageSchedule{}, fmt.Errorf("%w: initial repayment rate must be positive, got %s", ErrInvalidLoanConfiguration, initialTilgungRate)
	}

	annuity := principal.Mul(interestRate.Add(initialTilgungRate))
	firstInterest := principal.Mul(interestRate)
	if annuity.LessThanOrEqual(firstInterest) {
		return domain.MortgageSchedule{}, fmt.Errorf("%w: annuity %s does not exceed first-year interest %s",
			ErrInvalidLoanConfiguration, annuity.StringFixed(2), firstInterest.StringFixed(2))
	}
	if maxYears <= 0 || maxYears > MaxAmortizationYears {
		maxYears = MaxAmortizationYears
	}

	schedule := domain.MortgageSchedule{
		Annuity:       annuity,
		TotalInterest: decimal.Zero,
		TotalPaid:     decimal.Zero,
	}
	balance := principal
	for year := 1; year <= maxYears && balance.IsPositive(); year++ {
		var interest, principalPayment, payment decimal.Decimal
		balance, interest, principalPayment, payment = amortizeYear(balance, interestRate, annuity)

		schedule.Entries = append(schedule.Entries, domain.ScheduleEntry{
			Year:      year,
			Interest:  interest,
			Principal: principalPayment,
			Payment:   payment,
			Balance:   balance,
		})
		schedule.TotalInterest = schedule.TotalInterest.Add(interest)
		schedule.TotalPaid = schedule.TotalPaid.Add(payment)
	}
	schedule.PaidOff = balance.IsZero()

	return schedule, nil
}
