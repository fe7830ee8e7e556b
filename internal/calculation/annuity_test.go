package calculation

import (
	"errors"
	"testing"

	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(f float64) decimal.Decimal { return decimal.NewFromFloat(f) }

func TestCalcAnnuity(t *testing.T) {
	t.Run("zero rate is straight-line", func(t *testing.T) {
		annuity, err := CalcAnnuity(dec(300000), decimal.Zero, 30)
		require.NoError(t, err)
		assert.True(t, annuity.Equal(dec(10000)), "got %s", annuity)
	})

	t.Run("standard annuity formula", func(t *testing.T) {
		annuity, err := CalcAnnuity(dec(320000), dec(0.01), 30)
		require.NoError(t, err)
		assert.InDelta(t, 12399.3962, annuity.InexactFloat64(), 0.001)
	})

	t.Run("non-positive term fails", func(t *testing.T) {
		_, err := CalcAnnuity(dec(100000), dec(0.03), 0)
		assert.ErrorIs(t, err, ErrInvalidLoanConfiguration)
		_, err = CalcAnnuity(dec(100000), dec(0.03), -5)
		assert.ErrorIs(t, err, ErrInvalidLoanConfiguration)
	})
}

// Applying the term-derived annuity for exactly the term drives the balance to zero.
func TestAnnuityRoundTrip(t *testing.T) {
	cases := []struct {
		principal float64
		rate      float64
		years     int
	}{
		{200000, 0.03, 25},
		{320000, 0.01, 30},
		{50000, 0.075, 10},
		{120000, 0, 12},
		{1000, 0.2, 1},
	}
	for _, c := range cases {
		annuity, err := CalcAnnuity(dec(c.principal), dec(c.rate), c.years)
		require.NoError(t, err)

		balance := dec(c.principal)
		for i := 0; i < c.years; i++ {
			balance, _, _ = AmortizationStep(balance, dec(c.rate), annuity)
		}
		assert.InDelta(t, 0, balance.InexactFloat64(), 0.001, "principal=%v rate=%v years=%d", c.principal, c.rate, c.years)
	}
}

func TestAmortizationStep_NoClamping(t *testing.T) {
	newBalance, interest, principal := AmortizationStep(dec(1000), dec(0.05), dec(5000))
	assert.True(t, interest.Equal(dec(50)))
	assert.True(t, principal.Equal(dec(4950)))
	assert.True(t, newBalance.Equal(dec(-3950)), "primitive must not clamp, got %s", newBalance)
}

func TestMortgageSchedule_EndToEnd(t *testing.T) {
	schedule, err := MortgageSchedule(dec(300000), dec(0.02), dec(0.03), MaxAmortizationYears)
	require.NoError(t, err)

	assert.True(t, schedule.Annuity.Equal(dec(15000)), "annuity %s", schedule.Annuity)
	require.NotEmpty(t, schedule.Entries)

	first := schedule.Entries[0]
	assert.Equal(t, 1, first.Year)
	assert.True(t, first.Interest.Equal(dec(6000)), "interest %s", first.Interest)
	assert.True(t, first.Principal.Equal(dec(9000)), "principal %s", first.Principal)
	assert.True(t, first.Balance.Equal(dec(291000)), "balance %s", first.Balance)

	assert.True(t, schedule.PaidOff)
	last := schedule.Entries[len(schedule.Entries)-1]
	assert.True(t, last.Balance.IsZero())
	assert.True(t, last.Payment.LessThanOrEqual(schedule.Annuity), "final payment is capped")
	assert.True(t, last.Payment.Equal(last.Interest.Add(last.Principal)))

	for _, e := range schedule.Entries {
		assert.False(t, e.Balance.IsNegative(), "year %d balance %s", e.Year, e.Balance)
	}

	totalPrincipal := decimal.Zero
	for _, e := range schedule.Entries {
		totalPrincipal = totalPrincipal.Add(e.Principal)
	}
	assert.InDelta(t, 300000, totalPrincipal.InexactFloat64(), 0.01)
	assert.InDelta(t, schedule.TotalPaid.InexactFloat64(), schedule.TotalInterest.Add(totalPrincipal).InexactFloat64(), 0.0001)
}

func TestMortgageSchedule_InvalidConfiguration(t *testing.T) {
	tests := []struct {
		name     string
		interest float64
		tilgung  float64
	}{
		{"zero tilgung", 0.02, 0},
		{"negative tilgung", 0.02, -0.01},
		{"negative interest", -0.01, 0.03},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := MortgageSchedule(dec(300000), dec(tt.interest), dec(tt.tilgung), MaxAmortizationYears)
			assert.True(t, errors.Is(err, ErrInvalidLoanConfiguration), "got %v", err)
		})
	}

	_, err := MortgageSchedule(decimal.Zero, dec(0.02), dec(0.03), MaxAmortizationYears)
	assert.ErrorIs(t, err, ErrInvalidLoanConfiguration)
}

func TestMortgageSchedule_StopsAtMaxYears(t *testing.T) {
	schedule, err := MortgageSchedule(dec(300000), dec(0.05), dec(0.001), 10)
	require.NoError(t, err)
	assert.Len(t, schedule.Entries, 10)
	assert.False(t, schedule.PaidOff)
	assert.True(t, schedule.Entries[9].Balance.IsPositive())
}

func TestMortgageSchedule_ZeroInterest(t *testing.T) {
	schedule, err := MortgageSchedule(dec(100000), decimal.Zero, dec(0.1), 0)
	require.NoError(t, err)
	assert.Len(t, schedule.Entries, 10)
	assert.True(t, schedule.TotalInterest.IsZero())
	assert.True(t, schedule.TotalPaid.Equal(dec(100000)))
	assert.True(t, schedule.PaidOff)
}

func TestResolveAnnuity(t *testing.T) {
	explicit := dec(20000)
	annuity, err := ResolveAnnuity(domain.LoanParams{Principal: dec(300000), InterestRate: dec(0.04), Years: 30, Annuity: &explicit})
	require.NoError(t, err)
	assert.True(t, annuity.Equal(explicit))

	tooSmall := dec(12000)
	_, err = ResolveAnnuity(domain.LoanParams{Principal: dec(300000), InterestRate: dec(0.04), Years: 30, Annuity: &tooSmall})
	assert.ErrorIs(t, err, ErrInvalidLoanConfiguration)

	_, err = ResolveAnnuity(domain.LoanParams{Principal: dec(300000), InterestRate: dec(-0.01), Years: 30})
	assert.ErrorIs(t, err, ErrInvalidLoanConfiguration)

	annuity, err = ResolveAnnuity(domain.LoanParams{Principal: decimal.Zero, InterestRate: dec(0.03), Years: 0})
	require.NoError(t, err)
	assert.True(t, annuity.IsZero())
}
