package calculation

import (
	"testing"

	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// defaultSimulationParams mirrors the defaults of the rental simulation endpoint
func defaultSimulationParams() domain.SimulationParams {
	return domain.SimulationParams{
		StartYear: 2025,
		Years:     20,
		Property: domain.PropertyParams{
			PurchasePrice:         dec(400000),
			TransactionCostFactor: dec(0.105),
			ValueGrowthRate:       dec(0.02),
			DepreciationBasis:     dec(320000),
			DepreciationRate:      dec(0.02),
		},
		Loan: domain.LoanParams{
			Principal:    dec(320000),
			InterestRate: dec(0.01),
			Years:        30,
		},
		Rent: testRentParams(),
		Tax: domain.TaxParams{
			Policy: domain.TaxPolicyFlat,
			Rate:   dec(0.25),
		},
	}
}

func TestSimulate_FirstYear(t *testing.T) {
	records, err := Simulate(defaultSimulationParams())
	require.NoError(t, err)
	require.Len(t, records, 20)

	first := records[0]
	assert.Equal(t, 2025, first.Year)
	assert.True(t, first.PropertyValueStart.Equal(dec(400000)))
	assert.True(t, first.PropertyValueEnd.Equal(dec(408000)))
	assert.True(t, first.EquityStart.Equal(dec(80000)))
	assert.True(t, first.LoanBalanceStart.Equal(dec(320000)))
	assert.InDelta(t, 12399.3962, first.AnnuityPaid.InexactFloat64(), 0.001)
	assert.True(t, first.InterestPaid.Equal(dec(3200)))
	assert.InDelta(t, 9199.3962, first.PrincipalPaid.InexactFloat64(), 0.001)
	assert.True(t, first.WarmRentYear.Equal(dec(19440)))
	assert.True(t, first.DepreciationAnnual.Equal(dec(6400)))
	assert.True(t, first.TaxableIncome.Equal(dec(8640)), "taxable %s", first.TaxableIncome)
	assert.True(t, first.Taxes.Equal(dec(2160)), "taxes %s", first.Taxes)
	assert.InDelta(t, 5840.6038, first.CashflowOperating.InexactFloat64(), 0.001)
	assert.InDelta(t, 3680.6038, first.CashflowAfterTax.InexactFloat64(), 0.001)
}

func TestSimulate_RecordInvariants(t *testing.T) {
	records, err := Simulate(defaultSimulationParams())
	require.NoError(t, err)

	for i, r := range records {
		assert.Equal(t, 2025+i, r.Year)
		assert.True(t, r.EquityEnd.Equal(r.PropertyValueEnd.Sub(r.LoanBalanceEnd)), "year %d", r.Year)
		assert.True(t, r.CashflowAfterTax.Equal(r.CashflowOperating.Sub(r.Taxes)), "year %d", r.Year)
		assert.True(t, r.WarmRentYear.Equal(r.WarmRentMonth.Mul(decimal.NewFromInt(12))), "year %d", r.Year)
		assert.False(t, r.LoanBalanceEnd.IsNegative(), "year %d", r.Year)
		if i > 0 {
			prev := records[i-1]
			assert.True(t, r.PropertyValueStart.Equal(prev.PropertyValueEnd), "year %d", r.Year)
			assert.True(t, r.LoanBalanceStart.Equal(prev.LoanBalanceEnd), "year %d", r.Year)
			assert.True(t, r.NetColdRentMonth.GreaterThanOrEqual(prev.NetColdRentMonth), "year %d", r.Year)
		}
	}

	// stepped rent: increases in years 4, 7, 10, ...
	assert.True(t, records[2].NetColdRentMonth.Equal(dec(1400)))
	assert.True(t, records[3].NetColdRentMonth.Equal(dec(1442)))
}

func TestSimulate_LoanPayoffFreezesCashflows(t *testing.T) {
	params := defaultSimulationParams()
	annuity := dec(3000)
	params.Loan = domain.LoanParams{Principal: dec(10000), InterestRate: decimal.Zero, Years: 10, Annuity: &annuity}
	params.Years = 6

	records, err := Simulate(params)
	require.NoError(t, err)

	expectedPayment := []float64{3000, 3000, 3000, 1000, 0, 0}
	expectedBalance := []float64{7000, 4000, 1000, 0, 0, 0}
	for i, r := range records {
		assert.True(t, r.AnnuityPaid.Equal(dec(expectedPayment[i])), "year %d payment %s", r.Year, r.AnnuityPaid)
		assert.True(t, r.PrincipalPaid.Equal(dec(expectedPayment[i])), "year %d principal %s", r.Year, r.PrincipalPaid)
		assert.True(t, r.LoanBalanceEnd.Equal(dec(expectedBalance[i])), "year %d balance %s", r.Year, r.LoanBalanceEnd)
		assert.True(t, r.InterestPaid.IsZero())
	}

	summary := Summarize(params, records)
	assert.Equal(t, 2028, summary.LoanPaidOffYear)
	assert.True(t, summary.LoanBalanceFinal.IsZero())
}

func TestSimulate_TermDerivedAnnuityPaysOff(t *testing.T) {
	params := defaultSimulationParams()
	params.Loan = domain.LoanParams{Principal: dec(50000), InterestRate: dec(0.04), Years: 5}
	params.Years = 8

	records, err := Simulate(params)
	require.NoError(t, err)

	assert.True(t, records[4].LoanBalanceEnd.IsZero(), "balance %s", records[4].LoanBalanceEnd)
	for _, r := range records[5:] {
		assert.True(t, r.AnnuityPaid.IsZero())
		assert.True(t, r.InterestPaid.IsZero())
		assert.True(t, r.PrincipalPaid.IsZero())
	}
	assert.Equal(t, 2029, Summarize(params, records).LoanPaidOffYear)
}

func TestSimulate_DepreciationCapped(t *testing.T) {
	params := defaultSimulationParams()
	params.Property.DepreciationRate = dec(0.1)

	records, err := Simulate(params)
	require.NoError(t, err)

	for i, r := range records {
		if i < 10 {
			assert.True(t, r.DepreciationAnnual.Equal(dec(32000)), "year %d", r.Year)
		} else {
			assert.True(t, r.DepreciationAnnual.IsZero(), "year %d", r.Year)
		}
		assert.True(t, r.DepreciationCumulative.LessThanOrEqual(params.Property.DepreciationBasis))
	}
	last := records[len(records)-1]
	assert.True(t, last.DepreciationCumulative.Equal(dec(320000)))
	assert.True(t, last.BookValue.IsZero())
}

func TestSimulate_TaxPolicies(t *testing.T) {
	t.Run("flat drops losses", func(t *testing.T) {
		params := defaultSimulationParams()
		params.Rent.NetColdRentMonth = dec(500)

		records, err := Simulate(params)
		require.NoError(t, err)
		assert.True(t, records[0].TaxableIncome.IsNegative())
		assert.True(t, records[0].Taxes.IsZero())
	})

	t.Run("marginal on top of base income", func(t *testing.T) {
		params := defaultSimulationParams()
		params.Tax = domain.TaxParams{Policy: domain.TaxPolicyMarginal, FilingStatus: domain.FilingSingle, BaseIncome: dec(50000)}

		records, err := Simulate(params)
		require.NoError(t, err)

		calc := NewTaxCalculator()
		want := calc.MarginalDelta(dec(50000), dec(8640), domain.FilingSingle)
		assert.True(t, records[0].Taxes.Equal(want), "got %s want %s", records[0].Taxes, want)
		assert.True(t, records[0].Taxes.IsPositive())
	})

	t.Run("marginal losses reduce tax", func(t *testing.T) {
		params := defaultSimulationParams()
		params.Rent.NetColdRentMonth = dec(500)
		params.Tax = domain.TaxParams{Policy: domain.TaxPolicyMarginal, BaseIncome: dec(60000)}

		records, err := Simulate(params)
		require.NoError(t, err)
		assert.True(t, records[0].Taxes.IsNegative())
		assert.True(t, records[0].CashflowAfterTax.GreaterThan(records[0].CashflowOperating))
	})

	t.Run("indexed brackets from the tariff year", func(t *testing.T) {
		params := defaultSimulationParams()
		params.StartYear = 2026
		params.Tax = domain.TaxParams{Policy: domain.TaxPolicyMarginal, BaseIncome: dec(50000), IndexBrackets: true, ShiftRate: dec(0.02)}

		records, err := Simulate(params)
		require.NoError(t, err)

		calc := NewTaxCalculator()
		want := calc.MarginalDelta(dec(50000), records[0].TaxableIncome, domain.FilingSingle)
		assert.True(t, records[0].Taxes.Equal(want))
	})

	t.Run("calculator shift indexes unindexed scenarios", func(t *testing.T) {
		params := defaultSimulationParams()
		params.StartYear = 2026
		params.Tax = domain.TaxParams{Policy: domain.TaxPolicyMarginal, BaseIncome: dec(50000)}

		plain, err := SimulateWith(params, NewTaxCalculator())
		require.NoError(t, err)
		shiftedCalc := NewTaxCalculator().WithShiftRate(dec(0.05))
		shifted, err := SimulateWith(params, shiftedCalc)
		require.NoError(t, err)

		last := len(shifted) - 1
		want, err := shiftedCalc.MarginalDeltaForYear(dec(50000), shifted[last].TaxableIncome, domain.FilingSingle, shifted[last].Year)
		require.NoError(t, err)
		assert.True(t, shifted[last].Taxes.Equal(want), "got %s want %s", shifted[last].Taxes, want)
		assert.False(t, shifted[last].Taxes.Equal(plain[last].Taxes))

		// explicit scenario indexing wins over the calculator shift
		params.Tax.IndexBrackets = true
		params.Tax.ShiftRate = dec(0.02)
		own, err := SimulateWith(params, shiftedCalc)
		require.NoError(t, err)
		wantOwn, err := NewTaxCalculator().WithShiftRate(dec(0.02)).MarginalDeltaForYear(dec(50000), own[last].TaxableIncome, domain.FilingSingle, own[last].Year)
		require.NoError(t, err)
		assert.True(t, own[last].Taxes.Equal(wantOwn))
	})

	t.Run("indexed brackets before the tariff year", func(t *testing.T) {
		params := defaultSimulationParams()
		params.Tax = domain.TaxParams{Policy: domain.TaxPolicyMarginal, BaseIncome: dec(50000), IndexBrackets: true}

		_, err := Simulate(params)
		assert.ErrorIs(t, err, ErrUnsupportedTaxYear)
	})

	t.Run("unknown policy", func(t *testing.T) {
		params := defaultSimulationParams()
		params.Tax.Policy = "progressive"

		_, err := Simulate(params)
		assert.ErrorIs(t, err, ErrInvalidSimulation)
	})
}

func TestSimulate_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *domain.SimulationParams)
		wantErr error
	}{
		{"zero years", func(p *domain.SimulationParams) { p.Years = 0 }, ErrInvalidSimulation},
		{"zero rent interval", func(p *domain.SimulationParams) { p.Rent.IncreaseIntervalYears = 0 }, ErrInvalidSimulation},
		{"negative interest", func(p *domain.SimulationParams) { p.Loan.InterestRate = dec(-0.01) }, ErrInvalidLoanConfiguration},
		{"negative principal", func(p *domain.SimulationParams) { p.Loan.Principal = dec(-1) }, ErrInvalidLoanConfiguration},
		{"annuity below interest", func(p *domain.SimulationParams) {
			a := dec(3000)
			p.Loan.Annuity = &a
		}, ErrInvalidLoanConfiguration},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params := defaultSimulationParams()
			tt.mutate(&params)
			_, err := Simulate(params)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSimulate_NoLoan(t *testing.T) {
	params := defaultSimulationParams()
	params.Loan = domain.LoanParams{}

	records, err := Simulate(params)
	require.NoError(t, err)
	for _, r := range records {
		assert.True(t, r.AnnuityPaid.IsZero())
		assert.True(t, r.EquityEnd.Equal(r.PropertyValueEnd))
	}
	assert.Equal(t, 0, Summarize(params, records).LoanPaidOffYear)
}

func TestStep_DoesNotMutateState(t *testing.T) {
	params := defaultSimulationParams()
	annuity, err := ResolveAnnuity(params.Loan)
	require.NoError(t, err)
	taxFn, err := TaxFuncFor(params.Tax, nil)
	require.NoError(t, err)

	state := InitialState(params)
	r1, _, err := Step(params, annuity, taxFn, state, 0)
	require.NoError(t, err)
	r2, _, err := Step(params, annuity, taxFn, state, 0)
	require.NoError(t, err)
	assert.Equal(t, r1, r2)
	assert.True(t, state.LoanBalance.Equal(dec(320000)))
}

func TestSummarize(t *testing.T) {
	params := defaultSimulationParams()
	records, err := Simulate(params)
	require.NoError(t, err)

	summary := Summarize(params, records)
	assert.True(t, summary.TotalInvestmentCost.Equal(dec(442000)))
	assert.True(t, summary.EquityContribution.Equal(dec(122000)))
	assert.InDelta(t, 5840.6038, summary.CashflowYear1.InexactFloat64(), 0.001)
	assert.True(t, summary.TaxesYear1.Equal(dec(2160)))
	assert.True(t, summary.WarmRentYear1.Equal(dec(19440)))
	assert.Equal(t, 0, summary.LoanPaidOffYear)

	last := records[len(records)-1]
	assert.True(t, summary.EquityFinal.Equal(last.EquityEnd))
	assert.True(t, summary.PropertyValueFinal.Equal(last.PropertyValueEnd))
	assert.True(t, summary.LoanBalanceFinal.Equal(last.LoanBalanceEnd))

	total := decimal.Zero
	for _, r := range records {
		total = total.Add(r.Taxes)
	}
	assert.True(t, summary.TotalTaxes.Equal(total))

	empty := Summarize(params, nil)
	assert.True(t, empty.TotalInvestmentCost.Equal(dec(442000)))
	assert.True(t, empty.CashflowYear1.IsZero())
}

func TestPropertyWealth(t *testing.T) {
	records := []domain.YearRecord{
		{EquityEnd: dec(100), CashflowAfterTax: dec(10)},
		{EquityEnd: dec(150), CashflowAfterTax: dec(-5)},
		{EquityEnd: dec(200), CashflowAfterTax: dec(20)},
	}
	wealth := PropertyWealth(records)
	require.Len(t, wealth, 3)
	assert.True(t, wealth[0].Equal(dec(110)))
	assert.True(t, wealth[1].Equal(dec(155)))
	assert.True(t, wealth[2].Equal(dec(225)))
}
