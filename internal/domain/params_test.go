package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoanParams_UnmarshalYAML(t *testing.T) {
	testCases := []struct {
		desc        string
		doc         string
		wantAnnuity *decimal.Decimal
	}{
		{
			desc: "annuity absent",
			doc:  "principal: 320000\ninterest_rate: 0.035\nyears: 30\n",
		},
		{
			desc: "zero annuity treated as absent",
			doc:  "principal: 320000\ninterest_rate: 0.035\nyears: 30\nannuity: 0\n",
		},
		{
			desc:        "explicit annuity kept",
			doc:         "principal: 320000\ninterest_rate: 0.035\nyears: 30\nannuity: 18000\n",
			wantAnnuity: decPtr(decimal.NewFromInt(18000)),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			var lp LoanParams
			require.NoError(t, yaml.Unmarshal([]byte(tc.doc), &lp))
			assert.True(t, lp.Principal.Equal(decimal.NewFromInt(320000)))
			assert.True(t, lp.InterestRate.Equal(decimal.NewFromFloat(0.035)))
			assert.Equal(t, 30, lp.Years)
			if tc.wantAnnuity == nil {
				assert.Nil(t, lp.Annuity)
				return
			}
			require.NotNil(t, lp.Annuity)
			assert.True(t, lp.Annuity.Equal(*tc.wantAnnuity))
		})
	}
}

func TestLoanParams_UnmarshalYAMLInvalidAnnuity(t *testing.T) {
	var lp LoanParams
	err := yaml.Unmarshal([]byte("principal: 1000\nannuity: lots\n"), &lp)
	assert.Error(t, err)
}

func TestRentalInvestment_AdjustedRent(t *testing.T) {
	ri := RentalInvestment{
		Property: PropertyParams{PurchasePrice: decimal.NewFromInt(400000)},
		Rent: RentParams{
			NetColdRentMonth:      decimal.NewFromInt(1400),
			OperatingCostsMonth:   decimal.NewFromInt(220),
			MgmtCostsAnnual:       decimal.NewFromInt(1200),
			IncreaseRate:          decimal.NewFromFloat(0.03),
			IncreaseIntervalYears: 3,
		},
		VacancyRate:           decimal.NewFromFloat(0.05),
		MaintenanceReservePct: decimal.NewFromFloat(0.005),
	}

	adjusted := ri.AdjustedRent()
	assert.True(t, adjusted.NetColdRentMonth.Equal(decimal.NewFromInt(1330)), "got %s", adjusted.NetColdRentMonth)
	assert.True(t, adjusted.MgmtCostsAnnual.Equal(decimal.NewFromInt(3200)), "got %s", adjusted.MgmtCostsAnnual)
	assert.True(t, adjusted.OperatingCostsMonth.Equal(decimal.NewFromInt(220)))
	assert.Equal(t, 3, adjusted.IncreaseIntervalYears)

	t.Run("vacancy is clamped", func(t *testing.T) {
		ri.VacancyRate = decimal.NewFromFloat(1.5)
		assert.True(t, ri.AdjustedRent().NetColdRentMonth.IsZero())
		ri.VacancyRate = decimal.NewFromFloat(-0.5)
		assert.True(t, ri.AdjustedRent().NetColdRentMonth.Equal(decimal.NewFromInt(1400)))
	})
}

func TestScenario_Investment(t *testing.T) {
	global := GlobalAssumptions{
		StartYear:       2026,
		ProjectionYears: 20,
		Tax:             TaxParams{Policy: TaxPolicyFlat, Rate: decimal.NewFromFloat(0.25)},
	}

	inherited := Scenario{Name: "inherit"}.Investment(global)
	assert.Equal(t, 20, inherited.HoldingYears)
	assert.Equal(t, TaxPolicyFlat, inherited.Tax.Policy)

	override := Scenario{
		Name:         "override",
		HoldingYears: 10,
		Tax:          &TaxParams{Policy: TaxPolicyMarginal, FilingStatus: FilingMarried},
	}.Investment(global)
	assert.Equal(t, 10, override.HoldingYears)
	assert.Equal(t, TaxPolicyMarginal, override.Tax.Policy)

	params := override.ToSimulationParams(global.StartYear)
	assert.Equal(t, 2026, params.StartYear)
	assert.Equal(t, 10, params.Years)
}

func TestPropertyParams_TotalInvestmentCost(t *testing.T) {
	p := PropertyParams{
		PurchasePrice:         decimal.NewFromInt(400000),
		TransactionCostFactor: decimal.NewFromFloat(0.105),
	}
	assert.True(t, p.TotalInvestmentCost().Equal(decimal.NewFromInt(442000)))
}

func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }
