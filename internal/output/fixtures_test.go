package output

import (
	"time"

	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

func record(year int, value, loan, cf int64) domain.YearRecord {
	return domain.YearRecord{
		Year:             year,
		PropertyValueEnd: decimal.NewFromInt(value),
		LoanBalanceEnd:   decimal.NewFromInt(loan),
		EquityEnd:        decimal.NewFromInt(value - loan),
		WarmRentYear:     decimal.NewFromInt(19440),
		InterestPaid:     decimal.NewFromInt(3200),
		Taxes:            decimal.NewFromInt(-450),
		CashflowAfterTax: decimal.NewFromInt(cf),
	}
}

func series(values ...int64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromInt(v)
	}
	return out
}

func buildTestComparison() *domain.ScenarioComparison {
	return &domain.ScenarioComparison{
		RunID:       "run-1",
		GeneratedAt: time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
		Alternative: &domain.CapitalMarketInvestment{
			Name:               "World ETF",
			ExpectedReturnRate: decimal.NewFromFloat(0.06),
			FeesPct:            decimal.NewFromFloat(0.002),
		},
		Scenarios: []domain.ScenarioSummary{
			{
				Name:              "B",
				Records:           []domain.YearRecord{record(2026, 408000, 310000, 1200), record(2027, 416160, 300000, 1300)},
				Summary:           domain.SimulationSummary{EquityContribution: decimal.NewFromInt(122000), CashflowAfterTaxYear1: decimal.NewFromInt(1200)},
				PropertyWealth:    series(99200, 118460),
				AlternativeWealth: series(129076, 160000),
				FinalWealth:       decimal.NewFromInt(180000),

				AlternativeFinalWealth: decimal.NewFromInt(160000),
				BreakEven:              &domain.BreakEvenPoint{YearIndex: 2, BreakEvenMonth: 3, BreakEvenYear: 2031},
			},
			{
				Name:              "A",
				Records:           []domain.YearRecord{record(2026, 408000, 320000, -800), record(2027, 416160, 312000, -700)},
				Summary:           domain.SimulationSummary{EquityContribution: decimal.NewFromInt(122000), CashflowAfterTaxYear1: decimal.NewFromInt(-800)},
				PropertyWealth:    series(87200, 102660),
				AlternativeWealth: series(129076, 160000),
				FinalWealth:       decimal.NewFromInt(150000),

				AlternativeFinalWealth: decimal.NewFromInt(160000),
			},
		},
	}
}
