package calculation

import (
	"fmt"

	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/immocalc/property-calculator/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// FindWealthBreakEven finds the first crossover between two yearly wealth
// series. Index i of both series is the wealth at the end of calendar year
// startYear+i; series are aligned to the shorter one. Inside the crossover
// year the difference is interpolated linearly. If the series never cross,
// nil is returned without error.
func FindWealthBreakEven(startYear int, a, b []decimal.Decimal) (*domain.BreakEvenPoint, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, fmt.Errorf("one or both wealth series are empty")
	}

	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	tolerance := decimal.NewFromFloat(0.01)
	one := decimal.NewFromInt(1)

	prevDiff := a[0].Sub(b[0])
	for i := 1; i < n; i++ {
		currDiff := a[i].Sub(b[i])
		year := startYear + i

		// Exact equality at year end; an equality carried over from the previous year is not a crossing
		if currDiff.Abs().LessThan(tolerance) {
			if prevDiff.Abs().GreaterThanOrEqual(tolerance) {
				return &domain.BreakEvenPoint{
					YearIndex:      i + 1,
					CalendarYear:   float64(year + 1),
					Fraction:       one,
					Amount:         a[i],
					BreakEvenMonth: 12,
					BreakEvenYear:  year,
				}, nil
			}
			prevDiff = currDiff
			continue
		}

		if prevDiff.Mul(currDiff).IsNegative() {
			// diff(t) = prevDiff + t*(currDiff-prevDiff) = 0
			t := prevDiff.Neg().Div(currDiff.Sub(prevDiff))
			if t.IsNegative() {
				t = decimal.Zero
			} else if t.GreaterThan(one) {
				t = one
			}

			return &domain.BreakEvenPoint{
				YearIndex:      i + 1,
				CalendarYear:   dateutil.FractionalYear(year, t.InexactFloat64()),
				Fraction:       t,
				Amount:         a[i-1].Add(a[i].Sub(a[i-1]).Mul(t)),
				BreakEvenMonth: dateutil.MonthOfYearFraction(t.InexactFloat64()),
				BreakEvenYear:  year,
			}, nil
		}
		prevDiff = currDiff
	}

	return nil, nil
}
