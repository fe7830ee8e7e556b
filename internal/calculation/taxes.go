package calculation

import (
	"errors"
	"fmt"
	"sort"

	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// TAX CALCULATION ASSUMPTIONS:
//
// 1. Income tax follows the §32a EStG basic tariff (Grundtarif). The 2026
//    tariff is the default; the 2025 tariff is available for comparison.
//    - Taxable income (zvE) is floored to full euros before the lookup
//    - The resulting tax is not rounded to full euros
//
// 2. Joint assessment uses the splitting procedure: half of the joint
//    income is taxed with the basic tariff and the result is doubled.
//    - The reported marginal rate is the basic-tariff marginal rate at the
//      half income
//
// 3. Solidarity surcharge and church tax are not modeled.
//
// 4. Future years can be projected from a fixed tariff by deflating income
//    with an assumed yearly bracket shift (EvaluateForYear).

var (
	// ErrUnsupportedTaxYear is returned when a projection year precedes the tariff year
	ErrUnsupportedTaxYear = errors.New("unsupported tax year")
	// ErrUnknownTaxTable is returned when no tariff is registered for a year
	ErrUnknownTaxTable = errors.New("unknown tax table")
)

const (
	// DefaultCurveStep is the income distance between two tax curve points
	DefaultCurveStep = 1000
	// MinCurveUpperBound is the smallest income a tax curve extends to
	MinCurveUpperBound = 300000
	// MaxCurvePoints bounds the grid of a tax curve; larger ranges widen the step
	MaxCurvePoints = 10000
)

// TaxTable holds the constants of one year of the §32a EStG tariff.
//
//	zvE <= BasicAllowance:     0
//	zvE <= ZoneOneEnd:         (ZoneOneFactor*y + ZoneOneEntry)*y,               y = (zvE-BasicAllowance)/10000
//	zvE <= ZoneTwoEnd:         (ZoneTwoFactor*z + ZoneTwoEntry)*z + ZoneTwoBase, z = (zvE-ZoneOneEnd)/10000
//	zvE <= ProportionalEnd:    ProportionalRate*zvE - ProportionalOffset
//	otherwise:                 TopRate*zvE - TopOffset
type TaxTable struct {
	Year int

	BasicAllowance  decimal.Decimal
	ZoneOneEnd      decimal.Decimal
	ZoneTwoEnd      decimal.Decimal
	ProportionalEnd decimal.Decimal

	ZoneOneFactor decimal.Decimal
	ZoneOneEntry  decimal.Decimal
	ZoneTwoFactor decimal.Decimal
	ZoneTwoEntry  decimal.Decimal
	ZoneTwoBase   decimal.Decimal

	ProportionalRate   decimal.Decimal
	ProportionalOffset decimal.Decimal
	TopRate            decimal.Decimal
	TopOffset          decimal.Decimal
}

// Tariff2026 is the basic tariff for assessment year 2026
var Tariff2026 = TaxTable{
	Year:               2026,
	BasicAllowance:     decimal.NewFromInt(12348),
	ZoneOneEnd:         decimal.NewFromInt(17799),
	ZoneTwoEnd:         decimal.NewFromInt(69878),
	ProportionalEnd:    decimal.NewFromInt(277825),
	ZoneOneFactor:      decimal.RequireFromString("914.51"),
	ZoneOneEntry:       decimal.NewFromInt(1400),
	ZoneTwoFactor:      decimal.RequireFromString("173.10"),
	ZoneTwoEntry:       decimal.NewFromInt(2397),
	ZoneTwoBase:        decimal.RequireFromString("1034.87"),
	ProportionalRate:   decimal.RequireFromString("0.42"),
	ProportionalOffset: decimal.RequireFromString("11135.63"),
	TopRate:            decimal.RequireFromString("0.45"),
	TopOffset:          decimal.RequireFromString("19470.38"),
}

// Tariff2025 is the basic tariff for assessment year 2025
var Tariff2025 = TaxTable{
	Year:               2025,
	BasicAllowance:     decimal.NewFromInt(12096),
	ZoneOneEnd:         decimal.NewFromInt(17443),
	ZoneTwoEnd:         decimal.NewFromInt(68480),
	ProportionalEnd:    decimal.NewFromInt(277825),
	ZoneOneFactor:      decimal.RequireFromString("932.30"),
	ZoneOneEntry:       decimal.NewFromInt(1400),
	ZoneTwoFactor:      decimal.RequireFromString("176.64"),
	ZoneTwoEntry:       decimal.NewFromInt(2397),
	ZoneTwoBase:        decimal.RequireFromString("1015.13"),
	ProportionalRate:   decimal.RequireFromString("0.42"),
	ProportionalOffset: decimal.RequireFromString("10911.92"),
	TopRate:            decimal.RequireFromString("0.45"),
	TopOffset:          decimal.RequireFromString("19246.67"),
}

var taxTables = map[int]TaxTable{
	Tariff2025.Year: Tariff2025,
	Tariff2026.Year: Tariff2026,
}

// TaxTableForYear returns the registered tariff for a law year
func TaxTableForYear(year int) (TaxTable, error) {
	t, ok := taxTables[year]
	if !ok {
		return TaxTable{}, fmt.Errorf("%w: %d (available: %v)", ErrUnknownTaxTable, year, AvailableTaxYears())
	}
	return t, nil
}

// AvailableTaxYears lists the registered tariff years in ascending order
func AvailableTaxYears() []int {
	years := make([]int, 0, len(taxTables))
	for y := range taxTables {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}

var (
	tenThousand = decimal.NewFromInt(10000)
	hundred     = decimal.NewFromInt(100)
	two         = decimal.NewFromInt(2)
)

// IncomeTax returns the basic-tariff tax for a taxable income
func (t TaxTable) IncomeTax(income decimal.Decimal) decimal.Decimal {
	x := income.Floor()
	switch {
	case x.LessThanOrEqual(t.BasicAllowance):
		return decimal.Zero
	case x.LessThanOrEqual(t.ZoneOneEnd):
		y := x.Sub(t.BasicAllowance).Div(tenThousand)
		return t.ZoneOneFactor.Mul(y).Add(t.ZoneOneEntry).Mul(y)
	case x.LessThanOrEqual(t.ZoneTwoEnd):
		z := x.Sub(t.ZoneOneEnd).Div(tenThousand)
		return t.ZoneTwoFactor.Mul(z).Add(t.ZoneTwoEntry).Mul(z).Add(t.ZoneTwoBase)
	case x.LessThanOrEqual(t.ProportionalEnd):
		return t.ProportionalRate.Mul(x).Sub(t.ProportionalOffset)
	default:
		return t.TopRate.Mul(x).Sub(t.TopOffset)
	}
}

// MarginalRate returns the basic-tariff marginal rate in percent
func (t TaxTable) MarginalRate(income decimal.Decimal) decimal.Decimal {
	x := income.Floor()
	switch {
	case x.LessThanOrEqual(t.BasicAllowance):
		return decimal.Zero
	case x.LessThanOrEqual(t.ZoneOneEnd):
		y := x.Sub(t.BasicAllowance).Div(tenThousand)
		return two.Mul(t.ZoneOneFactor).Mul(y).Add(t.ZoneOneEntry).Div(tenThousand).Mul(hundred)
	case x.LessThanOrEqual(t.ZoneTwoEnd):
		z := x.Sub(t.ZoneOneEnd).Div(tenThousand)
		return two.Mul(t.ZoneTwoFactor).Mul(z).Add(t.ZoneTwoEntry).Div(tenThousand).Mul(hundred)
	case x.LessThanOrEqual(t.ProportionalEnd):
		return t.ProportionalRate.Mul(hundred)
	default:
		return t.TopRate.Mul(hundred)
	}
}

// TaxCalculator evaluates income tax with one tariff
type TaxCalculator struct {
	Table TaxTable
	// ShiftRate is the assumed yearly shift of the bracket limits, used by EvaluateForYear
	ShiftRate decimal.Decimal
}

// NewTaxCalculator creates a calculator for the default (2026) tariff
func NewTaxCalculator() *TaxCalculator {
	return NewTaxCalculatorForTable(Tariff2026)
}

// NewTaxCalculatorForTable creates a calculator for the given tariff
func NewTaxCalculatorForTable(table TaxTable) *TaxCalculator {
	return &TaxCalculator{Table: table, ShiftRate: decimal.Zero}
}

// NewTaxCalculatorForYear creates a calculator for a registered tariff year
func NewTaxCalculatorForYear(year int) (*TaxCalculator, error) {
	table, err := TaxTableForYear(year)
	if err != nil {
		return nil, err
	}
	return NewTaxCalculatorForTable(table), nil
}

// WithShiftRate returns a copy of the calculator using the given bracket shift
func (tc *TaxCalculator) WithShiftRate(rate decimal.Decimal) *TaxCalculator {
	return &TaxCalculator{Table: tc.Table, ShiftRate: rate}
}

// EvaluateSingle taxes an income with the basic tariff
func (tc *TaxCalculator) EvaluateSingle(income decimal.Decimal) domain.TaxResult {
	x := income.Floor()
	tax := tc.Table.IncomeTax(x)
	return domain.TaxResult{
		Income:       income,
		Tax:          tax,
		AverageRate:  averageRate(tax, x),
		MarginalRate: tc.Table.MarginalRate(x),
	}
}

// EvaluateJoint taxes the combined income of two partners with the splitting tariff
func (tc *TaxCalculator) EvaluateJoint(primary, partner decimal.Decimal) domain.TaxResult {
	total := decimal.Max(primary.Add(partner), decimal.Zero)
	if !total.IsPositive() {
		return domain.TaxResult{Income: total, Tax: decimal.Zero, AverageRate: decimal.Zero, MarginalRate: decimal.Zero}
	}
	half := total.Div(two)
	tax := two.Mul(tc.Table.IncomeTax(half))
	return domain.TaxResult{
		Income:       total,
		Tax:          tax,
		AverageRate:  averageRate(tax, total),
		MarginalRate: tc.Table.MarginalRate(half),
	}
}

// Evaluate taxes an income for the given filing status. For married filing
// the income is the joint income of both partners.
func (tc *TaxCalculator) Evaluate(income decimal.Decimal, status domain.FilingStatus) domain.TaxResult {
	if status == domain.FilingMarried {
		return tc.EvaluateJoint(income, decimal.Zero)
	}
	return tc.EvaluateSingle(income)
}

// EvaluateForYear projects the tariff to a later year. Nominal income is
// deflated to tariff-year terms with (1+ShiftRate)^(year-tariffYear), taxed,
// and the tax is inflated back. The average rate refers to the nominal
// income; the marginal rate is reported at the deflated income.
func (tc *TaxCalculator) EvaluateForYear(income decimal.Decimal, status domain.FilingStatus, year int) (domain.TaxResult, error) {
	if year < tc.Table.Year {
		return domain.TaxResult{}, fmt.Errorf("%w: %d precedes tariff year %d", ErrUnsupportedTaxYear, year, tc.Table.Year)
	}
	factor := decimal.NewFromInt(1).Add(tc.ShiftRate).Pow(decimal.NewFromInt(int64(year - tc.Table.Year)))
	deflated := tc.Evaluate(income.Div(factor), status)
	tax := deflated.Tax.Mul(factor)

	base := income.Floor()
	if status == domain.FilingMarried {
		base = decimal.Max(income, decimal.Zero)
	}
	return domain.TaxResult{
		Income:       income,
		Tax:          tax,
		AverageRate:  averageRate(tax, base),
		MarginalRate: deflated.MarginalRate,
	}, nil
}

// MarginalDelta is the additional tax caused by adding delta to a base
// income. A negative delta (a loss) yields a negative result.
func (tc *TaxCalculator) MarginalDelta(base, delta decimal.Decimal, status domain.FilingStatus) decimal.Decimal {
	with := tc.Evaluate(base.Add(delta), status).Tax
	without := tc.Evaluate(base, status).Tax
	return with.Sub(without)
}

// MarginalDeltaForYear is MarginalDelta with the year-indexed tariff
func (tc *TaxCalculator) MarginalDeltaForYear(base, delta decimal.Decimal, status domain.FilingStatus, year int) (decimal.Decimal, error) {
	with, err := tc.EvaluateForYear(base.Add(delta), status, year)
	if err != nil {
		return decimal.Zero, err
	}
	without, err := tc.EvaluateForYear(base, status, year)
	if err != nil {
		return decimal.Zero, err
	}
	return with.Tax.Sub(without.Tax), nil
}

// Curve samples the tariff for charting: every step from 0 up to
// max(maxIncome, MinCurveUpperBound), plus the exact upper bound when it is
// not on the step grid. Points are rounded to cents. When the range would
// exceed MaxCurvePoints steps, the step is widened to a whole amount that fits.
func (tc *TaxCalculator) Curve(maxIncome decimal.Decimal, status domain.FilingStatus, step decimal.Decimal) []domain.TaxCurvePoint {
	if !step.IsPositive() {
		step = decimal.NewFromInt(DefaultCurveStep)
	}
	upper := decimal.Max(maxIncome, decimal.NewFromInt(MinCurveUpperBound))
	maxPoints := decimal.NewFromInt(MaxCurvePoints)
	if upper.Div(step).GreaterThan(maxPoints) {
		step = upper.Div(maxPoints).Ceil()
	}

	points := make([]domain.TaxCurvePoint, 0, upper.Div(step).IntPart()+2)
	for income := decimal.Zero; income.LessThanOrEqual(upper); income = income.Add(step) {
		points = append(points, curvePoint(tc.Evaluate(income, status)))
	}
	if !upper.Mod(step).IsZero() {
		points = append(points, curvePoint(tc.Evaluate(upper, status)))
	}
	return points
}

func curvePoint(r domain.TaxResult) domain.TaxCurvePoint {
	return domain.TaxCurvePoint{
		Income:       r.Income.Round(2),
		Tax:          r.Tax.Round(2),
		AverageRate:  r.AverageRate.Round(2),
		MarginalRate: r.MarginalRate.Round(2),
	}
}

func averageRate(tax, income decimal.Decimal) decimal.Decimal {
	if !income.IsPositive() {
		return decimal.Zero
	}
	return tax.Div(income).Mul(hundred)
}
