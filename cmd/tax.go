package cmd

import (
	"fmt"

	"github.com/immocalc/property-calculator/internal/calculation"
	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/immocalc/property-calculator/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagTaxPartner   float64
	flagTaxMarried   bool
	flagTaxYear      int
	flagTaxTableYear int
	flagTaxShift     float64
	flagTaxCurve     float64
	flagTaxStep      float64
)

var taxCmd = &cobra.Command{
	Use:   "tax <taxable-income>",
	Short: "Evaluate German income tax for a taxable income",
	Args:  cobra.ExactArgs(1),
	RunE:  runTax,
}

func init() {
	taxCmd.Flags().Float64Var(&flagTaxPartner, "partner", 0, "Partner's taxable income (joint assessment)")
	taxCmd.Flags().BoolVar(&flagTaxMarried, "married", false, "Use the splitting tariff")
	taxCmd.Flags().IntVar(&flagTaxYear, "year", 0, "Evaluate for a future calendar year with shifted brackets")
	taxCmd.Flags().IntVar(&flagTaxTableYear, "table-year", 0, "Tariff table year (default from settings)")
	taxCmd.Flags().Float64Var(&flagTaxShift, "shift", 0, "Yearly bracket shift rate used with --year")
	taxCmd.Flags().Float64Var(&flagTaxCurve, "curve", 0, "Also print the tax curve up to this income")
	taxCmd.Flags().Float64Var(&flagTaxStep, "step", calculation.DefaultCurveStep, "Income step of the tax curve")
	rootCmd.AddCommand(taxCmd)
}

func runTax(cmd *cobra.Command, args []string) error {
	income, err := decimal.NewFromString(args[0])
	if err != nil {
		return fmt.Errorf("invalid income %q: %w", args[0], err)
	}
	income = decimal.Max(income, decimal.Zero)
	partner := decimal.Max(decimal.NewFromFloat(flagTaxPartner), decimal.Zero)

	tableYear := flagTaxTableYear
	if tableYear == 0 {
		tableYear = settings.Tax.TableYear
	}
	calc, err := calculation.NewTaxCalculatorForYear(tableYear)
	if err != nil {
		return err
	}

	status := domain.FilingSingle
	if flagTaxMarried || (settings.Tax.FilingStatus == string(domain.FilingMarried) && !cmd.Flags().Changed("married")) {
		status = domain.FilingMarried
	}

	var result domain.TaxResult
	switch {
	case flagTaxYear != 0:
		shift := settings.Tax.ShiftRate
		if cmd.Flags().Changed("shift") {
			shift = flagTaxShift
		}
		total := income
		if status == domain.FilingMarried {
			total = income.Add(partner)
		}
		result, err = calc.WithShiftRate(decimal.NewFromFloat(shift)).EvaluateForYear(total, status, flagTaxYear)
		if err != nil {
			return err
		}
	case status == domain.FilingMarried:
		result = calc.EvaluateJoint(income, partner)
	default:
		result = calc.EvaluateSingle(income)
	}

	title := fmt.Sprintf("Income tax %d (%s)", tableYear, status)
	if flagTaxYear != 0 {
		title = fmt.Sprintf("Income tax %d (%s, brackets shifted from %d)", flagTaxYear, status, tableYear)
	}
	fmt.Fprint(cmd.OutOrStdout(), output.RenderTable(output.Table{
		Title:   title,
		Headers: []string{"Taxable income", "Income tax", "Average rate", "Marginal rate"},
		Rows: [][]string{{
			output.FormatCurrency(result.Income),
			output.FormatCurrency(result.Tax),
			output.FormatPercentage(result.AverageRate),
			output.FormatPercentage(result.MarginalRate),
		}},
	}))

	if flagTaxCurve <= 0 {
		return nil
	}
	step := decimal.NewFromFloat(flagTaxStep)
	if !step.IsPositive() {
		return fmt.Errorf("curve step must be positive")
	}
	curve := calc.Curve(decimal.NewFromFloat(flagTaxCurve), status, step)
	rows := make([][]string, 0, len(curve))
	for _, p := range curve {
		rows = append(rows, []string{
			output.FormatCurrency(p.Income),
			output.FormatCurrency(p.Tax),
			output.FormatPercentage(p.AverageRate),
			output.FormatPercentage(p.MarginalRate),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout())
	fmt.Fprint(cmd.OutOrStdout(), output.RenderTable(output.Table{
		Title:   "Tax curve",
		Headers: []string{"Income", "Tax", "Average", "Marginal"},
		Rows:    rows,
	}))
	return nil
}
