package cmd

import (
	"errors"
	"fmt"

	"github.com/immocalc/property-calculator/internal/calculation"
	"github.com/immocalc/property-calculator/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagBudget      float64
	flagAssets      float64
	flagAffInterest float64
	flagAffTilgung  float64
	flagCostRate    float64
	flagPricePerSqm float64
)

var affordCmd = &cobra.Command{
	Use:   "afford",
	Short: "Estimate the highest purchase price a monthly budget can finance",
	Args:  cobra.NoArgs,
	RunE:  runAfford,
}

func init() {
	affordCmd.Flags().Float64Var(&flagBudget, "budget", 0, "Monthly budget for the loan rate")
	affordCmd.Flags().Float64Var(&flagAssets, "assets", 0, "Available equity")
	affordCmd.Flags().Float64Var(&flagAffInterest, "interest", calculation.DefaultInterestRate.InexactFloat64(), "Yearly interest rate")
	affordCmd.Flags().Float64Var(&flagAffTilgung, "tilgung", calculation.DefaultTilgungRate.InexactFloat64(), "Initial yearly repayment rate")
	affordCmd.Flags().Float64Var(&flagCostRate, "cost-rate", calculation.DefaultAdditionalCostRate.InexactFloat64(), "Purchase side costs as a share of the price")
	affordCmd.Flags().Float64Var(&flagPricePerSqm, "price-per-sqm", 0, "Also report the affordable living space at this price")
	_ = affordCmd.MarkFlagRequired("budget")
	rootCmd.AddCommand(affordCmd)
}

func runAfford(cmd *cobra.Command, _ []string) error {
	interest := decimal.NewFromFloat(flagAffInterest)
	tilgung := decimal.NewFromFloat(flagAffTilgung)
	costRate := decimal.NewFromFloat(flagCostRate)

	price, err := calculation.MaxAffordablePrice(decimal.NewFromFloat(flagBudget), decimal.NewFromFloat(flagAssets), interest, tilgung, costRate)
	if err != nil {
		if errors.Is(err, calculation.ErrInvalidLoanConfiguration) {
			return fmt.Errorf("set --interest or --tilgung above zero: %w", err)
		}
		return err
	}

	quote, err := calculation.FinancingQuote(price, decimal.NewFromFloat(flagAssets), costRate, interest, tilgung)
	if err != nil {
		return err
	}

	rows := [][]string{
		{"Purchase price", output.FormatCurrency(price)},
		{"Additional costs", output.FormatCurrency(quote.AdditionalCosts)},
		{"Equity", output.FormatCurrency(quote.AvailableAssets)},
		{"Loan amount", output.FormatCurrency(quote.LoanAmount)},
		{"Monthly rate", output.FormatCurrency(quote.MonthlyRate)},
		{"Years to repay", fmt.Sprintf("%d", quote.Years)},
		{"Total interest", output.FormatCurrency(quote.TotalInterest)},
	}
	if flagPricePerSqm > 0 {
		size := price.Div(decimal.NewFromFloat(flagPricePerSqm))
		rows = append(rows, []string{"Living space", size.StringFixed(2) + " m²"})
	}

	fmt.Fprint(cmd.OutOrStdout(), output.RenderTable(output.Table{
		Title:   "Affordability",
		Headers: []string{"Item", "Value"},
		Rows:    rows,
	}))
	return nil
}
