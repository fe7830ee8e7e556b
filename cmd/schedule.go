package cmd

import (
	"fmt"

	"github.com/immocalc/property-calculator/internal/calculation"
	"github.com/immocalc/property-calculator/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var (
	flagPrincipal float64
	flagInterest  float64
	flagTilgung   float64
	flagMaxYears  int
)

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Print the amortization schedule of an annuity loan",
	Args:  cobra.NoArgs,
	RunE:  runSchedule,
}

func init() {
	scheduleCmd.Flags().Float64Var(&flagPrincipal, "principal", 0, "Loan amount")
	scheduleCmd.Flags().Float64Var(&flagInterest, "interest", calculation.DefaultInterestRate.InexactFloat64(), "Yearly interest rate")
	scheduleCmd.Flags().Float64Var(&flagTilgung, "tilgung", calculation.DefaultTilgungRate.InexactFloat64(), "Initial yearly repayment rate")
	scheduleCmd.Flags().IntVar(&flagMaxYears, "years", calculation.MaxAmortizationYears, "Stop the schedule after this many years")
	_ = scheduleCmd.MarkFlagRequired("principal")
	rootCmd.AddCommand(scheduleCmd)
}

func runSchedule(cmd *cobra.Command, _ []string) error {
	schedule, err := calculation.MortgageSchedule(
		decimal.NewFromFloat(flagPrincipal),
		decimal.NewFromFloat(flagInterest),
		decimal.NewFromFloat(flagTilgung),
		flagMaxYears,
	)
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(schedule.Entries)+2)
	for _, e := range schedule.Entries {
		rows = append(rows, []string{
			fmt.Sprintf("%d", e.Year),
			output.FormatCurrency(e.Interest),
			output.FormatCurrency(e.Principal),
			output.FormatCurrency(e.Payment),
			output.FormatCurrency(e.Balance),
		})
	}
	rows = append(rows, []string{"---"}, []string{
		"Total",
		output.FormatCurrency(schedule.TotalInterest),
		"",
		output.FormatCurrency(schedule.TotalPaid),
		"",
	})

	out := cmd.OutOrStdout()
	fmt.Fprint(out, output.RenderTable(output.Table{
		Title:   fmt.Sprintf("Amortization schedule, annuity %s", output.FormatCurrency(schedule.Annuity)),
		Headers: []string{"Year", "Interest", "Principal", "Payment", "Balance"},
		Rows:    rows,
	}))
	if schedule.PaidOff {
		fmt.Fprintf(out, "Paid off after %d years.\n", schedule.Years())
	} else {
		fmt.Fprintf(out, "Not paid off within %d years.\n", schedule.Years())
	}
	return nil
}
