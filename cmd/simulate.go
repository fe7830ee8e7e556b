package cmd

import (
	"fmt"

	"github.com/immocalc/property-calculator/internal/calculation"
	"github.com/immocalc/property-calculator/internal/config"
	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/immocalc/property-calculator/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var flagStdout bool

var simulateCmd = &cobra.Command{
	Use:   "simulate <config.yaml>",
	Short: "Run every scenario of a configuration and write a report",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimulate,
}

func init() {
	simulateCmd.Flags().BoolVar(&flagStdout, "stdout", false, "Print the report instead of writing a file")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	cfg, err := config.NewInputParser().LoadFromFile(args[0])
	if err != nil {
		return err
	}
	applyTaxDefaults(&cfg.GlobalAssumptions.Tax, settings.Tax.TaxParams())

	tableYear := cfg.GlobalAssumptions.TaxTableYear
	if tableYear == 0 {
		tableYear = settings.Tax.TableYear
	}
	engine, err := calculation.NewCalculationEngineWithConfig(tableYear, decimal.NewFromFloat(settings.Tax.ShiftRate))
	if err != nil {
		return err
	}
	engine.Debug = flagVerbose
	engine.SetLogger(calculation.NewSlogLogger(logger))

	results, err := engine.RunScenarios(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	format := output.NormalizeFormatName(reportFormat())
	f := output.GetFormatterByName(format)
	if f != nil && (flagStdout || format == "console" || format == "console-lite") {
		data, err := f.Format(results)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	files, err := output.GenerateReportTo(results, format, outputDir())
	if err != nil {
		return err
	}
	for _, name := range files {
		fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", name)
	}
	return nil
}

// applyTaxDefaults fills the unset policy, filing status and bracket
// indexing from the settings
func applyTaxDefaults(tax *domain.TaxParams, defaults domain.TaxParams) {
	if tax.Policy == "" {
		tax.Policy = defaults.Policy
	}
	if tax.FilingStatus == "" {
		tax.FilingStatus = defaults.FilingStatus
	}
	if !tax.IndexBrackets && tax.ShiftRate.IsZero() {
		tax.IndexBrackets = defaults.IndexBrackets
		tax.ShiftRate = defaults.ShiftRate
	}
}
