package cmd

import (
	"fmt"
	"strconv"

	"github.com/immocalc/property-calculator/internal/config"
	"github.com/immocalc/property-calculator/internal/output"
	"github.com/spf13/cobra"
)

var flagInit bool

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Show the effective settings",
	Args:  cobra.NoArgs,
	RunE:  runSettings,
}

func init() {
	settingsCmd.Flags().BoolVar(&flagInit, "init", false, "Write the effective settings to the settings file")
	rootCmd.AddCommand(settingsCmd)
}

func runSettings(cmd *cobra.Command, _ []string) error {
	path := flagSettings
	if path == "" {
		path = config.SettingsPath()
	}

	out := cmd.OutOrStdout()
	if flagInit {
		if err := config.SaveSettings(path, settings); err != nil {
			return err
		}
		fmt.Fprintf(out, "Settings written to %s\n", path)
		return nil
	}

	fmt.Fprint(out, output.RenderTable(output.Table{
		Title:   "Settings (" + path + ")",
		Headers: []string{"Key", "Value"},
		Rows: [][]string{
			{"general.default_format", settings.General.DefaultFormat},
			{"general.output_dir", settings.General.OutputDir},
			{"general.verbose", strconv.FormatBool(settings.General.Verbose)},
			{"---"},
			{"tax.table_year", strconv.Itoa(settings.Tax.TableYear)},
			{"tax.filing_status", settings.Tax.FilingStatus},
			{"tax.policy", settings.Tax.Policy},
			{"tax.shift_rate", strconv.FormatFloat(settings.Tax.ShiftRate, 'f', -1, 64)},
			{"---"},
			{"server.addr", config.ServerAddr(settings)},
			{"server.rate_limit", strconv.Itoa(settings.Server.RateLimit)},
			{"server.rate_window", settings.Server.RateWindow.String()},
		},
	}))
	return nil
}
