package cmd

import (
	"fmt"
	"os"

	"github.com/immocalc/property-calculator/internal/config"
	"github.com/immocalc/property-calculator/internal/output"
	"github.com/spf13/cobra"
)

var flagForce bool

var exampleCmd = &cobra.Command{
	Use:   "example [file]",
	Short: "Write an example scenario configuration",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := "example_config.yaml"
		if len(args) == 1 {
			path = args[0]
		}
		if _, err := os.Stat(path); err == nil && !flagForce {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
		if err := output.SaveConfiguration(config.NewInputParser().CreateExampleConfiguration(), path); err != nil {
			return fmt.Errorf("writing example: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Example configuration written to %s\n", path)
		return nil
	},
}

func init() {
	exampleCmd.Flags().BoolVar(&flagForce, "force", false, "Overwrite an existing file")
	rootCmd.AddCommand(exampleCmd)
}
