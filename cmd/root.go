// Package cmd implements the immocalc CLI commands.
package cmd

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/immocalc/property-calculator/internal/config"
	"github.com/immocalc/property-calculator/internal/output"
	"github.com/spf13/cobra"
)

var (
	flagSettings  string
	flagVerbose   bool
	flagFormat    string
	flagOutputDir string
)

// settings and logger are resolved before every command runs
var (
	settings config.Settings
	logger   = slog.New(slog.NewTextHandler(io.Discard, nil))
)

var rootCmd = &cobra.Command{
	Use:   "immocalc",
	Short: "Buy-to-let property calculator",
	Long: "Simulate rental property investments year by year, evaluate German income tax,\n" +
		"amortize mortgages and compare a purchase against a capital-market alternative.",
	SilenceUsage:      true,
	PersistentPreRunE: loadSettings,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSettings, "settings", "", "Settings file (default "+config.SettingsPath()+")")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log calculation details to stderr")
	rootCmd.PersistentFlags().StringVarP(&flagFormat, "format", "f", "", "Report format: "+strings.Join(output.AvailableFormatterNames(), ", ")+" or all")
	rootCmd.PersistentFlags().StringVarP(&flagOutputDir, "output-dir", "o", "", "Directory for written reports")
}

func loadSettings(cmd *cobra.Command, _ []string) error {
	s, err := config.LoadSettings(flagSettings)
	if err != nil {
		return err
	}
	settings = s

	level := slog.LevelWarn
	if flagVerbose || settings.General.Verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	return nil
}

// reportFormat prefers the --format flag over the settings default
func reportFormat() string {
	if flagFormat != "" {
		return flagFormat
	}
	return settings.General.DefaultFormat
}

func outputDir() string {
	if flagOutputDir != "" {
		return flagOutputDir
	}
	return settings.General.OutputDir
}
