package output

import (
	"fmt"
	"os"
	"strings"

	"github.com/immocalc/property-calculator/internal/domain"
	"gopkg.in/yaml.v3"
)

// GenerateReport writes the requested format to a timestamped file in the
// working directory.
func GenerateReport(results *domain.ScenarioComparison, format string) error {
	_, err := GenerateReportTo(results, format, ".")
	return err
}

// GenerateReportTo writes the requested format into dir and returns the
// written file names. The pseudo format "all" writes the verbose console,
// detailed CSV and HTML reports.
func GenerateReportTo(results *domain.ScenarioComparison, format, dir string) ([]string, error) {
	if f := GetFormatterByName(format); f != nil {
		name, err := WriteFormatted(f, results, dir, extensionFor(f.Name()))
		if err != nil {
			return nil, err
		}
		return []string{name}, nil
	}
	switch NormalizeFormatName(format) {
	case "all":
		var written []string
		for _, f := range []Formatter{ConsoleVerboseFormatter{}, CSVDetailedExporter{}, HTMLFormatter{}} {
			name, err := WriteFormatted(f, results, dir, extensionFor(f.Name()))
			if err != nil {
				return written, err
			}
			written = append(written, name)
		}
		return written, nil
	default:
		// enrich error with available formatters and aliases
		return nil, fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format, strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
}

// SaveConfiguration writes a scenario configuration as YAML.
func SaveConfiguration(config *domain.Configuration, filename string) error {
	b, err := yaml.Marshal(config)
	if err != nil {
		return err
	}
	return os.WriteFile(filename, b, 0o644)
}
