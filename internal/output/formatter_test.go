package output

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/immocalc/property-calculator/internal/domain"
)

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestComparison())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, "Recommended: B (vs. market 20.000,00 € / 12.50%)") {
		t.Fatalf("expected recommendation for B, got: %s", content)
	}
	if strings.Index(content, "A: Equity=") > strings.Index(content, "B: Equity=") {
		t.Fatalf("scenarios not sorted by name: %s", content)
	}
	if !strings.Contains(content, "BreakEven=03/2031") || !strings.Contains(content, "BreakEven=none") {
		t.Fatalf("expected break-even columns, got: %s", content)
	}
}

func TestConsoleVerboseFormatter(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestComparison())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	content := string(out)
	for _, want := range []string{
		"BUY-TO-LET PROPERTY ANALYSIS",
		"KEY ASSUMPTIONS:",
		DefaultAssumptions[0],
		"SCENARIO COMPARISON",
		"SCENARIO 1: B",
		"SCENARIO 2: A",
		"416.160,00 €",
		"Highest final wealth: B with 180.000,00 €",
		"Break-even against the alternative: 03/2031 (62 months after purchase)",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in verbose output:\n%s", want, content)
		}
	}
}

func TestConsoleVerboseFormatter_WithoutAlternative(t *testing.T) {
	cmp := buildTestComparison()
	cmp.Alternative = nil
	for i := range cmp.Scenarios {
		cmp.Scenarios[i].AlternativeWealth = nil
	}
	out, err := ConsoleVerboseFormatter{}.Format(cmp)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(string(out), "capital market") {
		t.Fatalf("did not expect a market comparison without alternative")
	}
}

func TestCSVSummarizerDeterministicOrder(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestComparison())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines (header+2 rows), got %d", len(lines))
	}
	if !strings.HasPrefix(lines[1], "A,") || !strings.HasPrefix(lines[2], "B,") {
		t.Fatalf("rows not sorted deterministically: %v", lines)
	}
	if !strings.HasSuffix(lines[2], ",180000.00,160000.00,03/2031") {
		t.Fatalf("unexpected summary row: %s", lines[2])
	}
}

func TestCSVDetailedExporter(t *testing.T) {
	out, err := CSVDetailedExporter{}.Format(buildTestComparison())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if len(lines) != 5 {
		t.Fatalf("expected header plus 4 yearly rows, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Scenario,Year,PropertyValueEnd") {
		t.Fatalf("unexpected header: %s", lines[0])
	}
	if !strings.HasPrefix(lines[1], "A,2026,408000.00,320000.00,88000.00") {
		t.Fatalf("unexpected first row: %s", lines[1])
	}
	if !strings.HasSuffix(lines[4], ",118460.00,160000.00") {
		t.Fatalf("unexpected wealth columns: %s", lines[4])
	}
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestComparison())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(out, &decoded); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if decoded["run_id"] != "run-1" {
		t.Fatalf("run_id = %v", decoded["run_id"])
	}
	scenarios, ok := decoded["scenarios"].([]interface{})
	if !ok || len(scenarios) != 2 {
		t.Fatalf("expected two scenarios, got %v", decoded["scenarios"])
	}
}

func TestHTMLFormatterBasic(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestComparison())
	if err != nil {
		t.Fatalf("html format error: %v", err)
	}
	content := string(out)
	for _, want := range []string{
		"<!DOCTYPE html>",
		"Scenario Summary",
		"Key Assumptions",
		DefaultAssumptions[2],
		"180.000,00 €",
		"World ETF",
		"03/2031",
		`class="neg"`,
		`"label":"B (alternative)"`,
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("expected %q in HTML output", want)
		}
	}
}

func TestHTMLUsesRunAssumptions(t *testing.T) {
	cmp := buildTestComparison()
	cmp.Assumptions = []string{"Projection horizon: 2 years starting 2026"}
	out, err := HTMLFormatter{}.Format(cmp)
	if err != nil {
		t.Fatalf("html format error: %v", err)
	}
	content := string(out)
	if !strings.Contains(content, "Projection horizon: 2 years starting 2026") {
		t.Fatalf("expected run assumptions in HTML")
	}
	if strings.Contains(content, DefaultAssumptions[0]) {
		t.Fatalf("default assumptions should not be rendered when the run carries its own")
	}
}

func TestFormatterAliasResolution(t *testing.T) {
	cases := map[string]string{
		"console-verbose": "console",
		" SUMMARY ":       "console-lite",
		"csv-detailed":    "detailed-csv",
		"html":            "html",
	}
	for alias, want := range cases {
		f := GetFormatterByName(alias)
		if f == nil {
			t.Fatalf("alias %q did not resolve to a formatter", alias)
		}
		if f.Name() != want {
			t.Fatalf("alias %q resolved to %q, want %q", alias, f.Name(), want)
		}
	}
	if GetFormatterByName("pdf") != nil {
		t.Fatalf("pdf should not resolve")
	}
}

func TestAvailableFormatterNames(t *testing.T) {
	got := strings.Join(AvailableFormatterNames(), ",")
	if got != "console,console-lite,csv,detailed-csv,html,json" {
		t.Fatalf("AvailableFormatterNames = %s", got)
	}
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc{ID: "names", F: func(r *domain.ScenarioComparison) ([]byte, error) {
		return []byte(r.Scenarios[0].Name), nil
	}}
	out, err := f.Format(buildTestComparison())
	if err != nil || string(out) != "B" || f.Name() != "names" {
		t.Fatalf("FormatterFunc = %q, %v", out, err)
	}
}

func TestGenerateReportTo(t *testing.T) {
	prev := reportTime
	reportTime = func() time.Time { return time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC) }
	t.Cleanup(func() { reportTime = prev })

	dir := t.TempDir()
	files, err := GenerateReportTo(buildTestComparison(), "csv-summary", dir)
	if err != nil {
		t.Fatalf("GenerateReportTo: %v", err)
	}
	want := filepath.Join(dir, "property_report_20260301_093000.csv")
	if len(files) != 1 || files[0] != want {
		t.Fatalf("files = %v, want %s", files, want)
	}
	if _, err := os.Stat(want); err != nil {
		t.Fatalf("report not written: %v", err)
	}

	all, err := GenerateReportTo(buildTestComparison(), "all", filepath.Join(dir, "all"))
	if err != nil {
		t.Fatalf("GenerateReportTo all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected three reports, got %v", all)
	}
	for i, ext := range []string{".txt", ".csv", ".html"} {
		if filepath.Ext(all[i]) != ext {
			t.Fatalf("report %d has extension %s, want %s", i, filepath.Ext(all[i]), ext)
		}
	}
}

func TestUnknownFormatErrorIncludesSuggestions(t *testing.T) {
	err := GenerateReport(&domain.ScenarioComparison{}, "definitely-not-a-format")
	if err == nil {
		t.Fatalf("expected error for unknown format")
	}
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if !strings.Contains(err.Error(), "Try one of:") {
		t.Fatalf("error message missing suggestions: %s", err)
	}
}

func TestSaveConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := &domain.Configuration{Scenarios: []domain.Scenario{{Name: "Flat"}}}
	if err := SaveConfiguration(cfg, path); err != nil {
		t.Fatalf("SaveConfiguration error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "name: Flat") {
		t.Fatalf("expected scenario name in YAML, got %s", data)
	}
}
