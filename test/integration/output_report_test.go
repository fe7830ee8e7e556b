package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/immocalc/property-calculator/internal/api"
	"github.com/immocalc/property-calculator/internal/calculation"
	"github.com/immocalc/property-calculator/internal/config"
	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/immocalc/property-calculator/internal/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runExample(t *testing.T) *domain.ScenarioComparison {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile(exampleConfig)
	require.NoError(t, err)
	results, err := calculation.NewCalculationEngine().RunScenarios(context.Background(), cfg)
	require.NoError(t, err)
	return results
}

func TestOutputGeneration(t *testing.T) {
	results := runExample(t)

	for _, format := range output.AvailableFormatterNames() {
		t.Run(format, func(t *testing.T) {
			dir := t.TempDir()
			files, err := output.GenerateReportTo(results, format, dir)
			require.NoError(t, err)
			require.Len(t, files, 1)

			fi, err := os.Stat(files[0])
			require.NoError(t, err)
			if fi.Size() == 0 {
				t.Fatalf("expected non-empty %s report", format)
			}
			assert.Equal(t, dir, filepath.Dir(files[0]))
		})
	}
}

func TestOutputGeneration_All(t *testing.T) {
	results := runExample(t)

	files, err := output.GenerateReportTo(results, "all", t.TempDir())
	require.NoError(t, err)
	assert.Len(t, files, 3)
}

func TestReportsNameEveryScenario(t *testing.T) {
	results := runExample(t)

	for _, name := range []string{"console", "console-lite", "csv", "html", "json"} {
		data, err := output.GetFormatterByName(name).Format(results)
		require.NoError(t, err)
		content := string(data)
		for _, s := range results.Scenarios {
			if !strings.Contains(content, s.Name) {
				t.Fatalf("%s report does not mention %q", name, s.Name)
			}
		}
	}
}

func TestSaveConfiguration_RoundTrip(t *testing.T) {
	parser := config.NewInputParser()
	out := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, output.SaveConfiguration(parser.CreateExampleConfiguration(), out))

	cfg, err := parser.LoadFromFile(out)
	require.NoError(t, err)
	assert.Len(t, cfg.Scenarios, 2)
}

func TestAPIMatchesTaxCalculator(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := api.NewServer(":0", api.Options{TaxCalculator: calculation.NewTaxCalculator()})
	defer srv.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/tax", strings.NewReader(`{"zve": 100000}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Tax float64 `json:"est"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.InDelta(t, 30864.37, body.Tax, 0.01)
}
