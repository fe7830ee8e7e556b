package output

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"html/template"

	"github.com/immocalc/property-calculator/internal/domain"
	"github.com/shopspring/decimal"
)

// HTMLFormatter produces a standalone HTML report with a wealth chart.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":      FormatCurrency,
	"pct":       FormatPercentage,
	"rate":      FormatRate,
	"breakeven": FormatBreakEven,
	"add":       func(i, j int) int { return i + j },
	"negative":  func(d decimal.Decimal) bool { return d.IsNegative() },
	"json": func(v interface{}) template.JS {
		b, _ := json.Marshal(v)
		return template.JS(b)
	},
}).Parse(htmlTemplateSource))

// chartSeries is one line of the wealth chart
type chartSeries struct {
	Label  string    `json:"label"`
	Values []float64 `json:"data"`
}

type chartData struct {
	Labels []int         `json:"labels"`
	Series []chartSeries `json:"datasets"`
}

func buildChartData(results *domain.ScenarioComparison) chartData {
	var cd chartData
	for i, sc := range results.Scenarios {
		if i == 0 {
			for _, r := range sc.Records {
				cd.Labels = append(cd.Labels, r.Year)
			}
		}
		cd.Series = append(cd.Series, chartSeries{Label: sc.Name, Values: floats(sc.PropertyWealth)})
		if len(sc.AlternativeWealth) > 0 {
			cd.Series = append(cd.Series, chartSeries{Label: sc.Name + " (alternative)", Values: floats(sc.AlternativeWealth)})
		}
	}
	return cd
}

func floats(series []decimal.Decimal) []float64 {
	out := make([]float64, len(series))
	for i, d := range series {
		out[i] = d.Round(2).InexactFloat64()
	}
	return out
}

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	data := struct {
		*domain.ScenarioComparison
		Recommendation Recommendation
		Assumptions    []string
		Chart          chartData
	}{results, AnalyzeScenarios(results), assumptionsFor(results), buildChartData(results)}
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
