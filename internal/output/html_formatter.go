package output

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/rpgo/swp-projector/internal/chart"
	"github.com/rpgo/swp-projector/internal/domain"
)

// HTMLFormatter produces a standalone HTML report with one Chart.js growth
// chart per scenario.
type HTMLFormatter struct{}

func (h HTMLFormatter) Name() string { return "html" }

//go:embed templates/report.html.tmpl
var htmlTemplateSource string

var htmlTemplate = template.Must(template.New("report").Funcs(template.FuncMap{
	"curr":   FormatCurrency,
	"amount": FormatAmount,
	"pct":    FormatPercentage,
	"rate":   FormatRate,
	"add":    func(i, j int) int { return i + j },
	"crossoverLine": func(x *domain.CrossoverResult) string {
		return crossoverLine(x)
	},
}).Parse(htmlTemplateSource))

type htmlScenario struct {
	domain.ScenarioResult
	ChartID string
	Chart   template.JS
}

func (h HTMLFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	cur := results.Currency.OrDefault()
	canvas := chart.NewHTMLCanvas()

	scenarios := make([]htmlScenario, 0, len(results.Scenarios))
	for i, sc := range results.Scenarios {
		surface, err := canvas.Acquire(chart.BuildSeries(sc.Projection, cur))
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", sc.Name, err)
		}
		hs, ok := surface.(*chart.HTMLSurface)
		if !ok {
			_ = surface.Release()
			return nil, fmt.Errorf("scenario %q: unexpected chart surface %T", sc.Name, surface)
		}
		scenarios = append(scenarios, htmlScenario{
			ScenarioResult: sc,
			ChartID:        fmt.Sprintf("growthChart%d", i+1),
			Chart:          hs.Script(),
		})
		if err := hs.Release(); err != nil {
			return nil, err
		}
	}

	rec := AnalyzeScenarios(results)
	data := struct {
		*domain.ScenarioComparison
		Currency       domain.Currency
		Scenarios      []htmlScenario
		Assumptions    []string
		Recommendation Recommendation
		HasRec         bool
	}{results, cur, scenarios, assumptionsFor(results), rec, rec.ScenarioName != ""}

	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
