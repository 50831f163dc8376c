package output

import (
	"bytes"
	"fmt"

	"github.com/rpgo/swp-projector/internal/domain"
)

// ConsoleFormatter provides a one-line-per-scenario summary.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console-lite" }

func (c ConsoleFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	cur := results.Currency.OrDefault()
	fmt.Fprintln(&buf, "SWP PROJECTION SUMMARY")
	fmt.Fprintln(&buf, "================================")
	for _, sc := range results.Scenarios {
		s := sc.Summary
		fmt.Fprintf(&buf, "%s: Years=%d Invested=%s Final=%s Real=%s Withdrawn=%s\n",
			sc.Name,
			s.Years,
			FormatCurrency(s.TotalInvested, cur),
			FormatCurrency(s.FinalValue, cur),
			FormatCurrency(s.InflationAdjustedValue, cur),
			FormatCurrency(s.TotalWithdrawn, cur),
		)
		if s.WasDepleted() {
			fmt.Fprintf(&buf, "  Depleted in month %d\n", s.DepletedMonth)
		}
	}
	if results.Crossover != nil {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, crossoverLine(results.Crossover))
	}
	if rec := AnalyzeScenarios(results); rec.ScenarioName != "" {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Recommended: %s (Δ %s / %s)\n", rec.ScenarioName, FormatCurrency(rec.Advantage, cur), FormatPercentage(rec.PercentageChange))
	}
	return buf.Bytes(), nil
}

func crossoverLine(x *domain.CrossoverResult) string {
	trailer := x.ScenarioA
	if x.Leader == x.ScenarioA {
		trailer = x.ScenarioB
	}
	return fmt.Sprintf("Crossover: %s overtakes %s in month %d (year %d)", x.Leader, trailer, x.Month, x.Year)
}
