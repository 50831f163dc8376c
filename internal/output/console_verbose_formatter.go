package output

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/rpgo/swp-projector/internal/domain"
)

// ConsoleVerboseFormatter renders the full console report: assumptions,
// parameters, a yearly table per scenario and the final summary.
type ConsoleVerboseFormatter struct{}

func (c ConsoleVerboseFormatter) Name() string { return "console" }

func (c ConsoleVerboseFormatter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	var buf bytes.Buffer
	cur := results.Currency.OrDefault()

	fmt.Fprintln(&buf, "SYSTEMATIC INVESTMENT & WITHDRAWAL PROJECTION")
	fmt.Fprintln(&buf, strings.Repeat("=", 60))
	if !results.GeneratedAt.IsZero() {
		fmt.Fprintf(&buf, "Generated: %s\n", results.GeneratedAt.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(&buf, "Currency:  %s (%s)\n", cur.Code, cur.Symbol)
	fmt.Fprintln(&buf)
	fmt.Fprintln(&buf, "KEY ASSUMPTIONS:")
	for _, a := range assumptionsFor(results) {
		fmt.Fprintf(&buf, "• %s\n", a)
	}
	fmt.Fprintln(&buf)

	for i, sc := range results.Scenarios {
		fmt.Fprintln(&buf, RenderTitle(fmt.Sprintf("SCENARIO %d: %s", i+1, sc.Name)))
		fmt.Fprintln(&buf)
		buf.WriteString(RenderTable(parameterTable(sc.Parameters, cur)))
		fmt.Fprintln(&buf)
		buf.WriteString(RenderTable(yearlyTable(sc, cur)))
		fmt.Fprintln(&buf)
		writeFinalSummary(&buf, sc, cur)
		fmt.Fprintln(&buf)
	}

	if len(results.Scenarios) >= 2 {
		fmt.Fprintln(&buf, "COMPARISON")
		fmt.Fprintln(&buf, strings.Repeat("-", 40))
		if results.Crossover != nil {
			x := results.Crossover
			fmt.Fprintln(&buf, crossoverLine(x))
			fmt.Fprintf(&buf, "  %s: %s   %s: %s\n", x.ScenarioA, FormatCurrency(x.ValueA, cur), x.ScenarioB, FormatCurrency(x.ValueB, cur))
		} else {
			fmt.Fprintf(&buf, "No crossover between %s and %s within the horizon\n", results.Scenarios[0].Name, results.Scenarios[1].Name)
		}
		if rec := AnalyzeScenarios(results); rec.ScenarioName != "" {
			fmt.Fprintf(&buf, "Recommended: %s, delivering %s in today's terms (%s / %s ahead of the next best)\n",
				rec.ScenarioName, FormatCurrency(rec.Wealth, cur), FormatCurrency(rec.Advantage, cur), FormatPercentage(rec.PercentageChange))
		}
	}

	return buf.Bytes(), nil
}

func parameterTable(p domain.SimulationParameters, cur domain.Currency) Table {
	swp := fmt.Sprintf("%s from year %d", FormatCurrency(p.MonthlyWithdrawal, cur), p.WithdrawalStartYear)
	if p.WithdrawalNeverStarts() {
		swp = "none within horizon"
	}
	return Table{
		Title:   "Parameters",
		Headers: []string{"Parameter", "Value"},
		Rows: [][]string{
			{"Initial investment", FormatCurrency(p.InitialInvestment, cur)},
			{"Monthly investment", FormatCurrency(p.MonthlyInvestment, cur)},
			{"Yearly increase", FormatRate(p.YearlyIncreaseRate)},
			{"Expected return", FormatRate(p.ExpectedAnnualReturn)},
			{"Inflation", FormatRate(p.AnnualInflationRate)},
			{"Horizon", fmt.Sprintf("%d years", p.HorizonYears)},
			{"Monthly SWP", swp},
		},
	}
}

func yearlyTable(sc domain.ScenarioResult, cur domain.Currency) Table {
	t := Table{
		Title: "Yearly Summary",
		Headers: []string{
			"Year",
			fmt.Sprintf("Total Invested (%s)", cur.Code),
			fmt.Sprintf("Portfolio Value (%s)", cur.Code),
			fmt.Sprintf("Inflation-Adjusted (%s)", cur.Code),
			fmt.Sprintf("Withdrawals (%s)", cur.Code),
		},
	}
	for _, y := range sc.Years {
		t.Rows = append(t.Rows, []string{
			intToString(y.Year),
			FormatAmount(y.CumulativeInvested),
			FormatAmount(y.PortfolioValue),
			FormatAmount(y.InflationAdjustedValue),
			FormatAmount(y.Withdrawals),
		})
	}
	return t
}

func writeFinalSummary(buf *bytes.Buffer, sc domain.ScenarioResult, cur domain.Currency) {
	s := sc.Summary
	fmt.Fprintf(buf, "Final Results After %d Years\n", s.Years)
	fmt.Fprintf(buf, "  Total Invested:     %s\n", FormatCurrency(s.TotalInvested, cur))
	fmt.Fprintf(buf, "  Final Value:        %s\n", FormatCurrency(s.FinalValue, cur))
	fmt.Fprintf(buf, "  Inflation-Adjusted: %s\n", FormatCurrency(s.InflationAdjustedValue, cur))
	fmt.Fprintf(buf, "  Total Withdrawn:    %s\n", FormatCurrency(s.TotalWithdrawn, cur))
	if sc.InitialWithdrawalRate.IsPositive() {
		fmt.Fprintf(buf, "  Initial SWP rate:   %s of the starting balance per year\n", FormatPercentage(sc.InitialWithdrawalRate))
	}
	if s.WasDepleted() {
		fmt.Fprintf(buf, "  Portfolio depleted in month %d\n", s.DepletedMonth)
	}
}
