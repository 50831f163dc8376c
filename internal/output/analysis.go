package output

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/rpgo/swp-projector/internal/domain"
	money "github.com/rpgo/swp-projector/pkg/decimal"
)

var decimalHundred = decimal.NewFromInt(100)

// Recommendation encapsulates the selection result of the best scenario.
type Recommendation struct {
	ScenarioName string
	// Wealth is the inflation-adjusted final value plus everything withdrawn
	Wealth money.Money
	// Advantage is the lead over the runner-up
	Advantage        money.Money
	PercentageChange decimal.Decimal
}

// ScenarioWealth is the total a scenario delivers in today's terms: the
// inflation-adjusted final value plus the nominal sum withdrawn.
func ScenarioWealth(sc domain.ScenarioResult) money.Money {
	return sc.Summary.InflationAdjustedValue.Add(sc.Summary.TotalWithdrawn)
}

// AnalyzeScenarios ranks scenarios by ScenarioWealth. It returns the zero
// Recommendation when fewer than two scenarios are compared.
func AnalyzeScenarios(results *domain.ScenarioComparison) Recommendation {
	if len(results.Scenarios) < 2 {
		return Recommendation{}
	}
	type ranked struct {
		name   string
		wealth money.Money
	}
	ranks := make([]ranked, 0, len(results.Scenarios))
	for _, sc := range results.Scenarios {
		ranks = append(ranks, ranked{sc.Name, ScenarioWealth(sc)})
	}
	sort.SliceStable(ranks, func(i, j int) bool { return ranks[i].wealth.GreaterThan(ranks[j].wealth) })

	best, next := ranks[0], ranks[1]
	delta := best.wealth.Sub(next.wealth)
	pct := decimal.Zero
	if next.wealth.IsPositive() {
		pct = delta.Decimal.Div(next.wealth.Decimal).Mul(decimalHundred)
	}
	return Recommendation{ScenarioName: best.name, Wealth: best.wealth, Advantage: delta, PercentageChange: pct}
}
