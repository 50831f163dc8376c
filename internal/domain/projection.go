package domain

import (
	"time"

	"github.com/shopspring/decimal"

	money "github.com/rpgo/swp-projector/pkg/decimal"
)

// MonthlySnapshot is the portfolio state at the end of one simulated month
type MonthlySnapshot struct {
	Year  int `json:"year"`
	Month int `json:"month"` // absolute, 1-indexed from the projection start

	PortfolioValue         money.Money `json:"portfolio_value"`
	CumulativeInvested     money.Money `json:"cumulative_invested"`
	WithdrawalThisMonth    money.Money `json:"withdrawal_this_month"`
	InflationAdjustedValue money.Money `json:"inflation_adjusted_value"`

	WithdrawalActive bool `json:"withdrawal_active"`
}

// IsDepleted reports whether a withdrawal emptied the portfolio this month
func (s MonthlySnapshot) IsDepleted() bool {
	return s.WithdrawalThisMonth.IsPositive() && s.PortfolioValue.IsZero()
}

// Projection is the ordered month-by-month output of one simulation run
type Projection []MonthlySnapshot

// Final returns the last snapshot, or the zero snapshot for an empty projection
func (p Projection) Final() MonthlySnapshot {
	if len(p) == 0 {
		return MonthlySnapshot{}
	}
	return p[len(p)-1]
}

// Year returns the snapshots of a single 1-indexed year
func (p Projection) Year(year int) Projection {
	var out Projection
	for _, s := range p {
		if s.Year == year {
			out = append(out, s)
		}
	}
	return out
}

// Years returns the number of distinct years covered
func (p Projection) Years() int {
	return p.Final().Year
}

// TotalWithdrawn sums every withdrawal in the projection
func (p Projection) TotalWithdrawn() money.Money {
	total := money.Zero()
	for _, s := range p {
		total = total.Add(s.WithdrawalThisMonth)
	}
	return total
}

// YearSummary aggregates one projection year for tabular reports
type YearSummary struct {
	Year                   int         `json:"year"`
	CumulativeInvested     money.Money `json:"cumulative_invested"`
	PortfolioValue         money.Money `json:"portfolio_value"`
	InflationAdjustedValue money.Money `json:"inflation_adjusted_value"`
	Withdrawals            money.Money `json:"withdrawals"`
}

// FinalSummary describes the end state of a projection
type FinalSummary struct {
	Years                  int         `json:"years"`
	TotalInvested          money.Money `json:"total_invested"`
	FinalValue             money.Money `json:"final_value"`
	InflationAdjustedValue money.Money `json:"inflation_adjusted_value"`
	TotalWithdrawn         money.Money `json:"total_withdrawn"`

	// DepletedMonth is the first absolute month a withdrawal emptied the
	// portfolio, or 0 if it never did.
	DepletedMonth int `json:"depleted_month,omitempty"`
}

// WasDepleted reports whether withdrawals ever emptied the portfolio
func (fs FinalSummary) WasDepleted() bool {
	return fs.DepletedMonth > 0
}

// Scenario is a named parameter set
type Scenario struct {
	Name       string               `json:"name"`
	Parameters SimulationParameters `json:"parameters"`
}

// ScenarioResult is the simulated projection of a scenario plus its aggregates
type ScenarioResult struct {
	Name       string               `json:"name"`
	Parameters SimulationParameters `json:"parameters"`
	Projection Projection           `json:"projection"`
	Years      []YearSummary        `json:"years"`
	Summary    FinalSummary         `json:"summary"`

	// InitialWithdrawalRate is the annual withdrawal as a percentage of the
	// balance when withdrawals start.
	InitialWithdrawalRate decimal.Decimal `json:"initial_withdrawal_rate"`
}

// CrossoverResult marks the first month where two projections swap order
type CrossoverResult struct {
	ScenarioA string `json:"scenario_a"`
	ScenarioB string `json:"scenario_b"`

	Month int `json:"month"` // absolute month of the crossover
	Year  int `json:"year"`

	// Leader is the scenario ahead after the crossover
	Leader string `json:"leader"`

	ValueA money.Money `json:"value_a"`
	ValueB money.Money `json:"value_b"`
}

// ScenarioComparison is the top-level result handed to formatters
type ScenarioComparison struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Currency    Currency         `json:"currency"`
	Scenarios   []ScenarioResult `json:"scenarios"`
	Crossover   *CrossoverResult `json:"crossover,omitempty"`
	Assumptions []string         `json:"assumptions"`
}

// Configuration is a validated set of scenarios loaded from a file or form
type Configuration struct {
	Currency  Currency   `json:"currency"`
	Scenarios []Scenario `json:"scenarios"`
}

// ScenarioByName finds a scenario by exact name
func (c *Configuration) ScenarioByName(name string) (Scenario, bool) {
	for _, sc := range c.Scenarios {
		if sc.Name == name {
			return sc, true
		}
	}
	return Scenario{}, false
}
