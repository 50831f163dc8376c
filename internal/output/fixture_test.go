package output

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rpgo/swp-projector/internal/calculation"
	"github.com/rpgo/swp-projector/internal/domain"
	money "github.com/rpgo/swp-projector/pkg/decimal"
)

var fixedNow = time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)

// flatScenario saves 100/month on 1000 for a year, then nets 50/month after
// a 50 withdrawal in year two: final value 2800, invested 3400, withdrawn 600.
func flatScenario() domain.Scenario {
	return domain.Scenario{
		Name: "flat",
		Parameters: domain.SimulationParameters{
			InitialInvestment:    money.NewMoneyFromInt(1000),
			MonthlyInvestment:    money.NewMoneyFromInt(100),
			YearlyIncreaseRate:   decimal.Zero,
			ExpectedAnnualReturn: decimal.Zero,
			AnnualInflationRate:  decimal.Zero,
			HorizonYears:         2,
			WithdrawalStartYear:  2,
			MonthlyWithdrawal:    money.NewMoneyFromInt(50),
		},
	}
}

// lumpScenario holds 3000 untouched for two years.
func lumpScenario() domain.Scenario {
	return domain.Scenario{
		Name: "lump",
		Parameters: domain.SimulationParameters{
			InitialInvestment:    money.NewMoneyFromInt(3000),
			MonthlyInvestment:    money.Zero(),
			YearlyIncreaseRate:   decimal.Zero,
			ExpectedAnnualReturn: decimal.Zero,
			AnnualInflationRate:  decimal.Zero,
			HorizonYears:         2,
			WithdrawalStartYear:  3,
			MonthlyWithdrawal:    money.Zero(),
		},
	}
}

func runFixture(t *testing.T, scenarios ...domain.Scenario) *domain.ScenarioComparison {
	t.Helper()
	restore := calculation.SetNowFunc(func() time.Time { return fixedNow })
	defer restore()

	if len(scenarios) == 0 {
		scenarios = []domain.Scenario{flatScenario(), lumpScenario()}
	}
	res, err := calculation.NewEngine().RunScenarios(context.Background(), &domain.Configuration{Scenarios: scenarios})
	if err != nil {
		t.Fatalf("run scenarios: %v", err)
	}
	return res
}
