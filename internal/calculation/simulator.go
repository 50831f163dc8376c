package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/swp-projector/internal/domain"
	money "github.com/rpgo/swp-projector/pkg/decimal"
	"github.com/rpgo/swp-projector/pkg/dateutil"
)

// WorkingScale is the number of decimal places kept for compounded amounts.
// Terminating rates (0.12/12 = 0.01) stay exact; repeating ones are rounded
// so operands do not grow without bound over long horizons.
const WorkingScale int32 = 12

var (
	decimalOne    = decimal.NewFromInt(1)
	decimalTwelve = decimal.NewFromInt(dateutil.MonthsPerYear)
)

// Simulate runs the monthly forward projection. Parameters must already be
// validated (see domain.SimulationParameters.Validate); the loop itself
// never fails.
//
// Order of operations within a month: withdrawal activation, growth on the
// opening balance, the yearly contribution step-up (first month of years
// after the first), the contribution, the clamped withdrawal, then the
// inflation discount by (1 + inflation)^year.
func Simulate(params domain.SimulationParameters) domain.Projection {
	projection := make(domain.Projection, 0, dateutil.TotalMonths(params.HorizonYears))

	monthlyRate := params.ExpectedAnnualReturn.Div(decimalTwelve)
	stepUp := decimalOne.Add(params.YearlyIncreaseRate)
	inflationBase := decimalOne.Add(params.AnnualInflationRate)

	contribution := params.MonthlyInvestment
	invested := params.InitialInvestment
	value := params.InitialInvestment
	withdrawalActive := false

	for year := 1; year <= params.HorizonYears; year++ {
		// stepped once per year, not smoothed across months
		divisor := inflationBase.Pow(decimal.NewFromInt(int64(year)))

		for month := 1; month <= dateutil.MonthsPerYear; month++ {
			absolute := dateutil.AbsoluteMonth(year, month)

			if year >= params.WithdrawalStartYear {
				withdrawalActive = true
			}

			value = value.Add(value.Mul(monthlyRate).RoundScale(WorkingScale))

			if year > 1 && month == 1 {
				contribution = contribution.Mul(stepUp).RoundScale(WorkingScale)
			}
			value = value.Add(contribution)
			invested = invested.Add(contribution)

			withdrawal := money.Zero()
			if withdrawalActive {
				withdrawal = money.Max(money.Min(params.MonthlyWithdrawal, value), money.Zero())
				value = value.Sub(withdrawal)
			}

			projection = append(projection, domain.MonthlySnapshot{
				Year:                   year,
				Month:                  absolute,
				PortfolioValue:         value,
				CumulativeInvested:     invested,
				WithdrawalThisMonth:    withdrawal,
				InflationAdjustedValue: value.Div(divisor).RoundScale(WorkingScale),
				WithdrawalActive:       withdrawalActive,
			})
		}
	}

	return projection
}
