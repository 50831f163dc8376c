package calculation

import (
	"github.com/shopspring/decimal"

	"github.com/rpgo/swp-projector/internal/domain"
	money "github.com/rpgo/swp-projector/pkg/decimal"
	"github.com/rpgo/swp-projector/pkg/dateutil"
)

var decimalHundred = decimal.NewFromInt(100)

// SummarizeYears collapses a projection into one row per year: the year-end
// balances come from the last snapshot of the year, withdrawals are summed.
func SummarizeYears(projection domain.Projection) []domain.YearSummary {
	var years []domain.YearSummary
	for _, s := range projection {
		if len(years) == 0 || years[len(years)-1].Year != s.Year {
			years = append(years, domain.YearSummary{Year: s.Year, Withdrawals: money.Zero()})
		}
		row := &years[len(years)-1]
		row.CumulativeInvested = s.CumulativeInvested
		row.PortfolioValue = s.PortfolioValue
		row.InflationAdjustedValue = s.InflationAdjustedValue
		row.Withdrawals = row.Withdrawals.Add(s.WithdrawalThisMonth)
	}
	return years
}

// Summarize builds the final summary: last snapshot balances plus the total
// withdrawn across the whole projection.
func Summarize(projection domain.Projection) domain.FinalSummary {
	final := projection.Final()
	summary := domain.FinalSummary{
		Years:                  final.Year,
		TotalInvested:          final.CumulativeInvested,
		FinalValue:             final.PortfolioValue,
		InflationAdjustedValue: final.InflationAdjustedValue,
		TotalWithdrawn:         projection.TotalWithdrawn(),
	}
	for _, s := range projection {
		if s.IsDepleted() {
			summary.DepletedMonth = s.Month
			break
		}
	}
	return summary
}

// InitialWithdrawalRate returns the annualized withdrawal as a percentage of
// the balance just before withdrawals start, or zero when they never start.
func InitialWithdrawalRate(params domain.SimulationParameters, projection domain.Projection) decimal.Decimal {
	if params.WithdrawalNeverStarts() || params.MonthlyWithdrawal.IsZero() {
		return decimal.Zero
	}
	opening := params.InitialInvestment
	if before := dateutil.AbsoluteMonth(params.WithdrawalStartYear, 1) - 1; before > 0 && before <= len(projection) {
		opening = projection[before-1].PortfolioValue
	}
	if !opening.IsPositive() {
		return decimal.Zero
	}
	annual := params.MonthlyWithdrawal.Decimal.Mul(decimalTwelve)
	return annual.Div(opening.Decimal).Mul(decimalHundred).Round(2)
}
