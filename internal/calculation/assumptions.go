package calculation

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rpgo/swp-projector/internal/domain"
)

// GenerateAssumptions describes the modeling assumptions of each scenario in
// plain sentences for report headers.
func GenerateAssumptions(results []domain.ScenarioResult) []string {
	var out []string
	for _, r := range results {
		p := r.Parameters
		prefix := ""
		if len(results) > 1 {
			prefix = r.Name + ": "
		}
		out = append(out,
			fmt.Sprintf("%sExpected return %s annually, compounded monthly at %s per month", prefix,
				pct(p.ExpectedAnnualReturn, 1), pct(p.ExpectedAnnualReturn.Div(decimalTwelve), 4)),
			fmt.Sprintf("%sMonthly contribution grows %s at the start of each year after the first", prefix,
				pct(p.YearlyIncreaseRate, 1)),
			fmt.Sprintf("%sInflation %s annually, discounted once per projection year", prefix,
				pct(p.AnnualInflationRate, 1)),
		)
		if p.WithdrawalNeverStarts() {
			out = append(out, fmt.Sprintf("%sNo systematic withdrawal within the %d year horizon", prefix, p.HorizonYears))
		} else {
			out = append(out, fmt.Sprintf("%sSystematic withdrawal from year %d, capped at the available balance", prefix,
				p.WithdrawalStartYear))
		}
	}
	return out
}

func pct(rate decimal.Decimal, places int32) string {
	return rate.Mul(decimalHundred).StringFixed(places) + "%"
}
