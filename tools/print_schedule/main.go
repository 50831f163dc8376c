package main

import (
	"fmt"

	"github.com/rpgo/swp-projector/internal/calculation"
	"github.com/rpgo/swp-projector/internal/config"
	"github.com/rpgo/swp-projector/internal/output"
	"github.com/rpgo/swp-projector/pkg/dateutil"
)

// Prints the months around each example scenario's withdrawal start, for
// checking the switch from contributions to withdrawals by hand.
func main() {
	example := config.NewInputParser().CreateExampleConfiguration()

	for _, sc := range example.Scenarios {
		p := sc.Parameters
		proj := calculation.Simulate(p)
		start := dateutil.AbsoluteMonth(p.WithdrawalStartYear, 1)

		t := output.Table{
			Title:   fmt.Sprintf("%s: months %d-%d", sc.Name, start-2, start+2),
			Headers: []string{"Label", "Invested", "Withdrawal", "Value", "Real Value", "Active"},
		}
		for _, s := range proj {
			if s.Month < start-2 || s.Month > start+2 {
				continue
			}
			t.Rows = append(t.Rows, []string{
				dateutil.Label(s.Year, s.Month),
				output.FormatAmount(s.CumulativeInvested),
				output.FormatAmount(s.WithdrawalThisMonth),
				output.FormatAmount(s.PortfolioValue),
				output.FormatAmount(s.InflationAdjustedValue),
				fmt.Sprint(s.WithdrawalActive),
			})
		}
		fmt.Println(output.RenderTable(t))

		rate := calculation.InitialWithdrawalRate(p, proj)
		fmt.Printf("Initial SWP rate: %s\n\n", output.FormatPercentage(rate))
	}
}
