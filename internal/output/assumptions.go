package output

import "github.com/rpgo/swp-projector/internal/domain"

// DefaultAssumptions lists the modeling rules shared by every projection.
// Reports show them when a comparison carries no scenario-specific list.
var DefaultAssumptions = []string{
	"Returns compound monthly at one twelfth of the annual rate",
	"Growth is applied before the month's contribution",
	"Contributions step up once at the start of each year after the first",
	"Withdrawals never exceed the available balance",
	"Inflation adjustment divides by (1 + inflation) raised to the projection year",
}

func assumptionsFor(results *domain.ScenarioComparison) []string {
	if len(results.Assumptions) == 0 {
		return DefaultAssumptions
	}
	return results.Assumptions
}
