package calculation

import (
	"fmt"

	"github.com/rpgo/swp-projector/internal/domain"
)

// CalculateCrossover finds the first month where the portfolio values of two
// projections swap order, or become exactly equal after the first month.
// Projections are aligned by absolute month and compared up to the shorter
// length. If no crossover is found, returns nil, nil.
func CalculateCrossover(nameA string, projA domain.Projection, nameB string, projB domain.Projection) (*domain.CrossoverResult, error) {
	if len(projA) == 0 || len(projB) == 0 {
		return nil, fmt.Errorf("one or both projections are empty")
	}

	n := len(projA)
	if len(projB) < n {
		n = len(projB)
	}

	prevSign := 0
	for i := 0; i < n; i++ {
		a, b := projA[i], projB[i]
		sign := a.PortfolioValue.Decimal.Cmp(b.PortfolioValue.Decimal)

		switch {
		case i == 0:
			// identical opening months are not a crossover
		case sign == 0 && prevSign != 0:
			return crossoverAt(nameA, nameB, a, b, leaderAfter(nameA, nameB, -prevSign)), nil
		case sign != 0 && prevSign != 0 && sign != prevSign:
			return crossoverAt(nameA, nameB, a, b, leaderAfter(nameA, nameB, sign)), nil
		}

		if sign != 0 {
			prevSign = sign
		}
	}

	return nil, nil
}

// leaderAfter maps a comparison sign (A vs B) to the scenario name ahead
func leaderAfter(nameA, nameB string, sign int) string {
	if sign > 0 {
		return nameA
	}
	return nameB
}

func crossoverAt(nameA, nameB string, a, b domain.MonthlySnapshot, leader string) *domain.CrossoverResult {
	return &domain.CrossoverResult{
		ScenarioA: nameA,
		ScenarioB: nameB,
		Month:     a.Month,
		Year:      a.Year,
		Leader:    leader,
		ValueA:    a.PortfolioValue,
		ValueB:    b.PortfolioValue,
	}
}
