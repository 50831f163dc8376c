package calculation

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/rpgo/swp-projector/internal/domain"
)

// Engine orchestrates validation, simulation and aggregation of scenarios
type Engine struct {
	Logger Logger
}

// NewEngine creates an engine with a no-op logger
func NewEngine() *Engine {
	return &Engine{Logger: NopLogger{}}
}

// SetLogger sets the logger for the engine. If nil is provided, a no-op logger is used.
func (e *Engine) SetLogger(l Logger) {
	if l == nil {
		e.Logger = NopLogger{}
		return
	}
	e.Logger = l
}

// Run validates and simulates a single scenario. Validation failures are
// returned before any simulation work happens and match domain.ErrInvalidInput.
func (e *Engine) Run(ctx context.Context, scenario domain.Scenario) (*domain.ScenarioResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	params := scenario.Parameters
	if err := params.Validate(); err != nil {
		e.Logger.Warnf("scenario %q rejected: %v", scenario.Name, err)
		return nil, fmt.Errorf("scenario %q: %w", scenario.Name, err)
	}
	if params.WithdrawalNeverStarts() {
		e.Logger.Debugf("scenario %q: withdrawal start year %d is beyond the %d year horizon",
			scenario.Name, params.WithdrawalStartYear, params.HorizonYears)
	}

	projection := Simulate(params)
	result := &domain.ScenarioResult{
		Name:                  scenario.Name,
		Parameters:            params,
		Projection:            projection,
		Years:                 SummarizeYears(projection),
		Summary:               Summarize(projection),
		InitialWithdrawalRate: InitialWithdrawalRate(params, projection),
	}

	e.Logger.Debugf("scenario %q: %d months, final value %s, withdrawn %s",
		scenario.Name, len(projection), result.Summary.FinalValue, result.Summary.TotalWithdrawn)
	if result.Summary.WasDepleted() {
		e.Logger.Infof("scenario %q: portfolio depleted in month %d", scenario.Name, result.Summary.DepletedMonth)
	}

	return result, nil
}

// RunScenarios runs every scenario concurrently and returns them in input
// order. When at least two scenarios exist, the crossover of the first two
// is attached.
func (e *Engine) RunScenarios(ctx context.Context, cfg *domain.Configuration) (*domain.ScenarioComparison, error) {
	if len(cfg.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios provided")
	}

	results := make([]domain.ScenarioResult, len(cfg.Scenarios))
	g, gctx := errgroup.WithContext(ctx)
	for i, scenario := range cfg.Scenarios {
		i, scenario := i, scenario
		g.Go(func() error {
			r, err := e.Run(gctx, scenario)
			if err != nil {
				return err
			}
			results[i] = *r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("RunScenarios failed: %w", err)
	}

	comparison := &domain.ScenarioComparison{
		GeneratedAt: nowFunc(),
		Currency:    cfg.Currency.OrDefault(),
		Scenarios:   results,
		Assumptions: GenerateAssumptions(results),
	}

	if len(results) >= 2 {
		a, b := results[0], results[1]
		crossover, err := CalculateCrossover(a.Name, a.Projection, b.Name, b.Projection)
		if err != nil {
			return nil, fmt.Errorf("crossover %q vs %q: %w", a.Name, b.Name, err)
		}
		comparison.Crossover = crossover
	}

	return comparison, nil
}

// RunSingle wraps one scenario into a comparison so every formatter can render it
func (e *Engine) RunSingle(ctx context.Context, scenario domain.Scenario, currency domain.Currency) (*domain.ScenarioComparison, error) {
	return e.RunScenarios(ctx, &domain.Configuration{Currency: currency, Scenarios: []domain.Scenario{scenario}})
}
