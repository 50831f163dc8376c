package calculation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/swp-projector/internal/domain"
	money "github.com/rpgo/swp-projector/pkg/decimal"
)

type recordingLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *recordingLogger) record(level, format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level+" "+fmt.Sprintf(format, args...))
}

func (l *recordingLogger) Debugf(format string, args ...any) { l.record("DEBUG", format, args...) }
func (l *recordingLogger) Infof(format string, args ...any)  { l.record("INFO", format, args...) }
func (l *recordingLogger) Warnf(format string, args ...any)  { l.record("WARN", format, args...) }
func (l *recordingLogger) Errorf(format string, args ...any) { l.record("ERROR", format, args...) }

func TestEngineRun(t *testing.T) {
	e := NewEngine()

	res, err := e.Run(context.Background(), domain.Scenario{
		Name:       "base",
		Parameters: params(100000, 10000, 0.10, 0.12, 0.06, 20, 15, 50000),
	})

	require.NoError(t, err)
	assert.Equal(t, "base", res.Name)
	assert.Len(t, res.Projection, 240)
	assert.Len(t, res.Years, 20)
	assert.Equal(t, 20, res.Summary.Years)
	assert.True(t, res.Summary.FinalValue.Equal(res.Projection.Final().PortfolioValue))
	assert.True(t, res.InitialWithdrawalRate.IsPositive())
}

func TestEngineRun_InvalidInput(t *testing.T) {
	e := NewEngine()
	log := &recordingLogger{}
	e.SetLogger(log)

	p := params(100000, 10000, 0, 0.12, 0.06, 0, 0, 0)
	p.MonthlyWithdrawal = money.NewMoneyFromInt(-1)

	res, err := e.Run(context.Background(), domain.Scenario{Name: "broken", Parameters: p})

	require.Error(t, err)
	assert.Nil(t, res)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), `"broken"`)

	var invalid *domain.InvalidInputError
	require.True(t, errors.As(err, &invalid))
	assert.True(t, invalid.Has(domain.FieldHorizonYears))
	assert.True(t, invalid.Has(domain.FieldWithdrawalStartYear))
	assert.True(t, invalid.Has(domain.FieldMonthlyWithdrawal))

	require.NotEmpty(t, log.lines)
	assert.Contains(t, log.lines[0], "WARN")
}

func TestEngineRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewEngine().Run(ctx, domain.Scenario{Name: "x", Parameters: params(1, 1, 0, 0, 0, 1, 2, 0)})

	assert.ErrorIs(t, err, context.Canceled)
}

func TestEngineSetLogger_NilFallsBackToNop(t *testing.T) {
	e := NewEngine()
	e.SetLogger(nil)
	assert.IsType(t, NopLogger{}, e.Logger)
}

func TestEngineRunScenarios(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	restore := SetNowFunc(func() time.Time { return fixed })
	defer restore()

	cfg := &domain.Configuration{
		Scenarios: []domain.Scenario{
			{Name: "lump", Parameters: params(100000, 0, 0, 0, 0, 2, 3, 0)},
			{Name: "sip", Parameters: params(0, 15000, 0, 0, 0, 2, 3, 0)},
			{Name: "third", Parameters: params(0, 1, 0, 0, 0, 3, 4, 0)},
		},
	}

	cmp, err := NewEngine().RunScenarios(context.Background(), cfg)

	require.NoError(t, err)
	assert.Equal(t, fixed, cmp.GeneratedAt)
	assert.Equal(t, domain.DefaultCurrency(), cmp.Currency)
	require.Len(t, cmp.Scenarios, 3)
	assert.Equal(t, "lump", cmp.Scenarios[0].Name)
	assert.Equal(t, "sip", cmp.Scenarios[1].Name)
	assert.Equal(t, "third", cmp.Scenarios[2].Name)
	assert.Len(t, cmp.Scenarios[2].Projection, 36)

	require.NotNil(t, cmp.Crossover)
	assert.Equal(t, 7, cmp.Crossover.Month)
	assert.Equal(t, "sip", cmp.Crossover.Leader)
	assert.NotEmpty(t, cmp.Assumptions)
}

func TestEngineRunScenarios_CustomCurrency(t *testing.T) {
	cfg := &domain.Configuration{
		Currency:  domain.Currency{Symbol: "$", Code: "USD"},
		Scenarios: []domain.Scenario{{Name: "only", Parameters: params(1000, 100, 0, 0.05, 0.02, 1, 2, 0)}},
	}

	cmp, err := NewEngine().RunScenarios(context.Background(), cfg)

	require.NoError(t, err)
	assert.Equal(t, "USD", cmp.Currency.Code)
	assert.Nil(t, cmp.Crossover)
}

func TestEngineRunScenarios_Errors(t *testing.T) {
	_, err := NewEngine().RunScenarios(context.Background(), &domain.Configuration{})
	require.Error(t, err)

	bad := params(0, 0, 0, 0, 0, 1, 1, 0)
	bad.AnnualInflationRate = decimal.NewFromInt(-2)
	cfg := &domain.Configuration{Scenarios: []domain.Scenario{
		{Name: "ok", Parameters: params(1, 1, 0, 0, 0, 1, 2, 0)},
		{Name: "bad", Parameters: bad},
	}}

	_, err = NewEngine().RunScenarios(context.Background(), cfg)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Contains(t, err.Error(), "bad")
}

func TestEngineRunSingle(t *testing.T) {
	cmp, err := NewEngine().RunSingle(context.Background(),
		domain.Scenario{Name: "solo", Parameters: params(0, 1000, 0, 0, 0, 1, 2, 0)},
		domain.Currency{})

	require.NoError(t, err)
	require.Len(t, cmp.Scenarios, 1)
	assert.Equal(t, "₨", cmp.Currency.Symbol)
	assertMoney(t, 12000, cmp.Scenarios[0].Summary.FinalValue)
}
