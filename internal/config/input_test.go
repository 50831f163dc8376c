package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/swp-projector/internal/domain"
	money "github.com/rpgo/swp-projector/pkg/decimal"
)

func validRaw() RawInputs {
	return RawInputs{
		InitialInvestment:    "100000",
		MonthlyInvestment:    "10000",
		YearlyIncreaseRate:   "10",
		ExpectedAnnualReturn: "12",
		AnnualInflationRate:  "6",
		HorizonYears:         "20",
		WithdrawalStartYear:  "15",
		MonthlyWithdrawal:    "50000",
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestParseInputs_Success(t *testing.T) {
	p, err := ParseInputs(validRaw())

	require.NoError(t, err)
	assert.True(t, p.InitialInvestment.Equal(money.NewMoneyFromInt(100000)))
	assert.True(t, p.MonthlyInvestment.Equal(money.NewMoneyFromInt(10000)))
	assert.True(t, p.YearlyIncreaseRate.Equal(decimal.RequireFromString("0.1")))
	assert.True(t, p.ExpectedAnnualReturn.Equal(decimal.RequireFromString("0.12")))
	assert.True(t, p.AnnualInflationRate.Equal(decimal.RequireFromString("0.06")))
	assert.Equal(t, 20, p.HorizonYears)
	assert.Equal(t, 15, p.WithdrawalStartYear)
	assert.True(t, p.MonthlyWithdrawal.Equal(money.NewMoneyFromInt(50000)))
}

func TestParseInputs_Normalization(t *testing.T) {
	raw := validRaw()
	raw.InitialInvestment = "  1,000,000.50 "
	raw.ExpectedAnnualReturn = "7.5%"
	raw.HorizonYears = " 30 "

	p, err := ParseInputs(raw)

	require.NoError(t, err)
	assert.Equal(t, "1000000.5", p.InitialInvestment.Decimal.String())
	assert.True(t, p.ExpectedAnnualReturn.Equal(decimal.RequireFromString("0.075")))
	assert.Equal(t, 30, p.HorizonYears)
}

func TestParseInputs_CollectsEveryFieldError(t *testing.T) {
	raw := RawInputs{
		InitialInvestment:    "",
		MonthlyInvestment:    "abc",
		YearlyIncreaseRate:   "ten",
		ExpectedAnnualReturn: "12",
		AnnualInflationRate:  "-150",
		HorizonYears:         "0",
		WithdrawalStartYear:  "1.5",
		MonthlyWithdrawal:    "-10",
	}

	_, err := ParseInputs(raw)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	var verr *domain.InvalidInputError
	require.True(t, errors.As(err, &verr))
	assert.Len(t, verr.Fields, 7)
	assert.Equal(t, "is required", verr.ForField(domain.FieldInitialInvestment))
	assert.Equal(t, "must be a number", verr.ForField(domain.FieldMonthlyInvestment))
	assert.Equal(t, "must be a percentage", verr.ForField(domain.FieldYearlyIncreaseRate))
	assert.Empty(t, verr.ForField(domain.FieldExpectedAnnualReturn))
	assert.Contains(t, verr.ForField(domain.FieldAnnualInflationRate), "-100%")
	assert.Equal(t, "must be at least 1", verr.ForField(domain.FieldHorizonYears))
	assert.Equal(t, "must be a whole number of years", verr.ForField(domain.FieldWithdrawalStartYear))
	assert.Equal(t, "must not be negative", verr.ForField(domain.FieldMonthlyWithdrawal))
}

func TestParseInputs_ParseFailureIsNotDoubleReported(t *testing.T) {
	raw := validRaw()
	raw.HorizonYears = "twenty"

	_, err := ParseInputs(raw)

	var verr *domain.InvalidInputError
	require.True(t, errors.As(err, &verr))
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, domain.FieldHorizonYears, verr.Fields[0].Field)
	assert.Equal(t, "twenty", verr.Fields[0].Value)
}

func TestParseInputs_WithdrawalBeyondHorizonIsValid(t *testing.T) {
	raw := validRaw()
	raw.WithdrawalStartYear = "25"

	p, err := ParseInputs(raw)

	require.NoError(t, err)
	assert.True(t, p.WithdrawalNeverStarts())
}

func TestFormatInputs_RoundTrip(t *testing.T) {
	p, err := ParseInputs(validRaw())
	require.NoError(t, err)

	raw := FormatInputs(p)

	assert.Equal(t, Field("12"), raw.ExpectedAnnualReturn)
	assert.Equal(t, Field("20"), raw.HorizonYears)
	again, err := ParseInputs(raw)
	require.NoError(t, err)
	assert.Equal(t, p.HorizonYears, again.HorizonYears)
	assert.True(t, p.AnnualInflationRate.Equal(again.AnnualInflationRate))
	assert.True(t, p.MonthlyWithdrawal.Equal(again.MonthlyWithdrawal))
}

func TestLoadFromFile_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `currency:
  symbol: "$"
  code: USD
scenarios:
  - name: "Aggressive"
    initial_investment: 100000
    monthly_investment: "10000"
    yearly_increase: 10
    expected_return: 12.5
    inflation: 6
    years: 20
    swp_start: 15
    monthly_swp: 50000
  - name: "Conservative"
    initial_investment: 100000
    monthly_investment: 5000
    yearly_increase: 5
    expected_return: 8
    inflation: 6
    years: 20
    swp_start: 21
    monthly_swp: 0
`)

	config, err := NewInputParser().LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, "USD", config.Currency.Code)
	require.Len(t, config.Scenarios, 2)
	assert.Equal(t, "Aggressive", config.Scenarios[0].Name)
	assert.True(t, config.Scenarios[0].Parameters.ExpectedAnnualReturn.Equal(decimal.RequireFromString("0.125")))
	assert.True(t, config.Scenarios[0].Parameters.MonthlyInvestment.Equal(money.NewMoneyFromInt(10000)))
	assert.True(t, config.Scenarios[1].Parameters.WithdrawalNeverStarts())
}

func TestLoadFromFile_JSON(t *testing.T) {
	path := writeFile(t, "config.json", `{"scenarios": [{"name": "json", "initial_investment": 1000,
"monthly_investment": 100, "yearly_increase": 0, "expected_return": 8, "inflation": 3,
"years": 5, "swp_start": 6, "monthly_swp": 0}]}`)

	config, err := NewInputParser().LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, domain.DefaultCurrency(), config.Currency)
	require.Len(t, config.Scenarios, 1)
	assert.Equal(t, 5, config.Scenarios[0].Parameters.HorizonYears)
}

func TestLoadFromFile_TOML(t *testing.T) {
	path := writeFile(t, "config.toml", `[currency]
symbol = "€"
code = "EUR"

[[scenarios]]
name = "toml"
initial_investment = 250000
monthly_investment = "2,500"
yearly_increase = 3.5
expected_return = 9
inflation = 2.5
years = 10
swp_start = 8
monthly_swp = 4000
`)

	config, err := NewInputParser().LoadFromFile(path)

	require.NoError(t, err)
	assert.Equal(t, "EUR", config.Currency.Code)
	require.Len(t, config.Scenarios, 1)
	p := config.Scenarios[0].Parameters
	assert.True(t, p.MonthlyInvestment.Equal(money.NewMoneyFromInt(2500)))
	assert.True(t, p.YearlyIncreaseRate.Equal(decimal.RequireFromString("0.035")))
	assert.True(t, p.AnnualInflationRate.Equal(decimal.RequireFromString("0.025")))
	assert.Equal(t, 8, p.WithdrawalStartYear)
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	config, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	path := writeFile(t, "bad.yaml", "scenarios:\n\t- name: broken\n")

	config, err := NewInputParser().LoadFromFile(path)

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadFromFile_InvalidTOML(t *testing.T) {
	path := writeFile(t, "bad.toml", "[[scenarios]\nname = \n")

	_, err := NewInputParser().LoadFromFile(path)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse TOML")
}

func TestLoadFromFile_InvalidScenario(t *testing.T) {
	path := writeFile(t, "invalid.yaml", `scenarios:
  - name: "broken"
    initial_investment: -5
    monthly_investment: 0
    yearly_increase: 0
    expected_return: 0
    inflation: 0
    years: 0
    swp_start: 1
    monthly_swp: 0
`)

	_, err := NewInputParser().LoadFromFile(path)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Contains(t, err.Error(), `scenario "broken"`)
	assert.Contains(t, err.Error(), "configuration validation failed")
}

func TestToConfiguration_Errors(t *testing.T) {
	parser := NewInputParser()

	_, err := parser.ToConfiguration(&FileConfig{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no scenarios provided")

	_, err = parser.ToConfiguration(&FileConfig{Scenarios: []ScenarioEntry{{Name: " ", RawInputs: validRaw()}}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")

	_, err = parser.ToConfiguration(&FileConfig{Scenarios: []ScenarioEntry{
		{Name: "a", RawInputs: validRaw()},
		{Name: "a", RawInputs: validRaw()},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate name")
}

func TestSaveConfiguration_RoundTrip(t *testing.T) {
	parser := NewInputParser()
	example := parser.CreateExampleConfiguration()

	for _, name := range []string{"example.yaml", "example.toml", "nested/dir/example.yml"} {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), name)
			require.NoError(t, parser.SaveConfiguration(example, path))

			loaded, err := parser.LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, example.Currency, loaded.Currency)
			require.Len(t, loaded.Scenarios, len(example.Scenarios))
			for i, sc := range example.Scenarios {
				got := loaded.Scenarios[i]
				assert.Equal(t, sc.Name, got.Name)
				assert.True(t, sc.Parameters.InitialInvestment.Equal(got.Parameters.InitialInvestment))
				assert.True(t, sc.Parameters.ExpectedAnnualReturn.Equal(got.Parameters.ExpectedAnnualReturn))
				assert.True(t, sc.Parameters.YearlyIncreaseRate.Equal(got.Parameters.YearlyIncreaseRate))
				assert.Equal(t, sc.Parameters.HorizonYears, got.Parameters.HorizonYears)
				assert.Equal(t, sc.Parameters.WithdrawalStartYear, got.Parameters.WithdrawalStartYear)
			}
		})
	}
}

func TestCreateExampleConfiguration(t *testing.T) {
	config := NewInputParser().CreateExampleConfiguration()

	require.Len(t, config.Scenarios, 2)
	for _, sc := range config.Scenarios {
		assert.NoError(t, ValidateParameters(sc.Parameters), sc.Name)
	}
	_, ok := config.ScenarioByName("Lump Sum")
	assert.True(t, ok)
}

func TestRawInputs_GetSet(t *testing.T) {
	raw := validRaw()
	for _, name := range FieldOrder {
		assert.NotEmpty(t, raw.Get(name), name)
		require.True(t, raw.Set(name, "7"), name)
		assert.Equal(t, Field("7"), raw.Get(name), name)
	}
	assert.False(t, raw.Set("bogus", "1"))
	assert.Equal(t, Field(""), raw.Get("bogus"))
}

func TestCheckField(t *testing.T) {
	tests := []struct {
		field string
		value Field
		want  string
	}{
		{domain.FieldInitialInvestment, "1,000", ""},
		{domain.FieldInitialInvestment, "", "is required"},
		{domain.FieldInitialInvestment, "-1", "must not be negative"},
		{domain.FieldMonthlyWithdrawal, "ten", "must be a number"},
		{domain.FieldExpectedAnnualReturn, "-3%", ""},
		{domain.FieldExpectedAnnualReturn, "x%", "must be a percentage"},
		{domain.FieldAnnualInflationRate, "-100", "must be greater than -100%"},
		{domain.FieldHorizonYears, "0", "must be at least 1"},
		{domain.FieldHorizonYears, "2.5", "must be a whole number of years"},
		{domain.FieldWithdrawalStartYear, "99", ""},
	}
	for _, tt := range tests {
		err := CheckField(tt.field, tt.value)
		if tt.want == "" {
			assert.NoError(t, err, "%s=%q", tt.field, tt.value)
			continue
		}
		if assert.Error(t, err, "%s=%q", tt.field, tt.value) {
			assert.Equal(t, tt.want, err.Error())
		}
	}

	assert.Error(t, CheckField("bogus", "1"))
}
