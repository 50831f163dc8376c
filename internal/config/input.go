package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/rpgo/swp-projector/internal/domain"
	money "github.com/rpgo/swp-projector/pkg/decimal"
)

var hundred = decimal.NewFromInt(100)

// Field is a raw input value exactly as the user typed it. Config files may
// hold numbers or quoted strings; both decode to the same text.
type Field string

// UnmarshalYAML accepts any scalar node
func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", node.Line)
	}
	*f = Field(node.Value)
	return nil
}

// UnmarshalTOML accepts strings, integers and floats
func (f *Field) UnmarshalTOML(v any) error {
	switch x := v.(type) {
	case string:
		*f = Field(x)
	case int64:
		*f = Field(strconv.FormatInt(x, 10))
	case float64:
		*f = Field(strconv.FormatFloat(x, 'f', -1, 64))
	default:
		return fmt.Errorf("unsupported value %v (%T)", v, v)
	}
	return nil
}

// RawInputs are the eight projection inputs as text. Percentages are typed
// as percentages ("12" means 12%).
type RawInputs struct {
	InitialInvestment    Field `json:"initial_investment" yaml:"initial_investment" toml:"initial_investment"`
	MonthlyInvestment    Field `json:"monthly_investment" yaml:"monthly_investment" toml:"monthly_investment"`
	YearlyIncreaseRate   Field `json:"yearly_increase" yaml:"yearly_increase" toml:"yearly_increase"`
	ExpectedAnnualReturn Field `json:"expected_return" yaml:"expected_return" toml:"expected_return"`
	AnnualInflationRate  Field `json:"inflation" yaml:"inflation" toml:"inflation"`
	HorizonYears         Field `json:"years" yaml:"years" toml:"years"`
	WithdrawalStartYear  Field `json:"swp_start" yaml:"swp_start" toml:"swp_start"`
	MonthlyWithdrawal    Field `json:"monthly_swp" yaml:"monthly_swp" toml:"monthly_swp"`
}

// FieldOrder lists the input fields in form order
var FieldOrder = []string{
	domain.FieldInitialInvestment,
	domain.FieldMonthlyInvestment,
	domain.FieldYearlyIncreaseRate,
	domain.FieldExpectedAnnualReturn,
	domain.FieldAnnualInflationRate,
	domain.FieldHorizonYears,
	domain.FieldWithdrawalStartYear,
	domain.FieldMonthlyWithdrawal,
}

func (r *RawInputs) field(name string) *Field {
	switch name {
	case domain.FieldInitialInvestment:
		return &r.InitialInvestment
	case domain.FieldMonthlyInvestment:
		return &r.MonthlyInvestment
	case domain.FieldYearlyIncreaseRate:
		return &r.YearlyIncreaseRate
	case domain.FieldExpectedAnnualReturn:
		return &r.ExpectedAnnualReturn
	case domain.FieldAnnualInflationRate:
		return &r.AnnualInflationRate
	case domain.FieldHorizonYears:
		return &r.HorizonYears
	case domain.FieldWithdrawalStartYear:
		return &r.WithdrawalStartYear
	case domain.FieldMonthlyWithdrawal:
		return &r.MonthlyWithdrawal
	}
	return nil
}

// Get returns the raw value of a named field, or "" for unknown names
func (r RawInputs) Get(name string) Field {
	if f := r.field(name); f != nil {
		return *f
	}
	return ""
}

// Set assigns a named field and reports whether the name is known
func (r *RawInputs) Set(name string, value Field) bool {
	f := r.field(name)
	if f == nil {
		return false
	}
	*f = value
	return true
}

// fieldBaseline is a valid input set used to check fields one at a time
var fieldBaseline = RawInputs{
	InitialInvestment:    "0",
	MonthlyInvestment:    "0",
	YearlyIncreaseRate:   "0",
	ExpectedAnnualReturn: "0",
	AnnualInflationRate:  "0",
	HorizonYears:         "1",
	WithdrawalStartYear:  "1",
	MonthlyWithdrawal:    "0",
}

// CheckField applies the ParseInputs rules to a single field and returns
// its message as an error, or nil when the value is acceptable.
func CheckField(name string, value Field) error {
	raw := fieldBaseline
	if !raw.Set(name, value) {
		return fmt.Errorf("unknown field %q", name)
	}
	_, err := ParseInputs(raw)
	var verr *domain.InvalidInputError
	if errors.As(err, &verr) {
		if msg := verr.ForField(name); msg != "" {
			return errors.New(msg)
		}
	}
	return nil
}

// ParseInputs converts raw text into validated simulation parameters. Every
// unparseable or invalid field is reported in one *domain.InvalidInputError.
func ParseInputs(raw RawInputs) (domain.SimulationParameters, error) {
	verr := &domain.InvalidInputError{}
	var p domain.SimulationParameters

	p.InitialInvestment = parseMoney(verr, domain.FieldInitialInvestment, raw.InitialInvestment)
	p.MonthlyInvestment = parseMoney(verr, domain.FieldMonthlyInvestment, raw.MonthlyInvestment)
	p.YearlyIncreaseRate = parsePercent(verr, domain.FieldYearlyIncreaseRate, raw.YearlyIncreaseRate)
	p.ExpectedAnnualReturn = parsePercent(verr, domain.FieldExpectedAnnualReturn, raw.ExpectedAnnualReturn)
	p.AnnualInflationRate = parsePercent(verr, domain.FieldAnnualInflationRate, raw.AnnualInflationRate)
	p.HorizonYears = parseYears(verr, domain.FieldHorizonYears, raw.HorizonYears)
	p.WithdrawalStartYear = parseYears(verr, domain.FieldWithdrawalStartYear, raw.WithdrawalStartYear)
	p.MonthlyWithdrawal = parseMoney(verr, domain.FieldMonthlyWithdrawal, raw.MonthlyWithdrawal)

	var ve *domain.InvalidInputError
	if err := ValidateParameters(p); errors.As(err, &ve) {
		verr.Merge(ve)
	}

	if err := verr.OrNil(); err != nil {
		return domain.SimulationParameters{}, err
	}
	return p, nil
}

// ValidateParameters checks already-typed parameters
func ValidateParameters(p domain.SimulationParameters) error {
	return p.Validate()
}

// FormatInputs is the inverse of ParseInputs, used to prefill forms and
// write configuration files.
func FormatInputs(p domain.SimulationParameters) RawInputs {
	return RawInputs{
		InitialInvestment:    Field(p.InitialInvestment.Decimal.String()),
		MonthlyInvestment:    Field(p.MonthlyInvestment.Decimal.String()),
		YearlyIncreaseRate:   Field(p.YearlyIncreaseRate.Mul(hundred).String()),
		ExpectedAnnualReturn: Field(p.ExpectedAnnualReturn.Mul(hundred).String()),
		AnnualInflationRate:  Field(p.AnnualInflationRate.Mul(hundred).String()),
		HorizonYears:         Field(strconv.Itoa(p.HorizonYears)),
		WithdrawalStartYear:  Field(strconv.Itoa(p.WithdrawalStartYear)),
		MonthlyWithdrawal:    Field(p.MonthlyWithdrawal.Decimal.String()),
	}
}

// clean trims whitespace and drops thousands separators
func clean(f Field) string {
	return strings.ReplaceAll(strings.TrimSpace(string(f)), ",", "")
}

func parseMoney(verr *domain.InvalidInputError, field string, raw Field) money.Money {
	s := clean(raw)
	if s == "" {
		verr.Add(field, string(raw), "is required")
		return money.Zero()
	}
	m, err := money.NewMoneyFromString(s)
	if err != nil {
		verr.Add(field, string(raw), "must be a number")
		return money.Zero()
	}
	return m
}

func parsePercent(verr *domain.InvalidInputError, field string, raw Field) decimal.Decimal {
	s := strings.TrimSuffix(clean(raw), "%")
	if s == "" {
		verr.Add(field, string(raw), "is required")
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		verr.Add(field, string(raw), "must be a percentage")
		return decimal.Zero
	}
	return d.Div(hundred)
}

func parseYears(verr *domain.InvalidInputError, field string, raw Field) int {
	s := clean(raw)
	if s == "" {
		verr.Add(field, string(raw), "is required")
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		verr.Add(field, string(raw), "must be a whole number of years")
		return 0
	}
	return n
}

// ScenarioEntry is one named scenario in a configuration file
type ScenarioEntry struct {
	Name      string `json:"name" yaml:"name" toml:"name"`
	RawInputs `yaml:",inline"`
}

// FileConfig is the on-disk layout of a configuration file
type FileConfig struct {
	Currency  domain.Currency `json:"currency" yaml:"currency" toml:"currency"`
	Scenarios []ScenarioEntry `json:"scenarios" yaml:"scenarios" toml:"scenarios"`
}

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a TOML, YAML or JSON file. The
// format is picked from the extension; anything other than .toml is read as
// YAML, which also covers JSON.
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var fc FileConfig
	if isTOML(filename) {
		if _, err := toml.Decode(string(data), &fc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML: %w", err)
		}
	} else if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	config, err := ip.ToConfiguration(&fc)
	if err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return config, nil
}

// ToConfiguration parses every scenario entry of a file config
func (ip *InputParser) ToConfiguration(fc *FileConfig) (*domain.Configuration, error) {
	if len(fc.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios provided")
	}

	config := &domain.Configuration{Currency: fc.Currency.OrDefault()}
	seen := make(map[string]bool, len(fc.Scenarios))
	for i, entry := range fc.Scenarios {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("scenario %d: name is required", i+1)
		}
		if seen[name] {
			return nil, fmt.Errorf("scenario %d: duplicate name %q", i+1, name)
		}
		seen[name] = true

		params, err := ParseInputs(entry.RawInputs)
		if err != nil {
			return nil, fmt.Errorf("scenario %q: %w", name, err)
		}
		config.Scenarios = append(config.Scenarios, domain.Scenario{Name: name, Parameters: params})
	}
	return config, nil
}

// SaveConfiguration writes a configuration as TOML or YAML depending on the
// file extension.
func (ip *InputParser) SaveConfiguration(config *domain.Configuration, filename string) error {
	fc := FileConfig{Currency: config.Currency.OrDefault()}
	for _, sc := range config.Scenarios {
		fc.Scenarios = append(fc.Scenarios, ScenarioEntry{Name: sc.Name, RawInputs: FormatInputs(sc.Parameters)})
	}

	var data []byte
	if isTOML(filename) {
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(fc); err != nil {
			return fmt.Errorf("failed to encode TOML: %w", err)
		}
		data = buf.Bytes()
	} else {
		var err error
		data, err = yaml.Marshal(fc)
		if err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
	}

	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}

// CreateExampleConfiguration returns two scenarios: a growing SIP that
// switches to withdrawals, and a lump sum with the same withdrawal plan.
func (ip *InputParser) CreateExampleConfiguration() *domain.Configuration {
	return &domain.Configuration{
		Currency: domain.DefaultCurrency(),
		Scenarios: []domain.Scenario{
			{
				Name: "SIP then SWP",
				Parameters: domain.SimulationParameters{
					InitialInvestment:    money.NewMoneyFromInt(100000),
					MonthlyInvestment:    money.NewMoneyFromInt(10000),
					YearlyIncreaseRate:   decimal.NewFromFloat(0.10),
					ExpectedAnnualReturn: decimal.NewFromFloat(0.12),
					AnnualInflationRate:  decimal.NewFromFloat(0.06),
					HorizonYears:         20,
					WithdrawalStartYear:  15,
					MonthlyWithdrawal:    money.NewMoneyFromInt(50000),
				},
			},
			{
				Name: "Lump Sum",
				Parameters: domain.SimulationParameters{
					InitialInvestment:    money.NewMoneyFromInt(1000000),
					MonthlyInvestment:    money.Zero(),
					YearlyIncreaseRate:   decimal.Zero,
					ExpectedAnnualReturn: decimal.NewFromFloat(0.12),
					AnnualInflationRate:  decimal.NewFromFloat(0.06),
					HorizonYears:         20,
					WithdrawalStartYear:  15,
					MonthlyWithdrawal:    money.NewMoneyFromInt(50000),
				},
			},
		},
	}
}

func isTOML(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".toml")
}
