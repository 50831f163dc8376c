package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rpgo/swp-projector/internal/config"
	"github.com/rpgo/swp-projector/internal/domain"
	"github.com/rpgo/swp-projector/internal/log"
)

type runOptions struct {
	reportOptions
	configFile string
	scenario   string
	name       string
	raw        config.RawInputs
}

func newRunCmd(a *app) *cobra.Command {
	o := &runOptions{}
	example := config.NewInputParser().CreateExampleConfiguration().Scenarios[0]
	defaults := config.FormatInputs(example.Parameters)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Project a single scenario from flags or a configuration file",
		Example: `  swp run --initial 100000 --monthly 10000 --return 12 --years 20 --swp-start 15 --swp 50000
  swp run --config plans.yaml --scenario "Lump Sum" --format csv --output reports`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.run(cmd, o)
		},
	}
	o.reportOptions.bind(cmd)
	f := cmd.Flags()
	f.StringVarP(&o.configFile, "config", "c", "", "Load the scenario from a YAML, JSON or TOML file")
	f.StringVarP(&o.scenario, "scenario", "s", "", "Scenario name within --config (default: first)")
	f.StringVar(&o.name, "name", "Projection", "Scenario name when using flags")

	rawFlag := func(field *config.Field, name, usage string) {
		*field = defaults.Get(configFieldFor(name))
		f.Var((*fieldValue)(field), name, usage)
	}
	rawFlag(&o.raw.InitialInvestment, "initial", "Initial investment")
	rawFlag(&o.raw.MonthlyInvestment, "monthly", "Monthly investment")
	rawFlag(&o.raw.YearlyIncreaseRate, "increase", "Yearly increase of the monthly investment (%)")
	rawFlag(&o.raw.ExpectedAnnualReturn, "return", "Expected annual return (%)")
	rawFlag(&o.raw.AnnualInflationRate, "inflation", "Annual inflation (%)")
	rawFlag(&o.raw.HorizonYears, "years", "Investment period in years")
	rawFlag(&o.raw.WithdrawalStartYear, "swp-start", "Year withdrawals start")
	rawFlag(&o.raw.MonthlyWithdrawal, "swp", "Monthly withdrawal")
	return cmd
}

// flagFields maps CLI flag names onto input field names
var flagFields = map[string]string{
	"initial":   domain.FieldInitialInvestment,
	"monthly":   domain.FieldMonthlyInvestment,
	"increase":  domain.FieldYearlyIncreaseRate,
	"return":    domain.FieldExpectedAnnualReturn,
	"inflation": domain.FieldAnnualInflationRate,
	"years":     domain.FieldHorizonYears,
	"swp-start": domain.FieldWithdrawalStartYear,
	"swp":       domain.FieldMonthlyWithdrawal,
}

func configFieldFor(flag string) string { return flagFields[flag] }

// fieldValue lets a raw input field back a pflag
type fieldValue config.Field

func (v *fieldValue) String() string     { return string(*v) }
func (v *fieldValue) Set(s string) error { *v = fieldValue(s); return nil }
func (v *fieldValue) Type() string       { return "string" }

func (a *app) run(cmd *cobra.Command, o *runOptions) error {
	if err := o.validate(); err != nil {
		return err
	}

	scenario, currency, err := a.resolveScenario(cmd, o)
	if err != nil {
		return err
	}

	a.logger.Debug("running projection", log.FieldScenario, scenario.Name)
	res, err := a.engine().RunSingle(cmd.Context(), scenario, currency)
	if err != nil {
		return err
	}
	return a.emit(cmd, res, o.reportOptions)
}

// resolveScenario picks the scenario from --config when given, otherwise
// parses the input flags.
func (a *app) resolveScenario(cmd *cobra.Command, o *runOptions) (domain.Scenario, domain.Currency, error) {
	if o.configFile == "" {
		params, err := config.ParseInputs(o.raw)
		if err != nil {
			return domain.Scenario{}, domain.Currency{}, err
		}
		return domain.Scenario{Name: o.name, Parameters: params}, a.settings.Currency, nil
	}

	for name := range flagFields {
		if cmd.Flags().Changed(name) {
			return domain.Scenario{}, domain.Currency{}, fmt.Errorf("--%s cannot be combined with --config", name)
		}
	}
	cfg, err := config.NewInputParser().LoadFromFile(o.configFile)
	if err != nil {
		return domain.Scenario{}, domain.Currency{}, err
	}
	if o.scenario == "" {
		return cfg.Scenarios[0], cfg.Currency, nil
	}
	sc, ok := cfg.ScenarioByName(o.scenario)
	if !ok {
		names := make([]string, 0, len(cfg.Scenarios))
		for _, s := range cfg.Scenarios {
			names = append(names, s.Name)
		}
		return domain.Scenario{}, domain.Currency{}, fmt.Errorf("scenario %q not found in %s (have: %s)", o.scenario, o.configFile, strings.Join(names, ", "))
	}
	return sc, cfg.Currency, nil
}
