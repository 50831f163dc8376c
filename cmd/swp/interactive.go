package main

import (
	"fmt"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/rpgo/swp-projector/internal/config"
	"github.com/rpgo/swp-projector/internal/domain"
)

var fieldPrompts = map[string]string{
	domain.FieldInitialInvestment:    "Initial investment",
	domain.FieldMonthlyInvestment:    "Monthly investment",
	domain.FieldYearlyIncreaseRate:   "Yearly increase (%)",
	domain.FieldExpectedAnnualReturn: "Expected annual return (%)",
	domain.FieldAnnualInflationRate:  "Annual inflation (%)",
	domain.FieldHorizonYears:         "Investment period (years)",
	domain.FieldWithdrawalStartYear:  "SWP start year",
	domain.FieldMonthlyWithdrawal:    "Monthly SWP amount",
}

func newInteractiveCmd(a *app) *cobra.Command {
	o := &reportOptions{}
	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Enter the projection inputs in a terminal form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := o.validate(); err != nil {
				return err
			}
			raw := config.FormatInputs(config.NewInputParser().CreateExampleConfiguration().Scenarios[0].Parameters)
			form, commit := inputForm(&raw)
			if err := form.Run(); err != nil {
				return fmt.Errorf("form aborted: %w", err)
			}
			commit()
			params, err := config.ParseInputs(raw)
			if err != nil {
				return err
			}
			res, err := a.engine().RunSingle(cmd.Context(), domain.Scenario{Name: "Projection", Parameters: params}, a.settings.Currency)
			if err != nil {
				return err
			}
			return a.emit(cmd, res, *o)
		},
	}
	o.bind(cmd)
	return cmd
}

// inputForm builds one text input per field, prefilled from raw and
// validated with the same rules as every other input path. commit copies
// the entered values back into raw.
func inputForm(raw *config.RawInputs) (form *huh.Form, commit func()) {
	values := make([]string, len(config.FieldOrder))
	fields := make([]huh.Field, 0, len(config.FieldOrder))
	for i, name := range config.FieldOrder {
		values[i] = string(raw.Get(name))
		fields = append(fields, huh.NewInput().
			Key(name).
			Title(fieldPrompts[name]).
			Value(&values[i]).
			Validate(fieldValidator(name)))
	}

	commit = func() {
		for i, name := range config.FieldOrder {
			raw.Set(name, config.Field(values[i]))
		}
	}
	return huh.NewForm(huh.NewGroup(fields...)), commit
}

func fieldValidator(name string) func(string) error {
	return func(s string) error {
		return config.CheckField(name, config.Field(s))
	}
}
