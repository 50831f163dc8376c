package web

import (
	"net/http"

	"github.com/rpgo/swp-projector/internal/config"
	"github.com/rpgo/swp-projector/internal/domain"
)

// formField is one input of the projection form
type formField struct {
	Name  string
	Label string
	Hint  string
	Value string
	Error string
}

func rawFromForm(r *http.Request) config.RawInputs {
	var raw config.RawInputs
	for _, name := range config.FieldOrder {
		raw.Set(name, config.Field(r.PostFormValue(name)))
	}
	return raw
}

// formFields lays out the form, attaching per-field messages when verr is set
func formFields(raw config.RawInputs, verr *domain.InvalidInputError) []formField {
	fields := []formField{
		{Name: domain.FieldInitialInvestment, Label: "Initial Investment", Value: string(raw.InitialInvestment)},
		{Name: domain.FieldMonthlyInvestment, Label: "Monthly Investment", Value: string(raw.MonthlyInvestment)},
		{Name: domain.FieldYearlyIncreaseRate, Label: "Yearly Increase", Hint: "%", Value: string(raw.YearlyIncreaseRate)},
		{Name: domain.FieldExpectedAnnualReturn, Label: "Expected Annual Return", Hint: "%", Value: string(raw.ExpectedAnnualReturn)},
		{Name: domain.FieldAnnualInflationRate, Label: "Annual Inflation", Hint: "%", Value: string(raw.AnnualInflationRate)},
		{Name: domain.FieldHorizonYears, Label: "Investment Period", Hint: "years", Value: string(raw.HorizonYears)},
		{Name: domain.FieldWithdrawalStartYear, Label: "SWP Start Year", Value: string(raw.WithdrawalStartYear)},
		{Name: domain.FieldMonthlyWithdrawal, Label: "Monthly SWP Amount", Value: string(raw.MonthlyWithdrawal)},
	}
	if verr != nil {
		for i := range fields {
			fields[i].Error = verr.ForField(fields[i].Name)
		}
	}
	return fields
}

// defaultInputs prefills the form with the first example scenario
func defaultInputs() config.RawInputs {
	example := config.NewInputParser().CreateExampleConfiguration()
	return config.FormatInputs(example.Scenarios[0].Parameters)
}
