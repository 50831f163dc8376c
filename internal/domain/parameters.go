package domain

import (
	"github.com/shopspring/decimal"

	money "github.com/rpgo/swp-projector/pkg/decimal"
)

// SimulationParameters holds the assumptions for a single projection run.
// Rates are fractions (0.10 == 10%); amounts are in the report currency.
type SimulationParameters struct {
	InitialInvestment    money.Money     `json:"initial_investment"`
	MonthlyInvestment    money.Money     `json:"monthly_investment"`
	YearlyIncreaseRate   decimal.Decimal `json:"yearly_increase_rate"`
	ExpectedAnnualReturn decimal.Decimal `json:"expected_annual_return"`
	AnnualInflationRate  decimal.Decimal `json:"annual_inflation_rate"`
	HorizonYears         int             `json:"horizon_years"`
	WithdrawalStartYear  int             `json:"withdrawal_start_year"`
	MonthlyWithdrawal    money.Money     `json:"monthly_withdrawal"`
}

var minusOne = decimal.NewFromInt(-1)

// Validate checks the preconditions of the simulator. Every violated field is
// reported in a single *InvalidInputError.
func (p SimulationParameters) Validate() error {
	verr := &InvalidInputError{}

	if p.InitialInvestment.IsNegative() {
		verr.Add(FieldInitialInvestment, p.InitialInvestment.String(), "must not be negative")
	}
	if p.MonthlyInvestment.IsNegative() {
		verr.Add(FieldMonthlyInvestment, p.MonthlyInvestment.String(), "must not be negative")
	}
	if p.MonthlyWithdrawal.IsNegative() {
		verr.Add(FieldMonthlyWithdrawal, p.MonthlyWithdrawal.String(), "must not be negative")
	}
	if p.HorizonYears < 1 {
		verr.Add(FieldHorizonYears, itoa(p.HorizonYears), "must be at least 1")
	}
	if p.WithdrawalStartYear < 1 {
		verr.Add(FieldWithdrawalStartYear, itoa(p.WithdrawalStartYear), "must be at least 1")
	}
	// (1 + inflation)^year is the discount divisor; it has to stay positive.
	if p.AnnualInflationRate.LessThanOrEqual(minusOne) {
		verr.Add(FieldAnnualInflationRate, p.AnnualInflationRate.String(), "must be greater than -100%")
	}

	return verr.OrNil()
}

// WithdrawalNeverStarts reports the degenerate but valid configuration where
// the withdrawal start year lies beyond the horizon.
func (p SimulationParameters) WithdrawalNeverStarts() bool {
	return p.WithdrawalStartYear > p.HorizonYears
}

// Currency controls how amounts are labelled in reports and charts
type Currency struct {
	Symbol string `json:"symbol" yaml:"symbol" toml:"symbol"`
	Code   string `json:"code" yaml:"code" toml:"code"`
}

// DefaultCurrency is the Pakistani rupee, the currency the calculator was
// first built for.
func DefaultCurrency() Currency {
	return Currency{Symbol: "₨", Code: "PKR"}
}

// OrDefault fills empty fields from DefaultCurrency
func (c Currency) OrDefault() Currency {
	d := DefaultCurrency()
	if c.Symbol == "" {
		c.Symbol = d.Symbol
	}
	if c.Code == "" {
		c.Code = d.Code
	}
	return c
}
