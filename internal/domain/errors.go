package domain

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidInput is matched by every input validation failure
var ErrInvalidInput = errors.New("invalid input")

// Field names used in validation errors. They match the form/config keys.
const (
	FieldInitialInvestment    = "initial_investment"
	FieldMonthlyInvestment    = "monthly_investment"
	FieldYearlyIncreaseRate   = "yearly_increase"
	FieldExpectedAnnualReturn = "expected_return"
	FieldAnnualInflationRate  = "inflation"
	FieldHorizonYears         = "years"
	FieldWithdrawalStartYear  = "swp_start"
	FieldMonthlyWithdrawal    = "monthly_swp"
)

// FieldError describes a single rejected input field
type FieldError struct {
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

func (fe FieldError) Error() string {
	return fe.Field + " " + strconv.Quote(fe.Value) + ": " + fe.Message
}

// InvalidInputError collects all field failures found before a run
type InvalidInputError struct {
	Fields []FieldError `json:"fields"`
}

// Add records a field failure
func (e *InvalidInputError) Add(field, value, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Value: value, Message: message})
}

// Merge appends the failures of another error, skipping fields already reported
func (e *InvalidInputError) Merge(other *InvalidInputError) {
	if other == nil {
		return
	}
	for _, fe := range other.Fields {
		if e.Has(fe.Field) {
			continue
		}
		e.Fields = append(e.Fields, fe)
	}
}

// Has reports whether a field already failed
func (e *InvalidInputError) Has(field string) bool {
	for _, fe := range e.Fields {
		if fe.Field == field {
			return true
		}
	}
	return false
}

// ForField returns the message for a field, or "" if it passed
func (e *InvalidInputError) ForField(field string) string {
	for _, fe := range e.Fields {
		if fe.Field == field {
			return fe.Message
		}
	}
	return ""
}

// OrNil returns nil when no failures were recorded
func (e *InvalidInputError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *InvalidInputError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		parts = append(parts, fe.Error())
	}
	return ErrInvalidInput.Error() + ": " + strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrInvalidInput) match
func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func itoa(i int) string { return strconv.Itoa(i) }
