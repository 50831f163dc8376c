package output

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/rpgo/swp-projector/internal/domain"
	money "github.com/rpgo/swp-projector/pkg/decimal"
)

// FormatCurrency renders an amount with the currency symbol, thousands
// grouping and two decimals.
func FormatCurrency(amount money.Money, currency domain.Currency) string {
	return amount.Format(currency.OrDefault().Symbol)
}

// FormatAmount renders an amount with grouping but no symbol, for table cells.
func FormatAmount(amount money.Money) string {
	return money.Group(amount.Decimal)
}

// FormatPercentage formats a decimal as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// FormatRate renders a fractional rate (0.12) as a percentage ("12.00%").
func FormatRate(rate decimal.Decimal) string { return FormatPercentage(rate.Mul(decimalHundred)) }

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }
