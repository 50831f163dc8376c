package chart

import (
	"fmt"

	"github.com/rpgo/swp-projector/internal/domain"
	"github.com/rpgo/swp-projector/pkg/dateutil"
)

// Title is shown above every growth chart
const Title = "Investment Growth Over Time"

// RGB is a dataset line color
type RGB struct {
	R, G, B uint8
}

// CSS renders the color as a CSS rgb() value
func (c RGB) CSS() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// Hex renders the color as #rrggbb for terminal styles
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

var (
	PortfolioColor = RGB{75, 192, 192}
	InflationColor = RGB{255, 99, 132}
)

// Dataset is one plotted line
type Dataset struct {
	Label  string
	Color  RGB
	Values []float64
}

// Series is everything a canvas needs to draw one chart
type Series struct {
	Title    string
	Currency domain.Currency
	Labels   []string
	Datasets []Dataset
}

// Len returns the number of points on the x axis
func (s Series) Len() int {
	return len(s.Labels)
}

// BuildSeries turns a projection into a two-line chart of nominal and
// inflation-adjusted value, one point per month.
func BuildSeries(projection domain.Projection, currency domain.Currency) Series {
	currency = currency.OrDefault()
	labels := make([]string, len(projection))
	nominal := make([]float64, len(projection))
	adjusted := make([]float64, len(projection))
	for i, s := range projection {
		labels[i] = dateutil.Label(s.Year, s.Month)
		nominal[i] = s.PortfolioValue.Round().InexactFloat64()
		adjusted[i] = s.InflationAdjustedValue.Round().InexactFloat64()
	}
	return Series{
		Title:    Title,
		Currency: currency,
		Labels:   labels,
		Datasets: []Dataset{
			{Label: fmt.Sprintf("Portfolio Value (%s)", currency.Code), Color: PortfolioColor, Values: nominal},
			{Label: fmt.Sprintf("Inflation-Adjusted (%s)", currency.Code), Color: InflationColor, Values: adjusted},
		},
	}
}
