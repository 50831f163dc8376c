package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/swp-projector/internal/domain"
)

// CSVSummarizer writes one row per scenario year.
type CSVSummarizer struct{}

func (c CSVSummarizer) Name() string { return "csv" }

func (c CSVSummarizer) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "TotalInvested", "PortfolioValue", "InflationAdjustedValue", "Withdrawals"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range results.Scenarios {
		for _, y := range sc.Years {
			row := []string{
				sc.Name,
				intToString(y.Year),
				y.CumulativeInvested.String(),
				y.PortfolioValue.String(),
				y.InflationAdjustedValue.String(),
				y.Withdrawals.String(),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
