package output

import (
	"bytes"
	"encoding/csv"

	"github.com/rpgo/swp-projector/internal/domain"
	"github.com/rpgo/swp-projector/pkg/dateutil"
)

// CSVDetailedExporter writes the raw monthly projection of every scenario.
type CSVDetailedExporter struct{}

func (c CSVDetailedExporter) Name() string { return "detailed-csv" }

func (c CSVDetailedExporter) Format(results *domain.ScenarioComparison) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"Scenario", "Year", "Month", "MonthOfYear", "PortfolioValue", "CumulativeInvested", "Withdrawal", "InflationAdjustedValue", "WithdrawalActive"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, sc := range results.Scenarios {
		for _, m := range sc.Projection {
			row := []string{
				sc.Name,
				intToString(m.Year),
				intToString(m.Month),
				intToString(dateutil.MonthOfYear(m.Month)),
				m.PortfolioValue.String(),
				m.CumulativeInvested.String(),
				m.WithdrawalThisMonth.String(),
				m.InflationAdjustedValue.String(),
				boolToString(m.WithdrawalActive),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
