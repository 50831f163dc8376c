package output

import (
	"fmt"
	"io"

	"github.com/rpgo/swp-projector/internal/domain"
)

// GenerateReportFiles writes timestamped report files into dir and returns
// their names. "all" writes the console, detailed CSV and JSON reports together.
func GenerateReportFiles(results *domain.ScenarioComparison, format, dir string) ([]string, error) {
	names := []string{format}
	if NormalizeFormatName(format) == "all" {
		names = []string{"console", "detailed-csv", "json"}
	}

	var written []string
	for _, name := range names {
		f, err := LookupFormatter(name)
		if err != nil {
			return written, err
		}
		file, err := WriteFormatted(f, results, dir, ExtensionFor(name))
		if err != nil {
			return written, err
		}
		written = append(written, file)
	}
	return written, nil
}

// WriteReport renders a format straight to w
func WriteReport(w io.Writer, results *domain.ScenarioComparison, format string) error {
	f, err := LookupFormatter(format)
	if err != nil {
		return err
	}
	data, err := f.Format(results)
	if err != nil {
		return fmt.Errorf("%s formatter: %w", f.Name(), err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
