package output

import (
	"encoding/csv"
	"os"

	"github.com/vcsaturninus/chang-go/internal/changelog"
)

// CSVWriter writes changelog reports as CSV, one row per entry.
type CSVWriter struct{}

// Write outputs the report as CSV.
func (w *CSVWriter) Write(report *changelog.Report, options Options) error {
	writer, file, err := createCSVWriter(options.Path)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	if err := writer.Write([]string{"Repo", "Text"}); err != nil {
		return err
	}

	for _, entry := range report.Entries {
		if err := writer.Write([]string{entry.Repo, entry.Text}); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}

func createCSVWriter(outputPath string) (*csv.Writer, *os.File, error) {
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return nil, nil, err
		}
		return csv.NewWriter(file), file, nil
	}
	return csv.NewWriter(os.Stdout), nil, nil
}
