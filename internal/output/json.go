package output

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/vcsaturninus/chang-go/internal/changelog"
)

// JSONWriter writes generation reports as JSON.
type JSONWriter struct{}

// JSONReport is the JSON output structure for a generation run.
type JSONReport struct {
	GeneratedAt  string        `json:"generatedAt"`
	Start        string        `json:"start,omitempty"`
	End          string        `json:"end,omitempty"`
	TotalEntries int           `json:"totalEntries"`
	Entries      []JSONEntry   `json:"entries"`
	Failures     []JSONFailure `json:"failures,omitempty"`
}

// JSONEntry is the JSON output structure for a single changelog line.
type JSONEntry struct {
	Repo string `json:"repo"`
	Text string `json:"text"`
}

// JSONFailure is the JSON output structure for a skipped repository.
type JSONFailure struct {
	Repo  string `json:"repo"`
	Error string `json:"error"`
}

// Write outputs the generation report as JSON.
func (w *JSONWriter) Write(report *changelog.Report, options Options) error {
	entries := make([]JSONEntry, len(report.Entries))
	for i, e := range report.Entries {
		entries[i] = JSONEntry{Repo: e.Repo, Text: e.Text}
	}

	var failures []JSONFailure
	for _, f := range report.Failures {
		failures = append(failures, JSONFailure{Repo: f.Repo, Error: f.Err.Error()})
	}

	jsonReport := JSONReport{
		GeneratedAt:  report.GeneratedAt.Format(time.RFC3339),
		Start:        report.Range.Start,
		End:          report.Range.End,
		TotalEntries: len(report.Entries),
		Entries:      entries,
		Failures:     failures,
	}

	return writeJSON(jsonReport, options.Path)
}

func writeJSON(data any, outputPath string) error {
	encoder := json.NewEncoder(os.Stdout)
	if outputPath != "" {
		file, err := os.Create(outputPath)
		if err != nil {
			return err
		}
		defer file.Close()
		encoder = json.NewEncoder(file)
	}

	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}
