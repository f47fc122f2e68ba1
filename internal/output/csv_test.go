package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/vcsaturninus/chang-go/internal/changelog"
)

func TestCSVWriter_WritesEntryRows(t *testing.T) {
	report := sampleReport()
	report.Entries = append(report.Entries,
		changelog.Entry{Repo: "gamma", Text: `fix: handle "quoted, values"`})

	path := filepath.Join(t.TempDir(), "changelog.csv")
	if err := (&CSVWriter{}).Write(report, Options{Path: path}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	want := "Repo,Text\n" +
		"alpha,fix: resolve crash\n" +
		"beta,docs: update readme\n" +
		"gamma,\"fix: handle \"\"quoted, values\"\"\"\n"
	if string(data) != want {
		t.Errorf("content = %q, want %q", data, want)
	}
}

func TestCSVWriter_HeaderOnlyForEmptyReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changelog.csv")
	if err := (&CSVWriter{}).Write(&changelog.Report{}, Options{Path: path}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got, want := string(data), "Repo,Text\n"; got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
}
