package output

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fatih/color"

	"github.com/vcsaturninus/chang-go/internal/changelog"
	"github.com/vcsaturninus/chang-go/internal/git"
)

func sampleReport() *changelog.Report {
	return &changelog.Report{
		GeneratedAt: time.Date(2026, 8, 25, 10, 30, 0, 0, time.UTC),
		Range:       git.RangeSpec{Start: "v1.0", End: "v2.0"},
		Entries: []changelog.Entry{
			{Repo: "alpha", Text: "fix: resolve crash"},
			{Repo: "beta", Text: "docs: update readme"},
		},
	}
}

func TestTextWriter_Write_BoundedRangeGetsHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG")

	if err := (&TextWriter{}).Write(sampleReport(), Options{Path: path}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	want := "~~ Changelog generated Aug 25 2026 [v1.0, v2.0] ~~\n" +
		"\n" +
		"[alpha] fix: resolve crash\n" +
		"[beta] docs: update readme\n"
	if string(data) != want {
		t.Errorf("output = %q, expected %q", data, want)
	}
}

func TestTextWriter_Write_UnboundedRangeOmitsHeader(t *testing.T) {
	tests := []struct {
		name string
		rng  git.RangeSpec
	}{
		{"no endpoints", git.RangeSpec{}},
		{"start only", git.RangeSpec{Start: "v1.0"}},
		{"end only", git.RangeSpec{End: "v2.0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := sampleReport()
			report.Range = tt.rng

			path := filepath.Join(t.TempDir(), "CHANGELOG")
			if err := (&TextWriter{}).Write(report, Options{Path: path}); err != nil {
				t.Fatalf("Write: %v", err)
			}

			data, err := os.ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile: %v", err)
			}
			want := "[alpha] fix: resolve crash\n[beta] docs: update readme\n"
			if string(data) != want {
				t.Errorf("output = %q, expected %q", data, want)
			}
		})
	}
}

func TestTextWriter_Write_HeaderAloneForEmptyReport(t *testing.T) {
	report := sampleReport()
	report.Entries = nil

	path := filepath.Join(t.TempDir(), "CHANGELOG")
	if err := (&TextWriter{}).Write(report, Options{Path: path}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	want := "~~ Changelog generated Aug 25 2026 [v1.0, v2.0] ~~\n\n"
	if string(data) != want {
		t.Errorf("output = %q, expected %q", data, want)
	}
}

func TestTextWriter_Write_TruncatesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CHANGELOG")
	if err := os.WriteFile(path, []byte("stale content from a previous run\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	report := sampleReport()
	report.Range = git.RangeSpec{}
	report.Entries = report.Entries[:1]

	if err := (&TextWriter{}).Write(report, Options{Path: path}); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if want := "[alpha] fix: resolve crash\n"; string(data) != want {
		t.Errorf("output = %q, expected %q", data, want)
	}
}

func TestWriteText_ColoredMatchesPlainWhenColorDisabled(t *testing.T) {
	restore := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = restore }()

	var colored, plain bytes.Buffer
	report := sampleReport()

	if err := writeText(&colored, report, true); err != nil {
		t.Fatalf("writeText(colored): %v", err)
	}
	if err := writeText(&plain, report, false); err != nil {
		t.Fatalf("writeText(plain): %v", err)
	}

	if colored.String() != plain.String() {
		t.Errorf("colored output = %q, expected %q", colored.String(), plain.String())
	}
}
