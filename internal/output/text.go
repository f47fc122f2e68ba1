package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/vcsaturninus/chang-go/internal/changelog"
)

// headerTimeLayout is the banner date, e.g. "Aug 25 2026".
const headerTimeLayout = "Jan 02 2006"

// TextWriter writes the changelog as plain lines, one commit record per
// line prefixed with the repository it came from. Terminal output gets a
// colored repository label; file sinks stay plain.
type TextWriter struct{}

// Write renders the report to the sink selected by options.
func (w *TextWriter) Write(report *changelog.Report, options Options) error {
	out, file, err := openOutputWriter(options.Path)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}
	return writeText(out, report, file == nil)
}

func writeText(out io.Writer, report *changelog.Report, colored bool) error {
	if report.Range.Bounded() {
		_, err := fmt.Fprintf(out, "~~ Changelog generated %s [%s, %s] ~~\n\n",
			report.GeneratedAt.Format(headerTimeLayout), report.Range.Start, report.Range.End)
		if err != nil {
			return err
		}
	}

	for _, entry := range report.Entries {
		repo := entry.Repo
		if colored {
			repo = color.GreenString("%s", repo)
		}
		if _, err := fmt.Fprintf(out, "[%s] %s\n", repo, entry.Text); err != nil {
			return err
		}
	}
	return nil
}
