package output

import (
	"fmt"
	"strings"

	"github.com/vcsaturninus/chang-go/internal/changelog"
)

// MarkdownWriter writes the changelog as a Markdown document, one section
// per repository in input order. Handy for pasting into release notes or
// committing as CHANGELOG.md.
type MarkdownWriter struct{}

// Write outputs the generation report as Markdown.
func (w *MarkdownWriter) Write(report *changelog.Report, options Options) error {
	out, file, err := openOutputWriter(options.Path)
	if err != nil {
		return err
	}
	if file != nil {
		defer file.Close()
	}

	fmt.Fprintln(out, "# Changelog")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "**Generated:** %s\n\n", report.GeneratedAt.Format(headerTimeLayout))
	if report.Range.Bounded() {
		fmt.Fprintf(out, "**Range:** [%s, %s]\n\n", report.Range.Start, report.Range.End)
	}

	current := ""
	for _, entry := range report.Entries {
		if entry.Repo != current {
			if current != "" {
				fmt.Fprintln(out)
			}
			fmt.Fprintf(out, "## %s\n\n", entry.Repo)
			current = entry.Repo
		}
		fmt.Fprintf(out, "- %s\n", escapeMarkdown(entry.Text))
	}

	if len(report.Failures) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "## Skipped repositories")
		fmt.Fprintln(out)
		for _, f := range report.Failures {
			fmt.Fprintf(out, "- `%s`: %s\n", f.Repo, escapeMarkdown(f.Err.Error()))
		}
	}
	return nil
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"|", "\\|",
		"*", "\\*",
		"_", "\\_",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
