package output

import (
	"fmt"
	"io"
	"os"

	"github.com/vcsaturninus/chang-go/internal/changelog"
)

// Compile-time interface conformance checks.
var (
	_ Writer = (*TextWriter)(nil)
	_ Writer = (*JSONWriter)(nil)
	_ Writer = (*MarkdownWriter)(nil)
	_ Writer = (*CSVWriter)(nil)
)

// Format represents the output format type.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatMarkdown Format = "markdown"
	FormatCSV      Format = "csv"
)

// ParseFormat validates a format name coming from a flag or config file.
// Empty selects the text format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, "":
		return FormatText, nil
	case FormatJSON:
		return FormatJSON, nil
	case FormatMarkdown:
		return FormatMarkdown, nil
	case FormatCSV:
		return FormatCSV, nil
	default:
		return "", fmt.Errorf("unknown output format %q", s)
	}
}

// Options control where a report is written.
type Options struct {
	// Path is the destination file, created or truncated. Empty means
	// stdout.
	Path string
}

// Writer renders a generation report to the configured sink.
type Writer interface {
	Write(report *changelog.Report, options Options) error
}

// NewWriter creates a report writer for the specified format.
func NewWriter(format Format) Writer {
	switch format {
	case FormatJSON:
		return &JSONWriter{}
	case FormatMarkdown:
		return &MarkdownWriter{}
	case FormatCSV:
		return &CSVWriter{}
	default:
		return &TextWriter{}
	}
}

func openOutputWriter(outputPath string) (io.Writer, *os.File, error) {
	if outputPath == "" {
		return os.Stdout, nil, nil
	}
	file, err := os.Create(outputPath)
	if err != nil {
		return nil, nil, err
	}
	return file, file, nil
}
