package repolist

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// Spec identifies one repository to process: where it lives and the short
// name used to label its changelog entries. Specs are immutable once parsed.
type Spec struct {
	Name string
	URL  string
}

func (s Spec) String() string {
	return s.Name
}

// ParseFile reads a repository list from path. See Parse for the format.
func ParseFile(path string, restrict []string) ([]Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open repository list: %w", err)
	}
	defer f.Close()

	specs, err := Parse(f, restrict)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return specs, nil
}

// Parse reads repository locations, one per line. Blank lines and lines
// starting with '#' are skipped. The repository name is derived from the
// last path component of the location, with a trailing ".git" stripped.
//
// When restrict is non-empty only repositories whose name matches one of
// its entries are kept; entries may be exact names or glob patterns.
// Input-list order is preserved either way.
func Parse(r io.Reader, restrict []string) ([]Spec, error) {
	for _, pattern := range restrict {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid repository pattern %q", pattern)
		}
	}

	var specs []Spec
	scanner := bufio.NewScanner(r)
	lineno := 0
	for scanner.Scan() {
		lineno++
		location := strings.TrimSpace(scanner.Text())
		if location == "" || strings.HasPrefix(location, "#") {
			continue
		}

		name := deriveName(location)
		if name == "" {
			return nil, fmt.Errorf("line %d: cannot derive repository name from %q", lineno, location)
		}

		if len(restrict) > 0 && !matchesAny(name, restrict) {
			continue
		}

		specs = append(specs, Spec{Name: name, URL: location})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read repository list: %w", err)
	}

	return specs, nil
}

// deriveName extracts the short repository name from a URL or local path:
// the last '/'-separated component, minus any ".git" extension.
func deriveName(location string) string {
	name := location
	if idx := strings.LastIndexByte(name, '/'); idx != -1 {
		name = name[idx+1:]
	}
	// scp-like syntax (git@host:owner/repo) without any slash after the colon
	if idx := strings.LastIndexByte(name, ':'); idx != -1 {
		name = name[idx+1:]
	}
	return strings.TrimSuffix(name, ".git")
}

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		// patterns are validated up front, so Match cannot fail here
		if ok, _ := doublestar.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
