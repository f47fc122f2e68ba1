package filter

import (
	"regexp"
	"strings"
)

// Set is an ordered list of compiled patterns applied to commit lines.
// A nil or empty Set matches vacuously: every line passes an empty
// match-set and an empty exclude-set, so "no filters" means "keep everything".
type Set struct {
	patterns []*regexp.Regexp
}

// Compile builds a Set from a list of regex pattern strings.
// Patterns are compiled as case-insensitive. Blank entries are skipped.
// Returns an error on the first pattern that fails to compile, so bad
// configuration is reported before any repository is processed.
func Compile(patterns []string) (*Set, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		// Add case-insensitive flag if not already present
		if !strings.HasPrefix(p, "(?i)") {
			p = "(?i)" + p
		}
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		compiled = append(compiled, re)
	}
	return &Set{patterns: compiled}, nil
}

// Len returns the number of compiled patterns.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return len(s.patterns)
}

// MatchesAll returns true iff every pattern in the set is found somewhere
// in line. An empty set is vacuously satisfied.
func (s *Set) MatchesAll(line string) bool {
	if s == nil {
		return true
	}
	for _, re := range s.patterns {
		if !re.MatchString(line) {
			return false
		}
	}
	return true
}

// MatchesNone returns true iff no pattern in the set is found anywhere
// in line. An empty set is vacuously satisfied.
func (s *Set) MatchesNone(line string) bool {
	if s == nil {
		return true
	}
	for _, re := range s.patterns {
		if re.MatchString(line) {
			return false
		}
	}
	return true
}

// Retain reports whether a commit line survives filtering: it must contain
// every match pattern and none of the exclude patterns.
func Retain(line string, match, exclude *Set) bool {
	return match.MatchesAll(line) && exclude.MatchesNone(line)
}

// Apply filters lines through the match and exclude sets in a single pass,
// preserving input order. Each line is evaluated independently; applying the
// same sets to the result returns it unchanged.
func Apply(lines []string, match, exclude *Set) []string {
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if Retain(line, match, exclude) {
			kept = append(kept, line)
		}
	}
	return kept
}
