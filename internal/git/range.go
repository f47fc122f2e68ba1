package git

import "strings"

// RangeSpec is the caller-supplied history range: start and end revision
// identifiers (commit hashes or tag names), each independently optional.
// The four legal states are (none, none) for full history, (start, none)
// for start up to the branch tip, (none, end) for the first commit up to
// end, and (start, end) for the closed interval between the two.
type RangeSpec struct {
	Start string
	End   string
}

// Bounded reports whether both endpoints are set, which is when generated
// changelogs carry a header naming the interval.
func (r RangeSpec) Bounded() bool {
	return strings.TrimSpace(r.Start) != "" && strings.TrimSpace(r.End) != ""
}

// LogQuery is the bounded history walk handed to a log backend. Tip is the
// newest revision included, the current branch head when empty. Base is the
// oldest revision included; commits reachable from Base other than Base
// itself fall outside the query. An all-empty query means full history.
type LogQuery struct {
	Tip  string
	Base string
}

// ResolveRange packages a RangeSpec into the LogQuery consumed by a log
// backend: end becomes the walk tip, start becomes the inclusive floor.
// Identifiers are trimmed but not looked up; whether they exist in a given
// repository is the backend's call to make, per repository.
func ResolveRange(r RangeSpec) LogQuery {
	return LogQuery{
		Tip:  strings.TrimSpace(r.End),
		Base: strings.TrimSpace(r.Start),
	}
}
