package git

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrRevisionNotFound   = errors.New("revision not found")
	ErrRangeNotResolvable = errors.New("range not resolvable")
)

// RefreshMode selects how an existing local copy is brought up to date.
type RefreshMode int

const (
	// RefreshFetch fetches remote refs and tags but leaves the local
	// branch tip where it is.
	RefreshFetch RefreshMode = iota
	// RefreshReset fetches, then moves the local branch to the freshly
	// fetched remote tip, discarding local divergence.
	RefreshReset
)

// String returns a string representation of the refresh mode.
func (m RefreshMode) String() string {
	switch m {
	case RefreshFetch:
		return "fetch"
	case RefreshReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Backend names a Client implementation.
type Backend string

const (
	// BackendNative reads and writes repositories in-process.
	BackendNative Backend = "native"
	// BackendCLI shells out to the git executable.
	BackendCLI Backend = "cli"
)

// Client is the version-control collaborator the changelog pipeline talks
// to. Per repository it can ensure a local working copy exists and is
// current, check that a range's endpoints exist and are ordered, and
// summarize history as one-line commit records, newest first.
//
// All errors are returned to the caller, which scopes them to the one
// repository being processed; a Client never aborts the process and never
// retries on its own.
type Client interface {
	// EnsureLocal makes sure path holds an up-to-date clone of the
	// repository at url, cloning it when absent and refreshing it
	// according to mode when present.
	EnsureLocal(ctx context.Context, url, path string, mode RefreshMode) error

	// ValidateRange checks that the query's endpoints resolve to revisions
	// in the repository at path and that Tip descends from Base. It
	// returns ErrRevisionNotFound or ErrRangeNotResolvable accordingly.
	ValidateRange(ctx context.Context, path string, q LogQuery) error

	// CommitLog returns one record per commit in the queried interval,
	// newest first. A record is the commit subject with whitespace
	// collapsed; commits with blank subjects yield no record. Zero
	// records with a nil error is a valid outcome.
	CommitLog(ctx context.Context, path string, q LogQuery) ([]string, error)
}

// Options configure a concrete Client.
type Options struct {
	Backend Backend
	// Timeout bounds each individual repository operation. Zero means
	// no limit.
	Timeout time.Duration
}

// NewClient creates the client for the configured backend. An empty
// backend selects the in-process implementation.
func NewClient(opts Options) (Client, error) {
	switch opts.Backend {
	case BackendNative, "":
		return &NativeClient{Timeout: opts.Timeout}, nil
	case BackendCLI:
		return &ExecClient{Timeout: opts.Timeout}, nil
	default:
		return nil, fmt.Errorf("unknown git backend %q", opts.Backend)
	}
}

// Compile-time interface conformance checks.
var (
	_ Client = (*NativeClient)(nil)
	_ Client = (*ExecClient)(nil)
)

// summaryLine reduces a commit message to its one-line record form: the
// first message line with internal whitespace folded to single spaces.
func summaryLine(message string) string {
	if idx := strings.IndexByte(message, '\n'); idx != -1 {
		message = message[:idx]
	}
	return strings.Join(strings.Fields(message), " ")
}

func opContext(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, timeout)
}
