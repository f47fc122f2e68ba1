package changelog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vcsaturninus/chang-go/internal/filter"
	"github.com/vcsaturninus/chang-go/internal/git"
	"github.com/vcsaturninus/chang-go/internal/repolist"
)

// Progress receives human-oriented narration while repositories are
// processed. Implementations decide where the text lands; the generator
// itself never writes to a stream.
type Progress interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// Entry is one changelog line attributed to the repository it came from.
type Entry struct {
	Repo string
	Text string
}

// Failure records a repository that contributed nothing to the changelog,
// along with the error that stopped it.
type Failure struct {
	Repo string
	Err  error
}

// Report is the outcome of one generation run. Entries keep repository
// input order, newest commit first within each repository. Failures list
// the repositories that were skipped; a report can carry both.
type Report struct {
	GeneratedAt time.Time
	Range       git.RangeSpec
	Entries     []Entry
	Failures    []Failure
}

// Options configure a Generator beyond its git client.
type Options struct {
	// Workdir is where clones are kept, one subdirectory per repository
	// name.
	Workdir string
	// Mode selects how existing clones are refreshed.
	Mode git.RefreshMode
	// Progress, when set, receives narration and per-repository warnings.
	Progress Progress
}

// Generator turns a repository list plus a revision range into a merged
// changelog. One repository failing never stops the others.
type Generator struct {
	client   git.Client
	workdir  string
	mode     git.RefreshMode
	progress Progress
}

// NewGenerator creates a generator that clones and reads through client.
func NewGenerator(client git.Client, opts Options) (*Generator, error) {
	if client == nil {
		return nil, errors.New("git client is required")
	}
	if opts.Workdir == "" {
		return nil, errors.New("workdir is required")
	}
	return &Generator{
		client:   client,
		workdir:  opts.Workdir,
		mode:     opts.Mode,
		progress: opts.Progress,
	}, nil
}

// Generate processes the repositories in order: bring the clone up to
// date, validate the range, extract commit records, filter them. A
// failing repository is reported and skipped; only an unusable workdir
// or a canceled context aborts the whole run.
func (g *Generator) Generate(ctx context.Context, repos []repolist.Spec, rng git.RangeSpec, match, exclude *filter.Set) (*Report, error) {
	if err := os.MkdirAll(g.workdir, 0o755); err != nil {
		return nil, fmt.Errorf("create workdir: %w", err)
	}

	report := &Report{GeneratedAt: time.Now(), Range: rng}
	query := git.ResolveRange(rng)

	for _, spec := range repos {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		records, err := g.collect(ctx, spec, query)
		if err != nil {
			g.warnf("%s: %v", spec.Name, err)
			report.Failures = append(report.Failures, Failure{Repo: spec.Name, Err: err})
			continue
		}

		for _, line := range filter.Apply(records, match, exclude) {
			report.Entries = append(report.Entries, Entry{Repo: spec.Name, Text: line})
		}
	}
	return report, nil
}

// collect runs the per-repository stages in order, stopping at the first
// failed one.
func (g *Generator) collect(ctx context.Context, spec repolist.Spec, query git.LogQuery) ([]string, error) {
	path := filepath.Join(g.workdir, spec.Name)

	g.infof("updating %s from %s", spec.Name, spec.URL)
	if err := g.client.EnsureLocal(ctx, spec.URL, path, g.mode); err != nil {
		return nil, err
	}
	if err := g.client.ValidateRange(ctx, path, query); err != nil {
		return nil, err
	}
	return g.client.CommitLog(ctx, path, query)
}

func (g *Generator) infof(format string, args ...any) {
	if g.progress != nil {
		g.progress.Infof(format, args...)
	}
}

func (g *Generator) warnf(format string, args ...any) {
	if g.progress != nil {
		g.progress.Warnf(format, args...)
	}
}
