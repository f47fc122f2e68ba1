package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

const remoteName = "origin"

// NativeClient implements Client in-process. Repositories are cloned,
// fetched and walked without ever invoking the git executable.
type NativeClient struct {
	// Timeout bounds each operation. Zero means no limit.
	Timeout time.Duration
}

// EnsureLocal clones the repository at url into path when absent, or
// refreshes the existing clone according to mode.
func (c *NativeClient) EnsureLocal(ctx context.Context, url, path string, mode RefreshMode) error {
	ctx, cancel := opContext(ctx, c.Timeout)
	defer cancel()

	// a stale non-directory at the target path is removed so the clone
	// can take its place
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove stale path %s: %w", path, err)
		}
	}

	repo, err := git.PlainOpen(path)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		if _, err := git.PlainCloneContext(ctx, path, false, &git.CloneOptions{
			URL:  url,
			Tags: git.AllTags,
		}); err != nil {
			return fmt.Errorf("clone %s: %w", url, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	err = repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remoteName,
		Tags:       git.AllTags,
		Force:      true,
	})
	if err != nil && !errors.Is(err, git.NoErrAlreadyUpToDate) {
		return fmt.Errorf("fetch %s: %w", url, err)
	}

	if mode == RefreshReset {
		if err := resetToRemoteTip(repo); err != nil {
			return fmt.Errorf("reset %s: %w", path, err)
		}
	}
	return nil
}

// ValidateRange resolves the query's endpoints in the repository at path
// and checks that Tip descends from Base.
func (c *NativeClient) ValidateRange(ctx context.Context, path string, q LogQuery) error {
	ctx, cancel := opContext(ctx, c.Timeout)
	defer cancel()

	repo, err := git.PlainOpen(path)
	if err != nil {
		return fmt.Errorf("open %s: %w", path, err)
	}

	tip, err := tipCommit(repo, q)
	if err != nil {
		return err
	}
	if q.Base == "" {
		return nil
	}
	base, err := resolveCommit(repo, q.Base)
	if err != nil {
		return err
	}

	reach, err := reachableFrom(ctx, tip)
	if err != nil {
		return fmt.Errorf("walk history: %w", err)
	}
	if _, ok := reach[base.Hash]; !ok {
		return fmt.Errorf("%w: %s does not descend from %s", ErrRangeNotResolvable, tipLabel(q), q.Base)
	}
	return nil
}

// CommitLog walks history from the query's tip, newest first, skipping
// everything below the base, and returns the surviving commit subjects.
func (c *NativeClient) CommitLog(ctx context.Context, path string, q LogQuery) ([]string, error) {
	ctx, cancel := opContext(ctx, c.Timeout)
	defer cancel()

	repo, err := git.PlainOpen(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	tip, err := tipCommit(repo, q)
	if err != nil {
		return nil, err
	}

	// Commits reachable from the base, except the base itself, fall
	// outside the closed interval.
	var excluded map[plumbing.Hash]struct{}
	var baseHash plumbing.Hash
	haveBase := q.Base != ""
	if haveBase {
		base, err := resolveCommit(repo, q.Base)
		if err != nil {
			return nil, err
		}
		baseHash = base.Hash
		excluded, err = reachableFrom(ctx, base)
		if err != nil {
			return nil, fmt.Errorf("walk history: %w", err)
		}
		delete(excluded, baseHash)
	}

	iter, err := repo.Log(&git.LogOptions{From: tip.Hash, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("log %s: %w", path, err)
	}
	defer iter.Close()

	var records []string
	sawBase := false
	err = iter.ForEach(func(cm *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if _, skip := excluded[cm.Hash]; skip {
			return nil
		}
		if haveBase && cm.Hash == baseHash {
			sawBase = true
		}
		if line := summaryLine(cm.Message); line != "" {
			records = append(records, line)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk history: %w", err)
	}
	if haveBase && !sawBase {
		return nil, fmt.Errorf("%w: %s does not descend from %s", ErrRangeNotResolvable, tipLabel(q), q.Base)
	}
	return records, nil
}

// resetToRemoteTip moves the checked-out branch ref to its remote-tracking
// counterpart. Only the ref moves; history extraction never looks at
// worktree files.
func resetToRemoteTip(repo *git.Repository) error {
	head, err := repo.Head()
	if err != nil {
		return err
	}
	if !head.Name().IsBranch() {
		return fmt.Errorf("HEAD is not on a branch")
	}
	branch := head.Name().Short()

	remote, err := repo.Reference(plumbing.NewRemoteReferenceName(remoteName, branch), true)
	if err != nil {
		return fmt.Errorf("remote tip for %s: %w", branch, err)
	}
	return repo.Storer.SetReference(plumbing.NewHashReference(head.Name(), remote.Hash()))
}

// tipCommit resolves the walk tip: the named revision, or the current
// branch head when the query leaves it empty.
func tipCommit(repo *git.Repository, q LogQuery) (*object.Commit, error) {
	if q.Tip != "" {
		return resolveCommit(repo, q.Tip)
	}
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve branch head: %w", err)
	}
	commit, err := repo.CommitObject(head.Hash())
	if err != nil {
		return nil, fmt.Errorf("head commit: %w", err)
	}
	return commit, nil
}

// resolveCommit resolves a revision string (hash, branch or tag name) to
// its commit, peeling annotated tags.
func resolveCommit(repo *git.Repository, rev string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRevisionNotFound, rev)
	}
	if commit, err := repo.CommitObject(*hash); err == nil {
		return commit, nil
	}
	tag, err := repo.TagObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRevisionNotFound, rev)
	}
	commit, err := tag.Commit()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrRevisionNotFound, rev)
	}
	return commit, nil
}

// reachableFrom collects every commit hash reachable from start, start
// included.
func reachableFrom(ctx context.Context, start *object.Commit) (map[plumbing.Hash]struct{}, error) {
	seen := make(map[plumbing.Hash]struct{})
	iter := object.NewCommitPreorderIter(start, nil, nil)
	defer iter.Close()

	err := iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[c.Hash] = struct{}{}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seen, nil
}

func tipLabel(q LogQuery) string {
	if q.Tip == "" {
		return "HEAD"
	}
	return q.Tip
}
