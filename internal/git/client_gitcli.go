package git

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"
)

// ExecClient implements Client by invoking the git executable. It covers
// clones that rely on features the in-process walker does not handle,
// such as shallow history or alternate object stores.
type ExecClient struct {
	// Timeout bounds each git invocation. Zero means no limit.
	Timeout time.Duration
}

func (c *ExecClient) EnsureLocal(ctx context.Context, url, path string, mode RefreshMode) error {
	if fi, err := os.Stat(path); err == nil && !fi.IsDir() {
		if err := os.Remove(path); err != nil {
			return fmt.Errorf("remove stale path %s: %w", path, err)
		}
	}

	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("stat %s: %w", path, err)
		}
		if _, err := c.run(ctx, "clone", url, path); err != nil {
			return fmt.Errorf("clone %s: %w", url, err)
		}
		return nil
	}

	if _, err := c.run(ctx, "-C", path, "fetch", "--all", "--tags", "--force"); err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}

	if mode == RefreshReset {
		branch, err := c.run(ctx, "-C", path, "rev-parse", "--abbrev-ref", "HEAD")
		if err != nil {
			return fmt.Errorf("reset %s: %w", path, err)
		}
		branch = strings.TrimSpace(branch)
		if branch == "" || branch == "HEAD" {
			return fmt.Errorf("reset %s: HEAD is not on a branch", path)
		}
		if _, err := c.run(ctx, "-C", path, "reset", "--hard", remoteName+"/"+branch); err != nil {
			return fmt.Errorf("reset %s: %w", path, err)
		}
	}
	return nil
}

func (c *ExecClient) ValidateRange(ctx context.Context, path string, q LogQuery) error {
	tip := tipLabel(q)
	if err := c.verifyCommit(ctx, path, tip); err != nil {
		return err
	}
	if q.Base == "" {
		return nil
	}
	if err := c.verifyCommit(ctx, path, q.Base); err != nil {
		return err
	}
	if _, err := c.run(ctx, "-C", path, "merge-base", "--is-ancestor", q.Base, tip); err != nil {
		return fmt.Errorf("%w: %s does not descend from %s", ErrRangeNotResolvable, tip, q.Base)
	}
	return nil
}

func (c *ExecClient) CommitLog(ctx context.Context, path string, q LogQuery) ([]string, error) {
	if err := c.ValidateRange(ctx, path, q); err != nil {
		return nil, err
	}

	// Excluding the base's parents (base^@) rather than the base itself
	// keeps the interval closed on both ends. For a root commit base^@
	// expands to nothing, which degenerates to the full history.
	args := []string{"-C", path, "log", "--oneline", "--no-color", "--no-decorate", tipLabel(q)}
	if q.Base != "" {
		args = append(args, "--not", q.Base+"^@")
	}
	out, err := c.run(ctx, args...)
	if err != nil {
		return nil, fmt.Errorf("log %s: %w", path, err)
	}
	return parseOnelineLog(out), nil
}

func (c *ExecClient) verifyCommit(ctx context.Context, path, rev string) error {
	if _, err := c.run(ctx, "-C", path, "rev-parse", "--verify", "--quiet", rev+"^{commit}"); err != nil {
		return fmt.Errorf("%w: %s", ErrRevisionNotFound, rev)
	}
	return nil
}

// run invokes git with args and returns its combined output. Failures
// carry whatever git printed so the caller's wrap stays informative.
func (c *ExecClient) run(ctx context.Context, args ...string) (string, error) {
	ctx, cancel := opContext(ctx, c.Timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "git", args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return string(out), nil
}

// parseOnelineLog strips the abbreviated hash from each --oneline record
// and normalizes the remaining subject whitespace. Hash-only lines, left
// behind by commits with empty subjects, are dropped.
func parseOnelineLog(out string) []string {
	var records []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		records = append(records, strings.Join(fields[1:], " "))
	}
	return records
}
