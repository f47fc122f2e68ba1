package git

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// repoFixture wraps a throwaway repository with helpers that keep
// committer timestamps strictly increasing, so committer-time ordering
// is deterministic in tests.
type repoFixture struct {
	t    *testing.T
	dir  string
	repo *gogit.Repository
	wt   *gogit.Worktree
	seq  int
	when time.Time
}

func newRepoFixture(t *testing.T) *repoFixture {
	t.Helper()

	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree: %v", err)
	}
	return &repoFixture{
		t:    t,
		dir:  dir,
		repo: repo,
		wt:   wt,
		when: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

// commit writes a uniquely named file and commits it with the given
// message, one minute after the previous commit.
func (f *repoFixture) commit(msg string) plumbing.Hash {
	f.t.Helper()

	f.seq++
	rel := fmt.Sprintf("file%d.txt", f.seq)
	if err := os.WriteFile(filepath.Join(f.dir, rel), []byte(msg+"\n"), 0o644); err != nil {
		f.t.Fatalf("WriteFile: %v", err)
	}
	if _, err := f.wt.Add(rel); err != nil {
		f.t.Fatalf("Add: %v", err)
	}

	f.when = f.when.Add(time.Minute)
	sig := &object.Signature{Name: "Test", Email: "test@example.com", When: f.when}
	hash, err := f.wt.Commit(msg, &gogit.CommitOptions{Author: sig, Committer: sig})
	if err != nil {
		f.t.Fatalf("Commit: %v", err)
	}
	return hash
}

func (f *repoFixture) tag(name string, hash plumbing.Hash) {
	f.t.Helper()
	if _, err := f.repo.CreateTag(name, hash, nil); err != nil {
		f.t.Fatalf("CreateTag(%s): %v", name, err)
	}
}

func (f *repoFixture) annotatedTag(name string, hash plumbing.Hash) {
	f.t.Helper()
	_, err := f.repo.CreateTag(name, hash, &gogit.CreateTagOptions{
		Tagger:  &object.Signature{Name: "Test", Email: "test@example.com", When: f.when},
		Message: name,
	})
	if err != nil {
		f.t.Fatalf("CreateTag(%s): %v", name, err)
	}
}

func (f *repoFixture) headBranch() string {
	f.t.Helper()
	head, err := f.repo.Head()
	if err != nil {
		f.t.Fatalf("Head: %v", err)
	}
	return head.Name().Short()
}

func (f *repoFixture) checkoutNew(branch string) {
	f.t.Helper()
	err := f.wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
		Create: true,
	})
	if err != nil {
		f.t.Fatalf("Checkout(%s): %v", branch, err)
	}
}

func (f *repoFixture) checkout(branch string) {
	f.t.Helper()
	err := f.wt.Checkout(&gogit.CheckoutOptions{
		Branch: plumbing.NewBranchReferenceName(branch),
	})
	if err != nil {
		f.t.Fatalf("Checkout(%s): %v", branch, err)
	}
}
