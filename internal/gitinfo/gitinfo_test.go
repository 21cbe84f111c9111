package gitinfo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func initRepoWithCommit(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "README.md"), []byte("hello\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	if _, err := wt.Add("README.md"); err != nil {
		t.Fatalf("add: %v", err)
	}
	sig := &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()}
	if _, err := wt.Commit("initial", &git.CommitOptions{Author: sig}); err != nil {
		t.Fatalf("commit: %v", err)
	}
	return dir
}

func TestCollectOutsideRepository(t *testing.T) {
	_, err := Collect(t.TempDir())
	if !errors.Is(err, ErrNotRepository) {
		t.Fatalf("expected ErrNotRepository, got %v", err)
	}
}

func TestCollectCleanRepository(t *testing.T) {
	dir := initRepoWithCommit(t)
	ctx, err := Collect(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Commit == "" {
		t.Fatalf("expected a commit hash")
	}
	if ctx.Branch == "" {
		t.Fatalf("expected a branch name")
	}
	if ctx.Dirty {
		t.Fatalf("fresh commit should be clean")
	}
}

func TestCollectDirtyRepository(t *testing.T) {
	dir := initRepoWithCommit(t)
	if err := os.WriteFile(filepath.Join(dir, "extra.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ctx, err := Collect(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ctx.Dirty {
		t.Fatalf("expected dirty work tree")
	}
}

func TestCollectFromSubdirectory(t *testing.T) {
	dir := initRepoWithCommit(t)
	sub := filepath.Join(dir, "nested", "deep")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	ctx, err := Collect(sub)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ctx.Commit == "" {
		t.Fatalf("expected commit from parent repository")
	}
}

func TestBestEffortNeverFails(t *testing.T) {
	if ctx := BestEffort(t.TempDir()); ctx.Branch != "" || ctx.Commit != "" || ctx.Dirty {
		t.Fatalf("expected empty context, got %+v", ctx)
	}
}
