// Package gitinfo collects lightweight repository context (branch, commit,
// dirty flag) for guard predicates, run reports and doctor output.
package gitinfo

import (
	"errors"

	git "github.com/go-git/go-git/v5"
)

// Context describes the repository state at the time of a run.
type Context struct {
	Branch string `json:"branch,omitempty"`
	Commit string `json:"commit,omitempty"`
	Dirty  bool   `json:"dirty,omitempty"`
}

// ErrNotRepository is returned when dir is not inside a git work tree.
var ErrNotRepository = errors.New("not a git repository")

// Collect inspects the repository containing dir. Callers that can run
// outside a repository should treat ErrNotRepository as an empty Context.
func Collect(dir string) (Context, error) {
	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return Context{}, ErrNotRepository
		}
		return Context{}, err
	}
	var ctx Context
	head, err := repo.Head()
	if err != nil {
		// Fresh repository without commits: empty but valid context.
		return ctx, nil
	}
	ctx.Commit = head.Hash().String()
	if head.Name().IsBranch() {
		ctx.Branch = head.Name().Short()
	}
	wt, err := repo.Worktree()
	if err != nil {
		return ctx, nil
	}
	st, err := wt.Status()
	if err != nil {
		return ctx, nil
	}
	ctx.Dirty = !st.IsClean()
	return ctx, nil
}

// BestEffort returns the context for dir, or an empty one when dir is not in
// a repository or the inspection fails.
func BestEffort(dir string) Context {
	ctx, err := Collect(dir)
	if err != nil {
		return Context{}
	}
	return ctx
}
