package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// Repository is a read-only handle on a local git repository.
type Repository struct {
	path string
	repo *git.Repository
}

// Open opens the repository containing path, searching parent
// directories for the .git directory the way the git CLI does. Linked
// worktrees and .git files resolve to their common directory.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		return nil, &OpenError{Path: path, Err: err}
	}
	return &Repository{path: path, repo: repo}, nil
}

// Path returns the path the repository was opened with.
func (r *Repository) Path() string { return r.path }

// HeadCommit returns the commit hash HEAD points at.
func (r *Repository) HeadCommit() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", &RefError{Name: "HEAD", Err: err}
	}
	return ref.Hash().String(), nil
}

// BranchName returns the short name of the checked-out branch, or the
// empty string when HEAD is detached.
func (r *Repository) BranchName() (string, error) {
	ref, err := r.repo.Head()
	if err != nil {
		return "", &RefError{Name: "HEAD", Err: err}
	}
	if !ref.Name().IsBranch() {
		return "", nil
	}
	return ref.Name().Short(), nil
}

// ResolveTag resolves a tag name to the hash of the commit it points at.
// Annotated tags are peeled to their target commit; lightweight tags
// already point at one.
func (r *Repository) ResolveTag(name string) (string, error) {
	ref, err := r.repo.Reference(plumbing.NewTagReferenceName(name), true)
	if err != nil {
		return "", &RefError{Name: name, Err: err}
	}

	tag, err := r.repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		commit, commitErr := tag.Commit()
		if commitErr != nil {
			return "", &RefError{Name: name, Err: commitErr}
		}
		return commit.Hash.String(), nil
	case errors.Is(err, plumbing.ErrObjectNotFound):
		return ref.Hash().String(), nil
	default:
		return "", &RefError{Name: name, Err: err}
	}
}

// ResolveCommit resolves any revision go-git understands (full or
// abbreviated hash, ref name, HEAD~2, ...) to a full commit hash.
func (r *Repository) ResolveCommit(rev string) (string, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return "", &RefError{Name: rev, Err: err}
	}
	return hash.String(), nil
}

// WalkHistory walks the commit history starting at from, children before
// parents in go-git's default log order, invoking fn with each commit's
// hash and raw message. An error returned by fn aborts the walk and is
// returned unchanged.
//
// from must be a full commit hash: go-git treats a zero hash as "start
// at HEAD", which would silently mask a caller bug.
func (r *Repository) WalkHistory(from string, fn func(hash, message string) error) error {
	hash := plumbing.NewHash(from)
	if hash.IsZero() {
		return &WalkError{From: from, Err: fmt.Errorf("not a commit hash")}
	}

	iter, err := r.repo.Log(&git.LogOptions{From: hash})
	if err != nil {
		return &WalkError{From: from, Err: err}
	}
	defer iter.Close()

	return iter.ForEach(func(c *object.Commit) error {
		return fn(c.Hash.String(), c.Message)
	})
}

// GitDir returns the on-disk .git directory backing the repository, for
// callers that watch repository state.
func (r *Repository) GitDir() (string, error) {
	storage, ok := r.repo.Storer.(*filesystem.Storage)
	if !ok {
		return "", fmt.Errorf("repository storage is not on disk")
	}
	return storage.Filesystem().Root(), nil
}
