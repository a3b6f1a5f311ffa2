package commands

import (
	"errors"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"

	gserrors "git.home.luguber.info/inful/gitsemver/internal/errors"
	"git.home.luguber.info/inful/gitsemver/internal/git"
)

func initTestRepo(t *testing.T) (string, *gogit.Repository, *gogit.Worktree) {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)
	return dir, repo, wt
}

func addCommit(t *testing.T, wt *gogit.Worktree, message string) plumbing.Hash {
	t.Helper()
	hash, err := wt.Commit(message, &gogit.CommitOptions{
		Author: &object.Signature{
			Name:  "tester",
			Email: "tester@example.invalid",
			When:  time.Now(),
		},
		AllowEmptyCommits: true,
	})
	require.NoError(t, err)
	return hash
}

func TestRunAnalysis_HeadWalk(t *testing.T) {
	dir, _, wt := initTestRepo(t)
	addCommit(t, wt, "chore: init")
	addCommit(t, wt, "fix: handle empty input")
	addCommit(t, wt, "feat: add json output")

	res, err := runAnalysis(dir, "", "", "")
	require.NoError(t, err)
	require.Equal(t, "0.1.0", res.Version.String())
	require.Equal(t, "master", res.Branch)
	require.False(t, res.Prerelease)
}

func TestRunAnalysis_StartVersionHint(t *testing.T) {
	dir, _, wt := initTestRepo(t)
	addCommit(t, wt, "fix: corner case")

	res, err := runAnalysis(dir, "", "", "v2.1.0")
	require.NoError(t, err)
	require.Equal(t, "2.1.1", res.Version.String())
}

func TestRunAnalysis_NotARepository(t *testing.T) {
	_, err := runAnalysis(t.TempDir(), "", "", "")
	require.Error(t, err)

	var gse *gserrors.GitSemverError
	require.True(t, errors.As(err, &gse))
	require.Equal(t, gserrors.CategoryGit, gse.Category)
}

func TestRunAnalysis_InvalidHint(t *testing.T) {
	dir, _, wt := initTestRepo(t)
	addCommit(t, wt, "chore: init")

	_, err := runAnalysis(dir, "", "", "not-a-version")
	require.Error(t, err)

	var gse *gserrors.GitSemverError
	require.True(t, errors.As(err, &gse))
	require.Equal(t, gserrors.CategoryValidation, gse.Category)
}

func TestResolvePoint_CommitOverridesTagCommit(t *testing.T) {
	dir, gr, wt := initTestRepo(t)
	first := addCommit(t, wt, "fix: tagged work")
	_, err := gr.CreateTag("v1.0.0", first, nil)
	require.NoError(t, err)
	second := addCommit(t, wt, "feat: newer work")

	repo, err := git.Open(dir)
	require.NoError(t, err)

	point, err := resolvePoint(repo, second.String(), "v1.0.0", "")
	require.NoError(t, err)
	require.Equal(t, second.String(), point.Since)
	require.Equal(t, "v1.0.0", point.Hint)
}

func TestResolvePoint_UnknownTag(t *testing.T) {
	dir, _, wt := initTestRepo(t)
	addCommit(t, wt, "chore: init")

	repo, err := git.Open(dir)
	require.NoError(t, err)

	_, err = resolvePoint(repo, "", "v9.9.9", "")
	require.Error(t, err)

	var gse *gserrors.GitSemverError
	require.True(t, errors.As(err, &gse))
	require.Equal(t, gserrors.CategoryGit, gse.Category)
}

func TestAnalyzeCmd_Run(t *testing.T) {
	dir, _, wt := initTestRepo(t)
	addCommit(t, wt, "feat: first feature")

	cmd := &AnalyzeCmd{Path: dir}
	require.NoError(t, cmd.Run(&Global{}, &CLI{}))
}
