package commands

import (
	"errors"
	"fmt"
	"log/slog"

	"git.home.luguber.info/inful/gitsemver/internal/analyze"
	gserrors "git.home.luguber.info/inful/gitsemver/internal/errors"
	"git.home.luguber.info/inful/gitsemver/internal/git"
	"git.home.luguber.info/inful/gitsemver/internal/logfields"
	"git.home.luguber.info/inful/gitsemver/internal/metrics"
)

// AnalyzeCmd implements the 'analyze' command: a one-shot analysis that
// prints only the computed version on stdout so it composes in scripts.
type AnalyzeCmd struct {
	Path         string `arg:"" optional:"" default:"." help:"Path to the git repository"`
	Commit       string `short:"c" name:"commit" help:"Start the history walk at this commit instead of HEAD"`
	Tag          string `short:"t" name:"tag" help:"Start the walk at this tag; the tag name doubles as the previous version"`
	StartVersion string `short:"s" name:"start-version" help:"Previous version hint, overrides the tag name"`
}

func (a *AnalyzeCmd) Run(_ *Global, _ *CLI) error {
	res, err := runAnalysis(a.Path, a.Commit, a.Tag, a.StartVersion)
	if err != nil {
		return err
	}

	slog.Debug("Analysis completed",
		logfields.Repository(a.Path),
		logfields.Branch(res.Branch),
		logfields.Commit(res.Commit),
		slog.Bool("saw_major", res.Flags.Major),
		slog.Bool("saw_minor", res.Flags.Minor),
		slog.Bool("saw_patch", res.Flags.Patch),
		slog.Bool("prerelease", res.Prerelease))

	fmt.Println(res.Version.String())
	return nil
}

// runAnalysis opens the repository and runs one version inference. Shared
// with the watch command.
func runAnalysis(path, commit, tag, startVersion string) (analyze.Result, error) {
	repo, err := git.Open(path)
	if err != nil {
		return analyze.Result{}, gserrors.GitOpenError(path, err)
	}

	point, err := resolvePoint(repo, commit, tag, startVersion)
	if err != nil {
		return analyze.Result{}, err
	}

	analyzer := analyze.New(slog.Default(), metrics.NoopRecorder{})
	res, err := analyzer.Run(repo, point)
	if err != nil {
		var gse *gserrors.GitSemverError
		if errors.As(err, &gse) {
			return analyze.Result{}, err
		}
		return analyze.Result{}, gserrors.AnalysisFailed(path, err)
	}
	return res, nil
}

// resolvePoint derives the walk starting point: an explicit commit takes
// precedence over the tag's commit, an explicit start version over the tag
// name as the previous-version hint.
func resolvePoint(repo *git.Repository, commit, tag, startVersion string) (analyze.Point, error) {
	var point analyze.Point

	if tag != "" {
		tagPoint, err := analyze.TagPoint(repo, tag)
		if err != nil {
			return analyze.Point{}, gserrors.GitRefError(tag, err)
		}
		point = tagPoint
	}

	if commit != "" {
		hash, err := repo.ResolveCommit(commit)
		if err != nil {
			return analyze.Point{}, gserrors.GitRefError(commit, err)
		}
		point.Since = hash
	}

	if startVersion != "" {
		point.Hint = startVersion
	}

	return point, nil
}
