package analyze

import (
	"context"
	"errors"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/Masterminds/semver/v3"

	gserrors "git.home.luguber.info/inful/gitsemver/internal/errors"
	"git.home.luguber.info/inful/gitsemver/internal/logfields"
	"git.home.luguber.info/inful/gitsemver/internal/metrics"
)

// Source is the repository access layer the engine walks. Implementations
// resolve refs and yield history; the engine never opens the store
// itself. WalkHistory visits commits children before parents in the
// access layer's default log order and returns the callback's error
// unchanged when one aborts the walk.
type Source interface {
	HeadCommit() (string, error)
	BranchName() (string, error)
	ResolveTag(name string) (string, error)
	WalkHistory(from string, fn func(hash, message string) error) error
}

// Point is where an analysis starts: an explicit commit (empty means
// HEAD) plus an optional previous-version hint. An empty hint defaults
// the previous version to 0.0.0.
type Point struct {
	Since string
	Hint  string
}

// TagPoint resolves a tag into a starting point, using the tag name
// itself as the previous-version hint.
func TagPoint(src Source, name string) (Point, error) {
	commit, err := src.ResolveTag(name)
	if err != nil {
		return Point{}, err
	}
	return Point{Since: commit, Hint: name}, nil
}

// Result is the engine's output: the computed version, the bump flags
// observed during the walk, and whether the version is a prerelease.
// Branch and Commit record what was analyzed: the branch name (empty on
// a detached HEAD) and the commit the walk started from.
type Result struct {
	Version    *semver.Version
	Flags      Flags
	Prerelease bool
	Branch     string
	Commit     string
}

// errStopWalk aborts the history walk once a major bump is found;
// continuing cannot change the outcome.
var errStopWalk = errors.New("stop walk")

// Analyzer runs the version inference. One invocation is single-threaded
// and owns its aggregate state exclusively; concurrent Run calls on the
// same Analyzer are safe because all state is local to the call.
type Analyzer struct {
	logger   *slog.Logger
	recorder metrics.Recorder
}

// New creates an Analyzer. A nil logger falls back to slog.Default() and
// a nil recorder to the no-op recorder.
func New(logger *slog.Logger, recorder metrics.Recorder) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	if recorder == nil {
		recorder = metrics.NoopRecorder{}
	}
	return &Analyzer{logger: logger, recorder: recorder}
}

// Run computes the next semantic version for the repository behind src,
// starting at point. The previous-version hint is validated before any
// walk begins; an unparsable hint fails fast. Repository access errors
// propagate unchanged.
func (a *Analyzer) Run(src Source, point Point) (Result, error) {
	start := time.Now()
	result, err := a.run(src, point)
	a.recorder.ObserveAnalysisDuration(time.Since(start))
	if err != nil {
		a.recorder.IncAnalysisOutcome(metrics.OutcomeFailed)
		return Result{}, err
	}
	a.recorder.IncAnalysisOutcome(metrics.OutcomeSuccess)
	return result, nil
}

func (a *Analyzer) run(src Source, point Point) (Result, error) {
	previous, err := previousVersion(point.Hint)
	if err != nil {
		return Result{}, err
	}

	branch, err := src.BranchName()
	if err != nil {
		return Result{}, err
	}
	prerelease := IsPrerelease(branch)

	from := point.Since
	if from == "" {
		from, err = src.HeadCommit()
		if err != nil {
			return Result{}, err
		}
	}

	flags, scanned, err := a.walk(src, from)
	if err != nil {
		return Result{}, err
	}
	a.recorder.AddCommitsScanned(scanned)

	next := NextVersion(a.logger, flags, previous, prerelease)

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "analysis complete",
		logfields.Branch(branch),
		logfields.Commit(from),
		logfields.Version(next.String()),
		logfields.Count(scanned),
	)

	return Result{Version: next, Flags: flags, Prerelease: prerelease, Branch: branch, Commit: from}, nil
}

// walk folds bump flags over the history starting at from, stopping as
// soon as a major bump is observed.
func (a *Analyzer) walk(src Source, from string) (Flags, int, error) {
	var flags Flags
	scanned := 0

	err := src.WalkHistory(from, func(hash, message string) error {
		scanned++
		flags = flags.With(a.classify(hash, message))
		if flags.Major {
			return errStopWalk
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStopWalk) {
		return Flags{}, scanned, err
	}

	return flags, scanned, nil
}

// classify wraps Classify with the malformed-message rule: a message that
// is not valid UTF-8 is logged and treated as no signal, never an error.
func (a *Analyzer) classify(hash, message string) Category {
	if !utf8.ValidString(message) {
		a.logger.LogAttrs(context.Background(), slog.LevelWarn,
			"commit message is not valid UTF-8, ignoring",
			logfields.Commit(hash))
		return CategoryNone
	}
	return Classify(message)
}

// previousVersion parses the hint, tolerating a leading "v". An empty
// hint defaults to 0.0.0.
func previousVersion(hint string) (*semver.Version, error) {
	if hint == "" {
		return semver.New(0, 0, 0, "", ""), nil
	}
	v, err := semver.NewVersion(hint)
	if err != nil {
		return nil, gserrors.InvalidVersion(hint, err)
	}
	return v, nil
}
