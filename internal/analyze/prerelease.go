package analyze

import (
	"context"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/gitsemver/internal/logfields"
)

// initialLabel is the prerelease label used when the previous one is
// absent or unusable.
const initialLabel = "pre.0"

// labelPattern splits a prerelease label into everything before the
// trailing digit run (the tag, separator included) and the digit run
// itself (the counter). "pre.2" splits into ("pre.", "2"); "alpha"
// splits into ("alpha", "").
var labelPattern = regexp.MustCompile(`^(.*?)(\d*)$`)

// IsPrerelease reports whether a build from the named branch or ref is a
// prerelease. Any name containing "main" or "master" is a release
// branch; everything else, including the empty name, is a prerelease.
// The match is a plain substring test, so "maintenance" counts as a
// release branch. The policy is fixed; there is no per-branch mapping.
func IsPrerelease(ref string) bool {
	return !strings.Contains(ref, "main") && !strings.Contains(ref, "master")
}

// NextLabel produces the prerelease label that follows previous. The
// trailing digit run is the counter (absent parses as 0) and is
// incremented by one; everything before it is kept verbatim, so the
// separator, if any, already lives inside the tag: "pre.2" → "pre.3",
// "alpha2" → "alpha3", "alpha" → "alpha1". An empty or undecomposable
// previous label resets to "pre.0" with a warning.
func NextLabel(logger *slog.Logger, previous string) string {
	if logger == nil {
		logger = slog.Default()
	}
	if previous == "" {
		logger.LogAttrs(context.Background(), slog.LevelWarn,
			"no previous prerelease label, starting over",
			logfields.Label(initialLabel))
		return initialLabel
	}

	m := labelPattern.FindStringSubmatch(previous)
	if m == nil {
		logger.LogAttrs(context.Background(), slog.LevelWarn,
			"previous prerelease label could not be parsed, starting over",
			logfields.Label(previous))
		return initialLabel
	}

	tag := m[1]
	counter, err := strconv.Atoi(m[2])
	if err != nil {
		counter = 0
	}
	return tag + strconv.Itoa(counter+1)
}
