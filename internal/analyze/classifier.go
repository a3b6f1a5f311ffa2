package analyze

import (
	"regexp"
	"strings"
)

// Category is the version-bump signal carried by a single commit message.
type Category string

const (
	CategoryNone  Category = "none"
	CategoryPatch Category = "patch"
	CategoryMinor Category = "minor"
	CategoryMajor Category = "major"
)

var (
	minorPattern = regexp.MustCompile(`^feat.*:`)
	patchPattern = regexp.MustCompile(`^fix.*:`)
)

// Classify maps one raw commit message to a bump category. First match
// wins, evaluated major, minor, patch:
//
//   - major: the message contains the literal "!:" anywhere. This is a
//     substring test, not anchored, so a "!:" later in the text also
//     qualifies.
//   - minor: the message starts with "feat" followed by a colon somewhere
//     on the first line (matches "feat:", "feat(scope):", "feature:").
//   - patch: same with "fix".
//
// Everything else is none, including "chore:" commits, free-text headers,
// empty messages, and merge commits ("Merge " defeats the anchored
// patterns even when "feat:" appears later in the message).
func Classify(message string) Category {
	switch {
	case strings.Contains(message, "!:"):
		return CategoryMajor
	case minorPattern.MatchString(message):
		return CategoryMinor
	case patchPattern.MatchString(message):
		return CategoryPatch
	default:
		return CategoryNone
	}
}
