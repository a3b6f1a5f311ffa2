package analyze

import (
	"log/slog"

	"github.com/Masterminds/semver/v3"
)

// NextVersion combines the accumulated bump flags with the previous
// version into the next one. Precedence is strictly hierarchical:
//
//	major → (prev.major+1).0.0
//	minor → prev.major.(prev.minor+1).0
//	patch → prev.major.prev.minor.(prev.patch+1)
//	none  → 0.0.0
//
// A walk with no conventional-commit signal deliberately collapses to
// 0.0.0 instead of repeating the previous version. When prerelease is
// set the new version carries NextLabel of the previous version's
// prerelease label. Build metadata is always empty.
func NextVersion(logger *slog.Logger, flags Flags, prev *semver.Version, prerelease bool) *semver.Version {
	var major, minor, patch uint64

	switch {
	case flags.Major:
		major = prev.Major() + 1
	case flags.Minor:
		major = prev.Major()
		minor = prev.Minor() + 1
	case flags.Patch:
		major = prev.Major()
		minor = prev.Minor()
		patch = prev.Patch() + 1
	}

	label := ""
	if prerelease {
		label = NextLabel(logger, prev.Prerelease())
	}

	return semver.New(major, minor, patch, label, "")
}
