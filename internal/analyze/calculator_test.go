package analyze

import (
	"testing"

	"github.com/Masterminds/semver/v3"
	"github.com/stretchr/testify/require"
)

func mustVersion(t *testing.T, s string) *semver.Version {
	t.Helper()
	v, err := semver.NewVersion(s)
	require.NoError(t, err)
	return v
}

func TestNextVersion_PatchBump_IncrementsPatchOnly(t *testing.T) {
	prev := mustVersion(t, "1.2.5")

	next := NextVersion(discardLogger(), Flags{Patch: true}, prev, false)

	require.Equal(t, "1.2.6", next.String())
}

func TestNextVersion_MinorBump_ResetsPatch(t *testing.T) {
	prev := mustVersion(t, "1.2.0")

	next := NextVersion(discardLogger(), Flags{Minor: true}, prev, false)

	require.Equal(t, "1.3.0", next.String())
}

func TestNextVersion_MajorBump_ResetsMinorAndPatch(t *testing.T) {
	prev := mustVersion(t, "1.0.0")

	next := NextVersion(discardLogger(), Flags{Major: true}, prev, false)

	require.Equal(t, "2.0.0", next.String())
}

func TestNextVersion_MajorDominates_RegardlessOfOtherFlags(t *testing.T) {
	prev := mustVersion(t, "1.4.7")

	next := NextVersion(discardLogger(), Flags{Major: true, Minor: true, Patch: true}, prev, false)

	require.Equal(t, "2.0.0", next.String())
}

func TestNextVersion_MinorWinsOverPatch(t *testing.T) {
	prev := mustVersion(t, "1.2.3")

	next := NextVersion(discardLogger(), Flags{Minor: true, Patch: true}, prev, false)

	require.Equal(t, "1.3.0", next.String())
}

func TestNextVersion_NoSignal_CollapsesToZero(t *testing.T) {
	// A history with no conventional-commit signal yields 0.0.0, it does
	// not repeat the previous version.
	prev := mustVersion(t, "3.9.4")

	next := NextVersion(discardLogger(), Flags{}, prev, false)

	require.Equal(t, "0.0.0", next.String())
}

func TestNextVersion_DefaultPrevious_PatchYieldsFirstVersion(t *testing.T) {
	prev := semver.New(0, 0, 0, "", "")

	next := NextVersion(discardLogger(), Flags{Patch: true}, prev, false)

	require.Equal(t, "0.0.1", next.String())
}

func TestNextVersion_Prerelease_IncrementsPreviousLabel(t *testing.T) {
	prev := mustVersion(t, "1.2.0-pre.2")

	next := NextVersion(discardLogger(), Flags{Minor: true}, prev, true)

	require.Equal(t, "1.3.0-pre.3", next.String())
}

func TestNextVersion_PrereleaseWithoutPreviousLabel_StartsAtInitial(t *testing.T) {
	prev := mustVersion(t, "1.2.0")

	next := NextVersion(discardLogger(), Flags{Patch: true}, prev, true)

	require.Equal(t, "1.2.1-pre.0", next.String())
}

func TestNextVersion_ReleaseBuild_NoPrereleaseLabel(t *testing.T) {
	prev := mustVersion(t, "1.2.0-pre.4")

	next := NextVersion(discardLogger(), Flags{Minor: true}, prev, false)

	require.Equal(t, "1.3.0", next.String())
	require.Empty(t, next.Prerelease())
}

func TestNextVersion_BuildMetadataAlwaysEmpty(t *testing.T) {
	prev := mustVersion(t, "1.2.3+build.99")

	next := NextVersion(discardLogger(), Flags{Patch: true}, prev, true)

	require.Empty(t, next.Metadata())
}
