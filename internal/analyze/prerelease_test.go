package analyze

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestIsPrerelease_ReleaseBranches_False(t *testing.T) {
	require.False(t, IsPrerelease("main"))
	require.False(t, IsPrerelease("master"))
	require.False(t, IsPrerelease("release/main"))
	require.False(t, IsPrerelease("old-master"))
}

func TestIsPrerelease_OtherBranches_True(t *testing.T) {
	require.True(t, IsPrerelease(""))
	require.True(t, IsPrerelease("develop"))
	require.True(t, IsPrerelease("feature/dark-mode"))
	require.True(t, IsPrerelease("fix/crash"))
}

func TestIsPrerelease_SubstringMatch_MaintenanceIsRelease(t *testing.T) {
	// The policy is a plain substring test: "maintenance" contains
	// "main" and therefore counts as a release branch.
	require.False(t, IsPrerelease("maintenance"))
}

func TestNextLabel_CounterIncrements(t *testing.T) {
	cases := map[string]string{
		"pre.2":   "pre.3",
		"alpha2":  "alpha3",
		"alpha":   "alpha1",
		"rc-9":    "rc-10",
		"2pre2":   "2pre3",
		"beta.09": "beta.10",
		"7":       "8",
	}
	for previous, want := range cases {
		require.Equal(t, want, NextLabel(discardLogger(), previous), "previous %q", previous)
	}
}

func TestNextLabel_EmptyPrevious_ResetsToInitial(t *testing.T) {
	require.Equal(t, "pre.0", NextLabel(discardLogger(), ""))
}

func TestNextLabel_UndecomposablePrevious_ResetsToInitial(t *testing.T) {
	// A newline never matches the label pattern.
	require.Equal(t, "pre.0", NextLabel(discardLogger(), "pre\n2"))
}

func TestNextLabel_EmptyPrevious_LogsWarning(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	NextLabel(logger, "")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "WARN", entry["level"])
}
