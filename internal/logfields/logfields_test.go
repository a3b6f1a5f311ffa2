package logfields

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"Repository", KeyRepository, "repo1", Repository("repo1")},
		{"Branch", KeyBranch, "main", Branch("main")},
		{"Commit", KeyCommit, "abc123", Commit("abc123")},
		{"Tag", KeyTag, "v1.2.3", Tag("v1.2.3")},
		{"Version", KeyVersion, "1.3.0", Version("1.3.0")},
		{"Category", KeyCategory, "minor", Category("minor")},
		{"AnalysisID", KeyAnalysisID, "id-1", AnalysisID("id-1")},
		{"Path", KeyPath, "/tmp/x", Path("/tmp/x")},
		{"Label", KeyLabel, "pre.0", Label("pre.0")},
		{"Subject", KeySubject, "semver.analyses", Subject("semver.analyses")},
		{"URL", KeyURL, "nats://localhost", URL("nats://localhost")},
		{"Method", KeyMethod, "GET", Method("GET")},
		{"UserAgent", KeyUserAgent, "ua", UserAgent("ua")},
		{"RemoteAddr", KeyRemoteAddr, "1.2.3.4", RemoteAddr("1.2.3.4")},
	}
	for _, c := range cases {
		if c.attr.Key != c.attrKey {
			t.Errorf("%s: key = %q, want %q", c.name, c.attr.Key, c.attrKey)
		}
		if got := c.attr.Value.String(); got != c.attrVal {
			t.Errorf("%s: value = %q, want %q", c.name, got, c.attrVal)
		}
	}
}

func TestError_NilError_EmptyValue(t *testing.T) {
	attr := Error(nil)
	if attr.Key != KeyError {
		t.Errorf("key = %q, want %q", attr.Key, KeyError)
	}
	if attr.Value.String() != "" {
		t.Errorf("value = %q, want empty", attr.Value.String())
	}
}

func TestError_WrappedError_MessagePreserved(t *testing.T) {
	attr := Error(errors.New("boom"))
	if attr.Value.String() != "boom" {
		t.Errorf("value = %q, want %q", attr.Value.String(), "boom")
	}
}

func TestDurationMS_WholeMilliseconds(t *testing.T) {
	attr := DurationMS(1500 * time.Millisecond)
	if attr.Value.Int64() != 1500 {
		t.Errorf("value = %d, want 1500", attr.Value.Int64())
	}
}
