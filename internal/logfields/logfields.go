package logfields

import (
	"log/slog"
	"time"
)

// Canonical log field name constants to avoid drift across packages.
const (
	KeyRepository = "repository"
	KeyBranch     = "branch"
	KeyCommit     = "commit"
	KeyTag        = "tag"
	KeyVersion    = "version"
	KeyCategory   = "category"
	KeyAnalysisID = "analysis_id"
	KeyPath       = "path"
	KeyLabel      = "label"
	KeyCount      = "count"
	KeyDurationMS = "duration_ms"
	KeySubject    = "subject"
	KeyURL        = "url"
	KeyPort       = "port"
	KeyMethod     = "method"
	KeyStatus     = "status"
	KeyUserAgent  = "user_agent"
	KeyRemoteAddr = "remote_addr"
	KeyError      = "error"
)

// Simple helpers returning slog.Attr. Keeping each granular means callers can compose.
func Repository(r string) slog.Attr  { return slog.String(KeyRepository, r) }
func Branch(b string) slog.Attr      { return slog.String(KeyBranch, b) }
func Commit(hash string) slog.Attr   { return slog.String(KeyCommit, hash) }
func Tag(t string) slog.Attr         { return slog.String(KeyTag, t) }
func Version(v string) slog.Attr     { return slog.String(KeyVersion, v) }
func Category(c string) slog.Attr    { return slog.String(KeyCategory, c) }
func AnalysisID(id string) slog.Attr { return slog.String(KeyAnalysisID, id) }
func Path(p string) slog.Attr        { return slog.String(KeyPath, p) }
func Label(l string) slog.Attr       { return slog.String(KeyLabel, l) }
func Count(n int) slog.Attr          { return slog.Int(KeyCount, n) }
func Subject(s string) slog.Attr     { return slog.String(KeySubject, s) }
func URL(u string) slog.Attr         { return slog.String(KeyURL, u) }
func Port(p int) slog.Attr           { return slog.Int(KeyPort, p) }
func Method(m string) slog.Attr      { return slog.String(KeyMethod, m) }
func Status(code int) slog.Attr      { return slog.Int(KeyStatus, code) }
func UserAgent(ua string) slog.Attr  { return slog.String(KeyUserAgent, ua) }
func RemoteAddr(a string) slog.Attr  { return slog.String(KeyRemoteAddr, a) }

func DurationMS(d time.Duration) slog.Attr {
	return slog.Int64(KeyDurationMS, d.Milliseconds())
}

func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
