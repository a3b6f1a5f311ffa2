package metrics

import "time"

// OutcomeLabel enumerates analysis result categories for counters.
type OutcomeLabel string

const (
	OutcomeSuccess OutcomeLabel = "success"
	OutcomeFailed  OutcomeLabel = "failed"
)

// Recorder defines observability hooks for history analyses. Implementations
// may forward to Prometheus, OpenTelemetry, etc. All methods must be safe on
// the zero value when using the NoopRecorder (allowing optional injection).
type Recorder interface {
	ObserveAnalysisDuration(d time.Duration)
	IncAnalysisOutcome(outcome OutcomeLabel)
	AddCommitsScanned(n int)
	SetRepositoriesConfigured(n int)
	SetLastAnalysisTimestamp(t time.Time)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveAnalysisDuration(time.Duration) {}
func (NoopRecorder) IncAnalysisOutcome(OutcomeLabel)       {}
func (NoopRecorder) AddCommitsScanned(int)                 {}
func (NoopRecorder) SetRepositoriesConfigured(int)         {}
func (NoopRecorder) SetLastAnalysisTimestamp(time.Time)    {}
