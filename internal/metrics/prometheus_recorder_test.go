package metrics

import (
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

func TestNoopRecorder_ZeroValueSafe(t *testing.T) {
	var r Recorder = NoopRecorder{}
	r.ObserveAnalysisDuration(time.Second)
	r.IncAnalysisOutcome(OutcomeSuccess)
	r.AddCommitsScanned(3)
	r.SetRepositoriesConfigured(1)
	r.SetLastAnalysisTimestamp(time.Now())
}

func TestPrometheusRecorder_NilReceiverSafe(t *testing.T) {
	var pr *PrometheusRecorder
	pr.ObserveAnalysisDuration(time.Second)
	pr.IncAnalysisOutcome(OutcomeFailed)
	pr.AddCommitsScanned(1)
	pr.SetRepositoriesConfigured(0)
	pr.SetLastAnalysisTimestamp(time.Now())
}

func TestPrometheusRecorder_RegistersAndCollects(t *testing.T) {
	reg := prom.NewRegistry()
	pr := NewPrometheusRecorder(reg)

	pr.ObserveAnalysisDuration(250 * time.Millisecond)
	pr.IncAnalysisOutcome(OutcomeSuccess)
	pr.AddCommitsScanned(7)
	pr.SetRepositoriesConfigured(2)
	pr.SetLastAnalysisTimestamp(time.Unix(1700000000, 0))

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather() error: %v", err)
	}
	if len(families) != 5 {
		t.Fatalf("expected 5 metric families, got %d", len(families))
	}

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"gitsemver_analysis_duration_seconds",
		"gitsemver_analysis_outcomes_total",
		"gitsemver_commits_scanned_total",
		"gitsemver_repositories_configured",
		"gitsemver_last_analysis_timestamp_seconds",
	} {
		if !names[want] {
			t.Errorf("metric family %q not registered", want)
		}
	}
}
