package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once             sync.Once
	analysisDuration prom.Histogram
	analysisOutcomes *prom.CounterVec
	commitsScanned   prom.Counter
	repositories     prom.Gauge
	lastAnalysis     prom.Gauge
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.analysisDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "gitsemver",
			Name:      "analysis_duration_seconds",
			Help:      "Duration of individual history analyses",
			Buckets:   prom.DefBuckets,
		})
		pr.analysisOutcomes = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "gitsemver",
			Name:      "analysis_outcomes_total",
			Help:      "Analysis outcomes by final status",
		}, []string{"outcome"})
		pr.commitsScanned = prom.NewCounter(prom.CounterOpts{
			Namespace: "gitsemver",
			Name:      "commits_scanned_total",
			Help:      "Total commits visited by history walks",
		})
		pr.repositories = prom.NewGauge(prom.GaugeOpts{
			Namespace: "gitsemver",
			Name:      "repositories_configured",
			Help:      "Number of repositories in the active configuration",
		})
		pr.lastAnalysis = prom.NewGauge(prom.GaugeOpts{
			Namespace: "gitsemver",
			Name:      "last_analysis_timestamp_seconds",
			Help:      "Unix time of the most recently completed analysis",
		})
		reg.MustRegister(pr.analysisDuration, pr.analysisOutcomes, pr.commitsScanned, pr.repositories, pr.lastAnalysis)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveAnalysisDuration(d time.Duration) {
	if p == nil || p.analysisDuration == nil {
		return
	}
	p.analysisDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncAnalysisOutcome(outcome OutcomeLabel) {
	if p == nil || p.analysisOutcomes == nil {
		return
	}
	p.analysisOutcomes.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) AddCommitsScanned(n int) {
	if p == nil || p.commitsScanned == nil {
		return
	}
	p.commitsScanned.Add(float64(n))
}

func (p *PrometheusRecorder) SetRepositoriesConfigured(n int) {
	if p == nil || p.repositories == nil {
		return
	}
	p.repositories.Set(float64(n))
}

func (p *PrometheusRecorder) SetLastAnalysisTimestamp(t time.Time) {
	if p == nil || p.lastAnalysis == nil {
		return
	}
	p.lastAnalysis.Set(float64(t.Unix()))
}
