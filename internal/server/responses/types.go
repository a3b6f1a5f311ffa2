// Package responses defines API response types used by gitsemver HTTP handlers.
package responses

import "time"

// AnalysisResponse represents a single version analysis.
type AnalysisResponse struct {
	ID         string    `json:"id"`
	Repository string    `json:"repository"`
	Branch     string    `json:"branch,omitempty"`
	Commit     string    `json:"commit"`
	Version    string    `json:"version"`
	SawMajor   bool      `json:"saw_major"`
	SawMinor   bool      `json:"saw_minor"`
	SawPatch   bool      `json:"saw_patch"`
	Prerelease bool      `json:"prerelease"`
	DurationMS int64     `json:"duration_ms"`
	CreatedAt  time.Time `json:"created_at"`
}

// AnalysesListResponse represents a page of stored analyses.
type AnalysesListResponse struct {
	Status    string             `json:"status"`
	Count     int                `json:"count"`
	Analyses  []AnalysisResponse `json:"analyses"`
	Timestamp time.Time          `json:"timestamp"`
}

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status       string    `json:"status"`
	Timestamp    time.Time `json:"timestamp"`
	Version      string    `json:"version"`
	Uptime       float64   `json:"uptime"`
	DaemonStatus string    `json:"daemon_status,omitempty"`
}

// StatusResponse represents the daemon's operational status.
type StatusResponse struct {
	Status                 string    `json:"status"`
	Uptime                 float64   `json:"uptime"`
	StartTime              time.Time `json:"start_time"`
	AnalysesTotal          int       `json:"analyses_total"`
	LastAnalysisDurationMS int64     `json:"last_analysis_duration_ms"`
	RepositoriesTotal      int       `json:"repositories_total"`
}
