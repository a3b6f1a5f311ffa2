// Package config loads and validates the gitsemver configuration file.
//
// Configuration is YAML with environment variable expansion: ${VAR} and
// $VAR references in the file are replaced from the process environment
// before parsing. A .env file next to the working directory is loaded
// first (existing environment variables win).
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	gserrors "git.home.luguber.info/inful/gitsemver/internal/errors"
)

// Config represents the application configuration.
type Config struct {
	LogLevel        string        `yaml:"log_level,omitempty"`        // debug|info|warn|error (default info)
	LogFormat       string        `yaml:"log_format,omitempty"`       // text|json (default text)
	RefreshInterval string        `yaml:"refresh_interval,omitempty"` // duration string (default 5m)
	Repositories    []Repository  `yaml:"repositories"`
	Server          ServerConfig  `yaml:"server,omitempty"`
	Store           StoreConfig   `yaml:"store,omitempty"`
	Notify          NotifyConfig  `yaml:"notify,omitempty"`
	Metrics         MetricsConfig `yaml:"metrics,omitempty"`
}

// Repository represents a Git repository to analyze.
type Repository struct {
	Name         string `yaml:"name"`
	Path         string `yaml:"path"`
	Tag          string `yaml:"tag,omitempty"`           // walk history from this tag instead of HEAD
	StartVersion string `yaml:"start_version,omitempty"` // version hint overriding tag lookup
}

// ServerConfig configures the HTTP API listener.
type ServerConfig struct {
	Host string `yaml:"host,omitempty"`
	Port int    `yaml:"port,omitempty"`
}

// StoreConfig configures the analysis history database.
type StoreConfig struct {
	Path string `yaml:"path,omitempty"` // SQLite file path, ":memory:" for ephemeral
}

// NotifyConfig configures analysis result publishing over NATS JetStream.
type NotifyConfig struct {
	Enabled bool   `yaml:"enabled"`
	URL     string `yaml:"url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// MetricsConfig toggles the Prometheus /metrics endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, gserrors.ConfigNotFound(configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, gserrors.Wrap(err, gserrors.CategoryConfig, gserrors.SeverityFatal, "failed to read config file")
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, gserrors.Wrap(err, gserrors.CategoryConfig, gserrors.SeverityFatal, "failed to unmarshal config")
	}

	applyDefaults(&cfg)

	if err := ValidateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults fills in zero-valued fields with the documented defaults.
func applyDefaults(cfg *Config) {
	if cfg.LogLevel == "" {
		cfg.LogLevel = string(LogLevelInfo)
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = string(LogFormatText)
	}
	if cfg.RefreshInterval == "" {
		cfg.RefreshInterval = "5m"
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = "gitsemver.db"
	}
	if cfg.Notify.URL == "" {
		cfg.Notify.URL = "nats://127.0.0.1:4222"
	}
	if cfg.Notify.Subject == "" {
		cfg.Notify.Subject = "gitsemver.analyses"
	}
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return gserrors.ValidationError(
			fmt.Sprintf("configuration file already exists: %s (use --force to overwrite)", configPath))
	}

	example := Config{
		LogLevel:        string(LogLevelInfo),
		LogFormat:       string(LogFormatText),
		RefreshInterval: "5m",
		Repositories: []Repository{
			{
				Name: "myproject",
				Path: "/srv/git/myproject",
			},
			{
				Name:         "legacy",
				Path:         "/srv/git/legacy",
				Tag:          "v1.4.0",
				StartVersion: "1.4.0",
			},
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Store: StoreConfig{
			Path: "gitsemver.db",
		},
		Notify: NotifyConfig{
			Enabled: false,
			URL:     "nats://127.0.0.1:4222",
			Subject: "gitsemver.analyses",
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return gserrors.InternalError("failed to marshal config", err)
	}

	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return gserrors.Wrap(err, gserrors.CategoryConfig, gserrors.SeverityFatal, "failed to write config file")
	}

	return nil
}

// loadEnvFiles loads environment variables from .env/.env.local if present.
// Existing process environment variables are not overwritten. Missing files
// are not an error.
func loadEnvFiles() {
	for _, envPath := range []string{".env", ".env.local"} {
		if _, err := os.Stat(envPath); err != nil {
			continue
		}
		if err := godotenv.Load(envPath); err == nil {
			fmt.Fprintf(os.Stderr, "Loaded environment variables from %s\n", envPath)
			return
		}
	}
}
