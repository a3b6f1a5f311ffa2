package config

import (
	"fmt"
	"time"

	gserrors "git.home.luguber.info/inful/gitsemver/internal/errors"
)

// ValidateConfig validates the complete configuration structure.
func ValidateConfig(cfg *Config) error {
	validator := newConfigurationValidator(cfg)
	return validator.validate()
}

// configurationValidator coordinates validation across configuration domains.
type configurationValidator struct {
	config *Config
}

func newConfigurationValidator(config *Config) *configurationValidator {
	return &configurationValidator{config: config}
}

func (cv *configurationValidator) validate() error {
	if err := cv.validateRepositories(); err != nil {
		return err
	}
	if err := cv.validateRefreshInterval(); err != nil {
		return err
	}
	if err := cv.validateServer(); err != nil {
		return err
	}
	if err := cv.validateNotify(); err != nil {
		return err
	}
	return nil
}

// validateRepositories checks that each configured repository names a path
// and that repository names are unique.
func (cv *configurationValidator) validateRepositories() error {
	seen := make(map[string]bool)

	for _, repo := range cv.config.Repositories {
		if repo.Name == "" {
			return gserrors.ValidationError("repository name cannot be empty")
		}
		if seen[repo.Name] {
			return gserrors.ValidationError(fmt.Sprintf("duplicate repository name: %s", repo.Name))
		}
		seen[repo.Name] = true

		if repo.Path == "" {
			return gserrors.ValidationError(fmt.Sprintf("repository %s: path cannot be empty", repo.Name))
		}
	}

	return nil
}

// validateRefreshInterval checks the periodic re-analysis interval.
func (cv *configurationValidator) validateRefreshInterval() error {
	d, err := time.ParseDuration(cv.config.RefreshInterval)
	if err != nil {
		return gserrors.Wrap(err, gserrors.CategoryValidation, gserrors.SeverityFatal,
			fmt.Sprintf("invalid refresh_interval: %s", cv.config.RefreshInterval))
	}
	if d <= 0 {
		return gserrors.ValidationError(
			fmt.Sprintf("refresh_interval must be positive: %s", cv.config.RefreshInterval))
	}
	return nil
}

func (cv *configurationValidator) validateServer() error {
	port := cv.config.Server.Port
	if port < 1 || port > 65535 {
		return gserrors.ValidationError(fmt.Sprintf("invalid server port: %d", port))
	}
	return nil
}

// validateNotify requires a URL and subject when publishing is enabled.
func (cv *configurationValidator) validateNotify() error {
	if !cv.config.Notify.Enabled {
		return nil
	}
	if cv.config.Notify.URL == "" {
		return gserrors.ValidationError("notify.url is required when notify.enabled is true")
	}
	if cv.config.Notify.Subject == "" {
		return gserrors.ValidationError("notify.subject is required when notify.enabled is true")
	}
	return nil
}
