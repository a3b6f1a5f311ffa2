package errors

// Convenience functions for common error patterns

// Config errors

func ConfigNotFound(path string) *GitSemverError {
	return New(CategoryConfig, SeverityFatal, "configuration file not found").
		WithContext("path", path)
}

func ConfigRequired(field string) *GitSemverError {
	return New(CategoryConfig, SeverityFatal, "required configuration missing").
		WithContext("field", field)
}

func ValidationFailed(field, reason string) *GitSemverError {
	return New(CategoryValidation, SeverityFatal, "validation failed").
		WithContext("field", field).
		WithContext("reason", reason)
}

// Version and analysis errors

func InvalidVersion(version string, cause error) *GitSemverError {
	return Wrap(cause, CategoryValidation, SeverityFatal, "previous version is not valid semver").
		WithContext("version", version)
}

func AnalysisFailed(repository string, cause error) *GitSemverError {
	return Wrap(cause, CategoryGit, SeverityError, "history analysis failed").
		WithContext("repository", repository)
}

// Git errors

func GitOpenError(path string, cause error) *GitSemverError {
	return Wrap(cause, CategoryGit, SeverityFatal, "repository open failed").
		WithContext("path", path)
}

func GitRefError(name string, cause error) *GitSemverError {
	return Wrap(cause, CategoryGit, SeverityFatal, "reference resolution failed").
		WithContext("ref", name)
}

// Store errors

func StoreError(operation string, cause error) *GitSemverError {
	return Wrap(cause, CategoryStore, SeverityError, "analysis store operation failed").
		WithContext("operation", operation)
}

func AnalysisNotFound(id string) *GitSemverError {
	return New(CategoryNotFound, SeverityWarning, "analysis not found").
		WithContext("analysis_id", id)
}

// Network errors

func NetworkTimeout(url string, cause error) *GitSemverError {
	return WrapRetryable(cause, CategoryNetwork, SeverityWarning, "network timeout").
		WithContext("url", url)
}

// Internal errors

func InternalError(message string, cause error) *GitSemverError {
	return Wrap(cause, CategoryInternal, SeverityFatal, message)
}
