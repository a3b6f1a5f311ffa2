package config

import (
	"log/slog"
	"os"
	"strings"
)

// LogLevel enumerates supported logging levels.
type LogLevel string

const (
	LogLevelDebug LogLevel = "debug"
	LogLevelInfo  LogLevel = "info"
	LogLevelWarn  LogLevel = "warn"
	LogLevelError LogLevel = "error"
)

var logLevels = map[string]LogLevel{
	"debug": LogLevelDebug,
	"info":  LogLevelInfo,
	"warn":  LogLevelWarn,
	"error": LogLevelError,
}

// NormalizeLogLevel maps a raw string to a LogLevel, defaulting to info.
func NormalizeLogLevel(raw string) LogLevel {
	if v, ok := logLevels[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return v
	}
	return LogLevelInfo
}

// Slog converts the level to its slog equivalent.
func (l LogLevel) Slog() slog.Level {
	switch l {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// LogFormat enumerates supported log output formats.
type LogFormat string

const (
	LogFormatJSON LogFormat = "json"
	LogFormatText LogFormat = "text"
)

var logFormats = map[string]LogFormat{
	"json": LogFormatJSON,
	"text": LogFormatText,
}

// NormalizeLogFormat maps a raw string to a LogFormat, defaulting to text.
func NormalizeLogFormat(raw string) LogFormat {
	if v, ok := logFormats[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return v
	}
	return LogFormatText
}

// NewLogger builds a slog.Logger from the configured level and format,
// writing to stderr.
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: NormalizeLogLevel(c.LogLevel).Slog()}
	var handler slog.Handler
	if NormalizeLogFormat(c.LogFormat) == LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}
