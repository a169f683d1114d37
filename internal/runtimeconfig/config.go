package runtimeconfig

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrLoggingProviderRequired = errors.New("confluence config: logging provider is required when logging feature is enabled")
var ErrLoggingProviderUnknown = errors.New("confluence config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("confluence config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("confluence config: logging format is invalid")

// ErrMarkdownFeatureRequired keeps markdown ingestion behind its feature flag.
var ErrMarkdownFeatureRequired = errors.New("confluence config: markdown feature must be enabled to configure markdown")

// ErrMetricsNamespaceInvalid rejects namespaces Prometheus would refuse.
var ErrMetricsNamespaceInvalid = errors.New("confluence config: metrics namespace is invalid")

// Config aggregates parser policy and ambient settings for the module.
type Config struct {
	// RaiseOnFinish turns a parse with diagnostics into an error once the
	// whole document has been processed.
	RaiseOnFinish bool
	Features      Features
	Logging       LoggingConfig
	Metrics       MetricsConfig
	Markdown      MarkdownConfig
}

// Features toggles optional subsystems.
type Features struct {
	Markdown bool
	Logger   bool
	Metrics  bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// MetricsConfig names the Prometheus namespace used by the parse recorder.
type MetricsConfig struct {
	Namespace string
}

// MarkdownConfig controls the Markdown to storage format bridge.
type MarkdownConfig struct {
	Enabled bool
	Parser  MarkdownParserConfig
}

// MarkdownParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type MarkdownParserConfig struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// DefaultConfig returns collect-and-continue parsing with console logging.
func DefaultConfig() Config {
	return Config{
		RaiseOnFinish: false,
		Features:      Features{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
			Format:   "",
		},
		Metrics: MetricsConfig{
			Namespace: "confluence",
		},
		Markdown: MarkdownConfig{
			Parser: MarkdownParserConfig{
				Extensions: []string{"gfm"},
			},
		},
	}
}

var metricNamespacePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if cfg.Markdown.Enabled && !cfg.Features.Markdown {
		return ErrMarkdownFeatureRequired
	}
	if cfg.Features.Metrics {
		if ns := strings.TrimSpace(cfg.Metrics.Namespace); ns != "" && !metricNamespacePattern.MatchString(ns) {
			return fmt.Errorf("%w: %s", ErrMetricsNamespaceInvalid, ns)
		}
	}
	if cfg.Features.Logger {
		provider := normalizeProvider(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
