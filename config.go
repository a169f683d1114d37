package confluence

import "github.com/goliatone/go-confluence-content/internal/runtimeconfig"

var (
	ErrLoggingProviderRequired = runtimeconfig.ErrLoggingProviderRequired
	ErrLoggingProviderUnknown  = runtimeconfig.ErrLoggingProviderUnknown
	ErrLoggingLevelInvalid     = runtimeconfig.ErrLoggingLevelInvalid
	ErrLoggingFormatInvalid    = runtimeconfig.ErrLoggingFormatInvalid
	ErrMarkdownFeatureRequired = runtimeconfig.ErrMarkdownFeatureRequired
	ErrMetricsNamespaceInvalid = runtimeconfig.ErrMetricsNamespaceInvalid
)

type (
	Config               = runtimeconfig.Config
	Features             = runtimeconfig.Features
	LoggingConfig        = runtimeconfig.LoggingConfig
	MetricsConfig        = runtimeconfig.MetricsConfig
	MarkdownConfig       = runtimeconfig.MarkdownConfig
	MarkdownParserConfig = runtimeconfig.MarkdownParserConfig
)

func DefaultConfig() Config {
	return runtimeconfig.DefaultConfig()
}
