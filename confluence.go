// Package confluence parses Confluence storage format page bodies into a
// typed node tree and renders them as plain text.
//
// Use Parse for one-off conversions with the default collect-and-continue
// policy, or New to build a Module that carries logging, metrics and the
// optional Markdown bridge.
package confluence

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-confluence-content/internal/diagnostics"
	"github.com/goliatone/go-confluence-content/internal/document"
	"github.com/goliatone/go-confluence-content/internal/logging"
	"github.com/goliatone/go-confluence-content/internal/logging/console"
	"github.com/goliatone/go-confluence-content/internal/logging/gologger"
	"github.com/goliatone/go-confluence-content/internal/markdown"
	"github.com/goliatone/go-confluence-content/internal/metrics"
	"github.com/goliatone/go-confluence-content/internal/nodes"
	"github.com/goliatone/go-confluence-content/internal/parser"
	"github.com/goliatone/go-confluence-content/internal/query"
	"github.com/goliatone/go-confluence-content/internal/runtimeconfig"
	"github.com/goliatone/go-confluence-content/pkg/interfaces"
)

// Document is the result of a parse.
type Document = document.Document

// Metadata describes how a document was produced.
type Metadata = document.Metadata

// Node is implemented by every node in a parsed tree.
type Node = nodes.Node

// ParseError carries the diagnostics of a parse configured to raise.
type ParseError = diagnostics.ParseError

// Query is a compiled node filter expression.
type Query = query.Query

// MarkdownService converts Markdown pages into documents.
type MarkdownService = *markdown.Service

// Logger exports the logging contract accepted by the module.
type Logger = interfaces.Logger

// LoggerProvider exports the logger provider contract.
type LoggerProvider = interfaces.LoggerProvider

// ParseMetrics exports the metrics recorder contract.
type ParseMetrics = interfaces.ParseMetrics

// Input dialects recorded in Metadata.Source.
const (
	SourceStorage  = document.SourceStorage
	SourceMarkdown = document.SourceMarkdown
)

// ErrMarkdownDisabled is returned by ParseMarkdown when the Markdown
// feature is not enabled.
var ErrMarkdownDisabled = errors.New("confluence: markdown feature disabled")

var defaultParser = parser.New()

// Parse parses markup with the default collect-and-continue policy. Problems
// are reported in the document diagnostics and never as an error.
func Parse(ctx context.Context, markup string) (*Document, error) {
	return defaultParser.Parse(ctx, markup)
}

// ParseDiagnostics returns the diagnostics carried by an error returned from
// a raising parse.
func ParseDiagnostics(err error) ([]string, bool) {
	return diagnostics.FromError(err)
}

// CompileQuery compiles a node filter expression.
func CompileQuery(expression string) (*Query, error) {
	return query.Compile(expression)
}

// Select returns the nodes of doc matching expression in traversal order.
func Select(doc *Document, expression string) ([]Node, error) {
	return query.Select(doc, expression)
}

// Option overrides module dependencies.
type Option func(*moduleOptions)

type moduleOptions struct {
	loggerProvider interfaces.LoggerProvider
	metrics        interfaces.ParseMetrics
	registerer     prometheus.Registerer
}

// WithLoggerProvider replaces the provider built from Config.Logging.
func WithLoggerProvider(provider LoggerProvider) Option {
	return func(o *moduleOptions) {
		o.loggerProvider = provider
	}
}

// WithMetrics installs a custom metrics recorder.
func WithMetrics(recorder ParseMetrics) Option {
	return func(o *moduleOptions) {
		o.metrics = recorder
	}
}

// WithPrometheusRegisterer registers the parse collectors on reg when the
// metrics feature is enabled. Defaults to prometheus.DefaultRegisterer.
func WithPrometheusRegisterer(reg prometheus.Registerer) Option {
	return func(o *moduleOptions) {
		o.registerer = reg
	}
}

// Module is the configured runtime: a parser plus the optional Markdown
// bridge, sharing one logger provider and metrics recorder.
type Module struct {
	cfg      Config
	provider interfaces.LoggerProvider
	metrics  interfaces.ParseMetrics
	parser   *parser.Parser
	markdown *markdown.Service
}

// New validates cfg and constructs a module.
func New(cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	options := moduleOptions{}
	for _, opt := range opts {
		if opt != nil {
			opt(&options)
		}
	}

	provider := options.loggerProvider
	if provider == nil && cfg.Features.Logger {
		built, err := NewLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		provider = built
	}

	recorder := options.metrics
	if recorder == nil && cfg.Features.Metrics {
		reg := options.registerer
		if reg == nil {
			reg = prometheus.DefaultRegisterer
		}
		recorder = metrics.NewPrometheus(reg, cfg.Metrics.Namespace)
	}

	m := &Module{
		cfg:      cfg,
		provider: provider,
		metrics:  recorder,
		parser: parser.New(
			parser.WithConfig(cfg),
			parser.WithLoggerProvider(provider),
			parser.WithMetrics(recorder),
		),
	}

	if cfg.Features.Markdown {
		svc, err := markdown.NewService(m.parser,
			markdown.WithConfig(cfg.Markdown),
			markdown.WithLoggerProvider(provider),
		)
		if err != nil {
			return nil, fmt.Errorf("confluence: markdown service: %w", err)
		}
		m.markdown = svc
	}

	logging.ModuleLogger(provider, "").Debug("confluence.module.ready",
		"raise_on_finish", cfg.RaiseOnFinish,
		"markdown", m.markdown != nil,
		"metrics", recorder != nil,
	)
	return m, nil
}

// Config returns the configuration the module was built with.
func (m *Module) Config() Config {
	return m.cfg
}

// LoggerProvider returns the provider shared by the module components. It is
// nil when logging is disabled.
func (m *Module) LoggerProvider() LoggerProvider {
	return m.provider
}

// Parse parses storage format markup with the module policy. With
// RaiseOnFinish set, a page that produced diagnostics returns both the
// document and a *ParseError; the document is still complete, so check it
// before acting on the error.
func (m *Module) Parse(ctx context.Context, markup string) (*Document, error) {
	return m.parser.Parse(ctx, markup)
}

// ParseMarkdown converts a Markdown page, front matter included. The raise
// policy behaves as in Parse: the document comes back alongside the error.
func (m *Module) ParseMarkdown(ctx context.Context, source []byte) (*Document, error) {
	if m.markdown == nil {
		return nil, ErrMarkdownDisabled
	}
	return m.markdown.Convert(ctx, source)
}

// Markdown returns the Markdown bridge, or nil when the feature is off.
func (m *Module) Markdown() MarkdownService {
	return m.markdown
}

// NewLoggerProvider builds the provider named by cfg.Provider. The console
// provider filters below cfg.Level.
func NewLoggerProvider(cfg LoggingConfig) (LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(cfg)
		if err != nil {
			return nil, err
		}
		return provider, nil
	case "", "console":
		opts := console.Options{}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		return console.NewProvider(opts), nil
	default:
		return nil, fmt.Errorf("%w: %s", runtimeconfig.ErrLoggingProviderUnknown, cfg.Provider)
	}
}
