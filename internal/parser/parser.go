// Package parser turns Confluence storage format markup into a typed node
// tree. Elements are dispatched through a fixed tag registry; structured
// macros and embedded ADF nodes have their own sub-dispatchers.
package parser

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-confluence-content/internal/diagnostics"
	"github.com/goliatone/go-confluence-content/internal/document"
	"github.com/goliatone/go-confluence-content/internal/identity"
	"github.com/goliatone/go-confluence-content/internal/ingest"
	"github.com/goliatone/go-confluence-content/internal/logging"
	"github.com/goliatone/go-confluence-content/internal/metrics"
	"github.com/goliatone/go-confluence-content/internal/runtimeconfig"
	"github.com/goliatone/go-confluence-content/pkg/interfaces"
)

// Parser converts storage format markup into documents. It keeps no state
// between calls, so a single instance may serve concurrent parses.
type Parser struct {
	rules   *registry
	logger  interfaces.Logger
	metrics interfaces.ParseMetrics
	raise   bool
}

// Option configures a Parser.
type Option func(*Parser)

// WithLogger overrides the parser logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// WithLoggerProvider resolves the parser logger from a provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(p *Parser) {
		if provider != nil {
			p.logger = logging.ParserLogger(provider)
		}
	}
}

// WithMetrics overrides the metrics recorder.
func WithMetrics(recorder interfaces.ParseMetrics) Option {
	return func(p *Parser) {
		if recorder != nil {
			p.metrics = recorder
		}
	}
}

// WithRaiseOnFinish makes Parse return an aggregate error when any
// diagnostic was recorded.
func WithRaiseOnFinish(raise bool) Option {
	return func(p *Parser) {
		p.raise = raise
	}
}

// WithConfig applies the parse policy of a runtime configuration.
func WithConfig(cfg runtimeconfig.Config) Option {
	return func(p *Parser) {
		p.raise = cfg.RaiseOnFinish
	}
}

// New constructs a parser with collect-and-continue policy.
func New(opts ...Option) *Parser {
	p := &Parser{
		rules:   newRegistry(),
		logger:  logging.NoOp(),
		metrics: metrics.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

// Parse parses storage format markup. See ParseSource for the raise policy.
func (p *Parser) Parse(ctx context.Context, markup string) (*document.Document, error) {
	return p.ParseSource(ctx, markup, document.Metadata{Source: document.SourceStorage})
}

// ParseSource parses markup and merges the parse results into meta. The
// document is returned even when the raise policy produces an error.
func (p *Parser) ParseSource(ctx context.Context, markup string, meta document.Metadata) (*document.Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if meta.Source == "" {
		meta.Source = document.SourceStorage
	}
	started := time.Now()
	meta.ParseID = uuid.New()

	logger := logging.WithParseContext(p.logger, meta.ParseID.String(), meta.Source, "").WithContext(ctx)
	logger.Debug("parser.parse.start", "bytes", len(markup))

	collector := diagnostics.NewCollector()
	res := ingest.Parse(markup)
	if res.Fallback() {
		collector.XMLParseFailed(res.StrictErr)
		p.metrics.IncrementFallback(meta.Source)
		logger.Warn("parser.ingest.fallback", "error", res.StrictErr)
	}

	b := &builder{rules: p.rules, diags: collector}
	content := b.children(res.Root, scope{})

	meta.Diagnostics = collector.Entries()
	meta.Fingerprint = identity.DocumentUUID(markup)
	doc := document.New(content, meta)

	for _, entry := range meta.Diagnostics {
		p.metrics.IncrementDiagnostic(diagnostics.Reason(entry))
	}
	p.metrics.ObserveParseDuration(meta.Source, time.Since(started))
	p.metrics.ObserveNodeCount(meta.Source, doc.Metadata.NodeCount)

	logger.Debug("parser.parse.complete",
		"nodes", doc.Metadata.NodeCount,
		"diagnostics", collector.Len(),
		"fallback", res.Fallback(),
		"duration", time.Since(started),
	)

	if p.raise && len(meta.Diagnostics) > 0 {
		return doc, diagnostics.NewParseError(meta.Diagnostics)
	}
	return doc, nil
}
