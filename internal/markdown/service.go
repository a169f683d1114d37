package markdown

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-confluence-content/internal/document"
	"github.com/goliatone/go-confluence-content/internal/logging"
	"github.com/goliatone/go-confluence-content/internal/parser"
	"github.com/goliatone/go-confluence-content/internal/runtimeconfig"
	"github.com/goliatone/go-confluence-content/pkg/interfaces"
)

// ErrParserRequired is returned when a service is built without a storage
// format parser.
var ErrParserRequired = errors.New("markdown service: parser is required")

// Service converts Markdown into parsed documents.
type Service struct {
	parser   *parser.Parser
	markdown interfaces.MarkdownParser
	options  interfaces.ParseOptions
	logger   interfaces.Logger
}

// ServiceOption configures a Service.
type ServiceOption func(*Service)

// WithMarkdownParser overrides the Markdown renderer.
func WithMarkdownParser(md interfaces.MarkdownParser) ServiceOption {
	return func(s *Service) {
		if md != nil {
			s.markdown = md
		}
	}
}

// WithParseOptions sets the options passed to the Markdown renderer.
func WithParseOptions(opts interfaces.ParseOptions) ServiceOption {
	return func(s *Service) {
		s.options = opts
	}
}

// WithConfig applies the renderer settings of a runtime configuration.
func WithConfig(cfg runtimeconfig.MarkdownConfig) ServiceOption {
	return WithParseOptions(interfaces.ParseOptions{
		Extensions: append([]string(nil), cfg.Parser.Extensions...),
		HardWraps:  cfg.Parser.HardWraps,
		SafeMode:   cfg.Parser.SafeMode,
	})
}

// WithLogger overrides the service logger.
func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithLoggerProvider resolves the service logger from provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) ServiceOption {
	return func(s *Service) {
		if provider != nil {
			s.logger = logging.MarkdownLogger(provider)
		}
	}
}

// NewService wires a Markdown service around p.
func NewService(p *parser.Parser, opts ...ServiceOption) (*Service, error) {
	if p == nil {
		return nil, ErrParserRequired
	}
	s := &Service{
		parser: p,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.markdown == nil {
		s.markdown = NewGoldmarkParser(s.options)
	}
	return s, nil
}

// Render converts Markdown into the XHTML handed to the storage parser.
func (s *Service) Render(ctx context.Context, markdown []byte) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.markdown.ParseWithOptions(markdown, s.options)
}

// Convert parses a Markdown page, frontmatter included.
func (s *Service) Convert(ctx context.Context, source []byte) (*document.Document, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, err
	}
	return s.convert(ctx, "", fm, body)
}

// ConvertSource parses a page produced by a Loader.
func (s *Service) ConvertSource(ctx context.Context, src *Source) (*document.Document, error) {
	if src == nil {
		return nil, errors.New("markdown service: source is nil")
	}
	return s.convert(ctx, src.Path, src.FrontMatter, src.Body)
}

// FileResult pairs a loaded file with its parsed document.
type FileResult struct {
	Source   *Source
	Document *document.Document
}

// ConvertDirectory loads and parses every Markdown file below dir. A parse
// error stops the walk; the results gathered so far are returned with it.
func (s *Service) ConvertDirectory(ctx context.Context, fsys fs.FS, dir string, cfg LoaderConfig) ([]FileResult, error) {
	sources, err := NewLoader(fsys, cfg).LoadDirectory(ctx, dir)
	if err != nil {
		return nil, err
	}
	results := make([]FileResult, 0, len(sources))
	for _, src := range sources {
		doc, err := s.ConvertSource(ctx, src)
		if doc != nil {
			results = append(results, FileResult{Source: src, Document: doc})
		}
		if err != nil {
			return results, fmt.Errorf("markdown convert %s: %w", src.Path, err)
		}
	}
	return results, nil
}

func (s *Service) convert(ctx context.Context, path string, fm interfaces.FrontMatter, body []byte) (*document.Document, error) {
	html, err := s.Render(ctx, body)
	if err != nil {
		return nil, err
	}

	doc, err := s.parser.ParseSource(ctx, string(html), document.Metadata{
		Source:      document.SourceMarkdown,
		FrontMatter: fm.Raw,
	})
	if doc != nil {
		logging.WithParseContext(s.logger, doc.Metadata.ParseID.String(), document.SourceMarkdown, path).
			WithContext(ctx).
			Debug("markdown.convert.complete",
				"title", fm.Title,
				"bytes", len(body),
				"nodes", doc.Metadata.NodeCount,
			)
	}
	return doc, err
}
