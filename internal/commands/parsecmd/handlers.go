package parsecmd

import (
	"context"
	"errors"
	"io/fs"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-confluence-content/internal/commands"
	"github.com/goliatone/go-confluence-content/internal/document"
	"github.com/goliatone/go-confluence-content/internal/logging"
	"github.com/goliatone/go-confluence-content/internal/markdown"
	"github.com/goliatone/go-confluence-content/pkg/interfaces"
)

const (
	parseContentOperation   = "content.parse"
	parseDirectoryOperation = "markdown.parse_directory"
)

var (
	// ErrMarkdownFeatureDisabled is returned for Markdown input while the
	// markdown feature is off.
	ErrMarkdownFeatureDisabled = errors.New("parse command: markdown feature disabled")
	// ErrMarkdownUnavailable is returned for Markdown input when no
	// converter was wired.
	ErrMarkdownUnavailable = errors.New("parse command: markdown converter not configured")
)

var (
	_ command.Commander[ParseContentCommand]   = (*ParseContentHandler)(nil)
	_ command.Commander[ParseDirectoryCommand] = (*ParseDirectoryHandler)(nil)
)

// StorageParser parses storage format markup.
type StorageParser interface {
	Parse(ctx context.Context, markup string) (*document.Document, error)
}

// MarkdownConverter parses Markdown pages.
type MarkdownConverter interface {
	Convert(ctx context.Context, source []byte) (*document.Document, error)
	ConvertDirectory(ctx context.Context, fsys fs.FS, dir string, cfg markdown.LoaderConfig) ([]markdown.FileResult, error)
}

// Result is handed to the sink for every parsed page.
type Result struct {
	Label    string
	Document *document.Document
}

// Sink receives parse results. Commands only report errors, so callers that
// need the documents collect them here.
type Sink func(ctx context.Context, result Result)

func (s Sink) emit(ctx context.Context, result Result) {
	if s != nil {
		s(ctx, result)
	}
}

// ParseContentHandler parses a single page body.
type ParseContentHandler struct {
	inner *commands.Handler[ParseContentCommand]
}

// NewParseContentHandler wires a handler around the parser and, optionally,
// a Markdown converter.
func NewParseContentHandler(parser StorageParser, converter MarkdownConverter, logger interfaces.Logger, gates FeatureGates, sink Sink, opts ...commands.HandlerOption[ParseContentCommand]) *ParseContentHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ParseContentCommand) error {
		var (
			doc *document.Document
			err error
		)
		switch msg.format() {
		case document.SourceMarkdown:
			if !gates.markdownEnabled() {
				return ErrMarkdownFeatureDisabled
			}
			if converter == nil {
				return ErrMarkdownUnavailable
			}
			doc, err = converter.Convert(ctx, []byte(msg.Markup))
		default:
			doc, err = parser.Parse(ctx, msg.Markup)
		}
		if doc != nil {
			logging.WithFields(baseLogger, map[string]any{
				"nodes":       doc.Metadata.NodeCount,
				"diagnostics": len(doc.Metadata.Diagnostics),
			}).Info("parse.command.content.completed")
			sink.emit(ctx, Result{Label: msg.Label, Document: doc})
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[ParseContentCommand]{
		commands.WithLogger[ParseContentCommand](baseLogger),
		commands.WithOperation[ParseContentCommand](parseContentOperation),
		commands.WithMessageFields(func(msg ParseContentCommand) map[string]any {
			fields := map[string]any{
				"format": msg.format(),
				"bytes":  len(msg.Markup),
			}
			if msg.Label != "" {
				fields["label"] = msg.Label
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ParseContentHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ParseContentCommand].
func (h *ParseContentHandler) Execute(ctx context.Context, msg ParseContentCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ParseDirectoryHandler converts Markdown directories.
type ParseDirectoryHandler struct {
	inner *commands.Handler[ParseDirectoryCommand]
}

// NewParseDirectoryHandler wires a handler that reads from fsys.
func NewParseDirectoryHandler(converter MarkdownConverter, fsys fs.FS, logger interfaces.Logger, gates FeatureGates, sink Sink, opts ...commands.HandlerOption[ParseDirectoryCommand]) *ParseDirectoryHandler {
	baseLogger := logger
	if baseLogger == nil {
		baseLogger = logging.NoOp()
	}

	exec := func(ctx context.Context, msg ParseDirectoryCommand) error {
		if !gates.markdownEnabled() {
			return ErrMarkdownFeatureDisabled
		}
		if converter == nil {
			return ErrMarkdownUnavailable
		}

		results, err := converter.ConvertDirectory(ctx, fsys, msg.Directory, markdown.LoaderConfig{
			Pattern:   msg.Pattern,
			Recursive: msg.Recursive,
		})
		withDiagnostics := 0
		for _, result := range results {
			if result.Document.HasDiagnostics() {
				withDiagnostics++
			}
			sink.emit(ctx, Result{Label: result.Source.Path, Document: result.Document})
		}
		logging.WithFields(baseLogger, map[string]any{
			"file_count":            len(results),
			"files_with_diagnostic": withDiagnostics,
		}).Info("parse.command.directory.completed")
		return err
	}

	handlerOpts := []commands.HandlerOption[ParseDirectoryCommand]{
		commands.WithLogger[ParseDirectoryCommand](baseLogger),
		commands.WithOperation[ParseDirectoryCommand](parseDirectoryOperation),
		commands.WithMessageFields(func(msg ParseDirectoryCommand) map[string]any {
			fields := map[string]any{"directory": msg.Directory}
			if msg.Pattern != "" {
				fields["pattern"] = msg.Pattern
			}
			if msg.Recursive {
				fields["recursive"] = true
			}
			return fields
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ParseDirectoryHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[ParseDirectoryCommand].
func (h *ParseDirectoryHandler) Execute(ctx context.Context, msg ParseDirectoryCommand) error {
	return h.inner.Execute(ctx, msg)
}
