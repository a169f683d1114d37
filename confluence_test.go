package confluence_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	confluence "github.com/goliatone/go-confluence-content"
	"github.com/goliatone/go-confluence-content/internal/commands/fixtures"
)

func TestParse(t *testing.T) {
	doc, err := confluence.Parse(context.Background(), `<h1>Release</h1><ul><li>one</li><li>two</li></ul>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got, want := doc.Text(), "Release\n\n• one\n• two"; got != want {
		t.Fatalf("unexpected text %q, want %q", got, want)
	}
	if doc.HasDiagnostics() {
		t.Fatalf("unexpected diagnostics %v", doc.Metadata.Diagnostics)
	}
}

func TestSelect(t *testing.T) {
	doc, err := confluence.Parse(context.Background(), `<h1>A</h1><p>b</p><h2>C</h2>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	found, err := confluence.Select(doc, `type == "heading"`)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(found) != 2 {
		t.Fatalf("expected 2 headings, got %d", len(found))
	}
	if _, err := confluence.CompileQuery("type =="); err == nil {
		t.Fatal("expected compile error")
	}
}

func TestModuleRaiseOnFinish(t *testing.T) {
	cfg := confluence.DefaultConfig()
	cfg.RaiseOnFinish = true
	module, err := confluence.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	doc, err := module.Parse(context.Background(), `<p>ok</p><blink>x</blink>`)
	if err == nil {
		t.Fatal("expected parse error")
	}
	var parseErr *confluence.ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %T", err)
	}
	entries, ok := confluence.ParseDiagnostics(err)
	if !ok || len(entries) != 1 || entries[0] != "unknown_element:blink" {
		t.Fatalf("unexpected diagnostics %v", entries)
	}
	if doc == nil || doc.Text() != "ok" {
		t.Fatal("expected the document alongside the error")
	}
}

func TestModuleRejectsInvalidConfig(t *testing.T) {
	cfg := confluence.DefaultConfig()
	cfg.Markdown.Enabled = true
	if _, err := confluence.New(cfg); !errors.Is(err, confluence.ErrMarkdownFeatureRequired) {
		t.Fatalf("expected ErrMarkdownFeatureRequired, got %v", err)
	}
}

func TestModuleMarkdown(t *testing.T) {
	module, err := confluence.New(confluence.DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if _, err := module.ParseMarkdown(context.Background(), []byte("# x")); !errors.Is(err, confluence.ErrMarkdownDisabled) {
		t.Fatalf("expected ErrMarkdownDisabled, got %v", err)
	}

	cfg := confluence.DefaultConfig()
	cfg.Features.Markdown = true
	cfg.Markdown.Enabled = true
	module, err = confluence.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	doc, err := module.ParseMarkdown(context.Background(), []byte("---\ntitle: Notes\n---\n# Heading\n\nBody\n"))
	if err != nil {
		t.Fatalf("parse markdown: %v", err)
	}
	if doc.Metadata.Source != confluence.SourceMarkdown {
		t.Fatalf("expected markdown source, got %q", doc.Metadata.Source)
	}
	if doc.Metadata.FrontMatter["title"] != "Notes" {
		t.Fatalf("expected front matter title, got %v", doc.Metadata.FrontMatter)
	}
	if got := doc.Text(); got != "Heading\n\nBody" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestModuleMetrics(t *testing.T) {
	cfg := confluence.DefaultConfig()
	cfg.Features.Metrics = true
	cfg.Metrics.Namespace = "wiki"
	reg := prometheus.NewRegistry()

	module, err := confluence.New(cfg, confluence.WithPrometheusRegisterer(reg))
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if _, err := module.Parse(context.Background(), `<p>a<blink>b</blink>`); err != nil {
		t.Fatalf("parse: %v", err)
	}

	count, err := testutil.GatherAndCount(reg, "wiki_parse_diagnostics_total", "wiki_parse_fallback_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count != 3 {
		t.Fatalf("expected 3 series, got %d", count)
	}
}

func TestModuleLoggerProvider(t *testing.T) {
	cfg := confluence.DefaultConfig()
	cfg.Features.Logger = true
	cfg.Logging.Provider = "gologger"
	cfg.Logging.Format = "json"

	module, err := confluence.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	if module.LoggerProvider() == nil {
		t.Fatal("expected a logger provider")
	}

	if _, err := confluence.NewLoggerProvider(confluence.LoggingConfig{Provider: "syslog"}); !errors.Is(err, confluence.ErrLoggingProviderUnknown) {
		t.Fatalf("expected ErrLoggingProviderUnknown, got %v", err)
	}
}

type recordingDispatcher struct {
	handlers []any
}

type subscription struct{}

func (subscription) Unsubscribe() {}

func (d *recordingDispatcher) RegisterCommand(handler any) (confluence.CommandSubscription, error) {
	d.handlers = append(d.handlers, handler)
	return subscription{}, nil
}

func TestModuleRegisterCommands(t *testing.T) {
	cfg := confluence.DefaultConfig()
	cfg.Features.Markdown = true
	module, err := confluence.New(cfg)
	if err != nil {
		t.Fatalf("new module: %v", err)
	}

	results := &fixtures.ResultCollector[confluence.CommandResult]{}
	reg := fixtures.NewRecordingRegistry()
	dispatcher := &recordingDispatcher{}
	registered, err := module.RegisterCommands(confluence.RegistrationOptions{
		Registry:   reg,
		Dispatcher: dispatcher,
		FS:         fstest.MapFS{"docs/a.md": {Data: []byte("hello\n")}},
		Sink: func(_ context.Context, r confluence.CommandResult) {
			results.Add(r)
		},
	})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(reg.Handlers) != 2 || len(dispatcher.handlers) != 2 || len(registered.Subscriptions) != 2 {
		t.Fatalf("unexpected registrations: registry=%d dispatcher=%d subscriptions=%d",
			len(reg.Handlers), len(dispatcher.handlers), len(registered.Subscriptions))
	}

	ctx := context.Background()
	handlers := registered.Handlers
	if err := handlers.Content.Execute(ctx, confluence.ParseContentCommand{Markup: "<p>x</p>"}); err != nil {
		t.Fatalf("content: %v", err)
	}
	if err := handlers.Directory.Execute(ctx, confluence.ParseDirectoryCommand{Directory: "docs"}); err != nil {
		t.Fatalf("directory: %v", err)
	}
	got := results.Items()
	if len(got) != 2 || got[0].Document.Text() != "x" || got[1].Document.Text() != "hello" {
		t.Fatalf("unexpected results %+v", got)
	}
}

func TestModuleRegisterCommandsJoinsErrors(t *testing.T) {
	module, err := confluence.New(confluence.DefaultConfig())
	if err != nil {
		t.Fatalf("new module: %v", err)
	}
	failure := errors.New("registry closed")
	reg := fixtures.NewRecordingRegistry()
	reg.Err = failure

	registered, err := module.RegisterCommands(confluence.RegistrationOptions{Registry: reg})
	if !errors.Is(err, failure) {
		t.Fatalf("expected registry error, got %v", err)
	}
	if registered == nil || registered.Handlers.Content == nil || registered.Handlers.Directory != nil {
		t.Fatal("expected the content handler to be built without markdown")
	}
}
