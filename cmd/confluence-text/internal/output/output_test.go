package output

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/goccy/go-yaml"

	"github.com/goliatone/go-confluence-content/internal/parser"
)

func TestNewReportNestsTree(t *testing.T) {
	doc, err := parser.New().Parse(context.Background(), `<ul><li>one</li></ul>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	report := NewReport(doc, nil)
	if len(report.Nodes) != 1 {
		t.Fatalf("expected a single root, got %d", len(report.Nodes))
	}
	root := report.Nodes[0]
	if root.Type != "list" {
		t.Fatalf("unexpected root type %q", root.Type)
	}
	if len(root.Children) != 1 || root.Children[0].List == nil || root.Children[0].List.Depth != 1 {
		t.Fatalf("unexpected list item entry %+v", root.Children)
	}
	if len(root.Path) != 0 {
		t.Fatalf("expected empty root path, got %v", root.Path)
	}
}

func TestWriteYAML(t *testing.T) {
	doc, err := parser.New().Parse(context.Background(), `<p>Hi</p>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, FormatYAML, doc, nil); err != nil {
		t.Fatalf("write: %v", err)
	}

	var decoded struct {
		Text     string `yaml:"text"`
		Metadata struct {
			Source string `yaml:"source"`
		} `yaml:"metadata"`
	}
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if decoded.Text != "Hi" || decoded.Metadata.Source != "storage" {
		t.Fatalf("unexpected yaml %+v", decoded)
	}
}

func TestWriteDiagnosticsPlain(t *testing.T) {
	var buf bytes.Buffer
	entries := []string{"unknown_macro:foo", "XML parsing failed: unexpected EOF"}
	if err := WriteDiagnostics(&buf, entries); err != nil {
		t.Fatalf("write: %v", err)
	}
	want := "unknown_macro foo\nXML parsing failed unexpected EOF\n"
	if got := buf.String(); got != want {
		t.Fatalf("unexpected output %q, want %q", got, want)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Fatal("expected no colour codes for a buffer")
	}
}

func TestWriteTextEmptyDocument(t *testing.T) {
	doc, err := parser.New().Parse(context.Background(), "")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	var buf bytes.Buffer
	if err := Write(&buf, FormatText, doc, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}
