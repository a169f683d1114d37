package query_test

import (
	"context"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-confluence-content/internal/document"
	"github.com/goliatone/go-confluence-content/internal/nodes"
	"github.com/goliatone/go-confluence-content/internal/parser"
	"github.com/goliatone/go-confluence-content/internal/query"
)

const sample = `<h1>Intro</h1><h2>Setup</h2><p>Install the tool</p>` +
	`<ul><li>one<ul><li>two</li></ul></li></ul>` +
	`<ac:structured-macro ac:name="info"><ac:rich-text-body><p>Heads up</p></ac:rich-text-body></ac:structured-macro>` +
	`<ac:layout><ac:layout-section><ac:layout-cell><p>left</p></ac:layout-cell></ac:layout-section>` +
	`<ac:layout-section><ac:layout-cell><p>right</p></ac:layout-cell></ac:layout-section></ac:layout>`

func parseSample(t *testing.T) *document.Document {
	t.Helper()
	doc, err := parser.New().Parse(context.Background(), sample)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestSelect(t *testing.T) {
	doc := parseSample(t)

	cases := []struct {
		name       string
		expression string
		want       []string
	}{
		{"heading level", `type == "heading" && level == 2`, []string{"Setup"}},
		{"notification kind", `kind == "macro:notification"`, []string{"Heads up"}},
		{"macro name", `macro == "info"`, []string{"Heads up"}},
		{"nested items", `type == "list_item" && depth >= 2`, []string{"two"}},
		{"layout section", `type == "paragraph" && section == 1`, []string{"right"}},
		{"text match", `type == "paragraph" && text contains "Install"`, []string{"Install the tool"}},
		{"top level headings", `len(path) == 1 && type == "heading"`, []string{"Intro", "Setup"}},
		{"no match", `type == "table"`, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := query.Select(doc, tc.expression)
			if err != nil {
				t.Fatalf("select: %v", err)
			}
			if len(got) != len(tc.want) {
				t.Fatalf("expected %d matches, got %d", len(tc.want), len(got))
			}
			for i, n := range got {
				if text := nodes.TextContent(n); text != tc.want[i] {
					t.Fatalf("match %d: expected %q, got %q", i, tc.want[i], text)
				}
			}
		})
	}
}

func TestSelectKeepsTraversalOrder(t *testing.T) {
	doc := parseSample(t)
	got, err := query.Select(doc, `type == "paragraph"`)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].ID() <= got[i-1].ID() {
			t.Fatalf("matches out of order at %d", i)
		}
	}
}

func TestCompileRejectsInvalidExpressions(t *testing.T) {
	for _, expression := range []string{`type ==`, `id + 1`, `unknown_var == 1`} {
		_, err := query.Compile(expression)
		if err == nil {
			t.Fatalf("expected %q to fail", expression)
		}
		if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
			t.Fatalf("expected validation category for %q, got %v", expression, err)
		}
	}
}

func TestQueryReuse(t *testing.T) {
	q, err := query.Compile(`type == "heading"`)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	if q.String() != `type == "heading"` {
		t.Fatalf("unexpected source %q", q.String())
	}

	doc := parseSample(t)
	first, err := q.Select(doc)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	second, err := q.Select(doc)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(first) != 2 || len(second) != 2 {
		t.Fatalf("expected stable results, got %d and %d", len(first), len(second))
	}

	empty, err := q.Select(nil)
	if err != nil || len(empty) != 0 {
		t.Fatalf("expected empty result for nil document")
	}
	if ok, _ := q.Match(nil); ok {
		t.Fatalf("nil node should not match")
	}
}

func TestSelectByReferenceKind(t *testing.T) {
	markup := `<p><ac:link><ri:page ri:content-title="Home" ri:space-key="DOC" /></ac:link>` +
		` and <a href="https://example.com">site</a></p>`
	doc, err := parser.New().Parse(context.Background(), markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	links, err := query.Select(doc, `type == "link" && ref == "page"`)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(links) != 1 {
		t.Fatalf("expected one page link, got %d", len(links))
	}

	refs, err := query.Select(doc, `type == "resource_identifier" && ref == "page"`)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(refs) != 1 {
		t.Fatalf("expected one page identifier, got %d", len(refs))
	}

	external, err := query.Select(doc, `ref == "external"`)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(external) != 1 || external[0].Type() != nodes.TypeLink {
		t.Fatalf("expected the external link, got %v", external)
	}
}
