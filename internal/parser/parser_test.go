package parser_test

import (
	"context"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-confluence-content/internal/diagnostics"
	"github.com/goliatone/go-confluence-content/internal/document"
	"github.com/goliatone/go-confluence-content/internal/identity"
	"github.com/goliatone/go-confluence-content/internal/links"
	"github.com/goliatone/go-confluence-content/internal/nodes"
	"github.com/goliatone/go-confluence-content/internal/parser"
)

func mustParse(t *testing.T, markup string, opts ...parser.Option) *document.Document {
	t.Helper()
	doc, err := parser.New(opts...).Parse(context.Background(), markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc
}

func TestParseRootConsolidation(t *testing.T) {
	multi := mustParse(t, "<h1>Title</h1><p>Body</p>")
	if multi.Root == nil || multi.Root.Type() != nodes.TypeFragment {
		t.Fatalf("expected fragment root, got %#v", multi.Root)
	}
	if len(multi.Root.Children()) != 2 {
		t.Fatalf("expected 2 root children, got %d", len(multi.Root.Children()))
	}
	if got := multi.Text(); got != "Title\n\nBody" {
		t.Fatalf("unexpected text %q", got)
	}

	single := mustParse(t, "<h1>Title</h1>")
	heading, ok := single.Root.(*nodes.Heading)
	if !ok {
		t.Fatalf("expected heading root, got %T", single.Root)
	}
	if heading.ID() != 1 || len(heading.Path()) != 0 {
		t.Fatalf("unexpected root identity id=%d path=%v", heading.ID(), heading.Path())
	}
	if heading.Level != 1 {
		t.Fatalf("expected level 1, got %d", heading.Level)
	}
}

func TestParseEmptyInput(t *testing.T) {
	doc := mustParse(t, "")
	if doc.Root != nil {
		t.Fatalf("expected nil root, got %T", doc.Root)
	}
	if doc.Text() != "" {
		t.Fatalf("expected empty text, got %q", doc.Text())
	}
	if len(doc.Walk()) != 0 {
		t.Fatalf("expected empty walk")
	}
	if doc.HasDiagnostics() {
		t.Fatalf("unexpected diagnostics %v", doc.Metadata.Diagnostics)
	}
}

func TestParseLinkCanonicalURIs(t *testing.T) {
	cases := []struct {
		name   string
		markup string
		want   string
		kind   string
	}{
		{
			name:   "page",
			markup: `<p><ac:link><ri:page ri:space-key="FOO" ri:content-title="Bar" ri:version-at-save="7" /></ac:link></p>`,
			want:   "page://FOO/Bar@v7",
			kind:   "page",
		},
		{
			name:   "attachment",
			markup: `<p><ac:link><ri:attachment ri:filename="file.pdf" ri:version-at-save="3" /></ac:link></p>`,
			want:   "attach://file.pdf@v3",
			kind:   "attachment",
		},
		{
			name:   "user",
			markup: `<p><ac:link><ri:user ri:account-id="acc-1" /></ac:link></p>`,
			want:   "user://acc-1",
			kind:   "user",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := mustParse(t, tc.markup)
			found := document.FindAllOf[*nodes.Link](doc)
			if len(found) != 1 {
				t.Fatalf("expected one link, got %d", len(found))
			}
			link := found[0]
			if got := link.CanonicalURI(); got != tc.want {
				t.Fatalf("CanonicalURI() = %q, want %q", got, tc.want)
			}
			if link.LinkType != tc.kind {
				t.Fatalf("LinkType = %q, want %q", link.LinkType, tc.kind)
			}
			ris := document.FindAllOf[*nodes.ResourceIdentifier](doc)
			if len(ris) != 1 {
				t.Fatalf("expected the identifier as a link child, got %d", len(ris))
			}
		})
	}
}

func TestParseResourceIdentifierKinds(t *testing.T) {
	cases := []struct {
		element string
		kind    string
	}{
		{`<ri:user ri:account-id="acc-1" />`, links.KindUser},
		{`<ri:page ri:content-title="Home" ri:space-key="DOC" />`, links.KindPage},
		{`<ri:blog-post ri:content-title="News" ri:space-key="DOC" ri:posting-day="2024/01/02" />`, links.KindBlogPost},
		{`<ri:space ri:space-key="DOC" />`, links.KindSpace},
		{`<ri:attachment ri:filename="a.png"><ri:page ri:content-title="Home" /></ri:attachment>`, links.KindAttachment},
		{`<ri:content-entity ri:content-id="42" />`, links.KindContentEntity},
		{`<ri:shortcut ri:key="jira" ri:parameter="ABC-1" />`, links.KindShortcut},
		{`<ri:url ri:value="https://example.com" />`, links.KindURL},
	}

	for _, tc := range cases {
		t.Run(tc.kind, func(t *testing.T) {
			doc := mustParse(t, `<p><ac:link>`+tc.element+`</ac:link></p>`)
			link := document.FindAllOf[*nodes.Link](doc)[0]
			if err := link.Link.Validate(); err != nil {
				t.Fatalf("link validate: %v", err)
			}
			if got := link.Link.Kind(); got != tc.kind || link.LinkType != tc.kind {
				t.Fatalf("kind = %q/%q, want %q", got, link.LinkType, tc.kind)
			}
			ris := document.FindAllOf[*nodes.ResourceIdentifier](doc)
			if len(ris) != 1 {
				t.Fatalf("expected one identifier, got %d", len(ris))
			}
			if err := ris[0].Ref.Validate(); err != nil || ris[0].Ref.Kind() != tc.kind {
				t.Fatalf("identifier ref kind=%q err=%v", ris[0].Ref.Kind(), err)
			}
		})
	}
}

func TestParseLinkBodies(t *testing.T) {
	doc := mustParse(t, `<p><ac:link ac:anchor="intro"><ri:page ri:content-title="Home" /><ac:plain-text-link-body><![CDATA[Go home]]></ac:plain-text-link-body></ac:link></p>`)
	link := document.FindAllOf[*nodes.Link](doc)[0]
	if link.Anchor != "intro" {
		t.Fatalf("expected anchor intro, got %q", link.Anchor)
	}
	if got := nodes.TextContent(link); got != "Go home" {
		t.Fatalf("expected plain body text, got %q", got)
	}

	anchorOnly := mustParse(t, `<p><ac:link ac:anchor="top"><ac:link-body>Top</ac:link-body></ac:link></p>`)
	link = document.FindAllOf[*nodes.Link](anchorOnly)[0]
	if link.LinkType != nodes.LinkAnchor {
		t.Fatalf("expected anchor link type, got %q", link.LinkType)
	}

	mail := mustParse(t, `<p><a href="mailto:ops@example.com">mail</a></p>`)
	link = document.FindAllOf[*nodes.Link](mail)[0]
	if link.LinkType != nodes.LinkMailto {
		t.Fatalf("expected mailto link type, got %q", link.LinkType)
	}
}

func TestParseOrderedListStart(t *testing.T) {
	doc := mustParse(t, `<ol start="5"><li>a</li><li>b</li><li>c</li></ol>`)
	if got := doc.Text(); got != "5. a\n6. b\n7. c" {
		t.Fatalf("unexpected text %q", got)
	}
	list, ok := doc.Root.(*nodes.List)
	if !ok {
		t.Fatalf("expected list root, got %T", doc.Root)
	}
	if list.ListType != nodes.ListOrdered || list.StartAt() != 5 {
		t.Fatalf("unexpected list %s start=%d", list.ListType, list.StartAt())
	}
}

func TestParseListDepthScopes(t *testing.T) {
	doc := mustParse(t, `<ul><li>one<ul><li>two</li></ul></li></ul>`)
	items := document.FindAllOf[*nodes.ListItem](doc)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	for i, want := range []int{1, 2} {
		scope := items[i].ListScope()
		if scope == nil || scope.Depth != want {
			t.Fatalf("item %d: expected depth %d, got %+v", i, want, scope)
		}
	}
	if doc.Root.ListScope() != nil {
		t.Fatalf("expected no list scope on the outer list")
	}
	texts := document.FindAllOf[*nodes.Text](doc)
	if len(texts) != 2 || texts[1].ListScope() == nil || texts[1].ListScope().Depth != 2 {
		t.Fatalf("expected nested text at depth 2")
	}
	if got := doc.Text(); got != "• one\n  • two" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestParseTaskLists(t *testing.T) {
	markup := `<ac:task-list>` +
		`<ac:task><ac:task-id>1</ac:task-id><ac:task-status>complete</ac:task-status><ac:task-body>Done</ac:task-body></ac:task>` +
		`<ac:task><ac:task-id>2</ac:task-id><ac:task-status>incomplete</ac:task-status><ac:task-body>Todo</ac:task-body></ac:task>` +
		`</ac:task-list>`
	doc := mustParse(t, markup)
	list, ok := doc.Root.(*nodes.List)
	if !ok || list.ListType != nodes.ListTask {
		t.Fatalf("expected task list root, got %#v", doc.Root)
	}
	items := document.FindAllOf[*nodes.ListItem](doc)
	if len(items) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(items))
	}
	if items[0].TaskID != "1" || items[0].Status != nodes.TaskComplete {
		t.Fatalf("unexpected first task %+v", items[0])
	}
	if items[1].Status != nodes.TaskIncomplete {
		t.Fatalf("unexpected second task status %q", items[1].Status)
	}
	if got := doc.Text(); got != "✓ Done\n○ Todo" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestParseTaskListMacro(t *testing.T) {
	markup := `<ac:structured-macro ac:name="task-list" ac:macro-id="m-1">` +
		`<ac:task-item ac:completed="true" ac:task-id="t1">Ship</ac:task-item>` +
		`<ac:task-item ac:task-id="t2">Review</ac:task-item>` +
		`</ac:structured-macro>`
	doc := mustParse(t, markup)
	list, ok := doc.Root.(*nodes.List)
	if !ok || list.ListType != nodes.ListTask || list.LocalID != "m-1" {
		t.Fatalf("unexpected root %#v", doc.Root)
	}
	if got := doc.Text(); got != "✓ Ship\n○ Review" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestParseUnknownMacro(t *testing.T) {
	doc := mustParse(t, `<ac:structured-macro ac:name="xyz"><ac:parameter ac:name="Colour">red</ac:parameter></ac:structured-macro>`)
	if want := []string{"unknown_macro:xyz"}; !reflect.DeepEqual(doc.Metadata.Diagnostics, want) {
		t.Fatalf("diagnostics = %v, want %v", doc.Metadata.Diagnostics, want)
	}
	macro, ok := doc.Root.(*nodes.Macro)
	if !ok {
		t.Fatalf("expected generic macro, got %T", doc.Root)
	}
	if macro.MacroName() != "xyz" || macro.Parameters["Colour"] != "red" {
		t.Fatalf("unexpected macro %+v", macro)
	}
	if macro.Kind() != identity.KindMacro {
		t.Fatalf("expected macro kind, got %q", macro.Kind())
	}
}

func TestParseCodeMacro(t *testing.T) {
	doc := mustParse(t, `<ac:structured-macro ac:name="code"><ac:parameter ac:name="language">python</ac:parameter><ac:plain-text-body><![CDATA[x=1]]></ac:plain-text-body></ac:structured-macro>`)
	code, ok := doc.Root.(*nodes.CodeBlock)
	if !ok {
		t.Fatalf("expected code block, got %T", doc.Root)
	}
	if code.Language != "python" || code.Code != "x=1" {
		t.Fatalf("unexpected code block %+v", code)
	}
	if got := doc.Text(); got != "```python\nx=1\n```" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestParsePanelsAndKinds(t *testing.T) {
	markup := `<ac:structured-macro ac:name="info"><ac:parameter ac:name="title">Heads up</ac:parameter><ac:rich-text-body><p>Hi</p></ac:rich-text-body></ac:structured-macro>` +
		`<ac:structured-macro ac:name="panel"><ac:rich-text-body><p>Plain</p></ac:rich-text-body></ac:structured-macro>` +
		`<p><time datetime="2024-03-14" /></p>`
	doc := mustParse(t, markup)

	panels := document.FindAllOf[*nodes.Panel](doc)
	if len(panels) != 2 {
		t.Fatalf("expected 2 panels, got %d", len(panels))
	}
	if panels[0].PanelType != nodes.PanelInfo || panels[0].Title != "Heads up" {
		t.Fatalf("unexpected info panel %+v", panels[0])
	}
	if got := doc.FindByKind(identity.KindNotification); len(got) != 1 {
		t.Fatalf("expected one notification, got %d", len(got))
	}
	if got := doc.FindByKind(identity.KindPanel); len(got) != 1 {
		t.Fatalf("expected one plain panel, got %d", len(got))
	}
	if got := doc.FindByKind(identity.KindDate); len(got) != 1 {
		t.Fatalf("expected one date, got %d", len(got))
	}
}

func TestParseLayoutScopes(t *testing.T) {
	markup := `<ac:layout>` +
		`<ac:layout-section ac:type="two_equal"><ac:layout-cell><p>L</p></ac:layout-cell><ac:layout-cell><p>R</p></ac:layout-cell></ac:layout-section>` +
		`<ac:layout-section ac:type="single"><ac:layout-cell><p>X</p></ac:layout-cell></ac:layout-section>` +
		`</ac:layout>`
	doc := mustParse(t, markup)

	paragraphs := document.FindAllOf[*nodes.Paragraph](doc)
	want := []nodes.LayoutScope{
		{SectionIndex: 0, CellIndex: 0},
		{SectionIndex: 0, CellIndex: 1},
		{SectionIndex: 1, CellIndex: 0},
	}
	if len(paragraphs) != len(want) {
		t.Fatalf("expected %d paragraphs, got %d", len(want), len(paragraphs))
	}
	for i, p := range paragraphs {
		scope := p.LayoutScope()
		if scope == nil || *scope != want[i] {
			t.Fatalf("paragraph %d: expected %+v, got %+v", i, want[i], scope)
		}
	}
	sections := document.FindAllOf[*nodes.LayoutSection](doc)
	if len(sections) != 2 || sections[0].SectionType != "two_equal" {
		t.Fatalf("unexpected sections %+v", sections)
	}
	if sections[0].LayoutScope() != nil {
		t.Fatalf("sections sit outside any cell")
	}
}

func TestParseTables(t *testing.T) {
	doc := mustParse(t, `<table><tbody><tr><th>A</th><th>B</th></tr><tr><td colspan="2">1</td></tr></tbody></table>`)
	table, ok := doc.Root.(*nodes.Table)
	if !ok {
		t.Fatalf("expected table root, got %T", doc.Root)
	}
	if !table.HasHeader {
		t.Fatalf("expected header row")
	}
	if len(table.Cells) != 2 || len(table.Cells[1]) != 2 {
		t.Fatalf("expected padded 2x2 matrix, got %v", table.Cells)
	}
	if table.Cells[1][1] != nil {
		t.Fatalf("expected nil padding cell")
	}
	cells := document.FindAllOf[*nodes.TableCell](doc)
	if cells[2].Colspan != 2 || cells[2].Rowspan != 1 {
		t.Fatalf("unexpected spans %d/%d", cells[2].Rowspan, cells[2].Colspan)
	}
	if got := doc.Text(); got != "A | B\n1" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestParseADFBridge(t *testing.T) {
	decisions := `<ac:adf-extension><ac:adf-node type="decision-list">` +
		`<ac:adf-attribute key="local-id">dl-1</ac:adf-attribute>` +
		`<ac:adf-node type="decision-item"><ac:adf-attribute key="state">DECIDED</ac:adf-attribute><ac:adf-content>Ship it</ac:adf-content></ac:adf-node>` +
		`</ac:adf-node><ac:adf-fallback><ul class="decision-list"><li>Ship it</li></ul></ac:adf-fallback></ac:adf-extension>`
	doc := mustParse(t, decisions)
	list, ok := doc.Root.(*nodes.DecisionList)
	if !ok {
		t.Fatalf("expected decision list, got %T", doc.Root)
	}
	if list.LocalID != "dl-1" || len(list.Content) != 1 {
		t.Fatalf("unexpected decision list %+v", list)
	}
	if got := doc.Text(); got != "✅ Ship it" {
		t.Fatalf("unexpected text %q", got)
	}

	fallbackOnly := `<ac:adf-extension><ac:adf-node type="decision-list" /><ac:adf-fallback><ul class="decision-list"><li data-decision-state="PENDING">Maybe</li></ul></ac:adf-fallback></ac:adf-extension>`
	doc = mustParse(t, fallbackOnly)
	items := document.FindAllOf[*nodes.DecisionItem](doc)
	if len(items) != 1 || items[0].State != nodes.DecisionPending {
		t.Fatalf("expected one pending fallback item, got %+v", items)
	}

	panel := `<ac:adf-extension><ac:adf-node type="panel"><ac:adf-attribute key="panel-type">note</ac:adf-attribute><ac:adf-content><p>Careful</p></ac:adf-content></ac:adf-node></ac:adf-extension>`
	doc = mustParse(t, panel)
	p, ok := doc.Root.(*nodes.Panel)
	if !ok {
		t.Fatalf("expected panel, got %T", doc.Root)
	}
	if p.MacroName() != "note" || p.Kind() != identity.KindNotification {
		t.Fatalf("unexpected panel %s/%s", p.MacroName(), p.Kind())
	}

	unknown := mustParse(t, `<ac:adf-extension><ac:adf-node type="mystery" /></ac:adf-extension>`)
	if unknown.Root != nil {
		t.Fatalf("expected no node for unknown adf type, got %T", unknown.Root)
	}
	if want := []string{"unknown_adf_node_type:mystery"}; !reflect.DeepEqual(unknown.Metadata.Diagnostics, want) {
		t.Fatalf("diagnostics = %v, want %v", unknown.Metadata.Diagnostics, want)
	}
}

func TestParseUnknownElement(t *testing.T) {
	doc := mustParse(t, `<p>keep</p><blink>drop</blink>`)
	if want := []string{"unknown_element:blink"}; !reflect.DeepEqual(doc.Metadata.Diagnostics, want) {
		t.Fatalf("diagnostics = %v, want %v", doc.Metadata.Diagnostics, want)
	}
	if got := doc.Text(); got != "keep" {
		t.Fatalf("unexpected text %q", got)
	}
	if _, ok := doc.Root.(*nodes.Paragraph); !ok {
		t.Fatalf("expected the paragraph to be the only root, got %T", doc.Root)
	}
}

func TestParseFallsBackOnMalformedMarkup(t *testing.T) {
	doc := mustParse(t, `<p>first<p>second`)
	if len(doc.Metadata.Diagnostics) == 0 {
		t.Fatalf("expected a fallback diagnostic")
	}
	if first := doc.Metadata.Diagnostics[0]; !strings.HasPrefix(first, "XML parsing failed: ") {
		t.Fatalf("unexpected diagnostic %q", first)
	}
	text := doc.Text()
	if !strings.Contains(text, "first") || !strings.Contains(text, "second") {
		t.Fatalf("expected lenient content, got %q", text)
	}
}

func TestParseLenientImpliedEndTags(t *testing.T) {
	list := mustParse(t, `<ul><li>one<li>two</ul>`)
	items := document.FindAllOf[*nodes.ListItem](list)
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	for i, item := range items {
		if scope := item.ListScope(); scope == nil || scope.Depth != 1 {
			t.Fatalf("item %d: expected depth 1, got %+v", i, scope)
		}
		if want := []int{i}; !reflect.DeepEqual(item.Path(), want) {
			t.Fatalf("item %d: path %v, want %v", i, item.Path(), want)
		}
	}
	if got := list.Text(); got != "• one\n• two" {
		t.Fatalf("unexpected list text %q", got)
	}

	table := mustParse(t, `<table><tr><td>a<td>b<tr><td>c</table>`)
	tbl, ok := table.Root.(*nodes.Table)
	if !ok {
		t.Fatalf("expected table root, got %T", table.Root)
	}
	if len(tbl.Cells) != 2 || len(tbl.Cells[0]) != 2 || len(tbl.Cells[1]) != 2 {
		t.Fatalf("expected 2x2 matrix, got %v", tbl.Cells)
	}
	if tbl.Cells[1][1] != nil {
		t.Fatalf("expected nil padding cell")
	}
	if got := table.Text(); got != "a | b\nc" {
		t.Fatalf("unexpected table text %q", got)
	}
}

func TestParseIgnorableAndCoercedMarkup(t *testing.T) {
	cases := []struct {
		name   string
		markup string
		text   string
		absent string
	}{
		{
			name:   "colgroup",
			markup: `<table><colgroup><col /><col /></colgroup><tbody><tr><td>a</td><td>b</td></tr></tbody></table>`,
			text:   "a | b",
		},
		{
			name:   "inline comment marker",
			markup: `<p><ac:inline-comment-marker ac:ref="c-1">x</ac:inline-comment-marker> kept</p>`,
			text:   "x kept",
		},
		{
			name:   "malformed start",
			markup: `<ol start="abc"><li>one</li><li>two</li></ol>`,
			text:   "1. one\n2. two",
		},
		{
			name:   "stray parameter and task ids",
			markup: `<p>a<ac:parameter ac:name="x">y</ac:parameter><ac:task-id>3</ac:task-id></p>`,
			text:   "a",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			doc := mustParse(t, tc.markup)
			if doc.HasDiagnostics() {
				t.Fatalf("unexpected diagnostics %v", doc.Metadata.Diagnostics)
			}
			if got := doc.Text(); got != tc.text {
				t.Fatalf("text = %q, want %q", got, tc.text)
			}
		})
	}

	doc := mustParse(t, `<ol start="abc"><li>one</li></ol>`)
	if list := doc.Root.(*nodes.List); list.Start != nil {
		t.Fatalf("expected nil start, got %d", *list.Start)
	}
	for _, n := range mustParse(t, `<table><colgroup><col /></colgroup><tr><td>a</td></tr></table>`).Walk() {
		if n.Type() == "colgroup" || n.Type() == "col" {
			t.Fatalf("unexpected %s node", n.Type())
		}
	}
}

func TestParseRaiseOnFinish(t *testing.T) {
	doc, err := parser.New(parser.WithRaiseOnFinish(true)).Parse(context.Background(), `<p>ok</p><foo />`)
	if err == nil {
		t.Fatalf("expected aggregate error")
	}
	if doc == nil || doc.Text() != "ok" {
		t.Fatalf("expected the document alongside the error")
	}
	entries, ok := diagnostics.FromError(err)
	if !ok || !reflect.DeepEqual(entries, []string{"unknown_element:foo"}) {
		t.Fatalf("unexpected error diagnostics %v (ok=%v)", entries, ok)
	}

	if _, err := parser.New(parser.WithRaiseOnFinish(true)).Parse(context.Background(), `<p>clean</p>`); err != nil {
		t.Fatalf("clean parse should not raise: %v", err)
	}
}

func TestParseHeadingAnchor(t *testing.T) {
	doc := mustParse(t, `<h2>Getting Started</h2>`)
	heading := doc.Root.(*nodes.Heading)
	if heading.Level != 2 {
		t.Fatalf("expected level 2, got %d", heading.Level)
	}
	if heading.Anchor == "" || strings.Contains(heading.Anchor, " ") || heading.Anchor != strings.ToLower(heading.Anchor) {
		t.Fatalf("unexpected anchor %q", heading.Anchor)
	}
}

func TestParseDropsIndentationWhitespace(t *testing.T) {
	doc := mustParse(t, "<ul>\n  <li>a</li>\n  <li>b</li>\n</ul>")
	list := doc.Root.(*nodes.List)
	if len(list.Content) != 2 {
		t.Fatalf("expected only list items, got %d children", len(list.Content))
	}
}

func TestParseFindAllMatchesWalk(t *testing.T) {
	doc := mustParse(t, `<h1>Title</h1><p>Some <strong>bold</strong> text</p>`)
	all := doc.FindAll()
	if len(all) != 1 || len(all[0]) != len(doc.Walk()) {
		t.Fatalf("FindAll() should equal Walk()")
	}
	if doc.Metadata.NodeCount != len(doc.Walk()) {
		t.Fatalf("NodeCount %d != walk %d", doc.Metadata.NodeCount, len(doc.Walk()))
	}
	for i, n := range doc.Walk() {
		if n.ID() != i+1 {
			t.Fatalf("node %d has id %d", i, n.ID())
		}
	}
	byType := doc.FindAll(nodes.TypeParagraph, nodes.TypeTextEffect)
	if len(byType[0]) != 1 || len(byType[1]) != 1 {
		t.Fatalf("unexpected grouped results %v", byType)
	}
}

func TestParseIsDeterministic(t *testing.T) {
	markup := `<h1>Title</h1><ul><li>a<ol><li>b</li></ol></li></ul><ac:structured-macro ac:name="xyz" />`
	p := parser.New()
	first, err := p.Parse(context.Background(), markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	second, err := p.Parse(context.Background(), markup)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if first.Text() != second.Text() {
		t.Fatalf("text differs: %q vs %q", first.Text(), second.Text())
	}
	if !reflect.DeepEqual(first.Metadata.Diagnostics, second.Metadata.Diagnostics) {
		t.Fatalf("diagnostics differ")
	}
	if first.Metadata.Fingerprint != second.Metadata.Fingerprint {
		t.Fatalf("fingerprint should be stable")
	}
	if first.Metadata.ParseID == second.Metadata.ParseID {
		t.Fatalf("parse ids should differ")
	}
	a, b := first.Walk(), second.Walk()
	if len(a) != len(b) {
		t.Fatalf("walk lengths differ")
	}
	for i := range a {
		if a[i].Type() != b[i].Type() || a[i].Kind() != b[i].Kind() || !reflect.DeepEqual(a[i].Path(), b[i].Path()) {
			t.Fatalf("node %d differs", i)
		}
	}
}

func TestParseConcurrentUse(t *testing.T) {
	p := parser.New()
	var wg sync.WaitGroup
	texts := make([]string, 8)
	for i := range texts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			doc, err := p.Parse(context.Background(), `<p>same</p>`)
			if err == nil {
				texts[i] = doc.Text()
			}
		}(i)
	}
	wg.Wait()
	for i, text := range texts {
		if text != "same" {
			t.Fatalf("goroutine %d got %q", i, text)
		}
	}
}

type recorder struct {
	mu          sync.Mutex
	durations   int
	nodeCounts  []int
	reasons     []string
	fallbackSrc []string
}

func (r *recorder) ObserveParseDuration(string, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.durations++
}

func (r *recorder) ObserveNodeCount(_ string, count int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nodeCounts = append(r.nodeCounts, count)
}

func (r *recorder) IncrementDiagnostic(reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reasons = append(r.reasons, reason)
}

func (r *recorder) IncrementFallback(source string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fallbackSrc = append(r.fallbackSrc, source)
}

func TestParseRecordsMetrics(t *testing.T) {
	rec := &recorder{}
	p := parser.New(parser.WithMetrics(rec))

	doc, err := p.Parse(context.Background(), `<p>a<blink>b</blink>`)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if rec.durations != 1 {
		t.Fatalf("expected one duration sample, got %d", rec.durations)
	}
	if len(rec.nodeCounts) != 1 || rec.nodeCounts[0] != doc.Metadata.NodeCount {
		t.Fatalf("unexpected node counts %v", rec.nodeCounts)
	}
	if !reflect.DeepEqual(rec.fallbackSrc, []string{document.SourceStorage}) {
		t.Fatalf("unexpected fallbacks %v", rec.fallbackSrc)
	}
	want := []string{diagnostics.ReasonXMLParseFailed, diagnostics.ReasonUnknownElement}
	if !reflect.DeepEqual(rec.reasons, want) {
		t.Fatalf("reasons = %v, want %v", rec.reasons, want)
	}
}

func TestParseSourceKeepsMetadata(t *testing.T) {
	meta := document.Metadata{
		Source:      document.SourceMarkdown,
		FrontMatter: map[string]any{"title": "Notes"},
	}
	doc, err := parser.New().ParseSource(context.Background(), "<p>x</p>", meta)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if doc.Metadata.Source != document.SourceMarkdown || doc.Metadata.FrontMatter["title"] != "Notes" {
		t.Fatalf("metadata not preserved: %+v", doc.Metadata)
	}
	if doc.Metadata.Fingerprint != identity.DocumentUUID("<p>x</p>") {
		t.Fatalf("unexpected fingerprint")
	}
}
