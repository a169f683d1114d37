package parser

import (
	"strings"

	"github.com/goliatone/go-confluence-content/internal/diagnostics"
	"github.com/goliatone/go-confluence-content/internal/ingest"
	"github.com/goliatone/go-confluence-content/internal/nodes"
)

// scope is the recursion state written onto every node at construction.
// It is passed by value so siblings never observe each other's changes.
type scope struct {
	listDepth int
	layout    *nodes.LayoutScope
}

func (s scope) enterListItem() scope {
	s.listDepth++
	return s
}

func (s scope) enterCell(section, cell int) scope {
	s.layout = &nodes.LayoutScope{SectionIndex: section, CellIndex: cell}
	return s
}

func (s scope) nodeScope() nodes.Scope {
	var out nodes.Scope
	if s.listDepth > 0 {
		out.List = &nodes.ListScope{Depth: s.listDepth}
	}
	if s.layout != nil {
		layout := *s.layout
		out.Layout = &layout
	}
	return out
}

// builder holds the state of a single parse.
type builder struct {
	rules *registry
	diags *diagnostics.Collector
}

func (b *builder) base(sc scope, children []nodes.Node) nodes.Base {
	return nodes.Base{Content: children, Scope: sc.nodeScope()}
}

// children builds the nodes for every child item of el in document order.
func (b *builder) children(el *ingest.Element, sc scope) []nodes.Node {
	if el == nil {
		return nil
	}
	var out []nodes.Node
	for _, item := range el.Children {
		out = append(out, b.item(item, sc)...)
	}
	return out
}

func (b *builder) item(item ingest.Item, sc scope) []nodes.Node {
	switch v := item.(type) {
	case *ingest.CharData:
		if text := b.text(v.Text, sc); text != nil {
			return []nodes.Node{text}
		}
	case *ingest.Element:
		return b.element(v, sc)
	}
	return nil
}

// text drops whitespace-only runs that contain a line break; they come from
// source indentation rather than content.
func (b *builder) text(s string, sc scope) nodes.Node {
	if s == "" {
		return nil
	}
	if strings.TrimSpace(s) == "" && strings.ContainsAny(s, "\r\n") {
		return nil
	}
	return &nodes.Text{Base: b.base(sc, nil), Value: s}
}

// element dispatches el through the tag registry.
func (b *builder) element(el *ingest.Element, sc scope) []nodes.Node {
	name := el.Name()
	if _, ok := b.rules.ignored[name]; ok {
		return nil
	}
	if _, ok := b.rules.unwrapped[name]; ok {
		return b.children(el, sc)
	}

	rule, ok := b.rules.elements[name]
	if !ok {
		b.diags.UnknownElement(el.Local)
		return nil
	}
	if n := rule(b, el, sc); n != nil {
		return []nodes.Node{n}
	}
	return nil
}

// descendants returns the elements below el matching fn, without descending
// into matches.
func descendants(el *ingest.Element, fn func(*ingest.Element) bool) []*ingest.Element {
	var out []*ingest.Element
	for _, child := range el.Elements() {
		if fn(child) {
			out = append(out, child)
			continue
		}
		out = append(out, descendants(child, fn)...)
	}
	return out
}

func hasClass(el *ingest.Element, class string) bool {
	for _, c := range strings.Fields(el.AttrValue("class")) {
		if c == class {
			return true
		}
	}
	return false
}
