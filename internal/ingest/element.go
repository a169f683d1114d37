// Package ingest turns storage format markup into a neutral element tree,
// using a strict XML pass with a lenient HTML fallback.
package ingest

import "strings"

// Well known namespace URIs and their conventional prefixes.
const (
	NamespaceMacro    = "http://atlassian.com/content"
	NamespaceResource = "http://atlassian.com/resource/identifier"
	NamespaceI18n     = "http://atlassian.com/i18n"

	PrefixMacro    = "ac"
	PrefixResource = "ri"
	PrefixI18n     = "at"
)

var namespacePrefixes = map[string]string{
	NamespaceMacro:    PrefixMacro,
	NamespaceResource: PrefixResource,
	NamespaceI18n:     PrefixI18n,
}

// Item is an element or a character data run.
type Item interface {
	item()
}

// Attr is a single attribute with its prefix split off.
type Attr struct {
	Prefix string
	Local  string
	Value  string
}

// Element is a parsed tag. Local is lower-cased.
type Element struct {
	Prefix   string
	Local    string
	Attrs    []Attr
	Children []Item
}

// CharData is a text run, including CDATA sections.
type CharData struct {
	Text string
}

func (*Element) item()  {}
func (*CharData) item() {}

// Name returns the prefixed tag name, e.g. "ac:link".
func (e *Element) Name() string {
	if e.Prefix == "" {
		return e.Local
	}
	return e.Prefix + ":" + e.Local
}

// Attr returns the value of the named attribute. A prefixed name
// ("ac:name") matches that exact attribute first and then any attribute with
// the same local name; an unprefixed name matches by local name.
func (e *Element) Attr(name string) (string, bool) {
	prefix, local := splitName(name)
	if prefix != "" {
		for _, attr := range e.Attrs {
			if attr.Prefix == prefix && attr.Local == local {
				return attr.Value, true
			}
		}
	}
	for _, attr := range e.Attrs {
		if attr.Local == local {
			return attr.Value, true
		}
	}
	return "", false
}

// AttrValue returns the named attribute or an empty string.
func (e *Element) AttrValue(name string) string {
	value, _ := e.Attr(name)
	return value
}

// Elements returns the element children, skipping character data.
func (e *Element) Elements() []*Element {
	var out []*Element
	for _, child := range e.Children {
		if el, ok := child.(*Element); ok {
			out = append(out, el)
		}
	}
	return out
}

// Child returns the first element child with the given local name.
func (e *Element) Child(local string) *Element {
	for _, child := range e.Children {
		if el, ok := child.(*Element); ok && el.Local == local {
			return el
		}
	}
	return nil
}

// Text concatenates all character data below e.
func (e *Element) Text() string {
	var sb strings.Builder
	collectText(e, &sb)
	return sb.String()
}

func collectText(item Item, sb *strings.Builder) {
	switch v := item.(type) {
	case *CharData:
		sb.WriteString(v.Text)
	case *Element:
		for _, child := range v.Children {
			collectText(child, sb)
		}
	}
}

func splitName(name string) (prefix, local string) {
	name = strings.ToLower(strings.TrimSpace(name))
	if idx := strings.IndexByte(name, ':'); idx >= 0 {
		return name[:idx], name[idx+1:]
	}
	return "", name
}

func prefixFor(space string) string {
	if prefix, ok := namespacePrefixes[space]; ok {
		return prefix
	}
	return strings.ToLower(space)
}
