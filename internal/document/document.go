// Package document assembles parsed content into a read-only Document and
// exposes the traversal and lookup helpers callers query it with.
package document

import (
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-confluence-content/internal/diagnostics"
	"github.com/goliatone/go-confluence-content/internal/identity"
	"github.com/goliatone/go-confluence-content/internal/nodes"
	"github.com/goliatone/go-confluence-content/internal/render"
)

// Input dialects recorded in Metadata.Source.
const (
	SourceStorage  = "storage"
	SourceMarkdown = "markdown"
)

// Metadata describes how a document was produced.
type Metadata struct {
	Diagnostics []string       `json:"diagnostics" yaml:"diagnostics"`
	Fingerprint uuid.UUID      `json:"fingerprint" yaml:"fingerprint"`
	ParseID     uuid.UUID      `json:"parse_id" yaml:"parse_id"`
	Source      string         `json:"source" yaml:"source"`
	FrontMatter map[string]any `json:"front_matter,omitempty" yaml:"front_matter,omitempty"`
	NodeCount   int            `json:"node_count" yaml:"node_count"`
}

// Document is the result of a parse. Root is nil for empty input, the only
// top-level node when there is exactly one, and a Fragment otherwise.
type Document struct {
	Content  []nodes.Node
	Root     nodes.Node
	Metadata Metadata

	once sync.Once
	text string
}

// New consolidates content under a root and stamps identities on the tree.
func New(content []nodes.Node, meta Metadata) *Document {
	content = compact(content)
	doc := &Document{
		Content:  content,
		Metadata: meta,
	}
	switch len(content) {
	case 0:
	case 1:
		doc.Root = content[0]
	default:
		doc.Root = nodes.NewFragment(content)
	}
	if doc.Metadata.Source == "" {
		doc.Metadata.Source = SourceStorage
	}
	doc.Metadata.NodeCount = identity.Assign(doc.Root)
	return doc
}

func compact(content []nodes.Node) []nodes.Node {
	out := make([]nodes.Node, 0, len(content))
	for _, n := range content {
		if n != nil {
			out = append(out, n)
		}
	}
	return out
}

// Text returns the canonical plain-text rendering, computed on first use.
func (d *Document) Text() string {
	d.once.Do(func() {
		d.text = render.Join(d.Content)
	})
	return d.text
}

// Walk returns every node in pre-order, starting at the root.
func (d *Document) Walk() []nodes.Node {
	if d == nil || d.Root == nil {
		return []nodes.Node{}
	}
	return nodes.Walk(d.Root)
}

// FindAll filters the traversal by node type. Without arguments it returns
// a single list equal to Walk; otherwise one list per requested type, each
// in traversal order.
func (d *Document) FindAll(types ...string) [][]nodes.Node {
	all := d.Walk()
	if len(types) == 0 {
		return [][]nodes.Node{all}
	}

	index := make(map[string][]int, len(types))
	for i, t := range types {
		index[t] = append(index[t], i)
	}
	out := make([][]nodes.Node, len(types))
	for i := range out {
		out[i] = []nodes.Node{}
	}
	for _, n := range all {
		for _, i := range index[n.Type()] {
			out[i] = append(out[i], n)
		}
	}
	return out
}

// FindAllOf returns every node of concrete type T in traversal order.
func FindAllOf[T nodes.Node](d *Document) []T {
	var out []T
	for _, n := range d.Walk() {
		if typed, ok := n.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

// FindByKind returns the nodes classified as kind.
func (d *Document) FindByKind(kind string) []nodes.Node {
	var out []nodes.Node
	for _, n := range d.Walk() {
		if n.Kind() == kind {
			out = append(out, n)
		}
	}
	return out
}

// NodeAt resolves a root-relative path; the empty path is the root.
func (d *Document) NodeAt(path []int) (nodes.Node, bool) {
	if d == nil || d.Root == nil {
		return nil, false
	}
	current := d.Root
	for _, idx := range path {
		children := current.Children()
		if idx < 0 || idx >= len(children) || children[idx] == nil {
			return nil, false
		}
		current = children[idx]
	}
	return current, true
}

// Parent returns the node enclosing n, or false for the root.
func (d *Document) Parent(n nodes.Node) (nodes.Node, bool) {
	if n == nil {
		return nil, false
	}
	path := n.Path()
	if len(path) == 0 {
		return nil, false
	}
	return d.NodeAt(path[:len(path)-1])
}

// StableID derives an id for n from the document fingerprint and the node
// path, so the same node of the same markup keeps its id across parses.
func (d *Document) StableID(n nodes.Node) uuid.UUID {
	if n == nil {
		return uuid.Nil
	}
	return identity.NodeUUID(d.Metadata.Fingerprint, n.Path())
}

// HasDiagnostics reports whether the parse recorded any issue.
func (d *Document) HasDiagnostics() bool {
	return len(d.Metadata.Diagnostics) > 0
}

// DiagnosticsByReason groups diagnostics by their reason prefix.
func (d *Document) DiagnosticsByReason() map[string][]string {
	out := map[string][]string{}
	for _, entry := range d.Metadata.Diagnostics {
		reason := diagnostics.Reason(entry)
		out[reason] = append(out[reason], entry)
	}
	return out
}
