// Package nodes defines the typed document tree produced by the storage
// format parser. The node set is closed: every variant lives in this package
// and is recognised by its Type discriminant.
package nodes

import "strings"

// Node is implemented by every tree variant. Identity fields (ID, Kind, Path)
// are zero until the identity pass stamps the tree.
type Node interface {
	ID() int
	Type() string
	Kind() string
	Path() []int
	Children() []Node
	ListScope() *ListScope
	LayoutScope() *LayoutScope

	meta() *Base
}

// MacroNode is implemented by variants built from a structured macro.
type MacroNode interface {
	Node
	MacroName() string
}

// ListScope records how deep a node sits inside nested list items.
// Top-level list items and their content have depth 1.
type ListScope struct {
	Depth int `json:"depth" yaml:"depth"`
}

// LayoutScope addresses the layout cell enclosing a node.
type LayoutScope struct {
	SectionIndex int `json:"section_index" yaml:"section_index"`
	CellIndex    int `json:"cell_index" yaml:"cell_index"`
}

// Scope groups the contextual values written by the parser at construction.
type Scope struct {
	List   *ListScope
	Layout *LayoutScope
}

// Base carries the fields shared by all variants. Content holds the ordered
// children; trees returned by the parser must be treated as read-only.
type Base struct {
	Content []Node
	Scope   Scope

	id   int
	kind string
	path []int
}

// ID returns the document-unique identifier assigned by the identity pass.
func (b *Base) ID() int { return b.id }

// Kind returns the coarse semantic category assigned by the identity pass.
func (b *Base) Kind() string { return b.kind }

// Path returns a copy of the root-relative index path.
func (b *Base) Path() []int {
	if b.path == nil {
		return nil
	}
	out := make([]int, len(b.path))
	copy(out, b.path)
	return out
}

// Children returns the ordered child nodes.
func (b *Base) Children() []Node { return b.Content }

// ListScope returns the list nesting scope, or nil outside list items.
func (b *Base) ListScope() *ListScope { return b.Scope.List }

// LayoutScope returns the layout cell address, or nil outside layouts.
func (b *Base) LayoutScope() *LayoutScope { return b.Scope.Layout }

func (b *Base) meta() *Base { return b }

// Stamp writes identity fields onto n. It is reserved for the identity pass.
func Stamp(n Node, id int, path []int, kind string) {
	if n == nil {
		return
	}
	m := n.meta()
	m.id = id
	m.kind = kind
	m.path = append([]int{}, path...)
}

// Walk returns n and all of its descendants in pre-order.
func Walk(n Node) []Node {
	if n == nil {
		return nil
	}
	var out []Node
	Inspect(n, func(node Node) bool {
		out = append(out, node)
		return true
	})
	return out
}

// Inspect traverses the tree in pre-order, calling fn for every node. When fn
// returns false the children of that node are skipped.
func Inspect(n Node, fn func(Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, child := range n.Children() {
		Inspect(child, fn)
	}
}

// TextContent concatenates the raw text carried by n and its descendants,
// without any rendering decorations.
func TextContent(n Node) string {
	var sb strings.Builder
	Inspect(n, func(node Node) bool {
		switch v := node.(type) {
		case *Text:
			sb.WriteString(v.Value)
		case *CodeBlock:
			sb.WriteString(v.Code)
		}
		return true
	})
	return sb.String()
}
