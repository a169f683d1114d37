// Package query filters parsed documents with boolean expressions evaluated
// against each node in traversal order.
//
// Expressions see the following variables:
//
//	id       int     document-unique node id
//	type     string  node type discriminant
//	kind     string  coarse node kind
//	depth    int     list nesting depth, 0 outside list items
//	path     []int   root-relative index path
//	text     string  concatenated descendant text
//	macro    string  macro name for macro variants
//	ref      string  link type for links, reference kind for identifiers
//	level    int     heading level, 0 for other nodes
//	section  int     layout section index, -1 outside layouts
//	cell     int     layout cell index, -1 outside layouts
package query

import (
	"fmt"
	"strconv"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-confluence-content/internal/document"
	"github.com/goliatone/go-confluence-content/internal/nodes"
)

// Text codes attached to query errors.
const (
	CodeInvalidExpression = "QUERY_INVALID_EXPRESSION"
	CodeEvaluation        = "QUERY_EVALUATION_FAILED"
)

type env struct {
	ID      int    `expr:"id"`
	Type    string `expr:"type"`
	Kind    string `expr:"kind"`
	Depth   int    `expr:"depth"`
	Path    []int  `expr:"path"`
	Text    string `expr:"text"`
	Macro   string `expr:"macro"`
	Ref     string `expr:"ref"`
	Level   int    `expr:"level"`
	Section int    `expr:"section"`
	Cell    int    `expr:"cell"`
}

func envFor(n nodes.Node) env {
	e := env{
		ID:      n.ID(),
		Type:    n.Type(),
		Kind:    n.Kind(),
		Path:    n.Path(),
		Text:    nodes.TextContent(n),
		Section: -1,
		Cell:    -1,
	}
	if scope := n.ListScope(); scope != nil {
		e.Depth = scope.Depth
	}
	if scope := n.LayoutScope(); scope != nil {
		e.Section = scope.SectionIndex
		e.Cell = scope.CellIndex
	}
	if macro, ok := n.(nodes.MacroNode); ok {
		e.Macro = macro.MacroName()
	}
	switch typed := n.(type) {
	case *nodes.Heading:
		e.Level = typed.Level
	case *nodes.Link:
		e.Ref = typed.LinkType
	case *nodes.ResourceIdentifier:
		e.Ref = typed.RefType()
	}
	return e
}

// Query is a compiled selector. It is safe for concurrent use.
type Query struct {
	source  string
	program *vm.Program
}

// Compile checks expression against the node environment. The expression
// must evaluate to a boolean.
func Compile(expression string) (*Query, error) {
	program, err := expr.Compile(expression, expr.Env(env{}), expr.AsBool())
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid query expression "+strconv.Quote(expression)).
			WithTextCode(CodeInvalidExpression)
	}
	return &Query{source: expression, program: program}, nil
}

// String returns the source expression.
func (q *Query) String() string { return q.source }

// Match reports whether n satisfies the query.
func (q *Query) Match(n nodes.Node) (bool, error) {
	if n == nil {
		return false, nil
	}
	out, err := expr.Run(q.program, envFor(n))
	if err != nil {
		return false, goerrors.Wrap(err, goerrors.CategoryValidation, fmt.Sprintf("query %q failed on node %d", q.source, n.ID())).
			WithTextCode(CodeEvaluation)
	}
	matched, _ := out.(bool)
	return matched, nil
}

// Select returns the nodes of doc matching q in traversal order.
func (q *Query) Select(doc *document.Document) ([]nodes.Node, error) {
	out := []nodes.Node{}
	if doc == nil {
		return out, nil
	}
	for _, n := range doc.Walk() {
		ok, err := q.Match(n)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, n)
		}
	}
	return out, nil
}

// Select compiles expression and applies it to doc.
func Select(doc *document.Document, expression string) ([]nodes.Node, error) {
	q, err := Compile(expression)
	if err != nil {
		return nil, err
	}
	return q.Select(doc)
}
