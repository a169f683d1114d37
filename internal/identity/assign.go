package identity

import (
	"strings"

	"github.com/goliatone/go-confluence-content/internal/nodes"
)

// Kind values that do not mirror a node type.
const (
	KindDate         = "date"
	KindMacro        = "macro"
	KindPanel        = "macro:panel"
	KindNotification = "macro:notification"
)

var notificationMacros = map[string]struct{}{
	"info":    {},
	"note":    {},
	"tip":     {},
	"warning": {},
}

// macroKinds lists node types that classify as macro:<type>.
var macroKinds = map[string]struct{}{
	nodes.TypeExpand:               {},
	nodes.TypeTOC:                  {},
	nodes.TypeDetails:              {},
	nodes.TypeAttachments:          {},
	nodes.TypeJira:                 {},
	nodes.TypeProfile:              {},
	nodes.TypeAnchor:               {},
	nodes.TypeExcerpt:              {},
	nodes.TypeExcerptInclude:       {},
	nodes.TypeInclude:              {},
	nodes.TypeViewFile:             {},
	nodes.TypeViewPDF:              {},
	nodes.TypeGadget:               {},
	nodes.TypePageProperties:       {},
	nodes.TypePagePropertiesReport: {},
	nodes.TypeChildrenDisplay:      {},
	nodes.TypeTasksReport:          {},
}

// KindOf maps a node type, plus the macro name for macro variants, to its
// coarse kind.
func KindOf(nodeType, macroName string) string {
	switch nodeType {
	case nodes.TypeTime:
		return KindDate
	case nodes.TypePanel:
		if _, ok := notificationMacros[strings.ToLower(macroName)]; ok {
			return KindNotification
		}
		return KindPanel
	case nodes.TypeMacro:
		return KindMacro
	}
	if _, ok := macroKinds[nodeType]; ok {
		return "macro:" + nodeType
	}
	return nodeType
}

// Classify returns the kind of n.
func Classify(n nodes.Node) string {
	if n == nil {
		return ""
	}
	name := ""
	if macro, ok := n.(nodes.MacroNode); ok {
		name = macro.MacroName()
	}
	return KindOf(n.Type(), name)
}

// Assign stamps sequential ids, root-relative paths and kinds on the tree in
// pre-order. The root receives id 1 and an empty path. It returns the number
// of nodes stamped.
func Assign(root nodes.Node) int {
	if root == nil {
		return 0
	}
	next := 0
	var visit func(n nodes.Node, path []int)
	visit = func(n nodes.Node, path []int) {
		next++
		nodes.Stamp(n, next, path, Classify(n))
		for i, child := range n.Children() {
			if child == nil {
				continue
			}
			childPath := make([]int, len(path)+1)
			copy(childPath, path)
			childPath[len(path)] = i
			visit(child, childPath)
		}
	}
	visit(root, []int{})
	return next
}
