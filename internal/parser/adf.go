package parser

import (
	"strings"

	"github.com/goliatone/go-confluence-content/internal/ingest"
	"github.com/goliatone/go-confluence-content/internal/nodes"
)

// ADF node types mapped to first-class nodes.
const (
	adfDecisionList = "decision-list"
	adfDecisionItem = "decision-item"
	adfPanel        = "panel"
)

var adfPanelTypes = map[string]string{
	"info":    nodes.PanelInfo,
	"note":    nodes.PanelNote,
	"tip":     nodes.PanelSuccess,
	"success": nodes.PanelSuccess,
	"warning": nodes.PanelWarning,
	"error":   nodes.PanelError,
}

// adfNode is the generic form of an ac:adf-node: a type tag plus attributes
// gathered from both element attributes and ac:adf-attribute children.
type adfNode struct {
	el       *ingest.Element
	nodeType string
	attrs    map[string]string
}

func decodeADF(el *ingest.Element) adfNode {
	n := adfNode{
		el:       el,
		nodeType: strings.ToLower(strings.TrimSpace(el.AttrValue("type"))),
		attrs:    map[string]string{},
	}
	for _, attr := range el.Attrs {
		if attr.Local != "type" {
			n.attrs[attr.Local] = attr.Value
		}
	}
	for _, child := range el.Elements() {
		if child.Name() == "ac:adf-attribute" {
			n.attrs[strings.ToLower(child.AttrValue("key"))] = strings.TrimSpace(child.Text())
		}
	}
	return n
}

func (n adfNode) attr(name string) string {
	return n.attrs[name]
}

// buildADFExtension bridges the first adf-node of a wrapper. A wrapper
// without one yields no node.
func buildADFExtension(b *builder, el *ingest.Element, sc scope) nodes.Node {
	var node, fallback *ingest.Element
	for _, child := range el.Elements() {
		switch child.Name() {
		case "ac:adf-node":
			if node == nil {
				node = child
			}
		case "ac:adf-fallback":
			if fallback == nil {
				fallback = child
			}
		}
	}
	if node == nil {
		return nil
	}
	return bridgeADF(b, node, fallback, sc)
}

func buildADFNode(b *builder, el *ingest.Element, sc scope) nodes.Node {
	return bridgeADF(b, el, nil, sc)
}

// bridgeADF maps a generic ADF node onto the node set. Direct mapping wins;
// the legacy fallback block only fills an otherwise empty result.
func bridgeADF(b *builder, el, fallback *ingest.Element, sc scope) nodes.Node {
	n := decodeADF(el)
	switch n.nodeType {
	case adfDecisionList:
		return bridgeDecisionList(b, n, fallback, sc)
	case adfPanel:
		return bridgePanel(b, n, fallback, sc)
	}
	b.diags.UnknownADFNodeType(n.nodeType)
	return nil
}

func bridgeDecisionList(b *builder, n adfNode, fallback *ingest.Element, sc scope) nodes.Node {
	var items []nodes.Node
	for _, child := range n.el.Elements() {
		switch {
		case child.Name() == "ac:adf-node" && decodeADF(child).nodeType == adfDecisionItem:
			items = append(items, bridgeDecisionItem(b, decodeADF(child), sc))
		case child.Local == "li":
			items = append(items, legacyDecisionItem(b, child, sc))
		case child.Local == "ul" || child.Local == "ol":
			for _, li := range child.Elements() {
				if li.Local == "li" {
					items = append(items, legacyDecisionItem(b, li, sc))
				}
			}
		}
	}
	if len(items) == 0 && fallback != nil {
		for _, li := range fallbackListItems(fallback) {
			items = append(items, legacyDecisionItem(b, li, sc))
		}
	}
	return &nodes.DecisionList{
		Base:    b.base(sc, items),
		LocalID: n.attr("local-id"),
	}
}

func bridgeDecisionItem(b *builder, n adfNode, sc scope) nodes.Node {
	var content []nodes.Node
	for _, child := range n.el.Elements() {
		if child.Name() == "ac:adf-content" {
			content = append(content, b.children(child, sc)...)
		}
	}
	return &nodes.DecisionItem{
		Base:    b.base(sc, content),
		LocalID: n.attr("local-id"),
		State:   strings.ToUpper(strings.TrimSpace(n.attr("state"))),
	}
}

// legacyDecisionItem maps an HTML li from a decision list.
func legacyDecisionItem(b *builder, li *ingest.Element, sc scope) nodes.Node {
	state := strings.ToUpper(strings.TrimSpace(li.AttrValue("data-decision-state")))
	if state == "" {
		state = nodes.DecisionDecided
	}
	return &nodes.DecisionItem{
		Base:    b.base(sc, b.children(li, sc)),
		LocalID: firstAttr(li, "data-local-id", "data-decision-local-id"),
		State:   state,
	}
}

// fallbackListItems prefers the items of a ul.decision-list and otherwise
// takes every outermost li in the fallback block.
func fallbackListItems(fallback *ingest.Element) []*ingest.Element {
	isLI := func(el *ingest.Element) bool { return el.Local == "li" }
	lists := descendants(fallback, func(el *ingest.Element) bool {
		return el.Local == "ul" && hasClass(el, "decision-list")
	})
	if len(lists) > 0 {
		return descendants(lists[0], isLI)
	}
	return descendants(fallback, isLI)
}

func bridgePanel(b *builder, n adfNode, fallback *ingest.Element, sc scope) nodes.Node {
	kind := strings.ToLower(strings.TrimSpace(n.attr("panel-type")))
	panelType, ok := adfPanelTypes[kind]
	if !ok {
		panelType = nodes.PanelPanel
	}
	name := "panel"
	if _, notification := panelTypes[kind]; notification {
		name = kind
	}

	var content []nodes.Node
	for _, child := range n.el.Elements() {
		switch child.Name() {
		case "ac:adf-content":
			content = append(content, b.children(child, sc)...)
		case "ac:adf-node":
			if bridged := bridgeADF(b, child, nil, sc); bridged != nil {
				content = append(content, bridged)
			}
		}
	}
	if len(content) == 0 && fallback != nil {
		content = b.children(fallback, sc)
	}

	return &nodes.Panel{
		Base:      b.base(sc, content),
		MacroInfo: nodes.MacroInfo{Name: name, LocalID: n.attr("local-id")},
		PanelType: panelType,
		BGColor:   n.attr("bg-color"),
	}
}
