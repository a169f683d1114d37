// Package render turns a node tree into its canonical plain-text form.
//
// Block nodes are separated by a blank line, inline nodes concatenate, and
// every macro variant has a fixed icon and label template.
package render

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/goliatone/go-confluence-content/internal/nodes"
)

const blockSeparator = "\n\n"

var blockTypes = map[string]struct{}{
	nodes.TypeParagraph:            {},
	nodes.TypeHeading:              {},
	nodes.TypeRule:                 {},
	nodes.TypeBlockquote:           {},
	nodes.TypeList:                 {},
	nodes.TypeListItem:             {},
	nodes.TypeTable:                {},
	nodes.TypeTableRow:             {},
	nodes.TypeCodeBlock:            {},
	nodes.TypePanel:                {},
	nodes.TypeExpand:               {},
	nodes.TypeTOC:                  {},
	nodes.TypeDetails:              {},
	nodes.TypeAttachments:          {},
	nodes.TypeExcerpt:              {},
	nodes.TypeExcerptInclude:       {},
	nodes.TypeInclude:              {},
	nodes.TypeViewFile:             {},
	nodes.TypeViewPDF:              {},
	nodes.TypePageProperties:       {},
	nodes.TypePagePropertiesReport: {},
	nodes.TypeChildrenDisplay:      {},
	nodes.TypeTasksReport:          {},
	nodes.TypeLayout:               {},
	nodes.TypeLayoutSection:        {},
	nodes.TypeLayoutCell:           {},
	nodes.TypeFragment:             {},
	nodes.TypeContainer:            {},
	nodes.TypeDecisionList:         {},
	nodes.TypeDecisionItem:         {},
	nodes.TypeMacro:                {},
}

// IsBlock reports whether n starts its own block in rendered output.
func IsBlock(n nodes.Node) bool {
	if n == nil {
		return false
	}
	_, ok := blockTypes[n.Type()]
	return ok
}

// Text renders a single node. Block nodes come back trimmed; inline nodes
// keep their surrounding whitespace so callers can concatenate them.
func Text(n nodes.Node) string {
	return render(n, 0)
}

// Join renders sibling nodes, separating blocks with a blank line and
// concatenating runs of inline nodes.
func Join(content []nodes.Node) string {
	return join(content, blockSeparator, 0)
}

func join(content []nodes.Node, sep string, depth int) string {
	var (
		parts  []string
		inline strings.Builder
	)
	flush := func() {
		if text := strings.TrimSpace(inline.String()); text != "" {
			parts = append(parts, text)
		}
		inline.Reset()
	}
	for _, child := range content {
		if child == nil {
			continue
		}
		if !IsBlock(child) {
			inline.WriteString(render(child, depth))
			continue
		}
		flush()
		if text := strings.TrimSpace(render(child, depth)); text != "" {
			parts = append(parts, text)
		}
	}
	flush()
	return strings.Join(parts, sep)
}

func render(n nodes.Node, depth int) string {
	switch v := n.(type) {
	case nil:
		return ""
	case *nodes.Text:
		return collapseSpace(v.Value)
	case *nodes.TextEffect:
		var sb strings.Builder
		for _, child := range v.Content {
			sb.WriteString(render(child, depth))
		}
		return sb.String()
	case *nodes.Rule:
		return "---"
	case *nodes.LineBreak:
		return "\n"
	case *nodes.Blockquote:
		return quote(join(v.Content, blockSeparator, depth))
	case *nodes.List:
		return renderList(v, depth)
	case *nodes.ListItem:
		return strings.Join(listItemLines(nil, v, 0, depth+1), "\n")
	case *nodes.Table:
		return renderRows(v.Content)
	case *nodes.TableRow:
		return renderRow(v)
	case *nodes.TableCell:
		return join(v.Content, " ", depth)
	case *nodes.Link:
		return renderLink(v, depth)
	case *nodes.ResourceIdentifier:
		return resourceLabel(v.Ref)
	case *nodes.Image:
		return renderImage(v)
	case *nodes.Emoticon:
		return renderEmoticon(v)
	case *nodes.Time:
		return withDetail("📅", "Date", v.Datetime, " ")
	case *nodes.Placeholder:
		return withDetail("📝 Placeholder", "", v.Text, ": ")
	case *nodes.I18n:
		if v.Key == "" {
			return ""
		}
		return "🌐 " + v.Key
	case *nodes.DecisionList:
		if len(v.Content) == 0 {
			return "📋 Decision List"
		}
		return join(v.Content, "\n", depth)
	case *nodes.DecisionItem:
		glyph := "⏳"
		if v.State == nodes.DecisionDecided {
			glyph = "✅"
		}
		return withDetail(glyph, "", join(v.Content, " ", depth), " ")
	case *nodes.CodeBlock:
		return renderCode(v)
	case nodes.MacroNode:
		if text, ok := renderMacro(v, depth); ok {
			return text
		}
	}
	return join(n.Children(), blockSeparator, depth)
}

// collapseSpace reduces every whitespace run to a single space.
func collapseSpace(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	space := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			space = true
			continue
		}
		if space {
			sb.WriteByte(' ')
			space = false
		}
		sb.WriteRune(r)
	}
	if space {
		sb.WriteByte(' ')
	}
	return sb.String()
}

func quote(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = "> " + line
	}
	return strings.Join(lines, "\n")
}

// withDetail renders "label{sep}detail", or fallback (then label) when
// detail is empty.
func withDetail(label, fallback, detail, sep string) string {
	detail = strings.TrimSpace(detail)
	switch {
	case detail != "":
		return label + sep + detail
	case fallback != "":
		return label + sep + fallback
	default:
		return label
	}
}

func renderCode(c *nodes.CodeBlock) string {
	code := strings.Trim(c.Code, "\r\n")
	code = strings.TrimRightFunc(code, unicode.IsSpace)
	return fmt.Sprintf("```%s\n%s\n```", c.Language, code)
}
