package render

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-confluence-content/internal/nodes"
)

// renderList emits one line per item. depth is the nesting level of the
// list itself; items sit one level deeper unless their scope says otherwise.
func renderList(l *nodes.List, depth int) string {
	var lines []string
	ordinal := l.StartAt()
	for _, child := range l.Content {
		switch c := child.(type) {
		case nil:
		case *nodes.ListItem:
			lines = append(lines, listItemLines(l, c, ordinal, depth+1)...)
			ordinal++
		case *nodes.List:
			if text := renderList(c, depth); text != "" {
				lines = append(lines, text)
			}
		default:
			if text := strings.TrimSpace(render(child, depth)); text != "" {
				lines = append(lines, text)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func listItemLines(l *nodes.List, item *nodes.ListItem, ordinal, depth int) []string {
	if scope := item.ListScope(); scope != nil && scope.Depth > 0 {
		depth = scope.Depth
	}

	var (
		body   []nodes.Node
		nested []string
	)
	for _, child := range item.Content {
		if sub, ok := child.(*nodes.List); ok {
			if text := renderList(sub, depth); text != "" {
				nested = append(nested, text)
			}
			continue
		}
		body = append(body, child)
	}

	indent := strings.Repeat("  ", max(depth-1, 0))
	line := indent + marker(l, item, ordinal) + join(body, "\n", depth)
	return append([]string{strings.TrimRight(line, " ")}, nested...)
}

func marker(l *nodes.List, item *nodes.ListItem, ordinal int) string {
	listType := nodes.ListUnordered
	if l != nil {
		listType = l.ListType
	}
	if item.Status != "" && listType != nodes.ListOrdered {
		listType = nodes.ListTask
	}
	switch listType {
	case nodes.ListOrdered:
		return fmt.Sprintf("%d. ", ordinal)
	case nodes.ListTask:
		switch item.Status {
		case nodes.TaskComplete:
			return "✓ "
		case nodes.TaskIncomplete:
			return "○ "
		}
	}
	return "• "
}

func renderRows(content []nodes.Node) string {
	var lines []string
	for _, child := range content {
		var text string
		if row, ok := child.(*nodes.TableRow); ok {
			text = renderRow(row)
		} else {
			text = strings.TrimSpace(render(child, 0))
		}
		if text != "" {
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, "\n")
}

func renderRow(row *nodes.TableRow) string {
	var (
		cells []string
		empty = true
	)
	for _, child := range row.Content {
		if child == nil {
			continue
		}
		text := strings.TrimSpace(render(child, 0))
		if text != "" {
			empty = false
		}
		cells = append(cells, text)
	}
	if empty {
		return ""
	}
	return strings.Join(cells, " | ")
}
