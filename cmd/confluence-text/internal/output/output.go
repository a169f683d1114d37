// Package output formats parsed documents for the confluence-text command.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"

	"github.com/goliatone/go-confluence-content/internal/diagnostics"
	"github.com/goliatone/go-confluence-content/internal/document"
	"github.com/goliatone/go-confluence-content/internal/nodes"
	"github.com/goliatone/go-confluence-content/internal/render"
)

// Supported output formats.
const (
	FormatText        = "text"
	FormatJSON        = "json"
	FormatYAML        = "yaml"
	FormatDiagnostics = "diagnostics"
)

// Entry is the serialised form of a node.
type Entry struct {
	ID       int                `json:"id" yaml:"id"`
	UID      string             `json:"uid" yaml:"uid"`
	Type     string             `json:"type" yaml:"type"`
	Kind     string             `json:"kind" yaml:"kind"`
	Path     []int              `json:"path" yaml:"path,flow"`
	Macro    string             `json:"macro,omitempty" yaml:"macro,omitempty"`
	List     *nodes.ListScope   `json:"list,omitempty" yaml:"list,omitempty"`
	Layout   *nodes.LayoutScope `json:"layout,omitempty" yaml:"layout,omitempty"`
	Text     string             `json:"text,omitempty" yaml:"text,omitempty"`
	Children []Entry            `json:"children,omitempty" yaml:"children,omitempty"`
}

// Report is the top-level structured output.
type Report struct {
	Metadata document.Metadata `json:"metadata" yaml:"metadata"`
	Text     string            `json:"text" yaml:"text"`
	Nodes    []Entry           `json:"nodes" yaml:"nodes"`
}

// NewEntry converts n and, when nested is set, its subtree.
func NewEntry(doc *document.Document, n nodes.Node, nested bool) Entry {
	entry := Entry{
		ID:     n.ID(),
		UID:    doc.StableID(n).String(),
		Type:   n.Type(),
		Kind:   n.Kind(),
		Path:   n.Path(),
		List:   n.ListScope(),
		Layout: n.LayoutScope(),
		Text:   render.Text(n),
	}
	if entry.Path == nil {
		entry.Path = []int{}
	}
	if macro, ok := n.(nodes.MacroNode); ok {
		entry.Macro = macro.MacroName()
	}
	if nested {
		for _, child := range n.Children() {
			if child != nil {
				entry.Children = append(entry.Children, NewEntry(doc, child, true))
			}
		}
	}
	return entry
}

// NewReport describes doc. When selected is not nil the nodes section holds
// the selected nodes without their subtrees.
func NewReport(doc *document.Document, selected []nodes.Node) Report {
	report := Report{Metadata: doc.Metadata, Text: doc.Text(), Nodes: []Entry{}}
	if selected != nil {
		for _, n := range selected {
			report.Nodes = append(report.Nodes, NewEntry(doc, n, false))
		}
		return report
	}
	if doc.Root != nil {
		report.Nodes = append(report.Nodes, NewEntry(doc, doc.Root, true))
	}
	return report
}

// Write renders doc to w in format.
func Write(w io.Writer, format string, doc *document.Document, selected []nodes.Node) error {
	switch strings.ToLower(format) {
	case "", FormatText:
		return writeText(w, doc, selected)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(NewReport(doc, selected))
	case FormatYAML:
		data, err := yaml.Marshal(NewReport(doc, selected))
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		_, err = w.Write(data)
		return err
	case FormatDiagnostics:
		return WriteDiagnostics(w, doc.Metadata.Diagnostics)
	default:
		return fmt.Errorf("unsupported format %q", format)
	}
}

func writeText(w io.Writer, doc *document.Document, selected []nodes.Node) error {
	text := doc.Text()
	if selected != nil {
		parts := make([]string, 0, len(selected))
		for _, n := range selected {
			parts = append(parts, render.Text(n))
		}
		text = strings.Join(parts, "\n\n")
	}
	if text == "" {
		return nil
	}
	_, err := fmt.Fprintln(w, text)
	return err
}

var reasonColors = map[string]color.Attribute{
	diagnostics.ReasonUnknownElement:     color.FgYellow,
	diagnostics.ReasonUnknownMacro:       color.FgCyan,
	diagnostics.ReasonUnknownADFNodeType: color.FgMagenta,
}

// WriteDiagnostics prints one diagnostic per line, coloured by reason when w
// is a terminal.
func WriteDiagnostics(w io.Writer, entries []string) error {
	colored := isTerminal(w)
	for _, entry := range entries {
		reason := diagnostics.Reason(entry)
		detail := strings.TrimSpace(strings.TrimPrefix(entry, reason))
		detail = strings.TrimSpace(strings.TrimPrefix(detail, ":"))

		attr, ok := reasonColors[reason]
		if !ok {
			attr = color.FgRed
		}
		label := color.New(attr, color.Bold)
		if colored {
			label.EnableColor()
		} else {
			label.DisableColor()
		}
		line := label.Sprint(reason)
		if detail != "" {
			line += " " + detail
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
