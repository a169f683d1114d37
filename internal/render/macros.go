package render

import (
	"strings"

	"github.com/goliatone/go-confluence-content/internal/nodes"
)

var panelLabels = map[string]string{
	nodes.PanelNote:    "📝 NOTE",
	nodes.PanelSuccess: "✅ SUCCESS",
	nodes.PanelWarning: "⚠️ WARNING",
	nodes.PanelError:   "❌ ERROR",
	nodes.PanelInfo:    "ℹ️ INFO",
	nodes.PanelPanel:   "📋 PANEL",
}

// renderMacro applies the template of a macro variant. ok is false for
// variants that render as their plain content.
func renderMacro(n nodes.MacroNode, depth int) (string, bool) {
	content := func() string {
		return strings.TrimSpace(join(n.Children(), blockSeparator, depth))
	}

	switch v := n.(type) {
	case *nodes.Status:
		text := "🏷️ Status: " + firstNonEmpty(v.Title, "Status")
		if colour := strings.TrimSpace(v.Colour); colour != "" {
			text += " (" + colour + ")"
		}
		return text, true
	case *nodes.Panel:
		return renderPanel(v, content()), true
	case *nodes.Expand:
		return withDetail("▶ "+firstNonEmpty(v.Title, "Expand"), "", content(), "\n"), true
	case *nodes.TOC:
		return "📑 Table of Contents", true
	case *nodes.Details:
		return withDetail("📋 Details", "", content(), ":\n"), true
	case *nodes.Attachments:
		text := "📎 Attachments"
		if patterns := strings.TrimSpace(v.Patterns); patterns != "" {
			text += " (" + patterns + ")"
		}
		return text, true
	case *nodes.Jira:
		if strings.TrimSpace(v.Key) == "" {
			return "🎫 JIRA Issue", true
		}
		text := "🎫 " + strings.TrimSpace(v.Key)
		if server := strings.TrimSpace(v.Server); server != "" && server != "System Jira" {
			text += " (" + server + ")"
		}
		return text, true
	case *nodes.Profile:
		if id := firstNonEmpty(v.AccountID, v.UserKey); id != "" {
			return "👤 Profile: " + id, true
		}
		return "👤 User Profile", true
	case *nodes.Anchor:
		return withDetail("⚓ Anchor", "", v.AnchorName, ": "), true
	case *nodes.Excerpt:
		return withDetail("📄 Excerpt", "", content(), ": "), true
	case *nodes.ExcerptInclude:
		title := strings.TrimSpace(v.ContentTitle)
		switch {
		case title == "":
			return "📝 Excerpt Include", true
		case strings.TrimSpace(v.PostingDay) != "":
			return "📝 Excerpt: " + title + " (" + strings.TrimSpace(v.PostingDay) + ")", true
		}
		return "📝 Excerpt: " + title, true
	case *nodes.Include:
		if title := strings.TrimSpace(v.ContentTitle); title != "" {
			return "📄 Include: " + title, true
		}
		return "📄 Include Page", true
	case *nodes.ViewFile:
		if name := strings.TrimSpace(v.Filename); name != "" {
			return "📁 File: " + name, true
		}
		return "📁 File Viewer", true
	case *nodes.ViewPDF:
		if name := strings.TrimSpace(v.Filename); name != "" {
			return "📄 PDF: " + name, true
		}
		return "📄 PDF Viewer", true
	case *nodes.Gadget:
		return withDetail("🔧 Gadget", "", v.URL, ": "), true
	case *nodes.PagePropertiesReport:
		return withDetail("📊 Page Properties Report", "", v.Labels, ": "), true
	case *nodes.ChildrenDisplay:
		return "📂 Child Pages", true
	case *nodes.TasksReport:
		return withDetail("📊 Tasks Report", "", v.Spaces, ": "), true
	case *nodes.Macro:
		return withDetail("🔧 Macro: "+v.Name, "", content(), "\n"), true
	}
	return "", false
}

// renderPanel writes "label: title\ncontent", dropping absent parts. A
// custom icon text replaces the label.
func renderPanel(p *nodes.Panel, content string) string {
	label := strings.TrimSpace(p.IconText)
	if label == "" {
		label = panelLabels[p.PanelType]
	}
	if label == "" {
		label = panelLabels[nodes.PanelPanel]
	}

	title := strings.TrimSpace(p.Title)
	switch {
	case title != "" && content != "":
		return label + ": " + title + "\n" + content
	case title != "":
		return label + ": " + title
	case content != "":
		return label + ": " + content
	}
	return label
}
