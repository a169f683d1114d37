package parser

import (
	"github.com/goliatone/go-confluence-content/internal/ingest"
	"github.com/goliatone/go-confluence-content/internal/nodes"
)

// elementRule constructs the node for one element. Returning nil emits
// nothing at that position.
type elementRule func(b *builder, el *ingest.Element, sc scope) nodes.Node

// macroRule constructs the node for one structured macro.
type macroRule func(b *builder, m *macro, sc scope) nodes.Node

// registry is the fixed dispatch table shared by every parse. Element keys
// are prefixed tag names ("ac:link", "p"); macro keys are lower-cased macro
// names.
type registry struct {
	elements  map[string]elementRule
	macros    map[string]macroRule
	ignored   map[string]struct{}
	unwrapped map[string]struct{}
}

func newRegistry() *registry {
	r := &registry{
		elements: map[string]elementRule{
			"p":          buildParagraph,
			"h1":         buildHeading,
			"h2":         buildHeading,
			"h3":         buildHeading,
			"h4":         buildHeading,
			"h5":         buildHeading,
			"h6":         buildHeading,
			"hr":         buildRule,
			"br":         buildLineBreak,
			"blockquote": buildBlockquote,
			"ul":         buildList,
			"ol":         buildList,
			"li":         buildListItem,
			"table":      buildTable,
			"tr":         buildTableRow,
			"th":         buildTableCell,
			"td":         buildTableCell,
			"a":          buildAnchorLink,
			"img":        buildHTMLImage,
			"div":        buildContainer,
			"section":    buildContainer,
			"pre":        buildPre,
			"time":       buildTime,

			"ac:layout":           buildLayout,
			"ac:layout-section":   buildStandaloneSection,
			"ac:layout-cell":      buildStandaloneCell,
			"ac:link":             buildLink,
			"ac:image":            buildImage,
			"ac:emoticon":         buildEmoticon,
			"ac:placeholder":      buildPlaceholder,
			"ac:task-list":        buildTaskList,
			"ac:task":             buildTask,
			"ac:structured-macro": buildMacro,
			"ac:macro":            buildMacro,
			"ac:adf-extension":    buildADFExtension,
			"ac:adf-node":         buildADFNode,
			"at:i18n":             buildI18n,
			"ri:user":             buildResourceIdentifier,
			"ri:page":             buildResourceIdentifier,
			"ri:blog-post":        buildResourceIdentifier,
			"ri:space":            buildResourceIdentifier,
			"ri:attachment":       buildResourceIdentifier,
			"ri:content-entity":   buildResourceIdentifier,
			"ri:shortcut":         buildResourceIdentifier,
			"ri:url":              buildResourceIdentifier,
		},
		ignored: set(
			"colgroup", "col", "caption", "input",
			"ac:parameter", "ac:plain-text-body", "ac:plain-text-link-body",
			"ac:adf-attribute", "ac:adf-mark", "ac:caption",
			"ac:task-id", "ac:task-uuid", "ac:task-status",
		),
		unwrapped: set(
			"thead", "tbody", "tfoot",
			"ac:inline-comment-marker", "ac:adf-fallback", "ac:adf-content",
			"ac:rich-text-body", "ac:link-body", "ac:task-body",
		),
	}

	for _, name := range []string{"strong", "b", "em", "i", "u", "del", "s", "strike", "sub", "sup", "code", "span", "small", "big", "ins", "mark", "cite", "q"} {
		r.elements[name] = buildTextEffect
	}

	r.macros = map[string]macroRule{
		"status":                 buildStatusMacro,
		"panel":                  buildPanelMacro,
		"info":                   buildPanelMacro,
		"note":                   buildPanelMacro,
		"tip":                    buildPanelMacro,
		"warning":                buildPanelMacro,
		"code":                   buildCodeMacro,
		"code-block":             buildCodeMacro,
		"noformat":               buildCodeMacro,
		"expand":                 buildExpandMacro,
		"toc":                    buildTOCMacro,
		"details":                buildDetailsMacro,
		"attachments":            buildAttachmentsMacro,
		"jira":                   buildJiraMacro,
		"profile":                buildProfileMacro,
		"anchor":                 buildAnchorMacro,
		"excerpt":                buildExcerptMacro,
		"excerpt-include":        buildExcerptIncludeMacro,
		"include":                buildIncludeMacro,
		"view-file":              buildViewFileMacro,
		"viewpdf":                buildViewPDFMacro,
		"view-pdf":               buildViewPDFMacro,
		"gadget":                 buildGadgetMacro,
		"page-properties":        buildPagePropertiesMacro,
		"page-properties-report": buildPagePropertiesReportMacro,
		"detailssummary":         buildPagePropertiesReportMacro,
		"children":               buildChildrenDisplayMacro,
		"children-display":       buildChildrenDisplayMacro,
		"tasks-report-macro":     buildTasksReportMacro,
		"tasks-report":           buildTasksReportMacro,
		"task-list":              buildTaskListMacro,
	}
	return r
}

func set(values ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(values))
	for _, v := range values {
		out[v] = struct{}{}
	}
	return out
}
