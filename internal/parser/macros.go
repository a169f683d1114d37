package parser

import (
	"strings"

	"github.com/goliatone/go-confluence-content/internal/ingest"
	"github.com/goliatone/go-confluence-content/internal/links"
	"github.com/goliatone/go-confluence-content/internal/nodes"
)

// Panel types keyed by macro name.
var panelTypes = map[string]string{
	"panel":   nodes.PanelPanel,
	"info":    nodes.PanelInfo,
	"note":    nodes.PanelWarning,
	"tip":     nodes.PanelSuccess,
	"warning": nodes.PanelError,
}

// macro is a decoded structured macro element.
type macro struct {
	el     *ingest.Element
	info   nodes.MacroInfo
	params map[string]*ingest.Element
	names  []string
}

func newMacro(el *ingest.Element) *macro {
	m := &macro{
		el: el,
		info: nodes.MacroInfo{
			Name:    strings.ToLower(strings.TrimSpace(el.AttrValue("ac:name"))),
			MacroID: el.AttrValue("ac:macro-id"),
			LocalID: el.AttrValue("ac:local-id"),
		},
		params: map[string]*ingest.Element{},
	}
	for _, child := range el.Elements() {
		if child.Name() != "ac:parameter" {
			continue
		}
		name := strings.TrimSpace(child.AttrValue("ac:name"))
		key := strings.ToLower(name)
		if _, exists := m.params[key]; exists {
			continue
		}
		m.params[key] = child
		m.names = append(m.names, name)
	}
	return m
}

// param returns the trimmed text of the first parameter with the given
// name, matched case-insensitively.
func (m *macro) param(names ...string) string {
	for _, name := range names {
		if p, ok := m.params[strings.ToLower(name)]; ok {
			if value := strings.TrimSpace(p.Text()); value != "" {
				return value
			}
		}
	}
	return ""
}

func (m *macro) boolParam(name string) bool { return boolValue(m.param(name)) }

func (m *macro) intParam(name string) *int { return intValue(m.param(name)) }

// paramRef returns the resource identifier held by a parameter.
func (m *macro) paramRef(names ...string) (links.Link, bool) {
	for _, name := range names {
		if ref, ok := firstResourceRef(m.params[strings.ToLower(name)]); ok {
			return ref, true
		}
	}
	return links.Link{}, false
}

// parameters returns the raw parameter map keyed by the source name.
func (m *macro) parameters() map[string]string {
	out := make(map[string]string, len(m.names))
	for _, name := range m.names {
		out[name] = strings.TrimSpace(m.params[strings.ToLower(name)].Text())
	}
	return out
}

func (m *macro) richBody(b *builder, sc scope) []nodes.Node {
	return b.children(m.el.Child("rich-text-body"), sc)
}

func (m *macro) plainBody() string {
	if body := m.el.Child("plain-text-body"); body != nil {
		return body.Text()
	}
	return ""
}

// buildMacro routes a structured macro through the macro registry. Unknown
// names still produce a generic node carrying the parameters and body.
func buildMacro(b *builder, el *ingest.Element, sc scope) nodes.Node {
	m := newMacro(el)
	if rule, ok := b.rules.macros[m.info.Name]; ok {
		return rule(b, m, sc)
	}
	b.diags.UnknownMacro(m.info.Name)
	return &nodes.Macro{
		Base:       b.base(sc, m.richBody(b, sc)),
		MacroInfo:  m.info,
		Parameters: m.parameters(),
	}
}

func buildStatusMacro(b *builder, m *macro, sc scope) nodes.Node {
	return &nodes.Status{
		Base:      b.base(sc, nil),
		MacroInfo: m.info,
		Title:     m.param("title"),
		Colour:    m.param("colour", "color"),
		Subtle:    m.boolParam("subtle"),
	}
}

func buildPanelMacro(b *builder, m *macro, sc scope) nodes.Node {
	panelType, ok := panelTypes[m.info.Name]
	if !ok {
		panelType = nodes.PanelPanel
	}
	return &nodes.Panel{
		Base:         b.base(sc, m.richBody(b, sc)),
		MacroInfo:    m.info,
		PanelType:    panelType,
		Title:        m.param("title"),
		BorderStyle:  m.param("borderStyle"),
		BorderColor:  m.param("borderColor"),
		TitleBGColor: m.param("titleBGColor"),
		TitleColor:   m.param("titleColor"),
		BGColor:      m.param("bgColor"),
		Icon:         m.param("panelIcon"),
		IconID:       m.param("panelIconId"),
		IconText:     m.param("panelIconText"),
	}
}

func buildCodeMacro(b *builder, m *macro, sc scope) nodes.Node {
	code := &nodes.CodeBlock{
		Base:          b.base(sc, nil),
		MacroInfo:     m.info,
		Code:          m.plainBody(),
		Title:         m.param("title"),
		BreakoutMode:  m.param("breakoutMode"),
		BreakoutWidth: m.param("breakoutWidth"),
		LineNumbers:   m.boolParam("linenumbers"),
		Theme:         m.param("theme"),
	}
	if m.info.Name != "noformat" {
		code.Language = m.param("language")
	}
	return code
}

func buildExpandMacro(b *builder, m *macro, sc scope) nodes.Node {
	return &nodes.Expand{
		Base:          b.base(sc, m.richBody(b, sc)),
		MacroInfo:     m.info,
		Title:         m.param("title"),
		BreakoutWidth: m.param("breakoutWidth"),
	}
}

func buildTOCMacro(b *builder, m *macro, sc scope) nodes.Node {
	return &nodes.TOC{
		Base:      b.base(sc, nil),
		MacroInfo: m.info,
		Style:     m.param("style"),
		MinLevel:  m.intParam("minLevel"),
		MaxLevel:  m.intParam("maxLevel"),
		Outline:   m.boolParam("outline"),
		Exclude:   m.param("exclude"),
		Include:   m.param("include"),
	}
}

func buildDetailsMacro(b *builder, m *macro, sc scope) nodes.Node {
	return &nodes.Details{
		Base:      b.base(sc, m.richBody(b, sc)),
		MacroInfo: m.info,
		Hidden:    m.boolParam("hidden"),
		DetailsID: m.param("id"),
	}
}

func buildAttachmentsMacro(b *builder, m *macro, sc scope) nodes.Node {
	return &nodes.Attachments{
		Base:      b.base(sc, nil),
		MacroInfo: m.info,
		Patterns:  m.param("patterns"),
		Upload:    m.boolParam("upload"),
		Old:       m.boolParam("old"),
	}
}

func buildJiraMacro(b *builder, m *macro, sc scope) nodes.Node {
	return &nodes.Jira{
		Base:      b.base(sc, nil),
		MacroInfo: m.info,
		Key:       m.param("key"),
		ServerID:  m.param("serverId"),
		Server:    m.param("server"),
		JQL:       m.param("jqlQuery"),
	}
}

func buildProfileMacro(b *builder, m *macro, sc scope) nodes.Node {
	profile := &nodes.Profile{Base: b.base(sc, nil), MacroInfo: m.info}
	if ref, ok := m.paramRef("user"); ok && ref.User != nil {
		profile.AccountID = ref.User.AccountID
		profile.UserKey = ref.User.UserKey
	}
	return profile
}

func buildAnchorMacro(b *builder, m *macro, sc scope) nodes.Node {
	return &nodes.Anchor{
		Base:       b.base(sc, nil),
		MacroInfo:  m.info,
		AnchorName: m.param("", "name"),
	}
}

func buildExcerptMacro(b *builder, m *macro, sc scope) nodes.Node {
	return &nodes.Excerpt{
		Base:        b.base(sc, m.richBody(b, sc)),
		MacroInfo:   m.info,
		Hidden:      m.boolParam("hidden"),
		ExcerptName: m.param("name"),
	}
}

func buildExcerptIncludeMacro(b *builder, m *macro, sc scope) nodes.Node {
	include := &nodes.ExcerptInclude{
		Base:      b.base(sc, nil),
		MacroInfo: m.info,
		NoPanel:   m.boolParam("nopanel"),
	}
	if ref, ok := m.paramRef("", "page"); ok {
		switch {
		case ref.Page != nil:
			include.ContentTitle = ref.Page.ContentTitle
			include.SpaceKey = ref.Page.SpaceKey
		case ref.BlogPost != nil:
			include.ContentTitle = ref.BlogPost.ContentTitle
			include.SpaceKey = ref.BlogPost.SpaceKey
			include.PostingDay = ref.BlogPost.PostingDay
		}
		return include
	}
	include.ContentTitle = m.param("", "page")
	return include
}

func buildIncludeMacro(b *builder, m *macro, sc scope) nodes.Node {
	include := &nodes.Include{Base: b.base(sc, nil), MacroInfo: m.info}
	if ref, ok := m.paramRef("", "page"); ok && ref.Page != nil {
		include.ContentTitle = ref.Page.ContentTitle
		include.SpaceKey = ref.Page.SpaceKey
		return include
	}
	include.ContentTitle = m.param("", "page")
	return include
}

// attachmentParam reads the attachment named by the "name" parameter,
// falling back to its plain text.
func attachmentParam(m *macro) (string, *int) {
	if ref, ok := m.paramRef("name"); ok && ref.Attachment != nil {
		return ref.Attachment.Filename, ref.Attachment.VersionAtSave
	}
	return m.param("name"), nil
}

func buildViewFileMacro(b *builder, m *macro, sc scope) nodes.Node {
	filename, version := attachmentParam(m)
	return &nodes.ViewFile{
		Base:          b.base(sc, nil),
		MacroInfo:     m.info,
		Filename:      filename,
		VersionAtSave: version,
		Height:        m.param("height"),
	}
}

func buildViewPDFMacro(b *builder, m *macro, sc scope) nodes.Node {
	filename, version := attachmentParam(m)
	return &nodes.ViewPDF{
		Base:          b.base(sc, nil),
		MacroInfo:     m.info,
		Filename:      filename,
		VersionAtSave: version,
		Height:        m.param("height"),
	}
}

func buildGadgetMacro(b *builder, m *macro, sc scope) nodes.Node {
	gadget := &nodes.Gadget{
		Base:      b.base(sc, nil),
		MacroInfo: m.info,
		URL:       m.param("url"),
		Width:     m.param("width"),
		Height:    m.param("height"),
	}
	if ref, ok := m.paramRef("url"); ok && ref.URL != nil {
		gadget.URL = ref.URL.Value
	}
	return gadget
}

func buildPagePropertiesMacro(b *builder, m *macro, sc scope) nodes.Node {
	return &nodes.PageProperties{
		Base:         b.base(sc, m.richBody(b, sc)),
		MacroInfo:    m.info,
		Hidden:       m.boolParam("hidden"),
		PropertiesID: m.param("id"),
	}
}

func buildPagePropertiesReportMacro(b *builder, m *macro, sc scope) nodes.Node {
	return &nodes.PagePropertiesReport{
		Base:        b.base(sc, nil),
		MacroInfo:   m.info,
		Labels:      m.param("labels", "label"),
		SpaceKey:    m.param("spaceKey", "spaces"),
		CQL:         m.param("cql"),
		FirstColumn: m.param("firstcolumn"),
		Headings:    m.param("headings"),
		SortBy:      m.param("sortBy"),
	}
}

func buildChildrenDisplayMacro(b *builder, m *macro, sc scope) nodes.Node {
	return &nodes.ChildrenDisplay{
		Base:      b.base(sc, nil),
		MacroInfo: m.info,
		Depth:     m.intParam("depth"),
		Sort:      m.param("sort"),
		Reverse:   m.boolParam("reverse"),
		Excerpt:   m.param("excerpt", "excerptType"),
		Style:     m.param("style"),
	}
}

func buildTasksReportMacro(b *builder, m *macro, sc scope) nodes.Node {
	return &nodes.TasksReport{
		Base:                        b.base(sc, nil),
		MacroInfo:                   m.info,
		Spaces:                      m.param("spaces", "spaceAndPage"),
		Labels:                      m.param("labels"),
		Status:                      m.param("status"),
		IsMissingRequiredParameters: m.boolParam("isMissingRequiredParameters"),
	}
}

// buildTaskListMacro maps the task-list macro to a task list whose items
// come from ac:task-item children.
func buildTaskListMacro(b *builder, m *macro, sc scope) nodes.Node {
	var items []nodes.Node
	for _, child := range m.el.Elements() {
		if child.Name() != "ac:task-item" {
			continue
		}
		inner := sc.enterListItem()
		status := nodes.TaskIncomplete
		if boolAttr(child, "completed") {
			status = nodes.TaskComplete
		}
		items = append(items, &nodes.ListItem{
			Base:    b.base(inner, b.children(child, inner)),
			Status:  status,
			TaskID:  child.AttrValue("ac:task-id"),
			LocalID: child.AttrValue("ac:local-id"),
		})
	}
	localID := m.info.LocalID
	if localID == "" {
		localID = m.info.MacroID
	}
	return &nodes.List{
		Base:     b.base(sc, items),
		ListType: nodes.ListTask,
		LocalID:  localID,
	}
}
