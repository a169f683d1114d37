package nodes

// Type discriminants for macro variants.
const (
	TypeStatus               = "status"
	TypePanel                = "panel"
	TypeCodeBlock            = "code_block"
	TypeExpand               = "expand"
	TypeTOC                  = "toc"
	TypeDetails              = "details"
	TypeAttachments          = "attachments"
	TypeJira                 = "jira"
	TypeProfile              = "profile"
	TypeAnchor               = "anchor"
	TypeExcerpt              = "excerpt"
	TypeExcerptInclude       = "excerpt_include"
	TypeInclude              = "include"
	TypeViewFile             = "view_file"
	TypeViewPDF              = "view_pdf"
	TypeGadget               = "gadget"
	TypePageProperties       = "page_properties"
	TypePagePropertiesReport = "page_properties_report"
	TypeChildrenDisplay      = "children_display"
	TypeTasksReport          = "tasks_report"
	TypeMacro                = "macro"
)

// Panel types.
const (
	PanelNote    = "NOTE"
	PanelSuccess = "SUCCESS"
	PanelWarning = "WARNING"
	PanelError   = "ERROR"
	PanelInfo    = "INFO"
	PanelPanel   = "PANEL"
)

// MacroInfo identifies the structured macro a node was built from.
type MacroInfo struct {
	Name    string
	MacroID string
	LocalID string
}

// MacroName returns the lower-cased macro name.
func (m MacroInfo) MacroName() string { return m.Name }

// Status is a coloured status lozenge.
type Status struct {
	Base
	MacroInfo
	Title  string
	Colour string
	Subtle bool
}

func (*Status) Type() string { return TypeStatus }

// Panel covers panel and the info/note/tip/warning notification macros,
// as well as ADF panels.
type Panel struct {
	Base
	MacroInfo
	PanelType    string
	Title        string
	BorderStyle  string
	BorderColor  string
	TitleBGColor string
	TitleColor   string
	BGColor      string
	Icon         string
	IconID       string
	IconText     string
}

func (*Panel) Type() string { return TypePanel }

// CodeBlock is a code macro or pre element.
type CodeBlock struct {
	Base
	MacroInfo
	Language      string
	Code          string
	Title         string
	BreakoutMode  string
	BreakoutWidth string
	LineNumbers   bool
	Theme         string
}

func (*CodeBlock) Type() string { return TypeCodeBlock }

// Expand is a collapsible section.
type Expand struct {
	Base
	MacroInfo
	Title         string
	BreakoutWidth string
}

func (*Expand) Type() string { return TypeExpand }

// TOC is a table of contents macro.
type TOC struct {
	Base
	MacroInfo
	Style    string
	MinLevel *int
	MaxLevel *int
	Outline  bool
	Exclude  string
	Include  string
}

func (*TOC) Type() string { return TypeTOC }

// Details is the details macro.
type Details struct {
	Base
	MacroInfo
	Hidden    bool
	DetailsID string
}

func (*Details) Type() string { return TypeDetails }

// Attachments lists page attachments.
type Attachments struct {
	Base
	MacroInfo
	Patterns string
	Upload   bool
	Old      bool
}

func (*Attachments) Type() string { return TypeAttachments }

// Jira references a Jira issue.
type Jira struct {
	Base
	MacroInfo
	Key      string
	ServerID string
	Server   string
	JQL      string
}

func (*Jira) Type() string { return TypeJira }

// Profile shows a user profile card.
type Profile struct {
	Base
	MacroInfo
	AccountID string
	UserKey   string
}

func (*Profile) Type() string { return TypeProfile }

// Anchor is a named in-page anchor.
type Anchor struct {
	Base
	MacroInfo
	AnchorName string
}

func (*Anchor) Type() string { return TypeAnchor }

// Excerpt marks reusable page content.
type Excerpt struct {
	Base
	MacroInfo
	Hidden      bool
	ExcerptName string
}

func (*Excerpt) Type() string { return TypeExcerpt }

// ExcerptInclude embeds the excerpt of another page or blog post.
type ExcerptInclude struct {
	Base
	MacroInfo
	ContentTitle string
	SpaceKey     string
	PostingDay   string
	NoPanel      bool
}

func (*ExcerptInclude) Type() string { return TypeExcerptInclude }

// Include embeds another page.
type Include struct {
	Base
	MacroInfo
	ContentTitle string
	SpaceKey     string
}

func (*Include) Type() string { return TypeInclude }

// ViewFile previews an attached file.
type ViewFile struct {
	Base
	MacroInfo
	Filename      string
	VersionAtSave *int
	Height        string
}

func (*ViewFile) Type() string { return TypeViewFile }

// ViewPDF previews an attached PDF.
type ViewPDF struct {
	Base
	MacroInfo
	Filename      string
	VersionAtSave *int
	Height        string
}

func (*ViewPDF) Type() string { return TypeViewPDF }

// Gadget embeds an OpenSocial gadget.
type Gadget struct {
	Base
	MacroInfo
	URL    string
	Width  string
	Height string
}

func (*Gadget) Type() string { return TypeGadget }

// PageProperties holds key/value page metadata, usually a table.
type PageProperties struct {
	Base
	MacroInfo
	Hidden       bool
	PropertiesID string
}

func (*PageProperties) Type() string { return TypePageProperties }

// PagePropertiesReport aggregates page properties across pages.
type PagePropertiesReport struct {
	Base
	MacroInfo
	Labels      string
	SpaceKey    string
	CQL         string
	FirstColumn string
	Headings    string
	SortBy      string
}

func (*PagePropertiesReport) Type() string { return TypePagePropertiesReport }

// ChildrenDisplay lists child pages.
type ChildrenDisplay struct {
	Base
	MacroInfo
	Depth   *int
	Sort    string
	Reverse bool
	Excerpt string
	Style   string
}

func (*ChildrenDisplay) Type() string { return TypeChildrenDisplay }

// TasksReport summarises tasks across spaces.
type TasksReport struct {
	Base
	MacroInfo
	Spaces                      string
	Labels                      string
	Status                      string
	IsMissingRequiredParameters bool
}

func (*TasksReport) Type() string { return TypeTasksReport }

// Macro is the fallback for macro names without a dedicated variant.
type Macro struct {
	Base
	MacroInfo
	Parameters map[string]string
}

func (*Macro) Type() string { return TypeMacro }
