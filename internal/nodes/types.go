package nodes

import "github.com/goliatone/go-confluence-content/internal/links"

// Type discriminants for the non-macro variants.
const (
	TypeText               = "text"
	TypeParagraph          = "paragraph"
	TypeHeading            = "heading"
	TypeTextEffect         = "text_effect"
	TypeRule               = "hr"
	TypeLineBreak          = "br"
	TypeBlockquote         = "blockquote"
	TypeList               = "list"
	TypeListItem           = "list_item"
	TypeTable              = "table"
	TypeTableRow           = "table_row"
	TypeTableCell          = "table_cell"
	TypeLink               = "link"
	TypeResourceIdentifier = "resource_identifier"
	TypeImage              = "image"
	TypeEmoticon           = "emoticon"
	TypeTime               = "time"
	TypePlaceholder        = "placeholder"
	TypeLayout             = "layout"
	TypeLayoutSection      = "layout_section"
	TypeLayoutCell         = "layout_cell"
	TypeFragment           = "fragment"
	TypeContainer          = "container"
	TypeDecisionList       = "decision_list"
	TypeDecisionItem       = "decision_item"
	TypeI18n               = "i18n"
)

// List types.
const (
	ListUnordered = "unordered"
	ListOrdered   = "ordered"
	ListTask      = "task"
)

// Task statuses for list items inside task lists.
const (
	TaskComplete   = "complete"
	TaskIncomplete = "incomplete"
)

// Decision states.
const (
	DecisionDecided = "DECIDED"
	DecisionPending = "PENDING"
)

// Link types.
const (
	LinkPage          = links.KindPage
	LinkBlogPost      = links.KindBlogPost
	LinkUser          = links.KindUser
	LinkSpace         = links.KindSpace
	LinkAttachment    = links.KindAttachment
	LinkContentEntity = links.KindContentEntity
	LinkShortcut      = links.KindShortcut
	LinkURL           = links.KindURL
	LinkExternal      = "external"
	LinkMailto        = "mailto"
	LinkAnchor        = "anchor"
)

// Text is a raw text leaf.
type Text struct {
	Base
	Value string
}

func (*Text) Type() string { return TypeText }

// Paragraph wraps inline content.
type Paragraph struct{ Base }

func (*Paragraph) Type() string { return TypeParagraph }

// Heading is an h1-h6 element. Anchor is the slug derived from its text.
type Heading struct {
	Base
	Level  int
	Anchor string
}

func (*Heading) Type() string { return TypeHeading }

// TextEffect is an inline formatting wrapper (strong, em, code, ...).
type TextEffect struct {
	Base
	Effect string
	Style  string
}

func (*TextEffect) Type() string { return TypeTextEffect }

// Rule is a horizontal rule.
type Rule struct{ Base }

func (*Rule) Type() string { return TypeRule }

// LineBreak is a hard line break.
type LineBreak struct{ Base }

func (*LineBreak) Type() string { return TypeLineBreak }

// Blockquote quotes its children.
type Blockquote struct{ Base }

func (*Blockquote) Type() string { return TypeBlockquote }

// List is an ordered, unordered or task list. Start is nil unless the source
// carried a numeric start attribute.
type List struct {
	Base
	ListType string
	Start    *int
	LocalID  string
}

func (*List) Type() string { return TypeList }

// StartAt returns the first ordinal used when numbering items.
func (l *List) StartAt() int {
	if l.Start == nil {
		return 1
	}
	return *l.Start
}

// ListItem is a list entry; task fields are set for task list items.
type ListItem struct {
	Base
	Status   string
	TaskID   string
	TaskUUID string
	LocalID  string
}

func (*ListItem) Type() string { return TypeListItem }

// Table holds rows as children and a rectangular cell matrix for direct
// addressing. Rows shorter than the widest row are padded with empty cells
// in Cells; the row nodes themselves are left as parsed.
type Table struct {
	Base
	Cells     [][][]Node
	HasHeader bool
	Width     string
	Layout    string
}

func (*Table) Type() string { return TypeTable }

// TableRow holds table cells.
type TableRow struct{ Base }

func (*TableRow) Type() string { return TypeTableRow }

// TableCell is a td or th cell.
type TableCell struct {
	Base
	IsHeader  bool
	Rowspan   int
	Colspan   int
	Highlight string
}

func (*TableCell) Type() string { return TypeTableCell }

// Link is an internal (ac:link) or external (a href) hyperlink. Its children
// are the embedded resource identifier, if any, followed by the link body.
type Link struct {
	Base
	Link           links.Link
	LinkType       string
	Href           string
	Anchor         string
	CardAppearance string
}

func (*Link) Type() string { return TypeLink }

// CanonicalURI returns the canonical URI of the embedded reference, falling
// back to the href for plain anchors.
func (l *Link) CanonicalURI() string {
	if uri := l.Link.CanonicalURI(); uri != "" {
		return uri
	}
	return l.Href
}

// ResourceIdentifier is an ri:* reference element.
type ResourceIdentifier struct {
	Base
	Ref links.Link
}

func (*ResourceIdentifier) Type() string { return TypeResourceIdentifier }

// RefType returns the kind of the wrapped reference.
func (r *ResourceIdentifier) RefType() string { return r.Ref.Kind() }

// Image is an ac:image or img element.
type Image struct {
	Base
	Alt            string
	Title          string
	Src            string
	Width          string
	Height         string
	Align          string
	Layout         string
	OriginalWidth  string
	OriginalHeight string
	CustomWidth    bool
	Caption        string
	Ref            links.Link
}

func (*Image) Type() string { return TypeImage }

// Emoticon is an ac:emoticon element.
type Emoticon struct {
	Base
	Name      string
	Shortname string
	EmojiID   string
	Fallback  string
}

func (*Emoticon) Type() string { return TypeEmoticon }

// Time is a date element.
type Time struct {
	Base
	Datetime string
}

func (*Time) Type() string { return TypeTime }

// Placeholder is editor instruction text.
type Placeholder struct {
	Base
	PlaceholderType string
	Text            string
}

func (*Placeholder) Type() string { return TypePlaceholder }

// Layout groups layout sections.
type Layout struct{ Base }

func (*Layout) Type() string { return TypeLayout }

// LayoutSection groups layout cells.
type LayoutSection struct {
	Base
	SectionType   string
	BreakoutMode  string
	BreakoutWidth string
}

func (*LayoutSection) Type() string { return TypeLayoutSection }

// LayoutCell holds the content of one layout column.
type LayoutCell struct{ Base }

func (*LayoutCell) Type() string { return TypeLayoutCell }

// Fragment is the synthetic root used when a document has several top-level nodes.
type Fragment struct{ Base }

func (*Fragment) Type() string { return TypeFragment }

// NewFragment wraps content in a fragment node.
func NewFragment(content []Node) *Fragment {
	return &Fragment{Base: Base{Content: content}}
}

// Container is a generic block wrapper such as div or section.
type Container struct {
	Base
	Tag   string
	Class string
}

func (*Container) Type() string { return TypeContainer }

// DecisionList is the ADF decision list.
type DecisionList struct {
	Base
	LocalID string
}

func (*DecisionList) Type() string { return TypeDecisionList }

// DecisionItem is one decision inside a DecisionList.
type DecisionItem struct {
	Base
	LocalID string
	State   string
}

func (*DecisionItem) Type() string { return TypeDecisionItem }

// I18n is an at:i18n translation key.
type I18n struct {
	Base
	Key string
}

func (*I18n) Type() string { return TypeI18n }
