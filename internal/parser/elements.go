package parser

import (
	"strings"

	"github.com/goliatone/go-slug"

	"github.com/goliatone/go-confluence-content/internal/ingest"
	"github.com/goliatone/go-confluence-content/internal/links"
	"github.com/goliatone/go-confluence-content/internal/nodes"
)

var effectAliases = map[string]string{
	"b":      "strong",
	"i":      "em",
	"strike": "s",
}

func buildParagraph(b *builder, el *ingest.Element, sc scope) nodes.Node {
	return &nodes.Paragraph{Base: b.base(sc, b.children(el, sc))}
}

func buildHeading(b *builder, el *ingest.Element, sc scope) nodes.Node {
	heading := &nodes.Heading{
		Base:  b.base(sc, b.children(el, sc)),
		Level: int(el.Local[1] - '0'),
	}
	heading.Anchor = headingAnchor(heading)
	return heading
}

func headingAnchor(h *nodes.Heading) string {
	text := strings.TrimSpace(nodes.TextContent(h))
	if text == "" {
		return ""
	}
	anchor, err := slug.Normalize(text)
	if err != nil {
		return ""
	}
	return anchor
}

func buildTextEffect(b *builder, el *ingest.Element, sc scope) nodes.Node {
	effect := el.Local
	if alias, ok := effectAliases[effect]; ok {
		effect = alias
	}
	return &nodes.TextEffect{
		Base:   b.base(sc, b.children(el, sc)),
		Effect: effect,
		Style:  el.AttrValue("style"),
	}
}

func buildRule(b *builder, _ *ingest.Element, sc scope) nodes.Node {
	return &nodes.Rule{Base: b.base(sc, nil)}
}

func buildLineBreak(b *builder, _ *ingest.Element, sc scope) nodes.Node {
	return &nodes.LineBreak{Base: b.base(sc, nil)}
}

func buildBlockquote(b *builder, el *ingest.Element, sc scope) nodes.Node {
	return &nodes.Blockquote{Base: b.base(sc, b.children(el, sc))}
}

func buildList(b *builder, el *ingest.Element, sc scope) nodes.Node {
	list := &nodes.List{
		Base:     b.base(sc, b.children(el, sc)),
		ListType: nodes.ListUnordered,
		LocalID:  el.AttrValue("local-id"),
	}
	if el.Local == "ol" {
		list.ListType = nodes.ListOrdered
		list.Start = intAttr(el, "start")
	}
	return list
}

// buildListItem maps li. A leading checkbox input, as emitted for Markdown
// task lists, becomes the item status.
func buildListItem(b *builder, el *ingest.Element, sc scope) nodes.Node {
	inner := sc.enterListItem()
	item := &nodes.ListItem{Base: b.base(inner, b.children(el, inner))}
	if box := el.Child("input"); box != nil && strings.EqualFold(box.AttrValue("type"), "checkbox") {
		item.Status = nodes.TaskIncomplete
		if _, checked := box.Attr("checked"); checked {
			item.Status = nodes.TaskComplete
		}
	}
	return item
}

// buildTaskList maps an ac:task-list container to a task list.
func buildTaskList(b *builder, el *ingest.Element, sc scope) nodes.Node {
	return &nodes.List{
		Base:     b.base(sc, b.children(el, sc)),
		ListType: nodes.ListTask,
		LocalID:  el.AttrValue("ac:local-id"),
	}
}

// buildTask maps an ac:task to a task list item. The task-id, task-uuid and
// task-status children override the element attributes of the same name.
func buildTask(b *builder, el *ingest.Element, sc scope) nodes.Node {
	inner := sc.enterListItem()
	item := &nodes.ListItem{
		LocalID: el.AttrValue("ac:local-id"),
		TaskID:  el.AttrValue("ac:task-id"),
		Status:  taskStatus(firstAttr(el, "ac:status", "status")),
	}

	var content []nodes.Node
	for _, child := range el.Children {
		childEl, ok := child.(*ingest.Element)
		if !ok {
			content = append(content, b.item(child, inner)...)
			continue
		}
		switch childEl.Name() {
		case "ac:task-id":
			item.TaskID = strings.TrimSpace(childEl.Text())
		case "ac:task-uuid":
			item.TaskUUID = strings.TrimSpace(childEl.Text())
		case "ac:task-status":
			item.Status = taskStatus(childEl.Text())
		default:
			content = append(content, b.element(childEl, inner)...)
		}
	}
	item.Base = b.base(inner, content)
	return item
}

func taskStatus(s string) string {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case nodes.TaskComplete:
		return nodes.TaskComplete
	case nodes.TaskIncomplete:
		return nodes.TaskIncomplete
	}
	return ""
}

func buildContainer(b *builder, el *ingest.Element, sc scope) nodes.Node {
	return &nodes.Container{
		Base:  b.base(sc, b.children(el, sc)),
		Tag:   el.Local,
		Class: el.AttrValue("class"),
	}
}

// buildPre maps preformatted text to a code block. The language comes from
// a language-* class on the pre or its code child, or data-language.
func buildPre(b *builder, el *ingest.Element, sc scope) nodes.Node {
	return &nodes.CodeBlock{
		Base:     b.base(sc, nil),
		Code:     strings.TrimSuffix(el.Text(), "\n"),
		Language: preLanguage(el),
	}
}

func preLanguage(el *ingest.Element) string {
	candidates := []*ingest.Element{el}
	if inner := el.Child("code"); inner != nil {
		candidates = append(candidates, inner)
	}
	for _, candidate := range candidates {
		if lang := candidate.AttrValue("data-language"); lang != "" {
			return lang
		}
		for _, class := range strings.Fields(candidate.AttrValue("class")) {
			if lang, ok := strings.CutPrefix(class, "language-"); ok && lang != "" {
				return lang
			}
		}
	}
	return ""
}

func buildTime(b *builder, el *ingest.Element, sc scope) nodes.Node {
	return &nodes.Time{Base: b.base(sc, nil), Datetime: el.AttrValue("datetime")}
}

func buildAnchorLink(b *builder, el *ingest.Element, sc scope) nodes.Node {
	href := strings.TrimSpace(el.AttrValue("href"))
	link := &nodes.Link{
		Base:           b.base(sc, b.children(el, sc)),
		LinkType:       nodes.LinkExternal,
		Href:           href,
		CardAppearance: el.AttrValue("data-card-appearance"),
	}
	if strings.HasPrefix(strings.ToLower(href), "mailto:") {
		link.LinkType = nodes.LinkMailto
	}
	if href != "" {
		link.Link = links.Link{URL: &links.URLRef{Value: href}}
	}
	return link
}

func buildHTMLImage(b *builder, el *ingest.Element, sc scope) nodes.Node {
	img := &nodes.Image{
		Base:   b.base(sc, nil),
		Src:    el.AttrValue("src"),
		Alt:    el.AttrValue("alt"),
		Title:  el.AttrValue("title"),
		Width:  el.AttrValue("width"),
		Height: el.AttrValue("height"),
	}
	if img.Src != "" {
		img.Ref = links.Link{URL: &links.URLRef{Value: img.Src}}
	}
	return img
}

func buildImage(b *builder, el *ingest.Element, sc scope) nodes.Node {
	img := &nodes.Image{
		Base:           b.base(sc, nil),
		Alt:            el.AttrValue("ac:alt"),
		Title:          el.AttrValue("ac:title"),
		Src:            el.AttrValue("ac:src"),
		Width:          el.AttrValue("ac:width"),
		Height:         el.AttrValue("ac:height"),
		Align:          el.AttrValue("ac:align"),
		Layout:         el.AttrValue("ac:layout"),
		OriginalWidth:  el.AttrValue("ac:original-width"),
		OriginalHeight: el.AttrValue("ac:original-height"),
		CustomWidth:    boolAttr(el, "ac:custom-width"),
	}
	for _, child := range el.Elements() {
		if child.Name() == "ac:caption" {
			img.Caption = strings.TrimSpace(child.Text())
			continue
		}
		if img.Ref.Kind() != "" {
			continue
		}
		if ref, ok := resourceRef(child); ok {
			img.Ref = ref
		}
	}
	return img
}

func buildEmoticon(b *builder, el *ingest.Element, sc scope) nodes.Node {
	return &nodes.Emoticon{
		Base:      b.base(sc, nil),
		Name:      el.AttrValue("ac:name"),
		Shortname: el.AttrValue("ac:emoji-shortname"),
		EmojiID:   el.AttrValue("ac:emoji-id"),
		Fallback:  el.AttrValue("ac:emoji-fallback"),
	}
}

func buildPlaceholder(b *builder, el *ingest.Element, sc scope) nodes.Node {
	return &nodes.Placeholder{
		Base:            b.base(sc, nil),
		PlaceholderType: el.AttrValue("ac:type"),
		Text:            strings.TrimSpace(el.Text()),
	}
}

func buildI18n(b *builder, el *ingest.Element, sc scope) nodes.Node {
	return &nodes.I18n{Base: b.base(sc, nil), Key: el.AttrValue("at:key")}
}

// buildLayout walks layout sections, numbering them in document order.
func buildLayout(b *builder, el *ingest.Element, sc scope) nodes.Node {
	var content []nodes.Node
	section := 0
	for _, child := range el.Children {
		if childEl, ok := child.(*ingest.Element); ok && childEl.Name() == "ac:layout-section" {
			content = append(content, buildLayoutSection(b, childEl, sc, section))
			section++
			continue
		}
		content = append(content, b.item(child, sc)...)
	}
	return &nodes.Layout{Base: b.base(sc, content)}
}

func buildStandaloneSection(b *builder, el *ingest.Element, sc scope) nodes.Node {
	return buildLayoutSection(b, el, sc, 0)
}

func buildLayoutSection(b *builder, el *ingest.Element, sc scope, index int) nodes.Node {
	var content []nodes.Node
	cell := 0
	for _, child := range el.Children {
		if childEl, ok := child.(*ingest.Element); ok && childEl.Name() == "ac:layout-cell" {
			content = append(content, buildLayoutCell(b, childEl, sc.enterCell(index, cell)))
			cell++
			continue
		}
		content = append(content, b.item(child, sc)...)
	}
	return &nodes.LayoutSection{
		Base:          b.base(sc, content),
		SectionType:   el.AttrValue("ac:type"),
		BreakoutMode:  el.AttrValue("ac:breakout-mode"),
		BreakoutWidth: el.AttrValue("ac:breakout-width"),
	}
}

func buildStandaloneCell(b *builder, el *ingest.Element, sc scope) nodes.Node {
	if sc.layout == nil {
		sc = sc.enterCell(0, 0)
	}
	return buildLayoutCell(b, el, sc)
}

func buildLayoutCell(b *builder, el *ingest.Element, sc scope) nodes.Node {
	return &nodes.LayoutCell{Base: b.base(sc, b.children(el, sc))}
}
