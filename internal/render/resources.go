package render

import (
	"strings"

	"github.com/goliatone/go-confluence-content/internal/links"
	"github.com/goliatone/go-confluence-content/internal/nodes"
)

// resourceLabel renders the icon and label of a reference. An empty link
// renders as nothing.
func resourceLabel(ref links.Link) string {
	switch ref.Kind() {
	case links.KindPage:
		return "📄 Page"
	case links.KindBlogPost:
		return withDetail("📝 Blog", "", ref.BlogPost.PostingDay, ": ")
	case links.KindAttachment:
		return withDetail("📎 Attachment", "", ref.Attachment.Filename, ": ")
	case links.KindURL:
		return withDetail("🔗 URL", "", ref.URL.Value, ": ")
	case links.KindUser:
		id := ref.User.AccountID
		if id == "" {
			id = ref.User.UserKey
		}
		return withDetail("👤 User", "", id, ": ")
	case links.KindSpace:
		return withDetail("🏠 Space", "", ref.Space.SpaceKey, ": ")
	case links.KindShortcut:
		key := ref.Shortcut.Key
		if key != "" && ref.Shortcut.Parameter != "" {
			key += "@" + ref.Shortcut.Parameter
		}
		return withDetail("🔗 Shortcut", "", key, ": ")
	case links.KindContentEntity:
		return withDetail("📄 Content", "", ref.ContentEntity.ContentID, ": ")
	}
	return ""
}

// renderLink combines the label of the embedded reference with the link
// body, falling back to the href when neither yields text.
func renderLink(l *nodes.Link, depth int) string {
	var (
		refs []string
		body []nodes.Node
	)
	for _, child := range l.Content {
		if ri, ok := child.(*nodes.ResourceIdentifier); ok {
			if label := resourceLabel(ri.Ref); label != "" {
				refs = append(refs, label)
			}
			continue
		}
		body = append(body, child)
	}

	ref := strings.Join(refs, " ")
	text := strings.TrimSpace(join(body, " ", depth))
	switch {
	case ref != "" && text != "":
		return ref + " " + text
	case ref != "":
		return ref
	case text != "":
		return text
	}
	return strings.TrimSpace(l.Href)
}

func renderImage(img *nodes.Image) string {
	label := firstNonEmpty(img.Alt, img.Title)
	if label == "" && img.Ref.Attachment != nil {
		label = img.Ref.Attachment.Filename
	}
	if label == "" && img.Ref.URL != nil {
		label = img.Ref.URL.Value
	}
	label = firstNonEmpty(label, img.Src, "Unknown")

	text := "🖼️ Image: " + label
	if caption := strings.TrimSpace(img.Caption); caption != "" {
		text += " (" + caption + ")"
	}
	return text
}

func renderEmoticon(e *nodes.Emoticon) string {
	switch {
	case e.Fallback != "":
		return e.Fallback
	case e.Shortname != "":
		return e.Shortname
	case e.Name != "":
		return ":" + e.Name + ":"
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
