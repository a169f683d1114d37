package parser

import (
	"strings"

	"github.com/goliatone/go-confluence-content/internal/ingest"
	"github.com/goliatone/go-confluence-content/internal/links"
	"github.com/goliatone/go-confluence-content/internal/nodes"
)

// resourceRef decodes an ri:* element into a link value with exactly one
// payload. ok is false for elements outside the resource namespace.
func resourceRef(el *ingest.Element) (links.Link, bool) {
	if el == nil || el.Prefix != ingest.PrefixResource {
		return links.Link{}, false
	}
	switch el.Local {
	case "user":
		return links.Link{User: &links.UserRef{
			AccountID: el.AttrValue("ri:account-id"),
			LocalID:   el.AttrValue("ri:local-id"),
			UserKey:   el.AttrValue("ri:userkey"),
		}}, true
	case "page":
		return links.Link{Page: &links.PageRef{
			ContentTitle:  el.AttrValue("ri:content-title"),
			SpaceKey:      el.AttrValue("ri:space-key"),
			VersionAtSave: intAttr(el, "ri:version-at-save"),
		}}, true
	case "blog-post":
		return links.Link{BlogPost: &links.BlogPostRef{
			ContentTitle: el.AttrValue("ri:content-title"),
			SpaceKey:     el.AttrValue("ri:space-key"),
			PostingDay:   el.AttrValue("ri:posting-day"),
		}}, true
	case "space":
		return links.Link{Space: &links.SpaceRef{SpaceKey: el.AttrValue("ri:space-key")}}, true
	case "attachment":
		// A nested ri:page or ri:blog-post names the container and does not
		// change the link kind.
		return links.Link{Attachment: &links.AttachmentRef{
			Filename:      el.AttrValue("ri:filename"),
			ContentID:     el.AttrValue("ri:content-id"),
			VersionAtSave: intAttr(el, "ri:version-at-save"),
		}}, true
	case "content-entity":
		return links.Link{ContentEntity: &links.ContentEntityRef{
			ContentID:     el.AttrValue("ri:content-id"),
			VersionAtSave: intAttr(el, "ri:version-at-save"),
		}}, true
	case "shortcut":
		return links.Link{Shortcut: &links.ShortcutRef{
			Key:       el.AttrValue("ri:key"),
			Parameter: el.AttrValue("ri:parameter"),
		}}, true
	case "url":
		return links.Link{URL: &links.URLRef{Value: el.AttrValue("ri:value")}}, true
	}
	return links.Link{}, false
}

// firstResourceRef returns the first resource identifier directly below el.
func firstResourceRef(el *ingest.Element) (links.Link, bool) {
	if el == nil {
		return links.Link{}, false
	}
	for _, child := range el.Elements() {
		if ref, ok := resourceRef(child); ok {
			return ref, true
		}
	}
	return links.Link{}, false
}

func buildResourceIdentifier(b *builder, el *ingest.Element, sc scope) nodes.Node {
	ref, ok := resourceRef(el)
	if !ok {
		b.diags.UnknownElement(el.Local)
		return nil
	}
	return &nodes.ResourceIdentifier{Base: b.base(sc, nil), Ref: ref}
}

// buildLink maps ac:link. Its children are the first embedded resource
// identifier followed by the body, either rich (ac:link-body) or verbatim
// (ac:plain-text-link-body).
func buildLink(b *builder, el *ingest.Element, sc scope) nodes.Node {
	link := &nodes.Link{
		Anchor:         el.AttrValue("ac:anchor"),
		CardAppearance: el.AttrValue("ac:card-appearance"),
	}

	var content []nodes.Node
	for _, child := range el.Children {
		childEl, ok := child.(*ingest.Element)
		if !ok {
			content = append(content, b.item(child, sc)...)
			continue
		}
		if ref, ok := resourceRef(childEl); ok {
			if link.Link.IsZero() {
				link.Link = ref
				content = append(content, &nodes.ResourceIdentifier{Base: b.base(sc, nil), Ref: ref})
			}
			continue
		}
		switch childEl.Name() {
		case "ac:link-body":
			content = append(content, b.children(childEl, sc)...)
		case "ac:plain-text-link-body":
			if text := childEl.Text(); text != "" {
				content = append(content, &nodes.Text{Base: b.base(sc, nil), Value: text})
			}
		default:
			content = append(content, b.element(childEl, sc)...)
		}
	}

	link.Base = b.base(sc, content)
	link.LinkType = link.Link.Kind()
	if link.LinkType == "" && strings.TrimSpace(link.Anchor) != "" {
		link.LinkType = nodes.LinkAnchor
	}
	return link
}
