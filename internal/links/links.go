package links

import (
	"errors"
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Kind values reported by Link.Kind.
const (
	KindUser          = "user"
	KindPage          = "page"
	KindBlogPost      = "blog_post"
	KindSpace         = "space"
	KindAttachment    = "attachment"
	KindContentEntity = "content_entity"
	KindShortcut      = "shortcut"
	KindURL           = "url"
)

// ErrMultiplePayloads indicates a link value carries more than one reference.
var ErrMultiplePayloads = errors.New("links: at most one reference payload may be set")

// UserRef points at a Confluence user.
type UserRef struct {
	AccountID string `json:"account_id,omitempty" yaml:"account_id,omitempty"`
	LocalID   string `json:"local_id,omitempty" yaml:"local_id,omitempty"`
	UserKey   string `json:"userkey,omitempty" yaml:"userkey,omitempty"`
}

// PageRef points at a page, optionally pinned to a saved version.
type PageRef struct {
	ContentTitle  string `json:"content_title,omitempty" yaml:"content_title,omitempty"`
	SpaceKey      string `json:"space_key,omitempty" yaml:"space_key,omitempty"`
	VersionAtSave *int   `json:"version_at_save,omitempty" yaml:"version_at_save,omitempty"`
}

// BlogPostRef points at a blog post published on PostingDay.
type BlogPostRef struct {
	ContentTitle string `json:"content_title,omitempty" yaml:"content_title,omitempty"`
	SpaceKey     string `json:"space_key,omitempty" yaml:"space_key,omitempty"`
	PostingDay   string `json:"posting_day,omitempty" yaml:"posting_day,omitempty"`
}

// SpaceRef points at a space.
type SpaceRef struct {
	SpaceKey string `json:"space_key,omitempty" yaml:"space_key,omitempty"`
}

// AttachmentRef points at a file attached to the current (or a container) page.
type AttachmentRef struct {
	Filename      string `json:"filename,omitempty" yaml:"filename,omitempty"`
	ContentID     string `json:"content_id,omitempty" yaml:"content_id,omitempty"`
	VersionAtSave *int   `json:"version_at_save,omitempty" yaml:"version_at_save,omitempty"`
}

// ContentEntityRef points at content by id.
type ContentEntityRef struct {
	ContentID     string `json:"content_id,omitempty" yaml:"content_id,omitempty"`
	VersionAtSave *int   `json:"version_at_save,omitempty" yaml:"version_at_save,omitempty"`
}

// ShortcutRef is a configured shortcut link (key@parameter).
type ShortcutRef struct {
	Key       string `json:"key,omitempty" yaml:"key,omitempty"`
	Parameter string `json:"parameter,omitempty" yaml:"parameter,omitempty"`
}

// URLRef is a plain URL.
type URLRef struct {
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Link is the reference value carried by link, image and resource identifier
// nodes. At most one payload is expected to be set.
type Link struct {
	User          *UserRef          `json:"user,omitempty" yaml:"user,omitempty"`
	Page          *PageRef          `json:"page,omitempty" yaml:"page,omitempty"`
	BlogPost      *BlogPostRef      `json:"blog_post,omitempty" yaml:"blog_post,omitempty"`
	Space         *SpaceRef         `json:"space,omitempty" yaml:"space,omitempty"`
	Attachment    *AttachmentRef    `json:"attachment,omitempty" yaml:"attachment,omitempty"`
	ContentEntity *ContentEntityRef `json:"content_entity,omitempty" yaml:"content_entity,omitempty"`
	Shortcut      *ShortcutRef      `json:"shortcut,omitempty" yaml:"shortcut,omitempty"`
	URL           *URLRef           `json:"url,omitempty" yaml:"url,omitempty"`
}

// Kind reports which payload is set, using the fixed priority
// user > page > blog_post > space > attachment > content_entity > shortcut > url.
// An empty string means no payload is present.
func (l Link) Kind() string {
	switch {
	case l.User != nil:
		return KindUser
	case l.Page != nil:
		return KindPage
	case l.BlogPost != nil:
		return KindBlogPost
	case l.Space != nil:
		return KindSpace
	case l.Attachment != nil:
		return KindAttachment
	case l.ContentEntity != nil:
		return KindContentEntity
	case l.Shortcut != nil:
		return KindShortcut
	case l.URL != nil:
		return KindURL
	default:
		return ""
	}
}

// IsZero reports whether no payload is set.
func (l Link) IsZero() bool {
	return l.Kind() == ""
}

// CanonicalURI renders the stable URI for the link kind. Links without a
// payload return an empty string.
func (l Link) CanonicalURI() string {
	switch l.Kind() {
	case KindUser:
		return "user://" + l.User.AccountID
	case KindPage:
		uri := fmt.Sprintf("page://%s/%s", l.Page.SpaceKey, l.Page.ContentTitle)
		if l.Page.VersionAtSave != nil {
			uri += fmt.Sprintf("@v%d", *l.Page.VersionAtSave)
		}
		return uri
	case KindBlogPost:
		return fmt.Sprintf("blog://%s/%s@%s", l.BlogPost.SpaceKey, l.BlogPost.ContentTitle, l.BlogPost.PostingDay)
	case KindSpace:
		return "space://" + l.Space.SpaceKey
	case KindAttachment:
		uri := "attach://" + l.Attachment.Filename
		if l.Attachment.VersionAtSave != nil {
			uri += fmt.Sprintf("@v%d", *l.Attachment.VersionAtSave)
		}
		return uri
	case KindContentEntity:
		return "contentid://" + l.ContentEntity.ContentID
	case KindShortcut:
		return fmt.Sprintf("shortcut://%s/%s", l.Shortcut.Key, l.Shortcut.Parameter)
	case KindURL:
		return l.URL.Value
	default:
		return ""
	}
}

// Validate ensures at most one payload is populated.
func (l Link) Validate() error {
	return validation.Validate(l.payloadCount(), validation.By(func(value any) error {
		if count, _ := value.(int); count > 1 {
			return ErrMultiplePayloads
		}
		return nil
	}))
}

func (l Link) payloadCount() int {
	count := 0
	for _, set := range []bool{
		l.User != nil,
		l.Page != nil,
		l.BlogPost != nil,
		l.Space != nil,
		l.Attachment != nil,
		l.ContentEntity != nil,
		l.Shortcut != nil,
		l.URL != nil,
	} {
		if set {
			count++
		}
	}
	return count
}
