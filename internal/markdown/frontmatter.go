package markdown

import (
	"bytes"
	"fmt"
	"maps"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-confluence-content/pkg/interfaces"
)

// ParseFrontMatter splits source into its metadata block and Markdown body.
// Sources without frontmatter return an empty FrontMatter and the full body.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}
	return meta.frontMatter(), body, nil
}

type frontMatterEnvelope struct {
	Title  string         `yaml:"title"`
	Space  string         `yaml:"space"`
	Parent string         `yaml:"parent"`
	Labels []string       `yaml:"labels"`
	Author string         `yaml:"author"`
	Date   time.Time      `yaml:"date"`
	Custom map[string]any `yaml:",inline"`
}

func (env frontMatterEnvelope) frontMatter() interfaces.FrontMatter {
	custom := maps.Clone(env.Custom)
	if custom == nil {
		custom = map[string]any{}
	}

	raw := maps.Clone(custom)
	set := func(key string, value any, present bool) {
		if present {
			raw[key] = value
		}
	}
	set("title", env.Title, env.Title != "")
	set("space", env.Space, env.Space != "")
	set("parent", env.Parent, env.Parent != "")
	set("labels", append([]string(nil), env.Labels...), len(env.Labels) > 0)
	set("author", env.Author, env.Author != "")
	set("date", env.Date, !env.Date.IsZero())

	return interfaces.FrontMatter{
		Title:  env.Title,
		Space:  env.Space,
		Parent: env.Parent,
		Labels: append([]string(nil), env.Labels...),
		Author: env.Author,
		Date:   env.Date,
		Custom: custom,
		Raw:    raw,
	}
}
