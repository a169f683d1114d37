package interfaces

import "time"

// MarkdownParser converts raw Markdown bytes into XHTML that the storage
// format parser can consume.
type MarkdownParser interface {
	// Parse converts Markdown using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown rendering. Option names stay readable for
// configuration unmarshalling and CLI flags.
type ParseOptions struct {
	Extensions []string
	HardWraps  bool
	SafeMode   bool
}

// FrontMatter models the metadata block at the top of a Markdown page. Known
// keys mirror the fields a Confluence page carries; anything else lands in
// Custom. Raw holds every key and is what documents expose.
type FrontMatter struct {
	Title  string         `yaml:"title" json:"title"`
	Space  string         `yaml:"space" json:"space"`
	Parent string         `yaml:"parent" json:"parent"`
	Labels []string       `yaml:"labels" json:"labels"`
	Author string         `yaml:"author" json:"author"`
	Date   time.Time      `yaml:"date" json:"date"`
	Custom map[string]any `yaml:",inline" json:"custom"`
	Raw    map[string]any `yaml:"-" json:"raw"`
}
