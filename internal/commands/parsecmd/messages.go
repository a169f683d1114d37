package parsecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-confluence-content/internal/document"
)

const (
	parseContentMessageType   = "confluence.content.parse"
	parseDirectoryMessageType = "confluence.markdown.parse_directory"
)

// ParseContentCommand parses a single page body.
type ParseContentCommand struct {
	// Markup is the page body, storage format or Markdown depending on Format.
	Markup string `json:"markup"`
	// Format selects the input dialect. Empty means storage format.
	Format string `json:"format,omitempty"`
	// Label identifies the page in logs and results.
	Label string `json:"label,omitempty"`
}

// Type implements command.Message.
func (ParseContentCommand) Type() string { return parseContentMessageType }

// Validate requires a non-blank body and a known format.
func (cmd ParseContentCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Markup, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("confluence.content.parse.markup_required", "markup is required")
			}
			return nil
		})),
		validation.Field(&cmd.Format, validation.In(document.SourceStorage, document.SourceMarkdown)),
	)
}

func (cmd ParseContentCommand) format() string {
	if cmd.Format == "" {
		return document.SourceStorage
	}
	return cmd.Format
}

// ParseDirectoryCommand converts every Markdown file below Directory.
type ParseDirectoryCommand struct {
	// Directory is relative to the handler filesystem.
	Directory string `json:"directory"`
	// Pattern filters file base names. Defaults to *.md.
	Pattern string `json:"pattern,omitempty"`
	// Recursive descends into sub-directories.
	Recursive bool `json:"recursive,omitempty"`
}

// Type implements command.Message.
func (ParseDirectoryCommand) Type() string { return parseDirectoryMessageType }

// Validate requires a directory.
func (cmd ParseDirectoryCommand) Validate() error {
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required, validation.By(func(value any) error {
			if strings.TrimSpace(value.(string)) == "" {
				return validation.NewError("confluence.markdown.parse_directory.directory_required", "directory is required")
			}
			return nil
		})),
	)
}
