package parsecmd

import (
	"context"
	"errors"
	"io/fs"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-confluence-content/internal/commands"
	"github.com/goliatone/go-confluence-content/pkg/interfaces"
)

// CommandRegistry is the registration contract used when wiring handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CronRegistrar matches the function signature used by go-command registries.
type CronRegistrar func(command.HandlerConfig, any) error

// Dependencies groups what the parse handlers need. Converter and FS may be
// nil when Markdown input is not used.
type Dependencies struct {
	Parser    StorageParser
	Converter MarkdownConverter
	FS        fs.FS
	Sink      Sink
}

// HandlerSet groups the handlers built by RegisterParseCommands.
type HandlerSet struct {
	Content   *ParseContentHandler
	Directory *ParseDirectoryHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	contentOpts   []commands.HandlerOption[ParseContentCommand]
	directoryOpts []commands.HandlerOption[ParseDirectoryCommand]
}

// WithContentHandlerOptions forwards options to the content handler.
func WithContentHandlerOptions(opts ...commands.HandlerOption[ParseContentCommand]) Option {
	return func(cfg *options) {
		cfg.contentOpts = append(cfg.contentOpts, opts...)
	}
}

// WithDirectoryHandlerOptions forwards options to the directory handler.
func WithDirectoryHandlerOptions(opts ...commands.HandlerOption[ParseDirectoryCommand]) Option {
	return func(cfg *options) {
		cfg.directoryOpts = append(cfg.directoryOpts, opts...)
	}
}

// RegisterParseCommands builds the parse handlers and registers them with
// reg when it is not nil. The directory handler is only built when both a
// converter and a filesystem are supplied.
func RegisterParseCommands(reg CommandRegistry, deps Dependencies, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if deps.Parser == nil {
		return nil, errors.New("parse command registration: parser is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, "parse")
	set := &HandlerSet{
		Content: NewParseContentHandler(deps.Parser, deps.Converter, logger, gates, deps.Sink, cfg.contentOpts...),
	}
	if deps.Converter != nil && deps.FS != nil {
		set.Directory = NewParseDirectoryHandler(deps.Converter, deps.FS, logger, gates, deps.Sink, cfg.directoryOpts...)
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.Content); err != nil {
			return nil, err
		}
		if set.Directory != nil {
			if err := reg.RegisterCommand(set.Directory); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

// RegisterDirectoryCron schedules handler with the given message. The
// handler runs with a background context.
func RegisterDirectoryCron(reg CronRegistrar, handler *ParseDirectoryHandler, cfg command.HandlerConfig, msg ParseDirectoryCommand) error {
	if reg == nil || handler == nil {
		return nil
	}
	return reg(cfg, func() error {
		return handler.Execute(context.Background(), msg)
	})
}
