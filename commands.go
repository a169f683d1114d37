package confluence

import (
	"errors"
	"io/fs"

	"github.com/goliatone/go-confluence-content/internal/commands/parsecmd"
)

type (
	// ParseContentCommand parses a single page body.
	ParseContentCommand = parsecmd.ParseContentCommand
	// ParseDirectoryCommand converts a directory of Markdown pages.
	ParseDirectoryCommand = parsecmd.ParseDirectoryCommand
	// CommandResult is handed to the command sink for every parsed page.
	CommandResult = parsecmd.Result
	// CommandSink receives command results.
	CommandSink = parsecmd.Sink
	// CommandHandlers groups the parse handlers.
	CommandHandlers = parsecmd.HandlerSet
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry = parsecmd.CommandRegistry

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// RegistrationOptions configures where handlers are registered and what they
// read from. FS is only needed for directory conversion.
type RegistrationOptions struct {
	Registry   CommandRegistry
	Dispatcher CommandDispatcher
	FS         fs.FS
	Sink       CommandSink
}

// RegistrationResult captures the constructed handlers and any dispatcher
// subscriptions.
type RegistrationResult struct {
	Handlers      *CommandHandlers
	Subscriptions []CommandSubscription
}

// RegisterCommands builds the parse command handlers and registers them with
// the configured registry and dispatcher. Registration errors are joined;
// the handlers are returned either way.
func (m *Module) RegisterCommands(opts RegistrationOptions) (*RegistrationResult, error) {
	deps := parsecmd.Dependencies{
		Parser: m.parser,
		FS:     opts.FS,
		Sink:   opts.Sink,
	}
	if m.markdown != nil {
		deps.Converter = m.markdown
	}

	set, err := parsecmd.RegisterParseCommands(nil, deps, m.provider, parsecmd.FeatureGates{
		MarkdownEnabled: func() bool { return m.cfg.Features.Markdown },
	})
	if err != nil {
		return nil, err
	}

	result := &RegistrationResult{
		Handlers:      set,
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error
	register := func(handler any) {
		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}
		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}
	}

	register(set.Content)
	if set.Directory != nil {
		register(set.Directory)
	}
	return result, errs
}
