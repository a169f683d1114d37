package commands

import (
	"strings"

	"github.com/goliatone/go-confluence-content/internal/logging"
	"github.com/goliatone/go-confluence-content/pkg/interfaces"
)

const commandModuleRoot = "confluence.commands"

// CommandLogger returns the logger for a command group such as "parse",
// named confluence.commands.<group> and tagged with the group.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	name := strings.TrimSpace(group)
	if name == "" {
		return logging.CommandsLogger(provider)
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+name)
	return logging.WithFields(logger, map[string]any{
		"component":     "command",
		"command_group": name,
	})
}
