// Package command is the grammar and dispatch core of fleetctl: it resolves
// textual command and subcommand tokens into closed, typed enumerations,
// validates the flags each pair requires, and routes every valid invocation
// to exactly one backend operation.
package command

import "strings"

// Command is the top-level verb selecting a backend domain.
type Command string

const (
	CommandInit     Command = "init"
	CommandCampaign Command = "campaign"
	CommandDevice   Command = "device"
	CommandGroup    Command = "group"
	CommandPackage  Command = "package"
	CommandUpdate   Command = "update"
)

// ParseCommand resolves a top-level token case-insensitively. Matching is
// exact after lowercasing; there is no prefix or fuzzy matching.
func ParseCommand(token string) (Command, error) {
	switch strings.ToLower(token) {
	case "init":
		return CommandInit, nil
	case "campaign":
		return CommandCampaign, nil
	case "device":
		return CommandDevice, nil
	case "group":
		return CommandGroup, nil
	case "package":
		return CommandPackage, nil
	case "update":
		return CommandUpdate, nil
	default:
		return "", &UnknownCommandError{Token: token}
	}
}
