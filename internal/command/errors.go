package command

import "fmt"

// The failure kinds a dispatch can produce before any backend call. Each kind
// carries a stable message prefix so scripts can tell bad input apart from a
// backend rejection. Backend failures pass through untouched.

// UnknownCommandError reports a top-level token outside the command set.
type UnknownCommandError struct {
	Token string
}

func (e *UnknownCommandError) Error() string {
	return fmt.Sprintf("unknown command: %q", e.Token)
}

// UnknownSubcommandError reports a token outside the parent command's
// subcommand set.
type UnknownSubcommandError struct {
	Parent Command
	Token  string
}

func (e *UnknownSubcommandError) Error() string {
	return fmt.Sprintf("unknown %s subcommand: %q", e.Parent, e.Token)
}

// MissingParameterError reports a required flag that was not supplied.
type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return fmt.Sprintf("missing required flag: --%s", e.Name)
}

// InvalidIdentifierError reports a flag value that could not be parsed into
// its domain type.
type InvalidIdentifierError struct {
	Name  string
	Raw   string
	Cause error
}

func (e *InvalidIdentifierError) Error() string {
	return fmt.Sprintf("invalid --%s value %q: %v", e.Name, e.Raw, e.Cause)
}

func (e *InvalidIdentifierError) Unwrap() error {
	return e.Cause
}

// NotImplementedError reports a resolved pair with no backend operation.
type NotImplementedError struct {
	Parent     Command
	Subcommand string
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("not implemented: %s %s has no backend operation", e.Parent, e.Subcommand)
}
