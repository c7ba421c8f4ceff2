// Package shell parses raw shell command strings into core commands for
// authorization matching. It handles POSIX sh/bash quoting, control-operator
// chaining, and the benign decoration that wraps a command (assignments,
// wrappers, redirections, one level of sh -c / bash -c) without ever
// executing anything. Constructs it cannot reason about are reported rather
// than guessed at, so callers can fail closed.
package shell

import "strings"

// CoreCommand is the canonical (executable, arguments) form of one shell
// segment after all benign decoration has been stripped. Arguments is the
// remaining tokens rejoined with single spaces; it is for matching and
// display only and is not meant to be re-executed.
type CoreCommand struct {
	Executable string
	Arguments  string
}

// String returns the command in its canonical matching form:
// the executable, followed by a space and the arguments when present.
func (c CoreCommand) String() string {
	if c.Arguments == "" {
		return c.Executable
	}
	return c.Executable + " " + c.Arguments
}

// Extract reduces a normalized segment to a CoreCommand. The first token is
// the executable and the rest are the arguments. Returns false for an empty
// segment.
func Extract(segment []string) (CoreCommand, bool) {
	if len(segment) == 0 {
		return CoreCommand{}, false
	}
	return CoreCommand{
		Executable: segment[0],
		Arguments:  strings.Join(segment[1:], " "),
	}, true
}
