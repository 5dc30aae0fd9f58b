package irods

import (
	"fmt"
	"strings"
)

// CommandError represents an icommand that exited with a non-zero status.
type CommandError struct {
	Command  string
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("irods: %s %s exited with status %d", e.Command, strings.Join(e.Args, " "), e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}
