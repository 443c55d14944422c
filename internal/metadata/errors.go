package metadata

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoCommandSpecified is returned when the arguments contain no subcommand.
var ErrNoCommandSpecified = errors.New("no command for kubectl specified")

// ContextNotFoundError is returned when the effective context has no entry
// in the kubeconfig. Available lists the context names that do exist.
type ContextNotFoundError struct {
	Name      string
	Available []string
}

func (e *ContextNotFoundError) Error() string {
	msg := fmt.Sprintf("context not found: %s", e.Name)
	if e.Name == "" {
		msg = "context not found: no context name given and no current context set"
	}
	if len(e.Available) > 0 {
		msg += fmt.Sprintf(" (available: %s)", strings.Join(e.Available, ", "))
	}
	return msg
}
