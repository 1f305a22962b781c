package entities

import (
	"errors"
	"fmt"
	"strings"
)

// ConflictMarker is the text git prints to stdout when a merge leaves
// conflicts behind. Matching on it is inherited behavior kept for
// compatibility; structured checks run first where git offers them.
const ConflictMarker = "CONFLICT"

// StateError reports that the kernel tree is not in the state the requested
// operation needs. Hint tells the operator what they probably meant.
type StateError struct {
	Message string
	Hint    string
}

func (e *StateError) Error() string {
	if e.Hint == "" {
		return e.Message
	}
	return e.Message + "\n" + e.Hint
}

// ExecError is a failed external command.
type ExecError struct {
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error
}

func (e *ExecError) Error() string {
	b := new(strings.Builder)
	fmt.Fprintf(b, "%s: exit code %d", strings.Join(e.Args, " "), e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		b.WriteString(": ")
		b.WriteString(stderr)
	}
	return b.String()
}

func (e *ExecError) Unwrap() error {
	return e.Err
}

// ConflictError is a merge that stopped on conflicts. It is not recoverable
// by the tool: the operator resolves the conflicts and commits by hand.
type ConflictError struct {
	ExecError
	Paths []string // unmerged paths, when git reported them
}

func (e *ConflictError) Error() string {
	if len(e.Paths) == 0 {
		return "merge conflict: " + e.ExecError.Error()
	}
	return fmt.Sprintf("merge conflict in %s: %s", strings.Join(e.Paths, ", "), e.ExecError.Error())
}

// ExitCode maps an error returned by a command to the process exit status.
// Git failures propagate git's own exit code.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}

	var conflictErr *ConflictError
	if errors.As(err, &conflictErr) && conflictErr.ExitCode > 0 {
		return conflictErr.ExitCode
	}
	var execErr *ExecError
	if errors.As(err, &execErr) && execErr.ExitCode > 0 {
		return execErr.ExitCode
	}
	return 1
}
