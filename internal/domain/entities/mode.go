package entities

import "fmt"

// Mode selects which sequence of git operations a run performs.
type Mode string

const (
	// ModeInitial grafts a fetched tree into an absent or empty subdirectory.
	ModeInitial Mode = "initial"
	// ModeUpdate subtree-merges a fetched tag into an existing import.
	ModeUpdate Mode = "update"
)

// ParseMode validates a user-supplied mode name.
func ParseMode(raw string) (Mode, error) {
	switch Mode(raw) {
	case ModeInitial, ModeUpdate:
		return Mode(raw), nil
	default:
		return "", fmt.Errorf("unknown merge type %q (choose from %s, %s)", raw, ModeUpdate, ModeInitial)
	}
}
