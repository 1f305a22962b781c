package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
)

type subdirState int

const (
	subdirAbsent subdirState = iota
	subdirEmpty
	subdirPopulated
	subdirNotDir
)

// checkStaging decides whether the staging layout allows the planned mode.
// Initial imports need every component subdirectory absent or empty; updates
// need every one of them present and non-empty. Mixed layouts are rejected.
func checkStaging(fs afero.Fs, plan entities.MergePlan) error {
	var populated, vacant, notDirs []string

	for _, c := range plan.Components() {
		prefix := plan.Prefix(c)
		state, err := inspectSubdir(fs, prefix)
		if err != nil {
			return fmt.Errorf("failed to inspect %s: %w", prefix, err)
		}

		switch state {
		case subdirPopulated:
			logger.Debugf("%s exists and is not empty", prefix)
			populated = append(populated, c.Subdir)
		case subdirNotDir:
			notDirs = append(notDirs, prefix)
		default:
			logger.Debugf("%s is absent or empty", prefix)
			vacant = append(vacant, c.Subdir)
		}
	}

	if len(notDirs) > 0 {
		return &entities.StateError{
			Message: fmt.Sprintf("%s exists but is not a directory", strings.Join(notDirs, ", ")),
			Hint:    "Move it out of the staging area before merging.",
		}
	}

	total := len(plan.Components())
	switch plan.Mode {
	case entities.ModeInitial:
		return initialStagingError(populated, vacant, total)
	case entities.ModeUpdate:
		return updateStagingError(populated, vacant, total)
	default:
		return fmt.Errorf("unknown merge type %q", plan.Mode)
	}
}

func initialStagingError(populated, vacant []string, total int) error {
	if len(populated) == 0 {
		return nil
	}
	if len(populated) == total {
		return &entities.StateError{
			Message: fmt.Sprintf("%s already exists and is not empty", strings.Join(populated, ", ")),
			Hint:    "You might want to use --init update, because the driver is already imported.",
		}
	}
	return &entities.StateError{
		Message: fmt.Sprintf(
			"partial import found: %s not empty, %s absent or empty",
			strings.Join(populated, ", "), strings.Join(vacant, ", "),
		),
		Hint: fmt.Sprintf(
			"Remove %s to start over with --init initial, or complete the import before using --init update.",
			strings.Join(populated, ", "),
		),
	}
}

func updateStagingError(populated, vacant []string, total int) error {
	if len(vacant) == 0 {
		return nil
	}
	if len(vacant) == total {
		return &entities.StateError{
			Message: fmt.Sprintf("%s does not exist or is empty", strings.Join(vacant, ", ")),
			Hint:    "You might want to use --init initial, because the driver is not imported yet.",
		}
	}
	return &entities.StateError{
		Message: fmt.Sprintf(
			"partial import found: %s absent or empty, %s not empty",
			strings.Join(vacant, ", "), strings.Join(populated, ", "),
		),
		Hint: "An update needs every component present and not empty; " +
			"remove the partial import and use --init initial.",
	}
}

func inspectSubdir(fs afero.Fs, path string) (subdirState, error) {
	info, err := fs.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return subdirAbsent, nil
	}
	if err != nil {
		return subdirAbsent, err
	}
	if !info.IsDir() {
		return subdirNotDir, nil
	}

	empty, err := afero.IsEmpty(fs, path)
	if err != nil {
		return subdirAbsent, err
	}
	if empty {
		return subdirEmpty, nil
	}
	return subdirPopulated, nil
}
