package commands

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
)

// checkPreflight makes sure the run starts from the root of a kernel tree.
func checkPreflight(fs afero.Fs, plan entities.MergePlan) error {
	if exists, _ := afero.Exists(fs, "Makefile"); !exists {
		return &entities.StateError{
			Message: "no top-level Makefile found",
			Hint:    "Run this inside your root kernel source.",
		}
	}

	if isDir, _ := afero.DirExists(fs, plan.StagingDir); !isDir {
		return &entities.StateError{
			Message: fmt.Sprintf("staging folder %s can't be found", plan.StagingDir),
			Hint:    "Are you sure you are running it inside the kernel source?",
		}
	}

	return nil
}
