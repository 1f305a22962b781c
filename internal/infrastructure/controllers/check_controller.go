package controllers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/wlanmerge/internal/domain/commands"
	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
)

// CheckController handles the "check" subcommand.
type CheckController struct {
	command commands.Check
}

// NewCheckController creates a new CheckController.
func NewCheckController(command commands.Check) *CheckController {
	return &CheckController{command: command}
}

// GetBind returns the Cobra command metadata for the check controller.
func (it *CheckController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "check",
		Short: "Check whether the staging area allows a merge",
		Long: `Run the same checks a merge starts with, without fetching or
committing anything: the kernel root, the staging folder and the state of
every driver subdirectory for the chosen mode.`,
	}
}

// Execute runs the staging check.
func (it *CheckController) Execute(cmd *cobra.Command, _ []string) error {
	global := readGlobalOptions(cmd)

	variant, mode, err := readVariantMode(cmd)
	if err != nil {
		return err
	}

	settings, err := loadSettings(cmd, global.KernelDir)
	if err != nil {
		return err
	}

	return it.command.Execute(context.Background(), settings, commands.CheckOptions{
		KernelDir: global.KernelDir,
		Variant:   variant,
		Mode:      mode,
		Verbose:   global.Verbose,
	})
}

// AddFlags adds the check-specific flags to the given Cobra command.
func (it *CheckController) AddFlags(cmd *cobra.Command) {
	addVariantModeFlags(cmd)
}
