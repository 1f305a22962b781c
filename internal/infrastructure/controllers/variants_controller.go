package controllers

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/wlanmerge/internal/domain/commands"
	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
)

// VariantsController handles the "variants" subcommand.
type VariantsController struct {
	command commands.Variants
}

// NewVariantsController creates a new VariantsController.
func NewVariantsController(command commands.Variants) *VariantsController {
	return &VariantsController{command: command}
}

// GetBind returns the Cobra command metadata for the variants controller.
func (it *VariantsController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "variants",
		Short: "List the supported drivers and their repositories",
		Long: `List every supported WLAN driver with the repositories it is made
of, the staging subdirectory each one lands in and the remote it is
fetched from, after applying the config file.`,
	}
}

// Execute prints the variant catalog.
func (it *VariantsController) Execute(cmd *cobra.Command, _ []string) error {
	global := readGlobalOptions(cmd)

	settings, err := loadSettings(cmd, global.KernelDir)
	if err != nil {
		return err
	}

	specs, err := it.command.Execute(settings)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, spec := range specs {
		fmt.Fprintf(out, "%s (%s, %s)\n", spec.Variant, spec.ConfigFlag, spec.BuildTarget)
		for _, c := range spec.Components {
			fmt.Fprintf(out, "  %-20s %s/%s\n", c.Label(), settings.StagingDir, c.Subdir)
			fmt.Fprintf(out, "  %-20s %s\n", "", c.Remote)
		}
	}
	return nil
}
