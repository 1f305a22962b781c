package controllers

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/rios0rios0/wlanmerge/internal/domain/commands"
	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
)

// MergeController handles the root command: an initial import or an update.
type MergeController struct {
	command commands.Merge
}

// NewMergeController creates a new MergeController.
func NewMergeController(command commands.Merge) *MergeController {
	return &MergeController{command: command}
}

// GetBind returns the Cobra command metadata for the merge controller.
func (it *MergeController) GetBind() entities.ControllerBind {
	return entities.ControllerBind{
		Use:   "wlanmerge",
		Short: "Import or update CAF WLAN drivers in a kernel source",
		Long: `Add or update the qcacld-3.0 or prima WLAN driver in your Android
kernel source, keeping the upstream history.

Initial imports graft each fetched tag into drivers/staging and wire the
driver into the staging Kconfig and Makefile. Updates subtree-merge the new
tag into the existing import. Conflicts are left for you to resolve.

Run it from the root of the kernel source:
  wlanmerge -W qcacld -I initial -T LA.UM.8.1.r1-12345-sm8150.0
  wlanmerge -W prima -I update -T LA.BR.1.2.9-01810-8x09.0`,
	}
}

// Execute runs the merge.
func (it *MergeController) Execute(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()
	global := readGlobalOptions(cmd)

	variant, mode, err := readVariantMode(cmd)
	if err != nil {
		return err
	}
	tag, _ := cmd.Flags().GetString("tag")

	settings, err := loadSettings(cmd, global.KernelDir)
	if err != nil {
		return err
	}

	return it.command.Execute(ctx, settings, commands.MergeOptions{
		KernelDir: global.KernelDir,
		Variant:   variant,
		Mode:      mode,
		Tag:       tag,
		Verbose:   global.Verbose,
	})
}

// AddFlags adds the merge-specific flags to the given Cobra command.
func (it *MergeController) AddFlags(cmd *cobra.Command) {
	addVariantModeFlags(cmd)
	cmd.Flags().StringP("tag", "T", "", "Your current/target CAF tag")
	_ = cmd.MarkFlagRequired("tag")
}
