package commands

import (
	"context"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
	infraRepos "github.com/rios0rios0/wlanmerge/internal/infrastructure/repositories"
)

// Check is the interface for the check command.
type Check interface {
	Execute(ctx context.Context, settings *entities.Settings, opts CheckOptions) error
}

// CheckOptions holds the runtime options of a staging check.
type CheckOptions struct {
	KernelDir string
	Variant   entities.Variant
	Mode      entities.Mode
	Verbose   bool
}

// CheckCommand runs the gates of a merge without fetching or committing.
type CheckCommand struct {
	treeOpener *infraRepos.TreeOpener
}

// NewCheckCommand creates a new CheckCommand with the given tree opener.
func NewCheckCommand(treeOpener *infraRepos.TreeOpener) *CheckCommand {
	return &CheckCommand{treeOpener: treeOpener}
}

// Execute returns nil when a merge with the same variant and mode would be
// allowed to start.
func (it *CheckCommand) Execute(_ context.Context, settings *entities.Settings, opts CheckOptions) error {
	if settings == nil {
		settings = entities.DefaultSettings()
	}

	plan, err := entities.NewMergePlan(settings, opts.Variant, opts.Mode, "")
	if err != nil {
		return err
	}

	tree, err := it.treeOpener.Open(infraRepos.TreeOptions{
		Dir:        opts.KernelDir,
		GitCommand: settings.GitCommand,
		Verbose:    opts.Verbose,
	})
	if err != nil {
		return err
	}

	if err = checkPreflight(tree.Fs, plan); err != nil {
		return err
	}
	if err = checkStaging(tree.Fs, plan); err != nil {
		return err
	}

	logger.Infof("Staging area is ready for --init %s of %s", plan.Mode, plan.Spec.Variant)
	return nil
}
