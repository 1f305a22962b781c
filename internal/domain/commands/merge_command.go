package commands

import (
	"context"
	"errors"
	"fmt"

	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
	"github.com/rios0rios0/wlanmerge/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/wlanmerge/internal/infrastructure/repositories"
)

// Merge is the interface for the merge command (root command).
type Merge interface {
	Execute(ctx context.Context, settings *entities.Settings, opts MergeOptions) error
}

// MergeOptions holds the runtime options of one merge.
type MergeOptions struct {
	KernelDir string
	Variant   entities.Variant
	Mode      entities.Mode
	Tag       string
	Verbose   bool
}

// MergeCommand imports or updates a driver in a kernel tree:
// gate on the staging layout -> merge each component -> wire up the build.
type MergeCommand struct {
	treeOpener *infraRepos.TreeOpener
}

// NewMergeCommand creates a new MergeCommand with the given tree opener.
func NewMergeCommand(treeOpener *infraRepos.TreeOpener) *MergeCommand {
	return &MergeCommand{treeOpener: treeOpener}
}

// Execute runs the whole merge. Components are merged in their declared
// order and the first failure stops the run; earlier merges stay committed.
func (it *MergeCommand) Execute(ctx context.Context, settings *entities.Settings, opts MergeOptions) error {
	if opts.Tag == "" {
		return errors.New("a target tag is required")
	}
	if settings == nil {
		settings = entities.DefaultSettings()
	}

	plan, err := entities.NewMergePlan(settings, opts.Variant, opts.Mode, opts.Tag)
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

	allowUnrelated := false
	if plan.Mode == entities.ModeInitial {
		allowUnrelated = tree.Git.SupportsUnrelatedHistories(ctx)
		logger.Debugf("git supports unrelated histories: %v", allowUnrelated)
	}

	for _, component := range plan.Components() {
		if err = mergeComponent(ctx, tree, plan, component, allowUnrelated); err != nil {
			return err
		}
	}

	if plan.Mode == entities.ModeInitial {
		if _, err = patchBuildConfig(ctx, tree, plan); err != nil {
			return err
		}
	}

	logger.Infof("Merged %s tag '%s' (%s)", plan.Spec.Variant, plan.Tag, plan.Mode)
	return nil
}

// mergeComponent fetches the tag of one sub-repository and merges it into
// its staging subdirectory.
func mergeComponent(
	ctx context.Context,
	tree *repositories.KernelTree,
	plan entities.MergePlan,
	component entities.Component,
	allowUnrelated bool,
) error {
	label := component.Label()

	logger.Infof("[%s] Fetching tag '%s'", label, plan.Tag)
	if err := tree.Git.Fetch(ctx, component.Remote, plan.Tag); err != nil {
		return fmt.Errorf("[%s] fetch failed: %w", label, err)
	}

	message, err := buildMergeMessage(ctx, tree.History, tree.TempFs, plan, component)
	if err != nil {
		return fmt.Errorf("[%s] failed to build merge message: %w", label, err)
	}

	if err = runMergeSteps(ctx, tree, plan, component, message, allowUnrelated); err != nil {
		// kept for the manual commit
		logger.Warnf("[%s] Merge message kept at %s", label, message.Path)
		return err
	}
	removeMergeMessage(tree.TempFs, message)
	return nil
}

func runMergeSteps(
	ctx context.Context,
	tree *repositories.KernelTree,
	plan entities.MergePlan,
	component entities.Component,
	message *entities.MergeMessage,
	allowUnrelated bool,
) error {
	label := component.Label()
	prefix := plan.Prefix(component)

	if plan.Mode == entities.ModeUpdate {
		logger.Infof("[%s] Merging into %s and committing changes...", label, prefix)
		if err := tree.Git.SubtreeMerge(ctx, prefix, message.Path); err != nil {
			return fmt.Errorf("[%s] merge failed: %w", label, err)
		}
		return nil
	}

	logger.Infof("[%s] Merging into %s...", label, prefix)
	if err := tree.Git.MergeOurs(ctx, allowUnrelated); err != nil {
		return fmt.Errorf("[%s] merge failed: %w", label, err)
	}
	if err := tree.Git.ReadTree(ctx, prefix); err != nil {
		return fmt.Errorf("[%s] read-tree failed: %w", label, err)
	}
	logger.Infof("[%s] Committing changes...", label)
	if err := tree.Git.CommitFromFile(ctx, message.Path); err != nil {
		return fmt.Errorf("[%s] commit failed: %w", label, err)
	}
	return nil
}
