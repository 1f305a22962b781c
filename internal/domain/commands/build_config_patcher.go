package commands

import (
	"context"
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
	"github.com/rios0rios0/wlanmerge/internal/domain/repositories"
)

const defaultConfigFileMode os.FileMode = 0o644

// patchBuildConfig hooks a freshly imported driver into the staging Kconfig
// and Makefile, then commits both. It reports whether any file was written.
// Staging or committing the edit is best effort: failures are only logged.
func patchBuildConfig(ctx context.Context, tree *repositories.KernelTree, plan entities.MergePlan) (bool, error) {
	spec := plan.Spec
	kconfigPath := plan.KconfigPath()
	makefilePath := plan.MakefilePath()

	kconfig, err := afero.ReadFile(tree.Fs, kconfigPath)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", kconfigPath, err)
	}
	makefile, err := afero.ReadFile(tree.Fs, makefilePath)
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", makefilePath, err)
	}

	sourceLine := entities.KconfigSourceLine(plan.StagingDir, spec.BuildTarget)
	newKconfig, kconfigChanged, found := entities.InsertKconfigSource(string(kconfig), sourceLine)
	if !found {
		logger.Warnf("%s has no %q line, add %q by hand", kconfigPath, entities.KconfigEndMarker, sourceLine)
	}
	rule := entities.MakefileRule(spec.ConfigFlag, spec.BuildTarget)
	newMakefile, makefileChanged := entities.AppendMakefileRule(string(makefile), spec.ConfigFlag, rule)

	if !kconfigChanged && !makefileChanged {
		logger.Infof("%s is already included in the build", spec.Variant)
		return false, nil
	}

	if kconfigChanged {
		logger.Infof("Including %s into Kconfig...", spec.Variant)
		if writeErr := writePreservingMode(tree.Fs, kconfigPath, newKconfig); writeErr != nil {
			return false, writeErr
		}
	}
	if makefileChanged {
		logger.Infof("Including %s into Makefile...", spec.Variant)
		if writeErr := writePreservingMode(tree.Fs, makefilePath, newMakefile); writeErr != nil {
			return kconfigChanged, writeErr
		}
	}

	if addErr := tree.Git.Add(ctx, kconfigPath, makefilePath); addErr != nil {
		logger.Warnf("Could not stage the build config changes, commit them by hand: %v", addErr)
		return true, nil
	}
	if commitErr := tree.Git.Commit(ctx, fmt.Sprintf("%s: include it into Source", spec.Variant)); commitErr != nil {
		logger.Warnf("Could not commit the build config changes, commit them by hand: %v", commitErr)
	}

	return true, nil
}

func writePreservingMode(fs afero.Fs, path, content string) error {
	mode := defaultConfigFileMode
	if info, err := fs.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := afero.WriteFile(fs, path, []byte(content), mode); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
