//go:build unit

package commands_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/wlanmerge/internal/domain/commands"
	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
	"github.com/rios0rios0/wlanmerge/test/domain/entitybuilders"
	"github.com/rios0rios0/wlanmerge/test/infrastructure/repositorydoubles"
)

func TestPatchBuildConfig(t *testing.T) {
	t.Parallel()

	t.Run("should include the driver and commit both files", func(t *testing.T) {
		t.Parallel()

		// given
		git := &repositorydoubles.SpyGitRepository{}
		tree := repositorydoubles.NewMemoryKernelTree(git, nil)
		plan := entitybuilders.NewMergePlanBuilder().BuildMergePlan()

		// when
		changed, err := commands.PatchBuildConfig(context.Background(), tree, plan)

		// then
		require.NoError(t, err)
		assert.True(t, changed)

		kconfig, _ := afero.ReadFile(tree.Fs, "drivers/staging/Kconfig")
		assert.True(t, strings.HasSuffix(string(kconfig),
			"source \"drivers/staging/android/Kconfig\"\n\n"+
				"source \"drivers/staging/qcacld-3.0/Kconfig\"\n\n"+
				"endif # STAGING\n"))
		makefile, _ := afero.ReadFile(tree.Fs, "drivers/staging/Makefile")
		assert.True(t, strings.HasSuffix(string(makefile),
			"obj-$(CONFIG_ANDROID)\t\t+= android/\nobj-$(CONFIG_QCA_CLD_WLAN)\t+= qcacld-3.0/"))

		assert.Equal(t, []string{
			"add drivers/staging/Kconfig drivers/staging/Makefile",
			"commit qcacld: include it into Source",
		}, git.Calls)
	})

	t.Run("should leave an already patched tree untouched", func(t *testing.T) {
		t.Parallel()

		// given
		git := &repositorydoubles.SpyGitRepository{}
		tree := repositorydoubles.NewMemoryKernelTree(git, nil)
		plan := entitybuilders.NewMergePlanBuilder().WithVariant(entities.VariantPrima).BuildMergePlan()
		_, err := commands.PatchBuildConfig(context.Background(), tree, plan)
		require.NoError(t, err)
		kconfigBefore, _ := afero.ReadFile(tree.Fs, "drivers/staging/Kconfig")
		git.Calls = nil

		// when
		changed, err := commands.PatchBuildConfig(context.Background(), tree, plan)

		// then
		require.NoError(t, err)
		assert.False(t, changed)
		assert.Empty(t, git.Calls)
		kconfigAfter, _ := afero.ReadFile(tree.Fs, "drivers/staging/Kconfig")
		assert.Equal(t, string(kconfigBefore), string(kconfigAfter))
		assert.Equal(t, 1, strings.Count(string(kconfigAfter), "drivers/staging/prima/Kconfig"))
	})

	t.Run("should succeed when the commit of the edit fails", func(t *testing.T) {
		t.Parallel()

		// given
		git := &repositorydoubles.SpyGitRepository{CommitErr: errors.New("nothing to commit")}
		tree := repositorydoubles.NewMemoryKernelTree(git, nil)
		plan := entitybuilders.NewMergePlanBuilder().BuildMergePlan()

		// when
		changed, err := commands.PatchBuildConfig(context.Background(), tree, plan)

		// then
		require.NoError(t, err)
		assert.True(t, changed)
	})

	t.Run("should only append the Makefile rule without an end marker", func(t *testing.T) {
		t.Parallel()

		// given
		git := &repositorydoubles.SpyGitRepository{}
		tree := repositorydoubles.NewMemoryKernelTree(git, nil)
		require.NoError(t, afero.WriteFile(tree.Fs, "drivers/staging/Kconfig", []byte("menu \"Staging\"\nendmenu\n"), 0o644))
		plan := entitybuilders.NewMergePlanBuilder().BuildMergePlan()

		// when
		changed, err := commands.PatchBuildConfig(context.Background(), tree, plan)

		// then
		require.NoError(t, err)
		assert.True(t, changed)
		kconfig, _ := afero.ReadFile(tree.Fs, "drivers/staging/Kconfig")
		assert.Equal(t, "menu \"Staging\"\nendmenu\n", string(kconfig))
	})

	t.Run("should fail when the staging Makefile is missing", func(t *testing.T) {
		t.Parallel()

		// given
		tree := repositorydoubles.NewMemoryKernelTree(&repositorydoubles.SpyGitRepository{}, nil)
		require.NoError(t, tree.Fs.Remove("drivers/staging/Makefile"))
		plan := entitybuilders.NewMergePlanBuilder().BuildMergePlan()

		// when
		_, err := commands.PatchBuildConfig(context.Background(), tree, plan)

		// then
		require.Error(t, err)
	})
}
