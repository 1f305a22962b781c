//go:build unit

package commands_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/wlanmerge/internal/domain/commands"
	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
	"github.com/rios0rios0/wlanmerge/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/wlanmerge/internal/infrastructure/repositories"
	"github.com/rios0rios0/wlanmerge/test/infrastructure/repositorydoubles"
)

const testTag = "LA.UM.8.1.r1-12345-sm8150.0"

func newMergeFixture(
	history *repositorydoubles.StubHistoryRepository,
) (*repositorydoubles.SpyGitRepository, *repositories.KernelTree, *[]infraRepos.TreeOptions) {
	git := &repositorydoubles.SpyGitRepository{}
	tree := repositorydoubles.NewMemoryKernelTree(git, history)
	git.MessageFs = tree.TempFs
	opened := &[]infraRepos.TreeOptions{}
	return git, tree, opened
}

func remoteOf(t *testing.T, variant entities.Variant, index int) string {
	t.Helper()
	spec, err := entities.DefaultVariantSpec(variant)
	require.NoError(t, err)
	return spec.Components[index].Remote
}

func keptMessages(t *testing.T, fs afero.Fs) []string {
	t.Helper()
	var messages []string
	_ = afero.Walk(fs, "/", func(path string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			data, _ := afero.ReadFile(fs, path)
			messages = append(messages, string(data))
		}
		return nil
	})
	return messages
}

func TestMergeCommand_Execute(t *testing.T) {
	t.Parallel()

	t.Run("should import prima into an absent subdirectory and wire up the build", func(t *testing.T) {
		t.Parallel()

		// given
		history := &repositorydoubles.StubHistoryRepository{
			Branch:       "master",
			Tags:         []string{testTag},
			Count:        2,
			SubjectLines: []string{"wlan: first", "wlan: second"},
		}
		git, tree, opened := newMergeFixture(history)
		git.UnrelatedHistories = true
		cmd := commands.NewMergeCommand(repositorydoubles.NewStaticTreeOpener(tree, opened))

		// when
		err := cmd.Execute(context.Background(), nil, commands.MergeOptions{
			KernelDir: "/kernel",
			Variant:   entities.VariantPrima,
			Mode:      entities.ModeInitial,
			Tag:       testTag,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{
			"fetch " + remoteOf(t, entities.VariantPrima, 0) + " " + testTag,
			"merge-ours true",
			"read-tree drivers/staging/prima",
			"commit-file",
			"add drivers/staging/Kconfig drivers/staging/Makefile",
			"commit prima: include it into Source",
		}, git.Calls)
		require.Len(t, git.CommittedMessages, 1)
		assert.Equal(t,
			"Merge tag '"+testTag+"' into master\n\n"+
				"This is an initial merge, all commit changes will not be written fully.\n"+
				"Changes in tag '"+testTag+"': (2 commits)\n"+
				"        wlan: first\n"+
				"        wlan: second\n"+
				"        ...",
			git.CommittedMessages[0])
		assert.Empty(t, keptMessages(t, tree.TempFs))
		require.Len(t, *opened, 1)
		assert.Equal(t, "/kernel", (*opened)[0].Dir)
		assert.Equal(t, "git", (*opened)[0].GitCommand)
	})

	t.Run("should refuse an update over an empty component without touching git", func(t *testing.T) {
		t.Parallel()

		// given
		git, tree, opened := newMergeFixture(&repositorydoubles.StubHistoryRepository{})
		repositorydoubles.PopulateSubdir(tree, "fw-api")
		repositorydoubles.EmptySubdir(tree, "qca-wifi-host-cmn")
		repositorydoubles.PopulateSubdir(tree, "qcacld-3.0")
		cmd := commands.NewMergeCommand(repositorydoubles.NewStaticTreeOpener(tree, opened))

		// when
		err := cmd.Execute(context.Background(), nil, commands.MergeOptions{
			Variant: entities.VariantQcacld,
			Mode:    entities.ModeUpdate,
			Tag:     testTag,
		})

		// then
		var stateErr *entities.StateError
		require.ErrorAs(t, err, &stateErr)
		assert.Contains(t, stateErr.Message, "qca-wifi-host-cmn")
		assert.Empty(t, git.Calls)
	})

	t.Run("should subtree-merge every component on update", func(t *testing.T) {
		t.Parallel()

		// given
		history := &repositorydoubles.StubHistoryRepository{
			Branch:       "master",
			Tags:         []string{"LA.UM.8.1.r1-12000-sm8150.0", testTag},
			Count:        1,
			SubjectLines: []string{"Release"},
		}
		git, tree, opened := newMergeFixture(history)
		for _, subdir := range []string{"fw-api", "qca-wifi-host-cmn", "qcacld-3.0"} {
			repositorydoubles.PopulateSubdir(tree, subdir)
		}
		cmd := commands.NewMergeCommand(repositorydoubles.NewStaticTreeOpener(tree, opened))

		// when
		err := cmd.Execute(context.Background(), nil, commands.MergeOptions{
			Variant: entities.VariantQcacld,
			Mode:    entities.ModeUpdate,
			Tag:     testTag,
		})

		// then
		require.NoError(t, err)
		assert.Equal(t, []string{
			"subtree-merge drivers/staging/fw-api",
			"subtree-merge drivers/staging/qca-wifi-host-cmn",
			"subtree-merge drivers/staging/qcacld-3.0",
		}, git.CallsTo("subtree-merge"))
		assert.Empty(t, git.CallsTo("add"))
		assert.Empty(t, git.CallsTo("merge-ours"))
		require.Len(t, git.CommittedMessages, 3)
		assert.True(t, strings.HasPrefix(git.CommittedMessages[1], "qca-wifi-host-cmn: Merge tag '"+testTag+"' into master"))
		assert.Contains(t, git.CommittedMessages[2], "Changes in tag '"+testTag+"': (1 commits)")
		assert.NotContains(t, git.CommittedMessages[2], "...")
		assert.Empty(t, keptMessages(t, tree.TempFs))
	})

	t.Run("should stop at the first conflict and propagate git's exit code", func(t *testing.T) {
		t.Parallel()

		// given
		git, tree, opened := newMergeFixture(&repositorydoubles.StubHistoryRepository{Branch: "master"})
		git.MergeOursErr = &entities.ConflictError{
			ExecError: entities.ExecError{Args: []string{"git", "merge"}, ExitCode: 1, Stdout: "CONFLICT (content)"},
		}
		cmd := commands.NewMergeCommand(repositorydoubles.NewStaticTreeOpener(tree, opened))

		// when
		err := cmd.Execute(context.Background(), nil, commands.MergeOptions{
			Variant: entities.VariantQcacld,
			Mode:    entities.ModeInitial,
			Tag:     testTag,
		})

		// then
		var conflictErr *entities.ConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Equal(t, 1, entities.ExitCode(err))
		assert.Equal(t, []string{
			"fetch " + remoteOf(t, entities.VariantQcacld, 0) + " " + testTag,
			"merge-ours false",
		}, git.Calls)
		kept := keptMessages(t, tree.TempFs)
		require.Len(t, kept, 1)
		assert.True(t, strings.HasPrefix(kept[0], "Merge tag '"+testTag+"' into master"))
	})

	t.Run("should keep the merge message when the commit fails", func(t *testing.T) {
		t.Parallel()

		// given
		git, tree, opened := newMergeFixture(&repositorydoubles.StubHistoryRepository{Branch: "master"})
		git.CommitFromFileErr = &entities.ExecError{Args: []string{"git", "commit"}, ExitCode: 1}
		cmd := commands.NewMergeCommand(repositorydoubles.NewStaticTreeOpener(tree, opened))

		// when
		err := cmd.Execute(context.Background(), nil, commands.MergeOptions{
			Variant: entities.VariantPrima,
			Mode:    entities.ModeInitial,
			Tag:     testTag,
		})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "[prima] commit failed")
		require.Len(t, git.CommittedMessages, 1)
		assert.Equal(t, git.CommittedMessages, keptMessages(t, tree.TempFs))
		assert.Empty(t, git.CallsTo("add"))
	})

	t.Run("should name the component whose fetch failed", func(t *testing.T) {
		t.Parallel()

		// given
		git, tree, opened := newMergeFixture(&repositorydoubles.StubHistoryRepository{})
		git.FetchErr = &entities.ExecError{Args: []string{"git", "fetch"}, ExitCode: 128}
		cmd := commands.NewMergeCommand(repositorydoubles.NewStaticTreeOpener(tree, opened))

		// when
		err := cmd.Execute(context.Background(), nil, commands.MergeOptions{
			Variant: entities.VariantPrima,
			Mode:    entities.ModeInitial,
			Tag:     testTag,
		})

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "[prima] fetch failed")
		assert.Equal(t, 128, entities.ExitCode(err))
	})

	t.Run("should require a tag before opening the tree", func(t *testing.T) {
		t.Parallel()

		// given
		_, tree, opened := newMergeFixture(&repositorydoubles.StubHistoryRepository{})
		cmd := commands.NewMergeCommand(repositorydoubles.NewStaticTreeOpener(tree, opened))

		// when
		err := cmd.Execute(context.Background(), nil, commands.MergeOptions{
			Variant: entities.VariantPrima,
			Mode:    entities.ModeInitial,
		})

		// then
		require.Error(t, err)
		assert.Empty(t, *opened)
	})

	t.Run("should surface errors opening the tree", func(t *testing.T) {
		t.Parallel()

		// given
		cmd := commands.NewMergeCommand(infraRepos.NewTreeOpener(
			func(infraRepos.TreeOptions) (*repositories.KernelTree, error) {
				return nil, errors.New("not a git repository")
			},
		))

		// when
		err := cmd.Execute(context.Background(), nil, commands.MergeOptions{
			Variant: entities.VariantPrima,
			Mode:    entities.ModeInitial,
			Tag:     testTag,
		})

		// then
		require.EqualError(t, err, "not a git repository")
	})
}
