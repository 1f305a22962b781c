//go:build unit

package controllers_test

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rios0rios0/wlanmerge/internal/domain/commands"
	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
	"github.com/rios0rios0/wlanmerge/internal/infrastructure/controllers"
	"github.com/rios0rios0/wlanmerge/test/domain/commanddoubles"
)

// newTestCommand mounts a controller on a command carrying the same
// persistent flags as the real root command.
func newTestCommand(controller entities.Controller, args ...string) (*cobra.Command, *bytes.Buffer) {
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:           controller.GetBind().Use,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE:          controller.Execute,
	}
	cmd.PersistentFlags().StringP("config", "c", "", "")
	cmd.PersistentFlags().StringP("kernel-dir", "C", ".", "")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "")
	if fc, ok := controller.(entities.FlagController); ok {
		fc.AddFlags(cmd)
	}

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(out)
	cmd.SetArgs(args)
	return cmd, out
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wlanmerge.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestMergeController(t *testing.T) {
	t.Parallel()

	t.Run("should pass the parsed flags to the merge command", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubMergeCommand{}
		cfg := writeConfig(t, "staging_dir: drivers/vendor\n")
		cmd, _ := newTestCommand(controllers.NewMergeController(stub),
			"-W", "qcacld", "-I", "update", "-T", "LA.UM.8.1.r1-12345-sm8150.0",
			"-C", "/src/kernel", "--config", cfg)

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.Equal(t, 1, stub.ExecuteCallCount)
		assert.Equal(t, commands.MergeOptions{
			KernelDir: "/src/kernel",
			Variant:   entities.VariantQcacld,
			Mode:      entities.ModeUpdate,
			Tag:       "LA.UM.8.1.r1-12345-sm8150.0",
		}, stub.LastOpts)
		assert.Equal(t, "drivers/vendor", stub.LastSettings.StagingDir)
	})

	t.Run("should require the tag flag", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubMergeCommand{}
		cmd, _ := newTestCommand(controllers.NewMergeController(stub), "-W", "prima", "-I", "initial")

		// when
		err := cmd.Execute()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"tag"`)
		assert.Zero(t, stub.ExecuteCallCount)
	})

	t.Run("should reject an unknown wlan type", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubMergeCommand{}
		cfg := writeConfig(t, "")
		cmd, _ := newTestCommand(controllers.NewMergeController(stub),
			"-W", "bcmdhd", "-I", "initial", "-T", "v1", "--config", cfg)

		// when
		err := cmd.Execute()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown wlan type")
		assert.Zero(t, stub.ExecuteCallCount)
	})

	t.Run("should return the command error unchanged", func(t *testing.T) {
		t.Parallel()

		// given
		expected := &entities.ConflictError{ExecError: entities.ExecError{ExitCode: 1}}
		stub := &commanddoubles.StubMergeCommand{ExecuteErr: expected}
		cfg := writeConfig(t, "")
		cmd, _ := newTestCommand(controllers.NewMergeController(stub),
			"-W", "prima", "-I", "update", "-T", "v1", "--config", cfg)

		// when
		err := cmd.Execute()

		// then
		var conflictErr *entities.ConflictError
		require.ErrorAs(t, err, &conflictErr)
		assert.Same(t, expected, conflictErr)
	})
}

func TestCheckController(t *testing.T) {
	t.Parallel()

	t.Run("should pass variant and mode to the check command", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubCheckCommand{}
		cfg := writeConfig(t, "")
		cmd, _ := newTestCommand(controllers.NewCheckController(stub),
			"--wlan", "prima", "--init", "initial", "--config", cfg)

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.Equal(t, entities.VariantPrima, stub.LastOpts.Variant)
		assert.Equal(t, entities.ModeInitial, stub.LastOpts.Mode)
		assert.Equal(t, ".", stub.LastOpts.KernelDir)
	})

	t.Run("should fail on an invalid config file", func(t *testing.T) {
		t.Parallel()

		// given
		stub := &commanddoubles.StubCheckCommand{ExecuteErr: errors.New("unreachable")}
		cfg := writeConfig(t, "git_command: ''\n")
		cmd, _ := newTestCommand(controllers.NewCheckController(stub),
			"-W", "prima", "-I", "initial", "--config", cfg)

		// when
		err := cmd.Execute()

		// then
		require.Error(t, err)
		assert.Contains(t, err.Error(), "git_command")
		assert.Zero(t, stub.ExecuteCallCount)
	})
}

func TestVariantsController(t *testing.T) {
	t.Parallel()

	t.Run("should print every variant with its components", func(t *testing.T) {
		t.Parallel()

		// given
		cfg := writeConfig(t, "remotes:\n  prima: https://mirror.example.com/prima.git\n")
		cmd, out := newTestCommand(controllers.NewVariantsController(commands.NewVariantsCommand()),
			"--config", cfg)

		// when
		err := cmd.Execute()

		// then
		require.NoError(t, err)
		assert.Contains(t, out.String(), "qcacld (CONFIG_QCA_CLD_WLAN, qcacld-3.0)")
		assert.Contains(t, out.String(), "drivers/staging/qca-wifi-host-cmn")
		assert.Contains(t, out.String(), "prima (CONFIG_PRONTO_WLAN, prima)")
		assert.Contains(t, out.String(), "https://mirror.example.com/prima.git")
	})
}
