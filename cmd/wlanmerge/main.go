package main

import (
	"errors"
	"os"
	"strings"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/wlanmerge/internal"
	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
	"github.com/rios0rios0/wlanmerge/internal/infrastructure/controllers"
)

func buildRootCommand(mergeController *controllers.MergeController) *cobra.Command {
	bind := mergeController.GetBind()
	//nolint:exhaustruct // Minimal Command initialization with required fields only
	cmd := &cobra.Command{
		Use:           bind.Use,
		Short:         bind.Short,
		Long:          bind.Long,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, args []string) error {
			// flag errors above still print usage, failures below do not
			command.SilenceUsage = true
			return mergeController.Execute(command, args)
		},
	}

	// Global persistent flags
	cmd.PersistentFlags().StringP("config", "c", "",
		"Path to config file (default: auto-detect)")
	cmd.PersistentFlags().StringP("kernel-dir", "C", ".",
		"Root of the kernel source")
	cmd.PersistentFlags().BoolP("verbose", "v", false,
		"Enable verbose output")

	mergeController.AddFlags(cmd)
	return cmd
}

func addSubcommands(rootCmd *cobra.Command, appContext *internal.AppInternal) {
	for _, controller := range appContext.GetControllers() {
		bind := controller.GetBind()
		ctrl := controller // capture for closure
		//nolint:exhaustruct // Minimal Command initialization with required fields only
		subCmd := &cobra.Command{
			Use:   bind.Use,
			Short: bind.Short,
			Long:  bind.Long,
			Args:  cobra.NoArgs,
			RunE: func(command *cobra.Command, arguments []string) error {
				command.SilenceUsage = true
				return ctrl.Execute(command, arguments)
			},
		}

		// Add controller-specific flags
		if fc, ok := ctrl.(entities.FlagController); ok {
			fc.AddFlags(subCmd)
		}

		rootCmd.AddCommand(subCmd)
	}
}

// reportFailure prints what went wrong and what to do next, and returns the
// exit code. Git failures keep git's exit code.
func reportFailure(err error) int {
	var conflictErr *entities.ConflictError
	var stateErr *entities.StateError
	var execErr *entities.ExecError

	switch {
	case errors.As(err, &conflictErr):
		logger.Errorf("%s", err)
		logger.Error("Merge needs manual intervention!")
		logger.Error("Resolve conflict(s) and `git commit` if you are done.")
	case errors.As(err, &stateErr):
		logger.Error(stateErr.Message)
		if stateErr.Hint != "" {
			logger.Warn(stateErr.Hint)
		}
	case errors.As(err, &execErr):
		logger.Errorf("An error was detected while running %q (exit code %d)",
			strings.Join(execErr.Args, " "), execErr.ExitCode)
		if stdout := strings.TrimSpace(execErr.Stdout); stdout != "" {
			logger.Errorf("stdout: %s", stdout)
		}
		if stderr := strings.TrimSpace(execErr.Stderr); stderr != "" {
			logger.Errorf("stderr: %s", stderr)
		}
	default:
		logger.Errorf("Error executing 'wlanmerge': %s", err)
	}

	return entities.ExitCode(err)
}

func main() {
	//nolint:exhaustruct // Minimal TextFormatter initialization with required fields only
	logger.SetFormatter(&logger.TextFormatter{
		ForceColors:   true,
		FullTimestamp: true,
	})
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DebugLevel)
	}

	// Inject controllers via DIG
	mergeController := injectMergeController()
	cobraRoot := buildRootCommand(mergeController)

	// Add all subcommands
	appContext := injectAppContext()
	addSubcommands(cobraRoot, appContext)

	if err := cobraRoot.Execute(); err != nil {
		os.Exit(reportFailure(err))
	}
}
