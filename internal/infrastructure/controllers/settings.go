package controllers

import (
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
)

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	KernelDir string
	Verbose   bool
}

func readGlobalOptions(cmd *cobra.Command) globalOptions {
	kernelDir, _ := cmd.Flags().GetString("kernel-dir")
	verbose, _ := cmd.Flags().GetBool("verbose")
	if kernelDir == "" {
		kernelDir = "."
	}
	if verbose {
		logger.SetLevel(logger.DebugLevel)
	}
	return globalOptions{KernelDir: kernelDir, Verbose: verbose}
}

// loadSettings reads the file given with --config, or the first one found
// next to the kernel tree, falling back to the built-in defaults.
func loadSettings(cmd *cobra.Command, kernelDir string) (*entities.Settings, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		found, err := entities.FindConfigFile(kernelDir)
		if err != nil {
			logger.Debugf("No config file found, using defaults: %v", err)
			return entities.DefaultSettings(), nil
		}
		cfgPath = found
	}

	logger.Infof("Using config file: %s", cfgPath)
	return entities.NewSettings(cfgPath)
}

// addVariantModeFlags adds the -W/--wlan and -I/--init flags.
func addVariantModeFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("wlan", "W", "", "Your wlan driver type, either qcacld or prima")
	cmd.Flags().StringP("init", "I", "", "Choose whether to update or do an initial merge (update, initial)")
	_ = cmd.MarkFlagRequired("wlan")
	_ = cmd.MarkFlagRequired("init")
}

func readVariantMode(cmd *cobra.Command) (entities.Variant, entities.Mode, error) {
	rawVariant, _ := cmd.Flags().GetString("wlan")
	rawMode, _ := cmd.Flags().GetString("init")

	variant, err := entities.ParseVariant(rawVariant)
	if err != nil {
		return "", "", err
	}
	mode, err := entities.ParseMode(rawMode)
	if err != nil {
		return "", "", err
	}
	return variant, mode, nil
}
