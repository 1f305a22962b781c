package entities

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultStagingDir is where out-of-tree drivers live in a kernel tree.
	DefaultStagingDir = "drivers/staging"
	// DefaultGitCommand is the command line used to invoke git.
	DefaultGitCommand = "git"
)

// Settings holds the optional overrides read from a settings file.
type Settings struct {
	StagingDir string            `yaml:"staging_dir"`
	GitCommand string            `yaml:"git_command"`
	RemoteBase string            `yaml:"remote_base"`
	Remotes    map[string]string `yaml:"remotes"` // keyed by component subdirectory
}

// DefaultSettings returns the settings used when no file is found.
func DefaultSettings() *Settings {
	return &Settings{
		StagingDir: DefaultStagingDir,
		GitCommand: DefaultGitCommand,
		Remotes:    map[string]string{},
	}
}

// envVarPattern matches ${VAR_NAME} placeholders.
var envVarPattern = regexp.MustCompile(`\$\{([^}]+)}`)

// NewSettings reads and validates a settings file, filling unset fields with
// their defaults and expanding environment variables in remote addresses.
func NewSettings(cfgPath string) (*Settings, error) {
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", cfgPath, err)
	}

	settings := DefaultSettings()
	if unmarshalErr := yaml.Unmarshal(data, settings); unmarshalErr != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", unmarshalErr)
	}

	if settings.StagingDir == "" {
		settings.StagingDir = DefaultStagingDir
	}
	if settings.Remotes == nil {
		settings.Remotes = map[string]string{}
	}
	settings.StagingDir = path.Clean(filepath.ToSlash(settings.StagingDir))
	settings.RemoteBase = expandEnv(settings.RemoteBase)
	for key, remote := range settings.Remotes {
		settings.Remotes[key] = expandEnv(remote)
	}

	if validateErr := validateSettings(settings); validateErr != nil {
		return nil, validateErr
	}

	return settings, nil
}

// FindConfigFile searches for a settings file next to the kernel tree and in
// the user's home. It returns the first path found or an error if none exists.
func FindConfigFile(kernelDir string) (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = ""
	}

	locations := []string{
		kernelDir,
		filepath.Join(kernelDir, ".config"),
	}
	if homeDir != "" {
		locations = append(
			locations,
			homeDir,
			filepath.Join(homeDir, ".config"),
		)
	}

	patterns := []string{
		".wlanmerge.yaml",
		".wlanmerge.yml",
		"wlanmerge.yaml",
		"wlanmerge.yml",
	}

	for _, loc := range locations {
		for _, pat := range patterns {
			p := filepath.Join(loc, pat)
			if _, statErr := os.Stat(p); statErr == nil {
				return p, nil
			}
		}
	}

	return "", errors.New("config file not found in default locations")
}

// ResolveVariant applies the remote overrides to the built-in layout of a
// variant. Per-component remotes win over remote_base.
func (s *Settings) ResolveVariant(variant Variant) (VariantSpec, error) {
	spec, err := DefaultVariantSpec(variant)
	if err != nil {
		return VariantSpec{}, err
	}

	components := make([]Component, len(spec.Components))
	for i, c := range spec.Components {
		if s.RemoteBase != "" {
			c.Remote = strings.TrimSuffix(s.RemoteBase, "/") + "/" + c.Subdir
		}
		if remote, ok := s.Remotes[c.Subdir]; ok && remote != "" {
			c.Remote = remote
		}
		components[i] = c
	}
	spec.Components = components

	return spec, nil
}

// expandEnv replaces ${ENV_VAR} references with their values.
func expandEnv(raw string) string {
	if raw == "" {
		return raw
	}

	return envVarPattern.ReplaceAllStringFunc(raw, func(match string) string {
		varName := envVarPattern.FindStringSubmatch(match)[1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		logger.Warnf("Environment variable %q is not set", varName)
		return ""
	})
}

func validateSettings(settings *Settings) error {
	if strings.TrimSpace(settings.GitCommand) == "" {
		return errors.New("git_command must not be empty")
	}
	stagingDir := path.Clean(settings.StagingDir)
	if path.IsAbs(stagingDir) || stagingDir == ".." || strings.HasPrefix(stagingDir, "../") {
		return fmt.Errorf("staging_dir %q must be relative to the kernel tree", settings.StagingDir)
	}

	known := KnownSubdirs()
	for key := range settings.Remotes {
		if _, ok := known[key]; !ok {
			return fmt.Errorf("remotes.%s does not name a known component", key)
		}
	}

	return nil
}
