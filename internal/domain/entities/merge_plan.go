package entities

import (
	"path"
	"strings"
)

// MergePlan is the immutable description of a single run. It is built once
// from the command line and the settings and passed to every step.
type MergePlan struct {
	Spec       VariantSpec
	Mode       Mode
	Tag        string
	StagingDir string
}

// NewMergePlan validates the mode and resolves the variant layout. The tag
// may be empty for runs that only inspect the staging area.
func NewMergePlan(settings *Settings, variant Variant, mode Mode, tag string) (MergePlan, error) {
	if settings == nil {
		settings = DefaultSettings()
	}

	spec, err := settings.ResolveVariant(variant)
	if err != nil {
		return MergePlan{}, err
	}
	if _, err = ParseMode(string(mode)); err != nil {
		return MergePlan{}, err
	}

	return MergePlan{
		Spec:       spec,
		Mode:       mode,
		Tag:        strings.TrimSpace(tag),
		StagingDir: settings.StagingDir,
	}, nil
}

// Components returns the sub-repositories in merge order.
func (p MergePlan) Components() []Component {
	return p.Spec.Components
}

// Prefix returns the kernel-relative path of a component's subdirectory.
func (p MergePlan) Prefix(c Component) string {
	return path.Join(p.StagingDir, c.Subdir)
}

// KconfigPath is the staging Kconfig patched on initial imports.
func (p MergePlan) KconfigPath() string {
	return path.Join(p.StagingDir, "Kconfig")
}

// MakefilePath is the staging Makefile patched on initial imports.
func (p MergePlan) MakefilePath() string {
	return path.Join(p.StagingDir, "Makefile")
}
