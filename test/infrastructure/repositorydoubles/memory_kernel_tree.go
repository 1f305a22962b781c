//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"github.com/spf13/afero"

	"github.com/rios0rios0/wlanmerge/internal/domain/repositories"
	infraRepos "github.com/rios0rios0/wlanmerge/internal/infrastructure/repositories"
)

const stagingKconfig = `# SPDX-License-Identifier: GPL-2.0
menuconfig STAGING
	bool "Staging drivers"

if STAGING

source "drivers/staging/android/Kconfig"

endif # STAGING
`

const stagingMakefile = `# SPDX-License-Identifier: GPL-2.0
# Makefile for staging directory

obj-y				+= media/
obj-$(CONFIG_ANDROID)		+= android/`

// NewMemoryKernelTree returns a kernel tree backed by in-memory filesystems
// holding a top-level Makefile and a staging area with Kconfig and Makefile.
func NewMemoryKernelTree(git repositories.GitRepository, history repositories.HistoryRepository) *repositories.KernelTree {
	fs := afero.NewMemMapFs()
	_ = afero.WriteFile(fs, "Makefile", []byte("VERSION = 4\n"), 0o644)
	_ = fs.MkdirAll("drivers/staging", 0o755)
	_ = afero.WriteFile(fs, "drivers/staging/Kconfig", []byte(stagingKconfig), 0o644)
	_ = afero.WriteFile(fs, "drivers/staging/Makefile", []byte(stagingMakefile), 0o644)

	return &repositories.KernelTree{
		Dir:     "/kernel",
		Git:     git,
		History: history,
		Fs:      fs,
		TempFs:  afero.NewMemMapFs(),
	}
}

// PopulateSubdir creates a staging subdirectory holding one file.
func PopulateSubdir(tree *repositories.KernelTree, subdir string) {
	_ = tree.Fs.MkdirAll("drivers/staging/"+subdir, 0o755)
	_ = afero.WriteFile(tree.Fs, "drivers/staging/"+subdir+"/Kbuild", []byte("obj-y := x.o\n"), 0o644)
}

// EmptySubdir creates an empty staging subdirectory.
func EmptySubdir(tree *repositories.KernelTree, subdir string) {
	_ = tree.Fs.MkdirAll("drivers/staging/"+subdir, 0o755)
}

// NewStaticTreeOpener returns a TreeOpener that always hands out tree and
// records the options it was asked for.
func NewStaticTreeOpener(tree *repositories.KernelTree, opened *[]infraRepos.TreeOptions) *infraRepos.TreeOpener {
	return infraRepos.NewTreeOpener(func(opts infraRepos.TreeOptions) (*repositories.KernelTree, error) {
		if opened != nil {
			*opened = append(*opened, opts)
		}
		return tree, nil
	})
}
