package repositories

import "github.com/spf13/afero"

// KernelTree bundles everything a run touches in one kernel source tree.
type KernelTree struct {
	Dir     string
	Git     GitRepository
	History HistoryRepository

	// Fs is rooted at the kernel tree; paths are kernel-relative.
	Fs afero.Fs
	// TempFs holds merge message files git reads by absolute path.
	TempFs afero.Fs
}
