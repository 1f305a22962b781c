package repositories

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	"github.com/spf13/afero"

	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
	domainRepos "github.com/rios0rios0/wlanmerge/internal/domain/repositories"
	"github.com/rios0rios0/wlanmerge/internal/infrastructure/repositories/gitcli"
	"github.com/rios0rios0/wlanmerge/internal/infrastructure/repositories/gogit"
)

// TreeOptions selects the kernel tree to open and how to drive git in it.
type TreeOptions struct {
	Dir        string
	GitCommand string
	Verbose    bool
}

// TreeFactory is a constructor function that opens a kernel tree.
type TreeFactory func(opts TreeOptions) (*domainRepos.KernelTree, error)

// TreeOpener hands out kernel trees built by its factory.
type TreeOpener struct {
	factory TreeFactory
}

// NewTreeOpener creates a TreeOpener using the given factory.
func NewTreeOpener(factory TreeFactory) *TreeOpener {
	return &TreeOpener{factory: factory}
}

// Open returns the kernel tree described by opts.
func (o *TreeOpener) Open(opts TreeOptions) (*domainRepos.KernelTree, error) {
	if opts.GitCommand == "" {
		opts.GitCommand = entities.DefaultGitCommand
	}
	return o.factory(opts)
}

// OpenKernelTree is the production factory: the git CLI for merges,
// go-git for history queries and the OS filesystem rooted at the tree.
func OpenKernelTree(opts TreeOptions) (*domainRepos.KernelTree, error) {
	dir, err := filepath.Abs(opts.Dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}

	if _, openErr := gogit.Open(dir); openErr != nil {
		if errors.Is(openErr, git.ErrRepositoryNotExists) {
			return nil, &entities.StateError{
				Message: fmt.Sprintf("%s is not inside a git repository", dir),
				Hint:    "Run this inside your kernel source, which must be a git checkout.",
			}
		}
		return nil, fmt.Errorf("failed to open git repository at %s: %w", dir, openErr)
	}

	runner, err := gitcli.NewRunner(opts.GitCommand, dir)
	if err != nil {
		return nil, err
	}
	runner.Verbose = opts.Verbose

	return &domainRepos.KernelTree{
		Dir:     dir,
		Git:     gitcli.NewGitRepository(runner),
		History: gogit.NewHistoryRepository(dir),
		Fs:      afero.NewBasePathFs(afero.NewOsFs(), dir),
		TempFs:  afero.NewOsFs(),
	}, nil
}
