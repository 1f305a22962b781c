package gitcli

import (
	"context"
	"errors"
	"regexp"
	"strings"

	logger "github.com/sirupsen/logrus"
	"golang.org/x/mod/semver"

	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
	"github.com/rios0rios0/wlanmerge/internal/domain/repositories"
)

const (
	unrelatedHistoriesFlag = "--allow-unrelated-histories"
	// unrelatedHistoriesSince is the first git release with the flag.
	unrelatedHistoriesSince = "v2.9.0"
)

var gitVersionPattern = regexp.MustCompile(`git version (\d+)\.(\d+)(?:\.(\d+))?`)

// GitRepository drives the git CLI for the merge steps.
type GitRepository struct {
	runner *Runner
}

var _ repositories.GitRepository = (*GitRepository)(nil)

// NewGitRepository creates a GitRepository on top of a runner.
func NewGitRepository(runner *Runner) *GitRepository {
	return &GitRepository{runner: runner}
}

func (it *GitRepository) Fetch(ctx context.Context, remote, tag string) error {
	_, err := it.runner.Run(ctx, "fetch", "--tags", "-f", remote, tag)
	return err
}

func (it *GitRepository) MergeOurs(ctx context.Context, allowUnrelated bool) error {
	args := []string{"merge", "-s", "ours", "--no-commit"}
	if allowUnrelated {
		args = append(args, unrelatedHistoriesFlag)
	}
	args = append(args, "FETCH_HEAD")

	_, err := it.runner.Run(ctx, args...)
	return it.detectConflict(ctx, err)
}

func (it *GitRepository) ReadTree(ctx context.Context, prefix string) error {
	_, err := it.runner.Run(ctx, "read-tree", "--prefix="+strings.TrimSuffix(prefix, "/")+"/", "-u", "FETCH_HEAD")
	return it.detectConflict(ctx, err)
}

func (it *GitRepository) CommitFromFile(ctx context.Context, messageFile string) error {
	_, err := it.runner.Run(ctx, "commit", "--file", messageFile, "--no-edit", "--quiet")
	return err
}

func (it *GitRepository) SubtreeMerge(ctx context.Context, prefix, messageFile string) error {
	_, err := it.runner.Run(ctx, "merge", "-X", "subtree="+prefix, "--no-edit", "-F", messageFile, "FETCH_HEAD")
	return it.detectConflict(ctx, err)
}

func (it *GitRepository) Add(ctx context.Context, paths ...string) error {
	_, err := it.runner.Run(ctx, append([]string{"add", "--"}, paths...)...)
	return err
}

func (it *GitRepository) Commit(ctx context.Context, message string) error {
	_, err := it.runner.Run(ctx, "commit", "-m", message)
	return err
}

// SupportsUnrelatedHistories asks git's own usage text whether the flag
// exists. Only when no usage text comes back does it fall back to comparing
// the reported git version.
func (it *GitRepository) SupportsUnrelatedHistories(ctx context.Context) bool {
	usage := it.mergeUsage(ctx)
	if usage != "" {
		return strings.Contains(usage, unrelatedHistoriesFlag)
	}

	result, err := it.runner.Execute(ctx, "--version")
	if err != nil {
		logger.Warnf("Could not determine git version: %v", err)
		return false
	}
	version := parseGitVersion(result.Stdout)
	if version == "" {
		logger.Warnf("Unrecognized git version output %q", strings.TrimSpace(result.Stdout))
		return false
	}
	return semver.Compare(version, unrelatedHistoriesSince) >= 0
}

// mergeUsage returns the output of "git merge -h". Git exits 129 after
// printing usage, so the text is taken from the error as well.
func (it *GitRepository) mergeUsage(ctx context.Context) string {
	result, err := it.runner.Execute(ctx, "merge -h")
	if err == nil {
		return result.Stdout + result.Stderr
	}
	var execErr *entities.ExecError
	if errors.As(err, &execErr) {
		return execErr.Stdout + execErr.Stderr
	}
	return ""
}

// detectConflict upgrades a failed merge to a ConflictError when the index
// holds unmerged paths.
func (it *GitRepository) detectConflict(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}
	var conflictErr *entities.ConflictError
	if errors.As(err, &conflictErr) {
		conflictErr.Paths = it.unmergedPaths(ctx)
		return conflictErr
	}
	var execErr *entities.ExecError
	if !errors.As(err, &execErr) {
		return err
	}

	paths := it.unmergedPaths(ctx)
	if len(paths) == 0 {
		return err
	}
	return &entities.ConflictError{ExecError: *execErr, Paths: paths}
}

func (it *GitRepository) unmergedPaths(ctx context.Context) []string {
	result, err := it.runner.Execute(ctx, "diff --name-only --diff-filter=U")
	if err != nil {
		return nil
	}
	var paths []string
	for _, line := range strings.Split(result.Stdout, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			paths = append(paths, line)
		}
	}
	return paths
}

// parseGitVersion converts "git version 2.39.2" into "v2.39.2".
func parseGitVersion(output string) string {
	match := gitVersionPattern.FindStringSubmatch(output)
	if match == nil {
		return ""
	}
	patch := match[3]
	if patch == "" {
		patch = "0"
	}
	return "v" + match[1] + "." + match[2] + "." + patch
}
