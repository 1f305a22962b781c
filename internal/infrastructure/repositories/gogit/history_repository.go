package gogit

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
	"github.com/rios0rios0/wlanmerge/internal/domain/repositories"
)

// HistoryRepository reads tags and commit history with go-git. The
// repository is reopened for every query so refs and packs written by the
// git CLI in between are picked up.
type HistoryRepository struct {
	dir string
}

var _ repositories.HistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository creates a HistoryRepository for the tree at dir.
func NewHistoryRepository(dir string) *HistoryRepository {
	return &HistoryRepository{dir: dir}
}

// Open opens the git repository containing dir. Linked worktrees share
// refs and objects through their commondir.
func Open(dir string) (*git.Repository, error) {
	return git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
}

func (it *HistoryRepository) CurrentBranch(_ context.Context) (string, error) {
	repo, err := Open(it.dir)
	if err != nil {
		return "", err
	}

	head, err := repo.Head()
	if errors.Is(err, plumbing.ErrReferenceNotFound) {
		// unborn branch: HEAD still names it symbolically
		symbolic, symErr := repo.Reference(plumbing.HEAD, false)
		if symErr != nil {
			return "", fmt.Errorf("failed to read HEAD: %w", symErr)
		}
		return symbolic.Target().Short(), nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD: %w", err)
	}

	if !head.Name().IsBranch() {
		return "HEAD", nil
	}
	return head.Name().Short(), nil
}

func (it *HistoryRepository) ListTags(_ context.Context, prefix string) ([]string, error) {
	repo, err := Open(it.dir)
	if err != nil {
		return nil, err
	}

	iter, err := repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer iter.Close()

	var tags []string
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		if strings.HasPrefix(name, prefix) {
			tags = append(tags, name)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}

	sort.Strings(tags)
	return tags, nil
}

func (it *HistoryRepository) CountCommits(ctx context.Context, commitRange entities.CommitRange) (int, error) {
	count := 0
	err := it.walk(ctx, commitRange, func(*object.Commit) error {
		count++
		return nil
	})
	return count, err
}

func (it *HistoryRepository) Subjects(ctx context.Context, commitRange entities.CommitRange) ([]string, error) {
	var subjects []string
	err := it.walk(ctx, commitRange, func(c *object.Commit) error {
		subjects = append(subjects, subject(c.Message))
		if commitRange.Limit > 0 && len(subjects) >= commitRange.Limit {
			return storer.ErrStop
		}
		return nil
	})
	return subjects, err
}

// walk visits the commits reachable from To but not from From, newest
// committer time first.
func (it *HistoryRepository) walk(
	ctx context.Context,
	commitRange entities.CommitRange,
	visit func(*object.Commit) error,
) error {
	repo, err := Open(it.dir)
	if err != nil {
		return err
	}

	to, err := resolveTag(repo, commitRange.To)
	if err != nil {
		return err
	}

	var excluded map[plumbing.Hash]struct{}
	if commitRange.From != "" {
		from, fromErr := resolveTag(repo, commitRange.From)
		if fromErr != nil {
			return fromErr
		}
		if excluded, err = reachable(repo, from); err != nil {
			return err
		}
	}

	iter, err := repo.Log(&git.LogOptions{From: to.Hash, Order: git.LogOrderCommitterTime})
	if err != nil {
		return fmt.Errorf("failed to walk %s: %w", commitRange, err)
	}
	defer iter.Close()

	return iter.ForEach(func(c *object.Commit) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if _, skip := excluded[c.Hash]; skip {
			return nil
		}
		return visit(c)
	})
}

// reachable returns every commit hash reachable from start, start included.
func reachable(repo *git.Repository, start *object.Commit) (map[plumbing.Hash]struct{}, error) {
	seen := make(map[plumbing.Hash]struct{})

	iter, err := repo.Log(&git.LogOptions{From: start.Hash})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", start.Hash, err)
	}
	defer iter.Close()

	err = iter.ForEach(func(c *object.Commit) error {
		seen[c.Hash] = struct{}{}
		return nil
	})
	return seen, err
}

// resolveTag peels a tag, annotated or lightweight, down to its commit.
func resolveTag(repo *git.Repository, tag string) (*object.Commit, error) {
	ref, err := repo.Reference(plumbing.NewTagReferenceName(tag), true)
	if err != nil {
		return nil, fmt.Errorf("tag %q not found: %w", tag, err)
	}

	hash := ref.Hash()
	for {
		commit, commitErr := repo.CommitObject(hash)
		if commitErr == nil {
			return commit, nil
		}
		tagObject, tagErr := repo.TagObject(hash)
		if tagErr != nil {
			return nil, fmt.Errorf("tag %q does not point to a commit: %w", tag, commitErr)
		}
		hash = tagObject.Target
	}
}

// subject returns the first paragraph of a commit message on one line, the
// way git's %s placeholder does.
func subject(message string) string {
	var parts []string
	for _, line := range strings.Split(strings.TrimLeft(message, "\n"), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			break
		}
		parts = append(parts, line)
	}
	return strings.Join(parts, " ")
}
