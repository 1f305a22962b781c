package repositories

import (
	"context"

	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
)

// HistoryRepository answers read-only questions about the kernel tree's
// history. It backs the merge message.
type HistoryRepository interface {
	// CurrentBranch returns the short name of HEAD, or "HEAD" when detached.
	CurrentBranch(ctx context.Context) (string, error)

	// ListTags returns the tags starting with prefix, sorted by name.
	ListTags(ctx context.Context, prefix string) ([]string, error)

	// CountCommits counts every commit in the range, ignoring its limit.
	CountCommits(ctx context.Context, commitRange entities.CommitRange) (int, error)

	// Subjects returns commit subjects in the range, newest first, capped at
	// the range limit.
	Subjects(ctx context.Context, commitRange entities.CommitRange) ([]string, error)
}
