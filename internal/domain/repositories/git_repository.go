package repositories

import "context"

// GitRepository performs the history-changing git operations of a merge on
// the kernel tree. Implementations return *entities.ConflictError when a
// merge stops on conflicts and *entities.ExecError for any other failure.
type GitRepository interface {
	// Fetch fetches a tag (and all tags) from a remote into FETCH_HEAD.
	Fetch(ctx context.Context, remote, tag string) error

	// MergeOurs records FETCH_HEAD as a parent without taking its content
	// and without committing.
	MergeOurs(ctx context.Context, allowUnrelated bool) error

	// ReadTree grafts the FETCH_HEAD tree into prefix and updates the
	// working tree.
	ReadTree(ctx context.Context, prefix string) error

	// CommitFromFile commits the index using a message file.
	CommitFromFile(ctx context.Context, messageFile string) error

	// SubtreeMerge merges FETCH_HEAD into prefix with the subtree strategy
	// option, committing with the given message file.
	SubtreeMerge(ctx context.Context, prefix, messageFile string) error

	// Add stages paths.
	Add(ctx context.Context, paths ...string) error

	// Commit commits the index with an inline message.
	Commit(ctx context.Context, message string) error

	// SupportsUnrelatedHistories reports whether git accepts
	// --allow-unrelated-histories.
	SupportsUnrelatedHistories(ctx context.Context) bool
}
