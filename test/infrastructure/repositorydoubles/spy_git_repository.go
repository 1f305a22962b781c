//go:build integration || unit || test

// Package repositorydoubles provides test doubles (spies, stubs, dummies) for
// repository interfaces. These are hand-crafted implementations — no mock frameworks.
package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/rios0rios0/wlanmerge/internal/domain/repositories"
)

// SpyGitRepository implements repositories.GitRepository as a configurable spy.
// Every call is recorded in Calls as "<method> <args...>".
type SpyGitRepository struct {
	// --- errors per method ---
	FetchErr          error
	MergeOursErr      error
	ReadTreeErr       error
	CommitFromFileErr error
	SubtreeMergeErr   error
	AddErr            error
	CommitErr         error

	// --- SupportsUnrelatedHistories ---
	UnrelatedHistories bool

	// MessageFs, when set, is used to read message files as they are
	// committed, so their text can be asserted after they are removed.
	MessageFs afero.Fs

	// --- spy ---
	Calls             []string
	CommittedMessages []string
}

var _ repositories.GitRepository = (*SpyGitRepository)(nil)

func (s *SpyGitRepository) Fetch(_ context.Context, remote, tag string) error {
	s.record("fetch", remote, tag)
	return s.FetchErr
}

func (s *SpyGitRepository) MergeOurs(_ context.Context, allowUnrelated bool) error {
	s.record("merge-ours", fmt.Sprintf("%v", allowUnrelated))
	return s.MergeOursErr
}

func (s *SpyGitRepository) ReadTree(_ context.Context, prefix string) error {
	s.record("read-tree", prefix)
	return s.ReadTreeErr
}

func (s *SpyGitRepository) CommitFromFile(_ context.Context, messageFile string) error {
	s.record("commit-file")
	s.captureMessage(messageFile)
	return s.CommitFromFileErr
}

func (s *SpyGitRepository) SubtreeMerge(_ context.Context, prefix, messageFile string) error {
	s.record("subtree-merge", prefix)
	s.captureMessage(messageFile)
	return s.SubtreeMergeErr
}

func (s *SpyGitRepository) Add(_ context.Context, paths ...string) error {
	s.record("add", paths...)
	return s.AddErr
}

func (s *SpyGitRepository) Commit(_ context.Context, message string) error {
	s.record("commit", message)
	return s.CommitErr
}

func (s *SpyGitRepository) SupportsUnrelatedHistories(_ context.Context) bool {
	return s.UnrelatedHistories
}

// CallsTo returns the recorded calls of one method.
func (s *SpyGitRepository) CallsTo(method string) []string {
	var calls []string
	for _, call := range s.Calls {
		if call == method || strings.HasPrefix(call, method+" ") {
			calls = append(calls, call)
		}
	}
	return calls
}

func (s *SpyGitRepository) record(method string, args ...string) {
	s.Calls = append(s.Calls, strings.TrimSpace(method+" "+strings.Join(args, " ")))
}

func (s *SpyGitRepository) captureMessage(path string) {
	if s.MessageFs == nil {
		return
	}
	data, err := afero.ReadFile(s.MessageFs, path)
	if err != nil {
		s.CommittedMessages = append(s.CommittedMessages, "")
		return
	}
	s.CommittedMessages = append(s.CommittedMessages, string(data))
}
