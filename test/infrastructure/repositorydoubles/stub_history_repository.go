//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"sort"
	"strings"

	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
	"github.com/rios0rios0/wlanmerge/internal/domain/repositories"
)

// StubHistoryRepository implements repositories.HistoryRepository with
// canned answers.
type StubHistoryRepository struct {
	Branch    string
	BranchErr error

	// Tags are filtered by prefix and sorted like the real repository.
	Tags    []string
	TagsErr error

	Count    int
	CountErr error

	// SubjectLines are capped at the requested range limit.
	SubjectLines []string
	SubjectsErr  error

	// --- spy ---
	TagPrefixes []string
	Ranges      []entities.CommitRange
}

var _ repositories.HistoryRepository = (*StubHistoryRepository)(nil)

func (s *StubHistoryRepository) CurrentBranch(_ context.Context) (string, error) {
	return s.Branch, s.BranchErr
}

func (s *StubHistoryRepository) ListTags(_ context.Context, prefix string) ([]string, error) {
	s.TagPrefixes = append(s.TagPrefixes, prefix)
	if s.TagsErr != nil {
		return nil, s.TagsErr
	}

	var tags []string
	for _, tag := range s.Tags {
		if strings.HasPrefix(tag, prefix) {
			tags = append(tags, tag)
		}
	}
	sort.Strings(tags)
	return tags, nil
}

func (s *StubHistoryRepository) CountCommits(_ context.Context, commitRange entities.CommitRange) (int, error) {
	s.Ranges = append(s.Ranges, commitRange)
	return s.Count, s.CountErr
}

func (s *StubHistoryRepository) Subjects(_ context.Context, commitRange entities.CommitRange) ([]string, error) {
	if s.SubjectsErr != nil {
		return nil, s.SubjectsErr
	}
	if commitRange.Limit > 0 && len(s.SubjectLines) > commitRange.Limit {
		return s.SubjectLines[:commitRange.Limit], nil
	}
	return s.SubjectLines, nil
}
