//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/wlanmerge/internal/domain/commands"
	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
)

// StubMergeCommand is a stub implementation of commands.Merge.
type StubMergeCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	LastSettings     *entities.Settings
	LastOpts         commands.MergeOptions
}

var _ commands.Merge = (*StubMergeCommand)(nil)

func (s *StubMergeCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
	opts commands.MergeOptions,
) error {
	s.ExecuteCallCount++
	s.LastSettings = settings
	s.LastOpts = opts
	return s.ExecuteErr
}
