package commands

import (
	"context"
	"fmt"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/rios0rios0/wlanmerge/internal/domain/entities"
	"github.com/rios0rios0/wlanmerge/internal/domain/repositories"
)

const mergeMessagePattern = "wlanmerge-msg-*"

// buildMergeMessage summarizes the commits brought in by the target tag and
// writes the message to a fresh temporary file for git to read.
func buildMergeMessage(
	ctx context.Context,
	history repositories.HistoryRepository,
	tempFs afero.Fs,
	plan entities.MergePlan,
	component entities.Component,
) (*entities.MergeMessage, error) {
	tags, err := history.ListTags(ctx, entities.TagPrefix(plan.Tag))
	if err != nil {
		return nil, err
	}

	previousTag := entities.PreviousTag(tags, plan.Tag, plan.Mode)
	commitRange := entities.NewCommitRange(previousTag, plan.Tag, plan.Mode)
	logger.Debugf("[%s] Summarizing %s (previous tag: %q)", component.Label(), commitRange, previousTag)

	branch, err := history.CurrentBranch(ctx)
	if err != nil {
		return nil, err
	}
	count, err := history.CountCommits(ctx, commitRange)
	if err != nil {
		return nil, fmt.Errorf("failed to count commits in %s: %w", commitRange, err)
	}
	subjects, err := history.Subjects(ctx, commitRange)
	if err != nil {
		return nil, fmt.Errorf("failed to list commits in %s: %w", commitRange, err)
	}

	text := entities.RenderMergeMessage(entities.MergeMessageInput{
		Component: component,
		Mode:      plan.Mode,
		Tag:       plan.Tag,
		Branch:    branch,
		Count:     count,
		Subjects:  subjects,
		Range:     commitRange,
	})

	file, err := afero.TempFile(tempFs, "", mergeMessagePattern)
	if err != nil {
		return nil, fmt.Errorf("failed to create merge message file: %w", err)
	}
	if _, writeErr := file.WriteString(text); writeErr != nil {
		_ = file.Close()
		_ = tempFs.Remove(file.Name())
		return nil, fmt.Errorf("failed to write merge message: %w", writeErr)
	}
	if closeErr := file.Close(); closeErr != nil {
		_ = tempFs.Remove(file.Name())
		return nil, fmt.Errorf("failed to write merge message: %w", closeErr)
	}

	return &entities.MergeMessage{Text: text, Path: file.Name()}, nil
}

// removeMergeMessage deletes a message file once git has consumed it.
func removeMergeMessage(tempFs afero.Fs, message *entities.MergeMessage) {
	if message == nil || message.Path == "" {
		return
	}
	if err := tempFs.Remove(message.Path); err != nil {
		logger.Warnf("Failed to remove merge message %s: %v", message.Path, err)
	}
}
