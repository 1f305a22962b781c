package entities

import (
	"fmt"
	"strings"
)

const (
	// InitialHistoryLimit caps the commit list of truncated messages so an
	// unrelated upstream history is not embedded wholesale.
	InitialHistoryLimit = 45

	commitIndent = "        "
)

// CommitRange selects the commits summarized in a merge message.
type CommitRange struct {
	From      string // previous tag, empty for a single-tag range
	To        string // target tag
	Limit     int    // maximum subjects listed, 0 for no limit
	Truncated bool
}

// String renders the range the way git rev-list expects it.
func (r CommitRange) String() string {
	if r.From == "" {
		return "refs/tags/" + r.To
	}
	return fmt.Sprintf("refs/tags/%s..refs/tags/%s", r.From, r.To)
}

// TagPrefix returns the part of a tag shared by all releases of one line,
// i.e. everything before the first hyphen followed by the hyphen.
func TagPrefix(tag string) string {
	head, _, _ := strings.Cut(tag, "-")
	return head + "-"
}

// PreviousTag picks the tag immediately preceding the target in a sorted tag
// list. Only update merges have a previous tag.
func PreviousTag(sortedTags []string, tag string, mode Mode) string {
	if mode != ModeUpdate {
		return ""
	}
	for i, candidate := range sortedTags {
		if candidate == tag {
			if i == 0 {
				return ""
			}
			return sortedTags[i-1]
		}
	}
	return ""
}

// NewCommitRange chooses between an incremental range and the truncated
// single-tag listing used for first imports and for tags with no history.
func NewCommitRange(previousTag, tag string, mode Mode) CommitRange {
	if previousTag != "" && mode == ModeUpdate {
		return CommitRange{From: previousTag, To: tag}
	}
	return CommitRange{To: tag, Limit: InitialHistoryLimit, Truncated: true}
}

// MergeMessage is a rendered commit message and the temporary file holding
// it. Path is empty until the message is written.
type MergeMessage struct {
	Text string
	Path string
}

// MergeMessageInput carries everything needed to render a merge message.
type MergeMessageInput struct {
	Component Component
	Mode      Mode
	Tag       string
	Branch    string
	Count     int
	Subjects  []string
	Range     CommitRange
}

// RenderMergeMessage formats the commit message for one merge.
func RenderMergeMessage(in MergeMessageInput) string {
	var sb strings.Builder

	if in.Mode == ModeUpdate {
		sb.WriteString(in.Component.Label())
		sb.WriteString(": ")
	}
	fmt.Fprintf(&sb, "Merge tag '%s' into %s\n\n", in.Tag, in.Branch)

	if in.Range.Truncated && in.Mode == ModeInitial {
		sb.WriteString("This is an initial merge, all commit changes will not be written fully.\n")
	}

	fmt.Fprintf(&sb, "Changes in tag '%s': (%d commits)\n", in.Tag, in.Count)
	lines := make([]string, 0, len(in.Subjects)+1)
	for _, subject := range in.Subjects {
		lines = append(lines, commitIndent+subject)
	}
	if in.Range.Truncated {
		lines = append(lines, commitIndent+"...")
	}
	sb.WriteString(strings.Join(lines, "\n"))

	return sb.String()
}
