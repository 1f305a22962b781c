package entities

import (
	"fmt"
	"strings"
)

// KconfigEndMarker closes the staging menu in drivers/staging/Kconfig.
const KconfigEndMarker = "endif # STAGING"

// KconfigSourceLine returns the Kconfig include for a staging subdirectory.
func KconfigSourceLine(stagingDir, target string) string {
	return fmt.Sprintf("source \"%s/%s/Kconfig\"", stagingDir, target)
}

// MakefileRule returns the build-object rule for a staging subdirectory.
func MakefileRule(flag, target string) string {
	return fmt.Sprintf("obj-$(%s)\t+= %s/", flag, target)
}

// InsertKconfigSource inserts a source line, followed by a blank line, right
// before the "endif # STAGING" marker.
//
// Behaviour:
//   - If the line is already present, the content is returned unchanged.
//   - If the marker is missing, the content is returned unchanged and
//     found is false. A present line counts as found.
func InsertKconfigSource(content, line string) (patched string, changed, found bool) {
	lines := strings.Split(content, "\n")
	if findLine(lines, line) >= 0 {
		return content, false, true
	}

	markerIdx := findLine(lines, KconfigEndMarker)
	if markerIdx < 0 {
		return content, false, false
	}

	lines = insertLines(lines, markerIdx, []string{line, ""})
	return strings.Join(lines, "\n"), true, true
}

// AppendMakefileRule appends a rule on its own line unless the guarding flag
// already appears anywhere in the file.
func AppendMakefileRule(content, flag, rule string) (string, bool) {
	if strings.Contains(content, flag) {
		return content, false
	}
	return content + "\n" + rule, true
}

// findLine returns the index of the first line equal to want after trimming
// whitespace, or -1 if there is none.
func findLine(lines []string, want string) int {
	for i, line := range lines {
		if strings.TrimSpace(line) == want {
			return i
		}
	}
	return -1
}

// insertLines inserts extra lines into slice at the given index.
func insertLines(lines []string, at int, extra []string) []string {
	result := make([]string, 0, len(lines)+len(extra))
	result = append(result, lines[:at]...)
	result = append(result, extra...)
	result = append(result, lines[at:]...)
	return result
}
