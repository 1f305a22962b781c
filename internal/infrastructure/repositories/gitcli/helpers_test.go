//go:build unit

package gitcli_test

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFakeGit writes an executable shell script standing in for git. Every
// invocation appends its arguments to the calls file next to it.
// Tests using it run sequentially: a script written while another test
// forks can fail to start with ETXTBSY.
func writeFakeGit(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake git needs a POSIX shell")
	}

	dir := t.TempDir()
	script := "#!/bin/sh\n" +
		"printf '%s\\n' \"$*\" >> \"" + filepath.Join(dir, "calls") + "\"\n" +
		body + "\n"
	path := filepath.Join(dir, "git")
	require.NoError(t, os.WriteFile(path, []byte(script), 0o755)) //nolint:gosec // test script must be executable
	return path
}

// recordedCalls returns the argument lines the fake git received.
func recordedCalls(t *testing.T, fakeGit string) []string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(filepath.Dir(fakeGit), "calls"))
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}
