package gitcli

// ParseGitVersion exports parseGitVersion for testing.
var ParseGitVersion = parseGitVersion //nolint:gochecknoglobals // test export
