package commands

// CheckStaging exports checkStaging for testing.
var CheckStaging = checkStaging //nolint:gochecknoglobals // test export

// CheckPreflight exports checkPreflight for testing.
var CheckPreflight = checkPreflight //nolint:gochecknoglobals // test export

// BuildMergeMessage exports buildMergeMessage for testing.
var BuildMergeMessage = buildMergeMessage //nolint:gochecknoglobals // test export

// RemoveMergeMessage exports removeMergeMessage for testing.
var RemoveMergeMessage = removeMergeMessage //nolint:gochecknoglobals // test export

// PatchBuildConfig exports patchBuildConfig for testing.
var PatchBuildConfig = patchBuildConfig //nolint:gochecknoglobals // test export
