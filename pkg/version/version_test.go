package version

import (
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resetVersion(t *testing.T) {
	t.Helper()

	prevVersion, prevCommit, prevDate := Version, Commit, Date

	Version, Commit, Date = "dev", "none", "unknown"

	t.Cleanup(func() {
		Version, Commit, Date = prevVersion, prevCommit, prevDate
	})
}

func TestApplyBuildInfo(t *testing.T) {
	resetVersion(t)

	applyBuildInfo(&debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	})

	assert.Equal(t, "v0.3.1", Version)
	assert.Equal(t, "abc123", Commit)
	assert.Equal(t, "2026-01-02T03:04:05Z", Date)
	assert.Equal(t, "v0.3.1 (commit: abc123, built: 2026-01-02T03:04:05Z)", String())
}

func TestApplyBuildInfo_DevelKeepsDefault(t *testing.T) {
	resetVersion(t)

	applyBuildInfo(&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})

	assert.Equal(t, "dev", Version)
	assert.Equal(t, "none", Commit)
}

func TestApplyBuildInfo_LinkerValuesWin(t *testing.T) {
	resetVersion(t)

	Version = "v9.9.9"

	applyBuildInfo(&debug.BuildInfo{Main: debug.Module{Version: "v0.1.0"}})

	assert.Equal(t, "v9.9.9", Version)
}
