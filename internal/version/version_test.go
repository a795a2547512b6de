package version

import (
	"runtime"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func setBuild(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := Version, Commit, Date
	Version, Commit, Date = version, commit, date
	t.Cleanup(func() { Version, Commit, Date = origVersion, origCommit, origDate })
}

func TestGetInfo_LinkTimeValues(t *testing.T) {
	setBuild(t, "1.2.0", "abc123def456", "2026-01-01T12:00:00Z")

	info := GetInfo()
	assert.Equal(t, "1.2.0", info.Version)
	assert.Equal(t, "abc123def456", info.Commit)
	assert.Equal(t, "2026-01-01T12:00:00Z", info.Date)
	assert.Equal(t, runtime.Version(), info.GoVersion)
	assert.Equal(t, runtime.GOOS+"/"+runtime.GOARCH, info.Platform)
}

func TestInfo_FromSettings(t *testing.T) {
	info := Info{Commit: "unknown", Date: "unknown"}
	info.fromSettings([]debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.time", Value: "2026-02-03T04:05:06Z"},
		{Key: "vcs.modified", Value: "true"},
		{Key: "GOARCH", Value: "arm64"},
	})
	assert.Equal(t, "0123456789abcdef", info.Commit)
	assert.Equal(t, "2026-02-03T04:05:06Z", info.Date)
	assert.True(t, info.Modified)

	// Link time values win.
	pinned := Info{Commit: "release", Date: "today"}
	pinned.fromSettings([]debug.BuildSetting{{Key: "vcs.revision", Value: "other"}})
	assert.Equal(t, "release", pinned.Commit)
}

func TestInfo_String(t *testing.T) {
	tests := []struct {
		name string
		info Info
		want string
	}{
		{
			name: "long commit is shortened",
			info: Info{Version: "1.0.0", Commit: "abc123def456", Date: "d", GoVersion: "go1.24", Platform: "linux/amd64"},
			want: "Commander 1.0.0 (abc123de) built d with go1.24 for linux/amd64",
		},
		{
			name: "dirty tree",
			info: Info{Version: "dev", Commit: "abc", Date: "d", GoVersion: "go1.24", Platform: "linux/amd64", Modified: true},
			want: "Commander dev (abc-dirty) built d with go1.24 for linux/amd64",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.info.String())
			assert.Equal(t, tt.info.Version, tt.info.Short())
		})
	}
}
