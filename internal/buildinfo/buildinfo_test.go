package buildinfo

import (
	"runtime/debug"
	"testing"
)

func withVars(t *testing.T, version, commit, date string) {
	t.Helper()
	v, c, d, r := Version, Commit, Date, readBuildInfo
	t.Cleanup(func() { Version, Commit, Date, readBuildInfo = v, c, d, r })
	Version, Commit, Date = version, commit, date
	readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }
}

func TestShortPrefersVersion(t *testing.T) {
	withVars(t, "v1.2.0", "abc", "unknown")
	if got := Short(); got != "v1.2.0" {
		t.Fatalf("Short() = %q", got)
	}
}

func TestShortTruncatesVCSRevision(t *testing.T) {
	withVars(t, "dev", "unknown", "unknown")
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "0123456789abcdef"}}}, true
	}
	if got := Short(); got != "0123456789ab" {
		t.Fatalf("Short() = %q", got)
	}
}

func TestLine(t *testing.T) {
	withVars(t, "dev", "unknown", "2026-01-02")
	if got := Line(); got != "orrery dev built 2026-01-02" {
		t.Fatalf("Line() = %q", got)
	}
}
