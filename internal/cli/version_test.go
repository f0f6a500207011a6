package cli

import (
	"encoding/json"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatVersion(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		info BuildInfo
		want string
	}{
		{"all fields", BuildInfo{Version: "v1.2.3", Commit: "abc1234", Date: "2026-01-15"}, "v1.2.3 (commit: abc1234, built: 2026-01-15)"},
		{"empty", BuildInfo{}, "dev (commit: unknown, built: unknown)"},
		{"only commit", BuildInfo{Commit: "def5678"}, "dev (commit: def5678, built: unknown)"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, formatVersion(tc.info))
		})
	}
}

func TestVersionCommand(t *testing.T) {
	SetBuildInfo(BuildInfo{Version: "v0.1.0"})
	t.Cleanup(func() { SetBuildInfo(BuildInfo{}) })

	out, err := executeCommand(t, "version", "--home", t.TempDir(), "-o", "json")
	require.NoError(t, err)

	var info BuildInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "v0.1.0", info.Version)
	assert.Equal(t, runtime.Version(), info.Go)
}
