package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildInfoInitialized(t *testing.T) {
	require.NotEmpty(t, Version)
	require.NotEmpty(t, BuildTime)
	require.NotEmpty(t, GitCommit)
}

func TestString(t *testing.T) {
	old := Version
	t.Cleanup(func() { Version = old })
	Version = "v1.2.3"

	require.Contains(t, String(), "docnav v1.2.3")
	require.Contains(t, String(), "commit "+GitCommit)
}
