package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChmod(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "secrets.env")
	require.NoError(t, os.WriteFile(path, []byte("export A=1\n"), 0644))

	require.NoError(t, Chmod(path, 0600))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
	}
}

func TestPermTooOpen(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	tmp := t.TempDir()
	path := filepath.Join(tmp, "f")
	require.NoError(t, os.WriteFile(path, nil, 0600))
	require.NoError(t, os.Chmod(path, 0644))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, PermTooOpen(info, 0600))
	assert.False(t, PermTooOpen(info, 0644))
	assert.False(t, PermTooOpen(info, 0755))
}
