package platform

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkTarget(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need developer mode on windows")
	}
	tmp := t.TempDir()
	real := filepath.Join(tmp, "lib", "cli.js")
	require.NoError(t, os.MkdirAll(filepath.Dir(real), 0755))
	require.NoError(t, os.WriteFile(real, []byte("#!/usr/bin/env node\n"), 0755))

	bin := filepath.Join(tmp, "bin")
	require.NoError(t, os.MkdirAll(bin, 0755))
	link := filepath.Join(bin, "claude")
	require.NoError(t, os.Symlink("../lib/cli.js", link))

	want, err := filepath.EvalSymlinks(real)
	require.NoError(t, err)
	assert.Equal(t, want, LinkTarget(link))

	target, err := ReadSymlinkTarget(link)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(bin, "..", "lib", "cli.js"), target)
}

func TestLinkTarget_RegularFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "codex")
	require.NoError(t, os.WriteFile(path, nil, 0755))
	assert.Equal(t, "", LinkTarget(path))
}

func TestLinkTarget_Missing(t *testing.T) {
	assert.Equal(t, "", LinkTarget(filepath.Join(t.TempDir(), "nope")))
}

func TestLinkTarget_Dangling(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need developer mode on windows")
	}
	tmp := t.TempDir()
	link := filepath.Join(tmp, "amp")
	require.NoError(t, os.Symlink("/does/not/exist", link))
	assert.Equal(t, "/does/not/exist", LinkTarget(link))
}
