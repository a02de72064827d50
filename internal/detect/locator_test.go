package detect

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCandidates_Windows(t *testing.T) {
	l := NewLocator(t.TempDir(), "windows", []string{`C:\tools`})
	assert.Equal(t, []string{"claude"}, l.Candidates("claude"))
}

func TestCandidates_NoNVM(t *testing.T) {
	home := t.TempDir()
	l := NewLocator(home, "linux", nil)

	got := l.Candidates("codex")
	want := []string{
		"codex",
		filepath.Join("/usr/local/bin", "codex"),
		filepath.Join("/opt/homebrew/bin", "codex"),
		filepath.Join("/usr/bin", "codex"),
		filepath.Join(home, ".local", "bin", "codex"),
	}
	assert.Equal(t, want, got)
}

func TestCandidates_NVMNewestFirst(t *testing.T) {
	home := t.TempDir()
	root := filepath.Join(home, ".nvm", "versions", "node")
	for _, d := range []string{"v18.20.4", "v22.3.0", "v20.11.1", "system", "lts-iron", "v9"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d, "bin"), 0755))
	}

	l := NewLocator(home, "darwin", nil)
	got := l.Candidates("claude")

	var nvm []string
	for _, c := range got {
		if rel, err := filepath.Rel(root, c); err == nil && rel[0] != '.' {
			nvm = append(nvm, rel)
		}
	}
	assert.Equal(t, []string{
		filepath.Join("v22.3.0", "bin", "claude"),
		filepath.Join("v20.11.1", "bin", "claude"),
		filepath.Join("v18.20.4", "bin", "claude"),
		filepath.Join("v9", "bin", "claude"),
	}, nvm)
	assert.Equal(t, "claude", got[0])
}

func TestCandidates_ExtraDirsAndDedup(t *testing.T) {
	home := t.TempDir()
	l := NewLocator(home, "linux", []string{"~/bin", "/usr/bin", "", "/opt/agents"})

	got := l.Candidates("amp")
	assert.Contains(t, got, filepath.Join(home, "bin", "amp"))
	assert.Contains(t, got, filepath.Join("/opt/agents", "amp"))

	count := 0
	for _, c := range got {
		if c == filepath.Join("/usr/bin", "amp") {
			count++
		}
	}
	assert.Equal(t, 1, count, "duplicates removed")
	assert.Equal(t, filepath.Join("/opt/agents", "amp"), got[len(got)-1])
}

func TestCandidates_ReadDirInjected(t *testing.T) {
	calls := 0
	l := &Locator{
		Home: "/home/u",
		GOOS: "linux",
		ReadDir: func(string) ([]os.DirEntry, error) {
			calls++
			return nil, os.ErrNotExist
		},
	}
	got := l.Candidates("gemini")
	assert.Equal(t, 1, calls)
	assert.Len(t, got, 5)
}
