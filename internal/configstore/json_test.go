package configstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadObject_Missing(t *testing.T) {
	obj, err := ReadObject(filepath.Join(t.TempDir(), "settings.json"))
	require.NoError(t, err)
	assert.Empty(t, obj)
}

func TestReadObject_Blank(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0644))

	obj, err := ReadObject(path)
	require.NoError(t, err)
	assert.Empty(t, obj)
}

func TestReadObject_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", `{"permissions": `},
		{"array", `[1, 2]`},
		{"string", `"hello"`},
		{"trailing", `{} {}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0644))

			_, err := ReadObject(path)
			var perr *ParseError
			require.True(t, errors.As(err, &perr), "got %v", err)
			assert.Equal(t, path, perr.Path)
			assert.Equal(t, "json", perr.Format)
		})
	}
}

func TestWriteObject_RoundTripPreservesNumbers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	src := `{
  "model": "opus",
  "cleanupPeriodDays": 30,
  "ratio": 0.25,
  "big": 12345678901234567890,
  "permissions": {"allow": ["Bash(ls)"]}
}`
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	obj, err := ReadObject(path)
	require.NoError(t, err)
	require.NoError(t, WriteObject(path, obj))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"cleanupPeriodDays": 30`)
	assert.Contains(t, string(data), `"ratio": 0.25`)
	assert.Contains(t, string(data), `"big": 12345678901234567890`)
	assert.Equal(t, byte('\n'), data[len(data)-1])

	again, err := ReadObject(path)
	require.NoError(t, err)
	assert.Equal(t, obj, again)
	assert.Equal(t, json.Number("30"), again["cleanupPeriodDays"])
}

func TestWriteObject_Indent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "settings.json")
	obj := map[string]any{"permissions": map[string]any{"defaultMode": "bypassPermissions"}}
	require.NoError(t, WriteObject(path, obj))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := "{\n  \"permissions\": {\n    \"defaultMode\": \"bypassPermissions\"\n  }\n}\n"
	assert.Equal(t, want, string(data))
}

func TestWriteObject_KeepsKeyOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	src := `{
  "model": "opus",
  "permissions": {
    "deny": ["Read(.env)"],
    "allow": ["Bash(ls)"]
  },
  "hooks": [{"z": 1, "a": 2}],
  "env": {}
}`
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	obj, err := ReadObject(path)
	require.NoError(t, err)
	obj["permissions"].(map[string]any)["defaultMode"] = "bypassPermissions"
	obj["apiKeyHelper"] = "<helper>"
	require.NoError(t, WriteObject(path, obj))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	want := `{
  "model": "opus",
  "permissions": {
    "deny": [
      "Read(.env)"
    ],
    "allow": [
      "Bash(ls)"
    ],
    "defaultMode": "bypassPermissions"
  },
  "hooks": [
    {
      "z": 1,
      "a": 2
    }
  ],
  "env": {},
  "apiKeyHelper": "<helper>"
}
`
	assert.Equal(t, want, string(data))
}

func TestWriteObject_PreservesMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0600))
	require.NoError(t, os.Chmod(path, 0600))

	require.NoError(t, WriteObject(path, map[string]any{"a": "b"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestWriteObject_KeepsSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need privileges on windows")
	}
	dir := t.TempDir()
	real := filepath.Join(dir, "dotfiles", "settings.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(real), 0755))
	require.NoError(t, os.WriteFile(real, []byte(`{"theme": "dark"}`), 0600))
	link := filepath.Join(dir, ".claude", "settings.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0755))
	require.NoError(t, os.Symlink(filepath.Join("..", "dotfiles", "settings.json"), link))

	require.NoError(t, WriteObject(link, map[string]any{"theme": "light"}))

	info, err := os.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink, "link replaced by a regular file")

	doc, err := ReadObject(real)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"theme": "light"}, doc)

	info, err = os.Stat(real)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	entries, err := os.ReadDir(filepath.Dir(link))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temp files next to the link")
}

func TestWriteObject_NewFileMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	path := filepath.Join(t.TempDir(), "settings.json")
	require.NoError(t, WriteObject(path, map[string]any{}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultFileMode, info.Mode().Perm())
}
