package configstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFlat_Missing(t *testing.T) {
	doc, err := ReadFlat(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Empty(t, doc)
}

func TestReadFlat_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("approval_policy = \n"), 0644))

	_, err := ReadFlat(path)
	var perr *ParseError
	require.True(t, errors.As(err, &perr), "got %v", err)
	assert.Equal(t, "toml", perr.Format)
}

func TestWriteFlat_PreservesUnrelatedKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	src := `model = "o3"
max_tokens = 4096
hide_reasoning = true

[mcp_servers.docs]
command = "docs-mcp"
args = ["--stdio"]
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0644))

	doc, err := ReadFlat(path)
	require.NoError(t, err)
	doc["approval_policy"] = "never"
	require.NoError(t, WriteFlat(path, doc))

	again, err := ReadFlat(path)
	require.NoError(t, err)
	assert.Equal(t, "o3", again["model"])
	assert.Equal(t, int64(4096), again["max_tokens"])
	assert.Equal(t, true, again["hide_reasoning"])
	assert.Equal(t, "never", again["approval_policy"])

	servers, ok := again["mcp_servers"].(map[string]any)
	require.True(t, ok)
	docs, ok := servers["docs"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "docs-mcp", docs["command"])
}

func TestWriteFlat_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, WriteFlat(path, map[string]any{}))

	doc, err := ReadFlat(path)
	require.NoError(t, err)
	assert.Empty(t, doc)
}
