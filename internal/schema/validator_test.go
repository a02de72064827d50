package schema

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNames(t *testing.T) {
	names, err := Names()
	require.NoError(t, err)
	assert.Equal(t, []string{"claude-settings.schema.json", "codex-config.schema.json"}, names)
}

func TestValidate_ClaudeSettings(t *testing.T) {
	tests := []struct {
		name  string
		doc   map[string]any
		valid bool
		path  string
	}{
		{"empty", map[string]any{}, true, ""},
		{"enabled", map[string]any{
			"permissions": map[string]any{"defaultMode": "bypassPermissions", "allow": []any{"Bash(ls)"}},
			"model":       "opus",
		}, true, ""},
		{"unrelated odd types", map[string]any{
			"env":         map[string]any{"BASH_DEFAULT_TIMEOUT_MS": 60000},
			"permissions": map[string]any{"allow": []any{1}},
		}, true, ""},
		{"permissions string", map[string]any{"permissions": "all"}, false, "/permissions"},
		{"defaultMode number", map[string]any{
			"permissions": map[string]any{"defaultMode": 1},
		}, false, "/permissions/defaultMode"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Validate("claude-settings.schema.json", tt.doc)
			require.NoError(t, err)
			assert.Equal(t, tt.valid, res.Valid, "issues: %v", res.Issues)
			if tt.valid {
				assert.NoError(t, res.Err())
				return
			}
			require.NotEmpty(t, res.Issues)
			assert.Equal(t, tt.path, res.Issues[0].Path)
			assert.Equal(t, "type", res.Issues[0].Keyword)
			require.Error(t, res.Err())
			assert.Contains(t, res.Err().Error(), tt.path)
		})
	}
}

func TestValidate_CodexConfig(t *testing.T) {
	ok := map[string]any{
		"approval_policy": "never",
		"sandbox_mode":    "danger-full-access",
		"max_tokens":      int64(4096),
		"updated":         time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		"mcp_servers":     map[string]any{"docs": map[string]any{"command": "x"}},
		"profiles":        "x",
	}
	res, err := Validate("codex-config.schema.json", ok)
	require.NoError(t, err)
	assert.True(t, res.Valid, "issues: %v", res.Issues)

	bad := map[string]any{"approval_policy": true}
	res, err = Validate("codex-config.schema.json", bad)
	require.NoError(t, err)
	assert.False(t, res.Valid)
	require.NotEmpty(t, res.Issues)
	assert.Equal(t, "/approval_policy", res.Issues[0].Path)
}

func TestValidate_UnknownSchema(t *testing.T) {
	_, err := Validate("nope.json", map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown schema")
}
