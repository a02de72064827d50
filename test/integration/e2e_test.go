//go:build integration

package integration_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/michaeljabbour/letsyolo/internal/agents"
	"github.com/michaeljabbour/letsyolo/internal/toggle"
)

// TestFullFlowEnableAndDisable runs the complete toggle flow against real
// processes: detect -> enable -> status -> disable -> verify user keys kept.
func TestFullFlowEnableAndDisable(t *testing.T) {
	env := setupTestEnv(t)
	writeAgent(t, env.BinDir, "claude", `echo "2.0.14 (Claude Code)"`)
	writeAgent(t, env.BinDir, "codex", `echo "codex-cli 0.46.0"`)

	claudeCfg := filepath.Join(env.HomeDir, ".claude", "settings.json")
	codexCfg := filepath.Join(env.HomeDir, ".codex", "config.toml")
	writeFile(t, claudeCfg, `{"model": "opus", "permissions": {"allow": ["Bash(ls:*)"]}}`)
	writeFile(t, codexCfg, "model = \"o3\"\n")

	engine := toggle.New(env.HomeDir, newProber(env, 5*time.Second), nil)
	defs, err := agents.ParseList([]string{"claude", "codex"})
	if err != nil {
		t.Fatalf("ParseList: %v", err)
	}

	// Step 1: enable both.
	for _, o := range engine.EnableAll(context.Background(), defs) {
		if o.Err != nil {
			t.Fatalf("enable %s: %v", o.Agent.Name, o.Err)
		}
		if !o.State.Enabled || !o.State.Changed {
			t.Errorf("enable %s: state %+v", o.Agent.Name, o.State)
		}
	}
	claude := readFile(t, claudeCfg)
	assertContains(t, claude, `"defaultMode": "bypassPermissions"`)
	assertContains(t, claude, `"model": "opus"`)
	assertContains(t, claude, `"Bash(ls:*)"`)
	codex := readFile(t, codexCfg)
	assertContains(t, codex, `approval_policy = "never"`)
	assertContains(t, codex, `sandbox_mode = "danger-full-access"`)
	assertContains(t, codex, `model = "o3"`)

	// Step 2: status reflects the change.
	for _, o := range engine.ReadAll(defs) {
		if o.Err != nil || !o.State.Enabled {
			t.Errorf("status %s: %+v err=%v", o.Agent.Name, o.State, o.Err)
		}
	}

	// Step 3: enabling again is a no-op.
	for _, o := range engine.EnableAll(context.Background(), defs) {
		if o.Err != nil || o.State.Changed {
			t.Errorf("second enable %s: %+v err=%v", o.Agent.Name, o.State, o.Err)
		}
	}

	// Step 4: disable removes only what enable wrote.
	for _, o := range engine.DisableAll(defs) {
		if o.Err != nil || o.State.Enabled {
			t.Errorf("disable %s: %+v err=%v", o.Agent.Name, o.State, o.Err)
		}
	}
	claude = readFile(t, claudeCfg)
	assertNotContains(t, claude, "bypassPermissions")
	assertContains(t, claude, `"Bash(ls:*)"`)
	codex = readFile(t, codexCfg)
	assertNotContains(t, codex, "approval_policy")
	assertContains(t, codex, `model = "o3"`)
}

func TestEnableMissingAgentWritesNothing(t *testing.T) {
	env := setupTestEnv(t)
	// The host may have a real claude on PATH, so probe a name nothing answers to.
	engine := toggle.New(env.HomeDir, newProber(env, 2*time.Second), nil)
	def, _ := agents.Lookup(agents.Claude)
	def.Binaries = []string{"letsyolo-no-such-agent"}

	_, err := engine.Enable(context.Background(), def)
	var nie *toggle.NotInstalledError
	if !errors.As(err, &nie) {
		t.Fatalf("Enable err = %v, want NotInstalledError", err)
	}
	assertNoFile(t, filepath.Join(env.HomeDir, ".claude", "settings.json"))
}
