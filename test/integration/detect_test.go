//go:build integration

package integration_test

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/michaeljabbour/letsyolo/internal/detect"
)

func newProber(env *testEnv, timeout time.Duration) *detect.Prober {
	loc := detect.NewLocator(env.HomeDir, runtime.GOOS, []string{env.BinDir})
	return detect.NewProber(loc, timeout, nil)
}

func TestDetectRealProcess(t *testing.T) {
	env := setupTestEnv(t)
	path := writeAgent(t, env.BinDir, "fakeagent", `echo "fakeagent 3.2.1 (build 99)"`)

	res := newProber(env, 5*time.Second).Detect(context.Background(), []string{"fakeagent"}, "--version")
	if !res.Installed {
		t.Fatal("expected fakeagent to be detected")
	}
	if res.Path != path {
		t.Errorf("Path = %q, want %q", res.Path, path)
	}
	if res.Version != "fakeagent 3.2.1 (build 99)" {
		t.Errorf("Version = %q", res.Version)
	}
	if res.Semver != "3.2.1" {
		t.Errorf("Semver = %q, want 3.2.1", res.Semver)
	}
}

func TestDetectNonZeroExitWithOutput(t *testing.T) {
	env := setupTestEnv(t)
	writeAgent(t, env.BinDir, "grumpy", "echo 'grumpy 0.9.0' >&2\nexit 2")

	res := newProber(env, 5*time.Second).Detect(context.Background(), []string{"grumpy"}, "--version")
	if !res.Installed {
		t.Fatal("a non-zero exit that printed a banner should count as installed")
	}
	if res.Semver != "0.9.0" {
		t.Errorf("Semver = %q, want 0.9.0", res.Semver)
	}
}

func TestDetectSilentFailure(t *testing.T) {
	env := setupTestEnv(t)
	writeAgent(t, env.BinDir, "broken", "exit 1")

	res := newProber(env, 5*time.Second).Detect(context.Background(), []string{"broken"}, "--version")
	if res.Installed {
		t.Errorf("silent non-zero exit should not count as installed: %+v", res)
	}
}

func TestDetectTimeout(t *testing.T) {
	env := setupTestEnv(t)
	writeAgent(t, env.BinDir, "sleepy", "exec sleep 30")

	start := time.Now()
	res := newProber(env, 300*time.Millisecond).Detect(context.Background(), []string{"sleepy"}, "--version")
	if res.Installed {
		t.Error("a hung binary should not count as installed")
	}
	// Every candidate gets its own timeout; the bare name and the extra dir
	// both point at the script.
	if elapsed := time.Since(start); elapsed > 10*time.Second {
		t.Errorf("detection took %v, timeouts not enforced", elapsed)
	}
}

func TestDetectSymlinkTarget(t *testing.T) {
	env := setupTestEnv(t)
	realDir := t.TempDir()
	target := writeAgent(t, realDir, "linked-real", `echo "linked 1.0.0"`)
	link := filepath.Join(env.BinDir, "linked")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	res := newProber(env, 5*time.Second).Detect(context.Background(), []string{"linked"}, "--version")
	if !res.Installed {
		t.Fatal("expected linked binary to be detected")
	}
	want, _ := filepath.EvalSymlinks(target)
	if res.LinkTarget != want {
		t.Errorf("LinkTarget = %q, want %q", res.LinkTarget, want)
	}
}
