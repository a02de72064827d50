package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/michaeljabbour/letsyolo/internal/configstore"
)

// HookMarker identifies an installed hook. Any line mentioning the secrets
// file counts, so hand-written variants are not duplicated.
const HookMarker = ".letsyolo/secrets.env"

// Hook is appended to shell profiles to load the secrets file.
const Hook = `# letsyolo: load API keys
[ -f "$HOME/.letsyolo/secrets.env" ] && . "$HOME/.letsyolo/secrets.env"
`

// shProfiles are profiles that understand POSIX `[` and `.`. Fish is left
// out on purpose.
var shProfiles = []string{".zshrc", ".bashrc", ".bash_profile", ".profile"}

// HasHook reports whether profile already loads the secrets file. A missing
// profile has no hook.
func HasHook(profile string) (bool, error) {
	data, err := os.ReadFile(profile)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, &configstore.FSError{Op: "read", Path: profile, Err: err}
	}
	return strings.Contains(string(data), HookMarker), nil
}

// InstallHook appends Hook to profile unless it is already present, creating
// the file if needed. It reports whether anything was written.
func InstallHook(profile string) (bool, error) {
	data, err := os.ReadFile(profile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return false, &configstore.FSError{Op: "read", Path: profile, Err: err}
	}
	if strings.Contains(string(data), HookMarker) {
		return false, nil
	}

	var b strings.Builder
	if len(data) > 0 {
		if data[len(data)-1] != '\n' {
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}
	b.WriteString(Hook)

	// Append in place so a symlinked dotfile stays a symlink.
	f, err := os.OpenFile(profile, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	if err != nil {
		return false, &configstore.FSError{Op: "open", Path: profile, Err: err}
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		return false, &configstore.FSError{Op: "append", Path: profile, Err: err}
	}
	if err := f.Close(); err != nil {
		return false, &configstore.FSError{Op: "close", Path: profile, Err: err}
	}
	return true, nil
}

// HookTargets picks the profiles to hook: every existing sh-family profile
// under home, or when none exist, the one matching shell ($SHELL).
func HookTargets(home, shell string) []string {
	var out []string
	for _, name := range shProfiles {
		p := filepath.Join(home, name)
		if _, err := os.Stat(p); err == nil {
			out = append(out, p)
		}
	}
	if len(out) > 0 {
		return out
	}

	switch filepath.Base(shell) {
	case "zsh":
		return []string{filepath.Join(home, ".zshrc")}
	case "bash":
		return []string{filepath.Join(home, ".bashrc")}
	default:
		return []string{filepath.Join(home, ".profile")}
	}
}

// InstallHooks installs the hook into every target and returns the profiles
// that changed.
func InstallHooks(targets []string) ([]string, error) {
	var changed []string
	for _, t := range targets {
		ok, err := InstallHook(t)
		if err != nil {
			return changed, fmt.Errorf("installing hook: %w", err)
		}
		if ok {
			changed = append(changed, t)
		}
	}
	return changed, nil
}
