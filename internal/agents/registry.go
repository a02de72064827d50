package agents

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// Name identifies a supported agent.
type Name string

const (
	Claude  Name = "claude"
	Codex   Name = "codex"
	Copilot Name = "copilot"
	Gemini  Name = "gemini"
	Amp     Name = "amp"
)

// Format tags the on-disk schema of an agent's config file.
type Format int

const (
	// FormatNone means the agent has no persistent autonomy setting.
	FormatNone Format = iota
	// FormatJSON is a nested JSON object addressed by dotted key paths.
	FormatJSON
	// FormatTOML is a flat TOML table addressed by top-level keys.
	FormatTOML
)

// String returns the format tag used in JSON output and logs.
func (f Format) String() string {
	switch f {
	case FormatJSON:
		return "json"
	case FormatTOML:
		return "toml"
	default:
		return "none"
	}
}

// Setting is one key the toggle engine writes when enabling an agent.
// For FormatJSON the key is a dotted path ("permissions.defaultMode").
type Setting struct {
	Key      string
	Sentinel string
}

// Path splits a dotted JSON key into its segments.
func (s Setting) Path() []string {
	return strings.Split(s.Key, ".")
}

// Definition is the immutable description of one agent.
type Definition struct {
	Name        Name
	DisplayName string
	Binaries    []string
	VersionFlag string
	// ConfigPath is relative to the user's home directory. Empty when the
	// agent has no persistent toggle.
	ConfigPath  string
	Format      Format
	Settings    []Setting
	SessionFlag string
	InstallHint string
	// Schema names the embedded JSON Schema describing the config shape the
	// engine relies on. Empty for session-only agents.
	Schema string
}

// Persistent reports whether the agent has a durable autonomy setting.
func (d Definition) Persistent() bool {
	return d.ConfigPath != "" && d.Format != FormatNone
}

// ConfigFile resolves the config path against home. Returns "" for
// session-only agents.
func (d Definition) ConfigFile(home string) string {
	if d.ConfigPath == "" {
		return ""
	}
	return filepath.Join(home, filepath.FromSlash(d.ConfigPath))
}

// definitions is the fixed agent table, in display order.
var definitions = []Definition{
	{
		Name:        Claude,
		DisplayName: "Claude Code",
		Binaries:    []string{"claude"},
		VersionFlag: "--version",
		ConfigPath:  ".claude/settings.json",
		Format:      FormatJSON,
		Settings: []Setting{
			{Key: "permissions.defaultMode", Sentinel: "bypassPermissions"},
		},
		SessionFlag: "--dangerously-skip-permissions",
		InstallHint: "npm install -g @anthropic-ai/claude-code",
		Schema:      "claude-settings.schema.json",
	},
	{
		Name:        Codex,
		DisplayName: "OpenAI Codex",
		Binaries:    []string{"codex"},
		VersionFlag: "--version",
		ConfigPath:  ".codex/config.toml",
		Format:      FormatTOML,
		Settings: []Setting{
			{Key: "approval_policy", Sentinel: "never"},
			{Key: "sandbox_mode", Sentinel: "danger-full-access"},
		},
		SessionFlag: "--dangerously-bypass-approvals-and-sandbox",
		InstallHint: "npm install -g @openai/codex",
		Schema:      "codex-config.schema.json",
	},
	{
		Name:        Copilot,
		DisplayName: "GitHub Copilot CLI",
		Binaries:    []string{"copilot"},
		VersionFlag: "--version",
		SessionFlag: "--allow-all-tools",
		InstallHint: "npm install -g @github/copilot",
	},
	{
		Name:        Gemini,
		DisplayName: "Gemini CLI",
		Binaries:    []string{"gemini"},
		VersionFlag: "--version",
		SessionFlag: "--yolo",
		InstallHint: "npm install -g @google/gemini-cli",
	},
	{
		Name:        Amp,
		DisplayName: "Amp",
		Binaries:    []string{"amp"},
		VersionFlag: "--version",
		SessionFlag: "--dangerously-allow-all",
		InstallHint: "npm install -g @sourcegraph/amp",
	},
}

// All returns every agent definition in display order. The returned slice is
// a copy.
func All() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// Names returns all agent names in display order.
func Names() []Name {
	names := make([]Name, 0, len(definitions))
	for _, d := range definitions {
		names = append(names, d.Name)
	}
	return names
}

// Lookup returns the definition for name.
func Lookup(name Name) (Definition, bool) {
	for _, d := range definitions {
		if d.Name == name {
			return d, true
		}
	}
	return Definition{}, false
}

// Parse converts user input to a Definition. Matching is case-insensitive and
// also accepts any of the agent's binary names.
func Parse(s string) (Definition, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, d := range definitions {
		if string(d.Name) == s {
			return d, nil
		}
		for _, b := range d.Binaries {
			if b == s {
				return d, nil
			}
		}
	}
	names := make([]string, 0, len(definitions))
	for _, d := range definitions {
		names = append(names, string(d.Name))
	}
	sort.Strings(names)
	return Definition{}, fmt.Errorf("unknown agent %q: supported agents are %s", s, strings.Join(names, ", "))
}

// ParseList resolves a list of agent arguments, removing duplicates while
// keeping the first-seen order.
func ParseList(args []string) ([]Definition, error) {
	seen := make(map[Name]bool)
	var defs []Definition
	for _, a := range args {
		d, err := Parse(a)
		if err != nil {
			return nil, err
		}
		if seen[d.Name] {
			continue
		}
		seen[d.Name] = true
		defs = append(defs, d)
	}
	return defs, nil
}
