package toggle

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/michaeljabbour/letsyolo/internal/agents"
)

// State describes an agent's autonomy setting after a read or a change.
type State struct {
	Agent       agents.Name `json:"agent"`
	Enabled     bool        `json:"enabled"`
	SessionOnly bool        `json:"session_only"`
	ConfigPath  string      `json:"config_path,omitempty"`
	SessionFlag string      `json:"session_flag"`
	Message     string      `json:"message"`
	// Changed is true when the operation rewrote the config file.
	Changed bool `json:"changed"`
}

// NotInstalledError is returned by Enable when the agent binary cannot be
// found. Nothing is written.
type NotInstalledError struct {
	Agent       agents.Name
	DisplayName string
	InstallHint string
}

func (e *NotInstalledError) Error() string {
	return fmt.Sprintf("%s is not installed (install with: %s)", e.DisplayName, e.InstallHint)
}

// Outcome is one agent's result from a batch operation.
type Outcome struct {
	Agent agents.Definition
	State State
	Err   error
}

// displayPath abbreviates paths under home with "~".
func displayPath(home, path string) string {
	if home == "" {
		return path
	}
	rel, err := filepath.Rel(home, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return filepath.ToSlash(filepath.Join("~", rel))
}
