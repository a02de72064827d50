package secrets

import (
	"fmt"
	"io"
	"strings"

	"github.com/michaeljabbour/letsyolo/internal/agents"
)

// Setup walks the user through every known API key. Values found by Scanner
// are offered but never saved unless the user keeps them.
type Setup struct {
	Store    *Store
	Scanner  *Scanner
	Prompter Prompter
	Out      io.Writer
	// Home abbreviates dotfile paths in prompts.
	Home string
}

// SetupResult lists what Run decided per key.
type SetupResult struct {
	Saved     []string
	Unchanged []string
	Skipped   []string
}

// Run asks about each key and writes the secrets file if anything changed.
func (s *Setup) Run() (*SetupResult, error) {
	stored, err := s.Store.Load()
	if err != nil {
		return nil, err
	}
	found := s.Scanner.Scan()

	values := make(map[string]string, len(stored))
	for k, v := range stored {
		values[k] = v
	}

	res := &SetupResult{}
	dirty := false
	for _, key := range agents.APIKeys() {
		fmt.Fprintf(s.Out, "\n%s (%s)\n", key.DisplayName, key.EnvVar)
		current := stored[key.EnvVar]
		candidate, hasCandidate := found[key.EnvVar]
		if hasCandidate && (candidate.Source == SourceSecretsFile || candidate.Value == current) {
			hasCandidate = false
		}

		var value string
		switch {
		case hasCandidate:
			q := fmt.Sprintf("  Found %s in %s. Save it?", Mask(candidate.Value), s.show(candidate.Source))
			keep, err := s.Prompter.Confirm(q, true)
			if err != nil {
				return nil, err
			}
			if keep {
				value = candidate.Value
				break
			}
			if value, err = s.ask(key); err != nil {
				return nil, err
			}
		case current != "":
			q := fmt.Sprintf("  Stored: %s. Replace it?", Mask(current))
			replace, err := s.Prompter.Confirm(q, false)
			if err != nil {
				return nil, err
			}
			if replace {
				if value, err = s.ask(key); err != nil {
					return nil, err
				}
			}
		default:
			if value, err = s.ask(key); err != nil {
				return nil, err
			}
		}

		switch {
		case value == "" && current == "":
			res.Skipped = append(res.Skipped, key.EnvVar)
		case value == "" || value == current:
			res.Unchanged = append(res.Unchanged, key.EnvVar)
		default:
			values[key.EnvVar] = value
			res.Saved = append(res.Saved, key.EnvVar)
			dirty = true
		}
	}

	if dirty {
		if err := s.Store.Write(values); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (s *Setup) ask(key agents.APIKey) (string, error) {
	fmt.Fprintf(s.Out, "  Get one at %s\n", key.Hint)
	return s.Prompter.Secret("  Enter value (blank to skip): ")
}

func (s *Setup) show(source string) string {
	if s.Home != "" && strings.HasPrefix(source, s.Home) {
		return "~" + strings.TrimPrefix(source, s.Home)
	}
	return source
}

// ParseSetFlags parses NAME=VALUE pairs for non-interactive setup. Only known
// API key names are accepted.
func ParseSetFlags(pairs []string) (map[string]string, error) {
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		name, value, ok := strings.Cut(p, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid --set %q: want NAME=VALUE", p)
		}
		if !agents.IsKnownKey(name) {
			return nil, fmt.Errorf("unknown key %q", name)
		}
		out[name] = value
	}
	return out, nil
}
