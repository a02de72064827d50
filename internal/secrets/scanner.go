package secrets

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sourcegraph/conc/iter"

	"github.com/michaeljabbour/letsyolo/internal/agents"
	"github.com/michaeljabbour/letsyolo/internal/logging"
)

// Provenance labels for Found.Source. Dotfile finds carry the file path.
const (
	SourceEnvironment = "environment"
	SourceSecretsFile = "secrets-file"
)

// Found is a discovered key value and where it came from.
type Found struct {
	Value  string `json:"-"`
	Source string `json:"source"`
}

// dotfiles are scanned after the environment and the secrets file, in order.
var dotfiles = []string{
	".zshrc",
	".zprofile",
	".zshenv",
	".bashrc",
	".bash_profile",
	".profile",
	".env",
	filepath.Join(".config", "fish", "config.fish"),
}

// Dotfiles returns the scanned profile paths under home in precedence order.
func Dotfiles(home string) []string {
	out := make([]string, 0, len(dotfiles))
	for _, d := range dotfiles {
		out = append(out, filepath.Join(home, d))
	}
	return out
}

// Scanner discovers API keys. All inputs are injected so tests never read the
// real environment or home directory.
type Scanner struct {
	SecretsPath string
	Dotfiles    []string
	Environ     []string
	Log         *logging.Logger
}

// NewScanner returns a Scanner over the standard dotfiles under home.
func NewScanner(home, secretsPath string, environ []string, log *logging.Logger) *Scanner {
	return &Scanner{
		SecretsPath: secretsPath,
		Dotfiles:    Dotfiles(home),
		Environ:     environ,
		Log:         log.Sub("secrets"),
	}
}

// Scan returns every known API key it can find. Earlier sources win; empty
// values are skipped.
func (s *Scanner) Scan() map[string]Found {
	found := make(map[string]Found)
	take := func(values map[string]string, source string) {
		for _, k := range agents.APIKeys() {
			if _, done := found[k.EnvVar]; done {
				continue
			}
			if v := values[k.EnvVar]; v != "" {
				found[k.EnvVar] = Found{Value: v, Source: source}
			}
		}
	}

	take(environMap(s.Environ), SourceEnvironment)

	if s.SecretsPath != "" {
		if values, ok := s.readFile(s.SecretsPath); ok {
			take(values, SourceSecretsFile)
		}
	}

	// Read concurrently; precedence is applied afterwards in list order.
	parsed := iter.Map(s.Dotfiles, func(path *string) map[string]string {
		values, _ := s.readFile(*path)
		return values
	})
	for i, values := range parsed {
		if values != nil {
			take(values, s.Dotfiles[i])
		}
	}
	return found
}

func (s *Scanner) readFile(path string) (map[string]string, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) && s.Log != nil {
			s.Log.Debug().Str("path", path).Err(err).Msg("skipping unreadable file")
		}
		return nil, false
	}
	return ParseMap(string(data)), true
}

func environMap(environ []string) map[string]string {
	m := make(map[string]string, len(environ))
	for _, kv := range environ {
		name, value, ok := strings.Cut(kv, "=")
		if ok {
			m[name] = value
		}
	}
	return m
}
