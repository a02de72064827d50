package secrets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/michaeljabbour/letsyolo/internal/agents"
	"github.com/michaeljabbour/letsyolo/internal/configstore"
	"github.com/michaeljabbour/letsyolo/internal/logging"
	"github.com/michaeljabbour/letsyolo/internal/platform"
)

const (
	// DirPerm is enforced on the directory holding the secrets file.
	DirPerm os.FileMode = 0700
	// FilePerm is enforced on the secrets file.
	FilePerm os.FileMode = 0600
)

const fileHeader = `# letsyolo API keys. Sourced by your shell profile.
# Managed by "letsyolo keys"; keep this file private.
`

// Store persists API keys to a shell-sourceable file.
type Store struct {
	Path string
	Log  *logging.Logger
}

// NewStore returns a Store for path.
func NewStore(path string, log *logging.Logger) *Store {
	return &Store{Path: path, Log: log.Sub("secrets")}
}

// Load returns every assignment in the secrets file. A missing file is empty.
func (s *Store) Load() (map[string]string, error) {
	data, err := os.ReadFile(s.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, &configstore.FSError{Op: "read", Path: s.Path, Err: err}
	}
	return ParseMap(string(data)), nil
}

// Write saves values. Known keys are written in table order; keys the file
// already held that letsyolo does not know about are kept (sorted), taking a
// new value from values when one is given. Unknown keys that are not already
// in the file are dropped. Permissions are re-applied on every write.
func (s *Store) Write(values map[string]string) error {
	existing, err := s.Load()
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString(fileHeader)
	for _, k := range agents.APIKeys() {
		if v := values[k.EnvVar]; v != "" {
			fmt.Fprintf(&b, "export %s=%s\n", k.EnvVar, Quote(v))
		}
	}

	var extras []string
	for name := range existing {
		if !agents.IsKnownKey(name) {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	for _, name := range extras {
		v, ok := values[name]
		if !ok {
			v = existing[name]
		}
		fmt.Fprintf(&b, "export %s=%s\n", name, Quote(v))
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return &configstore.FSError{Op: "create directory", Path: dir, Err: err}
	}
	if err := platform.Chmod(dir, DirPerm); err != nil {
		return &configstore.FSError{Op: "chmod", Path: dir, Err: err}
	}
	if err := configstore.WriteFileAtomic(s.Path, []byte(b.String()), FilePerm); err != nil {
		return err
	}
	if err := platform.Chmod(s.Path, FilePerm); err != nil {
		return &configstore.FSError{Op: "chmod", Path: s.Path, Err: err}
	}

	if s.Log != nil {
		s.Log.Debug().Str("path", s.Path).Int("extras", len(extras)).Msg("secrets written")
	}
	return nil
}

// Apply merges values into the stored secrets and writes the file. An empty
// value removes the key.
func (s *Store) Apply(values map[string]string) error {
	current, err := s.Load()
	if err != nil {
		return err
	}
	for k, v := range values {
		if v == "" {
			delete(current, k)
			continue
		}
		current[k] = v
	}
	return s.Write(current)
}

// Quote renders value as a double-quoted shell word. Backslash, double quote,
// backtick and dollar are escaped; newlines stay literal inside the quotes.
func Quote(value string) string {
	var b strings.Builder
	b.Grow(len(value) + 2)
	b.WriteByte('"')
	for _, r := range value {
		switch r {
		case '\\', '"', '`', '$':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}
