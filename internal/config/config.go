package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/michaeljabbour/letsyolo/internal/branding"
	"github.com/michaeljabbour/letsyolo/internal/logging"
	"github.com/michaeljabbour/letsyolo/internal/userdata"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys.
const (
	KeyProbeTimeout = "probe_timeout"
	KeyLogLevel     = "log_level"
	KeySearchPaths  = "search_paths"
	KeyColor        = "color"
)

// DefaultProbeTimeout bounds each agent --version call.
const DefaultProbeTimeout = 5 * time.Second

var defaults = map[string]any{
	KeyProbeTimeout: DefaultProbeTimeout.String(),
	KeyLogLevel:     logging.DefaultLevel,
	KeySearchPaths:  []string{},
	KeyColor:        true,
}

// Keys returns every supported setting key, sorted.
func Keys() []string {
	keys := make([]string, 0, len(defaults))
	for k := range defaults {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Dir returns the letsyolo home directory (~/.letsyolo/ or LETSYOLO_HOME).
func Dir() string {
	root, err := userdata.GetRoot()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return root
}

// FilePath returns the full path to the config file.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, userdata.DirPermSecure); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper from defaults, the config file and the environment.
// A missing file is fine; a file that does not parse is an error.
func Load() error {
	for k, v := range defaults {
		viper.SetDefault(k, v)
	}
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("reading %s: %w", FilePath(), err)
	}
	return nil
}

// Get returns a config value by key as a string. Returns "" if unknown.
func Get(key string) string {
	if key == KeySearchPaths {
		return strings.Join(SearchPaths(), string(os.PathListSeparator))
	}
	return viper.GetString(key)
}

// ProbeTimeout returns the per-candidate probe timeout, falling back to the
// default for unparseable values.
func ProbeTimeout() time.Duration {
	d := viper.GetDuration(KeyProbeTimeout)
	if d <= 0 {
		return DefaultProbeTimeout
	}
	return d
}

// LogLevel returns the configured log level name.
func LogLevel() string {
	return viper.GetString(KeyLogLevel)
}

// SearchPaths returns extra directories to look for agent binaries in. An
// environment value is split like PATH.
func SearchPaths() []string {
	switch v := viper.Get(KeySearchPaths).(type) {
	case string:
		var out []string
		for _, p := range filepath.SplitList(v) {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	default:
		return viper.GetStringSlice(KeySearchPaths)
	}
}

// Color reports whether colored output is allowed.
func Color() bool {
	return viper.GetBool(KeyColor)
}

// Set validates value for key and persists it to the config file. Only
// values from the file itself are rewritten; defaults and environment
// overrides are never copied into it.
func Set(key, value string) error {
	parsed, err := parseValue(key, value)
	if err != nil {
		return err
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	configFile := FilePath()
	fv := viper.New()
	fv.SetConfigFile(configFile)
	fv.SetConfigType(fileType)
	if err := fv.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("reading %s: %w", configFile, err)
		}
	}
	fv.Set(key, parsed)

	if err := fv.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	viper.Set(key, parsed)
	return nil
}

func parseValue(key, value string) (any, error) {
	switch key {
	case KeyProbeTimeout:
		d, err := time.ParseDuration(value)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid %s %q: want a positive duration such as 5s", key, value)
		}
		return d.String(), nil
	case KeyLogLevel:
		if _, err := logging.ParseLevel(value); err != nil {
			return nil, err
		}
		return value, nil
	case KeySearchPaths:
		var out []string
		for _, p := range strings.FieldsFunc(value, func(r rune) bool { return r == ',' || r == os.PathListSeparator }) {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out, nil
	case KeyColor:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("invalid %s %q: want true or false", key, value)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unknown config key %q (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}
}
