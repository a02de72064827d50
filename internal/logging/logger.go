package logging

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// DefaultLevel is used when no level is configured.
const DefaultLevel = "warn"

// levels lists the accepted --log-level values, quietest last.
var levels = []struct {
	name  string
	level zerolog.Level
}{
	{"trace", zerolog.TraceLevel},
	{"debug", zerolog.DebugLevel},
	{"info", zerolog.InfoLevel},
	{"warn", zerolog.WarnLevel},
	{"error", zerolog.ErrorLevel},
	{"silent", zerolog.Disabled},
}

// Logger is a zerolog.Logger that can hand out subsystem loggers.
type Logger struct {
	zerolog.Logger
}

// New returns a root logger at level writing JSON lines to w. An unknown
// level is treated as DefaultLevel.
func New(w io.Writer, level string) *Logger {
	lvl, err := ParseLevel(level)
	if err != nil {
		lvl = zerolog.WarnLevel
	}
	return &Logger{zerolog.New(w).Level(lvl).With().Timestamp().Logger()}
}

// Console wraps out in a human-readable writer for terminal use.
func Console(out io.Writer, noColor bool) io.Writer {
	return zerolog.ConsoleWriter{Out: out, NoColor: noColor, TimeFormat: time.TimeOnly}
}

// Nop discards everything.
func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// Sub tags the logger's output with a subsystem name. A nil receiver yields
// Nop.
func (l *Logger) Sub(subsystem string) *Logger {
	if l == nil {
		return Nop()
	}
	return &Logger{l.With().Str("subsystem", subsystem).Logger()}
}

// LevelNames returns the accepted level names.
func LevelNames() []string {
	names := make([]string, len(levels))
	for i, l := range levels {
		names[i] = l.name
	}
	return names
}

// ParseLevel maps a level name to a zerolog level. "" means DefaultLevel and
// "silent" disables output.
func ParseLevel(s string) (zerolog.Level, error) {
	if s == "" {
		s = DefaultLevel
	}
	for _, l := range levels {
		if l.name == s {
			return l.level, nil
		}
	}
	return zerolog.WarnLevel, fmt.Errorf("unknown log level %q: want one of %s", s, strings.Join(LevelNames(), ", "))
}
