package secrets

import (
	"regexp"
	"strings"
)

// Assignment is one NAME=value pair found in a shell-style file.
type Assignment struct {
	Name  string
	Value string
}

var (
	shAssign   = regexp.MustCompile(`^\s*(?:export\s+)?([A-Za-z_][A-Za-z0-9_]*)=(.*)$`)
	fishAssign = regexp.MustCompile(`^\s*set\s+(?:-[A-Za-z]+\s+)*([A-Za-z_][A-Za-z0-9_]*)\s+(.*)$`)
)

// ParseAssignments extracts variable assignments from sh, bash, zsh, fish or
// dotenv content. Supported forms:
//
//	export NAME=value
//	NAME=value
//	set -gx NAME value
//
// Values may be double-quoted (with \\ \" \$ \` escapes, possibly spanning
// lines), single-quoted or bare. Bare values lose a trailing " # comment".
// Lines that are not assignments are ignored.
func ParseAssignments(content string) []Assignment {
	// Lines keep their \r so a CRLF inside a quoted value survives; it is
	// only stripped where it terminates a line.
	lines := strings.Split(content, "\n")

	var out []Assignment
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSuffix(lines[i], "\r")
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}

		var name, rest string
		if m := shAssign.FindStringSubmatch(line); m != nil {
			name, rest = m[1], m[2]
		} else if m := fishAssign.FindStringSubmatch(line); m != nil {
			name, rest = m[1], strings.TrimSpace(m[2])
		} else {
			continue
		}

		value, consumed := parseValue(rest, lines[i][len(line):], lines[i+1:])
		i += consumed
		out = append(out, Assignment{Name: name, Value: value})
	}
	return out
}

// ParseMap is ParseAssignments collapsed to a map. Later assignments win, as
// they would when the file is sourced.
func ParseMap(content string) map[string]string {
	m := make(map[string]string)
	for _, a := range ParseAssignments(content) {
		m[a.Name] = a.Value
	}
	return m
}

// parseValue decodes the text after "=". eol is the line's stripped "\r", if
// any. following holds the raw lines after the current one for double-quoted
// values that continue; consumed reports how many of them were used.
func parseValue(rest, eol string, following []string) (value string, consumed int) {
	switch {
	case strings.HasPrefix(rest, `"`):
		if v, n, ok := parseEscapedDouble(rest+eol, following); ok {
			return v, n
		}
		if v, ok := parseRawDouble(rest); ok {
			return v, 0
		}
	case strings.HasPrefix(rest, `'`):
		if end := strings.IndexByte(rest[1:], '\''); end >= 0 && onlyComment(rest[end+2:]) {
			return rest[1 : end+1], 0
		}
	}
	return parseBare(rest), 0
}

// parseEscapedDouble reads a double-quoted string the way a POSIX shell does:
// backslash escapes \ " $ ` and a backslash-newline is dropped. Any other
// backslash is literal. The closing quote may be on a later line, and only
// whitespace or a comment may follow it.
func parseEscapedDouble(rest string, following []string) (string, int, bool) {
	text := rest[1:]
	if len(following) > 0 {
		text += "\n" + strings.Join(following, "\n")
	}

	var b strings.Builder
	for j := 0; j < len(text); j++ {
		c := text[j]
		switch {
		case c == '\\' && j+1 < len(text) && strings.IndexByte("\\\"$`", text[j+1]) >= 0:
			b.WriteByte(text[j+1])
			j++
		case c == '\\' && j+1 < len(text) && text[j+1] == '\n':
			j++
		case c == '\\' && strings.HasPrefix(text[j+1:], "\r\n"):
			j += 2
		case c == '"':
			tail := text[j+1:]
			if nl := strings.IndexByte(tail, '\n'); nl >= 0 {
				tail = tail[:nl]
			}
			if !onlyComment(tail) {
				return "", 0, false
			}
			return b.String(), strings.Count(text[:j], "\n"), true
		default:
			b.WriteByte(c)
		}
	}
	return "", 0, false
}

// parseRawDouble handles older files that wrapped values in double quotes
// without escaping anything: the text between the first and last quote on
// the line is taken verbatim.
func parseRawDouble(rest string) (string, bool) {
	end := strings.LastIndexByte(rest, '"')
	if end <= 0 || !onlyComment(rest[end+1:]) {
		return "", false
	}
	return rest[1:end], true
}

func parseBare(rest string) string {
	for i := 0; i < len(rest); i++ {
		if rest[i] == '#' && i > 0 && (rest[i-1] == ' ' || rest[i-1] == '\t') {
			rest = rest[:i]
			break
		}
	}
	return strings.TrimSpace(rest)
}

// onlyComment reports whether s is blank or a trailing shell comment.
func onlyComment(s string) bool {
	s = strings.TrimSpace(s)
	return s == "" || strings.HasPrefix(s, "#") || s == ";"
}
