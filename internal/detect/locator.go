package detect

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"

	"github.com/Masterminds/semver/v3"
)

// globalPrefixes are checked after the bare name on non-Windows systems.
var globalPrefixes = []string{
	"/usr/local/bin",
	"/opt/homebrew/bin",
	"/usr/bin",
}

var nodeVersionDir = regexp.MustCompile(`^v\d+(\.\d+)*$`)

// Locator builds candidate paths for a binary. Zero-value fields fall back to
// the real environment.
type Locator struct {
	Home      string
	GOOS      string
	ExtraDirs []string
	// ReadDir lists a directory; defaults to os.ReadDir.
	ReadDir func(string) ([]os.DirEntry, error)
}

// NewLocator returns a Locator for home and goos with extra search
// directories appended after the built-in ones.
func NewLocator(home, goos string, extraDirs []string) *Locator {
	return &Locator{Home: home, GOOS: goos, ExtraDirs: extraDirs, ReadDir: os.ReadDir}
}

// Candidates returns the ordered, de-duplicated list of paths to try for name.
// The first entry is always name itself.
func (l *Locator) Candidates(name string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		out = append(out, p)
	}

	add(name)
	if l.GOOS == "windows" {
		return out
	}

	for _, dir := range globalPrefixes {
		add(filepath.Join(dir, name))
	}
	if l.Home != "" {
		add(filepath.Join(l.Home, ".local", "bin", name))
		for _, dir := range l.nvmBinDirs() {
			add(filepath.Join(dir, name))
		}
	}
	for _, dir := range l.ExtraDirs {
		if dir == "" {
			continue
		}
		add(filepath.Join(expandHome(dir, l.Home), name))
	}
	return out
}

// nvmBinDirs lists ~/.nvm/versions/node/<v...>/bin, newest version first.
// A missing nvm directory yields nothing.
func (l *Locator) nvmBinDirs() []string {
	readDir := l.ReadDir
	if readDir == nil {
		readDir = os.ReadDir
	}
	root := filepath.Join(l.Home, ".nvm", "versions", "node")
	entries, err := readDir(root)
	if err != nil {
		return nil
	}

	type entry struct {
		name string
		ver  *semver.Version
	}
	var versions []entry
	for _, e := range entries {
		if !nodeVersionDir.MatchString(e.Name()) {
			continue
		}
		v, err := semver.NewVersion(e.Name())
		if err != nil {
			// Matches the pattern but is not valid semver (e.g. v1.2.3.4).
			v = nil
		}
		versions = append(versions, entry{name: e.Name(), ver: v})
	}

	sort.SliceStable(versions, func(i, j int) bool {
		a, b := versions[i].ver, versions[j].ver
		switch {
		case a != nil && b != nil:
			if !a.Equal(b) {
				return a.GreaterThan(b)
			}
			return versions[i].name > versions[j].name
		case a != nil:
			return true
		case b != nil:
			return false
		default:
			return versions[i].name > versions[j].name
		}
	})

	dirs := make([]string, 0, len(versions))
	for _, v := range versions {
		dirs = append(dirs, filepath.Join(root, v.name, "bin"))
	}
	return dirs
}

func expandHome(dir, home string) string {
	if home == "" {
		return dir
	}
	if dir == "~" {
		return home
	}
	if len(dir) > 1 && dir[0] == '~' && (dir[1] == '/' || dir[1] == filepath.Separator) {
		return filepath.Join(home, dir[2:])
	}
	return dir
}
