package platform

import (
	"os"
	"path/filepath"
)

// ReadSymlinkTarget returns the immediate target of a symlink. Relative
// targets are joined with the link's directory so the result is usable
// without knowing where the link lives.
func ReadSymlinkTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err != nil {
		return "", err
	}
	if !filepath.IsAbs(target) {
		target = filepath.Join(filepath.Dir(path), target)
	}
	return target, nil
}

// LinkTarget returns the fully resolved target when path is a symlink and ""
// otherwise. Errors are swallowed: a dangling or unreadable link simply has
// no reportable target.
func LinkTarget(path string) string {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return ""
	}
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		target, rerr := ReadSymlinkTarget(path)
		if rerr != nil {
			return ""
		}
		return target
	}
	return resolved
}
