package configstore

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/michaeljabbour/letsyolo/internal/platform"
)

// DefaultFileMode is applied to config files that do not exist yet.
const DefaultFileMode os.FileMode = 0644

// WriteFileAtomic writes data to path through a temp file in the same
// directory followed by a rename, so readers never observe a partial file.
// Parent directories are created with 0755. The final file has mode perm.
// When path is a symlink the link is kept and its target is replaced.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	path, err := resolveTarget(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &FSError{Op: "create directory", Path: dir, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return &FSError{Op: "create temp file", Path: path, Err: err}
	}
	tmpPath := tmp.Name()

	// Remove the temp file on any failure below.
	success := false
	defer func() {
		if !success {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return &FSError{Op: "write temp file", Path: tmpPath, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &FSError{Op: "sync temp file", Path: tmpPath, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &FSError{Op: "close temp file", Path: tmpPath, Err: err}
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return &FSError{Op: "chmod temp file", Path: tmpPath, Err: err}
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return &FSError{Op: "rename", Path: path, Err: err}
	}

	success = true
	return nil
}

// resolveTarget follows path to the file a write should replace. A dangling
// link resolves to its target so the write creates it.
func resolveTarget(path string) (string, error) {
	info, err := os.Lstat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return path, nil
	}
	if err != nil {
		return "", &FSError{Op: "stat", Path: path, Err: err}
	}
	if info.Mode()&fs.ModeSymlink == 0 {
		return path, nil
	}

	real, err := filepath.EvalSymlinks(path)
	if err == nil {
		return real, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return "", &FSError{Op: "resolve symlink", Path: path, Err: err}
	}
	target, err := platform.ReadSymlinkTarget(path)
	if err != nil {
		return "", &FSError{Op: "resolve symlink", Path: path, Err: err}
	}
	return target, nil
}

// existingMode returns the permission bits of path, or DefaultFileMode when
// the file does not exist.
func existingMode(path string) (os.FileMode, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultFileMode, nil
	}
	if err != nil {
		return 0, &FSError{Op: "stat", Path: path, Err: err}
	}
	return info.Mode().Perm(), nil
}

// readIfExists returns (nil, nil) for a missing file.
func readIfExists(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, &FSError{Op: "read", Path: path, Err: err}
	}
	return data, nil
}
