package platform

import (
	"io/fs"
	"os"
	"runtime"
)

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}

// PermTooOpen reports whether info grants any bit outside want.
// Always false on Windows.
func PermTooOpen(info fs.FileInfo, want os.FileMode) bool {
	if runtime.GOOS == "windows" {
		return false
	}
	return info.Mode().Perm()&^want != 0
}
