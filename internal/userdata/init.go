package userdata

import (
	"fmt"
	"io"
	"os"

	"github.com/michaeljabbour/letsyolo/internal/platform"
)

// InitHome creates the letsyolo home directory with owner-only permissions.
// Progress is printed to w; existing directories are reported and skipped.
func InitHome(w io.Writer, root string) error {
	return ensureDir(w, root, DirPermSecure)
}

// ensureDir creates a directory if it doesn't exist.
func ensureDir(w io.Writer, path string, perm os.FileMode) error {
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			fmt.Fprintf(w, "  [SKIP] %s already exists\n", path)
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", path)
	}

	if err := os.MkdirAll(path, perm); err != nil {
		return fmt.Errorf("creating directory %s: %w", path, err)
	}
	// MkdirAll is subject to umask.
	if err := platform.Chmod(path, perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", path, err)
	}
	fmt.Fprintf(w, "  [ OK ] Created %s\n", path)
	return nil
}
