// Package platform papers over the filesystem differences letsyolo cares
// about: permission bits (a no-op on Windows) and following the symlinks npm
// and Homebrew install as agent launchers.
package platform
