// Package fs provides the on-disk theme store and path helpers.
package fs

import (
	"os"
	"path/filepath"
	"strings"
)

// DefaultStateDir returns the directory for the edit journal and debug log.
// Uses XDG_STATE_HOME if set, otherwise falls back to
// ~/.local/state/themepatch, or the system temp directory if home is
// unavailable.
func DefaultStateDir() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "themepatch")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return filepath.Join(os.TempDir(), "themepatch")
	}
	return filepath.Join(home, ".local", "state", "themepatch")
}

// ExpandTilde replaces a leading "~" with the user's home directory.
// Paths that do not start with "~" or "~/" are returned unchanged.
func ExpandTilde(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
