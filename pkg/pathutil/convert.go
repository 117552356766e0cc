// Package pathutil converts between absolute and relative path forms.
//
// rbxnav uses absolute paths internally for consistency; user-facing output
// uses root-relative paths for readability. This package is the conversion
// layer between the two representations.
package pathutil

import (
	"path/filepath"
	"strings"
)

// ToRelative converts an absolute path to relative based on a root directory.
// Falls back to the original path if conversion fails or the path is already
// relative or lies outside the root.
func ToRelative(absPath, rootDir string) string {
	if absPath == "" || rootDir == "" {
		return absPath
	}
	if !filepath.IsAbs(absPath) {
		return absPath
	}

	absPath = filepath.Clean(absPath)
	rootDir = filepath.Clean(rootDir)

	relPath, err := filepath.Rel(rootDir, absPath)
	if err != nil {
		return absPath
	}
	if strings.HasPrefix(relPath, "..") {
		// Outside the root: the absolute form is clearer.
		return absPath
	}
	return relPath
}

// ToAbsolute resolves a relative path against a root directory. Absolute
// input is returned cleaned but otherwise untouched.
func ToAbsolute(relPath, rootDir string) string {
	if relPath == "" {
		return relPath
	}
	if filepath.IsAbs(relPath) {
		return filepath.Clean(relPath)
	}
	if rootDir == "" {
		return relPath
	}
	return filepath.Clean(filepath.Join(rootDir, relPath))
}
