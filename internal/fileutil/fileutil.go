// Package fileutil provides file and path utility functions.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Sentinel errors for file utility operations.
var (
	ErrSuffixEmpty         = errors.New("suffix cannot be empty")
	ErrSuffixPathTraversal = errors.New("suffix contains path separator or null byte")
)

// FileExists returns true if the path exists and is a regular file.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirExists returns true if the path exists and is a directory.
func DirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// IsFilePath returns true if the string looks like a file path rather than a name.
// A string containing path separators (/, \) is treated as a path.
//
// Examples:
//   - "work" -> false (name)
//   - "./work.yaml" -> true (relative path)
//   - "/etc/typograf.yaml" -> true (absolute)
//   - "C:\config\work.yaml" -> true (Windows)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// HasExtension reports whether path ends with one of exts (case-insensitive).
// Extensions include the leading dot.
func HasExtension(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == "" {
		return false
	}
	for _, e := range exts {
		if ext == strings.ToLower(e) {
			return true
		}
	}
	return false
}

// ValidateSuffix checks that suffix is safe to insert into a file name.
func ValidateSuffix(suffix string) error {
	if suffix == "" {
		return ErrSuffixEmpty
	}
	if strings.ContainsAny(suffix, "/\\\x00") {
		return ErrSuffixPathTraversal
	}
	return nil
}

// SuffixedPath inserts suffix before the extension of path:
// "notes/a.txt" with "typograf" gives "notes/a.typograf.txt".
// If dir is not empty, the result is placed in dir instead of next to path.
func SuffixedPath(path, suffix, dir string) (string, error) {
	if err := ValidateSuffix(suffix); err != nil {
		return "", err
	}

	base := filepath.Base(path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext) + "." + suffix + ext

	if dir == "" {
		dir = filepath.Dir(path)
	}
	return filepath.Join(dir, name), nil
}

// IsSuffixed reports whether path was produced by SuffixedPath with suffix.
func IsSuffixed(path, suffix string) bool {
	base := filepath.Base(path)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	return strings.HasSuffix(stem, "."+suffix)
}

// WriteFile writes content to path, creating parent directories as needed.
func WriteFile(path, content string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { // #nosec G306 -- output is a user document
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
