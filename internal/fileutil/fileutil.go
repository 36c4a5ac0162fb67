// Package fileutil provides file and path helpers shared by the mirror and
// the artifact placement steps.
package fileutil

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Permissions for everything the tool creates.
const (
	DirPermissions  = 0o750 // rwxr-x---: owner full, group read+execute
	FilePermissions = 0o644 // rw-r--r--: owner read+write, others read
)

// ErrNotRegular is returned when a copy source is not a regular file.
var ErrNotRegular = errors.New("not a regular file")

// CopyFile copies the bytes of src to dst, truncating any existing file.
// When dst is an existing directory the file is placed inside it under
// src's base name. Returns the path actually written.
func CopyFile(src, dst string) (string, error) {
	if DirExists(dst) {
		dst = filepath.Join(dst, filepath.Base(src))
	}

	in, err := os.Open(src) // #nosec G304 -- paths come from a tree walk
	if err != nil {
		return "", err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return "", err
	}
	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrNotRegular, src)
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, FilePermissions) // #nosec G304
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("copying %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", dst, err)
	}
	return dst, nil
}

// EnsureDir creates dir if absent. An existing directory is not an error.
func EnsureDir(dir string) error {
	err := os.Mkdir(dir, DirPermissions)
	if err == nil {
		return nil
	}
	if errors.Is(err, os.ErrExist) && DirExists(dir) {
		return nil
	}
	return err
}

// FileExists returns true if the path exists and is not a directory.
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
//   - "github-light" -> false (name)
//   - "./custom.yaml" -> true (relative path)
//   - "/etc/mdmirror.toml" -> true (absolute)
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// IsWritableDir reports whether a file can be created in dir.
func IsWritableDir(dir string) bool {
	f, err := os.CreateTemp(dir, ".mdmirror-probe-*")
	if err != nil {
		return false
	}
	name := f.Name()
	_ = f.Close()
	_ = os.Remove(name)
	return true
}
