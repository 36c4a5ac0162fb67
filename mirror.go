package mdmirror

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-mdmirror/internal/fileutil"
)

// Mirror copies the whole tree under source into destinationParent/<base of
// source> and returns that directory. The target directory may already
// exist; files already there are overwritten. Only file content is copied:
// permissions, timestamps and links are not preserved, and symlinked
// directories below source are not followed. A symlinked source itself is
// followed; the mirror keeps the link's name.
func Mirror(source, destinationParent string) (string, error) {
	info, err := os.Stat(source)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMirror, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrMirror, source)
	}
	root, err := filepath.EvalSymlinks(source)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMirror, err)
	}

	target := filepath.Join(destinationParent, filepath.Base(source))
	if isWithin(source, target) || isWithin(root, target) {
		return "", fmt.Errorf("%w: destination %s is inside source %s", ErrMirror, target, source)
	}
	if err := fileutil.EnsureDir(target); err != nil {
		return "", fmt.Errorf("%w: %w", ErrMirror, err)
	}

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if path == root {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		dst := filepath.Join(target, rel)

		if d.IsDir() {
			return fileutil.EnsureDir(dst)
		}

		if d.Type()&fs.ModeSymlink != 0 {
			linked, err := os.Stat(path)
			if err != nil {
				return err
			}
			if linked.IsDir() {
				return nil
			}
		}

		_, err = fileutil.CopyFile(path, dst)
		return err
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrMirror, err)
	}

	return target, nil
}

// isWithin reports whether path equals root or lies below it.
func isWithin(root, path string) bool {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return false
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	rel, err := filepath.Rel(absRoot, absPath)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
