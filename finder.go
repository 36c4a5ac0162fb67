package mdmirror

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// FindDocuments walks root and returns the absolute path of every regular
// file whose extension matches extension exactly ("md" and ".md" are
// equivalent; "MD" is a different extension). Paths come back in walk order.
func FindDocuments(root, extension string) ([]string, error) {
	ext, err := NormalizeExtension(extension)
	if err != nil {
		return nil, err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscovery, err)
	}

	var docs []string
	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return fmt.Errorf("scanning %s: %w", path, walkErr)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if filepath.Ext(path) == ext {
			docs = append(docs, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDiscovery, err)
	}

	return docs, nil
}
