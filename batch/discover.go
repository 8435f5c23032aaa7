// Package batch discovers PDF files under a directory tree for
// directory-mode processing, keeping discovery logic separate from the
// tagging pipeline.
package batch

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Discover walks root and returns the PDF files underneath it in walk
// order, deduplicated. Hidden directories are not descended into, and
// files that look like our own enhanced outputs are skipped so reruns
// do not process them again.
func Discover(root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", root)
	}

	q := NewQueue()
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && IsHidden(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if IsHidden(d.Name()) || !IsPDF(path) || IsDerived(path) {
			return nil
		}
		q.Add(path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return q.All(), nil
}
