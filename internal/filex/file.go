// Package filex holds small filesystem helpers.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates base/sub (with parents) when missing and returns its
// absolute path. A relative base is resolved against the working directory.
func EnsureDir(base, sub string) (string, error) {
	dir, err := filepath.Abs(filepath.Join(base, sub))
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", base, err)
	}

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}

// RemoveIfExists deletes path, treating a missing file as success.
func RemoveIfExists(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
