// Package validation checks command-line paths before any work starts.
package validation

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"syscall"
)

// InputFile checks that path names an existing regular file. The returned
// error wraps the os error, so os.ErrNotExist stays detectable.
func InputFile(path string) error {
	if path == "" {
		return fmt.Errorf("path is empty")
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("cannot access %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s is not a regular file", path)
	}
	return nil
}

// OutputFile checks that path can be written as a file: it is not a directory
// and no ancestor is an existing non-directory. Missing parents are fine.
func OutputFile(path string) error {
	if path == "" {
		return fmt.Errorf("path is empty")
	}
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}

	for dir := filepath.Dir(path); ; dir = filepath.Dir(dir) {
		info, err := os.Stat(dir)
		if err == nil {
			if !info.IsDir() {
				return fmt.Errorf("%s is not a directory", dir)
			}
			return nil
		}
		if !os.IsNotExist(err) && !errors.Is(err, syscall.ENOTDIR) {
			return fmt.Errorf("cannot access %s: %w", dir, err)
		}
		if parent := filepath.Dir(dir); parent == dir {
			return nil
		}
	}
}
