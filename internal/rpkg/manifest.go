package rpkg

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// ManifestContent renders the package list as file content, one name per
// line with a trailing newline. A zero-length list renders empty.
func ManifestContent(packages []string) []byte {
	if len(packages) == 0 {
		return nil
	}
	return []byte(strings.Join(packages, "\n") + "\n")
}

// WriteManifest writes the package list to path, one name per line with a
// trailing newline. A zero-length list writes an empty file.
func WriteManifest(path string, packages []string) error {
	if err := os.WriteFile(path, ManifestContent(packages), 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// RemoveManifest deletes the manifest at path if it exists. The bool
// reports whether a file was actually removed; a missing file is not an
// error.
func RemoveManifest(path string) (bool, error) {
	err := os.Remove(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, fmt.Errorf("failed to remove manifest: %w", err)
}
