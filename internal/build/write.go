package build

import (
	"fmt"
	"os"
	"path/filepath"
)

// BackupPath returns the sibling backup file for path.
func BackupPath(path string) string {
	return path + ".bak"
}

// writeFileAtomic writes data to path+".tmp" and renames it over path.
func writeFileAtomic(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	tmp := path + ".tmp"
	// #nosec G306 -- published site files are world-readable
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("rename temp file: %w", err)
	}
	return nil
}

// WriteFileAtomic is the exported form used by other commands that publish
// files next to the site document.
func WriteFileAtomic(path string, data []byte) error {
	return writeFileAtomic(path, data)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
