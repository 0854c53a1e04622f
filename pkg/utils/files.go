package utils

import (
	"os"
	"path/filepath"
)

// MakeDir creates a directory with all parent directories
func MakeDir(path string) error {
	return os.MkdirAll(path, 0755)
}

// EnsureParentDir creates the directory that will hold path. Paths in the
// working directory and in-memory DSNs need nothing.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" || path == ":memory:" {
		return nil
	}
	return MakeDir(dir)
}
