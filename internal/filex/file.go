package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureParentDir creates the parent directory of path (mode 0770) if it
// does not exist yet and returns the cleaned path. A path without a
// directory component is returned as is.
func EnsureParentDir(path string) (string, error) {
	path = filepath.Clean(path)

	dir := filepath.Dir(path)
	if dir == "." {
		return path, nil
	}

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return path, nil
}
