package path

import (
	"fmt"
	"os"
	"path/filepath"
)

// FindRoot walks up from startDir and returns the first directory holding
// targetName, a directory when isDir is set and a regular file otherwise.
func FindRoot(startDir, targetName string, isDir bool) (string, error) {
	for dir := startDir; ; {
		info, err := os.Stat(filepath.Join(dir, targetName))
		if err == nil && info.IsDir() == isDir {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("could not find %s starting from %s", targetName, startDir)
		}
		dir = parent
	}
}
