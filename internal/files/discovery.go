package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"datacheck/internal/loader"
)

// Discover resolves an input path to the list of files to check. A file path
// is returned as-is; a directory is scanned non-recursively for supported
// files, skipping subdirectories and Excel lock files (~$ prefix). Results
// are sorted by name so runs over the same directory are repeatable.
func Discover(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", path, err)
	}

	var inputs []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, "~$") || !loader.Supported(name) {
			continue
		}
		inputs = append(inputs, filepath.Join(path, name))
	}
	sort.Strings(inputs)
	return inputs, nil
}
