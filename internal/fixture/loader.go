package fixture

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Load reads and parses one transcript file.
//
// The fixture name is the file's base name without extension. A read failure
// is a real error (the caller asked for this specific file); everything past
// the read degrades to a skip per the Parse contract.
func Load(path string) (Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Result{}, fmt.Errorf("failed to read fixture file: %w", err)
	}

	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))
	return Parse(name, path, data), nil
}

// Discover finds transcript files in the named category subdirectories of
// root, sorted by path. Categories that do not exist are skipped silently so
// a fixture corpus can omit whole categories.
func Discover(root string, categories []string) ([]string, error) {
	var files []string
	for _, category := range categories {
		dir := filepath.Join(root, strings.TrimSpace(category))
		entries, err := os.ReadDir(dir)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fmt.Errorf("failed to read category %s: %w", category, err)
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			ext := filepath.Ext(entry.Name())
			if ext != ".yaml" && ext != ".yml" {
				continue
			}
			files = append(files, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}
