package utils

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// SourceExtensions are the file extensions recognised as resource information files.
var SourceExtensions = []string{".json", ".yaml", ".yml"}

// IsSourceFile reports whether path has a resource information extension.
func IsSourceFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, known := range SourceExtensions {
		if ext == known {
			return true
		}
	}
	return false
}

// FindSourceFiles recursively finds all resource information files in dir,
// sorted by path so repeated loads merge in the same order.
func FindSourceFiles(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Skip hidden directories such as .git
		if d.IsDir() {
			if path != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}

		if IsSourceFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// ExpandSources replaces every directory in paths with the resource
// information files it contains. Files and paths that do not exist are
// kept as given; loading them reports the problem.
func ExpandSources(paths []string) ([]string, error) {
	var expanded []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil || !info.IsDir() {
			expanded = append(expanded, path)
			continue
		}

		files, err := FindSourceFiles(path)
		if err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", path, err)
		}
		expanded = append(expanded, files...)
	}
	return expanded, nil
}
