// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindFilesByExtension searches each of the given paths for files ending
// with extension. A path naming a file is returned as-is when it matches;
// a directory is walked recursively. Directories the Go tool ignores
// (names starting with "." or "_", and "testdata") are skipped, as are
// files whose name ends with one of skipSuffixes. The result is sorted and
// free of duplicates.
func FindFilesByExtension(paths []string, extension string, skipSuffixes ...string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		name := filepath.Base(path)
		if !strings.HasSuffix(name, extension) {
			return
		}
		for _, suffix := range skipSuffixes {
			if strings.HasSuffix(name, suffix) {
				return
			}
		}
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", root, err)
		}
		if !info.IsDir() {
			add(filepath.Clean(root))
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDir(d.Name()) {
					return filepath.SkipDir
				}
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func skipDir(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_") || name == "testdata" || name == "vendor"
}
