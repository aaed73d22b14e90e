// Package fsutil walks the filesystem for input documents and, for
// --batch processing, dispatches them across a bounded worker pool.
package fsutil

import (
	"io/fs"
	"path/filepath"
	"strings"
)

var skipDirs = map[string]bool{
	".git":        true,
	".svn":        true,
	".hg":         true,
	"node_modules": true,
	"__pycache__":  true,
	".cache":       true,
}

func shouldSkipDir(name string) bool {
	return skipDirs[name] || strings.HasPrefix(name, ".")
}

// FindPDFs walks rootPath (recursively if recursive is true) and returns
// every file with a .pdf extension (case-insensitive), in the lexical order
// in which filepath.WalkDir visits them.
func FindPDFs(rootPath string, recursive bool) ([]string, error) {
	var files []string
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path == rootPath {
				return nil
			}
			if !recursive {
				return filepath.SkipDir
			}
			if shouldSkipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
