package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// skipDirs are build and dependency directories never worth linting.
var skipDirs = map[string]bool{
	"deps":         true,
	"_build":       true,
	"node_modules": true,
	"cover":        true,
}

// Discover lists files under root with one of exts, sorted by path.
// Hidden directories and skipDirs are not entered. A root that is a
// regular file is returned as-is.
func Discover(root string, exts []string) ([]string, error) {
	st, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat %q: %w", root, err)
	}
	if !st.IsDir() {
		return []string{root}, nil
	}

	var out []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		name := d.Name()
		if d.IsDir() {
			if path != root && (skipDirs[name] || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		if hasExt(name, exts) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %q: %w", root, err)
	}
	slices.Sort(out)
	return out, nil
}

func hasExt(name string, exts []string) bool {
	ext := filepath.Ext(name)
	return ext != "" && slices.Contains(exts, ext)
}
