package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ConfigFileName is the project configuration looked up by Find.
const ConfigFileName = "pipebind.toml"

// Find returns the nearest pipebind.toml at or above start. start may be a
// file; the search then begins in its directory. ok is false when the
// filesystem root is reached without a match.
func Find(start string) (path string, ok bool, err error) {
	dir, err := searchStart(start)
	if err != nil {
		return "", false, err
	}
	for {
		path = filepath.Join(dir, ConfigFileName)
		switch _, err := os.Stat(path); {
		case err == nil:
			return path, true, nil
		case !errors.Is(err, fs.ErrNotExist):
			return "", false, fmt.Errorf("failed to stat %q: %w", path, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false, nil
		}
		dir = parent
	}
}

func searchStart(start string) (string, error) {
	if start == "" {
		start = "."
	}
	abs, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %q: %w", start, err)
	}
	if st, err := os.Stat(abs); err == nil && !st.IsDir() {
		return filepath.Dir(abs), nil
	}
	return abs, nil
}

// Root is the directory holding the config file, or "" for defaults.
func (c *Config) Root() string {
	if c.Path == "" {
		return ""
	}
	return filepath.Dir(c.Path)
}

// Resolve makes a path from the config file absolute against Root.
// Paths are left alone when already absolute or when no file was loaded.
func (c *Config) Resolve(p string) string {
	if p == "" || filepath.IsAbs(p) || c.Path == "" {
		return p
	}
	return filepath.Join(c.Root(), p)
}
