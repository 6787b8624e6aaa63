package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ResolveStartDir normalizes a caller-supplied target into the absolute
// directory the config walk starts from.
//
// Empty target means the process working directory. An existing directory is
// used as-is; an existing file yields its parent. A path that does not exist
// yet also yields its parent, so callers may point at files they are about to
// create.
func ResolveStartDir(target string) (string, error) {
	if target == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve working directory: %w", err)
		}
		return wd, nil
	}

	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolve start dir %q: %w", target, err)
	}

	info, err := os.Stat(abs)
	if err == nil && info.IsDir() {
		return abs, nil
	}
	return filepath.Dir(abs), nil
}

// FindConfigPath walks from startDir toward the filesystem root and returns
// the path of the nearest gambit.toml, or false if no ancestor has one.
//
// A stat failure on a candidate is indistinguishable from the file being
// absent; the walk just continues. OS-level error codes are deliberately
// collapsed here.
func FindConfigPath(startDir string) (string, bool) {
	dir := startDir
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}
