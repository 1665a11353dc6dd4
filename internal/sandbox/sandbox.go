// Package sandbox keeps config-relative paths inside the directory the
// config was loaded from.
package sandbox

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned for paths that resolve outside their root.
var ErrOutsideRoot = errors.New("path is outside the root")

// Resolve joins a relative path to root and returns its real absolute path.
// Symlinks are followed as far as the path exists, so neither ".." nor a
// link can lead out of root. Absolute paths are returned cleaned and are not
// checked.
func Resolve(root, path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root %s: %w", root, err)
	}
	realRoot, err := filepath.EvalSymlinks(absRoot)
	if err != nil {
		return "", fmt.Errorf("resolving root %s: %w", root, err)
	}

	resolved := evalExisting(filepath.Join(realRoot, path))
	if !Within(realRoot, resolved) {
		return "", fmt.Errorf("'%s' resolves to %s: %w %s", path, resolved, ErrOutsideRoot, realRoot)
	}
	return resolved, nil
}

// Within reports whether path is root or below it. Both must be clean
// absolute paths.
func Within(root, path string) bool {
	return path == root || strings.HasPrefix(path, root+string(filepath.Separator))
}

// evalExisting resolves symlinks in the longest existing prefix of path and
// appends the rest unchanged.
func evalExisting(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	dir := filepath.Dir(path)
	if dir == path {
		return path
	}
	return filepath.Join(evalExisting(dir), filepath.Base(path))
}
