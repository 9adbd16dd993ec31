// Package preflight refuses to scaffold over anything that already exists.
package preflight

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrTargetExists is returned when the target path is already taken.
var ErrTargetExists = errors.New("already exists")

// Resolve returns the absolute path of name relative to base.
func Resolve(base, name string) (string, error) {
	if filepath.IsAbs(name) {
		return filepath.Clean(name), nil
	}
	return filepath.Abs(filepath.Join(base, name))
}

// Check resolves name against base and fails if any file, directory or
// symlink is present there. It never touches the filesystem beyond Lstat.
func Check(base, name string) (string, error) {
	if name == "" {
		return "", errors.New("project name must not be empty")
	}
	target, err := Resolve(base, name)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", name, err)
	}

	_, err = os.Lstat(target)
	switch {
	case err == nil:
		return target, fmt.Errorf("%s %w", target, ErrTargetExists)
	case errors.Is(err, os.ErrNotExist):
		return target, nil
	default:
		return target, fmt.Errorf("checking %s: %w", target, err)
	}
}
