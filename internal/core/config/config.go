// Package config loads the user settings that shape how a project is
// scaffolded: which package manager to drive, how strictly to treat failing
// commands, and which dependency versions to pin.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/Masterminds/semver/v3"

	"github.com/nightconcept/tscli/internal/core/runner"
)

const (
	// FileName is the settings file looked up in the user config directory.
	FileName = "config.toml"
	// AppDir is the directory under the user config directory.
	AppDir = "tscli"

	DefaultPackageManager = "npm"
	DefaultPackageRunner  = "npx"
)

// distTag matches npm dist-tags such as "latest" or "next".
var distTag = regexp.MustCompile(`^[a-z][a-z0-9._-]*$`)

// Settings is the content of the tscli config.toml file.
type Settings struct {
	PackageManager string            `toml:"package_manager"`
	PackageRunner  string            `toml:"package_runner"`
	Strict         bool              `toml:"strict"`
	Versions       map[string]string `toml:"versions,omitempty"` // npm package -> semver constraint
}

// Default returns the settings used when no file is present.
func Default() *Settings {
	return &Settings{
		PackageManager: DefaultPackageManager,
		PackageRunner:  DefaultPackageRunner,
		Versions:       make(map[string]string),
	}
}

// DefaultPath returns <UserConfigDir>/tscli/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppDir, FileName), nil
}

// Load reads the settings file at path. A missing file yields Default().
func Load(path string) (*Settings, error) {
	s := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if s.PackageManager == "" {
		s.PackageManager = DefaultPackageManager
	}
	if s.PackageRunner == "" {
		s.PackageRunner = DefaultPackageRunner
	}
	if s.Versions == nil {
		s.Versions = make(map[string]string)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings in %s: %w", path, err)
	}
	return s, nil
}

// Validate checks every pinned version is an npm dist-tag or a semver
// constraint. Comma-joined constraints are accepted and rewritten by Spec.
func (s *Settings) Validate() error {
	names := make([]string, 0, len(s.Versions))
	for name := range s.Versions {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		v := strings.TrimSpace(s.Versions[name])
		if distTag.MatchString(v) {
			continue
		}
		if _, err := semver.NewConstraint(v); err != nil {
			return fmt.Errorf("version constraint %q for package %q: %w", s.Versions[name], name, err)
		}
	}
	return nil
}

// Mode maps Strict onto the command failure policy.
func (s *Settings) Mode() runner.FailureMode {
	if s.Strict {
		return runner.Propagate
	}
	return runner.Ignore
}

// Spec returns pkg, or pkg@constraint when a version is pinned for it.
// npm has no comma operator, so "a, b" becomes "a b".
func (s *Settings) Spec(pkg string) string {
	c := strings.Join(strings.Fields(strings.ReplaceAll(s.Versions[pkg], ",", " ")), " ")
	if c == "" {
		return pkg
	}
	return pkg + "@" + c
}

// InstallDev is "<pm> i <pkgs...> -D".
func (s *Settings) InstallDev(pkgs ...string) runner.Command {
	args := []string{"i"}
	for _, p := range pkgs {
		args = append(args, s.Spec(p))
	}
	args = append(args, "-D")
	return runner.NewCommand(s.PackageManager, args...)
}

// Init is "<pm> init -y".
func (s *Settings) Init() runner.Command {
	return runner.NewCommand(s.PackageManager, "init", "-y")
}

// Exec runs a package binary through the package runner, e.g. "npx tsc --init".
func (s *Settings) Exec(args ...string) runner.Command {
	return runner.NewCommand(s.PackageRunner, args...)
}

// RunScript renders the shell text that runs a manifest script.
func (s *Settings) RunScript(script string) string {
	return s.PackageManager + " run " + script
}
