// Package paths abstracts access to the process environment (home directory,
// working directory) behind an injectable provider so the sync engine can be
// exercised against temporary directories in tests. It also carries the path
// expansion and display helpers shared by config loading and CLI output.
package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Provider resolves the ambient directories the engine depends on.
type Provider interface {
	// HomeDir returns the current user's home directory.
	HomeDir() (string, error)
	// WorkingDir returns the current working directory.
	WorkingDir() (string, error)
}

// OSProvider resolves directories from the real process environment.
type OSProvider struct{}

// HomeDir returns the user's home directory.
func (OSProvider) HomeDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}
	return home, nil
}

// WorkingDir returns the current working directory.
func (OSProvider) WorkingDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", errors.Wrap(err, "failed to get current working directory")
	}
	return cwd, nil
}

// StaticProvider returns fixed directories. Used by tests to root the engine
// in a temporary directory.
type StaticProvider struct {
	Home string
	Cwd  string
}

// HomeDir returns the fixed home directory.
func (p StaticProvider) HomeDir() (string, error) {
	if p.Home == "" {
		return "", errors.New("home directory not set")
	}
	return p.Home, nil
}

// WorkingDir returns the fixed working directory.
func (p StaticProvider) WorkingDir() (string, error) {
	if p.Cwd == "" {
		return "", errors.New("working directory not set")
	}
	return p.Cwd, nil
}

// Expand resolves a config-provided path: environment variables and a leading
// tilde are expanded, and relative paths are resolved against baseDir.
func Expand(provider Provider, raw string, baseDir string) (string, error) {
	expanded := os.ExpandEnv(raw)

	if expanded == "~" || strings.HasPrefix(expanded, "~/") || strings.HasPrefix(expanded, "~"+string(filepath.Separator)) {
		home, err := provider.HomeDir()
		if err != nil {
			return "", errors.Wrapf(err, "failed to expand path %q", raw)
		}
		expanded = filepath.Join(home, strings.TrimPrefix(expanded[1:], string(filepath.Separator)))
	}

	if !filepath.IsAbs(expanded) {
		expanded = filepath.Join(baseDir, expanded)
	}

	return filepath.Clean(expanded), nil
}

// Display renders a path for user output, abbreviating the home directory to
// a tilde when possible.
func Display(provider Provider, path string) string {
	home, err := provider.HomeDir()
	if err != nil || home == "" {
		return path
	}

	rel, err := filepath.Rel(home, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	if rel == "." {
		return "~"
	}
	return filepath.Join("~", rel)
}
