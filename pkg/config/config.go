// Package config resolves the configured skill source directories. Sources
// are read from viper (config file or SKILLSYNC_* environment), expanded, and
// validated; a run with no configured sources is a configuration error and
// aborts before any catalog load.
package config

import (
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"

	"github.com/jingkaihe/skillsync/pkg/paths"
)

// Config carries the ordered list of configured source directories.
type Config struct {
	Sources []string
}

// Load reads the source list from viper and expands each entry. Relative
// paths resolve against the config file's directory when a config file was
// used, otherwise against the working directory.
func Load(provider paths.Provider) (*Config, error) {
	raw := viper.GetStringSlice("sources")
	if len(raw) == 0 {
		return nil, errors.New("no sources configured; run 'skillsync init' or add source directories to the config")
	}

	baseDir := "."
	if file := viper.ConfigFileUsed(); file != "" {
		baseDir = filepath.Dir(file)
	} else if cwd, err := provider.WorkingDir(); err == nil {
		baseDir = cwd
	}

	sources := make([]string, 0, len(raw))
	for _, entry := range raw {
		expanded, err := paths.Expand(provider, entry, baseDir)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid source path %q", entry)
		}
		sources = append(sources, expanded)
	}

	return &Config{Sources: sources}, nil
}
