package config

import (
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingkaihe/skillsync/pkg/paths"
)

func resetViper(t *testing.T) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)
}

func TestLoadNoSources(t *testing.T) {
	resetViper(t)
	provider := paths.StaticProvider{Home: "/home/alice", Cwd: "/work"}

	_, err := Load(provider)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no sources configured")
}

func TestLoadExpandsSources(t *testing.T) {
	resetViper(t)
	viper.Set("sources", []string{"~/skills", "/srv/shared-skills"})
	provider := paths.StaticProvider{Home: "/home/alice", Cwd: "/work"}

	cfg, err := Load(provider)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join("/home/alice", "skills"),
		"/srv/shared-skills",
	}, cfg.Sources)
}

func TestLoadRelativeSourceResolvesAgainstCwd(t *testing.T) {
	resetViper(t)
	viper.Set("sources", []string{"team-skills"})
	provider := paths.StaticProvider{Home: "/home/alice", Cwd: "/work"}

	cfg, err := Load(provider)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join("/work", "team-skills")}, cfg.Sources)
}

func TestLoadPreservesOrder(t *testing.T) {
	resetViper(t)
	viper.Set("sources", []string{"/b", "/a", "/c"})
	provider := paths.StaticProvider{Home: "/home/alice", Cwd: "/work"}

	cfg, err := Load(provider)
	require.NoError(t, err)
	assert.Equal(t, []string{"/b", "/a", "/c"}, cfg.Sources)
}
