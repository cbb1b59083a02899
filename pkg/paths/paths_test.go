package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpandTilde(t *testing.T) {
	provider := StaticProvider{Home: "/home/alice", Cwd: "/work"}

	expanded, err := Expand(provider, "~/skills", "/base")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/alice", "skills"), expanded)
}

func TestExpandBareTilde(t *testing.T) {
	provider := StaticProvider{Home: "/home/alice", Cwd: "/work"}

	expanded, err := Expand(provider, "~", "/base")
	require.NoError(t, err)
	assert.Equal(t, "/home/alice", expanded)
}

func TestExpandRelativeResolvesAgainstBase(t *testing.T) {
	provider := StaticProvider{Home: "/home/alice", Cwd: "/work"}

	expanded, err := Expand(provider, "skills", "/base")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/base", "skills"), expanded)
}

func TestExpandAbsoluteUntouched(t *testing.T) {
	provider := StaticProvider{Home: "/home/alice", Cwd: "/work"}

	expanded, err := Expand(provider, "/srv/skills", "/base")
	require.NoError(t, err)
	assert.Equal(t, "/srv/skills", expanded)
}

func TestExpandEnvironmentVariables(t *testing.T) {
	t.Setenv("SKILL_ROOT", "/srv/skills")
	provider := StaticProvider{Home: "/home/alice", Cwd: "/work"}

	expanded, err := Expand(provider, "$SKILL_ROOT/extra", "/base")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/srv/skills", "extra"), expanded)
}

func TestExpandCleansPath(t *testing.T) {
	provider := StaticProvider{Home: "/home/alice", Cwd: "/work"}

	expanded, err := Expand(provider, "/srv/skills/../other", "/base")
	require.NoError(t, err)
	assert.Equal(t, "/srv/other", expanded)
}

func TestDisplayAbbreviatesHome(t *testing.T) {
	provider := StaticProvider{Home: "/home/alice", Cwd: "/work"}

	assert.Equal(t, filepath.Join("~", "skills"), Display(provider, "/home/alice/skills"))
	assert.Equal(t, "~", Display(provider, "/home/alice"))
	assert.Equal(t, "/srv/skills", Display(provider, "/srv/skills"))
}

func TestStaticProviderRequiresValues(t *testing.T) {
	provider := StaticProvider{}

	_, err := provider.HomeDir()
	assert.Error(t, err)

	_, err = provider.WorkingDir()
	assert.Error(t, err)
}

func TestOSProviderResolves(t *testing.T) {
	provider := OSProvider{}

	home, err := provider.HomeDir()
	require.NoError(t, err)
	assert.NotEmpty(t, home)

	cwd, err := provider.WorkingDir()
	require.NoError(t, err)
	assert.NotEmpty(t, cwd)
}
