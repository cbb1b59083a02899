package tool

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingkaihe/skillsync/pkg/paths"
)

func TestParseRoundTrip(t *testing.T) {
	for _, tl := range All() {
		parsed, err := Parse(tl.ID())
		require.NoError(t, err)
		assert.Equal(t, tl, parsed)
	}
}

func TestParseUnknown(t *testing.T) {
	_, err := Parse("cursor")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown tool")
}

func TestSkillsDir(t *testing.T) {
	provider := paths.StaticProvider{Home: "/home/alice", Cwd: "/work"}

	dir, err := Claude.SkillsDir(provider)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/alice", ".claude", "skills"), dir)

	dir, err = Codex.SkillsDir(provider)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/alice", ".codex", "skills"), dir)
}

func TestSkillsDirHomeFailure(t *testing.T) {
	provider := paths.StaticProvider{Cwd: "/work"}

	_, err := Gemini.SkillsDir(provider)
	assert.Error(t, err)
}

func TestLocalSkillsDir(t *testing.T) {
	assert.Equal(t, filepath.Join("/proj", ".gemini", "skills"), Gemini.LocalSkillsDir("/proj"))
}

func TestAllMatchesCount(t *testing.T) {
	assert.Len(t, All(), int(Count))
}
