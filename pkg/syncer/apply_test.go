package syncer

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingkaihe/skillsync/pkg/paths"
	"github.com/jingkaihe/skillsync/pkg/render"
	"github.com/jingkaihe/skillsync/pkg/skill"
	"github.com/jingkaihe/skillsync/pkg/status"
	"github.com/jingkaihe/skillsync/pkg/tool"
)

// fsSource writes a real source skill under a temp dir and returns it.
func fsSource(t *testing.T, root, name, body string, modTime time.Time) *skill.Source {
	t.Helper()
	dir := filepath.Join(root, name)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	contents := skillContents(name, body)
	path := filepath.Join(dir, skill.FileName)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	return &skill.Source{
		Name:     name,
		Dir:      dir,
		Path:     path,
		Contents: contents,
		ModTime:  modTime,
	}
}

func readInstalled(t *testing.T, home string, tl tool.Tool, name string) string {
	t.Helper()
	path := filepath.Join(home, "."+tl.ID(), "skills", name, skill.FileName)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestApplyPushWritesRenderedContent(t *testing.T) {
	home := t.TempDir()
	sourceRoot := t.TempDir()
	applier := &Applier{Provider: paths.StaticProvider{Home: home, Cwd: t.TempDir()}}

	source := fsSource(t, sourceRoot, "alpha", "use {{.tool}} here", baseTime)
	plan := &Plan{
		Name:   "alpha",
		Source: source,
		Action: Action{Kind: Push, ToTools: []tool.Tool{tool.Claude, tool.Gemini}},
	}

	require.NoError(t, applier.Apply(plan))

	claudeCopy := readInstalled(t, home, tool.Claude, "alpha")
	assert.Contains(t, claudeCopy, "use claude here")

	geminiCopy := readInstalled(t, home, tool.Gemini, "alpha")
	assert.Contains(t, geminiCopy, "use gemini here")

	// Codex was not a push target.
	_, err := os.Stat(filepath.Join(home, ".codex", "skills", "alpha"))
	assert.True(t, os.IsNotExist(err))
}

func TestApplyPullOverwritesSourceVerbatim(t *testing.T) {
	home := t.TempDir()
	sourceRoot := t.TempDir()
	applier := &Applier{Provider: paths.StaticProvider{Home: home, Cwd: t.TempDir()}}

	source := fsSource(t, sourceRoot, "alpha", "stale body", baseTime.Add(-time.Hour))
	edited := skillContents("alpha", "edited inside codex")

	plan := &Plan{
		Name:   "alpha",
		Source: source,
		Action: Action{Kind: Pull, FromTool: tool.Codex},
	}
	plan.Differing[tool.Codex] = &skill.Installed{
		Name:     "alpha",
		Tool:     tool.Codex,
		Origin:   skill.OriginGlobal,
		Path:     "/tools/codex/alpha/SKILL.md",
		Contents: edited,
		ModTime:  baseTime,
	}

	require.NoError(t, applier.Apply(plan))

	data, err := os.ReadFile(source.Path)
	require.NoError(t, err)
	assert.Equal(t, edited, string(data))
}

func TestApplyPullAndPushUsesPulledContent(t *testing.T) {
	home := t.TempDir()
	sourceRoot := t.TempDir()
	applier := &Applier{Provider: paths.StaticProvider{Home: home, Cwd: t.TempDir()}}

	source := fsSource(t, sourceRoot, "alpha", "stale body", baseTime.Add(-time.Hour))
	edited := skillContents("alpha", "freshest copy from {{.tool}}")

	plan := &Plan{
		Name:   "alpha",
		Source: source,
		Action: Action{Kind: PullAndPush, FromTool: tool.Claude, ToTools: []tool.Tool{tool.Codex}},
	}
	plan.Differing[tool.Claude] = &skill.Installed{
		Name:     "alpha",
		Tool:     tool.Claude,
		Origin:   skill.OriginGlobal,
		Path:     "/tools/claude/alpha/SKILL.md",
		Contents: edited,
		ModTime:  baseTime,
	}

	require.NoError(t, applier.Apply(plan))

	// Source holds the pulled bytes verbatim, template placeholders intact.
	data, err := os.ReadFile(source.Path)
	require.NoError(t, err)
	assert.Equal(t, edited, string(data))

	// The push target received the pulled content rendered for it.
	codexCopy := readInstalled(t, home, tool.Codex, "alpha")
	assert.Contains(t, codexCopy, "freshest copy from codex")
}

func TestApplyPushIdempotent(t *testing.T) {
	home := t.TempDir()
	sourceRoot := t.TempDir()
	applier := &Applier{Provider: paths.StaticProvider{Home: home, Cwd: t.TempDir()}}

	source := fsSource(t, sourceRoot, "alpha", "body for {{.tool}}", baseTime)
	plan := &Plan{
		Name:   "alpha",
		Source: source,
		Action: Action{Kind: Push, ToTools: []tool.Tool{tool.Claude}},
	}

	require.NoError(t, applier.Apply(plan))
	first := readInstalled(t, home, tool.Claude, "alpha")

	require.NoError(t, applier.Apply(plan))
	second := readInstalled(t, home, tool.Claude, "alpha")

	assert.Equal(t, first, second)

	rendered, err := render.Render(source.Contents, tool.Claude)
	require.NoError(t, err)
	assert.True(t, status.Equal(rendered, second))
}

func TestValidatePulledRejectsBrokenFrontmatter(t *testing.T) {
	installed := &skill.Installed{
		Name:     "alpha",
		Tool:     tool.Claude,
		Path:     "/tools/claude/alpha/SKILL.md",
		Contents: "# frontmatter got deleted\n",
	}

	err := ValidatePulled(installed)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "refusing to pull")
}

func TestApplyPullRefusesInvalidContent(t *testing.T) {
	home := t.TempDir()
	sourceRoot := t.TempDir()
	applier := &Applier{Provider: paths.StaticProvider{Home: home, Cwd: t.TempDir()}}

	source := fsSource(t, sourceRoot, "alpha", "stale body", baseTime.Add(-time.Hour))
	original := source.Contents

	plan := &Plan{
		Name:   "alpha",
		Source: source,
		Action: Action{Kind: Pull, FromTool: tool.Gemini},
	}
	plan.Differing[tool.Gemini] = &skill.Installed{
		Name:     "alpha",
		Tool:     tool.Gemini,
		Path:     "/tools/gemini/alpha/SKILL.md",
		Contents: "no frontmatter anymore\n",
		ModTime:  baseTime,
	}

	require.Error(t, applier.Apply(plan))

	// Source file is untouched after the refused pull.
	data, err := os.ReadFile(source.Path)
	require.NoError(t, err)
	assert.Equal(t, original, string(data))
}
