package status

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jingkaihe/skillsync/pkg/catalog"
	"github.com/jingkaihe/skillsync/pkg/diagnostics"
	"github.com/jingkaihe/skillsync/pkg/render"
	"github.com/jingkaihe/skillsync/pkg/skill"
	"github.com/jingkaihe/skillsync/pkg/tool"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"crlf collapses", "a\r\nb\r\n", "a\nb"},
		{"bare cr collapses", "a\rb", "a\nb"},
		{"single trailing newline stripped", "a\n", "a"},
		{"only one trailing newline stripped", "a\n\n", "a\n"},
		{"interior newlines kept", "a\n\nb", "a\n\nb"},
		{"empty stays empty", "", ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Normalize(tc.input))
		})
	}
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal("a\r\nb\r\n", "a\nb"))
	assert.True(t, Equal("a\nb\n", "a\nb"))
	assert.False(t, Equal("a\nb", "a\nc"))
	assert.False(t, Equal("a\n\n\n", "a"))
}

func newCatalog() *catalog.Catalog {
	c := &catalog.Catalog{Sources: make(map[string]*skill.Source)}
	for _, tl := range tool.All() {
		c.Tools[tl] = make(map[string]*skill.Installed)
		c.Local[tl] = make(map[string]*skill.Installed)
	}
	return c
}

func sourceNamed(name, contents string) *skill.Source {
	return &skill.Source{
		Name:     name,
		Dir:      "/src/" + name,
		Path:     "/src/" + name + "/SKILL.md",
		Contents: contents,
		ModTime:  time.Now(),
	}
}

func installedNamed(name string, tl tool.Tool, contents string) *skill.Installed {
	return &skill.Installed{
		Name:     name,
		Tool:     tl,
		Origin:   skill.OriginGlobal,
		Dir:      "/tools/" + tl.ID() + "/" + name,
		Path:     "/tools/" + tl.ID() + "/" + name + "/SKILL.md",
		Contents: contents,
		ModTime:  time.Now(),
	}
}

func mustRender(t *testing.T, contents string, tl tool.Tool) string {
	t.Helper()
	rendered, err := render.Render(contents, tl)
	require.NoError(t, err)
	return rendered
}

func TestClassifyStates(t *testing.T) {
	c := newCatalog()
	sink := diagnostics.NewWithWriter(&bytes.Buffer{})

	contents := "---\nname: alpha\ndescription: a skill\n---\n\nWorks in {{.tool}}.\n"
	c.Sources["alpha"] = sourceNamed("alpha", contents)
	c.Tools[tool.Claude]["alpha"] = installedNamed("alpha", tool.Claude, mustRender(t, contents, tool.Claude))
	c.Tools[tool.Codex]["alpha"] = installedNamed("alpha", tool.Codex, "---\nname: alpha\ndescription: a skill\n---\n\nEdited by hand.\n")
	// Gemini has no copy at all.

	entries := Classify(c, sink)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "alpha", entry.Name)
	assert.Equal(t, Synced, entry.StateFor(tool.Claude))
	assert.Equal(t, Modified, entry.StateFor(tool.Codex))
	assert.Equal(t, Missing, entry.StateFor(tool.Gemini))
}

func TestClassifySyncedIgnoresLineEndings(t *testing.T) {
	c := newCatalog()
	sink := diagnostics.NewWithWriter(&bytes.Buffer{})

	contents := "---\nname: alpha\ndescription: a skill\n---\n\nPlain body.\n"
	crlf := "---\r\nname: alpha\r\ndescription: a skill\r\n---\r\n\r\nPlain body.\r\n"

	c.Sources["alpha"] = sourceNamed("alpha", contents)
	c.Tools[tool.Claude]["alpha"] = installedNamed("alpha", tool.Claude, crlf)

	entries := Classify(c, sink)
	require.Len(t, entries, 1)
	assert.Equal(t, Synced, entries[0].StateFor(tool.Claude))
}

func TestClassifyOrphan(t *testing.T) {
	c := newCatalog()
	sink := diagnostics.NewWithWriter(&bytes.Buffer{})

	c.Tools[tool.Gemini]["stray"] = installedNamed("stray", tool.Gemini, "---\nname: stray\ndescription: x\n---\n\nbody\n")

	entries := Classify(c, sink)
	require.Len(t, entries, 1)

	entry := entries[0]
	assert.Equal(t, "stray", entry.Name)
	assert.Equal(t, Orphan, entry.StateFor(tool.Gemini))
	// Tools without a copy of an orphan have no row at all.
	assert.Equal(t, Missing, entry.StateFor(tool.Claude))
}

func TestClassifyOrdering(t *testing.T) {
	c := newCatalog()
	sink := diagnostics.NewWithWriter(&bytes.Buffer{})

	for _, name := range []string{"Zeta", "alpha", "Beta"} {
		c.Sources[name] = sourceNamed(name, "---\nname: "+name+"\ndescription: x\n---\n\nbody\n")
	}

	entries := Classify(c, sink)
	require.Len(t, entries, 3)
	assert.Equal(t, "alpha", entries[0].Name)
	assert.Equal(t, "Beta", entries[1].Name)
	assert.Equal(t, "Zeta", entries[2].Name)
}

func TestClassifyRenderFailureDropsRow(t *testing.T) {
	c := newCatalog()
	sink := diagnostics.NewWithWriter(&bytes.Buffer{})

	broken := "---\nname: broken\ndescription: x\n---\n\n{{.unknown}}\n"
	c.Sources["broken"] = sourceNamed("broken", broken)
	c.Tools[tool.Claude]["broken"] = installedNamed("broken", tool.Claude, "whatever")
	c.Sources["fine"] = sourceNamed("fine", "---\nname: fine\ndescription: x\n---\n\nbody\n")

	entries := Classify(c, sink)
	require.Len(t, entries, 1)
	assert.Equal(t, "fine", entries[0].Name)
	assert.NotEmpty(t, sink.SkippedFiles())
}

func TestSyncStateString(t *testing.T) {
	assert.Equal(t, "synced", Synced.String())
	assert.Equal(t, "modified", Modified.String())
	assert.Equal(t, "missing", Missing.String())
	assert.Equal(t, "orphan", Orphan.String())
}
