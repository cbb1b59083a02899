// Package catalog builds the in-memory view of every known skill: canonical
// sources, per-tool global installs, and per-tool project-local copies. The
// catalog is rebuilt from the filesystem on every command invocation and
// holds no state between runs.
//
// Directory enumeration is explicitly sorted by entry name so "first seen
// wins" conflict resolution is reproducible across platforms and filesystem
// implementations.
package catalog

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/jingkaihe/skillsync/pkg/diagnostics"
	"github.com/jingkaihe/skillsync/pkg/paths"
	"github.com/jingkaihe/skillsync/pkg/skill"
	"github.com/jingkaihe/skillsync/pkg/tool"
)

// Conflict records a skill name found in more than one source root. The
// first path is the winning skill directory; the rest were ignored.
type Conflict struct {
	Name  string
	Paths []string
}

// Catalog indexes all loaded skills by name. Tool-keyed indexes are
// fixed-size tables over the closed tool enumeration.
type Catalog struct {
	// Sources maps skill name to the winning source skill.
	Sources map[string]*skill.Source
	// Conflicts lists names that appeared in multiple source roots.
	Conflicts []Conflict
	// Tools holds each tool's global install index.
	Tools [tool.Count]map[string]*skill.Installed
	// Local holds each tool's project-local index.
	Local [tool.Count]map[string]*skill.Installed
}

// Load scans the configured source roots and every tool's global and local
// directories. Individual failures are reported on the sink; Load itself
// never fails.
func Load(sources []string, provider paths.Provider, sink *diagnostics.Sink) *Catalog {
	c := &Catalog{Sources: make(map[string]*skill.Source)}
	for _, t := range tool.All() {
		c.Tools[t] = make(map[string]*skill.Installed)
		c.Local[t] = make(map[string]*skill.Installed)
	}

	c.loadSources(sources, sink)
	c.loadTools(provider, sink)
	c.loadLocal(provider, sink)
	return c
}

// Global returns the named skill from the tool's global index, or nil.
func (c *Catalog) Global(t tool.Tool, name string) *skill.Installed {
	return c.Tools[t][name]
}

// HasSkill reports whether any index knows the given name.
func (c *Catalog) HasSkill(name string) bool {
	if _, ok := c.Sources[name]; ok {
		return true
	}
	for _, t := range tool.All() {
		if _, ok := c.Tools[t][name]; ok {
			return true
		}
		if _, ok := c.Local[t][name]; ok {
			return true
		}
	}
	return false
}

func (c *Catalog) loadSources(sources []string, sink *diagnostics.Sink) {
	conflicts := make(map[string][]string)
	var conflictOrder []string

	for _, root := range sources {
		entries := readSourceDir(root, sink)
		for _, entry := range entries {
			skillDir := filepath.Join(root, entry)
			loaded := skill.LoadSource(root, skillDir, sink)
			if loaded == nil {
				continue
			}

			if existing, ok := c.Sources[loaded.Name]; ok {
				if _, seen := conflicts[loaded.Name]; !seen {
					conflicts[loaded.Name] = []string{existing.Dir}
					conflictOrder = append(conflictOrder, loaded.Name)
				}
				conflicts[loaded.Name] = append(conflicts[loaded.Name], loaded.Dir)
				continue
			}

			c.Sources[loaded.Name] = loaded
		}
	}

	for _, name := range conflictOrder {
		c.Conflicts = append(c.Conflicts, Conflict{Name: name, Paths: conflicts[name]})
		winner := c.Sources[name]
		sink.Warn("skill %q exists in multiple sources, using %s", name, winner.SourceRoot)
		for _, path := range conflicts[name][1:] {
			sink.Note("  - %s", path)
		}
	}
}

func (c *Catalog) loadTools(provider paths.Provider, sink *diagnostics.Sink) {
	for _, t := range tool.All() {
		dir, err := t.SkillsDir(provider)
		if err != nil {
			sink.Warn("%s", err.Error())
			continue
		}

		for _, entry := range readToolDir(dir, sink) {
			skillDir := filepath.Join(dir, entry)
			loaded := skill.LoadInstalled(skillDir, t, skill.OriginGlobal, sink)
			if loaded == nil {
				continue
			}
			if _, exists := c.Tools[t][loaded.Name]; !exists {
				c.Tools[t][loaded.Name] = loaded
			}
		}
	}
}

func (c *Catalog) loadLocal(provider paths.Provider, sink *diagnostics.Sink) {
	cwd, err := provider.WorkingDir()
	if err != nil {
		sink.Warn("failed to get current directory: %s", err.Error())
		return
	}

	for _, t := range tool.All() {
		dir := t.LocalSkillsDir(cwd)
		// A missing local directory is the common case, not a warning.
		for _, entry := range readQuietDir(dir) {
			skillDir := filepath.Join(dir, entry)
			loaded := skill.LoadInstalled(skillDir, t, skill.OriginLocal, sink)
			if loaded == nil {
				continue
			}
			if _, exists := c.Local[t][loaded.Name]; !exists {
				c.Local[t][loaded.Name] = loaded
			}
		}
	}
}

// readSourceDir enumerates a source root. Source roots are expected to
// exist, so absence is a warning.
func readSourceDir(path string, sink *diagnostics.Sink) []string {
	entries, err := os.ReadDir(path)
	if err != nil {
		if os.IsNotExist(err) {
			sink.Warn("source directory not found: %s", path)
		} else {
			sink.Warn("failed to read directory %s: %s", path, err.Error())
		}
		return nil
	}
	return sortedDirNames(entries)
}

// readToolDir enumerates a tool's global skills directory. A missing
// directory just means nothing is installed.
func readToolDir(path string, sink *diagnostics.Sink) []string {
	entries, err := os.ReadDir(path)
	if err != nil {
		if !os.IsNotExist(err) {
			sink.Warn("failed to read directory %s: %s", path, err.Error())
		}
		return nil
	}
	return sortedDirNames(entries)
}

// readQuietDir enumerates a directory, treating every failure as empty.
func readQuietDir(path string) []string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil
	}
	return sortedDirNames(entries)
}

// sortedDirNames returns entry names in lexicographic order. Non-directories
// fall out naturally later: directories without a SKILL.md load as nothing,
// and stat-based loading follows symlinked skill directories.
func sortedDirNames(entries []os.DirEntry) []string {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names
}
