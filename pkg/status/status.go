// Package status classifies every (skill, tool) pair into one of four sync
// states by comparing the rendered source template with the installed copy.
package status

import (
	"sort"
	"strings"

	"github.com/jingkaihe/skillsync/pkg/catalog"
	"github.com/jingkaihe/skillsync/pkg/diagnostics"
	"github.com/jingkaihe/skillsync/pkg/render"
	"github.com/jingkaihe/skillsync/pkg/tool"
)

// SyncState describes one tool's copy of a skill relative to source.
type SyncState int

const (
	// Synced means the installed copy equals the rendered source.
	Synced SyncState = iota
	// Modified means the installed copy differs from the rendered source.
	Modified
	// Missing means a source exists but no installed copy does.
	Missing
	// Orphan means an installed copy exists without a source skill.
	Orphan
)

// String returns the lowercase state label used in CLI output.
func (s SyncState) String() string {
	switch s {
	case Synced:
		return "synced"
	case Modified:
		return "modified"
	case Missing:
		return "missing"
	case Orphan:
		return "orphan"
	default:
		return "unknown"
	}
}

// ToolStatus pairs a tool with its sync state for one skill.
type ToolStatus struct {
	Tool  tool.Tool
	State SyncState
}

// SkillEntry is one classified row: a skill name and the state of every tool
// that has a source or installed copy of it.
type SkillEntry struct {
	Name     string
	Statuses []ToolStatus
}

// StateFor returns the entry's state for a tool, defaulting to Missing when
// the tool has no row.
func (e *SkillEntry) StateFor(t tool.Tool) SyncState {
	for _, status := range e.Statuses {
		if status.Tool == t {
			return status.State
		}
	}
	return Missing
}

// Classify computes a SkillEntry for every skill known to the catalog. A
// render failure drops the whole skill row (with a diagnostic) so a partially
// rendered row is never displayed. Entries are ordered case-insensitively by
// name, stable in discovery order.
func Classify(c *catalog.Catalog, sink *diagnostics.Sink) []SkillEntry {
	names := collectNames(c)

	type indexed struct {
		index int
		entry SkillEntry
	}
	var entries []indexed

	for index, name := range names {
		source := c.Sources[name]
		var statuses []ToolStatus
		skip := false

		for _, t := range tool.All() {
			installed := c.Tools[t][name]
			var state SyncState
			switch {
			case source != nil && installed != nil:
				rendered, err := render.Render(source.Contents, t)
				if err != nil {
					sink.Skip(source.Path, err.Error())
					skip = true
				} else if Equal(rendered, installed.Contents) {
					state = Synced
				} else {
					state = Modified
				}
			case source != nil:
				state = Missing
			case installed != nil:
				state = Orphan
			default:
				continue
			}
			if skip {
				break
			}
			statuses = append(statuses, ToolStatus{Tool: t, State: state})
		}

		if skip {
			continue
		}

		entries = append(entries, indexed{index: index, entry: SkillEntry{Name: name, Statuses: statuses}})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		left := strings.ToLower(entries[i].entry.Name)
		right := strings.ToLower(entries[j].entry.Name)
		if left != right {
			return left < right
		}
		return entries[i].index < entries[j].index
	})

	result := make([]SkillEntry, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.entry)
	}
	return result
}

// Normalize prepares contents for comparison: CRLF and bare CR collapse to
// LF, and at most one trailing newline is stripped. Comparisons are
// otherwise byte-exact.
func Normalize(contents string) string {
	normalized := strings.ReplaceAll(contents, "\r\n", "\n")
	normalized = strings.ReplaceAll(normalized, "\r", "\n")
	normalized = strings.TrimSuffix(normalized, "\n")
	return normalized
}

// Equal reports whether two skill contents match after normalization.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// collectNames returns the union of skill names: source names first, then
// newly seen tool names, each group sorted.
func collectNames(c *catalog.Catalog) []string {
	seen := make(map[string]bool)
	var names []string

	sourceNames := make([]string, 0, len(c.Sources))
	for name := range c.Sources {
		sourceNames = append(sourceNames, name)
	}
	sort.Strings(sourceNames)
	for _, name := range sourceNames {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	var toolNames []string
	for _, t := range tool.All() {
		for name := range c.Tools[t] {
			toolNames = append(toolNames, name)
		}
	}
	sort.Strings(toolNames)
	for _, name := range toolNames {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	return names
}
