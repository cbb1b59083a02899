// Package tool defines the closed set of consumer tools that skills are
// distributed to, along with their directory conventions. Keeping the set a
// closed enumeration lets catalog indexes use fixed-size tables keyed by tool
// instead of maps, and guarantees every tool is handled when a new one is
// added.
package tool

import (
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/jingkaihe/skillsync/pkg/paths"
)

// Tool identifies a supported consumer tool.
type Tool int

const (
	// Claude is Claude Code.
	Claude Tool = iota
	// Codex is OpenAI Codex.
	Codex
	// Gemini is Google Gemini.
	Gemini

	// Count is the number of supported tools. Keep last.
	Count
)

// All returns every supported tool in declaration order.
func All() []Tool {
	return []Tool{Claude, Codex, Gemini}
}

// ID returns the identifier used in templates and directory names.
func (t Tool) ID() string {
	switch t {
	case Claude:
		return "claude"
	case Codex:
		return "codex"
	case Gemini:
		return "gemini"
	default:
		return "unknown"
	}
}

// DisplayName returns the human-facing tool name.
func (t Tool) DisplayName() string {
	switch t {
	case Claude:
		return "Claude Code"
	case Codex:
		return "Codex"
	case Gemini:
		return "Gemini"
	default:
		return "Unknown"
	}
}

// Parse converts a tool identifier into a Tool.
func Parse(id string) (Tool, error) {
	for _, t := range All() {
		if t.ID() == id {
			return t, nil
		}
	}
	return Count, errors.Errorf("unknown tool %q (expected claude, codex, or gemini)", id)
}

// SkillsDir returns the tool's global skills directory, e.g.
// ~/.claude/skills.
func (t Tool) SkillsDir(provider paths.Provider) (string, error) {
	home, err := provider.HomeDir()
	if err != nil {
		return "", errors.Wrapf(err, "failed to resolve skills directory for %s", t.DisplayName())
	}
	return filepath.Join(home, "."+t.ID(), "skills"), nil
}

// LocalSkillsDir returns the tool's project-local skills directory relative
// to dir, e.g. <dir>/.claude/skills.
func (t Tool) LocalSkillsDir(dir string) string {
	return filepath.Join(dir, "."+t.ID(), "skills")
}
