// Package skill loads skill definitions from disk. A skill is a directory
// containing a SKILL.md file with YAML frontmatter declaring at least a name
// and a description, followed by a Markdown body that may use template
// conditionals keyed on the target tool.
package skill

import (
	"time"

	"github.com/jingkaihe/skillsync/pkg/tool"
)

// FileName is the expected skill file name within a skill directory.
const FileName = "SKILL.md"

// Origin describes where an installed skill copy lives.
type Origin int

const (
	// OriginGlobal is a tool's user-wide skills directory.
	OriginGlobal Origin = iota
	// OriginLocal is a tool's project-scoped skills directory.
	OriginLocal
)

// String returns the origin label used in CLI output.
func (o Origin) String() string {
	if o == OriginLocal {
		return "local"
	}
	return "global"
}

// Source is a canonical skill template loaded from a source root.
type Source struct {
	// Name is the skill name from frontmatter.
	Name string
	// Description is the skill description from frontmatter.
	Description string
	// SourceRoot is the configured source directory this skill came from.
	SourceRoot string
	// Dir is the directory containing the skill file.
	Dir string
	// Path is the full path to the SKILL.md file.
	Path string
	// Contents is the raw, unrendered template text of the whole file.
	Contents string
	// ModTime is the skill file's last-modified time.
	ModTime time.Time
}

// Installed is a skill copy found in a tool's global or local directory.
type Installed struct {
	// Name is the skill name from frontmatter.
	Name string
	// Tool is the consumer tool owning this copy.
	Tool tool.Tool
	// Origin tags the copy as global or project-local.
	Origin Origin
	// Dir is the directory containing the skill file.
	Dir string
	// Path is the full path to the SKILL.md file.
	Path string
	// Contents is the file contents as stored on disk.
	Contents string
	// ModTime is the file's last-modified time; the epoch when metadata
	// retrieval failed, so ordering stays deterministic.
	ModTime time.Time
}

// Metadata is the YAML frontmatter of a SKILL.md file.
type Metadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}
