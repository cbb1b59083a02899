package skill

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/parser"

	"github.com/jingkaihe/skillsync/pkg/diagnostics"
	"github.com/jingkaihe/skillsync/pkg/tool"
)

// LoadSource loads a source skill from a directory. It returns nil when the
// directory has no skill file; parse and validation failures are recorded on
// the sink and also return nil so the caller keeps processing other skills.
func LoadSource(sourceRoot, skillDir string, sink *diagnostics.Sink) *Source {
	path := filepath.Join(skillDir, FileName)
	contents, ok := readSkillFile(path, sink)
	if !ok {
		return nil
	}

	metadata, err := ParseFrontmatter(contents)
	if err != nil {
		sink.Skip(path, err.Error())
		return nil
	}

	return &Source{
		Name:        metadata.Name,
		Description: metadata.Description,
		SourceRoot:  sourceRoot,
		Dir:         skillDir,
		Path:        path,
		Contents:    contents,
		ModTime:     modTime(path),
	}
}

// LoadInstalled loads a tool-installed skill copy from a directory. The same
// nil-on-absence and skip-on-failure contract as LoadSource applies.
func LoadInstalled(skillDir string, t tool.Tool, origin Origin, sink *diagnostics.Sink) *Installed {
	path := filepath.Join(skillDir, FileName)
	contents, ok := readSkillFile(path, sink)
	if !ok {
		return nil
	}

	metadata, err := ParseFrontmatter(contents)
	if err != nil {
		sink.Skip(path, err.Error())
		return nil
	}

	return &Installed{
		Name:     metadata.Name,
		Tool:     t,
		Origin:   origin,
		Dir:      skillDir,
		Path:     path,
		Contents: contents,
		ModTime:  modTime(path),
	}
}

// readSkillFile reads a SKILL.md file, distinguishing absence (not an error)
// from read failures (skipped with a diagnostic).
func readSkillFile(path string, sink *diagnostics.Sink) (string, bool) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return "", false
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		sink.Skip(path, err.Error())
		return "", false
	}

	return string(contents), true
}

// modTime returns the file's modification time, falling back to the epoch
// when metadata retrieval fails.
func modTime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Unix(0, 0).UTC()
	}
	return info.ModTime()
}

// ParseFrontmatter extracts and validates the YAML frontmatter of a skill
// file. The file must start with a `---` line, carry a parseable YAML block
// terminated by another `---` line, and declare non-empty name and
// description fields.
func ParseFrontmatter(contents string) (*Metadata, error) {
	md := goldmark.New(goldmark.WithExtensions(meta.Meta))

	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := md.Convert([]byte(contents), &buf, parser.WithContext(pctx)); err != nil {
		return nil, errors.Wrap(err, "failed to parse markdown")
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		return nil, errors.New("missing YAML frontmatter")
	}

	name, _ := metaData["name"].(string)
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("missing required field 'name'")
	}

	description, _ := metaData["description"].(string)
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, errors.New("missing required field 'description'")
	}

	return &Metadata{Name: name, Description: description}, nil
}

// Body strips the frontmatter block and returns the Markdown body.
func Body(contents string) string {
	if !strings.HasPrefix(contents, "---") {
		return contents
	}

	lines := strings.Split(contents, "\n")
	end := -1
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			end = i
			break
		}
	}
	if end == -1 {
		return contents
	}

	return strings.TrimLeft(strings.Join(lines[end+1:], "\n"), "\n")
}
