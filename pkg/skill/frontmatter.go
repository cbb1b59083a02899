package skill

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// NewTemplate builds the initial SKILL.md contents for a freshly created
// skill. The frontmatter is serialized rather than string-built so values
// with YAML-significant characters stay valid.
func NewTemplate(name, description, title string) (string, error) {
	frontmatter, err := yaml.Marshal(Metadata{Name: name, Description: description})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("---\n%s---\n\n# %s\n\n<instructions for the AI assistant>\n", frontmatter, title), nil
}

// RewriteName updates the name field inside an existing frontmatter block
// without disturbing the rest of the file. Unknown or malformed frontmatter
// is returned unchanged.
func RewriteName(contents, newName string) string {
	lines := strings.Split(contents, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != "---" {
		return contents
	}

	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			break
		}
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "name:") {
			lines[i] = "name: " + newName
			break
		}
	}

	return strings.Join(lines, "\n")
}
