// Package render produces tool-specific skill text from a source template.
// The template sees exactly one binding, the target tool's identifier, so
// skill bodies can include or exclude blocks per tool:
//
//	{{if eq .tool "claude"}}Claude-only guidance{{end}}
//
// Any other reference fails rendering instead of silently producing empty
// output, so a mistyped tool name surfaces as an error.
package render

import (
	"strings"
	"text/template"

	"github.com/pkg/errors"

	"github.com/jingkaihe/skillsync/pkg/tool"
)

// Render renders a source skill's contents for the given tool.
func Render(contents string, t tool.Tool) (string, error) {
	tmpl, err := template.New("skill").Option("missingkey=error").Parse(contents)
	if err != nil {
		return "", errors.Wrap(err, "failed to parse skill template")
	}

	var buf strings.Builder
	if err := tmpl.Execute(&buf, map[string]string{"tool": t.ID()}); err != nil {
		return "", errors.Wrapf(err, "failed to render skill template for %s", t.ID())
	}

	return buf.String(), nil
}
