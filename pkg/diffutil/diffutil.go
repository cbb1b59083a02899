// Package diffutil renders unified diffs between skill contents for the diff
// command and interactive variant comparison.
package diffutil

import (
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"
)

// Unified renders a unified diff between two contents with the given labels.
func Unified(oldLabel, newLabel, old, new string) string {
	return udiff.Unified(oldLabel, newLabel, old, new)
}

// Colorize applies diff coloring line by line. With color disabled the input
// is returned unchanged.
func Colorize(diff string, useColor bool) string {
	if !useColor || diff == "" {
		return diff
	}

	header := color.New(color.Bold)
	hunk := color.New(color.FgCyan)
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)

	var out strings.Builder
	for _, line := range strings.Split(strings.TrimSuffix(diff, "\n"), "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			out.WriteString(header.Sprint(line))
		case strings.HasPrefix(line, "@@"):
			out.WriteString(hunk.Sprint(line))
		case strings.HasPrefix(line, "+"):
			out.WriteString(added.Sprint(line))
		case strings.HasPrefix(line, "-"):
			out.WriteString(removed.Sprint(line))
		default:
			out.WriteString(line)
		}
		out.WriteString("\n")
	}

	result := out.String()
	if !strings.HasSuffix(diff, "\n") {
		result = strings.TrimSuffix(result, "\n")
	}
	return result
}
