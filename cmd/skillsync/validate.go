package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillsync/pkg/presenter"
	"github.com/jingkaihe/skillsync/pkg/render"
	"github.com/jingkaihe/skillsync/pkg/skill"
	"github.com/jingkaihe/skillsync/pkg/tool"
)

var validateCmd = &cobra.Command{
	Use:   "validate [names...]",
	Short: "Validate source skills",
	Long: `Check every source skill for valid frontmatter, a name matching its
directory, and a template that renders for each tool. Files the catalog could
not load at all are reported as invalid.`,
	Run: func(_ *cobra.Command, args []string) {
		if err := runValidate(args); err != nil {
			presenter.Error(err, "Validation failed")
			os.Exit(1)
		}
	},
}

func runValidate(args []string) error {
	eng, err := loadEngine()
	if err != nil {
		return err
	}

	names, err := matchSkillNames(args, sourceNames(eng.catalog.Sources))
	if err != nil {
		return err
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	valid, invalid := 0, 0

	for _, name := range names {
		source := eng.catalog.Sources[name]
		if err := validateSource(source); err != nil {
			invalid++
			fmt.Printf("✗ %s\n", name)
			for _, problem := range multierror.Flatten(err).(*multierror.Error).Errors {
				fmt.Printf("    %v\n", problem)
			}
			continue
		}
		valid++
		fmt.Printf("✓ %s\n", name)
	}

	// Skill files the loader refused to parse never made it into the
	// catalog; surface them here instead of silently under-counting.
	if len(args) == 0 {
		for _, skipped := range eng.sink.SkippedFiles() {
			invalid++
			fmt.Printf("✗ %s\n", eng.displayPath(skipped.Path))
			fmt.Printf("    %s\n", skipped.Reason)
		}
	}

	fmt.Printf("\n%d valid, %d invalid.\n", valid, invalid)

	if invalid > 0 {
		return fmt.Errorf("%d skill%s failed validation", invalid, plural(invalid))
	}
	return nil
}

// validateSource runs every check on one source skill and aggregates the
// failures.
func validateSource(source *skill.Source) error {
	var result *multierror.Error

	metadata, err := skill.ParseFrontmatter(source.Contents)
	if err != nil {
		result = multierror.Append(result, err)
	} else if dirName := filepath.Base(source.Dir); metadata.Name != dirName {
		result = multierror.Append(result,
			fmt.Errorf("frontmatter name %q does not match directory name %q",
				metadata.Name, dirName))
	}

	for _, t := range tool.All() {
		if _, err := render.Render(source.Contents, t); err != nil {
			result = multierror.Append(result,
				fmt.Errorf("template does not render for %s: %v", t.DisplayName(), err))
		}
	}

	return result.ErrorOrNil()
}
