package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillsync/pkg/diffutil"
	"github.com/jingkaihe/skillsync/pkg/presenter"
	"github.com/jingkaihe/skillsync/pkg/render"
	"github.com/jingkaihe/skillsync/pkg/status"
	"github.com/jingkaihe/skillsync/pkg/tool"
)

var diffCmd = &cobra.Command{
	Use:   "diff [names...]",
	Short: "Show differences between source skills and tool copies",
	Long: `Show a unified diff between each rendered source skill and the copy
installed in each tool. Names may be glob patterns; omitting names diffs all
skills.`,
	Run: func(_ *cobra.Command, args []string) {
		if err := runDiff(args); err != nil {
			presenter.Error(err, "Diff failed")
			os.Exit(1)
		}
	},
}

func runDiff(args []string) error {
	eng, err := loadEngine()
	if err != nil {
		return err
	}

	entries := status.Classify(eng.catalog, eng.sink)
	available := make([]string, 0, len(entries))
	for _, entry := range entries {
		available = append(available, entry.Name)
	}

	names, err := matchSkillNames(args, available)
	if err != nil {
		return err
	}
	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[name] = true
	}

	for _, entry := range entries {
		if !wanted[entry.Name] {
			continue
		}

		fmt.Printf("=== %s ===\n", entry.Name)
		for _, t := range tool.All() {
			state := entry.StateFor(t)
			fmt.Printf("%s: %s\n", t.ID(), formatState(state))

			if state != status.Modified {
				continue
			}

			source := eng.catalog.Sources[entry.Name]
			installed := eng.catalog.Global(t, entry.Name)
			rendered, err := render.Render(source.Contents, t)
			if err != nil {
				// Classify already succeeded for this row, so the
				// template rendered moments ago; treat this as a skip.
				eng.sink.Skip(source.Path, err.Error())
				continue
			}

			diff := diffutil.Unified(
				eng.displayPath(source.Path),
				eng.displayPath(installed.Path),
				status.Normalize(rendered)+"\n",
				status.Normalize(installed.Contents)+"\n",
			)
			fmt.Print(diffutil.Colorize(diff, presenter.ColorEnabled()))
		}
		fmt.Println()
	}

	eng.sink.PrintSkippedSummary()
	return nil
}
