package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillsync/pkg/presenter"
	"github.com/jingkaihe/skillsync/pkg/status"
	"github.com/jingkaihe/skillsync/pkg/tool"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls", "status"},
	Short:   "List skills and their sync status",
	Long:    `List every known skill with its per-tool sync status (synced, modified, missing, or orphan).`,
	Run: func(_ *cobra.Command, _ []string) {
		eng, err := loadEngine()
		if err != nil {
			presenter.Error(err, "Failed to load skills")
			os.Exit(1)
		}

		entries := status.Classify(eng.catalog, eng.sink)
		if len(entries) == 0 {
			presenter.Info("No skills found.")
			eng.sink.PrintSkippedSummary()
			return
		}

		for _, entry := range entries {
			sourcePath := "-"
			if source, ok := eng.catalog.Sources[entry.Name]; ok {
				sourcePath = eng.displayPath(source.SourceRoot)
			}

			fmt.Println(entry.Name)
			fmt.Printf("  source: %s\n", sourcePath)

			var cells []string
			for _, t := range tool.All() {
				cells = append(cells, fmt.Sprintf("%s: %-9s", t.ID(), formatState(entry.StateFor(t))))
			}
			fmt.Printf("  %s\n", strings.Join(cells, " "))
			fmt.Println()
		}

		eng.sink.PrintSkippedSummary()
	},
}

// formatState colors a sync state label.
func formatState(state status.SyncState) string {
	label := state.String()
	switch state {
	case status.Synced:
		return color.GreenString(label)
	case status.Modified:
		return color.YellowString(label)
	default:
		return color.RedString(label)
	}
}
