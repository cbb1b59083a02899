package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillsync/pkg/presenter"
	"github.com/jingkaihe/skillsync/pkg/render"
)

var renderCmd = &cobra.Command{
	Use:   "render <name>",
	Short: "Render a skill's template per tool",
	Long: `Render a source skill's template and print the exact content each tool
would receive. With --tool, only that tool's rendering is printed.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		toolID, _ := cmd.Flags().GetString("tool")
		if err := runRender(args[0], toolID); err != nil {
			presenter.Error(err, "Render failed")
			os.Exit(1)
		}
	},
}

func init() {
	renderCmd.Flags().String("tool", "all", "Tool to render for (claude, codex, gemini, or all)")
}

func runRender(name, toolID string) error {
	eng, err := loadEngine()
	if err != nil {
		return err
	}

	source, ok := eng.catalog.Sources[name]
	if !ok {
		return fmt.Errorf("skill not found: %s", name)
	}

	tools, err := selectTools(toolID)
	if err != nil {
		return err
	}

	for _, t := range tools {
		rendered, err := render.Render(source.Contents, t)
		if err != nil {
			return err
		}

		if len(tools) > 1 {
			presenter.Section(t.DisplayName())
		}
		fmt.Print(rendered)
		if len(tools) > 1 {
			fmt.Println()
		}
	}

	return nil
}
