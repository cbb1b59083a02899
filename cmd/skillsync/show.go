package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillsync/pkg/presenter"
	"github.com/jingkaihe/skillsync/pkg/skill"
	"github.com/jingkaihe/skillsync/pkg/tool"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a skill's contents",
	Long: `Print a skill's metadata and contents. Source copies take precedence;
skills that only exist inside a tool's skills directory are shown from there.`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		if err := runShow(args[0]); err != nil {
			presenter.Error(err, "Show failed")
			os.Exit(1)
		}
	},
}

func runShow(name string) error {
	eng, err := loadEngine()
	if err != nil {
		return err
	}

	if source, ok := eng.catalog.Sources[name]; ok {
		printSkill(eng, source.Name, source.Description, source.Path, source.Contents)
		return nil
	}

	// No source copy; fall back to installed copies, global before local.
	for _, t := range tool.All() {
		if installed := eng.catalog.Global(t, name); installed != nil {
			return showInstalled(eng, installed)
		}
	}
	for _, t := range tool.All() {
		if installed := eng.catalog.Local[t][name]; installed != nil {
			return showInstalled(eng, installed)
		}
	}

	return fmt.Errorf("skill not found: %s", name)
}

func showInstalled(eng *engine, installed *skill.Installed) error {
	presenter.Warning(fmt.Sprintf("No source copy; showing the %s copy (%s).",
		installed.Tool.DisplayName(), installed.Origin))
	printSkill(eng, installed.Name, "", installed.Path, installed.Contents)
	return nil
}

func printSkill(eng *engine, name, description, path, contents string) {
	presenter.Section(name)
	if description != "" {
		fmt.Printf("%s\n", description)
	}
	fmt.Printf("path: %s\n\n", eng.displayPath(path))
	fmt.Print(contents)
}
