package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillsync/pkg/presenter"
	"github.com/jingkaihe/skillsync/pkg/skill"
)

type UnloadConfig struct {
	Tool   string
	DryRun bool
	Force  bool
}

var unloadCmd = &cobra.Command{
	Use:   "unload <names...>",
	Short: "Remove installed skills from tools",
	Long: `Remove installed skill copies from tool skills directories. Source skills
are left untouched; a later push reinstalls them. Names may be glob patterns.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := &UnloadConfig{}
		cfg.Tool, _ = cmd.Flags().GetString("tool")
		cfg.DryRun, _ = cmd.Flags().GetBool("dry-run")
		cfg.Force, _ = cmd.Flags().GetBool("force")
		if err := runUnload(args, cfg); err != nil {
			presenter.Error(err, "Unload failed")
			os.Exit(1)
		}
	},
}

func init() {
	unloadCmd.Flags().String("tool", "all", "Tool to unload from (claude, codex, gemini, or all)")
	unloadCmd.Flags().BoolP("dry-run", "n", false, "Preview removals without deleting")
	unloadCmd.Flags().BoolP("force", "f", false, "Remove without prompting")
}

func runUnload(args []string, cfg *UnloadConfig) error {
	eng, err := loadEngine()
	if err != nil {
		return err
	}

	tools, err := selectTools(cfg.Tool)
	if err != nil {
		return err
	}

	// Candidates are installed copies, not sources.
	installedNames := make(map[string]bool)
	for _, t := range tools {
		for name := range eng.catalog.Tools[t] {
			installedNames[name] = true
		}
	}
	available := make([]string, 0, len(installedNames))
	for name := range installedNames {
		available = append(available, name)
	}

	names, err := matchSkillNames(args, available)
	if err != nil {
		return err
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	var targets []*skill.Installed
	for _, name := range names {
		for _, t := range tools {
			if installed := eng.catalog.Global(t, name); installed != nil {
				targets = append(targets, installed)
			}
		}
	}

	fmt.Printf("Removing %d installed cop%s:\n", len(targets), pluralY(len(targets)))
	for _, installed := range targets {
		fmt.Printf("  %s from %s (%s)\n", installed.Name, installed.Tool.DisplayName(), eng.displayPath(installed.Dir))
	}

	if cfg.DryRun {
		presenter.Info("Dry run; nothing removed.")
		return nil
	}

	if !cfg.Force {
		answer := presenter.Prompt("Proceed", "y", "N")
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			presenter.Info("Cancelled.")
			return nil
		}
	}

	removed := 0
	for _, installed := range targets {
		if err := os.RemoveAll(installed.Dir); err != nil {
			presenter.Error(err, "Failed to remove "+installed.Dir)
			continue
		}
		removed++
	}

	presenter.Success(fmt.Sprintf("Removed %d installed cop%s", removed, pluralY(removed)))
	return nil
}

func pluralY(count int) string {
	if count == 1 {
		return "y"
	}
	return "ies"
}
