package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillsync/pkg/presenter"
	"github.com/jingkaihe/skillsync/pkg/skill"
	"github.com/jingkaihe/skillsync/pkg/status"
	"github.com/jingkaihe/skillsync/pkg/syncer"
	"github.com/jingkaihe/skillsync/pkg/tool"
)

var promoteCmd = &cobra.Command{
	Use:   "promote <name>",
	Short: "Promote a project-local skill to a tool's global skills",
	Long: `Move a skill installed under the current project's .<tool>/skills
directory into the tool's global skills directory, making it available in
every project. When the skill is local to more than one tool, --tool picks
which copy to promote.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		toolID, _ := cmd.Flags().GetString("tool")
		dryRun, _ := cmd.Flags().GetBool("dry-run")
		force, _ := cmd.Flags().GetBool("force")
		if err := runPromote(args[0], toolID, dryRun, force); err != nil {
			presenter.Error(err, "Promote failed")
			os.Exit(1)
		}
	},
}

func init() {
	promoteCmd.Flags().String("tool", "", "Tool whose local copy to promote")
	promoteCmd.Flags().BoolP("dry-run", "n", false, "Preview the move without writing")
	promoteCmd.Flags().BoolP("force", "f", false, "Overwrite a differing global copy without prompting")
}

func runPromote(name, toolID string, dryRun, force bool) error {
	eng, err := loadEngine()
	if err != nil {
		return err
	}

	var locals []*skill.Installed
	for _, t := range tool.All() {
		if installed := eng.catalog.Local[t][name]; installed != nil {
			locals = append(locals, installed)
		}
	}
	if len(locals) == 0 {
		return errors.Errorf("no project-local copy of skill %s", name)
	}

	var chosen *skill.Installed
	if toolID != "" {
		t, err := tool.Parse(toolID)
		if err != nil {
			return err
		}
		for _, local := range locals {
			if local.Tool == t {
				chosen = local
				break
			}
		}
		if chosen == nil {
			return errors.Errorf("skill %s has no local copy for %s", name, t.DisplayName())
		}
	} else {
		if len(locals) > 1 {
			ids := make([]string, 0, len(locals))
			for _, local := range locals {
				ids = append(ids, local.Tool.ID())
			}
			return errors.Errorf("skill %s is local to multiple tools (%s); pick one with --tool",
				name, strings.Join(ids, ", "))
		}
		chosen = locals[0]
	}

	if dryRun {
		fmt.Printf("Would promote %s from %s to %s global skills\n",
			name, eng.displayPath(chosen.Dir), chosen.Tool.DisplayName())
		return nil
	}

	existing := eng.catalog.Global(chosen.Tool, name)
	if existing != nil && !status.Equal(existing.Contents, chosen.Contents) && !force {
		question := fmt.Sprintf("Overwrite differing global copy of %s in %s?", name, chosen.Tool.DisplayName())
		answer := presenter.Prompt(question, "y", "N")
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			presenter.Info("Cancelled.")
			return nil
		}
	}

	globalDir, err := chosen.Tool.SkillsDir(eng.provider)
	if err != nil {
		return err
	}

	// The local copy is already rendered for its tool, so its bytes move
	// verbatim.
	if err := syncer.WriteInstalled(globalDir, name, chosen.Contents); err != nil {
		return err
	}
	if err := os.RemoveAll(chosen.Dir); err != nil {
		return errors.Wrapf(err, "promoted copy written but failed to remove local directory %s", chosen.Dir)
	}

	presenter.Success(fmt.Sprintf("Promoted %s to %s global skills", name, chosen.Tool.DisplayName()))
	return nil
}
