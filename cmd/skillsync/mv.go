package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillsync/pkg/presenter"
	"github.com/jingkaihe/skillsync/pkg/skill"
	"github.com/jingkaihe/skillsync/pkg/tool"
)

type MvConfig struct {
	DryRun bool
	Force  bool
}

var mvCmd = &cobra.Command{
	Use:   "mv <old-name> <new-name>",
	Short: "Rename a skill everywhere",
	Long: `Rename a skill's source directory and every installed tool copy, updating
the name field in each SKILL.md frontmatter.`,
	Args: cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := &MvConfig{}
		cfg.DryRun, _ = cmd.Flags().GetBool("dry-run")
		cfg.Force, _ = cmd.Flags().GetBool("force")
		if err := runMv(args[0], args[1], cfg); err != nil {
			presenter.Error(err, "Rename failed")
			os.Exit(1)
		}
	},
}

func init() {
	mvCmd.Flags().BoolP("dry-run", "n", false, "Preview changes without writing")
	mvCmd.Flags().BoolP("force", "f", false, "Rename without prompting")
}

func runMv(oldName, newName string, cfg *MvConfig) error {
	if !skillNamePattern.MatchString(newName) {
		return errors.Errorf("invalid skill name %q: use lowercase letters, digits, and hyphens", newName)
	}

	eng, err := loadEngine()
	if err != nil {
		return err
	}

	if !eng.catalog.HasSkill(oldName) {
		return errors.Errorf("skill not found: %s", oldName)
	}
	if eng.catalog.HasSkill(newName) {
		return errors.Errorf("skill %s already exists", newName)
	}

	// Collect every directory holding a copy of the skill.
	type renameTarget struct {
		dir   string
		label string
	}
	var targets []renameTarget

	if source, ok := eng.catalog.Sources[oldName]; ok {
		targets = append(targets, renameTarget{dir: source.Dir, label: "source"})
	}
	for _, t := range tool.All() {
		if installed := eng.catalog.Global(t, oldName); installed != nil {
			targets = append(targets, renameTarget{dir: installed.Dir, label: t.DisplayName() + " (global)"})
		}
		if installed := eng.catalog.Local[t][oldName]; installed != nil {
			targets = append(targets, renameTarget{dir: installed.Dir, label: t.DisplayName() + " (local)"})
		}
	}

	fmt.Printf("Renaming %s to %s:\n", oldName, newName)
	for _, target := range targets {
		fmt.Printf("  %s: %s\n", target.label, eng.displayPath(target.dir))
	}

	if cfg.DryRun {
		presenter.Info("Dry run; nothing renamed.")
		return nil
	}

	if !cfg.Force {
		answer := presenter.Prompt("Proceed", "y", "N")
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			presenter.Info("Cancelled.")
			return nil
		}
	}

	for _, target := range targets {
		if err := renameSkillDir(target.dir, newName); err != nil {
			return errors.Wrapf(err, "failed to rename %s copy", target.label)
		}
	}

	presenter.Success(fmt.Sprintf("Renamed %s to %s in %d location%s",
		oldName, newName, len(targets), plural(len(targets))))
	return nil
}

// renameSkillDir moves a skill directory to its new name and rewrites the
// name field inside its SKILL.md.
func renameSkillDir(oldDir, newName string) error {
	newDir := filepath.Join(filepath.Dir(oldDir), newName)
	if _, err := os.Stat(newDir); err == nil {
		return errors.Errorf("target directory already exists: %s", newDir)
	}

	if err := os.Rename(oldDir, newDir); err != nil {
		return err
	}

	path := filepath.Join(newDir, skill.FileName)
	contents, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	rewritten := skill.RewriteName(string(contents), newName)
	return os.WriteFile(path, []byte(rewritten), 0o644)
}
