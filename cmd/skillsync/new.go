package main

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillsync/pkg/presenter"
	"github.com/jingkaihe/skillsync/pkg/skill"
)

var skillNamePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a new source skill",
	Long: `Create a skill directory with a starter SKILL.md in the first configured
source directory, or in the directory given with --to.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		to, _ := cmd.Flags().GetString("to")
		description, _ := cmd.Flags().GetString("description")
		if err := runNew(args[0], to, description); err != nil {
			presenter.Error(err, "Failed to create skill")
			os.Exit(1)
		}
	},
}

func init() {
	newCmd.Flags().String("to", "", "Source directory to create the skill in")
	newCmd.Flags().String("description", "", "Skill description for the frontmatter")
}

func runNew(name, to, description string) error {
	if !skillNamePattern.MatchString(name) {
		return errors.Errorf("invalid skill name %q: use lowercase letters, digits, and hyphens", name)
	}

	eng, err := loadEngine()
	if err != nil {
		return err
	}

	if eng.catalog.HasSkill(name) {
		return errors.Errorf("skill %s already exists", name)
	}

	targetRoot := to
	if targetRoot == "" {
		targetRoot = eng.config.Sources[0]
	}

	if description == "" {
		description = "Use this skill when " + strings.ReplaceAll(name, "-", " ")
	}

	contents, err := skill.NewTemplate(name, description, titleCase(name))
	if err != nil {
		return err
	}

	skillDir := filepath.Join(targetRoot, name)
	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create skill directory %s", skillDir)
	}

	path := filepath.Join(skillDir, skill.FileName)
	if _, err := os.Stat(path); err == nil {
		return errors.Errorf("skill file already exists: %s", path)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write skill file %s", path)
	}

	presenter.Success(fmt.Sprintf("Created %s", eng.displayPath(path)))
	presenter.Info("Edit the skill, then run 'skillsync push " + name + "' to install it.")
	return nil
}

// titleCase turns a kebab-case skill name into a heading.
func titleCase(name string) string {
	words := strings.Split(name, "-")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + word[1:]
	}
	return strings.Join(words, " ")
}
