package main

import (
	"os"
	"os/exec"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillsync/pkg/presenter"
)

var editCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Open a source skill in your editor",
	Long: `Open a source skill's SKILL.md in $VISUAL or $EDITOR (falling back to
vi), then remind you to push the change.`,
	Args: cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		if err := runEdit(args[0]); err != nil {
			presenter.Error(err, "Edit failed")
			os.Exit(1)
		}
	},
}

func runEdit(name string) error {
	eng, err := loadEngine()
	if err != nil {
		return err
	}

	source, ok := eng.catalog.Sources[name]
	if !ok {
		return errors.Errorf("skill not found: %s", name)
	}

	editor := os.Getenv("VISUAL")
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vi"
	}

	command := exec.Command(editor, source.Path)
	command.Stdin = os.Stdin
	command.Stdout = os.Stdout
	command.Stderr = os.Stderr
	if err := command.Run(); err != nil {
		return errors.Wrapf(err, "editor %s failed", editor)
	}

	presenter.Info("Run 'skillsync push " + name + "' to install the change.")
	return nil
}
