package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/jingkaihe/skillsync/pkg/paths"
	"github.com/jingkaihe/skillsync/pkg/presenter"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the skillsync configuration",
	Long: `Write ~/.skillsync/config.yaml with an initial source directory list and
create the first source directory.`,
	Run: func(cmd *cobra.Command, _ []string) {
		sources, _ := cmd.Flags().GetStringSlice("source")
		force, _ := cmd.Flags().GetBool("force")
		if err := runInit(sources, force); err != nil {
			presenter.Error(err, "Init failed")
			os.Exit(1)
		}
	},
}

func init() {
	initCmd.Flags().StringSlice("source", []string{"~/skills"}, "Source directories to configure")
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing configuration")
}

func runInit(sources []string, force bool) error {
	provider := paths.OSProvider{}
	home, err := provider.HomeDir()
	if err != nil {
		return errors.Wrap(err, "failed to resolve home directory")
	}

	configDir := filepath.Join(home, ".skillsync")
	configPath := filepath.Join(configDir, "config.yaml")

	if _, err := os.Stat(configPath); err == nil && !force {
		return errors.Errorf("configuration already exists: %s (use --force to overwrite)", configPath)
	}

	contents, err := yaml.Marshal(map[string][]string{"sources": sources})
	if err != nil {
		return err
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create config directory %s", configDir)
	}
	if err := os.WriteFile(configPath, contents, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", configPath)
	}

	for _, raw := range sources {
		dir, err := paths.Expand(provider, raw, home)
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create source directory %s", dir)
		}
	}

	presenter.Success(fmt.Sprintf("Wrote %s", paths.Display(provider, configPath)))
	presenter.Info("Run 'skillsync new <name>' to create your first skill.")
	return nil
}
