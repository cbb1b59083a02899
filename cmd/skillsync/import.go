package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillsync/pkg/archive"
	"github.com/jingkaihe/skillsync/pkg/presenter"
	"github.com/jingkaihe/skillsync/pkg/tool"
)

type ImportConfig struct {
	To      string
	Project bool
	DryRun  bool
	Force   bool
}

var importCmd = &cobra.Command{
	Use:   "import <archive>",
	Short: "Import a packed skill archive",
	Long: `Unpack a skill archive produced by pack. By default the skill is
installed into every tool's global skills directory. --to accepts a tool id,
the word "source" (first configured source directory), or a custom path;
--project installs into the current project's per-tool skills directories.
The archive may be a local .zip file or an https URL; downloads are capped at
10 MiB.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := &ImportConfig{}
		cfg.To, _ = cmd.Flags().GetString("to")
		cfg.Project, _ = cmd.Flags().GetBool("project")
		cfg.DryRun, _ = cmd.Flags().GetBool("dry-run")
		cfg.Force, _ = cmd.Flags().GetBool("force")
		if err := runImport(cmd.Context(), args[0], cfg); err != nil {
			presenter.Error(err, "Import failed")
			os.Exit(1)
		}
	},
}

func init() {
	importCmd.Flags().String("to", "", "Target: a tool id, \"source\", or a directory path")
	importCmd.Flags().Bool("project", false, "Install into the current project's per-tool skills directories")
	importCmd.Flags().BoolP("dry-run", "n", false, "Inspect the archive without extracting")
	importCmd.Flags().BoolP("force", "f", false, "Overwrite existing skill directories")
}

func runImport(ctx context.Context, location string, cfg *ImportConfig) error {
	if cfg.Project && cfg.To != "" {
		return errors.New("--project and --to are mutually exclusive")
	}

	eng, err := loadEngine()
	if err != nil {
		return err
	}

	data, err := readArchive(ctx, location)
	if err != nil {
		return err
	}

	info, err := archive.Inspect(data)
	if err != nil {
		return err
	}

	targets, err := importTargets(eng, cfg, info.Name)
	if err != nil {
		return err
	}

	if cfg.DryRun {
		fmt.Printf("Archive contains skill %s (%d file%s):\n", info.Name, len(info.Files), plural(len(info.Files)))
		for _, file := range info.Files {
			fmt.Printf("  %s\n", file)
		}
		fmt.Println("\nWould extract into:")
		for _, target := range targets {
			fmt.Printf("  %s\n", eng.displayPath(target))
		}
		return nil
	}

	for _, target := range targets {
		if _, err := os.Stat(target); err == nil && !cfg.Force {
			return errors.Errorf("skill directory already exists: %s (use --force to overwrite)", target)
		}
	}

	for _, target := range targets {
		if err := archive.Extract(data, info.RootDir, target); err != nil {
			return err
		}
		presenter.Success(fmt.Sprintf("Imported %s into %s", info.Name, eng.displayPath(target)))
	}

	return nil
}

// importTargets resolves the skill directories an archive extracts into.
func importTargets(eng *engine, cfg *ImportConfig, name string) ([]string, error) {
	if cfg.Project {
		cwd, err := eng.provider.WorkingDir()
		if err != nil {
			return nil, err
		}
		var targets []string
		for _, t := range tool.All() {
			targets = append(targets, filepath.Join(t.LocalSkillsDir(cwd), name))
		}
		return targets, nil
	}

	if cfg.To != "" {
		if t, err := tool.Parse(cfg.To); err == nil {
			dir, err := t.SkillsDir(eng.provider)
			if err != nil {
				return nil, err
			}
			return []string{filepath.Join(dir, name)}, nil
		}
		if cfg.To == "source" {
			return []string{filepath.Join(eng.config.Sources[0], name)}, nil
		}
		return []string{filepath.Join(cfg.To, name)}, nil
	}

	var targets []string
	for _, t := range tool.All() {
		dir, err := t.SkillsDir(eng.provider)
		if err != nil {
			return nil, err
		}
		targets = append(targets, filepath.Join(dir, name))
	}
	return targets, nil
}

// readArchive loads archive bytes from an https URL or a local file.
func readArchive(ctx context.Context, location string) ([]byte, error) {
	if strings.HasPrefix(location, "https://") || strings.HasPrefix(location, "http://") {
		return archive.Download(ctx, location)
	}

	data, err := os.ReadFile(location)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read archive %s", location)
	}
	return data, nil
}
