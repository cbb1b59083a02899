package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillsync/pkg/archive"
	"github.com/jingkaihe/skillsync/pkg/presenter"
	"github.com/jingkaihe/skillsync/pkg/tool"
)

type PackConfig struct {
	All     bool
	Output  string
	Project bool
	DryRun  bool
	Force   bool
}

var packCmd = &cobra.Command{
	Use:   "pack [names...]",
	Short: "Package skills into shareable archives",
	Long: `Zip source skill directories (SKILL.md plus any supporting files) into
<name>.zip archives for sharing. Names may be glob patterns; --all packs every
source skill.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := &PackConfig{}
		cfg.All, _ = cmd.Flags().GetBool("all")
		cfg.Output, _ = cmd.Flags().GetString("output")
		cfg.Project, _ = cmd.Flags().GetBool("project")
		cfg.DryRun, _ = cmd.Flags().GetBool("dry-run")
		cfg.Force, _ = cmd.Flags().GetBool("force")
		if err := runPack(args, cfg); err != nil {
			presenter.Error(err, "Pack failed")
			os.Exit(1)
		}
	},
}

func init() {
	packCmd.Flags().Bool("all", false, "Pack all source skills")
	packCmd.Flags().StringP("output", "o", ".", "Directory to write archives into")
	packCmd.Flags().Bool("project", false, "Pack the project-local copies instead of source skills")
	packCmd.Flags().BoolP("dry-run", "n", false, "List what would be packed without writing")
	packCmd.Flags().BoolP("force", "f", false, "Overwrite existing archives")
}

func runPack(args []string, cfg *PackConfig) error {
	if len(args) == 0 && !cfg.All {
		return errors.New("name one or more skills to pack, or use --all")
	}

	eng, err := loadEngine()
	if err != nil {
		return err
	}

	names, err := matchSkillNames(args, packCandidates(eng, cfg.Project))
	if err != nil {
		return err
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	if err := os.MkdirAll(cfg.Output, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create output directory %s", cfg.Output)
	}

	for _, name := range names {
		skillDir, err := packDir(eng, cfg.Project, name)
		if err != nil {
			return err
		}
		outputPath := filepath.Join(cfg.Output, name+".zip")

		if cfg.DryRun {
			fmt.Printf("Would pack %s into %s\n", name, eng.displayPath(outputPath))
			continue
		}

		if !cfg.Force {
			if _, err := os.Stat(outputPath); err == nil {
				return errors.Errorf("archive already exists: %s (use --force to overwrite)", outputPath)
			}
		}

		size, files, err := archive.Pack(skillDir, name, outputPath)
		if err != nil {
			return err
		}
		presenter.Success(fmt.Sprintf("Packed %s (%d file%s, %s) into %s",
			name, len(files), plural(len(files)), formatSize(size), eng.displayPath(outputPath)))
	}

	return nil
}

// packCandidates lists the names available for packing: source skills, or the
// project's local copies with --project.
func packCandidates(eng *engine, project bool) []string {
	if !project {
		return sourceNames(eng.catalog.Sources)
	}

	seen := make(map[string]bool)
	var names []string
	for _, t := range tool.All() {
		for name := range eng.catalog.Local[t] {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// packDir resolves the directory to pack for a skill.
func packDir(eng *engine, project bool, name string) (string, error) {
	if !project {
		return eng.catalog.Sources[name].Dir, nil
	}
	for _, t := range tool.All() {
		if installed := eng.catalog.Local[t][name]; installed != nil {
			return installed.Dir, nil
		}
	}
	return "", errors.Errorf("no project-local copy of skill %s", name)
}

// formatSize renders a byte count in a human-friendly unit.
func formatSize(size int64) string {
	switch {
	case size >= 1024*1024:
		return fmt.Sprintf("%.1f MiB", float64(size)/(1024*1024))
	case size >= 1024:
		return fmt.Sprintf("%.1f KiB", float64(size)/1024)
	default:
		return fmt.Sprintf("%d B", size)
	}
}
