package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillsync/pkg/presenter"
	"github.com/jingkaihe/skillsync/pkg/render"
	"github.com/jingkaihe/skillsync/pkg/skill"
	"github.com/jingkaihe/skillsync/pkg/status"
	"github.com/jingkaihe/skillsync/pkg/syncer"
	"github.com/jingkaihe/skillsync/pkg/tool"
)

type PushConfig struct {
	All    bool
	Tool   string
	DryRun bool
	Force  bool
	Yes    bool
}

func NewPushConfig() *PushConfig {
	return &PushConfig{
		All:  false,
		Tool: "all",
	}
}

var pushCmd = &cobra.Command{
	Use:   "push [names...]",
	Short: "Push source skills to tools",
	Long: `Render source skills per tool and install them into each tool's global
skills directory. Names may be glob patterns; omitting names pushes all
skills. Modified tool copies require confirmation unless --force is given.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getPushConfigFromFlags(cmd)
		if err := runPush(args, cfg); err != nil {
			presenter.Error(err, "Push failed")
			os.Exit(1)
		}
	},
}

func init() {
	defaults := NewPushConfig()
	pushCmd.Flags().Bool("all", defaults.All, "Push all skills")
	pushCmd.Flags().String("tool", defaults.Tool, "Target tool (claude, codex, gemini, or all)")
	pushCmd.Flags().BoolP("dry-run", "n", defaults.DryRun, "Preview changes without writing")
	pushCmd.Flags().BoolP("force", "f", defaults.Force, "Overwrite modified skills without prompting")
	pushCmd.Flags().BoolP("yes", "y", defaults.Yes, "Skip all prompts (requires --force)")
}

func getPushConfigFromFlags(cmd *cobra.Command) *PushConfig {
	config := NewPushConfig()
	if all, err := cmd.Flags().GetBool("all"); err == nil {
		config.All = all
	}
	if toolID, err := cmd.Flags().GetString("tool"); err == nil {
		config.Tool = toolID
	}
	if dryRun, err := cmd.Flags().GetBool("dry-run"); err == nil {
		config.DryRun = dryRun
	}
	if force, err := cmd.Flags().GetBool("force"); err == nil {
		config.Force = force
	}
	if yes, err := cmd.Flags().GetBool("yes"); err == nil {
		config.Yes = yes
	}
	return config
}

func runPush(args []string, cfg *PushConfig) error {
	if cfg.Yes && !cfg.Force {
		return fmt.Errorf("--yes requires --force")
	}

	eng, err := loadEngine()
	if err != nil {
		return err
	}

	tools, err := selectTools(cfg.Tool)
	if err != nil {
		return err
	}

	names, err := matchSkillNames(args, sourceNames(eng.catalog.Sources))
	if err != nil {
		return err
	}
	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	for _, t := range tools {
		fmt.Printf("Pushing %s...\n", t.DisplayName())

		toolDir, err := t.SkillsDir(eng.provider)
		if err != nil {
			return err
		}

		for _, name := range names {
			source := eng.catalog.Sources[name]
			marker, summary := pushOne(eng, source, t, toolDir, cfg)
			fmt.Printf("  %s %s (%s)\n", marker, name, summary)
		}
	}

	eng.sink.PrintSkippedSummary()
	eng.sink.PrintWarningSummary()
	return nil
}

// pushOne pushes a single skill to a single tool and returns the output
// marker and summary label.
func pushOne(eng *engine, source *skill.Source, t tool.Tool, toolDir string, cfg *PushConfig) (string, string) {
	rendered, err := render.Render(source.Contents, t)
	if err != nil {
		eng.sink.Skip(source.Path, err.Error())
		return "!", "skipped"
	}

	installed := eng.catalog.Global(t, source.Name)

	if installed != nil && status.Equal(rendered, installed.Contents) {
		return "=", "unchanged"
	}

	if installed == nil {
		if !cfg.DryRun {
			if err := syncer.WriteInstalled(toolDir, source.Name, rendered); err != nil {
				eng.sink.Skip(source.Path, err.Error())
				return "!", "skipped"
			}
		}
		return "+", "new"
	}

	// The tool copy was modified; ask before discarding those changes.
	if !cfg.Force && !cfg.DryRun {
		question := fmt.Sprintf("Overwrite modified skill '%s' in %s?", source.Name, t.DisplayName())
		answer := presenter.Prompt(question, "y", "N")
		if !strings.EqualFold(answer, "y") && !strings.EqualFold(answer, "yes") {
			return "!", "skipped"
		}
	}

	if !cfg.DryRun {
		if err := syncer.WriteInstalled(toolDir, source.Name, rendered); err != nil {
			eng.sink.Skip(source.Path, err.Error())
			return "!", "skipped"
		}
	}
	return "~", "pushed"
}

// selectTools resolves a tool filter flag into a tool list.
func selectTools(filter string) ([]tool.Tool, error) {
	if filter == "" || filter == "all" {
		return tool.All(), nil
	}
	t, err := tool.Parse(filter)
	if err != nil {
		return nil, err
	}
	return []tool.Tool{t}, nil
}
