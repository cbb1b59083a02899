package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillsync/pkg/presenter"
	"github.com/jingkaihe/skillsync/pkg/syncer"
	"github.com/jingkaihe/skillsync/pkg/tool"
)

type SyncConfig struct {
	PreferSource bool
	PreferTool   bool
	DryRun       bool
}

func NewSyncConfig() *SyncConfig {
	return &SyncConfig{}
}

var syncCmd = &cobra.Command{
	Use:   "sync [names...]",
	Short: "Reconcile source skills and tool copies",
	Long: `Compare every source skill with its tool copies and reconcile them by
modification time: a newer source is pushed to all tools, a newer tool copy is
pulled back and re-pushed to the remaining tools. Skills whose tool copies
have diverged from each other stop the sync unless a conflict strategy is
chosen with --prefer-source or --prefer-tool.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getSyncConfigFromFlags(cmd)
		if err := runSync(args, cfg); err != nil {
			presenter.Error(err, "Sync failed")
			os.Exit(1)
		}
	},
}

func init() {
	defaults := NewSyncConfig()
	syncCmd.Flags().Bool("prefer-source", defaults.PreferSource, "Resolve conflicts by pushing the source version")
	syncCmd.Flags().Bool("prefer-tool", defaults.PreferTool, "Resolve conflicts by pulling the newest tool version")
	syncCmd.Flags().BoolP("dry-run", "n", defaults.DryRun, "Preview changes without writing")
}

func getSyncConfigFromFlags(cmd *cobra.Command) *SyncConfig {
	config := NewSyncConfig()
	if preferSource, err := cmd.Flags().GetBool("prefer-source"); err == nil {
		config.PreferSource = preferSource
	}
	if preferTool, err := cmd.Flags().GetBool("prefer-tool"); err == nil {
		config.PreferTool = preferTool
	}
	if dryRun, err := cmd.Flags().GetBool("dry-run"); err == nil {
		config.DryRun = dryRun
	}
	return config
}

func runSync(args []string, cfg *SyncConfig) error {
	if cfg.PreferSource && cfg.PreferTool {
		return fmt.Errorf("--prefer-source and --prefer-tool are mutually exclusive")
	}
	resolution := syncer.ResolveError
	if cfg.PreferSource {
		resolution = syncer.PreferSource
	}
	if cfg.PreferTool {
		resolution = syncer.PreferTool
	}

	eng, err := loadEngine()
	if err != nil {
		return err
	}

	plans := syncer.BuildPlans(eng.catalog, eng.sink)

	if len(args) > 0 {
		// Patterns match against every known skill so naming a skill that
		// is already in sync is not an error; it just filters to nothing.
		available := sourceNames(eng.catalog.Sources)
		for _, t := range tool.All() {
			for name := range eng.catalog.Tools[t] {
				available = append(available, name)
			}
		}
		names, err := matchSkillNames(args, available)
		if err != nil {
			return err
		}
		wanted := make(map[string]bool, len(names))
		for _, name := range names {
			wanted[name] = true
		}
		filtered := plans[:0]
		for _, plan := range plans {
			if wanted[plan.Name] {
				filtered = append(filtered, plan)
			}
		}
		plans = filtered
	}

	plans, conflicts := syncer.ResolveConflicts(plans, resolution)

	for _, conflict := range conflicts {
		presenter.Error(conflict, "Conflict")
	}

	if len(plans) == 0 && len(conflicts) == 0 {
		presenter.Info("Everything is in sync.")
		eng.sink.PrintSkippedSummary()
		return nil
	}

	applier := &syncer.Applier{Provider: eng.provider}
	pushes, pulls := 0, 0

	for _, plan := range plans {
		if cfg.DryRun {
			fmt.Printf("Would %s\n", describePlan(plan))
		} else {
			if err := applier.Apply(plan); err != nil {
				presenter.Error(err, "Failed to sync "+plan.Name)
				continue
			}
			fmt.Printf("%s: %s\n", plan.Name, describeAction(plan))
		}
		switch plan.Action.Kind {
		case syncer.Push:
			pushes++
		case syncer.Pull:
			pulls++
		case syncer.PullAndPush:
			pulls++
			pushes++
		}
	}

	fmt.Printf("\n%d push%s, %d pull%s", pushes, pluralES(pushes), pulls, plural(pulls))
	if len(conflicts) > 0 {
		fmt.Printf(", %d conflict%s", len(conflicts), plural(len(conflicts)))
	}
	fmt.Println(".")

	eng.sink.PrintSkippedSummary()
	eng.sink.PrintWarningSummary()

	if len(conflicts) > 0 {
		return fmt.Errorf("%d skill%s left unsynced due to conflicts", len(conflicts), plural(len(conflicts)))
	}
	return nil
}

// describePlan phrases a plan as a dry-run sentence.
func describePlan(plan *syncer.Plan) string {
	return fmt.Sprintf("sync %s: %s", plan.Name, describeAction(plan))
}

// describeAction summarizes what a plan's action writes where.
func describeAction(plan *syncer.Plan) string {
	switch plan.Action.Kind {
	case syncer.Push:
		return "push source to " + joinTools(plan.Action.ToTools)
	case syncer.Pull:
		return "pull from " + plan.Action.FromTool.DisplayName()
	case syncer.PullAndPush:
		return fmt.Sprintf("pull from %s, push to %s",
			plan.Action.FromTool.DisplayName(), joinTools(plan.Action.ToTools))
	default:
		return "no action"
	}
}

func joinTools(tools []tool.Tool) string {
	names := make([]string, 0, len(tools))
	for _, t := range tools {
		names = append(names, t.DisplayName())
	}
	return strings.Join(names, ", ")
}

func pluralES(count int) string {
	if count == 1 {
		return ""
	}
	return "es"
}
