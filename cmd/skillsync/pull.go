package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jingkaihe/skillsync/pkg/diffutil"
	"github.com/jingkaihe/skillsync/pkg/presenter"
	"github.com/jingkaihe/skillsync/pkg/syncer"
)

type PullConfig struct {
	To     string
	DryRun bool
	Yes    bool
}

func NewPullConfig() *PullConfig {
	return &PullConfig{}
}

var pullCmd = &cobra.Command{
	Use:   "pull [name]",
	Short: "Pull tool-side edits back into source skills",
	Long: `Copy skill edits made inside a tool's skills directory back to the
canonical source file. Each differing copy (global or per-project) is offered
as a pull candidate; skills installed in a tool but absent from every source
directory can be adopted as new source skills.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := getPullConfigFromFlags(cmd)
		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		if err := runPull(name, cfg); err != nil {
			presenter.Error(err, "Pull failed")
			os.Exit(1)
		}
	},
}

func init() {
	defaults := NewPullConfig()
	pullCmd.Flags().String("to", defaults.To, "Target source directory for newly adopted skills")
	pullCmd.Flags().BoolP("dry-run", "n", defaults.DryRun, "Preview changes without writing")
	pullCmd.Flags().BoolP("yes", "y", defaults.Yes, "Pull without prompting, preferring the newest copy")
}

func getPullConfigFromFlags(cmd *cobra.Command) *PullConfig {
	config := NewPullConfig()
	if to, err := cmd.Flags().GetString("to"); err == nil {
		config.To = to
	}
	if dryRun, err := cmd.Flags().GetBool("dry-run"); err == nil {
		config.DryRun = dryRun
	}
	if yes, err := cmd.Flags().GetBool("yes"); err == nil {
		config.Yes = yes
	}
	return config
}

func runPull(name string, cfg *PullConfig) error {
	eng, err := loadEngine()
	if err != nil {
		return err
	}

	plans, err := syncer.CollectPullPlans(eng.catalog, name, eng.sink)
	if err != nil {
		return err
	}
	if len(plans) == 0 {
		presenter.Info("Nothing to pull.")
		eng.sink.PrintSkippedSummary()
		return nil
	}

	targetRoot := cfg.To
	if targetRoot == "" {
		targetRoot = eng.config.Sources[0]
	}

	applier := &syncer.Applier{Provider: eng.provider}
	pulled := 0

	for _, plan := range plans {
		variant, decision := choosePullVariant(eng, plan, cfg)
		if decision == syncer.Cancel {
			presenter.Info("Cancelled.")
			break
		}
		if decision == syncer.Decline || variant == nil {
			continue
		}

		if cfg.DryRun {
			fmt.Printf("Would pull %s from %s\n", plan.Name, describeVariant(variant))
			pulled++
			continue
		}

		dir, err := applier.ApplyVariant(plan, variant, targetRoot)
		if err != nil {
			presenter.Error(err, "Failed to pull "+plan.Name)
			continue
		}
		if variant.Orphan {
			presenter.Success(fmt.Sprintf("Adopted %s into %s", plan.Name, eng.displayPath(dir)))
		} else {
			presenter.Success(fmt.Sprintf("Pulled %s from %s", plan.Name, describeVariant(variant)))
		}
		pulled++
	}

	if pulled == 0 {
		presenter.Info("No skills pulled.")
	} else {
		fmt.Printf("\n%d skill%s pulled.\n", pulled, plural(pulled))
	}
	eng.sink.PrintSkippedSummary()
	return nil
}

// choosePullVariant resolves which copy of a skill to pull, prompting when
// more than one candidate differs from source.
func choosePullVariant(eng *engine, plan *syncer.PullPlan, cfg *PullConfig) (*syncer.PullVariant, syncer.Decision) {
	if cfg.Yes {
		return newestVariant(plan.Variants), syncer.Confirm
	}

	if len(plan.Variants) == 1 {
		variant := plan.Variants[0]
		verb := "Pull"
		if variant.Orphan {
			verb = "Adopt"
		}
		question := fmt.Sprintf("%s %s from %s?", verb, plan.Name, describeVariant(variant))
		return variant, promptDecision(question)
	}

	return selectVariant(eng, plan)
}

// selectVariant runs the interactive picker for a skill with several differing
// copies. "d" shows a diff when exactly two candidates exist.
func selectVariant(eng *engine, plan *syncer.PullPlan) (*syncer.PullVariant, syncer.Decision) {
	fmt.Printf("%s has %d differing copies:\n", plan.Name, len(plan.Variants))
	for i, variant := range plan.Variants {
		fmt.Printf("  %d) %s\n", i+1, describeVariant(variant))
	}

	options := make([]string, 0, len(plan.Variants)+3)
	for i := range plan.Variants {
		options = append(options, strconv.Itoa(i+1))
	}
	if len(plan.Variants) == 2 {
		options = append(options, "d")
	}
	options = append(options, "s", "q")

	for {
		answer := strings.ToLower(presenter.Prompt("Pull which copy", options...))
		switch answer {
		case "s", "skip", "":
			return nil, syncer.Decline
		case "q", "quit":
			return nil, syncer.Cancel
		case "d", "diff":
			if len(plan.Variants) != 2 {
				presenter.Info("Diff is only available with exactly two copies.")
				continue
			}
			a, b := plan.Variants[0], plan.Variants[1]
			diff := diffutil.Unified(
				describeVariant(a), describeVariant(b),
				a.Installed.Contents, b.Installed.Contents,
			)
			fmt.Print(diffutil.Colorize(diff, presenter.ColorEnabled()))
		default:
			index, err := strconv.Atoi(answer)
			if err != nil || index < 1 || index > len(plan.Variants) {
				presenter.Info("Unrecognized choice.")
				continue
			}
			return plan.Variants[index-1], syncer.Confirm
		}
	}
}

// promptDecision asks a yes/no/quit question and maps the answer onto the
// tri-state decision.
func promptDecision(question string) syncer.Decision {
	answer := strings.ToLower(presenter.Prompt(question, "y", "N", "q"))
	switch answer {
	case "y", "yes":
		return syncer.Confirm
	case "q", "quit":
		return syncer.Cancel
	default:
		return syncer.Decline
	}
}

// newestVariant picks the most recently modified candidate.
func newestVariant(variants []*syncer.PullVariant) *syncer.PullVariant {
	var newest *syncer.PullVariant
	for _, variant := range variants {
		if newest == nil || variant.Installed.ModTime.After(newest.Installed.ModTime) {
			newest = variant
		}
	}
	return newest
}

// describeVariant labels a pull candidate with its tool, origin, and age.
func describeVariant(variant *syncer.PullVariant) string {
	installed := variant.Installed
	return fmt.Sprintf("%s (%s, %s)", installed.Tool.DisplayName(), installed.Origin, formatAge(installed.ModTime))
}
