package syncer

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/jingkaihe/skillsync/pkg/catalog"
	"github.com/jingkaihe/skillsync/pkg/diagnostics"
	"github.com/jingkaihe/skillsync/pkg/render"
	"github.com/jingkaihe/skillsync/pkg/skill"
	"github.com/jingkaihe/skillsync/pkg/status"
	"github.com/jingkaihe/skillsync/pkg/tool"
)

// Decision is the tri-state outcome of an interactive confirmation.
type Decision int

const (
	// Confirm proceeds with the operation.
	Confirm Decision = iota
	// Decline skips the operation and continues with the next one.
	Decline
	// Cancel aborts the remaining operations of the run.
	Cancel
)

// PullVariant is one installed copy that could be pulled back to source.
type PullVariant struct {
	// Installed carries the tool, origin, contents, and modification time.
	Installed *skill.Installed
	// Orphan marks a variant with no source counterpart; pulling it
	// creates a new source skill.
	Orphan bool
}

// PullPlan lists the pull candidates for one skill name.
type PullPlan struct {
	Name     string
	Source   *skill.Source
	Variants []*PullVariant
}

// CollectPullPlans builds pull plans across global and local copies. With a
// name filter, only that skill is planned; an unknown name is an error.
// Skills whose template fails to render are skipped with a diagnostic.
func CollectPullPlans(c *catalog.Catalog, name string, sink *diagnostics.Sink) ([]*PullPlan, error) {
	names := pullCandidateNames(c)

	if name != "" {
		found := false
		for _, candidate := range names {
			if candidate == name {
				found = true
				break
			}
		}
		if !found {
			return nil, errors.Errorf("skill not found: %s", name)
		}
		names = []string{name}
	}

	var plans []*PullPlan
	for _, candidate := range names {
		plan := collectVariants(c, candidate, sink)
		if plan != nil && len(plan.Variants) > 0 {
			plans = append(plans, plan)
		}
	}

	sort.Slice(plans, func(i, j int) bool {
		return strings.ToLower(plans[i].Name) < strings.ToLower(plans[j].Name)
	})

	return plans, nil
}

// collectVariants gathers the differing global and local copies of a skill.
// Returns nil when a render failure poisons the skill.
func collectVariants(c *catalog.Catalog, name string, sink *diagnostics.Sink) *PullPlan {
	source := c.Sources[name]
	plan := &PullPlan{Name: name, Source: source}

	for _, t := range tool.All() {
		for _, installed := range []*skill.Installed{c.Tools[t][name], c.Local[t][name]} {
			if installed == nil {
				continue
			}

			if source == nil {
				plan.Variants = append(plan.Variants, &PullVariant{Installed: installed, Orphan: true})
				continue
			}

			rendered, err := render.Render(source.Contents, t)
			if err != nil {
				sink.Skip(source.Path, err.Error())
				return nil
			}

			if !status.Equal(rendered, installed.Contents) {
				plan.Variants = append(plan.Variants, &PullVariant{Installed: installed})
			}
		}
	}

	return plan
}

// pullCandidateNames unions source, global, and local skill names in sorted
// order, sources first.
func pullCandidateNames(c *catalog.Catalog) []string {
	seen := make(map[string]bool)
	var names []string

	sourceNames := make([]string, 0, len(c.Sources))
	for name := range c.Sources {
		sourceNames = append(sourceNames, name)
	}
	sort.Strings(sourceNames)
	for _, name := range sourceNames {
		seen[name] = true
		names = append(names, name)
	}

	var installedNames []string
	for _, t := range tool.All() {
		for name := range c.Tools[t] {
			installedNames = append(installedNames, name)
		}
		for name := range c.Local[t] {
			installedNames = append(installedNames, name)
		}
	}
	sort.Strings(installedNames)
	for _, name := range installedNames {
		if !seen[name] {
			seen[name] = true
			names = append(names, name)
		}
	}

	return names
}

// ApplyVariant writes a pulled variant back to the source tree and returns
// the written skill directory. Orphan pulls create a new skill directory
// under targetRoot.
func (a *Applier) ApplyVariant(plan *PullPlan, variant *PullVariant, targetRoot string) (string, error) {
	if err := ValidatePulled(variant.Installed); err != nil {
		return "", err
	}

	skillDir := ""
	if plan.Source != nil {
		skillDir = plan.Source.Dir
	} else {
		skillDir = filepath.Join(targetRoot, plan.Name)
	}

	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		return "", errors.Wrapf(err, "failed to create skill directory %s", skillDir)
	}

	path := filepath.Join(skillDir, skill.FileName)
	if err := os.WriteFile(path, []byte(variant.Installed.Contents), 0o644); err != nil {
		return "", errors.Wrapf(err, "failed to write skill file %s", path)
	}

	return skillDir, nil
}
