// Package syncer plans and applies bidirectional synchronization between
// canonical skill sources and per-tool installed copies. Direction is decided
// per skill from modification times: a source at least as new as every
// differing tool copy is pushed outward; otherwise the newest tool copy is
// pulled back and becomes the new canonical content for the pass.
package syncer

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jingkaihe/skillsync/pkg/catalog"
	"github.com/jingkaihe/skillsync/pkg/diagnostics"
	"github.com/jingkaihe/skillsync/pkg/render"
	"github.com/jingkaihe/skillsync/pkg/skill"
	"github.com/jingkaihe/skillsync/pkg/status"
	"github.com/jingkaihe/skillsync/pkg/tool"
)

// ActionKind describes the direction of a sync plan.
type ActionKind int

const (
	// Push writes rendered source content to the differing tools.
	Push ActionKind = iota
	// Pull writes a tool copy back over the source skill.
	Pull
	// PullAndPush pulls from the newest tool, then pushes the pulled
	// content to the remaining differing tools.
	PullAndPush
)

// Action is the resolved direction for one skill's sync.
type Action struct {
	Kind ActionKind
	// FromTool is the tool pulled from (Pull and PullAndPush).
	FromTool tool.Tool
	// ToTools are the tools pushed to (Push and PullAndPush), in
	// declaration order.
	ToTools []tool.Tool
}

// Plan is the computed sync work for a single skill.
type Plan struct {
	Name   string
	Source *skill.Source
	// Differing holds the tool copies whose content differs from the
	// rendered source, keyed by tool.
	Differing [tool.Count]*skill.Installed
	Action    Action
}

// DifferingTools returns the tools with a differing copy, in declaration
// order.
func (p *Plan) DifferingTools() []tool.Tool {
	var tools []tool.Tool
	for _, t := range tool.All() {
		if p.Differing[t] != nil {
			tools = append(tools, t)
		}
	}
	return tools
}

// ConflictResolution selects how divergent tool copies are handled.
type ConflictResolution int

const (
	// ResolveError surfaces divergence as an error for that skill.
	ResolveError ConflictResolution = iota
	// PreferSource pushes the source over all differing tools.
	PreferSource
	// PreferTool pulls from the newest tool and pushes to the rest.
	PreferTool
)

// ConflictError reports a skill whose tool copies diverged from each other
// under the default resolution strategy.
type ConflictError struct {
	Name  string
	Tools []tool.Tool
}

func (e *ConflictError) Error() string {
	labels := make([]string, 0, len(e.Tools))
	for _, t := range e.Tools {
		labels = append(labels, "["+t.ID()+"]")
	}
	return fmt.Sprintf("skill %q has divergent changes in %s; re-run with --prefer-source or --prefer-tool, or reconcile manually", e.Name, strings.Join(labels, " and "))
}

// BuildPlans computes one plan per source skill with at least one differing
// tool copy. Render failures skip the affected (skill, tool) pair with a
// diagnostic. Plans are ordered case-insensitively by name.
func BuildPlans(c *catalog.Catalog, sink *diagnostics.Sink) []*Plan {
	var plans []*Plan

	for name, source := range c.Sources {
		plan := &Plan{Name: name, Source: source}
		any := false

		for _, t := range tool.All() {
			installed := c.Tools[t][name]
			if installed == nil {
				continue
			}

			rendered, err := render.Render(source.Contents, t)
			if err != nil {
				sink.Skip(source.Path, err.Error())
				continue
			}

			if !status.Equal(rendered, installed.Contents) {
				plan.Differing[t] = installed
				any = true
			}
		}

		if !any {
			continue
		}

		plan.Action = determineAction(source, plan)
		plans = append(plans, plan)
	}

	sort.Slice(plans, func(i, j int) bool {
		return strings.ToLower(plans[i].Name) < strings.ToLower(plans[j].Name)
	})

	return plans
}

// determineAction picks the sync direction from modification times. Ties go
// to the source.
func determineAction(source *skill.Source, plan *Plan) Action {
	newest := tool.Count
	var newestTime time.Time
	for _, t := range tool.All() {
		installed := plan.Differing[t]
		if installed == nil {
			continue
		}
		if newest == tool.Count || installed.ModTime.After(newestTime) {
			newest = t
			newestTime = installed.ModTime
		}
	}

	if newest == tool.Count || !source.ModTime.Before(newestTime) {
		return Action{Kind: Push, ToTools: plan.DifferingTools()}
	}

	var others []tool.Tool
	for _, t := range plan.DifferingTools() {
		if t != newest {
			others = append(others, t)
		}
	}

	if len(others) == 0 {
		return Action{Kind: Pull, FromTool: newest}
	}
	return Action{Kind: PullAndPush, FromTool: newest, ToTools: others}
}

// HasConflict reports whether two or more of the plan's differing tool
// copies are mutually different, independent of their relation to source.
func (p *Plan) HasConflict() bool {
	var first *skill.Installed
	for _, t := range tool.All() {
		installed := p.Differing[t]
		if installed == nil {
			continue
		}
		if first == nil {
			first = installed
			continue
		}
		if !status.Equal(first.Contents, installed.Contents) {
			return true
		}
	}
	return false
}

// ResolveConflicts rewrites the action of each conflicted plan according to
// the strategy. Under ResolveError, conflicted plans are removed and
// returned as per-skill errors; plans already computed for other skills are
// unaffected.
func ResolveConflicts(plans []*Plan, resolution ConflictResolution) ([]*Plan, []error) {
	var kept []*Plan
	var conflicts []error

	for _, plan := range plans {
		if !plan.HasConflict() {
			kept = append(kept, plan)
			continue
		}

		switch resolution {
		case PreferSource:
			plan.Action = Action{Kind: Push, ToTools: plan.DifferingTools()}
			kept = append(kept, plan)
		case PreferTool:
			plan.Action = preferNewestTool(plan)
			kept = append(kept, plan)
		default:
			conflicts = append(conflicts, &ConflictError{Name: plan.Name, Tools: plan.DifferingTools()})
		}
	}

	return kept, conflicts
}

// preferNewestTool pulls from the newest differing tool and pushes to the
// rest.
func preferNewestTool(plan *Plan) Action {
	newest := tool.Count
	var newestTime time.Time
	for _, t := range tool.All() {
		installed := plan.Differing[t]
		if installed == nil {
			continue
		}
		if newest == tool.Count || installed.ModTime.After(newestTime) {
			newest = t
			newestTime = installed.ModTime
		}
	}

	var others []tool.Tool
	for _, t := range plan.DifferingTools() {
		if t != newest {
			others = append(others, t)
		}
	}

	if len(others) == 0 {
		return Action{Kind: Pull, FromTool: newest}
	}
	return Action{Kind: PullAndPush, FromTool: newest, ToTools: others}
}
