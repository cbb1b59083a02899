package syncer

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/jingkaihe/skillsync/pkg/paths"
	"github.com/jingkaihe/skillsync/pkg/render"
	"github.com/jingkaihe/skillsync/pkg/skill"
	"github.com/jingkaihe/skillsync/pkg/tool"
)

// Applier performs the file writes implied by sync plans. Each write is
// independent; a failure on one skill leaves earlier writes in place.
type Applier struct {
	Provider paths.Provider
}

// Apply executes a plan's action.
func (a *Applier) Apply(plan *Plan) error {
	switch plan.Action.Kind {
	case Push:
		return a.applyPush(plan, plan.Action.ToTools)
	case Pull:
		return a.applyPull(plan, plan.Action.FromTool)
	case PullAndPush:
		if err := a.applyPull(plan, plan.Action.FromTool); err != nil {
			return err
		}
		// The pulled content is the new canonical template for this
		// pass; re-read it from the plan rather than disk.
		pulled := plan.Differing[plan.Action.FromTool]
		return a.pushContents(plan.Name, pulled.Contents, plan.Action.ToTools)
	default:
		return errors.Errorf("unknown sync action for skill %q", plan.Name)
	}
}

// applyPush renders the source template per tool and installs it.
func (a *Applier) applyPush(plan *Plan, tools []tool.Tool) error {
	return a.pushContents(plan.Name, plan.Source.Contents, tools)
}

func (a *Applier) pushContents(name, contents string, tools []tool.Tool) error {
	for _, t := range tools {
		dir, err := t.SkillsDir(a.Provider)
		if err != nil {
			return err
		}

		rendered, err := render.Render(contents, t)
		if err != nil {
			return err
		}

		if err := WriteInstalled(dir, name, rendered); err != nil {
			return err
		}
	}
	return nil
}

// applyPull overwrites the source skill file with the tool copy's raw bytes.
// Templating is source-to-tool only, so the pulled content is written
// verbatim and becomes the new canonical template.
func (a *Applier) applyPull(plan *Plan, from tool.Tool) error {
	installed := plan.Differing[from]
	if installed == nil {
		return errors.Errorf("skill %q has no copy for %s to pull from", plan.Name, from.DisplayName())
	}

	if err := ValidatePulled(installed); err != nil {
		return err
	}

	if err := os.WriteFile(plan.Source.Path, []byte(installed.Contents), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write skill file %s", plan.Source.Path)
	}
	return nil
}

// ValidatePulled checks that tool-side content is still a valid skill before
// it is accepted as the new canonical template. A tool-side edit that drops
// the name or description would otherwise poison the next catalog load.
func ValidatePulled(installed *skill.Installed) error {
	if _, err := skill.ParseFrontmatter(installed.Contents); err != nil {
		return errors.Wrapf(err, "refusing to pull %s", installed.Path)
	}
	return nil
}

// WriteInstalled writes rendered skill content into a tool directory,
// creating the skill subdirectory if needed.
func WriteInstalled(toolDir, name, rendered string) error {
	skillDir := filepath.Join(toolDir, name)
	if err := os.MkdirAll(skillDir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create skill directory %s", skillDir)
	}

	path := filepath.Join(skillDir, skill.FileName)
	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return errors.Wrapf(err, "failed to write skill file %s", path)
	}
	return nil
}
