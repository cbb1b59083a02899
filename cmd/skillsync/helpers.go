package main

import (
	"fmt"
	"time"

	"github.com/gobwas/glob"
	"github.com/pkg/errors"

	"github.com/jingkaihe/skillsync/pkg/catalog"
	"github.com/jingkaihe/skillsync/pkg/config"
	"github.com/jingkaihe/skillsync/pkg/diagnostics"
	"github.com/jingkaihe/skillsync/pkg/paths"
	"github.com/jingkaihe/skillsync/pkg/skill"
)

// engine bundles the shared state every catalog-backed command starts from.
type engine struct {
	provider paths.Provider
	config   *config.Config
	catalog  *catalog.Catalog
	sink     *diagnostics.Sink
}

// loadEngine loads config and builds a fresh catalog. Configuration errors
// are fatal; per-skill problems land on the sink.
func loadEngine() (*engine, error) {
	provider := paths.OSProvider{}
	sink := diagnostics.New()

	cfg, err := config.Load(provider)
	if err != nil {
		return nil, err
	}

	return &engine{
		provider: provider,
		config:   cfg,
		catalog:  catalog.Load(cfg.Sources, provider, sink),
		sink:     sink,
	}, nil
}

// matchSkillNames expands name arguments, which may be glob patterns, against
// the available names. Every argument must match at least one name.
func matchSkillNames(args []string, available []string) ([]string, error) {
	if len(args) == 0 {
		return available, nil
	}

	seen := make(map[string]bool)
	var matched []string

	for _, arg := range args {
		pattern, err := glob.Compile(arg)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid skill pattern %q", arg)
		}

		any := false
		for _, name := range available {
			if pattern.Match(name) {
				any = true
				if !seen[name] {
					seen[name] = true
					matched = append(matched, name)
				}
			}
		}
		if !any {
			return nil, errors.Errorf("skill not found: %s", arg)
		}
	}

	return matched, nil
}

// displayPath abbreviates a path for output.
func (e *engine) displayPath(path string) string {
	return paths.Display(e.provider, path)
}

// formatAge renders a modification time as a relative age.
func formatAge(modified time.Time) string {
	elapsed := time.Since(modified)
	switch {
	case elapsed < time.Minute:
		return "moments ago"
	case elapsed < time.Hour:
		minutes := int(elapsed.Minutes())
		return fmt.Sprintf("%d minute%s ago", minutes, plural(minutes))
	case elapsed < 24*time.Hour:
		hours := int(elapsed.Hours())
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	default:
		days := int(elapsed.Hours() / 24)
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	}
}

func plural(count int) string {
	if count == 1 {
		return ""
	}
	return "s"
}

// sourceNames returns the catalog's source skill names.
func sourceNames(skills map[string]*skill.Source) []string {
	names := make([]string, 0, len(skills))
	for name := range skills {
		names = append(names, name)
	}
	return names
}
