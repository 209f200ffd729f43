// Package impact composes the change set and the dependents search into
// change clusters and scores the aggregate risk.
package impact

import (
	"fmt"

	"testpilot/internal/classify"
	"testpilot/internal/gitdiff"
	"testpilot/internal/scan"
	"testpilot/internal/types"
)

// DependentsFinder locates files referencing a class name.
type DependentsFinder interface {
	Dependents(className, originPath string) []string
}

// Builder produces one ChangeCluster per changed file. Clusters are kept
// separate on purpose: a dependent shared by two changed files shows up in
// both ripple lists, and the duplication is only resolved when the plan is
// flattened.
type Builder struct {
	Index  *scan.Index
	Finder DependentsFinder
}

// Build classifies every changed file, collects its ripple, and returns the
// scored manifest. Changed paths missing from the frozen index are DELETED
// units and produce no cluster.
func (b *Builder) Build(changes []gitdiff.Change) types.ImpactManifest {
	changed := make(map[string]bool, len(changes))
	for _, c := range changes {
		changed[c.Path] = true
	}

	// Empty lists marshal as [] in the persisted manifest, not null.
	clusters := []types.ChangeCluster{}
	for _, c := range changes {
		unitType := b.classifyUnit(c.Path)
		if unitType == types.ComponentDeleted {
			continue
		}
		className := scan.ClassName(c.Path)

		ripple := []types.ImpactedUnit{}
		for _, dep := range b.Finder.Dependents(className, c.Path) {
			status := types.StatusImpacted
			if changed[dep] {
				status = types.StatusAlsoModified
			}
			ripple = append(ripple, types.ImpactedUnit{
				Path:   dep,
				Type:   b.classifyUnit(dep),
				Reason: fmt.Sprintf("Imports/Uses %s", className),
				Status: status,
			})
		}

		clusters = append(clusters, types.ChangeCluster{
			SourceFile: types.SourceUnit{
				Path:       c.Path,
				Type:       unitType,
				ClassName:  className,
				LineRanges: c.HunkStarts,
			},
			RippleEffect: ripple,
		})
	}

	return types.ImpactManifest{
		Summary: types.ImpactSummary{
			TotalFilesChanged: len(changes),
			RiskLevel:         Score(clusters),
		},
		Clusters: clusters,
	}
}

// classifyUnit reads content through the index cache. A path absent from the
// frozen enumeration is DELETED; an unreadable file degrades to a
// classification over empty content rather than failing the run.
func (b *Builder) classifyUnit(path string) types.ComponentType {
	if !b.Index.Contains(path) {
		return types.ComponentDeleted
	}
	content, err := b.Index.Content(path)
	if err != nil {
		content = nil
	}
	return classify.Classify(path, content, true)
}
