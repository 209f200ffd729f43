// Package plan flattens an impact manifest into an ordered, deduplicated
// test plan.
package plan

import (
	"testpilot/internal/scan"
	"testpilot/internal/types"
)

const planIDPrefix = "PR_TEST_PLAN_"

// Generator derives test plans from impact manifests.
type Generator struct {
	Mapper Mapper
	// Exists reports whether a file is already present at a repo-relative
	// path; it decides CREATE vs EXTEND.
	Exists func(path string) bool
}

// Generate walks clusters in manifest order, the direct unit before its
// ripples. The first time a path is seen it enters the plan with its current
// origin and that label is permanent: a later occurrence of the same path in
// another cluster neither duplicates nor relabels the entry. Ripple units
// that were themselves modified are skipped here; they are direct changes
// and get their DIRECT entry from their own cluster.
func (g *Generator) Generate(m types.ImpactManifest, runID string) types.TestPlan {
	out := types.TestPlan{PlanID: planIDPrefix + runID, Entries: []types.TestPlanEntry{}}
	seen := make(map[string]bool)

	add := func(path string, typ types.ComponentType, origin types.ImpactOrigin) {
		if seen[path] {
			return
		}
		seen[path] = true

		strategy := StrategyFor(typ)
		target := g.Mapper.TestPath(path)
		action := types.ActionCreate
		if g.Exists != nil && g.Exists(target) {
			action = types.ActionExtend
		}
		goal := types.CoverageHigh
		if origin == types.OriginRipple {
			goal = types.CoverageRegression
		}
		out.Entries = append(out.Entries, types.TestPlanEntry{
			ComponentName:  scan.ClassName(path),
			SourcePath:     path,
			ImpactOrigin:   origin,
			TestType:       strategy.TestType,
			Frameworks:     strategy.Frameworks,
			TargetTestFile: target,
			Action:         action,
			CoverageGoal:   goal,
		})
	}

	for _, cluster := range m.Clusters {
		add(cluster.SourceFile.Path, cluster.SourceFile.Type, types.OriginDirect)
		for _, dep := range cluster.RippleEffect {
			if dep.Status == types.StatusAlsoModified {
				continue
			}
			add(dep.Path, dep.Type, types.OriginRipple)
		}
	}
	return out
}
