package types

// ComponentType is the heuristic role assigned to a source unit.
type ComponentType string

const (
	ComponentController ComponentType = "CONTROLLER"
	ComponentService    ComponentType = "SERVICE"
	ComponentRepository ComponentType = "REPOSITORY"
	ComponentEntity     ComponentType = "ENTITY"
	ComponentDTO        ComponentType = "DTO"
	ComponentGeneric    ComponentType = "GENERIC"
	// ComponentDeleted marks a changed path that no longer exists on disk.
	// Deleted units are excluded from impact analysis.
	ComponentDeleted ComponentType = "DELETED"
)

// RiskLevel is the aggregate risk classification of a change set.
type RiskLevel string

const (
	RiskLow    RiskLevel = "LOW"
	RiskMedium RiskLevel = "MEDIUM"
	RiskHigh   RiskLevel = "HIGH"
)

// ImpactStatus distinguishes dependents that were themselves modified.
type ImpactStatus string

const (
	StatusImpacted     ImpactStatus = "IMPACTED"
	StatusAlsoModified ImpactStatus = "ALSO_MODIFIED"
)

// SourceUnit is one directly changed file with its diff hunk start lines.
type SourceUnit struct {
	Path       string        `json:"path"`
	Type       ComponentType `json:"type"`
	ClassName  string        `json:"class_name"`
	LineRanges []int         `json:"line_ranges"`
}

// ImpactedUnit is a file pulled in by the ripple of a direct change.
type ImpactedUnit struct {
	Path   string        `json:"path"`
	Type   ComponentType `json:"type"`
	Reason string        `json:"reason"`
	Status ImpactStatus  `json:"status"`
}

// ChangeCluster groups one changed file with its detected ripple effects.
// Clusters are never merged; a shared dependent appears in every cluster
// that reaches it.
type ChangeCluster struct {
	SourceFile   SourceUnit     `json:"source_file"`
	RippleEffect []ImpactedUnit `json:"ripple_effect"`
}

// ImpactSummary aggregates the manifest-level counters.
type ImpactSummary struct {
	TotalFilesChanged int       `json:"total_files_changed"`
	RiskLevel         RiskLevel `json:"risk_level"`
}

// ImpactManifest is the structured record of one analysis run. It is written
// once after risk scoring and never mutated afterwards.
type ImpactManifest struct {
	Summary  ImpactSummary   `json:"summary"`
	Clusters []ChangeCluster `json:"impact_analysis"`
}

// ImpactOrigin records how a path entered the test plan.
type ImpactOrigin string

const (
	OriginDirect ImpactOrigin = "DIRECT"
	OriginRipple ImpactOrigin = "RIPPLE"
)

// PlanAction selects between creating a new test file and extending one.
type PlanAction string

const (
	ActionCreate PlanAction = "CREATE"
	ActionExtend PlanAction = "EXTEND"
)

// CoverageGoal is High for direct changes and Regression for ripples.
type CoverageGoal string

const (
	CoverageHigh       CoverageGoal = "High"
	CoverageRegression CoverageGoal = "Regression"
)

// TestPlanEntry is one test target. A plan holds at most one entry per
// source path; the first occurrence fixes the impact origin permanently.
type TestPlanEntry struct {
	ComponentName  string       `json:"component_name"`
	SourcePath     string       `json:"source_path"`
	ImpactOrigin   ImpactOrigin `json:"impact_origin"`
	TestType       string       `json:"test_type"`
	Frameworks     []string     `json:"frameworks"`
	TargetTestFile string       `json:"target_test_file"`
	Action         PlanAction   `json:"action"`
	CoverageGoal   CoverageGoal `json:"coverage_goal"`
}

// TestPlan is the ordered, deduplicated list of tests to (re)generate.
type TestPlan struct {
	PlanID  string          `json:"plan_id"`
	Entries []TestPlanEntry `json:"test_entries"`
}
