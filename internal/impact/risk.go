package impact

import "testpilot/internal/types"

// rippleHighThreshold is the total ripple count above which a change set is
// HIGH risk even without an entity change.
const rippleHighThreshold = 10

// Score applies the deterministic risk rule. The entity check runs first and
// short-circuits the ripple threshold: an entity change with zero ripples is
// still HIGH.
func Score(clusters []types.ChangeCluster) types.RiskLevel {
	for _, c := range clusters {
		if c.SourceFile.Type == types.ComponentEntity {
			return types.RiskHigh
		}
	}
	total := 0
	for _, c := range clusters {
		total += len(c.RippleEffect)
	}
	switch {
	case total > rippleHighThreshold:
		return types.RiskHigh
	case total > 0:
		return types.RiskMedium
	default:
		return types.RiskLow
	}
}
