package plan

import "testpilot/internal/types"

// Strategy pairs a test type with the frameworks it relies on.
type Strategy struct {
	TestType   string
	Frameworks []string
}

// strategies is the fixed table keyed by component type. Anything outside
// the table falls back to a minimal regression setup.
var strategies = map[types.ComponentType]Strategy{
	types.ComponentController: {TestType: "controller", Frameworks: []string{"JUnit 5", "Spring MockMvc"}},
	types.ComponentService:    {TestType: "service", Frameworks: []string{"JUnit 5", "Mockito"}},
	types.ComponentRepository: {TestType: "repository", Frameworks: []string{"JUnit 5", "DataJpaTest", "Testcontainers"}},
	types.ComponentDTO:        {TestType: "dto", Frameworks: []string{"JUnit 5", "AssertJ"}},
}

var defaultStrategy = Strategy{TestType: "general", Frameworks: []string{"JUnit 5"}}

// StrategyFor looks up the test strategy for a component type.
func StrategyFor(t types.ComponentType) Strategy {
	if s, ok := strategies[t]; ok {
		return s
	}
	return defaultStrategy
}
