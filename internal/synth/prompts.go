package synth

import (
	"fmt"
	"strings"

	"testpilot/internal/types"
)

const systemRole = "You are a Senior Java Test Automation Engineer. " +
	"Generate correct, compiling, deterministic JUnit 5 tests. " +
	"Return ONLY Java source code."

func buildSynthesizePrompt(e types.TestPlanEntry, sourceCode, existingTestCode string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nGenerate JUnit 5 code for %s.\n\n", systemRole, e.TargetTestFile)
	fmt.Fprintf(&b, "CONTEXT:\n- Component Type: %s\n- Frameworks: %s\n- Action: %s existing test file.\n\n",
		e.TestType, strings.Join(e.Frameworks, ", "), e.Action)
	fmt.Fprintf(&b, "SOURCE CODE:\n```java\n%s\n```\n", sourceCode)
	if e.Action == types.ActionExtend {
		fmt.Fprintf(&b, "\nEXISTING TEST CODE:\n```java\n%s\n```\n", existingTestCode)
	}
	b.WriteString("\nRULES:\n")
	b.WriteString("1. If CREATE: output the full class with package and imports.\n")
	b.WriteString("2. If EXTEND: output ONLY the new @Test methods to be added.\n")
	b.WriteString("3. Do not invent constructors.\n")
	b.WriteString("4. Use Mockito where applicable.\n")
	b.WriteString("5. Only return Java code. No markdown explanations.\n")
	b.WriteString("6. Focus on edge cases and the logic changed in the PR.\n")
	return b.String()
}

func buildHealPrompt(e types.TestPlanEntry, sourceCode, currentTest, errorLog string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\nFix the failing JUnit 5 test so it compiles and passes.\n\n", systemRole)
	b.WriteString("RULES:\n")
	b.WriteString("1. Output the FULL Java source for the test file.\n")
	b.WriteString("2. Do not change production code.\n")
	b.WriteString("3. Return ONLY the corrected Java code.\n\n")
	fmt.Fprintf(&b, "TARGET_TEST_FILE:\n%s\n\n", e.TargetTestFile)
	fmt.Fprintf(&b, "SOURCE CODE:\n```java\n%s\n```\n\n", sourceCode)
	fmt.Fprintf(&b, "CURRENT TEST CODE:\n```java\n%s\n```\n\n", currentTest)
	fmt.Fprintf(&b, "ERROR LOG:\n%s\n", errorLog)
	return b.String()
}
