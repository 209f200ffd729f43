package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSummary_ResultsBlock(t *testing.T) {
	out := `Tests run: 3, Failures: 0, Errors: 0, Skipped: 0 -- in com.app.UserServiceTest
Tests run: 4, Failures: 0, Errors: 0, Skipped: 1 -- in com.app.UserControllerTest

Results:

Tests run: 7, Failures: 0, Errors: 0, Skipped: 1

BUILD SUCCESS`

	summary, ok := ParseSummary(out)
	require.True(t, ok)
	assert.Contains(t, summary, "Test Execution Summary PASS")
	assert.Contains(t, summary, "**Total Tests**: 7")
	assert.Contains(t, summary, "**Skipped**: 1")
}

func TestParseSummary_FallbackUsesLastLine(t *testing.T) {
	out := `Tests run: 3, Failures: 0, Errors: 0, Skipped: 0
Tests run: 5, Failures: 2, Errors: 1, Skipped: 0`

	summary, ok := ParseSummary(out)
	require.True(t, ok)
	assert.Contains(t, summary, "Test Execution Summary FAIL")
	assert.Contains(t, summary, "**Total Tests**: 5")
	assert.Contains(t, summary, "**Failures**: 2")
	assert.Contains(t, summary, "**Errors**: 1")
}

func TestParseSummary_NoSummaryLine(t *testing.T) {
	_, ok := ParseSummary("BUILD FAILURE\ncompilation error")
	assert.False(t, ok)
}

func TestClassFilter(t *testing.T) {
	p := testPlanWithTargets(
		"src/test/java/com/app/UserServiceTest.java",
		"src/test/java/com/app/web/UserControllerTest.java",
	)
	got := ClassFilter(p, "src/test/java")
	assert.Equal(t, "com.app.UserServiceTest,com.app.web.UserControllerTest", got)
}

func TestClassFilter_Empty(t *testing.T) {
	assert.Equal(t, "", ClassFilter(testPlanWithTargets(), "src/test/java"))
}
