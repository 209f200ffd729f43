package build

import (
	"fmt"
	"regexp"
)

var (
	// The aggregate line that follows maven's "Results:" header.
	reResultsBlock = regexp.MustCompile(`(?i)Results\s*:\s*\n+\s*Tests run: (\d+), Failures: (\d+), Errors: (\d+), Skipped: (\d+)`)
	// Any per-class summary line; the last one is the fallback aggregate.
	reTestsRun = regexp.MustCompile(`Tests run: (\d+), Failures: (\d+), Errors: (\d+), Skipped: (\d+)`)
)

// ParseSummary extracts the aggregate test summary from raw console output
// and renders it as markdown. ok is false when no summary line is present;
// callers treat that as a best-effort reporting miss, never a run failure.
func ParseSummary(output string) (summary string, ok bool) {
	groups := reResultsBlock.FindStringSubmatch(output)
	if groups == nil {
		all := reTestsRun.FindAllStringSubmatch(output, -1)
		if len(all) == 0 {
			return "", false
		}
		groups = all[len(all)-1]
	}
	runs, fails, errs, skips := groups[1], groups[2], groups[3], groups[4]
	status := "PASS"
	if fails != "0" || errs != "0" {
		status = "FAIL"
	}
	return fmt.Sprintf(
		"### Test Execution Summary %s\n- **Total Tests**: %s\n- **Failures**: %s\n- **Errors**: %s\n- **Skipped**: %s\n",
		status, runs, fails, errs, skips,
	), true
}
