package promote

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type toolCall struct {
	tool string
	args []string
}

func stubTools(t *testing.T, gitErr, ghErr error) *[]toolCall {
	t.Helper()
	var calls []toolCall
	origGit, origGh := runGitCommand, runGhCommand
	runGitCommand = func(_ context.Context, _ string, args ...string) error {
		calls = append(calls, toolCall{tool: "git", args: args})
		return gitErr
	}
	runGhCommand = func(_ context.Context, _ string, args ...string) error {
		calls = append(calls, toolCall{tool: "gh", args: args})
		return ghErr
	}
	t.Cleanup(func() { runGitCommand, runGhCommand = origGit, origGh })
	return &calls
}

func newPromoter() *Promoter {
	return &Promoter{
		Dir:        "/repo",
		RefName:    "123/merge",
		BaseBranch: "main",
		TestRoot:   "src/test/java",
		Artifacts:  []string{"impact.json", "test-plan.json"},
	}
}

func TestPromoter_Names(t *testing.T) {
	p := newPromoter()
	assert.Equal(t, "123", p.ChangeRequestID())
	assert.Equal(t, "ai-test-suite-123", p.BranchName())
	assert.Equal(t, "ai-test-suite-error123", p.ErrorBranchName())
	assert.False(t, p.Reentrant())
}

func TestPromoter_ReentrantDetection(t *testing.T) {
	p := newPromoter()
	p.HeadRef = "ai-test-suite-123"
	assert.True(t, p.Reentrant())

	calls := stubTools(t, nil, nil)
	require.NoError(t, p.PromoteSuccess(context.Background(), "summary"))
	require.NoError(t, p.PublishFailure(context.Background(), "failure_diagnostics.log"))
	assert.Empty(t, *calls, "re-entrant runs publish nothing")
}

func TestPromoteSuccess_CommandSequence(t *testing.T) {
	calls := stubTools(t, nil, nil)
	p := newPromoter()

	require.NoError(t, p.PromoteSuccess(context.Background(), "### Test Execution Summary PASS"))

	require.Len(t, *calls, 5)
	assert.Equal(t, []string{"checkout", "-b", "ai-test-suite-123"}, (*calls)[0].args)
	assert.Equal(t, []string{"add", "src/test/java", "impact.json", "test-plan.json"}, (*calls)[1].args)
	assert.Equal(t, "commit", (*calls)[2].args[0])
	assert.Equal(t, []string{"push", "origin", "ai-test-suite-123", "--force"}, (*calls)[3].args)

	gh := (*calls)[4]
	assert.Equal(t, "gh", gh.tool)
	joined := strings.Join(gh.args, " ")
	assert.Contains(t, joined, "pr create")
	assert.Contains(t, joined, "[PR-Aware] Test Validation for PR #123")
	assert.Contains(t, joined, "Test Execution Summary PASS")
	assert.Contains(t, joined, "Related to PR #123")
	assert.Contains(t, joined, "--base main")
	assert.Contains(t, joined, "--head ai-test-suite-123")
}

func TestPromoteSuccess_GitFailureSkipsPullRequest(t *testing.T) {
	calls := stubTools(t, errors.New("push rejected"), nil)
	p := newPromoter()

	err := p.PromoteSuccess(context.Background(), "summary")
	require.Error(t, err)
	for _, c := range *calls {
		assert.NotEqual(t, "gh", c.tool, "no PR after a failed publish")
	}
}

func TestPublishFailure_ErrorBranchWithoutPullRequest(t *testing.T) {
	calls := stubTools(t, nil, nil)
	p := newPromoter()

	require.NoError(t, p.PublishFailure(context.Background(), "failure_diagnostics.log"))

	require.Len(t, *calls, 4)
	assert.Equal(t, []string{"checkout", "-b", "ai-test-suite-error123"}, (*calls)[0].args)
	assert.Equal(t,
		[]string{"add", "src/test/java", "impact.json", "test-plan.json", "failure_diagnostics.log"},
		(*calls)[1].args)
	for _, c := range *calls {
		assert.Equal(t, "git", c.tool, "exhaustion never opens a PR")
	}
}
