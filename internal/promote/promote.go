// Package promote publishes run artifacts: generated tests, manifest, and
// plan onto a dedicated branch, with a pull request on success and a bare
// diagnostics branch on heal exhaustion.
package promote

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// BranchPrefix marks branches produced by this agent. Runs whose head ref
// already carries the prefix are re-entrant and must not generate again.
const BranchPrefix = "ai-test-suite-"

const commitMessage = "test: generated test suite and impact analysis"

// Promoter stages and publishes the run's artifacts.
type Promoter struct {
	// Dir is the git working directory.
	Dir string
	// HeadRef is the current working branch (GITHUB_HEAD_REF).
	HeadRef string
	// RefName identifies the originating change request (GITHUB_REF_NAME,
	// e.g. "123/merge"); its first segment names the promotion branch.
	RefName string
	// BaseBranch is the PR base.
	BaseBranch string
	// TestRoot is the generated-test directory to stage.
	TestRoot string
	// Artifacts are extra repo-relative files to stage (manifest, plan).
	Artifacts []string
}

// Command runners are injectable in tests.
var (
	runGitCommand = func(ctx context.Context, dir string, args ...string) error {
		return runTool(ctx, dir, "git", args...)
	}
	runGhCommand = func(ctx context.Context, dir string, args ...string) error {
		return runTool(ctx, dir, "gh", args...)
	}
)

func runTool(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Reentrant reports whether the run is already on a generated-suite branch.
func (p *Promoter) Reentrant() bool {
	return strings.HasPrefix(p.HeadRef, BranchPrefix)
}

// ChangeRequestID is the first segment of the originating ref name.
func (p *Promoter) ChangeRequestID() string {
	id, _, _ := strings.Cut(p.RefName, "/")
	return id
}

// BranchName is the deterministic promotion branch for this change request.
func (p *Promoter) BranchName() string {
	return BranchPrefix + p.ChangeRequestID()
}

// ErrorBranchName is the diagnostics branch variant.
func (p *Promoter) ErrorBranchName() string {
	return BranchPrefix + "error" + p.ChangeRequestID()
}

// PromoteSuccess pushes the validated suite to the promotion branch and
// opens a pull request carrying the run summary. On a re-entrant run it is
// a no-op.
func (p *Promoter) PromoteSuccess(ctx context.Context, summary string) error {
	if p.Reentrant() {
		return nil
	}
	branch := p.BranchName()
	if err := p.publish(ctx, branch, p.Artifacts); err != nil {
		return err
	}
	id := p.ChangeRequestID()
	body := fmt.Sprintf("### AI Generated Test Suite\n%s\n\nRelated to PR #%s", summary, id)
	return runGhCommand(ctx, p.Dir, "pr", "create",
		"--title", fmt.Sprintf("[PR-Aware] Test Validation for PR #%s", id),
		"--body", body,
		"--base", p.BaseBranch,
		"--head", branch,
	)
}

// PublishFailure pushes the artifacts plus the diagnostics log to the error
// branch. No pull request is opened; the caller signals failure instead.
func (p *Promoter) PublishFailure(ctx context.Context, diagnosticsPath string) error {
	if p.Reentrant() {
		return nil
	}
	return p.publish(ctx, p.ErrorBranchName(), append(append([]string{}, p.Artifacts...), diagnosticsPath))
}

func (p *Promoter) publish(ctx context.Context, branch string, extra []string) error {
	if err := runGitCommand(ctx, p.Dir, "checkout", "-b", branch); err != nil {
		return err
	}
	addArgs := append([]string{"add", p.TestRoot}, extra...)
	if err := runGitCommand(ctx, p.Dir, addArgs...); err != nil {
		return err
	}
	if err := runGitCommand(ctx, p.Dir, "commit", "-m", commitMessage); err != nil {
		return err
	}
	return runGitCommand(ctx, p.Dir, "push", "origin", branch, "--force")
}
