// Package agent sequences the run: index, change set, impact manifest, test
// plan, synthesis, the heal loop, and promotion. Every stage consumes and
// produces immutable values; the collaborators with side effects are
// injected as ports so the sequence can run against fakes.
package agent

import (
	"context"
	"errors"
	"log"

	"testpilot/internal/artifact"
	"testpilot/internal/build"
	"testpilot/internal/config"
	"testpilot/internal/gitdiff"
	"testpilot/internal/heal"
	"testpilot/internal/impact"
	"testpilot/internal/plan"
	"testpilot/internal/safeio"
	"testpilot/internal/scan"
	"testpilot/internal/types"
	"testpilot/internal/wordidx"
)

// Artifact file names, staged for promotion alongside the generated tests.
const (
	ManifestFile    = "impact.json"
	PlanFile        = "test-plan.json"
	DiagnosticsFile = "failure_diagnostics.log"
)

// ErrExhausted is returned when the heal loop gives up; the process must
// then exit non-zero.
var ErrExhausted = errors.New("agent: heal attempts exhausted")

// ChangeSource yields the changed files for the run.
type ChangeSource interface {
	Changes(ctx context.Context, base string) []gitdiff.Change
}

// Synthesizer is the code-generation side of the run.
type Synthesizer interface {
	SynthesizeAll(ctx context.Context, p types.TestPlan) error
	Heal(ctx context.Context, e types.TestPlanEntry, errorLog string) error
}

// Promoter publishes the run's outcome.
type Promoter interface {
	Reentrant() bool
	PromoteSuccess(ctx context.Context, summary string) error
	PublishFailure(ctx context.Context, diagnosticsPath string) error
}

const fallbackSummary = "All generated tests passed after validation."

// Agent is one fully wired run.
type Agent struct {
	Config   *config.Config
	FS       *safeio.SafeFS
	Changes  ChangeSource
	Synth    Synthesizer
	Runner   build.Runner
	Promoter Promoter
	Store    *artifact.Store
}

// Execute runs the pipeline to completion. It returns nil on SUCCESS and on
// the empty-change and re-entrant shortcuts; it returns ErrExhausted after
// diagnostics have been persisted and published.
func (a *Agent) Execute(ctx context.Context) error {
	cfg := a.Config
	if a.Promoter.Reentrant() {
		log.Printf("skipping: already on a generated-suite branch (%s)", cfg.HeadRef)
		return nil
	}

	idx, err := scan.NewIndex(a.FS, cfg.SourceRoot, cfg.SourceExt, scan.Options{IgnoreDirs: cfg.IgnoreDirs})
	if err != nil {
		return err
	}
	log.Printf("indexed %d source files under %s", idx.Len(), cfg.SourceRoot)

	changes := a.Changes.Changes(ctx, cfg.BaseBranch)
	if len(changes) == 0 {
		log.Printf("no source changes detected against %s", cfg.BaseBranch)
		return nil
	}

	builder := impact.Builder{Index: idx, Finder: wordidx.NewFinder(idx)}
	manifest := builder.Build(changes)
	a.writeJSON(ctx, ManifestFile, manifest)
	log.Printf("impact: %d changed files, risk %s", manifest.Summary.TotalFilesChanged, manifest.Summary.RiskLevel)

	gen := plan.Generator{
		Mapper: plan.Mapper{SourceRoot: cfg.SourceRoot, TestRoot: cfg.TestRoot, Suffix: cfg.TestSuffix},
		Exists: a.FS.Exists,
	}
	testPlan := gen.Generate(manifest, cfg.RunID)
	a.writeJSON(ctx, PlanFile, testPlan)
	if len(testPlan.Entries) == 0 {
		log.Printf("empty test plan; nothing to generate")
		return nil
	}

	if err := a.Synth.SynthesizeAll(ctx, testPlan); err != nil {
		return err
	}

	ctrl := heal.Controller{Runner: a.Runner, Healer: a.Synth, MaxAttempts: cfg.MaxHealAttempts}
	outcome, err := ctrl.Run(ctx, testPlan, build.ClassFilter(testPlan, cfg.TestRoot))
	if err != nil {
		return err
	}

	if outcome.State == heal.StateSuccess {
		summary, ok := build.ParseSummary(outcome.LastOutput)
		if !ok {
			log.Printf("warning: could not parse test summary; promoting anyway")
			summary = fallbackSummary
		}
		return a.Promoter.PromoteSuccess(ctx, summary)
	}

	// EXHAUSTED: diagnostics must be on disk before the process fails.
	if uploadErr, werr := a.Store.Write(ctx, DiagnosticsFile, []byte(outcome.LastOutput)); werr != nil {
		log.Printf("warning: write diagnostics: %v", werr)
	} else if uploadErr != nil {
		log.Printf("warning: upload diagnostics: %v", uploadErr)
	}
	if perr := a.Promoter.PublishFailure(ctx, DiagnosticsFile); perr != nil {
		log.Printf("warning: publish failure branch: %v", perr)
	}
	return ErrExhausted
}

// writeJSON persists a structured artifact; persistence problems are logged
// and never abort the analysis.
func (a *Agent) writeJSON(ctx context.Context, name string, v any) {
	uploadErr, err := a.Store.WriteJSON(ctx, name, v)
	if err != nil {
		log.Printf("warning: %v", err)
		return
	}
	if uploadErr != nil {
		log.Printf("warning: upload %s: %v", name, uploadErr)
	}
}
