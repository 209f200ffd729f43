// Package synth turns test plan entries into test source files through the
// code-generation port, and repairs them with failure output during heal.
package synth

import (
	"context"
	"fmt"
	"strings"

	"testpilot/internal/llmclient"
	"testpilot/internal/safeio"
	"testpilot/internal/types"
)

// Synthesizer writes generated test artifacts into the working tree.
type Synthesizer struct {
	LLM llmclient.Client
	FS  *safeio.SafeFS
}

// SynthesizeAll generates every entry in plan order. Generation errors abort
// immediately; there is no retry at this layer.
func (s *Synthesizer) SynthesizeAll(ctx context.Context, p types.TestPlan) error {
	for _, e := range p.Entries {
		if err := s.Synthesize(ctx, e); err != nil {
			return err
		}
	}
	return nil
}

// Synthesize generates one entry's test artifact. CREATE writes the full
// file; EXTEND splices the generated methods before the final closing brace
// of the existing test class.
func (s *Synthesizer) Synthesize(ctx context.Context, e types.TestPlanEntry) error {
	source, err := s.FS.ReadFile(e.SourcePath)
	if err != nil {
		return fmt.Errorf("synth %s: read source: %w", e.ComponentName, err)
	}
	existing := ""
	if e.Action == types.ActionExtend {
		if b, err := s.FS.ReadFile(e.TargetTestFile); err == nil {
			existing = string(b)
		}
	}

	raw, err := s.LLM.GenerateText(ctx, buildSynthesizePrompt(e, string(source), existing))
	if err != nil {
		return fmt.Errorf("synth %s: %w", e.ComponentName, err)
	}
	code := StripFences(raw)

	if e.Action == types.ActionExtend && existing != "" {
		code = spliceMethods(existing, code)
	}
	if err := s.FS.WriteFile(e.TargetTestFile, []byte(code)); err != nil {
		return fmt.Errorf("synth %s: write: %w", e.ComponentName, err)
	}
	return nil
}

// Heal regenerates one entry's test file with the failing console output as
// repair context. The result always overwrites the full target file.
func (s *Synthesizer) Heal(ctx context.Context, e types.TestPlanEntry, errorLog string) error {
	source, err := s.FS.ReadFile(e.SourcePath)
	if err != nil {
		return fmt.Errorf("heal %s: read source: %w", e.ComponentName, err)
	}
	current := ""
	if b, err := s.FS.ReadFile(e.TargetTestFile); err == nil {
		current = string(b)
	}

	raw, err := s.LLM.GenerateText(ctx, buildHealPrompt(e, string(source), current, errorLog))
	if err != nil {
		return fmt.Errorf("heal %s: %w", e.ComponentName, err)
	}
	if err := s.FS.WriteFile(e.TargetTestFile, []byte(StripFences(raw))); err != nil {
		return fmt.Errorf("heal %s: write: %w", e.ComponentName, err)
	}
	return nil
}

// StripFences removes markdown code fences from model output.
func StripFences(s string) string {
	s = strings.ReplaceAll(s, "```java", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// spliceMethods appends generated test methods before the class's closing
// brace.
func spliceMethods(existing, methods string) string {
	trimmed := strings.TrimRight(existing, " \t\n")
	trimmed = strings.TrimSuffix(trimmed, "}")
	return trimmed + "\n\n    // Generated Tests\n" + methods + "\n}"
}
