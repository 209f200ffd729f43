package heal

import (
	"context"

	"testpilot/internal/build"
	"testpilot/internal/types"
)

// Healer regenerates one plan entry using the failing console output as
// repair context.
type Healer interface {
	Heal(ctx context.Context, e types.TestPlanEntry, errorLog string) error
}

// Outcome reports where the loop ended.
type Outcome struct {
	State    State
	Attempts int
	// LastOutput is the console text of the final test execution.
	LastOutput string
}

// Controller walks the FSM until a terminal state. Every HEAL round
// regenerates all plan entries, not just the failing one; the whole-plan
// heal mirrors the upstream behavior and keeps the suite self-consistent.
type Controller struct {
	Runner      build.Runner
	Healer      Healer
	MaxAttempts int
}

// Run executes the loop for one plan. Healer errors are generation-layer
// failures and abort immediately. Runner errors are folded into a failing
// result so the loop can attempt a heal.
func (c *Controller) Run(ctx context.Context, p types.TestPlan, filter string) (Outcome, error) {
	max := c.MaxAttempts
	if max <= 0 {
		max = DefaultMaxAttempts
	}

	state := StateRunTests
	attempts := 0
	var last build.Result

	for !state.Terminal() {
		switch state {
		case StateRunTests:
			res, err := c.Runner.RunTests(ctx, filter)
			if err != nil {
				res = build.Result{ExitCode: -1, Output: err.Error()}
			}
			last = res
			state = Next(state, res.ExitCode == 0, attempts, max)
		case StateFailure:
			state = Next(state, false, attempts, max)
		case StateHeal:
			for _, e := range p.Entries {
				if err := c.Healer.Heal(ctx, e, last.Output); err != nil {
					return Outcome{State: state, Attempts: attempts, LastOutput: last.Output}, err
				}
			}
			attempts++
			state = Next(state, false, attempts, max)
		}
	}
	return Outcome{State: state, Attempts: attempts, LastOutput: last.Output}, nil
}
