// Package heal drives the bounded generate-execute-heal loop as an explicit
// finite-state machine. The transition function is pure; all side effects
// live behind the execution and generation ports.
package heal

// State is one node of the self-heal state machine.
type State string

const (
	StateRunTests  State = "RUN_TESTS"
	StateFailure   State = "FAILURE"
	StateHeal      State = "HEAL"
	StateSuccess   State = "SUCCESS"
	StateExhausted State = "EXHAUSTED"
)

// Terminal reports whether s ends the loop.
func (s State) Terminal() bool {
	return s == StateSuccess || s == StateExhausted
}

// DefaultMaxAttempts bounds the number of heal rounds.
const DefaultMaxAttempts = 2

// Next is the pure transition function of (state, last execution result,
// completed heal attempts, attempt cap):
//
//	RUN_TESTS -> SUCCESS on a zero exit status, FAILURE otherwise.
//	FAILURE   -> EXHAUSTED once max heals have completed, HEAL otherwise.
//	HEAL      -> RUN_TESTS.
//
// Terminal states transition to themselves.
func Next(s State, exitZero bool, attempts, max int) State {
	switch s {
	case StateRunTests:
		if exitZero {
			return StateSuccess
		}
		return StateFailure
	case StateFailure:
		if attempts >= max {
			return StateExhausted
		}
		return StateHeal
	case StateHeal:
		return StateRunTests
	default:
		return s
	}
}
