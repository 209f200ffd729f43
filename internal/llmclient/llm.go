package llmclient

import (
	"context"
	"errors"
)

// ErrEmptyResponse is returned when the model produces no candidates.
var ErrEmptyResponse = errors.New("llmclient: empty response from model")

// Client is the code-generation port: prompt text in, source text out.
type Client interface {
	Name() string
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// PermanentError indicates a failure that will not resolve with retries.
// Generation-layer failures abort the run; nothing above this port retries.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }

func NewPermanentError(err error) error {
	return &PermanentError{Err: err}
}
