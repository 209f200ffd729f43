package llmclient

import "context"

// FakeClient is a deterministic Client for tests. Responses are returned in
// order; the last one repeats once the list is exhausted. Every prompt is
// recorded for assertions.
type FakeClient struct {
	Responses []string
	Err       error
	Prompts   []string
}

func (f *FakeClient) Name() string { return "fake" }

func (f *FakeClient) GenerateText(_ context.Context, prompt string) (string, error) {
	f.Prompts = append(f.Prompts, prompt)
	if f.Err != nil {
		return "", f.Err
	}
	if len(f.Responses) == 0 {
		return "", ErrEmptyResponse
	}
	i := len(f.Prompts) - 1
	if i >= len(f.Responses) {
		i = len(f.Responses) - 1
	}
	return f.Responses[i], nil
}
