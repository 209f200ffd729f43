// Package artifact persists the run's structured outputs: the impact
// manifest, the test plan, and failure diagnostics. Files are always written
// into the working tree (they are staged for promotion); an S3-compatible
// store can additionally receive a copy namespaced by run id.
package artifact

import (
	"context"
	"encoding/json"
	"fmt"

	"testpilot/internal/safeio"
)

// Uploader receives a best-effort remote copy of each artifact.
type Uploader interface {
	Put(ctx context.Context, runID, path string, content []byte) error
}

// Store writes artifacts through the root-locked filesystem.
type Store struct {
	FS    *safeio.SafeFS
	RunID string
	// S3 is optional; nil disables uploads.
	S3 Uploader
}

// WriteJSON marshals v with indentation and persists it under name. Upload
// failures are returned separately so callers can log without failing the
// run.
func (s *Store) WriteJSON(ctx context.Context, name string, v any) (uploadErr error, err error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("artifact %s: marshal: %w", name, err)
	}
	return s.Write(ctx, name, b)
}

// Write persists raw bytes under name.
func (s *Store) Write(ctx context.Context, name string, data []byte) (uploadErr error, err error) {
	if err := s.FS.WriteFile(name, data); err != nil {
		return nil, fmt.Errorf("artifact %s: %w", name, err)
	}
	if s.S3 != nil {
		uploadErr = s.S3.Put(ctx, s.RunID, name, data)
	}
	return uploadErr, nil
}
