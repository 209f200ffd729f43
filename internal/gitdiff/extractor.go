// Package gitdiff derives the changed-file set for a run from the working
// tree's git history. Diff failures degrade to an empty change set; the rest
// of the pipeline then reports zero changes instead of aborting.
package gitdiff

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/sourcegraph/go-diff/diff"
)

// Change is one modified source file and the new-file start lines of its
// diff hunks, in hunk order.
type Change struct {
	Path       string
	HunkStarts []int
}

// Extractor compares the base ref against HEAD.
type Extractor struct {
	// Dir is the git working directory.
	Dir string
	// SourceRoot restricts changes to paths under this repo-relative root.
	SourceRoot string
	// Ext restricts changes to files with this extension (e.g. ".java").
	Ext string
}

// runGitCommand is injectable in tests.
var runGitCommand = func(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("git %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// Changes returns the changed files between base and HEAD. The ref
// comparison loosens step by step: merge-base diff against the remote base
// branch, then a plain two-dot diff, then the last commit. If every
// comparison fails the result is empty, not an error.
func (e *Extractor) Changes(ctx context.Context, base string) []Change {
	spec, paths := e.changedPaths(ctx, base)
	if len(paths) == 0 {
		return nil
	}
	changes := make([]Change, 0, len(paths))
	for _, p := range paths {
		changes = append(changes, Change{Path: p, HunkStarts: e.hunkStarts(ctx, spec, p)})
	}
	return changes
}

func (e *Extractor) changedPaths(ctx context.Context, base string) (string, []string) {
	specs := []string{
		"origin/" + base + "...HEAD",
		"origin/" + base + "..HEAD",
		"HEAD~1..HEAD",
	}
	for _, spec := range specs {
		out, err := runGitCommand(ctx, e.Dir, "diff", "--name-only", spec)
		if err != nil {
			continue
		}
		return spec, e.filter(strings.Split(out, "\n"))
	}
	return "", nil
}

func (e *Extractor) filter(raw []string) []string {
	prefix := strings.TrimSuffix(e.SourceRoot, "/") + "/"
	var out []string
	for _, line := range raw {
		p := strings.TrimSpace(line)
		if p == "" {
			continue
		}
		if e.Ext != "" && !strings.HasSuffix(p, e.Ext) {
			continue
		}
		if e.SourceRoot != "" && !strings.HasPrefix(p, prefix) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// hunkStarts parses the zero-context unified diff for one path and collects
// the new-file hunk start lines. Parse failures yield an empty range list.
func (e *Extractor) hunkStarts(ctx context.Context, spec, path string) []int {
	out, err := runGitCommand(ctx, e.Dir, "diff", "-U0", spec, "--", path)
	if err != nil {
		return nil
	}
	fds, err := diff.NewMultiFileDiffReader(strings.NewReader(out)).ReadAllFiles()
	if err != nil {
		return nil
	}
	var starts []int
	for _, fd := range fds {
		for _, h := range fd.Hunks {
			starts = append(starts, int(h.NewStartLine))
		}
	}
	return starts
}
