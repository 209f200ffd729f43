// Package build is the test-execution port: it runs the project's build
// tool against a test class filter and reports exit status plus console
// output.
package build

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"testpilot/internal/types"
)

// Result is one test execution outcome.
type Result struct {
	ExitCode int
	Output   string
}

// Runner executes the generated tests.
type Runner interface {
	RunTests(ctx context.Context, filter string) (Result, error)
}

// runBuildCommand is injectable in tests.
var runBuildCommand = func(ctx context.Context, dir, name string, args ...string) (string, int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return string(out), exitErr.ExitCode(), nil
		}
		return string(out), -1, err
	}
	return string(out), 0, nil
}

// MavenRunner runs the selective maven test goal, preferring the project's
// wrapper and falling back to a global mvn when the wrapper is absent.
type MavenRunner struct {
	Dir string
}

func (m *MavenRunner) RunTests(ctx context.Context, filter string) (Result, error) {
	bin := "./mvnw"
	if _, err := os.Stat(filepath.Join(m.Dir, "mvnw")); err != nil {
		bin = "mvn"
	}
	args := []string{"test", "-DfailIfNoTests=false"}
	if filter != "" {
		args = append(args, "-Dtest="+filter)
	}
	out, code, err := runBuildCommand(ctx, m.Dir, bin, args...)
	if err != nil {
		return Result{ExitCode: -1, Output: err.Error()}, err
	}
	return Result{ExitCode: code, Output: out}, nil
}

// ClassFilter converts the plan's target test files into the comma-joined
// class name filter the surefire plugin expects
// (src/test/java/com/pkg/AppTest.java -> com.pkg.AppTest).
func ClassFilter(p types.TestPlan, testRoot string) string {
	prefix := strings.TrimSuffix(testRoot, "/") + "/"
	classes := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		c := strings.TrimPrefix(e.TargetTestFile, prefix)
		c = strings.TrimSuffix(c, ".java")
		classes = append(classes, strings.ReplaceAll(c, "/", "."))
	}
	return strings.Join(classes, ",")
}
