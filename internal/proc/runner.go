// Package proc runs external commands and captures their output.
package proc

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

const waitDelay = 2 * time.Second

// Result captures one external command invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// StderrTail returns the last non-empty line of stderr, or "" if none.
func (r Result) StderrTail() string {
	lines := strings.Split(strings.TrimSpace(r.Stderr), "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

// Runner abstracts process execution so callers can be tested with fakes.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// ExecRunner executes commands via os/exec.
type ExecRunner struct{}

// Run executes one command and captures stdout, stderr and exit code. The
// process is killed when ctx is done. A non-zero exit is returned as an
// *exec.ExitError alongside the populated Result.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	// Grandchildren holding the pipes open must not stall Wait after a kill.
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		result.ExitCode = -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			result.ExitCode = exitErr.ExitCode()
		}
		return result, err
	}
	return result, nil
}
