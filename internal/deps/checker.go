// Package deps verifies that the external programs and files the voice
// commands shell out to are present before anything is launched.
package deps

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/joegoldin/voxtral-voice/internal/config"
)

// MissingError names the first unmet prerequisite.
type MissingError struct {
	Name string
	Path string
	Hint string
}

func (e *MissingError) Error() string {
	msg := fmt.Sprintf("%s not found", e.Name)
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Hint != "" {
		msg += ". " + e.Hint
	}
	return msg
}

// Checker validates the transcription binary, its model and the recorder.
type Checker struct {
	binary   string
	model    string
	recorder string

	lookPath func(string) (string, error)
	stat     func(string) (os.FileInfo, error)
}

// NewChecker builds a checker using real OS dependencies.
func NewChecker(cfg *config.Config) *Checker {
	return NewCheckerForTests(cfg, exec.LookPath, os.Stat)
}

// NewCheckerForTests creates a checker with injectable dependencies.
func NewCheckerForTests(
	cfg *config.Config,
	lookPath func(string) (string, error),
	stat func(string) (os.FileInfo, error),
) *Checker {
	return &Checker{
		binary:   cfg.Voxtral.Binary,
		model:    cfg.Voxtral.Model,
		recorder: cfg.Record.Utility,
		lookPath: lookPath,
		stat:     stat,
	}
}

// Check returns nil when every prerequisite is present, otherwise a
// *MissingError for the first one that is not. Checks run in a fixed order:
// binary, model, recorder.
func (c *Checker) Check() error {
	if _, err := c.stat(c.binary); err != nil {
		return &MissingError{Name: "Voxtral binary", Path: c.binary}
	}
	if _, err := c.stat(c.model); err != nil {
		return &MissingError{Name: "Voxtral model", Path: c.model}
	}
	if _, err := c.lookPath(c.recorder); err != nil {
		return &MissingError{Name: c.recorder, Hint: "Install with: " + installHint()}
	}
	return nil
}
