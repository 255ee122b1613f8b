package transcribe

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joegoldin/voxtral-voice/internal/config"
	"github.com/joegoldin/voxtral-voice/internal/proc"
)

// Voxtral shells out to the voxtral.c binary.
type Voxtral struct {
	binary     string
	model      string
	timeout    time.Duration
	micTimeout time.Duration
	runner     proc.Runner
	stat       func(string) (os.FileInfo, error)
}

func NewVoxtral(cfg *config.Config) *Voxtral {
	return NewVoxtralWithRunner(cfg, proc.ExecRunner{})
}

func NewVoxtralWithRunner(cfg *config.Config, runner proc.Runner) *Voxtral {
	return &Voxtral{
		binary:     cfg.Voxtral.Binary,
		model:      cfg.Voxtral.Model,
		timeout:    cfg.Transcribe.FileTimeout(),
		micTimeout: cfg.Transcribe.RealtimeLimit(),
		runner:     runner,
		stat:       os.Stat,
	}
}

func (v *Voxtral) fileArgs(audioPath string) []string {
	return []string{"-d", v.model, "-i", audioPath, "--silent"}
}

func (v *Voxtral) micArgs() []string {
	return []string{"-d", v.model, "--from-mic", "--silent"}
}

// TranscribeFile transcribes a recorded audio file. No process is started
// when the file does not exist.
func (v *Voxtral) TranscribeFile(ctx context.Context, audioPath string) (string, error) {
	if _, err := v.stat(audioPath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrAudioNotFound, audioPath)
	}

	runCtx, cancel := context.WithTimeout(ctx, v.timeout)
	defer cancel()

	res, err := v.runner.Run(runCtx, v.binary, v.fileArgs(audioPath)...)
	switch {
	case ctx.Err() != nil:
		return "", ErrInterrupted
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		return "", ErrTimeout
	case err != nil && res.ExitCode < 0:
		return "", fmt.Errorf("cannot run %s: %w", v.binary, err)
	case err != nil:
		return "", &ExitError{Code: res.ExitCode, Stderr: strings.TrimSpace(res.Stderr)}
	}
	return strings.TrimSpace(res.Stdout), nil
}

// TranscribeMic runs voxtral in live microphone mode. It is the degraded
// path used when file recording fails: one attempt, no partial results.
func (v *Voxtral) TranscribeMic(ctx context.Context) (string, error) {
	runCtx, cancel := context.WithTimeout(ctx, v.micTimeout)
	defer cancel()

	res, err := v.runner.Run(runCtx, v.binary, v.micArgs()...)
	switch {
	case ctx.Err() != nil:
		return "", ErrCancelled
	case errors.Is(runCtx.Err(), context.DeadlineExceeded):
		return "", &MicTimeoutError{Limit: v.micTimeout}
	case err != nil && res.ExitCode < 0:
		return "", &MicError{Err: err}
	case err != nil:
		return "", ErrMicFailed
	}
	return strings.TrimSpace(res.Stdout), nil
}
