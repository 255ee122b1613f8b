package record

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/joegoldin/voxtral-voice/internal/config"
	"github.com/joegoldin/voxtral-voice/internal/proc"
	"github.com/joegoldin/voxtral-voice/internal/ui"
)

var (
	ErrTimeout  = errors.New("recording timed out")
	ErrTooSmall = errors.New("file not created or too small")
	ErrCancelled = errors.New("recording cancelled")
)

type RecordOpts struct {
	SampleRate       int
	Channels         int
	BitDepth         int
	SilenceThreshold string
	SilenceWindow    float64
	SilenceStop      float64
	MaxDuration      time.Duration
	OutputPath       string
}

// BuildSoxArgs returns the rec arguments for one capture. The silence effect
// drops leading silence and ends the take after SilenceStop seconds below
// the threshold; trim caps the take at MaxDuration.
func BuildSoxArgs(opts RecordOpts) []string {
	threshold := opts.SilenceThreshold
	return []string{
		"-q",
		"-b", strconv.Itoa(opts.BitDepth),
		"-r", strconv.Itoa(opts.SampleRate),
		"-c", strconv.Itoa(opts.Channels),
		"-e", "signed-integer",
		opts.OutputPath,
		"silence",
		"1", formatSeconds(opts.SilenceWindow), threshold,
		"1", formatSeconds(opts.SilenceStop), threshold,
		"trim", "0", formatSeconds(opts.MaxDuration.Seconds()),
	}
}

func formatSeconds(s float64) string {
	return strconv.FormatFloat(s, 'f', -1, 64)
}

// GenerateFilename derives a recording name from a nanosecond timestamp plus
// a random suffix, so two takes started in the same instant still differ.
func GenerateFilename(now time.Time) string {
	ts := now.UTC().Format("20060102T150405.000000000Z")
	return fmt.Sprintf("recording-%s-%s.wav", ts, uuid.NewString()[:8])
}

// Validate reports whether path holds a usable recording: it must exist and
// be strictly larger than minBytes.
func Validate(path string, minBytes int64) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTooSmall, err)
	}
	if info.Size() <= minBytes {
		return fmt.Errorf("%w: %d bytes", ErrTooSmall, info.Size())
	}
	return nil
}

func EnsureOutputDir(dir string) error {
	return os.MkdirAll(dir, 0755)
}

// Sox records from the default input device with sox's rec utility.
type Sox struct {
	utility   string
	outputDir string
	cfg       config.RecordConfig
	runner    proc.Runner
	now       func() time.Time
	prune     func(dir string, keep int) ([]string, error)
	status    *ui.Status
}

func NewSox(cfg config.RecordConfig, status *ui.Status) *Sox {
	return NewSoxWithRunner(cfg, proc.ExecRunner{}, status)
}

func NewSoxWithRunner(cfg config.RecordConfig, runner proc.Runner, status *ui.Status) *Sox {
	return &Sox{
		utility:   cfg.Utility,
		outputDir: cfg.OutputDir,
		cfg:       cfg,
		runner:    runner,
		now:       time.Now,
		prune:     Prune,
		status:    status,
	}
}

// Record captures up to maxDuration of audio and returns the path of a
// validated recording. The rec process is bounded by maxDuration plus the
// configured grace period.
func (s *Sox) Record(ctx context.Context, maxDuration time.Duration) (string, error) {
	outputPath := filepath.Join(s.outputDir, GenerateFilename(s.now()))
	args := BuildSoxArgs(RecordOpts{
		SampleRate:       s.cfg.SampleRate,
		Channels:         s.cfg.Channels,
		BitDepth:         s.cfg.BitDepth,
		SilenceThreshold: s.cfg.SilenceThreshold,
		SilenceWindow:    s.cfg.SilenceWindow,
		SilenceStop:      s.cfg.SilenceStop,
		MaxDuration:      maxDuration,
		OutputPath:       outputPath,
	})

	timeout := maxDuration + s.cfg.Grace()
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	res, err := s.runner.Run(runCtx, s.utility, args...)
	if ctx.Err() != nil {
		return "", ErrCancelled
	}
	if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
	if err != nil {
		if tail := res.StderrTail(); tail != "" {
			return "", fmt.Errorf("%s failed: %w: %s", s.utility, err, tail)
		}
		return "", fmt.Errorf("%s failed: %w", s.utility, err)
	}

	if err := Validate(outputPath, s.cfg.MinBytes); err != nil {
		return "", err
	}

	if s.cfg.Keep > 0 {
		if _, err := s.prune(s.outputDir, s.cfg.Keep); err != nil {
			s.status.Error("Pruning old recordings failed: %v", err)
		}
	}
	return outputPath, nil
}
