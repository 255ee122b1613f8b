// Package skill routes short free-text voice commands to the recorder and
// transcriber and renders every outcome as response text.
package skill

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"time"

	"github.com/joegoldin/voxtral-voice/internal/config"
	"github.com/joegoldin/voxtral-voice/internal/record"
	"github.com/joegoldin/voxtral-voice/internal/transcribe"
	"github.com/joegoldin/voxtral-voice/internal/ui"
	"github.com/samber/lo"
)

const (
	transcribedLabel = "🎙️ Transcribed:\n\n"
	errorPrefix      = "❌ "
	transcribeHint   = "Use 'voice: record my message' to record and transcribe."
)

var helpAliases = []string{"help", "--help", "-h", "usage"}

type DependencyChecker interface {
	Check() error
}

type Recorder interface {
	Record(ctx context.Context, maxDuration time.Duration) (string, error)
}

type Skill struct {
	checker     DependencyChecker
	recorder    Recorder
	transcriber transcribe.Transcriber
	status      *ui.Status

	defaultDuration time.Duration
	quickDuration   time.Duration
	longDuration    time.Duration
}

func New(cfg config.RecordConfig, checker DependencyChecker, recorder Recorder, transcriber transcribe.Transcriber, status *ui.Status) *Skill {
	return &Skill{
		checker:         checker,
		recorder:        recorder,
		transcriber:     transcriber,
		status:          status,
		defaultDuration: cfg.DefaultDuration(),
		quickDuration:   cfg.Quick(),
		longDuration:    cfg.Long(),
	}
}

// Process handles one command and always returns response text. The
// dependency check runs before anything else, help included.
func (s *Skill) Process(ctx context.Context, command string) string {
	cmd := strings.ToLower(strings.TrimSpace(command))

	if err := s.checker.Check(); err != nil {
		return errorPrefix + err.Error()
	}

	switch {
	case lo.Contains(helpAliases, cmd):
		return Help()
	case containsAny(cmd, "record", "voice"):
		return s.recordAndTranscribe(ctx, s.durationFor(cmd))
	case strings.Contains(cmd, "transcribe"):
		return transcribeHint
	default:
		return Help()
	}
}

func (s *Skill) durationFor(cmd string) time.Duration {
	switch {
	case strings.Contains(cmd, "quick"):
		return s.quickDuration
	case strings.Contains(cmd, "long"):
		return s.longDuration
	default:
		return s.defaultDuration
	}
}

func (s *Skill) recordAndTranscribe(ctx context.Context, d time.Duration) string {
	s.status.Step("🎤 Recording audio...")
	path, err := s.recorder.Record(ctx, d)
	if err != nil && (ctx.Err() != nil || errors.Is(err, record.ErrCancelled)) {
		return transcribe.Describe(transcribe.ErrCancelled)
	}
	if err != nil {
		s.status.Error("Recording failed: %v", err)
		s.status.Info("Trying realtime microphone mode...")
		return s.realtime(ctx)
	}

	s.status.Info("📝 Transcribing: %s", filepath.Base(path))
	text, err := s.transcriber.TranscribeFile(ctx, path)
	if err != nil {
		text = transcribe.Describe(err)
	}
	return transcribedLabel + text
}

func (s *Skill) realtime(ctx context.Context) string {
	s.status.Step("🎤 Speak now (press Ctrl+C when done)...")
	text, err := s.transcriber.TranscribeMic(ctx)
	if err != nil {
		return transcribe.Describe(err)
	}
	return text
}

func containsAny(s string, subs ...string) bool {
	return lo.SomeBy(subs, func(sub string) bool { return strings.Contains(s, sub) })
}
