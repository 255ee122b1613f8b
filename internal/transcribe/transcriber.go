package transcribe

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrAudioNotFound = errors.New("audio file not found")
	ErrTimeout       = errors.New("transcription timed out")
	ErrInterrupted   = errors.New("transcription cancelled")
	ErrMicFailed     = errors.New("microphone transcription was interrupted or failed")
	ErrCancelled     = errors.New("recording cancelled by user")
)

// ExitError is returned when the transcription binary exits non-zero.
type ExitError struct {
	Code   int
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("transcriber exited with status %d", e.Code)
	}
	return e.Stderr
}

// MicTimeoutError is returned when live transcription runs past its limit.
type MicTimeoutError struct {
	Limit time.Duration
}

func (e *MicTimeoutError) Error() string {
	return fmt.Sprintf("microphone transcription timed out after %s", e.Limit)
}

// MicError wraps a failure to launch live transcription at all.
type MicError struct {
	Err error
}

func (e *MicError) Error() string { return "microphone error: " + e.Err.Error() }
func (e *MicError) Unwrap() error { return e.Err }

// Transcriber turns speech into text, either from a recorded file or
// straight from the microphone.
type Transcriber interface {
	TranscribeFile(ctx context.Context, audioPath string) (string, error)
	TranscribeMic(ctx context.Context) (string, error)
}

// Describe renders a transcription failure as the text shown to the user.
func Describe(err error) string {
	var (
		exitErr    *ExitError
		micTimeout *MicTimeoutError
		micErr     *MicError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrAudioNotFound):
		return "Error: Audio file not found"
	case errors.Is(err, ErrTimeout):
		return "Transcription timed out"
	case errors.Is(err, ErrInterrupted):
		return "Transcription cancelled by user"
	case errors.As(err, &micTimeout):
		return fmt.Sprintf("Recording timed out (max %d seconds)", int(micTimeout.Limit.Seconds()))
	case errors.Is(err, ErrCancelled):
		return "Recording cancelled by user"
	case errors.Is(err, ErrMicFailed):
		return "Microphone transcription was interrupted or failed."
	case errors.As(err, &micErr):
		return "Microphone error: " + micErr.Err.Error()
	case errors.As(err, &exitErr):
		if exitErr.Stderr == "" {
			return "Transcription error: Unknown error"
		}
		return "Transcription error: " + exitErr.Stderr
	default:
		return "Transcription error: " + err.Error()
	}
}
