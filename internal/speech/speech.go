// Package speech provides the optional text-to-speech and speech-recognition
// capabilities. Synthesis shells out to espeak when it is installed; speech
// recognition has no local backend and always reports unavailable.
package speech

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
)

// ErrUnavailable indicates the requested speech capability is not present in
// this environment.
var ErrUnavailable = errors.New("speech: capability not available")

// Synthesizer speaks text out loud via espeak.
type Synthesizer struct {
	log       *slog.Logger
	binary    string
	available bool
}

// NewSynthesizer probes for an espeak binary once at construction time.
func NewSynthesizer(log *slog.Logger) *Synthesizer {
	s := &Synthesizer{log: log.With("component", "speech")}
	for _, candidate := range []string{"espeak-ng", "espeak"} {
		if path, err := exec.LookPath(candidate); err == nil {
			s.binary = path
			s.available = true
			break
		}
	}
	if s.available {
		s.log.Info("Text-to-speech available", "binary", s.binary)
	} else {
		s.log.Info("Text-to-speech not available, responses will be text only")
	}
	return s
}

// Available reports whether synthesis can be used.
func (s *Synthesizer) Available() bool { return s.available }

// Speak renders text through espeak. Speaking an empty string is a no-op.
func (s *Synthesizer) Speak(ctx context.Context, text string) error {
	if text == "" {
		return nil
	}
	if !s.available {
		return ErrUnavailable
	}

	cmd := exec.CommandContext(ctx, s.binary, text)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("espeak failed: %w", err)
	}
	return nil
}

// Recognizer captures and transcribes microphone input. There is no local
// recognizer backend, so it always reports unavailable and callers fall back
// to typed commands.
type Recognizer struct{}

// NewRecognizer reports once at startup that voice capture is absent.
func NewRecognizer(log *slog.Logger) *Recognizer {
	log.With("component", "speech").Info("Speech recognition not available, commands are typed only")
	return &Recognizer{}
}

// Available reports whether recognition can be used.
func (r *Recognizer) Available() bool { return false }

// Listen would capture one spoken command.
func (r *Recognizer) Listen(_ context.Context) (string, error) {
	return "", ErrUnavailable
}
