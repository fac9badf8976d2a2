package transcriber

import (
	"context"
	"errors"
)

// ErrNoTranscript is returned when a provider response carries no usable
// channel/alternative structure.
var ErrNoTranscript = errors.New("provider response contains no transcript")

// Transcriber converts raw audio bytes into a structured transcription result.
// Implementations wrap a single remote provider and perform no retries: one
// provider failure is one caller-visible failure.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (*Result, error)
}

// Result is the provider-shaped transcription output. Providers that return a
// flat text (Whisper) populate a single channel with a single alternative.
type Result struct {
	Channels []Channel `json:"channels"`
}

// Channel is one audio channel of a result.
type Channel struct {
	Alternatives []Alternative `json:"alternatives"`
}

// Alternative is one candidate transcript for a channel.
type Alternative struct {
	Transcript string  `json:"transcript"`
	Confidence float64 `json:"confidence,omitempty"`
}

// FirstTranscript extracts the first alternative of the first channel, which
// is the text the rest of the system treats as "the transcript".
func (r *Result) FirstTranscript() (string, error) {
	if r == nil || len(r.Channels) == 0 || len(r.Channels[0].Alternatives) == 0 {
		return "", ErrNoTranscript
	}
	return r.Channels[0].Alternatives[0].Transcript, nil
}
