// Package whisper implements transcription using the OpenAI Whisper API.
package whisper

import (
	"bytes"
	"context"
	"fmt"
	"mime"

	"github.com/sashabaranov/go-openai"

	"audioscribe/internal/config"
	"audioscribe/internal/transcriber"
)

// RemoteTranscriber transcribes audio through the OpenAI API. Whisper returns
// flat text, so results carry a single channel with a single alternative.
type RemoteTranscriber struct {
	client *openai.Client
	opts   config.TranscribeOptions
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, opts config.TranscribeOptions) *RemoteTranscriber {
	return &RemoteTranscriber{client: client, opts: opts}
}

func (rt *RemoteTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (*transcriber.Result, error) {
	req := openai.AudioRequest{
		Model:    openai.Whisper1,
		Reader:   bytes.NewReader(audio),
		FilePath: uploadFilename(mimeType),
		Language: rt.opts.Language,
	}
	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("createTranscription failed: %w", err)
	}

	return &transcriber.Result{
		Channels: []transcriber.Channel{
			{Alternatives: []transcriber.Alternative{{Transcript: resp.Text}}},
		},
	}, nil
}

// uploadFilename derives a filename from the MIME type; the OpenAI client
// uses the extension to label the multipart part.
func uploadFilename(mimeType string) string {
	exts, err := mime.ExtensionsByType(mimeType)
	if err == nil && len(exts) > 0 {
		return "audio" + exts[0]
	}
	return "audio.webm"
}
