// Package workflow implements the client-side recording/upload/transcribe/
// save state machine. The state is a single tagged value so that illegal
// combinations ("recording" and "transcribing" at once) cannot be
// represented.
package workflow

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"audioscribe/internal/model"
	"audioscribe/internal/repository"
)

// State is the workflow phase. A staged payload or a result may exist in
// StateIdle; they are orthogonal to the phase.
type State int

const (
	StateIdle State = iota
	StateRecording
	StateTranscribing
)

func (s State) String() string {
	switch s {
	case StateRecording:
		return "recording"
	case StateTranscribing:
		return "transcribing"
	default:
		return "idle"
	}
}

// User-visible messages, kept identical to what the hosted client shows.
const (
	NoTranscriptionSentinel = "No Transcription Yet."
	processingMessage       = "Processing..."
	transcribeFailedMessage = "Error transcribing audio."
	noTranscriptFound       = "No transcription found."
	recordingFailedMessage  = "Failed to start recording."
	invalidFileTypeMessage  = "Invalid file type. Please upload an audio file."
	saveFailedMessage       = "Failed to save transcription to database."
)

const defaultMaxFileBytes = 5 << 20

// Workflow drives one user session: stage audio (upload or recording), send
// it to the gateway, and persist the resulting transcript.
type Workflow struct {
	mu          sync.Mutex
	state       State
	pending     *Audio
	playbackURL string
	result      string
	errMsg      string

	recorder  Recorder
	gateway   *GatewayClient
	repo      repository.TranscriptRepository
	history   *History
	logger    *zap.Logger
	objectURL func(*Audio) string

	maxFileBytes int64
}

// Option configures a Workflow.
type Option func(*Workflow)

// WithMaxFileSize overrides the upload size cap (bytes). Deployments use
// 5–20 MB.
func WithMaxFileSize(bytes int64) Option {
	return func(w *Workflow) { w.maxFileBytes = bytes }
}

// WithObjectURL overrides how a playback URL is derived from staged audio.
// The default is an in-memory scheme; browser-like hosts substitute blob
// URLs here.
func WithObjectURL(fn func(*Audio) string) Option {
	return func(w *Workflow) { w.objectURL = fn }
}

// New creates a Workflow in StateIdle with the "no transcription yet"
// sentinel as its result.
func New(recorder Recorder, gateway *GatewayClient, repo repository.TranscriptRepository, history *History, logger *zap.Logger, opts ...Option) *Workflow {
	w := &Workflow{
		state:        StateIdle,
		result:       NoTranscriptionSentinel,
		recorder:     recorder,
		gateway:      gateway,
		repo:         repo,
		history:      history,
		logger:       logger,
		maxFileBytes: defaultMaxFileBytes,
		objectURL: func(a *Audio) string {
			return "mem://" + a.Name
		},
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// SelectFile stages a user-chosen file as the pending payload. A rejected
// file records an error message and leaves any previously staged audio
// unchanged.
func (w *Workflow) SelectFile(name, mimeType string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateIdle {
		return fmt.Errorf("cannot select a file while %s", w.state)
	}

	if !strings.HasPrefix(mimeType, "audio/") {
		w.errMsg = invalidFileTypeMessage
		return fmt.Errorf("invalid file type %q", mimeType)
	}
	if int64(len(data)) > w.maxFileBytes {
		w.errMsg = fmt.Sprintf("File size too large. Max limit is %dMB.", w.maxFileBytes>>20)
		return fmt.Errorf("file exceeds %d bytes", w.maxFileBytes)
	}

	w.errMsg = ""
	w.pending = &Audio{Name: name, MIMEType: mimeType, Data: data}
	w.playbackURL = w.objectURL(w.pending)
	return nil
}

// StartRecording asks the recorder capability to begin capture. A device or
// permission failure surfaces an error message and leaves the state
// unchanged.
func (w *Workflow) StartRecording(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateIdle {
		return fmt.Errorf("cannot start recording while %s", w.state)
	}

	if err := w.recorder.Start(ctx); err != nil {
		w.errMsg = recordingFailedMessage
		w.logger.Error("recording start failed", zap.Error(err))
		return fmt.Errorf("start recording: %w", err)
	}

	w.errMsg = ""
	w.state = StateRecording
	return nil
}

// StopRecording finalizes the capture into the pending payload, named
// Recorded_Audio_<epoch-millis>.<ext>.
func (w *Workflow) StopRecording() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.state != StateRecording {
		return fmt.Errorf("cannot stop recording while %s", w.state)
	}
	w.state = StateIdle

	clip, err := w.recorder.Stop()
	if err != nil {
		w.errMsg = recordingFailedMessage
		return fmt.Errorf("stop recording: %w", err)
	}

	name := fmt.Sprintf("Recorded_Audio_%d.%s", time.Now().UnixMilli(), clip.Ext)
	w.pending = &Audio{Name: name, MIMEType: clip.MIMEType, Data: clip.Data}
	w.playbackURL = w.objectURL(w.pending)
	return nil
}

// Transcribe sends the pending payload to the gateway and, on success,
// stores the transcript through the duplicate-checked save. A call while a
// transcription is already in flight is a no-op; this is the only
// concurrency control in the session. The processing indicator is cleared
// on every path.
func (w *Workflow) Transcribe(ctx context.Context) error {
	w.mu.Lock()
	if w.state == StateTranscribing {
		// In-flight guard: duplicate submissions are silently dropped.
		w.mu.Unlock()
		return nil
	}
	if w.state == StateRecording {
		w.mu.Unlock()
		return fmt.Errorf("cannot transcribe while recording")
	}
	if w.pending == nil {
		w.mu.Unlock()
		return fmt.Errorf("no audio staged for transcription")
	}
	audio := w.pending
	w.state = StateTranscribing
	w.result = processingMessage
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.state = StateIdle
		w.mu.Unlock()
	}()

	transcript, err := w.gateway.Transcribe(ctx, audio)
	if err != nil {
		w.mu.Lock()
		w.result = transcribeFailedMessage
		w.mu.Unlock()
		w.logger.Error("transcription failed", zap.String("audio", audio.Name), zap.Error(err))
		return fmt.Errorf("transcribe %s: %w", audio.Name, err)
	}
	if transcript == "" {
		transcript = noTranscriptFound
	}

	w.mu.Lock()
	w.result = transcript
	w.mu.Unlock()

	return w.save(ctx, audio.Name, transcript)
}

// save inserts the (audioName, transcript) pair unless an identical pair
// already exists. The check-then-act is not atomic against concurrent
// writers; that race is accepted.
func (w *Workflow) save(ctx context.Context, audioName, transcript string) error {
	existing, err := w.repo.All(ctx)
	if err != nil {
		w.setError(saveFailedMessage)
		return fmt.Errorf("duplicate check: %w", err)
	}

	duplicate := lo.SomeBy(existing, func(t model.Transcript) bool {
		return t.AudioName == audioName && t.Transcription == transcript
	})
	if duplicate {
		w.logger.Info("duplicate transcription detected, skipping insert",
			zap.String("audio", audioName))
		return nil
	}

	if _, err := w.repo.Insert(ctx, audioName, transcript); err != nil {
		w.setError(saveFailedMessage)
		return fmt.Errorf("insert transcript: %w", err)
	}

	if w.history != nil {
		if err := w.history.Load(ctx); err != nil {
			w.logger.Error("history refresh failed", zap.Error(err))
		}
	}
	return nil
}

// Reset discards the staged payload, playback URL, error message, and
// result, from any state.
func (w *Workflow) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.state = StateIdle
	w.pending = nil
	w.playbackURL = ""
	w.result = NoTranscriptionSentinel
	w.errMsg = ""
}

func (w *Workflow) setError(msg string) {
	w.mu.Lock()
	w.errMsg = msg
	w.mu.Unlock()
}

// State returns the current phase.
func (w *Workflow) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Pending returns the staged payload, or nil.
func (w *Workflow) Pending() *Audio {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.pending
}

// PlaybackURL returns the preview URL for the staged payload.
func (w *Workflow) PlaybackURL() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.playbackURL
}

// Result returns the current transcription display text.
func (w *Workflow) Result() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}

// ErrorMessage returns the current inline error text, empty when none.
func (w *Workflow) ErrorMessage() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.errMsg
}
