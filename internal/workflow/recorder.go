package workflow

import (
	"context"
	"errors"
	"sync"
)

// Clip is a finalized audio capture: the concatenated chunks of one
// recording session plus its container metadata.
type Clip struct {
	Data     []byte
	MIMEType string
	Ext      string
}

// Recorder abstracts the host platform's media capture: start capture,
// buffer chunks, stop into a finalized clip. The workflow depends only on
// this interface, never on how the host exposes recording.
type Recorder interface {
	// Start requests the capture device and begins buffering. It fails when
	// the device is unavailable or permission is denied.
	Start(ctx context.Context) error

	// Stop ends capture and returns the finalized clip.
	Stop() (*Clip, error)
}

var errNotRecording = errors.New("recorder is not capturing")

// MemoryRecorder buffers pushed chunks in memory. It backs tests and hosts
// that deliver capture data programmatically.
type MemoryRecorder struct {
	mu       sync.Mutex
	capture  bool
	chunks   [][]byte
	mimeType string
	ext      string
}

// NewMemoryRecorder creates a recorder producing clips with the given
// container type, e.g. ("audio/webm", "webm").
func NewMemoryRecorder(mimeType, ext string) *MemoryRecorder {
	return &MemoryRecorder{mimeType: mimeType, ext: ext}
}

func (r *MemoryRecorder) Start(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.capture = true
	r.chunks = nil
	return nil
}

// Push appends one captured chunk. Empty chunks and chunks received while
// not capturing are dropped.
func (r *MemoryRecorder) Push(chunk []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.capture || len(chunk) == 0 {
		return
	}
	r.chunks = append(r.chunks, chunk)
}

func (r *MemoryRecorder) Stop() (*Clip, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.capture {
		return nil, errNotRecording
	}
	r.capture = false

	var data []byte
	for _, chunk := range r.chunks {
		data = append(data, chunk...)
	}
	r.chunks = nil

	return &Clip{Data: data, MIMEType: r.mimeType, Ext: r.ext}, nil
}
