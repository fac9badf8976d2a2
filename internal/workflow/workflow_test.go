package workflow

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"audioscribe/internal/model"
)

// fakeRepo is an in-memory TranscriptRepository with fault injection.
type fakeRepo struct {
	mu          sync.Mutex
	items       []model.Transcript
	nextID      int
	insertCalls int
	deleteCalls int
	failAll     bool
	failInsert  bool
	failDelete  bool
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{nextID: 1}
}

func (r *fakeRepo) Close() error { return nil }

func (r *fakeRepo) All(ctx context.Context) ([]model.Transcript, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll {
		return nil, assert.AnError
	}
	out := make([]model.Transcript, len(r.items))
	copy(out, r.items)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *fakeRepo) Insert(ctx context.Context, audioName, transcription string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.insertCalls++
	if r.failInsert {
		return 0, assert.AnError
	}
	id := r.nextID
	r.nextID++
	r.items = append(r.items, model.Transcript{ID: id, AudioName: audioName, Transcription: transcription})
	return id, nil
}

func (r *fakeRepo) Delete(ctx context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleteCalls++
	if r.failDelete {
		return assert.AnError
	}
	kept := r.items[:0]
	for _, t := range r.items {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	r.items = kept
	return nil
}

func (r *fakeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// failingRecorder always refuses to start, as a denied microphone would.
type failingRecorder struct{}

func (failingRecorder) Start(ctx context.Context) error { return assert.AnError }
func (failingRecorder) Stop() (*Clip, error)            { return nil, assert.AnError }

func newTestWorkflow(t *testing.T, gatewayURL string, repo *fakeRepo, opts ...Option) *Workflow {
	t.Helper()
	rec := NewMemoryRecorder("audio/webm", "webm")
	history := NewHistory(repo, zap.NewNop())
	return New(rec, NewGatewayClient(gatewayURL), repo, history, zap.NewNop(), opts...)
}

func transcriptServer(t *testing.T, transcript string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"transcript": transcript})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSelectFile_RejectsNonAudio(t *testing.T) {
	repo := newFakeRepo()
	wf := newTestWorkflow(t, "http://unused", repo)

	require.NoError(t, wf.SelectFile("song.mp3", "audio/mpeg", []byte("held")))
	held := wf.Pending()

	err := wf.SelectFile("notes.txt", "text/plain", []byte("nope"))
	assert.Error(t, err)
	assert.Equal(t, "Invalid file type. Please upload an audio file.", wf.ErrorMessage())
	assert.Same(t, held, wf.Pending(), "previously held audio must be unchanged")
}

func TestSelectFile_RejectsOversized(t *testing.T) {
	repo := newFakeRepo()
	wf := newTestWorkflow(t, "http://unused", repo, WithMaxFileSize(16))

	err := wf.SelectFile("big.wav", "audio/wav", make([]byte, 17))
	assert.Error(t, err)
	assert.Contains(t, wf.ErrorMessage(), "File size too large")
	assert.Nil(t, wf.Pending())
}

func TestSelectFile_AcceptClearsError(t *testing.T) {
	repo := newFakeRepo()
	wf := newTestWorkflow(t, "http://unused", repo)

	require.Error(t, wf.SelectFile("notes.txt", "text/plain", []byte("nope")))
	require.NotEmpty(t, wf.ErrorMessage())

	require.NoError(t, wf.SelectFile("song.ogg", "audio/ogg", []byte("data")))
	assert.Empty(t, wf.ErrorMessage())
	assert.Equal(t, "song.ogg", wf.Pending().Name)
	assert.NotEmpty(t, wf.PlaybackURL())
}

func TestRecording_ProducesNamedClip(t *testing.T) {
	repo := newFakeRepo()
	rec := NewMemoryRecorder("audio/webm", "webm")
	history := NewHistory(repo, zap.NewNop())
	wf := New(rec, NewGatewayClient("http://unused"), repo, history, zap.NewNop())

	start := time.Now().UnixMilli()
	require.NoError(t, wf.StartRecording(context.Background()))
	assert.Equal(t, StateRecording, wf.State())

	rec.Push([]byte("chunk-one "))
	rec.Push(nil) // empty chunks are dropped
	rec.Push([]byte("chunk-two"))

	require.NoError(t, wf.StopRecording())
	stop := time.Now().UnixMilli()

	assert.Equal(t, StateIdle, wf.State())
	pending := wf.Pending()
	require.NotNil(t, pending)
	assert.Equal(t, []byte("chunk-one chunk-two"), pending.Data)

	require.True(t, strings.HasPrefix(pending.Name, "Recorded_Audio_"), pending.Name)
	require.True(t, strings.HasSuffix(pending.Name, ".webm"), pending.Name)
	tsStr := strings.TrimSuffix(strings.TrimPrefix(pending.Name, "Recorded_Audio_"), ".webm")
	ts, err := strconv.ParseInt(tsStr, 10, 64)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, ts, start)
	assert.LessOrEqual(t, ts, stop)
}

func TestStartRecording_DeviceFailure(t *testing.T) {
	repo := newFakeRepo()
	history := NewHistory(repo, zap.NewNop())
	wf := New(failingRecorder{}, NewGatewayClient("http://unused"), repo, history, zap.NewNop())

	err := wf.StartRecording(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "Failed to start recording.", wf.ErrorMessage())
	assert.Equal(t, StateIdle, wf.State())
}

func TestTranscribe_InFlightGuard(t *testing.T) {
	var requests int
	started := make(chan struct{})
	release := make(chan struct{})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		close(started)
		<-release
		json.NewEncoder(w).Encode(map[string]string{"transcript": "slow"})
	}))
	defer srv.Close()

	repo := newFakeRepo()
	wf := newTestWorkflow(t, srv.URL, repo)
	require.NoError(t, wf.SelectFile("clip.webm", "audio/webm", []byte("data")))

	done := make(chan error, 1)
	go func() { done <- wf.Transcribe(context.Background()) }()
	<-started

	// Second call while the first is in flight must be a silent no-op.
	assert.NoError(t, wf.Transcribe(context.Background()))

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, 1, requests, "duplicate submission must not issue a second request")
}

func TestTranscribe_SuccessSavesOnce(t *testing.T) {
	srv := transcriptServer(t, "hello")
	repo := newFakeRepo()
	wf := newTestWorkflow(t, srv.URL, repo)

	require.NoError(t, wf.SelectFile("clip.webm", "audio/webm", []byte("data")))
	require.NoError(t, wf.Transcribe(context.Background()))

	assert.Equal(t, "hello", wf.Result())
	assert.Equal(t, StateIdle, wf.State())
	assert.Equal(t, 1, repo.insertCalls)
	items, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "clip.webm", items[0].AudioName)
	assert.Equal(t, "hello", items[0].Transcription)
}

func TestTranscribe_DuplicateInsertSkipped(t *testing.T) {
	srv := transcriptServer(t, "same words")
	repo := newFakeRepo()
	wf := newTestWorkflow(t, srv.URL, repo)

	require.NoError(t, wf.SelectFile("clip.webm", "audio/webm", []byte("data")))
	require.NoError(t, wf.Transcribe(context.Background()))
	require.Equal(t, 1, repo.count())

	// Same pending payload again: identical pair, insert must be skipped.
	require.NoError(t, wf.Transcribe(context.Background()))
	assert.Equal(t, 1, repo.count(), "list length must be unchanged after the second run")
	assert.Equal(t, 1, repo.insertCalls)
}

func TestTranscribe_GatewayFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "Transcription failed"})
	}))
	defer srv.Close()

	repo := newFakeRepo()
	wf := newTestWorkflow(t, srv.URL, repo)
	require.NoError(t, wf.SelectFile("clip.webm", "audio/webm", []byte("data")))

	err := wf.Transcribe(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "Error transcribing audio.", wf.Result())
	assert.Equal(t, StateIdle, wf.State(), "processing must clear on failure")
	assert.Zero(t, repo.insertCalls, "no persistence write on failure")
}

func TestTranscribe_EmptyTranscript(t *testing.T) {
	srv := transcriptServer(t, "")
	repo := newFakeRepo()
	wf := newTestWorkflow(t, srv.URL, repo)

	require.NoError(t, wf.SelectFile("clip.webm", "audio/webm", []byte("data")))
	require.NoError(t, wf.Transcribe(context.Background()))
	assert.Equal(t, "No transcription found.", wf.Result())
}

func TestTranscribe_WithoutPendingAudio(t *testing.T) {
	repo := newFakeRepo()
	wf := newTestWorkflow(t, "http://unused", repo)
	assert.Error(t, wf.Transcribe(context.Background()))
}

func TestTranscribe_SaveFailureSurfaced(t *testing.T) {
	srv := transcriptServer(t, "hello")
	repo := newFakeRepo()
	repo.failInsert = true
	wf := newTestWorkflow(t, srv.URL, repo)

	require.NoError(t, wf.SelectFile("clip.webm", "audio/webm", []byte("data")))
	err := wf.Transcribe(context.Background())
	assert.Error(t, err)
	assert.Equal(t, "Failed to save transcription to database.", wf.ErrorMessage())
	// The transcript itself is still displayed.
	assert.Equal(t, "hello", wf.Result())
}

func TestReset_ClearsEverything(t *testing.T) {
	srv := transcriptServer(t, "hello")
	repo := newFakeRepo()
	wf := newTestWorkflow(t, srv.URL, repo)

	require.NoError(t, wf.SelectFile("clip.webm", "audio/webm", []byte("data")))
	require.NoError(t, wf.Transcribe(context.Background()))
	require.Error(t, wf.SelectFile("notes.txt", "text/plain", nil)) // leave an error behind

	wf.Reset()

	assert.Equal(t, StateIdle, wf.State())
	assert.Nil(t, wf.Pending())
	assert.Empty(t, wf.PlaybackURL())
	assert.Equal(t, NoTranscriptionSentinel, wf.Result())
	assert.Empty(t, wf.ErrorMessage())
}

func TestReset_FromRecordingState(t *testing.T) {
	repo := newFakeRepo()
	rec := NewMemoryRecorder("audio/webm", "webm")
	history := NewHistory(repo, zap.NewNop())
	wf := New(rec, NewGatewayClient("http://unused"), repo, history, zap.NewNop())

	require.NoError(t, wf.StartRecording(context.Background()))
	wf.Reset()
	assert.Equal(t, StateIdle, wf.State())
}
