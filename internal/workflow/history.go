package workflow

import (
	"context"
	"fmt"
	"sync"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"audioscribe/internal/model"
	"audioscribe/internal/repository"
)

// History is the displayed list of persisted transcripts. It re-reads the
// full table on Load and mutates its in-memory copy only after a delete has
// succeeded.
type History struct {
	mu     sync.Mutex
	repo   repository.TranscriptRepository
	logger *zap.Logger
	items  []model.Transcript
}

// NewHistory creates an empty history backed by repo.
func NewHistory(repo repository.TranscriptRepository, logger *zap.Logger) *History {
	return &History{repo: repo, logger: logger}
}

// Load replaces the displayed list with a fresh ordered read.
func (h *History) Load(ctx context.Context) error {
	items, err := h.repo.All(ctx)
	if err != nil {
		h.logger.Error("error fetching transcriptions", zap.Error(err))
		return fmt.Errorf("load history: %w", err)
	}

	h.mu.Lock()
	h.items = items
	h.mu.Unlock()
	return nil
}

// Remove deletes the record with the given id. On success only that id is
// dropped from the displayed list, without a full reload; on failure the
// list is left unchanged.
func (h *History) Remove(ctx context.Context, id int) error {
	if err := h.repo.Delete(ctx, id); err != nil {
		h.logger.Error("error deleting transcription", zap.Int("id", id), zap.Error(err))
		return fmt.Errorf("delete transcript %d: %w", id, err)
	}

	h.mu.Lock()
	h.items = lo.Filter(h.items, func(t model.Transcript, _ int) bool {
		return t.ID != id
	})
	h.mu.Unlock()
	return nil
}

// Items returns a copy of the displayed list, newest first.
func (h *History) Items() []model.Transcript {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]model.Transcript, len(h.items))
	copy(out, h.items)
	return out
}
