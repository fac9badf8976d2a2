package repository

import (
	"context"

	"audioscribe/internal/model"
)

// TranscriptRepository is the persistence surface used by the service: a full
// ordered read, a single-row insert, and a delete by id. There is no update.
type TranscriptRepository interface {
	Close() error

	// All returns every transcript ordered by id descending (newest first).
	All(ctx context.Context) ([]model.Transcript, error)

	// Insert stores one (audioName, transcription) pair and returns the
	// database-assigned id.
	Insert(ctx context.Context, audioName, transcription string) (int, error)

	// Delete removes the row with the given id. Deleting an id that does not
	// exist is not an error.
	Delete(ctx context.Context, id int) error
}
