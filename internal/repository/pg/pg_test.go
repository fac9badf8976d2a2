package pg

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audioscribe/internal/repository"
)

// TestPostgresRepository_Interface verifies the interface is satisfied.
func TestPostgresRepository_Interface(t *testing.T) {
	var _ repository.TranscriptRepository = (*PostgresRepository)(nil)
}

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &PostgresRepository{db: db}, mock
}

func TestPostgresRepository_All(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "audioName", "transcription"}).
		AddRow(3, "third.mp3", "three").
		AddRow(2, "second.mp3", "two").
		AddRow(1, "first.mp3", "one")
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT id, "audioName", "transcription" FROM "audioTranscription" ORDER BY id DESC`,
	)).WillReturnRows(rows)

	got, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, 3, got[0].ID)
	assert.Equal(t, "third.mp3", got[0].AudioName)
	assert.Equal(t, "one", got[2].Transcription)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_All_Empty(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, "audioName", "transcription"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "audioName", "transcription"}))

	got, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPostgresRepository_All_QueryError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, "audioName", "transcription"`)).
		WillReturnError(assert.AnError)

	_, err := repo.All(context.Background())
	assert.Error(t, err)
}

func TestPostgresRepository_Insert(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`INSERT INTO "audioTranscription" ("audioName", "transcription") VALUES ($1, $2) RETURNING id`,
	)).WithArgs("clip.webm", "hello").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))

	id, err := repo.Insert(context.Background(), "clip.webm", "hello")
	require.NoError(t, err)
	assert.Equal(t, 42, id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Insert_Error(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO "audioTranscription"`)).
		WithArgs("clip.webm", "hello").
		WillReturnError(assert.AnError)

	_, err := repo.Insert(context.Background(), "clip.webm", "hello")
	assert.Error(t, err)
}

func TestPostgresRepository_Delete(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "audioTranscription" WHERE id = $1`)).
		WithArgs(7).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresRepository_Delete_MissingRowIsNotAnError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "audioTranscription" WHERE id = $1`)).
		WithArgs(999).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, repo.Delete(context.Background(), 999))
}
