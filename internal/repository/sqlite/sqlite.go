package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"audioscribe/internal/model"
)

const createTableSQL = `
CREATE TABLE IF NOT EXISTS audioTranscription (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    audioName     TEXT NOT NULL,
    transcription TEXT NOT NULL
);`

// SQLiteRepository is the local-file backend used when no hosted database is
// configured.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository opens (and if necessary creates) the database at
// dbFilePath and ensures the audioTranscription table exists.
func NewSQLiteRepository(dbFilePath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("file:%s?cache=shared&mode=rwc", dbFilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}
	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) All(ctx context.Context) ([]model.Transcript, error) {
	query := `SELECT id, audioName, transcription FROM audioTranscription ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	transcripts := make([]model.Transcript, 0)
	for rows.Next() {
		var t model.Transcript
		if err := rows.Scan(&t.ID, &t.AudioName, &t.Transcription); err != nil {
			return nil, fmt.Errorf("db scan failed: %w", err)
		}
		transcripts = append(transcripts, t)
	}
	return transcripts, rows.Err()
}

func (r *SQLiteRepository) Insert(ctx context.Context, audioName, transcription string) (int, error) {
	query := `INSERT INTO audioTranscription (audioName, transcription) VALUES (?, ?)`
	res, err := r.db.ExecContext(ctx, query, audioName, transcription)
	if err != nil {
		return 0, fmt.Errorf("insert failed: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("insert id: %w", err)
	}
	return int(id), nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM audioTranscription WHERE id = ?`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}
