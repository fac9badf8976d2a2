package pg

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"audioscribe/internal/model"
)

// PostgresRepository stores transcripts in the hosted audioTranscription table.
type PostgresRepository struct {
	db *sql.DB
}

// NewPostgresRepository opens a connection to the given Postgres DSN and
// verifies it with a ping.
func NewPostgresRepository(dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return &PostgresRepository{db: db}, nil
}

func (r *PostgresRepository) Close() error {
	return r.db.Close()
}

func (r *PostgresRepository) All(ctx context.Context) ([]model.Transcript, error) {
	query := `SELECT id, "audioName", "transcription" FROM "audioTranscription" ORDER BY id DESC`
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

func (r *PostgresRepository) Insert(ctx context.Context, audioName, transcription string) (int, error) {
	query := `INSERT INTO "audioTranscription" ("audioName", "transcription") VALUES ($1, $2) RETURNING id`
	var id int
	if err := r.db.QueryRowContext(ctx, query, audioName, transcription).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert failed: %w", err)
	}
	return id, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM "audioTranscription" WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete failed: %w", err)
	}
	return nil
}
