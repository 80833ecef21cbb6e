package historyrepo

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/multilingual-summarizer/internal/domain/history"
	"github.com/yanqian/multilingual-summarizer/internal/domain/summarizer"
)

const schema = `
CREATE TABLE IF NOT EXISTS summary_history (
	id          UUID PRIMARY KEY,
	session_id  UUID NOT NULL,
	language    TEXT NOT NULL,
	sentences   INTEGER NOT NULL,
	characters  INTEGER NOT NULL,
	excerpt     TEXT NOT NULL DEFAULT '',
	status      TEXT NOT NULL,
	kind        TEXT NOT NULL DEFAULT '',
	summary     TEXT NOT NULL DEFAULT '',
	message     TEXT NOT NULL DEFAULT '',
	duration_ms BIGINT NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS summary_history_session_created_idx
	ON summary_history (session_id, created_at DESC);
`

// PostgresRepository implements history.Repository using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs the repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// EnsureSchema creates the history table when it does not exist yet.
func (r *PostgresRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("ensure history schema: %w", err)
	}
	return nil
}

func (r *PostgresRepository) Append(ctx context.Context, entry history.Entry) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO summary_history
			(id, session_id, language, sentences, characters, excerpt, status, kind, summary, message, duration_ms, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`,
		entry.ID,
		entry.SessionID,
		string(entry.Language),
		entry.Sentences,
		entry.Characters,
		entry.Excerpt,
		string(entry.Status),
		string(entry.Kind),
		entry.Summary,
		entry.Message,
		entry.DurationMs,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert history entry: %w", err)
	}
	return nil
}

func (r *PostgresRepository) ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]history.Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id, session_id, language, sentences, characters, excerpt, status, kind, summary, message, duration_ms, created_at
		FROM summary_history
		WHERE session_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := make([]history.Entry, 0, limit)
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func scanEntry(row pgx.Row) (history.Entry, error) {
	var (
		entry                  history.Entry
		language, status, kind string
	)
	if err := row.Scan(
		&entry.ID,
		&entry.SessionID,
		&language,
		&entry.Sentences,
		&entry.Characters,
		&entry.Excerpt,
		&status,
		&kind,
		&entry.Summary,
		&entry.Message,
		&entry.DurationMs,
		&entry.CreatedAt,
	); err != nil {
		return history.Entry{}, fmt.Errorf("scan history entry: %w", err)
	}
	entry.Language = summarizer.Language(language)
	entry.Status = summarizer.Status(status)
	entry.Kind = summarizer.Kind(kind)
	return entry, nil
}

var _ history.Repository = (*PostgresRepository)(nil)
