package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/multilingual-summarizer/internal/domain/summarizer"
)

// Entry is one resolved submission.
type Entry struct {
	ID         uuid.UUID           `json:"id"`
	SessionID  uuid.UUID           `json:"sessionId"`
	Language   summarizer.Language `json:"language"`
	Sentences  int                 `json:"sentences"`
	Characters int                 `json:"characters"`
	Excerpt    string              `json:"excerpt"`
	Status     summarizer.Status   `json:"status"`
	Kind       summarizer.Kind     `json:"kind,omitempty"`
	Summary    string              `json:"summary,omitempty"`
	Message    string              `json:"message,omitempty"`
	DurationMs int64               `json:"durationMs"`
	CreatedAt  time.Time           `json:"createdAt"`
}

// Repository persists history entries.
type Repository interface {
	Append(ctx context.Context, entry Entry) error
	ListBySession(ctx context.Context, sessionID uuid.UUID, limit int) ([]Entry, error)
}

// Config tunes history reads.
type Config struct {
	ListLimit int
}
