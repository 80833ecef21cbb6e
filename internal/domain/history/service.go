package history

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/yanqian/multilingual-summarizer/internal/domain/summarizer"
	apperrors "github.com/yanqian/multilingual-summarizer/pkg/errors"
	"github.com/yanqian/multilingual-summarizer/pkg/util"
)

const (
	defaultListLimit = 20
	excerptLength    = 120
)

// Service records submission outcomes and serves them back per session.
type Service interface {
	summarizer.Observer
	List(ctx context.Context, sessionID uuid.UUID) ([]Entry, error)
}

type service struct {
	cfg    Config
	repo   Repository
	logger *slog.Logger
}

// NewService is a wire provider for the history domain.
func NewService(cfg Config, repo Repository, logger *slog.Logger) Service {
	if cfg.ListLimit <= 0 {
		cfg.ListLimit = defaultListLimit
	}
	return &service{cfg: cfg, repo: repo, logger: logger.With("component", "history.service")}
}

// Observe stores the outcome. Storage failures never reach the caller.
func (s *service) Observe(ctx context.Context, outcome summarizer.Outcome) {
	if outcome.SessionID == uuid.Nil {
		return
	}
	createdAt := outcome.At.UTC()
	if outcome.At.IsZero() {
		createdAt = util.NowUTC()
	}
	entry := Entry{
		ID:         uuid.New(),
		SessionID:  outcome.SessionID,
		Language:   outcome.Request.Language,
		Sentences:  outcome.Request.Sentences,
		Characters: outcome.Characters,
		Excerpt:    util.Excerpt(outcome.Request.Text, excerptLength),
		Status:     outcome.State.Status,
		Kind:       outcome.State.Kind,
		Summary:    outcome.State.Summary,
		Message:    outcome.State.Message,
		DurationMs: outcome.Duration.Milliseconds(),
		CreatedAt:  createdAt,
	}
	if err := s.repo.Append(ctx, entry); err != nil {
		s.logger.Warn("history append failed", "session", outcome.SessionID, "error", err)
	}
}

func (s *service) List(ctx context.Context, sessionID uuid.UUID) ([]Entry, error) {
	if sessionID == uuid.Nil {
		return nil, apperrors.Wrap(apperrors.CodeInvalidInput, "session id is required", nil)
	}
	entries, err := s.repo.ListBySession(ctx, sessionID, s.cfg.ListLimit)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeStorage, "history lookup failed", err)
	}
	return entries, nil
}
