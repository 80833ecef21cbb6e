package summarizer

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultSessionIdleTTL is how long an untouched session stays in memory.
const DefaultSessionIdleTTL = 30 * time.Minute

// DraftStore persists session drafts between process restarts.
type DraftStore interface {
	Save(ctx context.Context, draft Draft) error
	Load(ctx context.Context, id uuid.UUID) (Draft, bool, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// Registry tracks live sessions for the HTTP transport.
type Registry struct {
	cfg       Config
	client    Client
	drafts    DraftStore
	observers Observers
	base      *slog.Logger
	logger    *slog.Logger
	now       func() time.Time

	mu       sync.Mutex
	sessions map[uuid.UUID]*Session
}

// NewRegistry is a wire provider for the session registry.
func NewRegistry(cfg Config, client Client, drafts DraftStore, observers Observers, logger *slog.Logger) *Registry {
	cfg = cfg.withDefaults()
	if cfg.SessionIdleTTL <= 0 {
		cfg.SessionIdleTTL = DefaultSessionIdleTTL
	}
	return &Registry{
		cfg:       cfg,
		client:    client,
		drafts:    drafts,
		observers: observers,
		base:      logger,
		logger:    logger.With("component", "summarizer.registry"),
		now:       time.Now,
		sessions:  make(map[uuid.UUID]*Session),
	}
}

// Create starts a fresh session.
func (r *Registry) Create(ctx context.Context) *Session {
	s := r.newSession(uuid.New())
	r.mu.Lock()
	r.evictLocked()
	r.sessions[s.ID()] = s
	r.mu.Unlock()
	r.Persist(ctx, s)
	return s
}

// Get returns a live session, restoring it from its draft when the process no
// longer holds it.
func (r *Registry) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	r.mu.Lock()
	r.evictLocked()
	if s, ok := r.sessions[id]; ok {
		r.mu.Unlock()
		return s, nil
	}
	r.mu.Unlock()

	draft, ok, err := r.drafts.Load(ctx, id)
	if err != nil {
		r.logger.Error("draft load failed", "session", id, "error", err)
		return nil, ErrSessionNotFound
	}
	if !ok {
		return nil, ErrSessionNotFound
	}

	s := r.newSession(id)
	s.Restore(draft)

	r.mu.Lock()
	defer r.mu.Unlock()
	if existing, ok := r.sessions[id]; ok {
		return existing, nil
	}
	r.sessions[id] = s
	r.logger.Info("session restored from draft", "session", id)
	return s, nil
}

// Persist saves the session draft. Failures are logged and otherwise ignored.
func (r *Registry) Persist(ctx context.Context, s *Session) {
	if err := r.drafts.Save(ctx, s.Draft()); err != nil {
		r.logger.Warn("draft save failed", "session", s.ID(), "error", err)
	}
}

// Remove drops a session and its draft.
func (r *Registry) Remove(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if ok && s.Coordinator().State().Loading() {
		r.mu.Unlock()
		return ErrSubmissionInFlight
	}
	delete(r.sessions, id)
	r.mu.Unlock()

	if err := r.drafts.Delete(ctx, id); err != nil {
		r.logger.Warn("draft delete failed", "session", id, "error", err)
	}
	return nil
}

// Len reports the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) newSession(id uuid.UUID) *Session {
	return NewSession(id, r.cfg, r.client, r.base, r.observers...)
}

func (r *Registry) evictLocked() {
	cutoff := r.now().Add(-r.cfg.SessionIdleTTL)
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) && !s.Coordinator().State().Loading() {
			delete(r.sessions, id)
			r.logger.Debug("session evicted", "session", id)
		}
	}
}
