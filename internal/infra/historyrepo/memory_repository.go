package historyrepo

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/yanqian/multilingual-summarizer/internal/domain/history"
)

// MemoryRepository keeps history entries in process memory.
type MemoryRepository struct {
	mu            sync.RWMutex
	bySession     map[uuid.UUID][]history.Entry
	maxPerSession int
}

// NewMemoryRepository constructs a repository retaining at most maxPerSession
// entries for each session; zero keeps everything.
func NewMemoryRepository(maxPerSession int) *MemoryRepository {
	return &MemoryRepository{
		bySession:     make(map[uuid.UUID][]history.Entry),
		maxPerSession: maxPerSession,
	}
}

func (r *MemoryRepository) Append(_ context.Context, entry history.Entry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	entries := append(r.bySession[entry.SessionID], entry)
	if r.maxPerSession > 0 && len(entries) > r.maxPerSession {
		entries = entries[len(entries)-r.maxPerSession:]
	}
	r.bySession[entry.SessionID] = entries
	return nil
}

// ListBySession returns the newest entries first.
func (r *MemoryRepository) ListBySession(_ context.Context, sessionID uuid.UUID, limit int) ([]history.Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	entries := r.bySession[sessionID]
	if limit <= 0 || limit > len(entries) {
		limit = len(entries)
	}
	out := make([]history.Entry, 0, limit)
	for i := len(entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, entries[i])
	}
	return out, nil
}

var _ history.Repository = (*MemoryRepository)(nil)
