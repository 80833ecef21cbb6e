package draftstore

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/multilingual-summarizer/internal/domain/summarizer"
)

type draftRecord struct {
	draft     summarizer.Draft
	expiresAt time.Time
}

// MemoryStore is an in-memory draft store for tests/dev.
type MemoryStore struct {
	mu     sync.RWMutex
	ttl    time.Duration
	drafts map[uuid.UUID]draftRecord
}

// NewMemoryStore constructs a store backed by process memory. A zero ttl
// keeps drafts forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, drafts: make(map[uuid.UUID]draftRecord)}
}

// Save implements summarizer.DraftStore.
func (s *MemoryStore) Save(_ context.Context, draft summarizer.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp := time.Time{}
	if s.ttl > 0 {
		exp = time.Now().Add(s.ttl)
	}
	s.drafts[draft.SessionID] = draftRecord{draft: draft, expiresAt: exp}
	return nil
}

// Load implements summarizer.DraftStore.
func (s *MemoryStore) Load(_ context.Context, id uuid.UUID) (summarizer.Draft, bool, error) {
	s.mu.RLock()
	record, ok := s.drafts[id]
	s.mu.RUnlock()
	if !ok {
		return summarizer.Draft{}, false, nil
	}
	if hasExpired(record.expiresAt) {
		s.mu.Lock()
		delete(s.drafts, id)
		s.mu.Unlock()
		return summarizer.Draft{}, false, nil
	}
	return record.draft, true, nil
}

// Delete implements summarizer.DraftStore.
func (s *MemoryStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	return nil
}

func hasExpired(ts time.Time) bool {
	if ts.IsZero() {
		return false
	}
	return ts.Before(time.Now())
}

var _ summarizer.DraftStore = (*MemoryStore)(nil)
