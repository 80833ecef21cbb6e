package summarizer

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestRegistryCreateAndGet(t *testing.T) {
	drafts := newFakeDrafts()
	reg := NewRegistry(testConfig(), &stubClient{}, drafts, nil, newTestLogger())

	s := reg.Create(context.Background())
	got, err := reg.Get(context.Background(), s.ID())
	require.NoError(t, err)
	require.Same(t, s, got)
	require.Equal(t, 1, reg.Len())

	_, ok, err := drafts.Load(context.Background(), s.ID())
	require.NoError(t, err)
	require.True(t, ok)
}

func TestRegistryGetUnknown(t *testing.T) {
	reg := NewRegistry(testConfig(), &stubClient{}, newFakeDrafts(), nil, newTestLogger())
	_, err := reg.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistryRestoresFromDraft(t *testing.T) {
	drafts := newFakeDrafts()
	id := uuid.New()
	require.NoError(t, drafts.Save(context.Background(), Draft{
		SessionID:     id,
		Text:          "One. Two. Three.",
		Language:      LanguageMarathi,
		SentenceCount: 2,
	}))
	reg := NewRegistry(testConfig(), &stubClient{}, drafts, nil, newTestLogger())

	s, err := reg.Get(context.Background(), id)
	require.NoError(t, err)
	view := s.View()
	require.Equal(t, id, view.ID)
	require.Equal(t, 3, view.Stats.Sentences)
	require.Equal(t, LanguageMarathi, view.Language)
	require.Equal(t, 2, view.SentenceCount)
	require.Equal(t, StatusIdle, view.State.Status)
}

func TestRegistryDraftLoadFailure(t *testing.T) {
	drafts := newFakeDrafts()
	drafts.loadErr = errors.New("valkey down")
	reg := NewRegistry(testConfig(), &stubClient{}, drafts, nil, newTestLogger())

	_, err := reg.Get(context.Background(), uuid.New())
	require.ErrorIs(t, err, ErrSessionNotFound)
}

func TestRegistryEvictsIdleSessions(t *testing.T) {
	cfg := testConfig()
	cfg.SessionIdleTTL = time.Minute
	reg := NewRegistry(cfg, &stubClient{}, newFakeDrafts(), nil, newTestLogger())
	reg.Create(context.Background())
	require.Equal(t, 1, reg.Len())

	reg.now = func() time.Time { return time.Now().Add(2 * time.Minute) }
	reg.Create(context.Background())
	require.Equal(t, 1, reg.Len())
}

func TestRegistryRemove(t *testing.T) {
	drafts := newFakeDrafts()
	reg := NewRegistry(testConfig(), &stubClient{}, drafts, nil, newTestLogger())
	s := reg.Create(context.Background())

	require.NoError(t, reg.Remove(context.Background(), s.ID()))
	require.Zero(t, reg.Len())
	_, ok, _ := drafts.Load(context.Background(), s.ID())
	require.False(t, ok)
}

func TestRegistrySessionsShareObservers(t *testing.T) {
	var (
		mu  sync.Mutex
		ids []uuid.UUID
	)
	obs := ObserverFunc(func(_ context.Context, o Outcome) {
		mu.Lock()
		defer mu.Unlock()
		ids = append(ids, o.SessionID)
	})
	reg := NewRegistry(testConfig(), &stubClient{summary: "ok"}, newFakeDrafts(), Observers{obs}, newTestLogger())

	a := reg.Create(context.Background())
	b := reg.Create(context.Background())
	_, _ = a.OnSubmit(context.Background(), "", 0)
	_, _ = b.OnSubmit(context.Background(), "", 0)

	mu.Lock()
	defer mu.Unlock()
	require.Equal(t, []uuid.UUID{a.ID(), b.ID()}, ids)
}

type fakeDrafts struct {
	mu      sync.Mutex
	drafts  map[uuid.UUID]Draft
	loadErr error
}

func newFakeDrafts() *fakeDrafts {
	return &fakeDrafts{drafts: make(map[uuid.UUID]Draft)}
}

func (f *fakeDrafts) Save(_ context.Context, d Draft) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.drafts[d.SessionID] = d
	return nil
}

func (f *fakeDrafts) Load(_ context.Context, id uuid.UUID) (Draft, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return Draft{}, false, f.loadErr
	}
	d, ok := f.drafts[id]
	return d, ok, nil
}

func (f *fakeDrafts) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.drafts, id)
	return nil
}
