package summarizer

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestNewSessionDefaults(t *testing.T) {
	s := NewSession(uuid.New(), testConfig(), &stubClient{}, newTestLogger())
	view := s.View()

	require.Equal(t, LanguageEnglish, view.Language)
	require.Equal(t, 1, view.SentenceCount)
	require.Equal(t, 1, view.MaxSentences)
	require.False(t, view.CanSubmit)
	require.Equal(t, StatusIdle, view.State.Status)
}

func TestSessionClampsOnTextChange(t *testing.T) {
	s := NewSession(uuid.New(), testConfig(), &stubClient{}, newTestLogger())

	stats := s.OnTextChanged("A. B. C. D. E.")
	require.Equal(t, 5, stats.Sentences)
	require.Equal(t, 4, s.OnSentenceCountChanged(4))
	require.Equal(t, 5, s.OnSentenceCountChanged(12))
	require.Equal(t, 1, s.OnSentenceCountChanged(0))
	require.Equal(t, 4, s.OnSentenceCountChanged(4))

	s.OnTextChanged("A. B.")
	view := s.View()
	require.Equal(t, 2, view.SentenceCount)
	require.Equal(t, 2, view.MaxSentences)

	s.OnTextChanged("A. B. C. D.")
	require.Equal(t, 2, s.View().SentenceCount, "clamping only reduces the count")
}

func TestSessionLanguageValidation(t *testing.T) {
	s := NewSession(uuid.New(), testConfig(), &stubClient{}, newTestLogger())

	require.NoError(t, s.OnLanguageChanged(LanguageMarathi))
	require.ErrorIs(t, s.OnLanguageChanged(Language("de")), ErrUnsupportedLanguage)
	require.Equal(t, LanguageMarathi, s.View().Language)
}

func TestSessionSubmitUsesCurrentInputs(t *testing.T) {
	client := &stubClient{summary: "सारांश"}
	var (
		mu  sync.Mutex
		got []Outcome
	)
	obs := ObserverFunc(func(_ context.Context, o Outcome) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, o)
	})
	id := uuid.New()
	s := NewSession(id, testConfig(), client, newTestLogger(), obs)

	s.UseSample()
	st, err := s.OnSubmit(context.Background(), LanguageHindi, 3)
	require.NoError(t, err)
	require.Equal(t, State{Status: StatusSuccess, Summary: "सारांश"}, st)

	req := client.lastRequest()
	require.Equal(t, SampleText, req.Text)
	require.Equal(t, LanguageHindi, req.Language)
	require.Equal(t, 3, req.Sentences)

	view := s.View()
	require.Equal(t, LanguageHindi, view.Language)
	require.Equal(t, 3, view.SentenceCount)
	require.True(t, view.CanSubmit)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, got, 1)
	require.Equal(t, id, got[0].SessionID)
}

func TestSessionSubmitKeepsSettingsWhenOmitted(t *testing.T) {
	client := &stubClient{summary: "ok"}
	s := NewSession(uuid.New(), testConfig(), client, newTestLogger())
	s.OnTextChanged("One. Two. Three.")
	require.NoError(t, s.OnLanguageChanged(LanguageMarathi))
	s.OnSentenceCountChanged(2)

	_, err := s.OnSubmit(context.Background(), "", 0)
	require.NoError(t, err)
	require.Equal(t, LanguageMarathi, client.lastRequest().Language)
	require.Equal(t, 2, client.lastRequest().Sentences)
}

func TestSessionSubmitRejectsUnknownLanguage(t *testing.T) {
	client := &stubClient{}
	s := NewSession(uuid.New(), testConfig(), client, newTestLogger())
	s.OnTextChanged("One. Two.")

	_, err := s.OnSubmit(context.Background(), Language("xx"), 1)
	require.ErrorIs(t, err, ErrUnsupportedLanguage)
	require.Zero(t, client.callCount())
}

func TestSessionClearResetsState(t *testing.T) {
	client := &stubClient{summary: "done"}
	s := NewSession(uuid.New(), testConfig(), client, newTestLogger())
	s.OnTextChanged("One. Two.")
	_, err := s.OnSubmit(context.Background(), "", 0)
	require.NoError(t, err)

	st := s.Clear()
	require.Equal(t, StatusIdle, st.Status)
	view := s.View()
	require.Empty(t, view.Text)
	require.Zero(t, view.Stats.Characters)
	require.Equal(t, 1, view.SentenceCount)
}

func TestSessionCanSubmitFalseWhileLoading(t *testing.T) {
	client := &stubClient{block: true, release: make(chan struct{})}
	s := NewSession(uuid.New(), testConfig(), client, newTestLogger())
	s.OnTextChanged("One. Two.")

	go func() { _, _ = s.OnSubmit(context.Background(), "", 0) }()
	require.Eventually(t, func() bool { return s.View().State.Loading() }, time.Second, 5*time.Millisecond)
	require.False(t, s.View().CanSubmit)

	_, err := s.OnSubmit(context.Background(), "", 0)
	require.ErrorIs(t, err, ErrSubmissionInFlight)
	close(client.release)
	require.Eventually(t, func() bool { return s.View().CanSubmit }, time.Second, 5*time.Millisecond)
}

func TestSessionDraftRoundTrip(t *testing.T) {
	s := NewSession(uuid.New(), testConfig(), &stubClient{}, newTestLogger())
	s.OnTextChanged("One. Two. Three.")
	require.NoError(t, s.OnLanguageChanged(LanguageHindi))
	s.OnSentenceCountChanged(3)

	draft := s.Draft()
	restored := NewSession(draft.SessionID, testConfig(), &stubClient{}, newTestLogger())
	restored.Restore(draft)

	want := s.View()
	got := restored.View()
	require.Equal(t, want.ID, got.ID)
	require.Equal(t, want.Text, got.Text)
	require.Equal(t, want.Stats, got.Stats)
	require.Equal(t, want.Language, got.Language)
	require.Equal(t, want.SentenceCount, got.SentenceCount)
}
