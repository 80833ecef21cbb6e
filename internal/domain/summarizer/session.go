package summarizer

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yanqian/multilingual-summarizer/internal/domain/textstats"
)

// Draft is the persisted part of a session: the user's inputs, never the
// request state.
type Draft struct {
	SessionID     uuid.UUID `json:"sessionId"`
	Text          string    `json:"text"`
	Language      Language  `json:"language"`
	SentenceCount int       `json:"sentenceCount"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

// View is the read model rendered by the presentation layer.
type View struct {
	ID            uuid.UUID       `json:"id"`
	Text          string          `json:"text"`
	Stats         textstats.Stats `json:"stats"`
	Language      Language        `json:"language"`
	SentenceCount int             `json:"sentenceCount"`
	MaxSentences  int             `json:"maxSentences"`
	CanSubmit     bool            `json:"canSubmit"`
	State         State           `json:"state"`
}

// Session binds the UI inputs to a coordinator. Every text change recomputes
// the stats and clamps the sentence count before anything else can read them.
type Session struct {
	id    uuid.UUID
	coord *Coordinator

	mu            sync.RWMutex
	text          string
	stats         textstats.Stats
	language      Language
	sentenceCount int
	lastActive    time.Time
}

// NewSession creates a session with default inputs.
func NewSession(id uuid.UUID, cfg Config, client Client, logger *slog.Logger, observers ...Observer) *Session {
	cfg = cfg.withDefaults()
	s := &Session{
		id:         id,
		language:   cfg.DefaultLanguage,
		lastActive: time.Now(),
	}
	s.coord = NewCoordinator(cfg, client, logger.With("session", id.String()), s.stamp(observers)...)
	s.sentenceCount = textstats.Clamp(cfg.DefaultSentences, s.stats)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// Coordinator exposes the session's request coordinator.
func (s *Session) Coordinator() *Coordinator {
	return s.coord
}

// OnTextChanged recomputes stats and clamps the sentence count.
func (s *Session) OnTextChanged(text string) textstats.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setTextLocked(text)
	return s.stats
}

// OnLanguageChanged sets the output language.
func (s *Session) OnLanguageChanged(lang Language) error {
	if !lang.Valid() {
		return ErrUnsupportedLanguage
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.language = lang
	s.touchLocked()
	return nil
}

// OnSentenceCountChanged sets the requested summary length and returns the
// clamped value actually stored.
func (s *Session) OnSentenceCountChanged(count int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sentenceCount = textstats.Clamp(count, s.stats)
	s.touchLocked()
	return s.sentenceCount
}

// OnSubmit applies the given settings and submits the current text. An empty
// language or a non-positive count keeps the current setting.
func (s *Session) OnSubmit(ctx context.Context, lang Language, sentenceCount int) (State, error) {
	s.mu.Lock()
	if lang != "" {
		if !lang.Valid() {
			s.mu.Unlock()
			return s.coord.State(), ErrUnsupportedLanguage
		}
		s.language = lang
	}
	if sentenceCount > 0 {
		s.sentenceCount = textstats.Clamp(sentenceCount, s.stats)
	}
	s.touchLocked()
	text, language, count, stats := s.text, s.language, s.sentenceCount, s.stats
	s.mu.Unlock()

	return s.coord.Submit(ctx, text, language, count, stats)
}

// UseSample replaces the text with the built-in sample paragraph.
func (s *Session) UseSample() textstats.Stats {
	return s.OnTextChanged(SampleText)
}

// Clear empties the text and returns the coordinator to idle.
func (s *Session) Clear() State {
	s.mu.Lock()
	s.setTextLocked("")
	s.mu.Unlock()
	return s.coord.Reset()
}

// View returns a consistent snapshot of the session.
func (s *Session) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := s.coord.State()
	return View{
		ID:            s.id,
		Text:          s.text,
		Stats:         s.stats,
		Language:      s.language,
		SentenceCount: s.sentenceCount,
		MaxSentences:  textstats.MaxSentences(s.stats),
		CanSubmit:     !st.Loading() && strings.TrimSpace(s.text) != "",
		State:         st,
	}
}

// Draft captures the user's inputs for persistence.
func (s *Session) Draft() Draft {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Draft{
		SessionID:     s.id,
		Text:          s.text,
		Language:      s.language,
		SentenceCount: s.sentenceCount,
		UpdatedAt:     s.lastActive,
	}
}

// Restore applies a persisted draft.
func (s *Session) Restore(d Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.text = d.Text
	s.stats = textstats.Compute(d.Text)
	if d.Language.Valid() {
		s.language = d.Language
	}
	s.sentenceCount = textstats.Clamp(d.SentenceCount, s.stats)
	s.touchLocked()
}

func (s *Session) setTextLocked(text string) {
	s.text = text
	s.stats = textstats.Compute(text)
	if limit := textstats.MaxSentences(s.stats); s.sentenceCount > limit {
		s.sentenceCount = limit
	}
	s.touchLocked()
}

func (s *Session) touchLocked() {
	s.lastActive = time.Now()
}

func (s *Session) idleSince() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastActive
}

func (s *Session) stamp(observers []Observer) []Observer {
	if len(observers) == 0 {
		return nil
	}
	return []Observer{ObserverFunc(func(ctx context.Context, outcome Outcome) {
		outcome.SessionID = s.id
		for _, obs := range observers {
			obs.Observe(ctx, outcome)
		}
	})}
}
