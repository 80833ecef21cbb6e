package summarizer

import (
	"time"

	"github.com/google/uuid"
)

// DefaultTimeout bounds a single call to the summarization service.
const DefaultTimeout = 15 * time.Second

// Config configures request validation and dispatch.
type Config struct {
	Timeout          time.Duration
	MinSentences     int
	DefaultLanguage  Language
	DefaultSentences int
	SessionIdleTTL   time.Duration
}

func (c Config) withDefaults() Config {
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MinSentences <= 0 {
		c.MinSentences = 2
	}
	if !c.DefaultLanguage.Valid() {
		c.DefaultLanguage = LanguageEnglish
	}
	if c.DefaultSentences <= 0 {
		c.DefaultSentences = 3
	}
	return c
}

// Language is an output language supported by the summarization service.
type Language string

const (
	LanguageEnglish Language = "en"
	LanguageHindi   Language = "hi"
	LanguageMarathi Language = "mr"
)

// LanguageOption pairs a language code with its display label.
type LanguageOption struct {
	Value Language `json:"value"`
	Label string   `json:"label"`
}

// Languages lists the supported languages in display order.
func Languages() []LanguageOption {
	return []LanguageOption{
		{Value: LanguageEnglish, Label: "English"},
		{Value: LanguageHindi, Label: "Hindi"},
		{Value: LanguageMarathi, Label: "Marathi"},
	}
}

// Valid reports whether l is supported.
func (l Language) Valid() bool {
	switch l {
	case LanguageEnglish, LanguageHindi, LanguageMarathi:
		return true
	default:
		return false
	}
}

// ParseLanguage validates a language code.
func ParseLanguage(value string) (Language, error) {
	lang := Language(value)
	if !lang.Valid() {
		return "", ErrUnsupportedLanguage
	}
	return lang, nil
}

// Request is the payload sent to the summarization service.
type Request struct {
	Text      string   `json:"text"`
	Language  Language `json:"language"`
	Sentences int      `json:"sentences"`
}

// Status enumerates the request lifecycle.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusFailed  Status = "failed"
)

// State is the coordinator's view of the latest submission.
type State struct {
	Status  Status `json:"status"`
	Summary string `json:"summary,omitempty"`
	Message string `json:"message,omitempty"`
	Kind    Kind   `json:"kind,omitempty"`
}

// Loading reports whether a request is in flight.
func (s State) Loading() bool {
	return s.Status == StatusLoading
}

// Outcome describes a resolved submission.
type Outcome struct {
	SessionID  uuid.UUID
	Request    Request
	Characters int
	State      State
	Duration   time.Duration
	At         time.Time
}
