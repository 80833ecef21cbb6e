package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yanqian/multilingual-summarizer/internal/domain/history"
	"github.com/yanqian/multilingual-summarizer/internal/domain/summarizer"
	"github.com/yanqian/multilingual-summarizer/internal/domain/textstats"
)

const upstreamProbeTimeout = 2 * time.Second

// HealthChecker reports the status of the summarization service.
type HealthChecker interface {
	Health(ctx context.Context) (string, error)
}

// Handler wires the HTTP transport to domain services.
type Handler struct {
	sessions *summarizer.Registry
	history  history.Service
	upstream HealthChecker
	logger   *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(sessions *summarizer.Registry, historySvc history.Service, upstream HealthChecker, logger *slog.Logger) *Handler {
	return &Handler{
		sessions: sessions,
		history:  historySvc,
		upstream: upstream,
		logger:   logger.With("component", "http.handler"),
	}
}

type textRequest struct {
	Text *string `json:"text" binding:"required"`
}

type languageRequest struct {
	Language string `json:"language" binding:"required,oneof=en hi mr"`
}

type sentencesRequest struct {
	Sentences *int `json:"sentences" binding:"required"`
}

type submitRequest struct {
	Language  string `json:"language" binding:"omitempty,oneof=en hi mr"`
	Sentences int    `json:"sentences" binding:"omitempty,min=1"`
}

type statsResponse struct {
	Stats        textstats.Stats `json:"stats"`
	MaxSentences int             `json:"maxSentences"`
}

// Health reports liveness plus a best effort probe of the upstream service.
func (h *Handler) Health(c *gin.Context) {
	body := gin.H{"status": "online"}
	if h.upstream != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), upstreamProbeTimeout)
		defer cancel()
		status, err := h.upstream.Health(ctx)
		if err != nil {
			h.logger.Warn("upstream health probe failed", "error", err)
			status = "unreachable"
		}
		body["upstream"] = status
	}
	c.JSON(http.StatusOK, body)
}

// Languages lists the selectable output languages.
func (h *Handler) Languages(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"languages": summarizer.Languages()})
}

// Sample returns the built-in demo paragraph.
func (h *Handler) Sample(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"text": summarizer.SampleText})
}

// Stats computes text statistics without touching any session.
func (h *Handler) Stats(c *gin.Context) {
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	stats := textstats.Compute(*req.Text)
	c.JSON(http.StatusOK, statsResponse{Stats: stats, MaxSentences: textstats.MaxSentences(stats)})
}

// CreateSession starts a new session.
func (h *Handler) CreateSession(c *gin.Context) {
	s := h.sessions.Create(c.Request.Context())
	c.JSON(http.StatusCreated, s.View())
}

// GetSession renders the session view.
func (h *Handler) GetSession(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, s.View())
}

// DeleteSession drops the session and its draft.
func (h *Handler) DeleteSession(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	if err := h.sessions.Remove(c.Request.Context(), id); err != nil {
		abortWithError(c, domainError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

// UpdateText applies a text edit.
func (h *Handler) UpdateText(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req textRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	s.OnTextChanged(*req.Text)
	h.respondPersisted(c, s)
}

// UpdateLanguage changes the output language.
func (h *Handler) UpdateLanguage(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req languageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	if err := s.OnLanguageChanged(summarizer.Language(req.Language)); err != nil {
		abortWithError(c, domainError(err))
		return
	}
	h.respondPersisted(c, s)
}

// UpdateSentences changes the requested summary length.
func (h *Handler) UpdateSentences(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req sentencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}
	s.OnSentenceCountChanged(*req.Sentences)
	h.respondPersisted(c, s)
}

// UseSample loads the sample paragraph into the session.
func (h *Handler) UseSample(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.UseSample()
	h.respondPersisted(c, s)
}

// Clear empties the session text and resets its state.
func (h *Handler) Clear(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.Clear()
	h.respondPersisted(c, s)
}

// Submit runs one summarization for the session. A failed summarization is
// part of the returned view, not a transport error.
func (h *Handler) Submit(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	var req submitRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
			return
		}
	}

	// A client disconnect must not cancel the upstream call; the coordinator
	// applies its own deadline.
	ctx := context.WithoutCancel(c.Request.Context())
	if _, err := s.OnSubmit(ctx, summarizer.Language(req.Language), req.Sentences); err != nil {
		abortWithError(c, domainError(err))
		return
	}
	h.respondPersisted(c, s)
}

// Events streams state transitions using Server-Sent Events.
func (h *Handler) Events(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	flusher, ok := c.Writer.(http.Flusher)
	if !ok {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "stream_unsupported", "streaming not supported", nil))
		return
	}

	updates, cancel := s.Coordinator().Subscribe()
	defer cancel()

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Status(http.StatusOK)

	ctx := c.Request.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case st, open := <-updates:
			if !open {
				return
			}
			payload, err := json.Marshal(st)
			if err != nil {
				h.logger.Error("marshal state failed", "error", err)
				continue
			}
			c.Writer.Write([]byte("event: state\ndata: "))
			c.Writer.Write(payload)
			c.Writer.Write([]byte("\n\n"))
			flusher.Flush()
		}
	}
}

// History lists recent submission outcomes for the session.
func (h *Handler) History(c *gin.Context) {
	id, ok := sessionID(c)
	if !ok {
		return
	}
	entries, err := h.history.List(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, domainError(err))
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	c.JSON(http.StatusOK, gin.H{"entries": entries})
}

func (h *Handler) session(c *gin.Context) (*summarizer.Session, bool) {
	id, ok := sessionID(c)
	if !ok {
		return nil, false
	}
	s, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		abortWithError(c, domainError(err))
		return nil, false
	}
	return s, true
}

func (h *Handler) respondPersisted(c *gin.Context, s *summarizer.Session) {
	h.sessions.Persist(context.WithoutCancel(c.Request.Context()), s)
	c.JSON(http.StatusOK, s.View())
}

func sessionID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "invalid session id", err))
		return uuid.Nil, false
	}
	return id, true
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
