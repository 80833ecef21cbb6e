package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/multilingual-summarizer/internal/domain/summarizer"
	apperrors "github.com/yanqian/multilingual-summarizer/pkg/errors"
)

// HTTPError captures the metadata required to serialize an error response consistently.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError is a helper to build an HTTPError instance.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "something went wrong",
		Err:     err,
	}
}

// domainError maps session sentinels and AppError codes onto transport errors.
func domainError(err error) *HTTPError {
	switch {
	case errors.Is(err, summarizer.ErrSessionNotFound):
		return NewHTTPError(http.StatusNotFound, "session_not_found", "session not found", err)
	case errors.Is(err, summarizer.ErrSubmissionInFlight):
		return NewHTTPError(http.StatusConflict, "submission_in_flight", "a summary is already being generated", err)
	case errors.Is(err, summarizer.ErrUnsupportedLanguage):
		return NewHTTPError(http.StatusBadRequest, "invalid_request", "unsupported language", err)
	}
	switch apperrors.CodeOf(err) {
	case apperrors.CodeInvalidInput:
		return NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err)
	case apperrors.CodeNotFound:
		return NewHTTPError(http.StatusNotFound, "not_found", errMessage(err), err)
	case apperrors.CodeBusy:
		return NewHTTPError(http.StatusConflict, "busy", errMessage(err), err)
	case apperrors.CodeStorage:
		return NewHTTPError(http.StatusServiceUnavailable, "storage_unavailable", errMessage(err), err)
	}
	return NewHTTPError(http.StatusInternalServerError, "internal_error", "something went wrong", err)
}

func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
