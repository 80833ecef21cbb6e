package summarizer

import (
	"errors"
	"fmt"
)

// Kind classifies why a submission failed.
type Kind string

const (
	KindEmptyInput          Kind = "empty_input"
	KindInsufficientContent Kind = "insufficient_content"
	KindNetworkError        Kind = "network_error"
	KindTimeoutError        Kind = "timeout_error"
	KindServiceError        Kind = "service_error"
)

const (
	msgEmptyInput   = "Please enter some text to summarize"
	msgNetworkError = "Network error. Please check your connection and ensure the server is running."
	msgTimeoutError = "Request timed out. The server took too long to respond."

	// FallbackServiceMessage is shown when the service fails without an explanation.
	FallbackServiceMessage = "Failed to generate summary"
)

var (
	// ErrSubmissionInFlight is returned when a submission is attempted while loading.
	ErrSubmissionInFlight = errors.New("a summarization request is already in progress")
	// ErrUnsupportedLanguage rejects language codes other than en, hi and mr.
	ErrUnsupportedLanguage = errors.New("unsupported language")
	// ErrSessionNotFound is returned by the registry for unknown or expired sessions.
	ErrSessionNotFound = errors.New("session not found")
)

func insufficientContentMessage(minSentences int) string {
	return fmt.Sprintf("Please provide at least %d sentences to generate a summary", minSentences)
}

// ServiceError is returned by a Client when the service answered with a failure.
type ServiceError struct {
	StatusCode int
	Message    string
}

// NewServiceError builds a ServiceError, falling back to a generic message.
func NewServiceError(statusCode int, message string) *ServiceError {
	if message == "" {
		message = FallbackServiceMessage
	}
	return &ServiceError{StatusCode: statusCode, Message: message}
}

func (e *ServiceError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("summarization service error (status %d): %s", e.StatusCode, e.Message)
	}
	return "summarization service error: " + e.Message
}

func failed(kind Kind, message string) State {
	return State{Status: StatusFailed, Kind: kind, Message: message}
}
