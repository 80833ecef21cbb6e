package summaryapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/yanqian/multilingual-summarizer/internal/domain/summarizer"
)

// DefaultEndpoint is where the summarization service listens in development.
const DefaultEndpoint = "http://127.0.0.1:5000/summarize"

const maxResponseBytes = 4 << 20

// Client posts summarization requests to the external service.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// NewClient builds an API client. Request deadlines come from the caller's
// context, so the underlying http.Client carries no timeout of its own.
func NewClient(endpoint string) *Client {
	endpoint = strings.TrimSpace(endpoint)
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{},
	}
}

// Endpoint returns the configured summarize URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Summarize implements summarizer.Client. Transport failures keep their
// underlying error in the chain; answers that signal a failure become *summarizer.ServiceError.
func (c *Client) Summarize(ctx context.Context, req summarizer.Request) (string, error) {
	payload, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("encode summarize request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build summarize request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("summarize request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", fmt.Errorf("read summarize response: %w", err)
	}

	var decoded apiResponse
	decodeErr := json.Unmarshal(body, &decoded)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", summarizer.NewServiceError(resp.StatusCode, decoded.errorMessage())
	}
	if decodeErr != nil {
		return "", summarizer.NewServiceError(resp.StatusCode, "")
	}
	switch {
	case strings.EqualFold(decoded.Status, "success"):
		return decoded.summary(), nil
	case decoded.Status != "" || decoded.errorMessage() != "":
		return "", summarizer.NewServiceError(resp.StatusCode, decoded.errorMessage())
	case decoded.Summary == nil:
		return "", summarizer.NewServiceError(resp.StatusCode, "")
	default:
		return decoded.summary(), nil
	}
}

// Health queries the service root, which answers {"status":"online"}.
func (c *Client) Health(ctx context.Context) (string, error) {
	root, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("parse summarize endpoint: %w", err)
	}
	root.Path = "/"
	root.RawQuery = ""

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, root.String(), nil)
	if err != nil {
		return "", fmt.Errorf("build health request: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("health request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", fmt.Errorf("health request error: status=%d body=%s", resp.StatusCode, string(payload))
	}
	var status struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return "", fmt.Errorf("decode health response: %w", err)
	}
	return status.Status, nil
}

type apiResponse struct {
	Status  string          `json:"status"`
	Summary *string         `json:"summary"`
	Error   json.RawMessage `json:"error"`
}

func (r apiResponse) summary() string {
	if r.Summary == nil {
		return ""
	}
	return *r.Summary
}

// errorMessage accepts both {"error":"..."} and {"error":{"message":"..."}}.
func (r apiResponse) errorMessage() string {
	if len(r.Error) == 0 {
		return ""
	}
	var text string
	if err := json.Unmarshal(r.Error, &text); err == nil {
		return strings.TrimSpace(text)
	}
	var nested struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(r.Error, &nested); err == nil {
		return strings.TrimSpace(nested.Message)
	}
	return ""
}

var _ summarizer.Client = (*Client)(nil)
