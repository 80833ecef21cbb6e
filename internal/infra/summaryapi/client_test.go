package summaryapi

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/multilingual-summarizer/internal/domain/summarizer"
)

func TestSummarizeSendsPayload(t *testing.T) {
	var got summarizer.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/summarize", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"success","summary":"X"}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL + "/summarize")
	summary, err := client.Summarize(context.Background(), summarizer.Request{Text: "One. Two.", Language: summarizer.LanguageMarathi, Sentences: 1})
	require.NoError(t, err)
	require.Equal(t, "X", summary)
	require.Equal(t, summarizer.Request{Text: "One. Two.", Language: summarizer.LanguageMarathi, Sentences: 1}, got)
}

func TestSummarizeResponses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantSummary string
		wantStatus  int
		wantMessage string
	}{
		{name: "status discriminator", status: 200, body: `{"status":"success","summary":"short"}`, wantSummary: "short"},
		{name: "plain 2xx", status: 201, body: `{"summary":"plain"}`, wantSummary: "plain"},
		{name: "success without summary", status: 200, body: `{"status":"success"}`, wantSummary: ""},
		{name: "success flagged error", status: 200, body: `{"status":"error","error":"Translation error"}`, wantStatus: 200, wantMessage: "Translation error"},
		{name: "2xx with error field", status: 200, body: `{"error":"No text provided"}`, wantStatus: 200, wantMessage: "No text provided"},
		{name: "unknown status", status: 200, body: `{"status":"pending"}`, wantStatus: 200, wantMessage: "Failed to generate summary"},
		{name: "2xx without summary", status: 200, body: `{}`, wantStatus: 200, wantMessage: "Failed to generate summary"},
		{name: "2xx invalid json", status: 200, body: `<html>`, wantStatus: 200, wantMessage: "Failed to generate summary"},
		{name: "500 with error", status: 500, body: `{"error":"bad request"}`, wantStatus: 500, wantMessage: "bad request"},
		{name: "400 with nested error", status: 400, body: `{"error":{"code":"invalid","message":"text cannot be empty"}}`, wantStatus: 400, wantMessage: "text cannot be empty"},
		{name: "502 without body", status: 502, body: ``, wantStatus: 502, wantMessage: "Failed to generate summary"},
		{name: "404 html", status: 404, body: `<h1>Not Found</h1>`, wantStatus: 404, wantMessage: "Failed to generate summary"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			summary, err := NewClient(srv.URL).Summarize(context.Background(), summarizer.Request{Text: "a. b.", Language: summarizer.LanguageEnglish, Sentences: 1})
			if tt.wantMessage == "" {
				require.NoError(t, err)
				require.Equal(t, tt.wantSummary, summary)
				return
			}
			var svcErr *summarizer.ServiceError
			require.ErrorAs(t, err, &svcErr)
			require.Equal(t, tt.wantStatus, svcErr.StatusCode)
			require.Equal(t, tt.wantMessage, svcErr.Message)
		})
	}
}

func TestSummarizeConnectionRefused(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	_, err = NewClient("http://"+addr+"/summarize").Summarize(context.Background(), summarizer.Request{Text: "a. b."})
	require.Error(t, err)
	var svcErr *summarizer.ServiceError
	require.False(t, errors.As(err, &svcErr))
	require.False(t, errors.Is(err, context.DeadlineExceeded))
}

func TestSummarizeHonoursContextDeadline(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	_, err := NewClient(srv.URL).Summarize(ctx, summarizer.Request{Text: "a. b."})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestNewClientDefaultsEndpoint(t *testing.T) {
	require.Equal(t, DefaultEndpoint, NewClient("  ").Endpoint())
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/", r.URL.Path)
		_, _ = w.Write([]byte(`{"status":"online","message":"Multilingual Summarizer Backend is running"}`))
	}))
	defer srv.Close()

	status, err := NewClient(srv.URL + "/summarize").Health(context.Background())
	require.NoError(t, err)
	require.Equal(t, "online", status)
}
