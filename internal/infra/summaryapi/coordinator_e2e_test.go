package summaryapi

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/multilingual-summarizer/internal/domain/summarizer"
	"github.com/yanqian/multilingual-summarizer/internal/domain/textstats"
)

func TestCoordinatorEndToEndSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req summarizer.Request
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Equal(t, summarizer.LanguageEnglish, req.Language)
		require.Equal(t, 3, req.Sentences)
		_, _ = w.Write([]byte(`{"status":"success","summary":"X"}`))
	}))
	defer srv.Close()

	coord := summarizer.NewCoordinator(summarizer.Config{}, NewClient(srv.URL), discardLogger())
	st, err := coord.Submit(context.Background(), summarizer.SampleText, summarizer.LanguageEnglish, 3, textstats.Compute(summarizer.SampleText))
	require.NoError(t, err)
	require.Equal(t, summarizer.State{Status: summarizer.StatusSuccess, Summary: "X"}, st)
}

func TestCoordinatorEndToEndServiceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"bad request"}`))
	}))
	defer srv.Close()

	coord := summarizer.NewCoordinator(summarizer.Config{}, NewClient(srv.URL), discardLogger())
	st, err := coord.Submit(context.Background(), summarizer.SampleText, summarizer.LanguageEnglish, 3, textstats.Compute(summarizer.SampleText))
	require.NoError(t, err)
	require.Equal(t, summarizer.StatusFailed, st.Status)
	require.Equal(t, summarizer.KindServiceError, st.Kind)
	require.Equal(t, "bad request", st.Message)
}

func TestCoordinatorEndToEndTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	coord := summarizer.NewCoordinator(summarizer.Config{Timeout: 50 * time.Millisecond}, NewClient(srv.URL), discardLogger())
	st, err := coord.Submit(context.Background(), summarizer.SampleText, summarizer.LanguageEnglish, 3, textstats.Compute(summarizer.SampleText))
	require.NoError(t, err)
	require.Equal(t, summarizer.KindTimeoutError, st.Kind)
	require.Equal(t, "Request timed out. The server took too long to respond.", st.Message)
}

func TestCoordinatorEndToEndNetworkError(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())

	coord := summarizer.NewCoordinator(summarizer.Config{}, NewClient("http://"+addr+"/summarize"), discardLogger())
	st, err := coord.Submit(context.Background(), summarizer.SampleText, summarizer.LanguageEnglish, 3, textstats.Compute(summarizer.SampleText))
	require.NoError(t, err)
	require.Equal(t, summarizer.KindNetworkError, st.Kind)
	require.Equal(t, "Network error. Please check your connection and ensure the server is running.", st.Message)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
