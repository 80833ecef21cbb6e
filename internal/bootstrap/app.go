package bootstrap

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/yanqian/multilingual-summarizer/internal/infra/config"
)

const upstreamProbeTimeout = 3 * time.Second

// UpstreamProbe checks that the summarization service answers.
type UpstreamProbe interface {
	Health(ctx context.Context) (string, error)
}

// App encapsulates the HTTP server lifecycle.
type App struct {
	cfg      *config.Config
	logger   *slog.Logger
	server   *http.Server
	upstream UpstreamProbe
}

// NewApp is used by Wire to build the runnable app.
func NewApp(cfg *config.Config, logger *slog.Logger, server *http.Server, upstream UpstreamProbe) *App {
	return &App{cfg: cfg, logger: logger.With("component", "bootstrap"), server: server, upstream: upstream}
}

// Run starts the HTTP server and blocks until shutdown.
func (a *App) Run(ctx context.Context) error {
	a.probeUpstream(ctx)

	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("http server starting", "address", a.cfg.HTTP.Address)
		if err := a.server.ListenAndServe(); err != nil {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.shutdownTimeout())
		defer cancel()
		a.logger.Info("shutdown signal received")
		if err := a.server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// probeUpstream only logs. The service starts even when the summarizer is down
// so that failures surface per request as network errors.
func (a *App) probeUpstream(ctx context.Context) {
	if a.upstream == nil {
		return
	}
	probeCtx, cancel := context.WithTimeout(ctx, upstreamProbeTimeout)
	defer cancel()
	status, err := a.upstream.Health(probeCtx)
	if err != nil {
		a.logger.Warn("summarization service unreachable", "endpoint", a.cfg.Summarizer.Endpoint, "error", err)
		return
	}
	a.logger.Info("summarization service reachable", "endpoint", a.cfg.Summarizer.Endpoint, "status", status)
}

// shutdownTimeout lets an in-flight submission resolve before the server
// closes its connections.
func (a *App) shutdownTimeout() time.Duration {
	timeout := 10 * time.Second
	if t := a.cfg.Summarizer.Timeout + time.Second; t > timeout {
		timeout = t
	}
	return timeout
}
