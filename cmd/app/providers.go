package main

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valkey-io/valkey-go"

	"github.com/yanqian/multilingual-summarizer/internal/domain/history"
	"github.com/yanqian/multilingual-summarizer/internal/domain/summarizer"
	"github.com/yanqian/multilingual-summarizer/internal/infra/config"
	"github.com/yanqian/multilingual-summarizer/internal/infra/draftstore"
	"github.com/yanqian/multilingual-summarizer/internal/infra/historyrepo"
	"github.com/yanqian/multilingual-summarizer/internal/infra/summaryapi"
	"github.com/yanqian/multilingual-summarizer/pkg/metrics"
)

func provideSummarizerConfig(cfg *config.Config) summarizer.Config {
	return summarizer.Config{
		Timeout:          cfg.Summarizer.Timeout,
		MinSentences:     cfg.Summarizer.MinSentences,
		DefaultLanguage:  summarizer.Language(cfg.Summarizer.DefaultLanguage),
		DefaultSentences: cfg.Summarizer.DefaultSentences,
		SessionIdleTTL:   cfg.Session.IdleTTL,
	}
}

func provideSummaryAPIClient(cfg *config.Config) *summaryapi.Client {
	return summaryapi.NewClient(cfg.Summarizer.Endpoint)
}

func provideHistoryConfig(cfg *config.Config) history.Config {
	return history.Config{ListLimit: cfg.History.ListLimit}
}

func provideObservers(historySvc history.Service, submissions *metrics.Submissions) summarizer.Observers {
	return summarizer.Observers{historySvc, submissions}
}

func provideHistoryRepository(cfg *config.Config, logger *slog.Logger) history.Repository {
	fallback := historyrepo.NewMemoryRepository(cfg.History.MemoryCap)
	dsn := strings.TrimSpace(cfg.History.Postgres.DSN)
	if dsn == "" {
		logger.Info("history postgres dsn not set, using memory repository")
		return fallback
	}
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		logger.Error("invalid postgres dsn, using memory repository", "error", err)
		return fallback
	}
	if cfg.History.Postgres.MaxConns > 0 {
		poolConfig.MaxConns = cfg.History.Postgres.MaxConns
	}
	if cfg.History.Postgres.MinConns > 0 {
		poolConfig.MinConns = cfg.History.Postgres.MinConns
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), poolConfig)
	if err != nil {
		logger.Error("failed to initialize postgres pool, using memory repository", "error", err)
		return fallback
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		logger.Error("postgres ping failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	repo := historyrepo.NewPostgresRepository(pool)
	if err := repo.EnsureSchema(ctx); err != nil {
		logger.Error("history schema setup failed, using memory repository", "error", err)
		pool.Close()
		return fallback
	}
	logger.Info("history postgres repository enabled")
	return repo
}

func provideDraftStore(cfg *config.Config, logger *slog.Logger) summarizer.DraftStore {
	if cfg.Drafts.Valkey.Enabled {
		opt, err := buildValkeyOptions(cfg.Drafts.Valkey.Addr)
		if err != nil {
			logger.Error("invalid valkey configuration, falling back to memory store", "error", err)
			return draftstore.NewMemoryStore(cfg.Drafts.TTL)
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			logger.Error("failed to create valkey client, falling back to memory store", "error", err)
			return draftstore.NewMemoryStore(cfg.Drafts.TTL)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			logger.Error("valkey ping failed, falling back to memory store", "error", err)
			client.Close()
		} else {
			logger.Info("draft valkey store enabled", "addr", cfg.Drafts.Valkey.Addr)
			return draftstore.NewValkeyStore(client, cfg.Drafts.Valkey.Prefix, cfg.Drafts.TTL)
		}
	}
	return draftstore.NewMemoryStore(cfg.Drafts.TTL)
}

func buildValkeyOptions(addr string) (valkey.ClientOption, error) {
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}
