//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/multilingual-summarizer/internal/bootstrap"
	"github.com/yanqian/multilingual-summarizer/internal/domain/history"
	"github.com/yanqian/multilingual-summarizer/internal/domain/summarizer"
	"github.com/yanqian/multilingual-summarizer/internal/infra/config"
	"github.com/yanqian/multilingual-summarizer/internal/infra/summaryapi"
	httpiface "github.com/yanqian/multilingual-summarizer/internal/interface/http"
	"github.com/yanqian/multilingual-summarizer/pkg/logger"
	"github.com/yanqian/multilingual-summarizer/pkg/metrics"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideSummarizerConfig,
		provideSummaryAPIClient,
		provideHistoryConfig,
		provideHistoryRepository,
		provideDraftStore,
		provideObservers,
		metrics.NewSubmissions,
		history.NewService,
		summarizer.NewRegistry,
		wire.Bind(new(summarizer.Client), new(*summaryapi.Client)),
		wire.Bind(new(httpiface.HealthChecker), new(*summaryapi.Client)),
		wire.Bind(new(bootstrap.UpstreamProbe), new(*summaryapi.Client)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
