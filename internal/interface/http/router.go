package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/multilingual-summarizer/internal/infra/config"
	"github.com/yanqian/multilingual-summarizer/pkg/metrics"
)

// NewRouter wires up the HTTP handlers and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler, submissions *metrics.Submissions) *http.Server {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(cfg.HTTP.CORS.AllowedOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	router.GET("/healthz", handler.Health)
	if submissions != nil {
		router.GET("/metrics", gin.WrapH(submissions.Handler()))
	}

	api := router.Group("/api/v1")
	api.Use(rateLimitMiddleware(cfg.HTTP.RateLimit, handler.logger))
	{
		api.GET("/languages", handler.Languages)
		api.GET("/sample", handler.Sample)
		api.POST("/stats", handler.Stats)

		api.POST("/sessions", handler.CreateSession)
		api.GET("/sessions/:id", handler.GetSession)
		api.DELETE("/sessions/:id", handler.DeleteSession)
		api.PUT("/sessions/:id/text", handler.UpdateText)
		api.PUT("/sessions/:id/language", handler.UpdateLanguage)
		api.PUT("/sessions/:id/sentences", handler.UpdateSentences)
		api.POST("/sessions/:id/sample", handler.UseSample)
		api.POST("/sessions/:id/clear", handler.Clear)
		api.POST("/sessions/:id/summaries", handler.Submit)
		api.GET("/sessions/:id/events", handler.Events)
		api.GET("/sessions/:id/history", handler.History)
	}

	return &http.Server{
		Addr:           cfg.HTTP.Address,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

func requestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("http request", "method", c.Request.Method, "path", c.Request.URL.Path, "status", c.Writer.Status(), "latency_ms", latency.Milliseconds())
	}
}
