// Package gateway wires the HTTP server that bridges browser uploads to the
// transcription provider.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"audioscribe/internal/config"
	"audioscribe/internal/gateway/handlers"
	"audioscribe/internal/gateway/middleware"
	"audioscribe/internal/storage"
	"audioscribe/internal/transcriber"
)

// Server is the transcription gateway HTTP server.
type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	logger     *zap.Logger
}

// NewServer assembles the gin engine, middleware stack, and routes.
func NewServer(cfg *config.Config, t transcriber.Transcriber, archive storage.AudioStore, logger *zap.Logger) *Server {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadBytes()

	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogging(logger))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))

	h := handlers.NewTranscribeHandler(t, archive, logger)
	router.GET("/", h.Liveness)
	router.POST("/transcribe", middleware.BodyLimit(cfg.MaxUploadBytes()), h.Transcribe)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return &Server{
		router: router,
		httpServer: &http.Server{
			Addr:         ":" + cfg.Port,
			Handler:      router,
			ReadTimeout:  5 * time.Minute,
			WriteTimeout: 5 * time.Minute,
			IdleTimeout:  time.Minute,
		},
		logger: logger,
	}
}

// Router exposes the underlying engine, mainly for tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Start blocks serving HTTP until the server is shut down.
func (s *Server) Start() error {
	s.logger.Info("starting transcription gateway", zap.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
