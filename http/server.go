package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"lpapredictor/ml"
	"lpapredictor/monitoring"
)

// Server is the HTTP front end for a loaded model.
type Server struct {
	server    *http.Server
	config    ServerConfig
	logger    *zap.Logger
	metrics   *monitoring.Collector
	predictor *predictor
}

// ServerConfig holds server tunables.
type ServerConfig struct {
	Port         int
	Timeout      time.Duration
	MaxBodyBytes int64
	CacheSize    int
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Port:         8080,
		Timeout:      30 * time.Second,
		MaxBodyBytes: 4096,
		CacheSize:    256,
	}
}

// NewServer wires the handlers for model. A nil logger or metrics collector is replaced
// with a no-op logger or a fresh collector.
func NewServer(config ServerConfig, model *ml.LinearModel, logger *zap.Logger, metrics *monitoring.Collector) (*Server, error) {
	if model == nil {
		return nil, errors.New("model is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if metrics == nil {
		metrics = monitoring.NewCollector()
	}

	p, err := newPredictor(model, config.CacheSize, metrics)
	if err != nil {
		return nil, fmt.Errorf("create prediction cache: %w", err)
	}
	metrics.RecordModel(model.Slope, model.Intercept)

	registry := prometheus.NewRegistry()
	if err := registry.Register(metrics); err != nil {
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	s := &Server{
		config:    config,
		logger:    logger,
		metrics:   metrics,
		predictor: p,
	}

	mux := http.NewServeMux()
	s.registerHandlers(mux)
	mux.Handle("GET /metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	chain := Chain(
		RecoveryMiddleware(logger),
		LoggerMiddleware(logger),
		SecurityHeadersMiddleware,
		RequestSizeMiddleware(config.MaxBodyBytes),
	)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", config.Port),
		Handler:      chain(mux),
		ReadTimeout:  config.Timeout,
		WriteTimeout: config.Timeout,
		IdleTimeout:  120 * time.Second,
	}
	return s, nil
}

// Handler returns the fully wrapped handler.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start serves until Stop is called.
func (s *Server) Start() error {
	s.logger.Info("starting HTTP server", zap.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down HTTP server")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	return nil
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.server.Addr
}
