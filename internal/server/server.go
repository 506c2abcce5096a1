// Package server provides the HTTP API for the sales diagnostic.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/jonathan/sales-diagnostic/internal/config"
	"github.com/jonathan/sales-diagnostic/internal/diagnosis"
	"github.com/jonathan/sales-diagnostic/internal/narrative"
	"github.com/jonathan/sales-diagnostic/internal/observability"
	"github.com/jonathan/sales-diagnostic/internal/recommend"
	"github.com/jonathan/sales-diagnostic/internal/server/ratelimit"
)

// Deps are the collaborators a Server delegates to.
type Deps struct {
	Service *diagnosis.Service
	// Analyzer backs /api/analyze. Nil means no model API key is configured.
	Analyzer narrative.Tier
	Metrics  *observability.Metrics
	Logger   *zap.Logger
}

// Server represents the HTTP server
type Server struct {
	httpServer      *http.Server
	router          chi.Router
	service         *diagnosis.Service
	analyzer        narrative.Tier
	metrics         *observability.Metrics
	logger          *zap.Logger
	rateLimiter     *ratelimit.Limiter
	defaultTop      int
	shutdownTimeout time.Duration
}

// New creates a new server instance
func New(cfg *config.Config, deps Deps) *Server {
	if cfg == nil {
		cfg = config.Default()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Service == nil {
		deps.Service = diagnosis.NewService(diagnosis.WithMetrics(deps.Metrics), diagnosis.WithLogger(deps.Logger))
	}

	s := &Server{
		service:         deps.Service,
		analyzer:        deps.Analyzer,
		metrics:         deps.Metrics,
		logger:          deps.Logger,
		rateLimiter:     ratelimit.NewLimiter(RateLimitConfig(cfg.RateLimit)),
		defaultTop:      cfg.Top,
		shutdownTimeout: cfg.Server.ShutdownTimeout,
	}
	if s.defaultTop <= 0 {
		s.defaultTop = recommend.DefaultTop
	}
	s.router = s.routes(cfg.Server.AllowedOrigins)

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

// RateLimitConfig converts the loaded configuration into limiter settings.
func RateLimitConfig(c config.RateLimitConfig) *ratelimit.Config {
	return &ratelimit.Config{
		Enabled:         c.Enabled,
		DefaultLimit:    c.DefaultLimit,
		DefaultWindow:   c.DefaultWindow,
		CleanupInterval: c.CleanupInterval,
		Whitelist:       ratelimit.IPSet(c.Whitelist),
		Blacklist:       ratelimit.IPSet(c.Blacklist),
		EndpointConfigs: ratelimit.DefaultEndpointConfigs(c.AnalyzeLimit, c.AnalyzeWindow, c.AnalyzeBurst),
	}
}

func (s *Server) routes(origins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.withLogging)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(ratelimit.Middleware(s.rateLimiter, s.logger))

	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		s.errorResponse(w, http.StatusMethodNotAllowed, msgMethodNotAllowed)
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		s.errorResponse(w, http.StatusNotFound, "Not found")
	})

	r.Get("/health", s.handleHealth)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Post("/analyze", s.handleAnalyze)
		r.Post("/diagnosis", s.handleDiagnosis)
		r.Post("/score", s.handleScore)
		r.Post("/projection", s.handleProjection)
		r.Post("/recommendations", s.handleRecommendations)
		r.Get("/questions", s.handleQuestions)
		r.Get("/questions/{id}", s.handleQuestion)
	})

	return r
}

// Handler exposes the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until ctx is cancelled or the process receives SIGINT/SIGTERM,
// then drains in-flight requests.
func (s *Server) Start(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer s.rateLimiter.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", zap.String("addr", s.httpServer.Addr))
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	s.logger.Info("server stopped")
	return nil
}

// withLogging logs each request and records it under its route pattern.
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)

		s.metrics.RecordHTTP(r.Method, route, status, elapsed)
		s.logger.Info("request",
			zap.String("request_id", middleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("route", route),
			zap.Int("status", status),
			zap.Duration("elapsed", elapsed))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Warn("encoding JSON response", zap.Error(err))
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// failure maps err to its status and writes it.
func (s *Server) failure(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", zap.Error(err))
	}
	s.errorResponse(w, status, err.Error())
}
