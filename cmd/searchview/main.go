package main

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
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kailas-cloud/searchview/internal/config"
	"github.com/kailas-cloud/searchview/internal/domain/raw"
	logpkg "github.com/kailas-cloud/searchview/internal/logger"
	"github.com/kailas-cloud/searchview/internal/metrics"
	"github.com/kailas-cloud/searchview/internal/render"
	chiTransport "github.com/kailas-cloud/searchview/internal/transport/chi"
	"github.com/kailas-cloud/searchview/internal/transport/discovery"
	healthuc "github.com/kailas-cloud/searchview/internal/usecase/health"
	"github.com/kailas-cloud/searchview/internal/usecase/normalize"
	searchuc "github.com/kailas-cloud/searchview/internal/usecase/search"
	"github.com/kailas-cloud/searchview/internal/version"
)

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level, fileOutput(cfg.Logging.File))
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting searchview server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("reference_policy", cfg.References.Policy),
	)

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	backend, err := discovery.New(&discovery.Config{
		Endpoint:      cfg.Backend.Endpoint,
		RawEndpoint:   cfg.Backend.RawEndpoint,
		Project:       cfg.Backend.Project,
		Location:      cfg.Backend.Location,
		Collection:    cfg.Backend.Collection,
		Engine:        cfg.Backend.Engine,
		ServingConfig: cfg.Backend.ServingConfig,
		Timeout:       cfg.Backend.Timeout(),
		RateLimit:     cfg.Backend.RateLimit,
		UserAgent:     cfg.Backend.UserAgent,
		Logger:        logger,
	})
	if err != nil {
		logger.Fatal("Failed to create search backend client", zap.Error(err))
	}
	logger.Info("Search backend configured", zap.String("url", backend.URL()))

	policy, err := normalize.PolicyByName(cfg.References.Policy)
	if err != nil {
		logger.Fatal("Invalid reference policy", zap.Error(err))
	}
	normalizer := normalize.New(policy).WithSummaryPlaceholder(cfg.Summary.Placeholder)

	searchSvc := searchuc.New(backend, normalizer)
	healthSvc := healthuc.New(backend)

	placeholder := normalizer.Normalize(raw.Node{}).Summary
	html := render.NewHTMLRenderer(cfg.UI.Title, placeholder)

	server := chiTransport.NewServer(searchSvc, healthSvc, html, logger).
		WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(metrics.Middleware())
	server.Routes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

func fileOutput(c config.LogFileConfig) *logpkg.FileOutput {
	if c.Path == "" {
		return nil
	}
	return &logpkg.FileOutput{
		Path:       c.Path,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
						Code:    chiTransport.ErrorResponseCodeInternalError,
						Message: "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			fields := []zap.Field{
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			}
			if q := r.URL.Query().Get("q"); q != "" {
				fields = append(fields, zap.Int("query_len", len(q)))
			}
			reqLogger.Info("http_request", fields...)
		})
	}
}
