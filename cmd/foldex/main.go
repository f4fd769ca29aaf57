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
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/foldex/internal/config"
	"github.com/kailas-cloud/foldex/internal/db/bleve"
	"github.com/kailas-cloud/foldex/internal/db/fuzzy"
	logpkg "github.com/kailas-cloud/foldex/internal/logger"
	"github.com/kailas-cloud/foldex/internal/metrics"
	"github.com/kailas-cloud/foldex/internal/repository/snapshot"
	"github.com/kailas-cloud/foldex/internal/seed"
	chiTransport "github.com/kailas-cloud/foldex/internal/transport/chi"
	healthuc "github.com/kailas-cloud/foldex/internal/usecase/health"
	indexuc "github.com/kailas-cloud/foldex/internal/usecase/index"
	searchuc "github.com/kailas-cloud/foldex/internal/usecase/search"
	suggestuc "github.com/kailas-cloud/foldex/internal/usecase/suggest"
	"github.com/kailas-cloud/foldex/internal/version"
)

const serviceName = "foldex"

func main() {
	// Load configuration based on ENV
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting foldex API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Float64("fuzzy_threshold", cfg.Search.FuzzyThreshold),
		zap.Int("max_depth", cfg.Index.MaxDepth),
	)

	// Register metrics explicitly (no init())
	if err := metrics.Register(prometheus.DefaultRegisterer); err != nil {
		logger.Fatal("Failed to register metrics", zap.Error(err))
	}

	// Both backends are rebuilt together on every index replace.
	repo := snapshot.New(snapshot.Builders{
		Prefix: bleve.Build,
		Fuzzy:  fuzzy.NewBuilder(fuzzy.Config{Threshold: cfg.Search.FuzzyThreshold}),
	}, logger)
	defer func() { _ = repo.Close() }()

	indexSvc := indexuc.New(repo, cfg.Index.FolderDepthLimit(), logger)
	searchSvc, err := searchuc.New(repo, searchuc.Config{
		TokenHitScore:   cfg.Search.TokenHitScore,
		SimilarityFloor: cfg.Search.SimilarityFloor,
		CacheSize:       cfg.Search.CacheSize,
	}, logger)
	if err != nil {
		logger.Fatal("Failed to create search service", zap.Error(err))
	}
	suggestSvc := suggestuc.New(repo)
	healthSvc := healthuc.New(repo)

	ctx := context.Background()
	if cfg.Index.SeedFile != "" {
		if err := seedIndex(ctx, indexSvc, cfg.Index.SeedFile, logger); err != nil {
			logger.Fatal("Failed to seed index", zap.String("file", cfg.Index.SeedFile), zap.Error(err))
		}
	}

	// Create chi server
	server := chiTransport.NewServer(
		indexSvc, searchSvc, suggestSvc, healthSvc,
		prometheus.DefaultGatherer,
		chiTransport.Limits{
			DefaultLimit:    cfg.Search.DefaultLimit,
			MaxLimit:        cfg.Search.MaxLimit,
			SuggestionLimit: cfg.Search.SuggestionLimit,
			MaxBodyBytes:    cfg.HTTP.MaxBodyBytes,
		},
		logger,
	)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	chiTransport.HandlerWithOptions(server, chiTransport.ChiServerOptions{
		BaseRouter: r,
		ErrorHandlerFunc: func(w http.ResponseWriter, _ *http.Request, err error) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(chiTransport.ErrorResponse{
				Code:    chiTransport.ErrorResponseCodeBadRequest,
				Message: err.Error(),
			})
		},
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      otelhttp.NewHandler(r, serviceName),
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

// seedIndex replaces the empty startup index with the snapshot stored in path.
func seedIndex(ctx context.Context, svc *indexuc.Service, path string, logger *zap.Logger) error {
	snap, err := seed.Load(path)
	if err != nil {
		return err
	}
	st, err := svc.IndexSnapshot(ctx, snap)
	if err != nil {
		return fmt.Errorf("index seed: %w", err)
	}
	logger.Info("Index seeded",
		zap.String("file", path),
		zap.Int("records", st.TotalItems),
		zap.Int("folders", st.Folders),
		zap.Int("shared", st.SharedFolders),
	)
	return nil
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

			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.String("query", r.URL.RawQuery),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
