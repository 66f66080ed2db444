package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/brandpulse/creatorsearch/internal/config"
	dbRedis "github.com/brandpulse/creatorsearch/internal/db/redis"
	"github.com/brandpulse/creatorsearch/internal/domain"
	logpkg "github.com/brandpulse/creatorsearch/internal/logger"
	"github.com/brandpulse/creatorsearch/internal/metrics"
	"github.com/brandpulse/creatorsearch/internal/repository/creatorindex"
	"github.com/brandpulse/creatorsearch/internal/repository/creatorstore"
	"github.com/brandpulse/creatorsearch/internal/repository/embcache"
	chiTransport "github.com/brandpulse/creatorsearch/internal/transport/chi"
	openaiTransport "github.com/brandpulse/creatorsearch/internal/transport/openai"
	embeddinguc "github.com/brandpulse/creatorsearch/internal/usecase/embedding"
	healthuc "github.com/brandpulse/creatorsearch/internal/usecase/health"
	indexeruc "github.com/brandpulse/creatorsearch/internal/usecase/indexer"
	inteluc "github.com/brandpulse/creatorsearch/internal/usecase/intel"
	"github.com/brandpulse/creatorsearch/internal/usecase/orchestrator"
	"github.com/brandpulse/creatorsearch/internal/usecase/vectorsearch"
	"github.com/brandpulse/creatorsearch/internal/version"
)

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

	logger.Info("Starting creator search API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.Strings("db_addrs", cfg.Database.Addrs),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Username: cfg.Database.Username,
		Password: cfg.Database.Password,
		DB:       cfg.Database.DB,
	})
	if err != nil {
		logger.Fatal("Failed to create vector store", zap.Error(err))
	}
	defer store.Close()

	// Wait for the vector backend to be ready
	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Vector store not ready", zap.Error(err))
	}
	logger.Info("Connected to vector store")

	// Register metrics explicitly (no init())
	metrics.RegisterEmbeddingMetrics()
	metrics.RegisterSearchMetrics()

	// Build the embedder decorator chain
	baseEmbedder := openaiTransport.NewEmbedder(&openaiTransport.EmbedderConfig{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})

	var embedder domain.Embedder = embcache.New(
		baseEmbedder, store,
		time.Duration(cfg.Embedding.CacheTTLSec)*time.Second,
		metrics.EmbeddingCacheTotal, logger,
	)
	embedder = embeddinguc.NewInstrumentedEmbedder(
		embedder, cfg.Embedding.Provider, cfg.Embedding.Model, logger,
	)
	logger.Info("Embedder created",
		zap.String("provider", cfg.Embedding.Provider),
		zap.String("model", cfg.Embedding.Model),
		zap.Int("dimensions", cfg.Embedding.Dimensions),
	)

	analyzer := openaiTransport.NewAnalyzer(&openaiTransport.AnalyzerConfig{
		APIKey:  cfg.Intelligence.APIKey,
		BaseURL: cfg.Intelligence.BaseURL,
		Model:   cfg.Intelligence.Model,
		Logger:  logger,
	})

	// Create repositories (domain-native, no adapters)
	indexRepo := creatorindex.New(store, cfg.Embedding.Dimensions).WithHNSW(creatorindex.HNSWConfig{
		M:           cfg.Index.HNSWM,
		EFConstruct: cfg.Index.HNSWEFConstruct,
	})

	storeRepo, err := creatorstore.New(creatorstore.Config{
		URL:    cfg.Relational.URL,
		APIKey: cfg.Relational.APIKey,
		Table:  cfg.Relational.Table,
	})
	if err != nil {
		logger.Fatal("Failed to create creator store", zap.Error(err))
	}

	// Create use case services
	intelSvc := inteluc.New(analyzer, cfg.Intelligence.ConfidenceGate, logger)
	vectorSvc := vectorsearch.New(indexRepo, embedder)
	searchSvc := orchestrator.New(intelSvc, vectorSvc, storeRepo, orchestrator.Config{
		Timeout:     time.Duration(cfg.Search.RequestTimeoutSec) * time.Second,
		VectorBoost: cfg.Search.VectorBoost,
		VectorShare: cfg.Search.VectorShare,
		MinScore:    cfg.Search.MinScore,
	}, logger)
	indexerSvc := indexeruc.New(indexRepo, embedder, logger)
	healthSvc := healthuc.New(indexRepo, storeRepo, newEmbeddingHealthChecker(baseEmbedder))

	// Create the FT index up front so first writes and searches do not race it
	if err := indexerSvc.EnsureIndex(ctx); err != nil {
		logger.Fatal("Failed to ensure creator index", zap.Error(err))
	}

	// Create chi server
	server := chiTransport.NewServer(searchSvc, indexerSvc, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
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
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
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

// embeddingHealthChecker adapts domain.Embedder to the health service's Checker.
type embeddingHealthChecker struct {
	embedder domain.Embedder
}

func newEmbeddingHealthChecker(embedder domain.Embedder) *embeddingHealthChecker {
	return &embeddingHealthChecker{embedder: embedder}
}

func (h *embeddingHealthChecker) HealthCheck(ctx context.Context) error {
	if hc, ok := h.embedder.(domain.HealthChecker); ok {
		if err := hc.HealthCheck(ctx); err != nil {
			return fmt.Errorf("embedding health check: %w", err)
		}
	}
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
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
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

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line, one per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
