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

	"github.com/kbeauty/beautyfinder/internal/catalog"
	"github.com/kbeauty/beautyfinder/internal/config"
	"github.com/kbeauty/beautyfinder/internal/db"
	dbPostgres "github.com/kbeauty/beautyfinder/internal/db/postgres"
	dbRedis "github.com/kbeauty/beautyfinder/internal/db/redis"
	logpkg "github.com/kbeauty/beautyfinder/internal/logger"
	"github.com/kbeauty/beautyfinder/internal/metrics"
	"github.com/kbeauty/beautyfinder/internal/planner"
	shoprepo "github.com/kbeauty/beautyfinder/internal/repository/shop"
	chiTransport "github.com/kbeauty/beautyfinder/internal/transport/chi"
	discoveryuc "github.com/kbeauty/beautyfinder/internal/usecase/discovery"
	healthuc "github.com/kbeauty/beautyfinder/internal/usecase/health"
	"github.com/kbeauty/beautyfinder/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting beautyfinder API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_driver", cfg.Database.Driver),
	)

	store, err := newStore(cfg)
	if err != nil {
		logger.Fatal("Failed to create store", zap.Error(err))
	}
	defer store.Close()

	ctx := context.Background()
	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		logger.Fatal("Store not ready", zap.Error(err))
	}
	logger.Info("Connected to store")

	metrics.RegisterHTTPMetrics()
	metrics.RegisterDiscoveryMetrics()

	// Bootstrap the composite indexes declared by the catalog.
	cat := catalog.Default()
	if pg, ok := store.(*dbPostgres.Store); ok {
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Fatal("Failed to ensure schema", zap.Error(err))
		}
	}
	if err := shoprepo.EnsureIndexes(ctx, store, cat); err != nil {
		logger.Fatal("Failed to ensure indexes", zap.Error(err))
	}
	logger.Info("Composite indexes ready", zap.Int("count", len(cat.All())))

	repo := shoprepo.New(store).WithFetchLimit(cfg.Discovery.FetchLimit)

	discoverySvc := discoveryuc.New(repo, planner.New(cat)).WithBudgets(
		time.Duration(cfg.Discovery.TargetBudgetMs)*time.Millisecond,
		time.Duration(cfg.Discovery.HardBudgetMs)*time.Millisecond,
		time.Duration(cfg.Discovery.StoreTimeoutMs)*time.Millisecond,
	)
	healthSvc := healthuc.New(store)

	server := chiTransport.NewServer(discoverySvc, healthSvc, logger)

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

// newStore creates the configured store driver.
func newStore(cfg config.Config) (db.Store, error) {
	switch cfg.Database.Driver {
	case "redis":
		return dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Database.Addrs,
			Password: cfg.Database.Password,
		})
	case "postgres":
		return dbPostgres.NewStore(dbPostgres.Config{DSN: cfg.Database.DSN})
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a
// plain text stacktrace.
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

// wideEventMiddleware emits a canonical log line per request and
// propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			requestID := chiMiddleware.GetReqID(r.Context())
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
