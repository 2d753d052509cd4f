package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "golang.org/x/crypto/x509roots/fallback" // Embed CA certs for scratch container

	"github.com/ericfisherdev/viuelpadel/internal/adapter/driven/backend"
	"github.com/ericfisherdev/viuelpadel/internal/adapter/driven/cache"
	"github.com/ericfisherdev/viuelpadel/internal/adapter/driven/memory"
	sqliteadapter "github.com/ericfisherdev/viuelpadel/internal/adapter/driven/sqlite"
	httphandler "github.com/ericfisherdev/viuelpadel/internal/adapter/driving/http"
	webhandler "github.com/ericfisherdev/viuelpadel/internal/adapter/driving/web"
	"github.com/ericfisherdev/viuelpadel/internal/application"
	"github.com/ericfisherdev/viuelpadel/internal/config"
	"github.com/ericfisherdev/viuelpadel/internal/domain/port/driven"
	"github.com/ericfisherdev/viuelpadel/internal/metrics"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration. A .env file is optional.
	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	slog.Info("config loaded",
		"listen_addr", cfg.ListenAddr,
		"backend_url", cfg.BackendURL,
		"durable_credentials", cfg.HasSecretKey(),
	)

	// 2. Setup signal-based context (SIGINT, SIGTERM).
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 3. Credential store: encrypted SQLite when a key is configured,
	// otherwise memory (the admin logs in again after a restart).
	var credentialStore driven.CredentialStore
	if cfg.HasSecretKey() {
		db, err := sqliteadapter.NewDB(ctx, cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := db.Close(); closeErr != nil {
				slog.Error("error closing database", "error", closeErr)
			}
		}()

		version, err := sqliteadapter.RunMigrations(db.Writer)
		if err != nil {
			return err
		}
		slog.Info("database ready", "path", db.Path(), "schema_version", version)

		credentialStore = sqliteadapter.NewCredentialRepo(db, cfg.SecretKey)
	} else {
		slog.Warn("VIUELPADEL_SECRET_KEY not set, admin key kept in memory only")
		credentialStore = memory.NewCredentialStore()
	}

	// 4. Wire the data access layer.
	slot := application.NewCredentialSlot(credentialStore)
	gateway := backend.NewGateway(cfg.BackendURL, slot, cache.NewStore(),
		backend.WithAuthHeader(cfg.AuthHeader),
		backend.WithLogger(slog.Default()),
	)

	authSvc := application.NewAuthService(slot, gateway, slog.Default())
	overviewSvc := application.NewOverviewService(gateway)
	healthSvc := application.NewHealthService(authSvc)
	history := application.NewNavigationHistory()

	// 5. Register API, metrics and console routes.
	mux := http.NewServeMux()
	httphandler.RegisterAPIRoutes(mux, httphandler.NewHandler(gateway, healthSvc, slog.Default()))
	mux.Handle("GET /metrics", metrics.Handler())
	webhandler.RegisterRoutes(mux, webhandler.NewHandler(gateway, authSvc, overviewSvc, history, slog.Default()))

	handler := httphandler.ApplyMiddleware(mux, slog.Default())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	go func() {
		slog.Info("http server starting", "addr", cfg.ListenAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("http server error", "error", err)
			stop()
		}
	}()

	// 6. Wait for shutdown signal.
	<-ctx.Done()
	slog.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("http server shutdown error", "error", err)
	}

	slog.Info("shutdown complete")
	return nil
}
