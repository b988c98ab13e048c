package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"creator-finance/internal/auth"
	"creator-finance/internal/config"
	"creator-finance/internal/database"
	httpserver "creator-finance/internal/http"
	"creator-finance/internal/ledger"
	"creator-finance/internal/platforms"
	"creator-finance/internal/seed"
	"creator-finance/internal/users"
)

func main() {
	_ = godotenv.Load(".env")

	cfg := config.Load()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := cfg.Validate(); err != nil {
		logger.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if cfg.UsesPlaceholderSecret() {
		logger.Warn("JWT_SECRET is not set, signing tokens with the built-in development key")
	}
	if cfg.LogLevel > slog.LevelDebug {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logger.Error("Failed to close database", "error", err)
		}
	}()
	if err := database.Migrate(db); err != nil {
		logger.Error("Failed to migrate database", "error", err)
		os.Exit(1)
	}

	loc := cfg.Location()
	ledgerSvc := ledger.NewService(db, loc)
	platformSvc := platforms.NewService(db, loc)

	var seeder users.Seeder
	if cfg.SeedSampleData {
		seeder = seed.New(ledgerSvc, platformSvc, loc)
	}
	store, err := users.NewStore(db, cfg.BcryptCost, seeder)
	if err != nil {
		logger.Error("Failed to build credential store", "error", err)
		os.Exit(1)
	}

	r, err := httpserver.NewServer(cfg, httpserver.Deps{
		Tokens:    auth.NewTokens(cfg.JWTSecret, cfg.TokenTTL),
		Users:     store,
		Ledger:    ledgerSvc,
		Platforms: platformSvc,
	})
	if err != nil {
		logger.Error("Failed to build router", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      time.Duration(cfg.ReqTimeoutSec+5) * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		logger.Error("Failed to listen", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	// Graceful shutdown handling
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting server", "port", cfg.Port, "seed_sample_data", cfg.SeedSampleData)
	if err := serve(ctx, srv, ln, shutdownTimeout); err != nil {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		return
	}
	logger.Info("Server stopped gracefully")
}

const shutdownTimeout = 30 * time.Second

// serve runs srv on ln until ctx is done, then waits for in-flight requests
// to finish, up to timeout. It returns only after the server has drained.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration) error {
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-serveErr; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
