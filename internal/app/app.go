// Package app wires configuration, storage, services and the HTTP transport
// together and runs the server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	postgres "github.com/wordchainhub/moderation-backend/internal/adapter/postgres"
	"github.com/wordchainhub/moderation-backend/internal/adapter/postgres/document"
	"github.com/wordchainhub/moderation-backend/internal/adapter/postgres/eventlog"
	"github.com/wordchainhub/moderation-backend/internal/adapter/postgres/pending"
	"github.com/wordchainhub/moderation-backend/internal/adapter/postgres/topiclink"
	"github.com/wordchainhub/moderation-backend/internal/adapter/postgres/user"
	"github.com/wordchainhub/moderation-backend/internal/adapter/postgres/word"
	"github.com/wordchainhub/moderation-backend/internal/auth"
	"github.com/wordchainhub/moderation-backend/internal/config"
	"github.com/wordchainhub/moderation-backend/internal/migrate"
	"github.com/wordchainhub/moderation-backend/internal/service/moderation"
	"github.com/wordchainhub/moderation-backend/internal/service/purge"
	"github.com/wordchainhub/moderation-backend/internal/transport/middleware"
	"github.com/wordchainhub/moderation-backend/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, runs
// migrations, wires the repositories and services, and serves HTTP until
// ctx is cancelled, then shuts down gracefully.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.MigrateOnStart {
		if err := migrate.Up(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("apply migrations: %w", err)
		}
		logger.Info("migrations applied")
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer pool.Close()

	// Repositories
	wordRepo := word.New(pool)
	pendingRepo := pending.New(pool)
	topicLinkRepo := topiclink.New(pool)
	documentRepo := document.New(pool)
	eventRepo := eventlog.New(pool)
	userRepo := user.New(pool)
	txManager := postgres.NewTxManager(pool)

	// Services
	moderationSvc := moderation.NewService(logger,
		wordRepo, pendingRepo, topicLinkRepo, documentRepo, eventRepo, userRepo,
		txManager, nil)
	purgeSvc := purge.NewService(logger,
		wordRepo, pendingRepo, topicLinkRepo, documentRepo, eventRepo, userRepo,
		cfg.Moderation)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	chain := middleware.Chain(
		middleware.RequestID,
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.CORS(cfg.CORS),
		rateLimiter.Limit(cfg.Server.RatePerMinute),
		middleware.Auth(jwtManager),
	)

	router := rest.NewRouter(rest.Handlers{
		Health:     rest.NewHealthHandler(pool, BuildVersion()),
		Moderation: rest.NewModerationHandler(moderationSvc, logger),
		Purge:      rest.NewPurgeHandler(purgeSvc, logger, cfg.Moderation.MaxUploadBytes),
	}, chain)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
	}

	logger.Info("shutdown complete")
	return nil
}
