// Package server initializes and runs the blog service: it opens the
// store backends, wires the service layer, seeds demo accounts, and
// serves the HTTP API until shutdown.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rustblog/rustblog/internal/logging"
	"github.com/rustblog/rustblog/internal/server/config"
	"github.com/rustblog/rustblog/internal/server/db"
	"github.com/rustblog/rustblog/internal/server/httpapi"
	"github.com/rustblog/rustblog/internal/server/repositories/comments"
	"github.com/rustblog/rustblog/internal/server/repositories/posts"
	"github.com/rustblog/rustblog/internal/server/repositories/tokens"
	"github.com/rustblog/rustblog/internal/server/repositories/users"
	"github.com/rustblog/rustblog/internal/server/seed"
	"github.com/rustblog/rustblog/internal/server/services"
	"github.com/rustblog/rustblog/internal/server/storage"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	api    *httpapi.API
}

func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {

	logger := logging.NewSlogLogger(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	pool, err := db.NewPostgres(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis init error: %w", err)
	}

	store, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("store init error: %w", err)
	}

	userRepo := users.NewPostgresRepository(pool)
	postRepo := posts.NewPostgresRepository(pool)
	commentRepo := comments.NewPostgresRepository(pool)
	registry := tokens.NewRedisRegistry(redisClient)

	tokenService := services.NewTokenService(registry, cfg)
	authService := services.NewAuthService(userRepo, tokenService, logger)
	postService := services.NewPostService(postRepo, store, logger)
	commentService := services.NewCommentService(commentRepo)

	if err := seed.InitDemo(ctx, pool); err != nil {
		return nil, fmt.Errorf("seed error: %w", err)
	}

	api := httpapi.NewAPI(logger, authService, postService, commentService, store)

	return &App{config: cfg, logger: logger, api: api}, nil
}

// Run serves HTTP until the context is cancelled or a termination signal
// arrives, then shuts the server down gracefully.
func (app *App) Run(ctx context.Context) error {

	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer cancel()

	srv := &http.Server{
		Addr:    app.config.Addr,
		Handler: app.api.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "starting server", "addr", app.config.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "shutting down")

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()

	return srv.Shutdown(shutdownCtx)
}
