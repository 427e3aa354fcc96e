package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/corkboard/corkboard/internal/app"
	"github.com/corkboard/corkboard/internal/auth"
	"github.com/corkboard/corkboard/internal/board"
	"github.com/corkboard/corkboard/internal/comment"
	"github.com/corkboard/corkboard/internal/observability"
	"github.com/corkboard/corkboard/internal/platform/cache"
	"github.com/corkboard/corkboard/internal/platform/db"
	"github.com/corkboard/corkboard/internal/token"
	"github.com/corkboard/corkboard/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Warn("redis unavailable", slog.Any("error", err))
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	revoked := auth.NewRevocationList(redisClient)

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo, codec, revoked, cfg.AdminSignupToken, cfg.TokenTTL)
	authHandler := auth.NewHandler(logger, authService)
	authMiddleware := auth.Middleware{Codec: codec, Users: authRepo, Revoked: revoked, Logger: logger}

	notifier := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := notifier.Close(); err != nil {
			logger.Warn("asynq client close", slog.Any("error", err))
		}
	}()

	boardRepo := board.NewRepository(pool)
	boardCache := board.NewListCache(redisClient, cfg.BoardCacheTTL)
	boardService := board.NewService(boardRepo, boardCache, logger)

	commentRepo := comment.NewRepository(pool)
	commentService := comment.NewService(commentRepo, notifier, logger)

	boardHandler := board.NewHandler(logger, boardService, commentService)
	commentHandler := comment.NewHandler(logger, commentService)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		Auth:           authMiddleware,
		AuthHandler:    authHandler,
		BoardHandler:   boardHandler,
		CommentHandler: commentHandler,
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
