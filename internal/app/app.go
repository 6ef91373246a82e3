package app

import (
	"context"
	"fmt"
	"log/slog"

	httpapp "dcolors/internal/app/http"
	"dcolors/internal/config"
	"dcolors/internal/lib/logger/sl"
	"dcolors/internal/metrics"
	"dcolors/internal/repository"
	"dcolors/internal/services/auth"
	"dcolors/internal/services/imaging"
	services "dcolors/internal/services/painting_service"
	redisapp "dcolors/internal/storage/redis"
	httprouters "dcolors/internal/transport/http"
)

type App struct {
	log        *slog.Logger
	HTTPServer *httpapp.Server
	Paintings  *services.PaintingService
	Optimizer  *imaging.Optimizer
	repo       *repository.Repository
	redis      *redisapp.Client
}

// New собирает хранилища, сервисы и HTTP-сервер по конфигу
func New(ctx context.Context, log *slog.Logger, cfg *config.Config) (*App, error) {
	const op = "app.New"

	repo, err := repository.NewRepository(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	redisClient := redisapp.NewClient(cfg.Redis.RedisAddr, cfg.Redis.RedisPassword, cfg.Redis.RedisDB)
	if err := redisClient.HealthCheck(ctx); err != nil {
		log.Warn("redis unavailable, admin sessions will fail until it is up", sl.Err(err))
	}

	sessionRepo := repository.NewRedisSessionRepo(redisClient)
	vocabRepo := repository.NewRedisVocabularyRepo(redisClient)

	authService := auth.New(log, sessionRepo, cfg.Auth)

	paintingService := services.NewPaintingService(log, repo.Paintings, vocabRepo, services.Options{
		Timeout:    cfg.Storage.Timeout,
		CacheTTL:   cfg.Catalog.CacheTTL,
		SessionTTL: cfg.Auth.SessionTTL,
		Locale:     cfg.Catalog.Locale,
	})

	optimizer := imaging.NewOptimizer(log, ImagingOptions(cfg.Imaging), imaging.WithRecorder(metrics.Imaging{}))

	routers := httprouters.NewRouter(log, paintingService, authService, optimizer)

	server := httpapp.New(log, cfg.HTTP, cfg.Auth, routers, authService)
	server.BuildRouters()

	return &App{
		log:        log,
		HTTPServer: server,
		Paintings:  paintingService,
		Optimizer:  optimizer,
		repo:       repo,
		redis:      redisClient,
	}, nil
}

func ImagingOptions(cfg config.ImagingConfig) imaging.Options {
	return imaging.Options{
		TargetSizeKB: cfg.TargetSizeKB,
		MaxAttempts:  cfg.MaxAttempts,
		MaxCount:     cfg.MaxImages,
		StartQuality: cfg.StartQuality,
		QualityStep:  cfg.QualityStep,
		MinQuality:   cfg.MinQuality,
	}
}

func (a *App) Stop() {
	const op = "app.Stop"

	if a.HTTPServer != nil {
		if err := a.HTTPServer.Stop(); err != nil {
			a.log.Error("failed to stop http server", slog.String("op", op), sl.Err(err))
		}
	}
	if err := a.redis.Close(); err != nil {
		a.log.Error("failed to close redis", slog.String("op", op), sl.Err(err))
	}
	a.repo.Close()
}
