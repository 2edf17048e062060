package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"contentplanner/internal/adapter/repo"
	"contentplanner/internal/infra"
	"contentplanner/internal/planrender"
	"contentplanner/internal/render"
	"contentplanner/internal/storage"
)

func main() {
	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv, cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)

	store, err := storage.NewFileStore(cfg.StoragePath, cfg.PublicBaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure storage")
	}
	fonts, err := render.NewFontSet(cfg.FontDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to load fonts")
	}
	composer, err := render.NewComposer(render.Options{
		Fetcher: render.NewFetcher(render.FetcherOptions{
			Timeout:  cfg.FetchTimeout,
			MaxBytes: cfg.MaxFetchBytes,
			Local:    store,
		}),
		Store:     store,
		Fonts:     fonts,
		MaxPixels: cfg.MaxImagePixels,
		Logger:    logger,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure renderer")
	}

	jobs := repo.NewJobRepository(runner)
	svc, err := planrender.NewService(planrender.Options{
		Posts:       repo.NewPostRepository(runner),
		Assets:      repo.NewAssetRepository(runner),
		Jobs:        jobs,
		Renderer:    composer,
		Logger:      logger,
		Concurrency: cfg.RenderConcurrency,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure render service")
	}

	// Jobs left RUNNING by a crashed or interrupted worker go back to the queue.
	if n, err := jobs.RequeueStale(ctx, cfg.WorkerStaleAfter); err != nil {
		logger.Error().Err(err).Msg("worker: requeue stale jobs failed")
	} else if n > 0 {
		logger.Warn().Int64("jobs", n).Msg("worker: requeued stale jobs")
	}

	if err := svc.Run(ctx, cfg.WorkerPollInterval); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("worker: stopped with error")
	}
	logger.Info().Msg("worker: stopped")
}
