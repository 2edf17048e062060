package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"contentplanner/internal/adapter/repo"
	"contentplanner/internal/http/handlers"
	httpapi "contentplanner/internal/http/httpapi"
	"contentplanner/internal/infra"
	"contentplanner/internal/infra/geoip"
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

	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()
	runner := infra.NewSQLRunner(dbpool, logger)

	store, err := storage.NewFileStore(cfg.StoragePath, cfg.PublicBaseURL)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure storage")
	}
	fonts, err := render.NewFontSet(cfg.FontDir)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load fonts")
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
		logger.Fatal().Err(err).Msg("failed to configure renderer")
	}

	svc, err := planrender.NewService(planrender.Options{
		Posts:       repo.NewPostRepository(runner),
		Assets:      repo.NewAssetRepository(runner),
		Jobs:        repo.NewJobRepository(runner),
		Renderer:    composer,
		Logger:      logger,
		Concurrency: cfg.RenderConcurrency,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure render service")
	}

	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip disabled")
	}
	defer resolver.Close()

	app := &handlers.App{
		Plans:     svc,
		Renderer:  composer,
		Artifacts: store,
		Logger:    logger,
		Ping:      dbpool.Ping,
	}
	router := httpapi.NewRouter(app, httpapi.RouterOptions{
		Logger:          logger,
		AllowedOrigins:  cfg.CORSAllowedOrigins,
		RateLimitPerMin: cfg.RateLimitPerMin,
		DefaultLocale:   cfg.DefaultLocale,
		CountryLookup:   resolver.Lookup(),
		StoragePath:     store.BasePath(),
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Str("addr", server.Addr()).Msg("API listening")
		if err := server.Start(); err != nil {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
