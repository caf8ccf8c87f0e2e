package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"eduvid/internal/adapter/repo"
	"eduvid/internal/http/handlers"
	"eduvid/internal/http/httpapi"
	"eduvid/internal/infra"
	"eduvid/internal/pipeline"
	"eduvid/internal/providers"
	"eduvid/internal/providers/narration"
	"eduvid/internal/providers/script"
	"eduvid/internal/providers/video"
	"eduvid/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	dbpool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
	}
	defer dbpool.Close()

	fileStore, err := storage.NewFileStore(cfg.StoragePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure storage")
	}

	avail := providers.NewAvailability(cfg, logger)

	var scriptGen script.Generator
	if cfg.OpenAIAPIKey != "" {
		scriptGen, err = script.NewOpenAIGenerator(script.OpenAIOptions{
			APIKey:  cfg.OpenAIAPIKey,
			Model:   cfg.OpenAIModel,
			BaseURL: cfg.OpenAIBaseURL,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure script provider")
		}
	}

	var narrator narration.Synthesizer
	if cfg.ElevenLabsAPIKey != "" {
		narrator, err = narration.NewElevenLabsSynthesizer(narration.ElevenLabsOptions{
			APIKey:  cfg.ElevenLabsAPIKey,
			Voice:   cfg.ElevenLabsVoice,
			Model:   cfg.ElevenLabsModel,
			BaseURL: cfg.ElevenLabsBaseURL,
			Store:   fileStore,
		})
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to configure narration provider")
		}
	}

	artifactRepo := repo.NewArtifactRepository(dbpool)
	creatorRepo := repo.NewCreatorRepository(dbpool)

	generator := pipeline.NewGenerator(pipeline.Options{
		Availability:    avail,
		Script:          scriptGen,
		Narration:       narrator,
		Video:           video.NewPlaceholderComposer(),
		Repo:            artifactRepo,
		Logger:          logger,
		ProviderTimeout: cfg.ProviderTimeout,
		BatchPacing:     cfg.BatchPacing,
	})

	uploader := pipeline.NewUploader(artifactRepo, fileStore, logger)

	app := handlers.NewApp(generator, uploader, artifactRepo, creatorRepo, fileStore, avail, logger)
	router := httpapi.NewRouter(app, cfg, logger)
	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}
