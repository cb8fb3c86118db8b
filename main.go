package main

import (
	"context"
	"log"

	"github.com/joho/godotenv"

	"lessonbot/api"
	"lessonbot/cache"
	"lessonbot/config"
	"lessonbot/generation"
	"lessonbot/logger"
	"lessonbot/state"
	"lessonbot/storage"
	"lessonbot/transcript"
	"lessonbot/workflow"
	"lessonbot/youtube"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logg, err := logger.New(cfg.LogMode)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logg.Sync()

	db, err := storage.Open(&cfg)
	if err != nil {
		logg.Fatal("database setup failed", "error", err)
	}
	lessons := storage.NewLessonStore(db)
	progress := storage.NewProgressStore(db)

	provider := transcript.NewAPI(cfg.TranscriptAPIURL, cfg.TranscriptAPIKey)
	extractor := transcript.NewClient(provider, transcript.PageTextFallback, transcript.Options{}, logg)

	generator := generation.NewClient(
		generation.NewCohereGenerator(cfg.CohereAPIKey, cfg.CohereModel),
		generation.Options{},
		logg,
	)

	runner := workflow.NewRunner(lessons, extractor, generator, logg)

	ctx := context.Background()
	if cfg.YouTubeAPIKey != "" {
		titles, err := youtube.NewDataAPI(ctx, cfg.YouTubeAPIKey)
		if err != nil {
			logg.Warn("youtube title lookup disabled", "error", err)
		} else {
			runner.WithTitleFetcher(titles)
		}
	}
	if cfg.RedisAddr != "" {
		transcripts, err := cache.NewTranscriptCache(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.TranscriptCacheTTL, logg)
		if err != nil {
			logg.Warn("transcript cache disabled", "error", err)
		} else {
			defer transcripts.Close()
			runner.WithTranscriptCache(transcripts)
		}
	}

	server := api.NewServer(runner, state.NewManager(), lessons, progress, logg)
	router := api.NewRouter(server)

	logg.Info("lesson API listening", "port", cfg.Port)
	if err := router.Run(":" + cfg.Port); err != nil {
		logg.Fatal("server stopped", "error", err)
	}
}
