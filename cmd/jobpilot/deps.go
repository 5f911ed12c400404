package main

import (
	"context"
	"log"

	"github.com/mariana/jobpilot/internal/config"
	"github.com/mariana/jobpilot/internal/docstore"
	"github.com/mariana/jobpilot/internal/jobsource"
	"github.com/mariana/jobpilot/internal/llm"
	"github.com/mariana/jobpilot/internal/notify"
)

// buildLLMClient returns a Gemini client when an API key is configured. A nil
// client is valid: profile analysis and letter generation fall back to their
// deterministic paths.
func buildLLMClient(ctx context.Context, cfg *config.Config) (llm.Client, error) {
	if cfg.GeminiAPIKey == "" {
		log.Println("GEMINI_API_KEY not set; using deterministic fallbacks")
		return nil, nil
	}
	client, err := llm.NewGeminiClient(ctx, llm.DefaultConfig(), cfg.GeminiAPIKey)
	if err != nil {
		return nil, err
	}
	return client, nil
}

// buildSource returns the configured job source: an external feed when
// JOB_FEED_URL is set, the built-in stub otherwise.
func buildSource(cfg *config.Config) jobsource.Source {
	if cfg.FeedURL != "" {
		return jobsource.NewFeedSource(cfg.FeedURL)
	}
	return jobsource.NewStubSource()
}

// buildNotifier returns a Telegram notifier when configured, nil otherwise.
// A nil notifier is a no-op.
func buildNotifier(cfg *config.Config) *notify.Notifier {
	if cfg.TelegramBotToken == "" {
		return nil
	}
	notifier, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
	if err != nil {
		log.Printf("Warning: telegram notifications disabled: %v", err)
		return nil
	}
	return notifier
}

// buildArchive returns the resume archive when object storage is configured,
// nil otherwise. A nil archive is a no-op.
func buildArchive(ctx context.Context, cfg *config.Config) *docstore.Archive {
	if cfg.StorageBucket == "" {
		return nil
	}
	archive, err := docstore.New(ctx, docstore.Config{
		Endpoint:  cfg.StorageEndpoint,
		Region:    cfg.StorageRegion,
		Bucket:    cfg.StorageBucket,
		AccessKey: cfg.StorageAccessKey,
		SecretKey: cfg.StorageSecretKey,
	})
	if err != nil {
		log.Printf("Warning: resume archive disabled: %v", err)
		return nil
	}
	return archive
}
