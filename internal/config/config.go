// Package config loads runtime configuration from environment variables.
//
// Every setting has a default so the application can boot with nothing but
// DATABASE_URL set. Optional integrations (Gemini, Telegram, object storage,
// external job feeds) activate only when their variables are present.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime settings for the application.
type Config struct {
	// Port is the TCP port the HTTP server listens on.
	Port int

	// DatabaseURL is the Postgres connection string.
	DatabaseURL string

	// GeminiAPIKey enables AI-backed profile analysis and cover letter
	// generation. When empty the deterministic fallbacks are used instead.
	GeminiAPIKey string

	// GeminiModelTier selects the model family: lite, standard or advanced.
	GeminiModelTier string

	// FeedURL points at an external JSON job feed. When empty the built-in
	// stub source serves synthetic postings.
	FeedURL string

	// ApplyDelay is the pause between consecutive automated applications.
	ApplyDelay time.Duration

	// DelayAfterFailure extends the pause to failed attempts as well.
	DelayAfterFailure bool

	// AutoApplyMinScore is the default minimum match score for auto-apply.
	AutoApplyMinScore float64

	// AutoApplyMaxApplications is the default cap on applications per batch.
	AutoApplyMaxApplications int

	// TelegramBotToken and TelegramChatID enable Telegram notifications.
	TelegramBotToken string
	TelegramChatID   int64

	// S3-compatible object storage for archiving uploaded resumes.
	StorageEndpoint  string
	StorageRegion    string
	StorageBucket    string
	StorageAccessKey string
	StorageSecretKey string
}

// Load builds a Config from environment variables, applying defaults for
// anything unset. Unparseable numeric values fall back to their defaults;
// Validate catches the states that are genuinely unusable.
func Load() *Config {
	return &Config{
		Port:                     getEnvInt("PORT", 8001),
		DatabaseURL:              os.Getenv("DATABASE_URL"),
		GeminiAPIKey:             os.Getenv("GEMINI_API_KEY"),
		GeminiModelTier:          getEnvString("GEMINI_MODEL_TIER", "standard"),
		FeedURL:                  os.Getenv("JOB_FEED_URL"),
		ApplyDelay:               time.Duration(getEnvInt("APPLY_DELAY_SECONDS", 60)) * time.Second,
		DelayAfterFailure:        getEnvBool("APPLY_DELAY_AFTER_FAILURE", false),
		AutoApplyMinScore:        getEnvFloat("AUTO_APPLY_MIN_SCORE", 70),
		AutoApplyMaxApplications: getEnvInt("AUTO_APPLY_MAX_APPLICATIONS", 10),
		TelegramBotToken:         os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:           getEnvInt64("TELEGRAM_CHAT_ID", 0),
		StorageEndpoint:          os.Getenv("STORAGE_ENDPOINT"),
		StorageRegion:            getEnvString("STORAGE_REGION", "auto"),
		StorageBucket:            os.Getenv("STORAGE_BUCKET"),
		StorageAccessKey:         os.Getenv("STORAGE_ACCESS_KEY"),
		StorageSecretKey:         os.Getenv("STORAGE_SECRET_KEY"),
	}
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	switch c.GeminiModelTier {
	case "lite", "standard", "advanced":
	default:
		return fmt.Errorf("GEMINI_MODEL_TIER must be lite, standard or advanced, got %q", c.GeminiModelTier)
	}
	if c.ApplyDelay < 0 {
		return fmt.Errorf("APPLY_DELAY_SECONDS must not be negative")
	}
	if c.AutoApplyMinScore < 0 || c.AutoApplyMinScore > 100 {
		return fmt.Errorf("AUTO_APPLY_MIN_SCORE must be between 0 and 100, got %g", c.AutoApplyMinScore)
	}
	if c.AutoApplyMaxApplications < 1 {
		return fmt.Errorf("AUTO_APPLY_MAX_APPLICATIONS must be at least 1, got %d", c.AutoApplyMaxApplications)
	}
	if c.TelegramBotToken != "" && c.TelegramChatID == 0 {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}
	if c.StorageBucket != "" && (c.StorageAccessKey == "" || c.StorageSecretKey == "") {
		return fmt.Errorf("STORAGE_ACCESS_KEY and STORAGE_SECRET_KEY are required when STORAGE_BUCKET is set")
	}
	return nil
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvInt64 gets an environment variable as an int64 with a default value.
func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat gets an environment variable as a float64 with a default value.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
