package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
type Config struct {
	AppEnv      string
	Port        string
	DatabaseURL string
	DBMaxConns  int
	StoragePath string

	// Script stage (OpenAI). An empty key disables the provider and routes
	// the stage through the placeholder generator.
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	// Narration stage (ElevenLabs). Same availability rule as above.
	ElevenLabsAPIKey  string
	ElevenLabsVoice   string
	ElevenLabsModel   string
	ElevenLabsBaseURL string

	ProviderTimeout  time.Duration
	BatchPacing      time.Duration
	RateLimitPerMin  int
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
}

// LoadConfig loads configuration from environment variables and applies
// defaults where needed. Provider API keys are deliberately optional: their
// absence degrades the matching stage to placeholder output instead of
// failing startup.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:            getEnv("APP_ENV", "development"),
		Port:              getEnv("PORT", "8080"),
		DatabaseURL:       os.Getenv("DATABASE_URL"),
		DBMaxConns:        getEnvInt("DB_MAX_CONNS", 8),
		StoragePath:       getEnv("STORAGE_PATH", "./storage"),
		OpenAIAPIKey:      os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:       getEnv("OPENAI_MODEL", "gpt-4"),
		OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", ""),
		ElevenLabsAPIKey:  os.Getenv("ELEVENLABS_API_KEY"),
		ElevenLabsVoice:   getEnv("ELEVENLABS_VOICE", "Josh"),
		ElevenLabsModel:   getEnv("ELEVENLABS_MODEL", "eleven_monolingual_v1"),
		ElevenLabsBaseURL: getEnv("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io"),
		ProviderTimeout:   time.Second * time.Duration(getEnvInt("PROVIDER_TIMEOUT_SECONDS", 60)),
		BatchPacing:       time.Second * time.Duration(getEnvInt("BATCH_PACING_SECONDS", 1)),
		RateLimitPerMin:   getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
		HTTPReadTimeout:   time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout:  time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:   time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
