package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all environment-driven settings for the service.
// Call godotenv.Load before Load so a local .env is picked up.
type Config struct {
	// HTTP
	Port string

	// Postgres
	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresName     string

	// Redis transcript cache; empty RedisAddr disables caching
	RedisAddr          string
	RedisPassword      string
	RedisDB            int
	TranscriptCacheTTL time.Duration

	// Transcript extraction API
	TranscriptAPIURL string
	TranscriptAPIKey string

	// Cohere generation
	CohereAPIKey string
	CohereModel  string

	// YouTube Data API; empty disables title lookup
	YouTubeAPIKey string

	// Logging mode: "dev" or "prod"
	LogMode string
}

// Load reads configuration from the environment with sensible defaults.
func Load() Config {
	return Config{
		Port: getEnvOrDefault("PORT", "8080"),

		PostgresHost:     getEnvOrDefault("POSTGRES_HOST", "localhost"),
		PostgresPort:     getEnvOrDefault("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnvOrDefault("POSTGRES_USER", "postgres"),
		PostgresPassword: os.Getenv("POSTGRES_PASSWORD"),
		PostgresName:     getEnvOrDefault("POSTGRES_NAME", "lessonbot"),

		RedisAddr:          os.Getenv("REDIS_ADDR"),
		RedisPassword:      os.Getenv("REDIS_PASS"),
		RedisDB:            getEnvIntOrDefault("REDIS_DB", 0),
		TranscriptCacheTTL: getEnvDurationOrDefault("TRANSCRIPT_CACHE_TTL_SECONDS", 24*time.Hour),

		TranscriptAPIURL: getEnvOrDefault("TRANSCRIPT_API_URL", "https://api.transcript.dev"),
		TranscriptAPIKey: os.Getenv("TRANSCRIPT_API_KEY"),

		CohereAPIKey: os.Getenv("COHERE_API_KEY"),
		CohereModel:  getEnvOrDefault("COHERE_MODEL", "command-r-08-2024"),

		YouTubeAPIKey: os.Getenv("YOUTUBE_API_KEY"),

		LogMode: getEnvOrDefault("LOG_MODE", "dev"),
	}
}

// getEnvOrDefault returns the value of an environment variable or a default value
func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvIntOrDefault(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

// getEnvDurationOrDefault reads a whole number of seconds from the environment.
func getEnvDurationOrDefault(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if secs, err := strconv.Atoi(val); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultVal
}
