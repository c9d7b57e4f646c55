package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string
	// DatabaseURL may be empty. An empty value puts the service in demo
	// mode: all reads are answered from the in-memory question corpus and
	// writes degrade to no-ops.
	DatabaseURL string
	MaxDBConns  int32
	// RedisURL may be empty; without Redis, exam results are persisted
	// inline instead of through the batch worker queue.
	RedisURL  string
	JWTSecret string
	// AnswerKeySecret signs the per-question answer tokens issued to
	// demo-mode sessions. Empty means a random per-process key.
	AnswerKeySecret string
	GeminiAPIKey    string
	GeminiModel     string
	// AllowedOrigins controls HTTP CORS. Empty slice means all origins
	// are permitted (dev default).
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error, .env is optional

	return &Config{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		GinMode:         getEnv("GIN_MODE", "debug"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogFormat:       getEnv("LOG_FORMAT", "pretty"),
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		MaxDBConns:      int32(getEnvInt("MAX_DB_CONNS", 20)),
		RedisURL:        getEnv("REDIS_URL", ""),
		JWTSecret:       getEnv("JWT_SECRET", "change-this-to-a-secure-random-string"),
		AnswerKeySecret: getEnv("ANSWER_KEY_SECRET", ""),
		GeminiAPIKey:    getEnv("GEMINI_API_KEY", ""),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-1.5-flash"),
		AllowedOrigins:  parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

// parseOrigins splits a comma-separated origins string into a trimmed slice.
// Returns nil (allow-all) if the input is empty.
func parseOrigins(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}
