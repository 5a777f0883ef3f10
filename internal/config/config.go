package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	ServerPort string
	GinMode    string
	LogLevel   string
	LogFormat  string
	// StoreURL is the base URL of the document store. Records live under
	// {collection}/{userId}/{subjectId}/{id} below it.
	StoreURL     string
	StoreAuth    string
	StoreTimeout time.Duration
	// AuthProjectID is the identity provider project whose ID tokens this
	// API accepts (checked as the JWT audience).
	AuthProjectID string
	AuthCertsURL  string
	// RedisURL enables the verified-token cache when non-empty.
	RedisURL      string
	TokenCacheTTL time.Duration
	// AllowedOrigins controls HTTP CORS.
	// Empty slice means all origins are permitted (dev default).
	AllowedOrigins []string
}

const defaultCertsURL = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"

// Load reads configuration from environment variables with sensible defaults.
// It loads .env file if present but does not fail if missing.
func Load() *Config {
	_ = godotenv.Load() // Ignore error — .env is optional

	return &Config{
		ServerPort:     getEnv("SERVER_PORT", "5000"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "pretty"),
		StoreURL:       getEnv("STORE_URL", "http://localhost:9000"),
		StoreAuth:      getEnv("STORE_AUTH", ""),
		StoreTimeout:   time.Duration(getEnvInt("STORE_TIMEOUT_SECONDS", 10)) * time.Second,
		AuthProjectID:  getEnv("AUTH_PROJECT_ID", "studician-dev"),
		AuthCertsURL:   getEnv("AUTH_CERTS_URL", defaultCertsURL),
		RedisURL:       getEnv("REDIS_URL", ""),
		TokenCacheTTL:  time.Duration(getEnvInt("TOKEN_CACHE_TTL_SECONDS", 300)) * time.Second,
		AllowedOrigins: parseOrigins(getEnv("ALLOWED_ORIGINS", "")),
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
