package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// Redis (optional). When set, the rate limiter uses Redis as its
	// backing store so limits hold across replicas.
	RedisURL string

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Perplexity search collaborator
	PerplexityAPIKey  string
	PerplexityBaseURL string
	PerplexityModel   string
	SearchRPM         int // client-side requests-per-minute budget

	// Analysis pipeline
	MaxPromptLength    int
	MaxSources         int
	ExtractWorkers     int
	SourceFetchTimeout time.Duration
	PersistTimeout     time.Duration

	// SMTP (optional - email disabled when host is empty)
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
	SMTPFromName string
	SMTPTLSMode  string // "tls", "starttls", or "none"

	// Notifications
	AlertRecipients     string // Comma-separated recipient addresses
	AlertOnNegativeTone bool
	DigestEnabled       bool
	DigestInterval      time.Duration

	// Site Branding
	SiteTitle string // env: SITE_TITLE, default: "BrandPulse"
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:         getEnv("ENV", "development"),
		ServerAddr:  getEnv("SERVER_ADDR", ":3000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL: getEnv("DATABASE_URL", "postgres://localhost:5432/brandpulse?sslmode=disable"),
		RedisURL:    getEnv("REDIS_URL", ""),
		CORSOrigins: getEnv("CORS_ORIGINS", ""),

		PerplexityAPIKey:  getEnv("PERPLEXITY_API_KEY", ""),
		PerplexityBaseURL: getEnv("PERPLEXITY_BASE_URL", "https://api.perplexity.ai"),
		PerplexityModel:   getEnv("PERPLEXITY_MODEL", "sonar"),
		SearchRPM:         getEnvInt("SEARCH_RPM", 30),

		MaxPromptLength:    getEnvInt("MAX_PROMPT_LENGTH", 500),
		MaxSources:         getEnvInt("MAX_SOURCES", 25),
		ExtractWorkers:     getEnvInt("EXTRACT_WORKERS", 4),
		SourceFetchTimeout: getEnvDuration("SOURCE_FETCH_TIMEOUT", 30*time.Second),
		PersistTimeout:     getEnvDuration("PERSIST_TIMEOUT", 5*time.Second),

		SMTPHost:     getEnv("SMTP_HOST", ""),
		SMTPPort:     getEnvInt("SMTP_PORT", 587),
		SMTPUsername: getEnv("SMTP_USERNAME", ""),
		SMTPPassword: getEnv("SMTP_PASSWORD", ""),
		SMTPFrom:     getEnv("SMTP_FROM", ""),
		SMTPFromName: getEnv("SMTP_FROM_NAME", "BrandPulse"),
		SMTPTLSMode:  getEnv("SMTP_TLS_MODE", "starttls"),

		AlertRecipients:     getEnv("ALERT_RECIPIENTS", ""),
		AlertOnNegativeTone: getEnv("ALERT_ON_NEGATIVE_TONE", "") != "",
		DigestEnabled:       getEnv("DIGEST_ENABLED", "") != "",
		DigestInterval:      getEnvDuration("DIGEST_INTERVAL", 24*time.Hour),

		SiteTitle: getEnv("SITE_TITLE", "BrandPulse"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}

// IsEmailEnabled returns true if SMTP is configured.
func (c *Config) IsEmailEnabled() bool {
	return c.SMTPHost != "" && c.SMTPFrom != ""
}

// SearchEnabled returns true if the Perplexity collaborator is configured.
func (c *Config) SearchEnabled() bool {
	return c.PerplexityAPIKey != ""
}
