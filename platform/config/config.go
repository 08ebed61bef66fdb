// Package config provides application configuration loading.
// This is part of the platform layer and contains no business logic.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// =============================================================================
// Module-Specific Config Interfaces (Principle of Least Privilege)
// =============================================================================

// HTTPConfig provides settings for the HTTP server.
type HTTPConfig interface {
	GetHTTPAddr() string
	GetCORSAllowAll() bool
	GetCORSOrigins() []string
	GetCORSAllowCreds() bool
	GetRateLimitRPS() float64
	GetRateLimitBurst() int
}

// DatabaseConfig provides database connection settings.
type DatabaseConfig interface {
	GetDatabaseURL() string
	IsDatabaseEnabled() bool
}

// RedisConfig provides settings for the Redis-backed stores.
type RedisConfig interface {
	GetRedisURL() string
	IsRedisEnabled() bool
}

// SchedulerConfig provides settings for the asynq background scheduler.
type SchedulerConfig interface {
	RedisConfig
	GetAsynqQueueName() string
	GetSearchLogRetention() time.Duration
}

// GeminiConfig provides settings for the lead retrieval client.
type GeminiConfig interface {
	GetGeminiAPIKey() string
	GetGeminiModel() string
	GetGeminiFallbackModel() string
	GetGeminiThinkingBudget() int32
	GetSearchTargetCount() int
}

// GotenbergConfig provides settings for the Gotenberg HTML-to-PDF service.
type GotenbergConfig interface {
	GetGotenbergURL() string
	GetGotenbergUsername() string
	GetGotenbergPassword() string
	IsGotenbergEnabled() bool
}

// =============================================================================
// Main Config Struct
// =============================================================================

// Config holds all application configuration values.
type Config struct {
	Env                  string
	HTTPAddr             string
	CORSAllowAll         bool
	CORSOrigins          []string
	CORSAllowCreds       bool
	RateLimitRPS         float64
	RateLimitBurst       int
	DatabaseURL          string
	RedisURL             string
	AsynqQueueName       string
	SearchLogRetention   time.Duration
	GeminiAPIKey         string
	GeminiModel          string
	GeminiFallbackModel  string
	GeminiThinkingBudget int32
	SearchTargetCount    int
	GotenbergURL         string
	GotenbergUsername    string
	GotenbergPassword    string
}

// =============================================================================
// Interface Implementations
// =============================================================================

// HTTPConfig implementation
func (c *Config) GetHTTPAddr() string      { return c.HTTPAddr }
func (c *Config) GetCORSAllowAll() bool    { return c.CORSAllowAll }
func (c *Config) GetCORSOrigins() []string { return c.CORSOrigins }
func (c *Config) GetCORSAllowCreds() bool  { return c.CORSAllowCreds }
func (c *Config) GetRateLimitRPS() float64 { return c.RateLimitRPS }
func (c *Config) GetRateLimitBurst() int   { return c.RateLimitBurst }

// DatabaseConfig implementation
func (c *Config) GetDatabaseURL() string  { return c.DatabaseURL }
func (c *Config) IsDatabaseEnabled() bool { return c.DatabaseURL != "" }

// RedisConfig implementation
func (c *Config) GetRedisURL() string  { return c.RedisURL }
func (c *Config) IsRedisEnabled() bool { return c.RedisURL != "" }

// SchedulerConfig implementation
func (c *Config) GetAsynqQueueName() string            { return c.AsynqQueueName }
func (c *Config) GetSearchLogRetention() time.Duration { return c.SearchLogRetention }

// GeminiConfig implementation
func (c *Config) GetGeminiAPIKey() string        { return c.GeminiAPIKey }
func (c *Config) GetGeminiModel() string         { return c.GeminiModel }
func (c *Config) GetGeminiFallbackModel() string { return c.GeminiFallbackModel }
func (c *Config) GetGeminiThinkingBudget() int32 { return c.GeminiThinkingBudget }
func (c *Config) GetSearchTargetCount() int      { return c.SearchTargetCount }

// GotenbergConfig implementation
func (c *Config) GetGotenbergURL() string      { return c.GotenbergURL }
func (c *Config) GetGotenbergUsername() string { return c.GotenbergUsername }
func (c *Config) GetGotenbergPassword() string { return c.GotenbergPassword }
func (c *Config) IsGotenbergEnabled() bool     { return c.GotenbergURL != "" }

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	corsOrigins := splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173"))
	corsAllowAll := strings.EqualFold(getEnv("CORS_ALLOW_ALL", "false"), "true")
	if containsWildcard(corsOrigins) {
		corsAllowAll = true
	}

	cfg := &Config{
		Env:                  getEnv("APP_ENV", "development"),
		HTTPAddr:             getEnv("HTTP_ADDR", ":8080"),
		CORSAllowAll:         corsAllowAll,
		CORSOrigins:          corsOrigins,
		CORSAllowCreds:       strings.EqualFold(getEnv("CORS_ALLOW_CREDENTIALS", "true"), "true"),
		RateLimitRPS:         mustFloat(getEnv("RATE_LIMIT_RPS", "5")),
		RateLimitBurst:       mustInt(getEnv("RATE_LIMIT_BURST", "10")),
		DatabaseURL:          getEnv("DATABASE_URL", ""),
		RedisURL:             getEnv("REDIS_URL", ""),
		AsynqQueueName:       getEnv("ASYNQ_QUEUE", "default"),
		SearchLogRetention:   mustDuration(getEnv("SEARCH_LOG_RETENTION", "2160h")),
		GeminiAPIKey:         getEnv("GEMINI_API_KEY", ""),
		GeminiModel:          getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiFallbackModel:  getEnv("GEMINI_FALLBACK_MODEL", "gemini-2.5-flash-lite"),
		GeminiThinkingBudget: int32(mustInt(getEnv("GEMINI_THINKING_BUDGET", "2048"))),
		SearchTargetCount:    mustInt(getEnv("SEARCH_TARGET_COUNT", "100")),
		GotenbergURL:         getEnv("GOTENBERG_URL", ""),
		GotenbergUsername:    getEnv("GOTENBERG_USERNAME", ""),
		GotenbergPassword:    getEnv("GOTENBERG_PASSWORD", ""),
	}

	if cfg.SearchTargetCount < 1 || cfg.SearchTargetCount > 100 {
		return nil, fmt.Errorf("SEARCH_TARGET_COUNT must be between 1 and 100")
	}
	if cfg.CORSAllowAll && cfg.CORSAllowCreds {
		return nil, fmt.Errorf("CORS_ALLOW_CREDENTIALS cannot be true when CORS_ALLOW_ALL is true")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return fallback
}

func mustDuration(value string) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0
	}
	return d
}

func mustInt(value string) int {
	result, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return result
}

func mustFloat(value string) float64 {
	result, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return result
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	results := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			results = append(results, trimmed)
		}
	}
	return results
}

func containsWildcard(values []string) bool {
	for _, value := range values {
		if value == "*" {
			return true
		}
	}
	return false
}
