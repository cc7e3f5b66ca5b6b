// Package config reads process configuration from the environment.
package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	ServerPort    string
	PostgresDSN   string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	BaseCurrency   string
	MarketDataURL  string
	NewsFeedURL    string
	RequestTimeout time.Duration
}

// Load builds a Config from environment variables, applying defaults for
// anything unset. An empty POSTGRES_DSN or REDIS_ADDR selects the in-memory
// fallback for that component.
func Load() Config {
	return Config{
		ServerPort:     getEnv("SERVER_PORT", "8080"),
		PostgresDSN:    getEnv("POSTGRES_DSN", ""),
		RedisAddr:      getEnv("REDIS_ADDR", ""),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		BaseCurrency:   getEnv("BASE_CURRENCY", "usd"),
		MarketDataURL:  getEnv("MARKET_DATA_URL", ""),
		NewsFeedURL:    getEnv("NEWS_FEED_URL", ""),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 8*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
