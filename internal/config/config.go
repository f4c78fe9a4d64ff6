package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything the app reads from the environment.
type Config struct {
	Addr        string
	Env         string
	DatabaseURL string
	RedisURL    string
	JWTSecret   string

	// RecommendCacheTTL bounds how long a memoized recommendation list stays fresh.
	RecommendCacheTTL time.Duration
	// SearchMaxConcurrent caps in-flight search queries; the search result set is unbounded.
	SearchMaxConcurrent int64
}

func Load() Config {
	return Config{
		Addr:                getenv("APP_ADDR", ":8080"),
		Env:                 getenv("APP_ENV", "development"),
		DatabaseURL:         os.Getenv("DATABASE_URL"),
		RedisURL:            os.Getenv("REDIS_URL"),
		JWTSecret:           os.Getenv("JWT_SECRET"),
		RecommendCacheTTL:   time.Duration(getenvInt("RECOMMEND_CACHE_TTL", 3600)) * time.Second,
		SearchMaxConcurrent: int64(getenvInt("SEARCH_MAX_CONCURRENT", 32)),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
