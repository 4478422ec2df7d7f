package config

import (
	"os"
	"strconv"
)

// Config hrss-server (HTTP API) configuration
type Config struct {
	HTTP struct {
		Addr string
	}
	Store struct {
		Backend string // "memory" or "redis"
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
	}
	SMTP struct {
		Enabled bool
		Addr    string // host:port of the relay
	}
	Seed struct {
		Dir string // directory with initial CSV rows, empty disables seeding
	}
	Log struct {
		Level  string
		Format string
	}
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":5000")

	cfg.Store.Backend = getEnv("STORE_BACKEND", "memory")
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	// Default to false for local dev: with no relay configured the server
	// still reports the email in the response body, it just skips the send.
	cfg.SMTP.Enabled = getEnv("SMTP_ENABLED", "false") == "true"
	cfg.SMTP.Addr = getEnv("SMTP_ADDR", "localhost:25")

	cfg.Seed.Dir = getEnv("SEED_DIR", "")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
