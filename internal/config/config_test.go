package config

import (
	"os"
	"testing"
)

func TestLoad_DefaultValues(t *testing.T) {
	os.Clearenv()

	cfg := Load()

	if cfg.HTTP.Addr != ":5000" {
		t.Errorf("Expected HTTP_ADDR default ':5000', got '%s'", cfg.HTTP.Addr)
	}

	if cfg.Store.Backend != "memory" {
		t.Errorf("Expected STORE_BACKEND default 'memory', got '%s'", cfg.Store.Backend)
	}

	if cfg.Redis.Addr != "localhost:6379" {
		t.Errorf("Expected REDIS_ADDR default 'localhost:6379', got '%s'", cfg.Redis.Addr)
	}

	if cfg.Redis.DB != 0 {
		t.Errorf("Expected REDIS_DB default 0, got %d", cfg.Redis.DB)
	}

	if cfg.SMTP.Enabled {
		t.Error("Expected SMTP_ENABLED default false")
	}

	if cfg.SMTP.Addr != "localhost:25" {
		t.Errorf("Expected SMTP_ADDR default 'localhost:25', got '%s'", cfg.SMTP.Addr)
	}

	if cfg.Seed.Dir != "" {
		t.Errorf("Expected SEED_DIR default '', got '%s'", cfg.Seed.Dir)
	}

	if cfg.Log.Level != "info" {
		t.Errorf("Expected LOG_LEVEL default 'info', got '%s'", cfg.Log.Level)
	}
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	os.Setenv("HTTP_ADDR", ":8080")
	os.Setenv("STORE_BACKEND", "redis")
	os.Setenv("REDIS_ADDR", "redis-host:6380")
	os.Setenv("REDIS_DB", "3")
	os.Setenv("SMTP_ENABLED", "true")
	os.Setenv("SEED_DIR", "/data/seed")
	os.Setenv("LOG_LEVEL", "debug")

	defer func() {
		os.Unsetenv("HTTP_ADDR")
		os.Unsetenv("STORE_BACKEND")
		os.Unsetenv("REDIS_ADDR")
		os.Unsetenv("REDIS_DB")
		os.Unsetenv("SMTP_ENABLED")
		os.Unsetenv("SEED_DIR")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg := Load()

	if cfg.HTTP.Addr != ":8080" {
		t.Errorf("Expected HTTP_ADDR ':8080', got '%s'", cfg.HTTP.Addr)
	}

	if cfg.Store.Backend != "redis" {
		t.Errorf("Expected STORE_BACKEND 'redis', got '%s'", cfg.Store.Backend)
	}

	if cfg.Redis.Addr != "redis-host:6380" {
		t.Errorf("Expected REDIS_ADDR 'redis-host:6380', got '%s'", cfg.Redis.Addr)
	}

	if cfg.Redis.DB != 3 {
		t.Errorf("Expected REDIS_DB 3, got %d", cfg.Redis.DB)
	}

	if !cfg.SMTP.Enabled {
		t.Error("Expected SMTP_ENABLED true")
	}

	if cfg.Seed.Dir != "/data/seed" {
		t.Errorf("Expected SEED_DIR '/data/seed', got '%s'", cfg.Seed.Dir)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("Expected LOG_LEVEL 'debug', got '%s'", cfg.Log.Level)
	}
}

func TestGetEnv(t *testing.T) {
	os.Setenv("TEST_VAR", "test-value")
	defer os.Unsetenv("TEST_VAR")

	value := getEnv("TEST_VAR", "default")
	if value != "test-value" {
		t.Errorf("Expected 'test-value', got '%s'", value)
	}

	value = getEnv("NON_EXISTENT_VAR", "default-value")
	if value != "default-value" {
		t.Errorf("Expected 'default-value', got '%s'", value)
	}
}

func TestParseInt(t *testing.T) {
	if got := parseInt("12", 0); got != 12 {
		t.Errorf("Expected 12, got %d", got)
	}

	if got := parseInt("not-a-number", 7); got != 7 {
		t.Errorf("Expected fallback 7, got %d", got)
	}
}
