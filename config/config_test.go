package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Clean up environment before tests
	cleanupEnv := func() {
		os.Unsetenv("PUNTOVENTA_SERVER_PORT")
		os.Unsetenv("PUNTOVENTA_SERVER_ENVIRONMENT")
		os.Unsetenv("PUNTOVENTA_MODEL_BASE_URL")
		os.Unsetenv("PUNTOVENTA_MODEL_TEMPERATURE")
		os.Unsetenv("PUNTOVENTA_MODEL_TIMEOUT")
		os.Unsetenv("PUNTOVENTA_DATABASE_DSN")
		os.Unsetenv("PUNTOVENTA_RATELIMIT_PER_IP")
	}

	t.Run("loads with defaults when no env vars set", func(t *testing.T) {
		cleanupEnv()
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		// Check defaults
		if cfg.Server.Port != "3000" {
			t.Errorf("Server.Port = %s, want 3000", cfg.Server.Port)
		}
		if cfg.Server.Environment != "development" {
			t.Errorf("Server.Environment = %s, want development", cfg.Server.Environment)
		}
		if cfg.Model.BaseURL != "http://localhost:8081/v1" {
			t.Errorf("Model.BaseURL = %s, want http://localhost:8081/v1", cfg.Model.BaseURL)
		}
		if cfg.Model.Temperature != 0.05 {
			t.Errorf("Model.Temperature = %v, want 0.05", cfg.Model.Temperature)
		}
		if cfg.Model.TopK != 40 {
			t.Errorf("Model.TopK = %d, want 40", cfg.Model.TopK)
		}
		if cfg.Model.Timeout != 90*time.Second {
			t.Errorf("Model.Timeout = %v, want 90s", cfg.Model.Timeout)
		}
		if len(cfg.Model.StopSequences) != 2 {
			t.Errorf("Model.StopSequences = %v, want 2 entries", cfg.Model.StopSequences)
		}
		if cfg.RateLimit.PerIP != 25 {
			t.Errorf("RateLimit.PerIP = %d, want 25", cfg.RateLimit.PerIP)
		}
	})

	t.Run("loads custom values from environment variables", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("PUNTOVENTA_SERVER_PORT", "9090")
		os.Setenv("PUNTOVENTA_SERVER_ENVIRONMENT", "production")
		os.Setenv("PUNTOVENTA_MODEL_BASE_URL", "http://model.internal:8081/v1")
		os.Setenv("PUNTOVENTA_MODEL_TEMPERATURE", "0.2")
		os.Setenv("PUNTOVENTA_MODEL_TIMEOUT", "30s")
		os.Setenv("PUNTOVENTA_DATABASE_DSN", "user:pass@tcp(db:3306)/shop?parseTime=true")
		os.Setenv("PUNTOVENTA_RATELIMIT_PER_IP", "5")
		defer cleanupEnv()

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load() error = %v, want nil", err)
		}

		if cfg.Server.Port != "9090" {
			t.Errorf("Server.Port = %s, want 9090", cfg.Server.Port)
		}
		if cfg.Server.Environment != "production" {
			t.Errorf("Server.Environment = %s, want production", cfg.Server.Environment)
		}
		if cfg.Model.BaseURL != "http://model.internal:8081/v1" {
			t.Errorf("Model.BaseURL = %s, want http://model.internal:8081/v1", cfg.Model.BaseURL)
		}
		if cfg.Model.Temperature != 0.2 {
			t.Errorf("Model.Temperature = %v, want 0.2", cfg.Model.Temperature)
		}
		if cfg.Model.Timeout != 30*time.Second {
			t.Errorf("Model.Timeout = %v, want 30s", cfg.Model.Timeout)
		}
		if cfg.Database.DSN != "user:pass@tcp(db:3306)/shop?parseTime=true" {
			t.Errorf("Database.DSN = %s, want custom DSN", cfg.Database.DSN)
		}
		if cfg.RateLimit.PerIP != 5 {
			t.Errorf("RateLimit.PerIP = %d, want 5", cfg.RateLimit.PerIP)
		}
	})

	t.Run("fails validation for out-of-range temperature", func(t *testing.T) {
		cleanupEnv()
		os.Setenv("PUNTOVENTA_MODEL_TEMPERATURE", "3.5")
		defer cleanupEnv()

		_, err := Load()
		if err == nil {
			t.Error("Load() error = nil, want error for temperature out of range")
		}
	})
}

func TestValidate(t *testing.T) {
	validConfig := func() *Config {
		return &Config{
			Model: ModelConfig{
				BaseURL:     "http://localhost:8081/v1",
				Temperature: 0.05,
				Timeout:     90 * time.Second,
			},
			Database: DatabaseConfig{
				DSN: "puntoventa:puntoventa@tcp(localhost:3306)/puntoventa",
			},
			RateLimit: RateLimitConfig{PerIP: 25, Burst: 50},
		}
	}

	t.Run("validates successfully with all required fields", func(t *testing.T) {
		err := validate(validConfig())
		if err != nil {
			t.Errorf("validate() error = %v, want nil", err)
		}
	})

	t.Run("fails when model base URL is empty", func(t *testing.T) {
		cfg := validConfig()
		cfg.Model.BaseURL = ""

		err := validate(cfg)
		if err == nil {
			t.Error("validate() error = nil, want error for empty model base URL")
		}
	})

	t.Run("fails when model timeout is zero", func(t *testing.T) {
		cfg := validConfig()
		cfg.Model.Timeout = 0

		err := validate(cfg)
		if err == nil {
			t.Error("validate() error = nil, want error for zero timeout")
		}
	})

	t.Run("fails when database DSN is empty", func(t *testing.T) {
		cfg := validConfig()
		cfg.Database.DSN = ""

		err := validate(cfg)
		if err == nil {
			t.Error("validate() error = nil, want error for empty DSN")
		}
	})

	t.Run("fails for non-positive per-IP rate limit", func(t *testing.T) {
		cfg := validConfig()
		cfg.RateLimit.PerIP = 0

		err := validate(cfg)
		if err == nil {
			t.Error("validate() error = nil, want error for zero per-IP limit")
		}
	})
}
