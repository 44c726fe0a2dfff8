package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Model     ModelConfig
	Database  DatabaseConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// ModelConfig holds the text-generation backend configuration. The backend is
// a llama.cpp server exposing an OpenAI-compatible API; sampling parameters
// default to values tuned for structured extraction (low temperature, stop
// sequences on fence/divider markers).
type ModelConfig struct {
	BaseURL       string        `mapstructure:"base_url"`
	APIKey        string        `mapstructure:"api_key"`
	Name          string        `mapstructure:"name"`
	Temperature   float64       `mapstructure:"temperature"`
	MaxTokens     int           `mapstructure:"max_tokens"`
	TopP          float64       `mapstructure:"top_p"`
	TopK          int           `mapstructure:"top_k"`
	RepeatPenalty float64       `mapstructure:"repeat_penalty"`
	StopSequences []string      `mapstructure:"stop_sequences"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// DatabaseConfig holds MySQL connection configuration
type DatabaseConfig struct {
	DSN string `mapstructure:"dsn"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"`
	Burst int `mapstructure:"burst"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/puntoventa/")

	// Environment variable settings
	v.SetEnvPrefix("PUNTOVENTA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"*"})

	// Model defaults: llama.cpp OpenAI-compatible endpoint. The API key is a
	// dummy value; local servers ignore it but the client requires one.
	v.SetDefault("model.base_url", "http://localhost:8081/v1")
	v.SetDefault("model.api_key", "dummy")
	v.SetDefault("model.name", "local")
	v.SetDefault("model.temperature", 0.05)
	v.SetDefault("model.max_tokens", 1024)
	v.SetDefault("model.top_p", 0.9)
	v.SetDefault("model.top_k", 40)
	v.SetDefault("model.repeat_penalty", 1.1)
	v.SetDefault("model.stop_sequences", []string{"```", "---"})
	v.SetDefault("model.timeout", "90s")

	// Database defaults
	v.SetDefault("database.dsn", "puntoventa:puntoventa@tcp(localhost:3306)/puntoventa?parseTime=true")

	// Rate limit defaults (requests per second per client IP)
	v.SetDefault("ratelimit.per_ip", 25)
	v.SetDefault("ratelimit.burst", 50)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Model.BaseURL == "" {
		return fmt.Errorf("model base URL is required (set PUNTOVENTA_MODEL_BASE_URL)")
	}

	if config.Model.Temperature < 0 || config.Model.Temperature > 2 {
		return fmt.Errorf("model temperature must be in [0, 2], got: %v", config.Model.Temperature)
	}

	if config.Model.Timeout <= 0 {
		return fmt.Errorf("model timeout must be positive, got: %v", config.Model.Timeout)
	}

	if config.Database.DSN == "" {
		return fmt.Errorf("database DSN is required (set PUNTOVENTA_DATABASE_DSN)")
	}

	if config.RateLimit.PerIP <= 0 {
		return fmt.Errorf("ratelimit.per_ip must be positive, got: %d", config.RateLimit.PerIP)
	}

	return nil
}
