package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Server
	ListenHost     string
	ListenPort     string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	MaxRequestBody int64

	// Storage. An empty DATABASE_URL falls back to an embedded sqlite file.
	DatabaseURL string

	// Shared secret for the credential gate. May legitimately be empty, in
	// which case every protected route fails closed.
	APIKey string

	// CORS
	AllowedOrigins []string

	LogLevel string
}

// fileConfig mirrors Config with optional fields so a YAML file can override
// only the keys it names.
type fileConfig struct {
	ListenHost     *string  `yaml:"listen_host"`
	ListenPort     *string  `yaml:"listen_port"`
	ReadTimeout    *string  `yaml:"read_timeout"`
	WriteTimeout   *string  `yaml:"write_timeout"`
	MaxRequestBody *int64   `yaml:"max_request_body_bytes"`
	DatabaseURL    *string  `yaml:"database_url"`
	APIKey         *string  `yaml:"api_key"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	LogLevel       *string  `yaml:"log_level"`
}

// Load builds the configuration from environment variables, then overlays an
// optional YAML file pointed at by CONFIG_FILE. File values win over env.
func Load() (*Config, error) {
	cfg := &Config{
		ListenHost:     getEnv("LISTEN_HOST", "0.0.0.0"),
		ListenPort:     getEnv("LISTEN_PORT", "8080"),
		ReadTimeout:    getDuration("READ_TIMEOUT", 30*time.Second),
		WriteTimeout:   getDuration("WRITE_TIMEOUT", 30*time.Second),
		MaxRequestBody: int64(getIntEnv("MAX_REQUEST_BODY_BYTES", 1024*1024)),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		APIKey:         os.Getenv("API_KEY"),
		AllowedOrigins: getStringSliceEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func (c *Config) applyFile(path string) error {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(content, &fc); err != nil {
		return err
	}

	if fc.ListenHost != nil {
		c.ListenHost = *fc.ListenHost
	}
	if fc.ListenPort != nil {
		c.ListenPort = *fc.ListenPort
	}
	if fc.ReadTimeout != nil {
		if d, err := time.ParseDuration(*fc.ReadTimeout); err == nil {
			c.ReadTimeout = d
		}
	}
	if fc.WriteTimeout != nil {
		if d, err := time.ParseDuration(*fc.WriteTimeout); err == nil {
			c.WriteTimeout = d
		}
	}
	if fc.MaxRequestBody != nil {
		c.MaxRequestBody = *fc.MaxRequestBody
	}
	if fc.DatabaseURL != nil {
		c.DatabaseURL = *fc.DatabaseURL
	}
	if fc.APIKey != nil {
		c.APIKey = *fc.APIKey
	}
	if len(fc.AllowedOrigins) > 0 {
		c.AllowedOrigins = fc.AllowedOrigins
	}
	if fc.LogLevel != nil {
		c.LogLevel = *fc.LogLevel
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getStringSliceEnv(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				out = append(out, trimmed)
			}
		}
		if len(out) > 0 {
			return out
		}
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
