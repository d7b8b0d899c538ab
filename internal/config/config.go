// Package config loads server settings from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DevSecret is used when JWT_SECRET is unset. It is fine for local runs only.
const DevSecret = "settleup-dev-secret"

// Config holds the server settings.
type Config struct {
	Port        int
	DBPath      string
	JWTSecret   string
	TokenTTL    time.Duration
	MetricsPath string
}

// UsingDevSecret reports whether no JWT secret was configured.
func (c Config) UsingDevSecret() bool {
	return c.JWTSecret == DevSecret
}

// Load reads the configuration from the environment, applying defaults.
// Variables missing from the environment are looked up in the dotenv file
// named by ENV_FILE (default ".env"), if it exists.
func Load() (Config, error) {
	path := os.Getenv("ENV_FILE")
	if path == "" {
		path = ".env"
	}
	fileEnv, err := readEnvFile(path, os.Getenv("ENV_FILE") != "")
	if err != nil {
		return Config{}, err
	}
	return load(func(key string) string {
		if value := os.Getenv(key); value != "" {
			return value
		}
		return fileEnv[key]
	})
}

// readEnvFile parses a dotenv file. A missing file is only an error when it
// was asked for explicitly.
func readEnvFile(path string, required bool) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
	}
	return values, nil
}

func load(getenv func(string) string) (Config, error) {
	get := func(key, fallback string) string {
		if value := getenv(key); value != "" {
			return value
		}
		return fallback
	}

	cfg := Config{
		DBPath:      get("DB_PATH", "./data/settleup.db"),
		JWTSecret:   get("JWT_SECRET", DevSecret),
		MetricsPath: get("METRICS_PATH", "/metrics"),
	}

	port, err := strconv.Atoi(get("PORT", "8080"))
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid PORT %q", getenv("PORT"))
	}
	cfg.Port = port

	ttl, err := time.ParseDuration(get("TOKEN_TTL", "24h"))
	if err != nil || ttl <= 0 {
		return Config{}, fmt.Errorf("invalid TOKEN_TTL %q", getenv("TOKEN_TTL"))
	}
	cfg.TokenTTL = ttl

	return cfg, nil
}
