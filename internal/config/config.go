// Package config resolves runtime configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// ErrDatabaseURLRequired reports the one setting the process cannot start
// without.
var ErrDatabaseURLRequired = errors.New("config: DATABASE_URL is required")

// Config captures everything the server reads from the environment.
type Config struct {
	DatabaseURL   string
	HTTPAddr      string
	SessionSecret string
	UploadDir     string
	UploadBaseURL string

	AdminUsername string
	AdminEmail    string
	AdminPassword string

	LogLevel  string
	LogFormat string

	Environment string
}

// Load reads configuration from the environment. A .env file is merged in
// development without overriding variables already set, so deploys stay
// driven by the real environment.
func Load() (Config, error) {
	env := strings.ToLower(strings.TrimSpace(os.Getenv("ENV")))
	if env == "" {
		env = "development"
	}
	if env == "development" {
		if envMap, err := godotenv.Read(); err == nil {
			for key, value := range envMap {
				if os.Getenv(key) == "" {
					os.Setenv(key, value)
				}
			}
		}
	}

	cfg := Config{
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		HTTPAddr:      getDefault("HTTP_ADDR", ":8080"),
		SessionSecret: strings.TrimSpace(os.Getenv("SESSION_SECRET")),
		UploadDir:     getDefault("UPLOAD_DIR", "uploads"),
		UploadBaseURL: getDefault("UPLOAD_BASE_URL", "/uploads"),
		AdminUsername: strings.TrimSpace(os.Getenv("ADMIN_USERNAME")),
		AdminEmail:    getDefault("ADMIN_EMAIL", "admin@fullsco.local"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),
		LogLevel:      getDefault("LOG_LEVEL", "info"),
		LogFormat:     getDefault("LOG_FORMAT", "json"),
		Environment:   env,
	}

	if cfg.DatabaseURL == "" {
		return Config{}, ErrDatabaseURLRequired
	}
	if cfg.SessionSecret == "" && env != "development" {
		return Config{}, fmt.Errorf("config: SESSION_SECRET is required outside development")
	}
	return cfg, nil
}

// IsDevelopment reports whether the process runs with development defaults.
func (c Config) IsDevelopment() bool { return c.Environment == "development" }

func getDefault(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}
