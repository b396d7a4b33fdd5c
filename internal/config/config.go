package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	// Database
	DatabaseURL string

	// Server
	Port            int
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// Logging
	LogLevel       string
	LogDevelopment bool

	// RSS Feed
	FeedTitle       string
	FeedDescription string
	FeedLink        string
	FeedAuthor      string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is applied first when present; variables already set
// in the environment win.
func Load() (*Config, error) {
	return LoadFiles(".env")
}

// LoadFiles is Load with explicit dotenv file paths. Missing files are skipped.
func LoadFiles(files ...string) (*Config, error) {
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}

	cfg := &Config{
		DatabaseURL:     getEnv("DATABASE_URL", ""),
		Port:            getEnvAsInt("PORT", 3000),
		RequestTimeout:  getEnvAsDuration("REQUEST_TIMEOUT", 60*time.Second),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogDevelopment:  getEnvAsBool("LOG_DEVELOPMENT", false),
		FeedTitle:       getEnv("FEED_TITLE", "Articles"),
		FeedDescription: getEnv("FEED_DESCRIPTION", "Latest articles"),
		FeedLink:        getEnv("FEED_LINK", "http://localhost:3000"),
		FeedAuthor:      getEnv("FEED_AUTHOR", "Articles API"),
	}

	if cfg.DatabaseURL == "" {
		dsn, err := databaseURLFromParts()
		if err != nil {
			return nil, err
		}
		cfg.DatabaseURL = dsn
	}

	return cfg, nil
}

// databaseURLFromParts assembles a postgres URL from the DATABASE_* bundle
func databaseURLFromParts() (string, error) {
	host := getEnv("DATABASE_HOST", "")
	name := getEnv("DATABASE_NAME", "")
	if host == "" || name == "" {
		return "", fmt.Errorf("DATABASE_URL or DATABASE_HOST and DATABASE_NAME are required")
	}

	u := &url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(host, strconv.Itoa(getEnvAsInt("DATABASE_PORT", 5432))),
		Path:   "/" + name,
	}
	if user := getEnv("DATABASE_USER", ""); user != "" {
		if pass := getEnv("DATABASE_PASSWORD", ""); pass != "" {
			u.User = url.UserPassword(user, pass)
		} else {
			u.User = url.User(user)
		}
	}

	return u.String(), nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
