package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/RaymondMik/GetRideApp/internal/utils"

	"github.com/joho/godotenv"
)

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

// Config is the process configuration, read once at startup
type Config struct {
	ServerPort         string
	StorageDriver      string
	DB                 *DBConfig // nil for the memory driver
	JWTSecret          string
	JWTExpirationHours int64
	BcryptCost         int
	LogLevel           string
	LogPretty          bool
	KafkaBrokers       []string
	GinMode            string
}

// Load reads a .env file when one exists, then the environment
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("failed to load .env file, relying on environment variables", slog.Any("error", err))
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only
func FromEnv() (*Config, error) {
	cfg := &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageDriverPostgres)),
		JWTSecret:     os.Getenv("JWT_SECRET_KEY"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		KafkaBrokers:  splitList(os.Getenv("KAFKA_BROKERS")),
		GinMode:       os.Getenv("GIN_MODE"),
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET_KEY not set in environment")
	}

	var err error
	if cfg.JWTExpirationHours, err = strconv.ParseInt(getEnv("JWT_EXPIRATION_HOURS", "24"), 10, 64); err != nil {
		return nil, fmt.Errorf("invalid JWT_EXPIRATION_HOURS: %w", err)
	}
	if cfg.BcryptCost, err = strconv.Atoi(getEnv("BCRYPT_COST", strconv.Itoa(utils.DefaultBcryptCost))); err != nil {
		return nil, fmt.Errorf("invalid BCRYPT_COST: %w", err)
	}
	if cfg.LogPretty, err = strconv.ParseBool(getEnv("LOG_PRETTY", "false")); err != nil {
		return nil, fmt.Errorf("invalid LOG_PRETTY: %w", err)
	}

	switch cfg.StorageDriver {
	case StorageDriverPostgres:
		if cfg.DB, err = LoadDBConfig(); err != nil {
			return nil, err
		}
	case StorageDriverMemory:
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q (want %s or %s)", cfg.StorageDriver, StorageDriverPostgres, StorageDriverMemory)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
