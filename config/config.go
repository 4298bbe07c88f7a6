// Package config loads application settings from the environment.
//
// An optional .env file in the working directory is read first; variables
// already present in the process environment take precedence over it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime settings of the point-of-sale service.
type Config struct {
	DBPath          string
	DBDebug         bool
	DBMaxOpenConns  int
	HTTPPort        int
	ShutdownTimeout time.Duration
	LogLevel        string
	LogFormat       string
}

// Default returns the configuration used when no variable is set.
func Default() Config {
	return Config{
		DBPath:          "estoque_vendas.db",
		DBDebug:         false,
		DBMaxOpenConns:  1,
		HTTPPort:        3000,
		ShutdownTimeout: 30 * time.Second,
		LogLevel:        "info",
		LogFormat:       "text",
	}
}

// Load reads the given dotenv files (".env" when none are given) and then
// the process environment.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, file := range files {
		if err := godotenv.Load(file); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return Config{}, fmt.Errorf("failed to load %s: %w", file, err)
		}
		log.Printf("[config] Loaded environment from %s", file)
	}

	def := Default()
	cfg := Config{
		DBPath:          getEnv("POS_DB_PATH", def.DBPath),
		DBDebug:         getEnvBool("POS_DB_DEBUG", def.DBDebug),
		DBMaxOpenConns:  getEnvInt("POS_DB_MAX_OPEN_CONNS", def.DBMaxOpenConns),
		HTTPPort:        getEnvInt("POS_HTTP_PORT", def.HTTPPort),
		ShutdownTimeout: getEnvDuration("POS_SHUTDOWN_TIMEOUT", def.ShutdownTimeout),
		LogLevel:        strings.ToLower(getEnv("POS_LOG_LEVEL", def.LogLevel)),
		LogFormat:       strings.ToLower(getEnv("POS_LOG_FORMAT", def.LogFormat)),
	}

	if cfg.DBMaxOpenConns < 1 {
		return Config{}, fmt.Errorf("POS_DB_MAX_OPEN_CONNS must be at least 1, got %d", cfg.DBMaxOpenConns)
	}
	if cfg.HTTPPort <= 0 || cfg.HTTPPort > 65535 {
		return Config{}, fmt.Errorf("POS_HTTP_PORT out of range: %d", cfg.HTTPPort)
	}
	return cfg, nil
}

// getEnv returns environment variable value or default.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt returns environment variable as int or default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
		log.Printf("Warning: invalid int value for %s: %s, using default: %d", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvBool returns environment variable as bool or default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
		log.Printf("Warning: invalid bool value for %s: %s, using default: %t", key, value, defaultValue)
	}
	return defaultValue
}

// getEnvDuration returns environment variable as duration or default.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		log.Printf("Warning: invalid duration value for %s: %s, using default: %s", key, value, defaultValue)
	}
	return defaultValue
}
