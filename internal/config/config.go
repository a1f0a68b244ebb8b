// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable.
type Config struct {
	Env      string // application environment (e.g. "dev", "prod")
	Port     string // HTTP port to listen on
	DBDriver string // "mysql" (default) or "sqlite3"
	DBUser   string // database username (mysql)
	DBPass   string // database password (optional)
	DBHost   string // database host address (mysql)
	DBPort   string // database port number (mysql)
	DBName   string // database name (mysql)
	DBPath   string // database file path (sqlite3)

	ValidationAccumulate bool // collect all rule violations instead of failing fast
	EventsEnabled        bool // publish/consume band.created events over RabbitMQ
}

// Load reads configuration from the environment, after loading a .env file
// when one is present. Missing required variables are fatal.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Env:                  must("APP_ENV"),
		Port:                 must("APP_PORT"),
		DBDriver:             envStr("DB_DRIVER", "mysql"),
		ValidationAccumulate: envBool("VALIDATION_ACCUMULATE", false),
		EventsEnabled:        envBool("EVENTS_ENABLED", false),
	}

	if cfg.DBDriver == "sqlite3" {
		cfg.DBPath = envStr("DB_PATH", "bandroom.db")
		return cfg
	}

	cfg.DBUser = must("DB_USER")
	cfg.DBPass = os.Getenv("DB_PASS")
	cfg.DBHost = must("DB_HOST")
	cfg.DBPort = must("DB_PORT")
	cfg.DBName = must("DB_NAME")
	return cfg
}

// must retrieves a required environment variable or exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

func envStr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func envBool(k string, d bool) bool {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	switch v {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return d
}

func envInt(k string, d int) int {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return d
}
