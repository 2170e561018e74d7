// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

const defaultEnvFile = ".env"

// DefaultRateLimit is the per-client request rate on POST endpoints
const DefaultRateLimit = 5.0

var (
	ErrNoSource        = errors.New("data source required (use -d/DATABASE_URL or -f/DATA_FILE)")
	ErrInvalidPort     = errors.New("invalid PORT env variable")
	ErrUnknownDB       = errors.New("unknown database type (use sqlite or postgres)")
	ErrUnknownLogLevel = errors.New("unknown log level (use debug, info, warn or error)")
	ErrInvalidRate     = errors.New("invalid RATE_LIMIT (requests per second, 0 disables)")
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	DataFile     string
	ProfilePath  string
	EnvFile      string
	LogLevel     string
	AdminKey     string
	RateLimit    float64
	Summary      bool
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var verbose bool

	fs := flag.NewFlagSet("chamber-stats", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.StringVar(&cfg.DataFile, "f", "", "JSON initiative file")

	// Analysis
	fs.StringVar(&cfg.ProfilePath, "profile", "", "Chamber profile (YAML)")
	fs.BoolVar(&cfg.Summary, "summary", false, "Print a text summary and exit")

	// Security
	fs.StringVar(&cfg.AdminKey, "admin-key", "", "Key required to import initiatives")
	fs.Float64Var(&cfg.RateLimit, "rate-limit", -1, "POST requests per second per client (0 disables)")

	// Process
	fs.StringVar(&cfg.EnvFile, "env", "", "Env file to load")
	fs.StringVar(&cfg.LogLevel, "log-level", "", "Log level (debug, info, warn, error)")
	fs.BoolVar(&verbose, "v", false, "Verbose logging (same as -log-level debug)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := loadEnvFile(cfg.EnvFile); err != nil {
		return Config{}, err
	}
	if cfg.EnvFile == "" {
		cfg.EnvFile = os.Getenv("ENV_FILE")
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, ErrInvalidPort
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DataFile == "" {
		cfg.DataFile = os.Getenv("DATA_FILE")
	}
	if cfg.DatabaseURL == "" && cfg.DataFile == "" {
		return Config{}, ErrNoSource
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	cfg.DatabaseType = strings.ToLower(cfg.DatabaseType)
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownDB, cfg.DatabaseType)
	}

	if cfg.ProfilePath == "" {
		cfg.ProfilePath = os.Getenv("CHAMBER_PROFILE")
	}
	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}
	if cfg.RateLimit < 0 {
		if rateStr := os.Getenv("RATE_LIMIT"); rateStr != "" {
			rps, err := strconv.ParseFloat(rateStr, 64)
			if err != nil || rps < 0 {
				return Config{}, ErrInvalidRate
			}
			cfg.RateLimit = rps
		} else {
			cfg.RateLimit = DefaultRateLimit
		}
	}

	if verbose {
		cfg.LogLevel = "debug"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = os.Getenv("LOG_LEVEL")
		if cfg.LogLevel == "" {
			cfg.LogLevel = "info"
		}
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return Config{}, fmt.Errorf("%w: %q", ErrUnknownLogLevel, cfg.LogLevel)
	}

	return cfg, nil
}

// loadEnvFile loads KEY=value pairs without overriding variables already
// set. A missing default .env is not an error; a missing explicit file is.
func loadEnvFile(path string) error {
	explicit := path != ""
	if !explicit {
		path = os.Getenv("ENV_FILE")
		explicit = path != ""
	}
	if path == "" {
		path = defaultEnvFile
	}

	err := godotenv.Load(path)
	if err == nil {
		return nil
	}
	if !explicit && errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load env file %s: %w", path, err)
}
