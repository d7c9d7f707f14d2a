package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type DatabaseDriver string

const (
	DriverSQLite   DatabaseDriver = "sqlite"   // Local file database (default)
	DriverPostgres DatabaseDriver = "postgres" // Server database, DSN required
)

type (
	Config struct {
		HTTP
		Global
		Database
		Log
		API
	}

	HTTP struct {
		Port int32
		Host string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
	Database struct {
		Driver        DatabaseDriver
		Path          string // SQLite file path
		DSN           string // Postgres connection string
		LogLevel      string // silent, error, warn, info
		SlowThreshold time.Duration
	}
	Log struct {
		Mode string // development or production
	}
	API struct {
		DefaultLimit int // Page size when the client sends no limit
		MaxLimit     int // Upper bound for a client supplied limit
	}
)

// NewConfig reads configuration from the environment. A .env file in the
// working directory, when present, is loaded first and never overrides
// variables that are already set.
func NewConfig() *Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 8188)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	// Database defaults
	v.SetDefault("database_driver", string(DriverSQLite))
	v.SetDefault("database_path", DefaultDatabasePath)
	v.SetDefault("database_dsn", "")
	v.SetDefault("database_log_level", "warn")
	v.SetDefault("database_slow_threshold", "1s")

	v.SetDefault("log_mode", "development")

	// Pagination defaults
	v.SetDefault("api_default_limit", DefaultPageLimit)
	v.SetDefault("api_max_limit", MaxPageLimit)

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
		Database: Database{
			Driver:        DatabaseDriver(v.GetString("DATABASE_DRIVER")),
			Path:          v.GetString("DATABASE_PATH"),
			DSN:           v.GetString("DATABASE_DSN"),
			LogLevel:      v.GetString("DATABASE_LOG_LEVEL"),
			SlowThreshold: v.GetDuration("DATABASE_SLOW_THRESHOLD"),
		},
		Log: Log{
			Mode: v.GetString("LOG_MODE"),
		},
		API: API{
			DefaultLimit: v.GetInt("API_DEFAULT_LIMIT"),
			MaxLimit:     v.GetInt("API_MAX_LIMIT"),
		},
	}
}
