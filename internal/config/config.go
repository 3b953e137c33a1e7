package config

import "os"

const (
	defaultDBPath  = "./printforge.db"
	defaultPort    = "8080"
	defaultDataDir = "./data"
)

// Config holds application configuration sourced from environment variables.
type Config struct {
	DBPath    string
	Port      string
	DataDir   string
	LogLevel  string
	LogFormat string
	Env       string
}

// Load reads environment variables and returns a populated Config.
func Load() Config {
	// Best-effort: load local dev environment variables.
	// We don't fail if the file is missing; production should use real env injection.
	_ = loadDotEnv(".env")

	cfg := Config{
		DBPath:    os.Getenv("DB_PATH"),
		Port:      os.Getenv("PORT"),
		DataDir:   os.Getenv("DATA_DIR"),
		LogLevel:  os.Getenv("LOG_LEVEL"),
		LogFormat: os.Getenv("LOG_FORMAT"),
		Env:       os.Getenv("APP_ENV"),
	}

	if cfg.DBPath == "" {
		cfg.DBPath = defaultDBPath
	}
	if cfg.Port == "" {
		cfg.Port = defaultPort
	}
	if cfg.DataDir == "" {
		cfg.DataDir = defaultDataDir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "console"
	}
	if cfg.Env == "" {
		cfg.Env = "dev"
	}

	return cfg
}

// IsDev reports whether the app runs in development mode, where migrations
// are applied automatically on startup.
func (c Config) IsDev() bool {
	return c.Env == "dev"
}
