package main

import (
	"fmt"
	"os"
	"time"

	"pokeguess/internal/pokeapi"
	"pokeguess/internal/storage"
)

// Config holds all server configuration, read from the environment.
type Config struct {
	Port           string
	IsProduction   bool
	SecureCookies  bool
	LogLevel       string
	SessionTimeout time.Duration
	CookieMaxAge   time.Duration
	StaticCacheAge time.Duration
	RateLimitRPS   int
	RateLimitBurst int

	Provider        string
	PokeAPIURL      string
	PokeAPILanguage string
	PokeAPIMaxID    int
	PokeAPITimeout  time.Duration
	RosterPath      string

	StorageBackend string
	StoragePath    string
	StatsRetention time.Duration
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	backend := getEnv("STORAGE_BACKEND", storage.BackendFile)
	production := os.Getenv("GIN_MODE") == "release" || os.Getenv("ENV") == "production"
	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		IsProduction:   production,
		SecureCookies:  getEnvBool("SECURE_COOKIES", production),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		SessionTimeout: getEnvDuration("SESSION_TIMEOUT", 2*time.Hour),
		CookieMaxAge:   getEnvDuration("COOKIE_MAX_AGE", 365*24*time.Hour),
		StaticCacheAge: getEnvDuration("STATIC_CACHE_AGE", 5*time.Minute),
		RateLimitRPS:   getEnvInt("RATE_LIMIT_RPS", 5),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 10),

		Provider:        getEnv("PROVIDER", ProviderPokeAPI),
		PokeAPIURL:      getEnv("POKEAPI_URL", pokeapi.DefaultBaseURL),
		PokeAPILanguage: getEnv("POKEAPI_LANGUAGE", pokeapi.DefaultLanguage),
		PokeAPIMaxID:    getEnvInt("POKEAPI_MAX_ID", pokeapi.DefaultMaxID),
		PokeAPITimeout:  getEnvDuration("POKEAPI_TIMEOUT", pokeapi.DefaultTimeout),
		RosterPath:      getEnv("ROSTER_PATH", "data/pokemon.json"),

		StorageBackend: backend,
		StoragePath:    getEnv("STORAGE_PATH", defaultStoragePath(backend)),
		StatsRetention: getEnvDuration("STATS_RETENTION", 0),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.RateLimitRPS <= 0 {
		return fmt.Errorf("RATE_LIMIT_RPS must be > 0")
	}
	if c.RateLimitBurst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be > 0")
	}
	if c.SessionTimeout <= 0 {
		return fmt.Errorf("SESSION_TIMEOUT must be > 0")
	}
	switch c.Provider {
	case ProviderPokeAPI:
		if c.PokeAPIMaxID <= 0 {
			return fmt.Errorf("POKEAPI_MAX_ID must be > 0")
		}
	case ProviderRoster:
		if c.RosterPath == "" {
			return fmt.Errorf("ROSTER_PATH cannot be empty")
		}
	default:
		return fmt.Errorf("unknown PROVIDER %q", c.Provider)
	}
	switch c.StorageBackend {
	case storage.BackendMemory:
	case storage.BackendFile, storage.BackendSQLite:
		if c.StoragePath == "" {
			return fmt.Errorf("STORAGE_PATH cannot be empty for %s storage", c.StorageBackend)
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.StatsRetention < 0 {
		return fmt.Errorf("STATS_RETENTION cannot be negative")
	}
	return nil
}

// EnvName returns "production" or "development".
func (c *Config) EnvName() string {
	return map[bool]string{true: "production", false: "development"}[c.IsProduction]
}

func defaultStoragePath(backend string) string {
	switch backend {
	case storage.BackendSQLite:
		return "data/pokeguess.db"
	case storage.BackendFile:
		return "data/stats"
	default:
		return ""
	}
}
