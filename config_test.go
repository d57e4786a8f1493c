package main

import (
	"strings"
	"testing"
	"time"

	"pokeguess/internal/pokeapi"
	"pokeguess/internal/storage"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "GIN_MODE", "ENV", "PROVIDER", "STORAGE_BACKEND", "STORAGE_PATH", "SECURE_COOKIES", "POKEAPI_MAX_ID"} {
		t.Setenv(key, "")
	}
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Port != "8080" || cfg.IsProduction || cfg.SecureCookies {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if cfg.Provider != ProviderPokeAPI || cfg.PokeAPIMaxID != pokeapi.DefaultMaxID {
		t.Errorf("provider defaults = %s/%d", cfg.Provider, cfg.PokeAPIMaxID)
	}
	if cfg.StorageBackend != storage.BackendFile || cfg.StoragePath != "data/stats" {
		t.Errorf("storage defaults = %s %q", cfg.StorageBackend, cfg.StoragePath)
	}
	if cfg.EnvName() != "development" {
		t.Errorf("EnvName() = %q", cfg.EnvName())
	}
}

func TestLoadConfigProduction(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("SECURE_COOKIES", "")
	t.Setenv("STORAGE_BACKEND", storage.BackendSQLite)
	t.Setenv("STORAGE_PATH", "")
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if !cfg.IsProduction || !cfg.SecureCookies {
		t.Error("production should default to secure cookies")
	}
	if cfg.StoragePath != "data/pokeguess.db" {
		t.Errorf("sqlite default path = %q", cfg.StoragePath)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"empty port", func(c *Config) { c.Port = "" }, "PORT"},
		{"zero rps", func(c *Config) { c.RateLimitRPS = 0 }, "RATE_LIMIT_RPS"},
		{"zero burst", func(c *Config) { c.RateLimitBurst = 0 }, "RATE_LIMIT_BURST"},
		{"zero timeout", func(c *Config) { c.SessionTimeout = 0 }, "SESSION_TIMEOUT"},
		{"unknown provider", func(c *Config) { c.Provider = "digimon" }, "PROVIDER"},
		{"roster without path", func(c *Config) { c.RosterPath = "" }, "ROSTER_PATH"},
		{"pokeapi without max id", func(c *Config) { c.Provider = ProviderPokeAPI; c.PokeAPIMaxID = 0 }, "POKEAPI_MAX_ID"},
		{"unknown storage", func(c *Config) { c.StorageBackend = "redis" }, "STORAGE_BACKEND"},
		{"file without path", func(c *Config) { c.StorageBackend = storage.BackendFile; c.StoragePath = "" }, "STORAGE_PATH"},
		{"negative retention", func(c *Config) { c.StatsRetention = -time.Hour }, "STATS_RETENTION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.RosterPath = "data/pokemon.json"
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Validate() = %v, want error mentioning %s", err, tt.wantErr)
			}
		})
	}
}

func TestNewAppWithRoster(t *testing.T) {
	cfg := testConfig()
	cfg.RosterPath = "data/pokemon.json"
	cfg.StorageBackend = storage.BackendSQLite
	cfg.StoragePath = t.TempDir() + "/app.db"

	app, err := newApp(cfg)
	if err != nil {
		t.Fatalf("newApp failed: %v", err)
	}
	defer app.Storage.Close()
	if _, ok := app.Provider.(*pokeapi.Roster); !ok {
		t.Errorf("provider = %T, want *pokeapi.Roster", app.Provider)
	}

	cfg.Provider = ProviderPokeAPI
	cfg.StorageBackend = storage.BackendMemory
	app, err = newApp(cfg)
	if err != nil {
		t.Fatalf("newApp failed: %v", err)
	}
	if _, ok := app.Provider.(*pokeapi.Client); !ok {
		t.Errorf("provider = %T, want *pokeapi.Client", app.Provider)
	}

	cfg.Provider = ProviderRoster
	cfg.RosterPath = "data/missing.json"
	if _, err := newApp(cfg); err == nil {
		t.Error("newApp should fail for a missing roster")
	}
}
