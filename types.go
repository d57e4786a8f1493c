package main

import (
	"sync"
	"time"

	"pokeguess/internal/game"
	"pokeguess/internal/stats"
	"pokeguess/internal/storage"
)

// Player is one browser's controller together with its stats store.
type Player struct {
	ID         string
	Controller *game.Controller
	Stats      *stats.Store
}

// App holds the server's shared state and configuration.
type App struct {
	Config       *Config
	Provider     game.Provider
	Storage      storage.Backend
	Players      map[string]*Player
	PlayersMutex sync.RWMutex
	LimiterMap   map[string]*rateLimiterEntry
	LimiterMutex sync.Mutex
	StartTime    time.Time
}

// PageData is what the index and puzzle templates render from.
type PageData struct {
	Title     string
	Snapshot  game.Snapshot
	Message   string
	Error     string
	RequestID string
}
