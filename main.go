package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	ginGzip "github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"pokeguess/internal/game"
	"pokeguess/internal/pokeapi"
	"pokeguess/internal/storage"
)

func main() {
	_ = godotenv.Load()

	cfg, err := LoadConfig()
	if err != nil {
		logFatal("Failed to load configuration: %v", err)
	}
	setupLogging(cfg.LogLevel, cfg.IsProduction)
	logInfo("Starting pokeguess in %s mode", cfg.EnvName())

	app, err := newApp(cfg)
	if err != nil {
		logFatal("Failed to initialize: %v", err)
	}
	defer func() {
		if err := app.Storage.Close(); err != nil {
			logWarn("Failed to close storage: %v", err)
		}
	}()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	router := app.setupRouter(assetDirs(cfg.IsProduction))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go app.runJanitor(ctx, janitorInterval)

	startServer(router, cfg.Port)
}

// newApp builds the provider and storage backend named by cfg.
func newApp(cfg *Config) (*App, error) {
	provider, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}

	backend, err := storage.Open(cfg.StorageBackend, cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", cfg.StorageBackend, err)
	}
	logInfo("Using %s storage at %q", cfg.StorageBackend, cfg.StoragePath)

	return &App{
		Config:     cfg,
		Provider:   provider,
		Storage:    backend,
		Players:    make(map[string]*Player),
		LimiterMap: make(map[string]*rateLimiterEntry),
		StartTime:  time.Now(),
	}, nil
}

func newProvider(cfg *Config) (game.Provider, error) {
	switch cfg.Provider {
	case ProviderRoster:
		roster, err := pokeapi.LoadRoster(cfg.RosterPath)
		if err != nil {
			return nil, fmt.Errorf("load roster: %w", err)
		}
		logInfo("Loaded %d Pokémon from roster", roster.Len())
		return roster, nil
	case ProviderPokeAPI:
		logInfo("Fetching Pokémon from %s (language %s, max id %d)", cfg.PokeAPIURL, cfg.PokeAPILanguage, cfg.PokeAPIMaxID)
		return pokeapi.NewClient(cfg.PokeAPIURL, cfg.PokeAPILanguage, cfg.PokeAPIMaxID, cfg.PokeAPITimeout), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

// assetDirs picks minified assets from dist/ in production when present.
func assetDirs(production bool) (templates, static string) {
	if production && dirExists("dist") {
		logInfo("Serving assets from dist/ directory")
		return "dist/templates", "dist/static"
	}
	logInfo("Serving development assets from source directories")
	return "templates", "static"
}

// setupRouter wires middleware, templates and routes.
func (app *App) setupRouter(templatesDir, staticDir string) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery(), requestIDMiddleware())

	router.Use(ginGzip.Gzip(ginGzip.DefaultCompression,
		ginGzip.WithExcludedExtensions([]string{".svg", ".ico", ".png", ".jpg", ".jpeg", ".gif"}),
		ginGzip.WithExcludedPaths([]string{"/static/fonts"})))

	if err := router.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logWarn("Failed to set trusted proxies: %v", err)
	}
	router.Use(app.cacheHeadersMiddleware())

	router.LoadHTMLGlob(templatesDir + "/*.html")
	if dirExists(staticDir) {
		router.Static("/static", staticDir)
	}

	router.GET(RouteHome, app.homeHandler)
	router.GET(RoutePuzzle, app.puzzleHandler)
	router.POST(RouteGuess, app.rateLimitMiddleware(), app.guessHandler)
	router.GET(RouteNext, func(c *gin.Context) { c.Redirect(http.StatusSeeOther, RouteHome) })
	router.POST(RouteNext, app.rateLimitMiddleware(), app.nextHandler)
	router.GET(RouteStats, app.statsHandler)
	router.POST(RouteStatsReset, app.rateLimitMiddleware(), app.statsResetHandler)
	router.GET(RouteHealth, app.healthzHandler)

	return router
}

func startServer(router *gin.Engine, port string) {
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	idleConnsClosed := make(chan struct{})
	go func() {
		sigint := make(chan os.Signal, 1)
		signal.Notify(sigint, syscall.SIGINT, syscall.SIGTERM)
		<-sigint
		logInfo("Shutdown signal received, shutting down server gracefully...")
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			logWarn("HTTP server Shutdown: %v", err)
		}
		close(idleConnsClosed)
	}()

	logInfo("Server starting on http://localhost:%s", port)
	if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
		logFatal("Server failed to start: %v", err)
	}
	<-idleConnsClosed
	logInfo("Server shutdown complete")
}
