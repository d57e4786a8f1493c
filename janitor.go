package main

import (
	"context"
	"time"

	"github.com/samber/lo"
)

// evictIdlePlayers drops players not seen for longer than maxIdle. Their
// stats are already persisted, so a returning player is simply reloaded.
func (app *App) evictIdlePlayers(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	app.PlayersMutex.Lock()
	defer app.PlayersMutex.Unlock()
	idle := lo.Filter(lo.Keys(app.Players), func(id string, _ int) bool {
		return app.Players[id].Controller.LastAccess().Before(cutoff)
	})
	for _, id := range idle {
		delete(app.Players, id)
	}
	return len(idle)
}

// evictIdleLimiters drops rate limiters not used for longer than maxIdle.
func (app *App) evictIdleLimiters(maxIdle time.Duration) int {
	cutoff := time.Now().Add(-maxIdle)

	app.LimiterMutex.Lock()
	defer app.LimiterMutex.Unlock()
	stale := lo.Keys(lo.PickBy(app.LimiterMap, func(_ string, e *rateLimiterEntry) bool {
		return e.lastSeen.Before(cutoff)
	}))
	for _, key := range stale {
		delete(app.LimiterMap, key)
	}
	return len(stale)
}

// sweep runs one round of in-memory eviction and storage cleanup.
func (app *App) sweep() {
	players := app.evictIdlePlayers(app.Config.SessionTimeout)
	limiters := app.evictIdleLimiters(app.Config.SessionTimeout)
	if players > 0 || limiters > 0 {
		logInfo("Janitor evicted %d idle players and %d rate limiters", players, limiters)
	}

	if app.Config.StatsRetention <= 0 {
		return
	}
	removed, err := app.Storage.Cleanup(app.Config.StatsRetention)
	if err != nil {
		logWarn("Storage cleanup failed: %v", err)
		return
	}
	if removed > 0 {
		logInfo("Storage cleanup removed %d entries older than %v", removed, app.Config.StatsRetention)
	}
}

// runJanitor sweeps every interval until ctx is cancelled.
func (app *App) runJanitor(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.sweep()
		}
	}
}
