package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"pokeguess/internal/game"
	"pokeguess/internal/stats"
)

// getOrCreatePlayerID retrieves the player ID from the cookie or issues a new one.
func (app *App) getOrCreatePlayerID(c *gin.Context) string {
	playerID, err := c.Cookie(PlayerCookieName)
	if err != nil || len(playerID) < MinPlayerIDLen {
		playerID = uuid.NewString()
		c.SetSameSite(http.SameSiteStrictMode)
		c.SetCookie(PlayerCookieName, playerID, int(app.Config.CookieMaxAge.Seconds()), "/", "", app.Config.SecureCookies, true)
		logInfo("Created new player: %s", playerID)
	}
	return playerID
}

// getPlayer returns the player for an ID and makes sure it has a puzzle. A
// player whose puzzle never arrived gets another fetch attempt; the returned
// message is non-empty if that failed.
func (app *App) getPlayer(ctx context.Context, playerID string) (*Player, string) {
	player := app.loadPlayer(playerID)
	return player, app.ensurePuzzle(ctx, player)
}

// loadPlayer returns the in-memory player for an ID, creating it with its
// persisted stats if needed. It never fetches a puzzle.
func (app *App) loadPlayer(playerID string) *Player {
	app.PlayersMutex.RLock()
	player, exists := app.Players[playerID]
	app.PlayersMutex.RUnlock()
	if exists {
		player.Controller.Touch()
		return player
	}

	app.PlayersMutex.Lock()
	defer app.PlayersMutex.Unlock()
	if player, exists = app.Players[playerID]; exists {
		return player
	}
	store := stats.New(app.Storage, StatsKeyPrefix+playerID)
	player = &Player{
		ID:         playerID,
		Controller: game.NewController(app.Provider, store),
		Stats:      store,
	}
	app.Players[playerID] = player
	st := store.Current()
	logInfo("Player %s loaded with stats %d correct / %d incorrect", playerID, st.Correct, st.Incorrect)
	return player
}

func (app *App) ensurePuzzle(ctx context.Context, player *Player) string {
	if !player.Controller.Snapshot().Loading {
		return ""
	}
	_, msg := app.startPuzzle(ctx, player)
	return msg
}

// startPuzzle asks the player's controller for a new puzzle and maps the
// outcome to a user-facing message. An empty message means success.
func (app *App) startPuzzle(ctx context.Context, player *Player) (game.Snapshot, string) {
	snap, err := player.Controller.StartNewPuzzle(ctx)
	if err == nil {
		reqID, _ := ctx.Value(requestIDKey).(string)
		logInfo("[request_id=%v] Player %s got puzzle #%d", reqID, player.ID, snap.Puzzle.ID)
		return snap, ""
	}
	if errors.Is(err, game.ErrFetchInProgress) {
		return snap, MessageFetchBusy
	}
	logWarn("Player %s could not get a new puzzle: %v", player.ID, err)
	return snap, MessageFetchFail
}

// playerCount reports how many players are held in memory.
func (app *App) playerCount() int {
	app.PlayersMutex.RLock()
	defer app.PlayersMutex.RUnlock()
	return len(app.Players)
}
