package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"pokeguess/internal/game"
)

// homeHandler renders the full game page for the current player.
func (app *App) homeHandler(c *gin.Context) {
	ctx := c.Request.Context()
	playerID := app.getOrCreatePlayerID(c)
	player, errMsg := app.getPlayer(ctx, playerID)

	app.render(c, false, player.Controller.Snapshot(), "", errMsg)
}

// puzzleHandler renders the current puzzle as an HTML fragment.
func (app *App) puzzleHandler(c *gin.Context) {
	ctx := c.Request.Context()
	playerID := app.getOrCreatePlayerID(c)
	player, errMsg := app.getPlayer(ctx, playerID)

	app.render(c, true, player.Controller.Snapshot(), "", errMsg)
}

// guessHandler validates a submitted name against the active puzzle.
func (app *App) guessHandler(c *gin.Context) {
	ctx := c.Request.Context()
	playerID := app.getOrCreatePlayerID(c)
	player, errMsg := app.getPlayer(ctx, playerID)
	if errMsg != "" {
		app.render(c, isHTMX(c), player.Controller.Snapshot(), "", errMsg)
		return
	}

	guess := strings.TrimSpace(c.PostForm("guess"))
	snap, outcome := player.Controller.Guess(guess)

	reqID, _ := ctx.Value(requestIDKey).(string)
	logInfo("[request_id=%v] Player %s guessed %q for puzzle #%d: %s", reqID, playerID, guess, snap.Puzzle.ID, outcome)

	if isHTMX(c) && outcome != game.OutcomeIgnored {
		c.Header("HX-Trigger", "guess-"+outcome.String())
	}
	app.render(c, isHTMX(c), snap, "", "")
}

// nextHandler replaces the player's puzzle with a new one.
func (app *App) nextHandler(c *gin.Context) {
	ctx := c.Request.Context()
	playerID := app.getOrCreatePlayerID(c)
	player := app.loadPlayer(playerID)

	snap, errMsg := app.startPuzzle(ctx, player)
	if isHTMX(c) || errMsg != "" {
		app.render(c, isHTMX(c), snap, "", errMsg)
		return
	}
	c.Redirect(http.StatusSeeOther, RouteHome)
}

// statsHandler returns the player's counts as JSON.
func (app *App) statsHandler(c *gin.Context) {
	playerID := app.getOrCreatePlayerID(c)
	player := app.loadPlayer(playerID)
	st := player.Stats.Current()
	c.JSON(http.StatusOK, gin.H{
		"correct":   st.Correct,
		"incorrect": st.Incorrect,
		"total":     st.Total(),
	})
}

// statsResetHandler zeroes the player's counts.
func (app *App) statsResetHandler(c *gin.Context) {
	ctx := c.Request.Context()
	playerID := app.getOrCreatePlayerID(c)
	player := app.loadPlayer(playerID)

	st := player.Stats.Reset()
	logInfo("Player %s reset their statistics", playerID)

	if c.GetHeader("Accept") == "application/json" {
		c.JSON(http.StatusOK, gin.H{"correct": st.Correct, "incorrect": st.Incorrect, "total": st.Total()})
		return
	}
	errMsg := app.ensurePuzzle(ctx, player)
	if isHTMX(c) || errMsg != "" {
		app.render(c, isHTMX(c), player.Controller.Snapshot(), MessageStatsReset, errMsg)
		return
	}
	c.Redirect(http.StatusSeeOther, RouteHome)
}

// healthzHandler returns a JSON health check with server stats.
func (app *App) healthzHandler(c *gin.Context) {
	uptime := time.Since(app.StartTime)
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"env":       app.Config.EnvName(),
		"provider":  app.Config.Provider,
		"storage":   app.Config.StorageBackend,
		"players":   app.playerCount(),
		"uptime":    formatUptime(uptime),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// render writes either the puzzle fragment or the full page.
func (app *App) render(c *gin.Context, fragment bool, snap game.Snapshot, msg, errMsg string) {
	reqID, _ := c.Request.Context().Value(requestIDKey).(string)
	data := PageData{
		Title:     PageTitle,
		Snapshot:  snap,
		Message:   msg,
		Error:     errMsg,
		RequestID: reqID,
	}
	if fragment {
		c.HTML(http.StatusOK, "puzzle-content", data)
		return
	}
	c.HTML(http.StatusOK, "index.html", data)
}
