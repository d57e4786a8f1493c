package main

import "time"

// Player configuration constants
const (
	PlayerCookieName = "player_id"
	StatsKeyPrefix   = "stats:"
	MinPlayerIDLen   = 10
)

// Route constants
const (
	RouteHome       = "/"
	RouteGuess      = "/guess"
	RouteNext       = "/next"
	RoutePuzzle     = "/puzzle"
	RouteStats      = "/stats"
	RouteStatsReset = "/stats/reset"
	RouteHealth     = "/healthz"
)

// Provider names
const (
	ProviderPokeAPI = "pokeapi"
	ProviderRoster  = "roster"
)

// User-facing messages
const (
	PageTitle         = "Who's That Pokémon?"
	MessageFetchFail  = "Could not load a new Pokémon. Please try again."
	MessageFetchBusy  = "A new Pokémon is already on its way."
	MessageStatsReset = "Statistics reset."
)

const janitorInterval = 5 * time.Minute

// Context key constants
const (
	requestIDKey contextKey = "request_id"
)

type contextKey string
