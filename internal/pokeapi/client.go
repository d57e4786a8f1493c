// Package pokeapi supplies random creatures for the guessing game, either
// from the public PokeAPI or from a bundled roster file.
package pokeapi

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"pokeguess/internal/game"
)

const (
	DefaultBaseURL  = "https://pokeapi.co/api/v2"
	DefaultLanguage = "en"
	DefaultMaxID    = 1025
	DefaultTimeout  = 10 * time.Second

	// ArtworkURL is formatted with the national dex number.
	ArtworkURL = "https://raw.githubusercontent.com/PokeAPI/sprites/master/sprites/pokemon/other/official-artwork/%d.png"

	userAgent = "pokeguess/1.0"
)

// Client fetches random species from PokeAPI.
type Client struct {
	BaseURL    string
	Language   string
	MaxID      int
	HTTPClient *http.Client
}

// NewClient returns a client with default settings for any zero argument.
func NewClient(baseURL, language string, maxID int, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if language == "" {
		language = DefaultLanguage
	}
	if maxID <= 0 {
		maxID = DefaultMaxID
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		Language:   language,
		MaxID:      maxID,
		HTTPClient: &http.Client{Timeout: timeout},
	}
}

type speciesName struct {
	Name     string `json:"name"`
	Language struct {
		Name string `json:"name"`
	} `json:"language"`
}

type speciesResponse struct {
	ID    int           `json:"id"`
	Name  string        `json:"name"`
	Names []speciesName `json:"names"`
}

// FetchRandomEntity picks a random national dex number and fetches it.
func (c *Client) FetchRandomEntity(ctx context.Context) (game.Puzzle, error) {
	id, err := randomIndex(c.MaxID)
	if err != nil {
		return game.Puzzle{}, &game.ProviderError{Op: "random id", Err: err}
	}
	return c.FetchEntity(ctx, id+1)
}

// FetchEntity fetches one species by dex number.
func (c *Client) FetchEntity(ctx context.Context, id int) (game.Puzzle, error) {
	url := fmt.Sprintf("%s/pokemon-species/%d", c.BaseURL, id)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return game.Puzzle{}, &game.ProviderError{Op: "build request", Err: err}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return game.Puzzle{}, &game.ProviderError{Op: "get species", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return game.Puzzle{}, &game.ProviderError{
			Op:  "get species",
			Err: fmt.Errorf("unexpected status %d for id %d", resp.StatusCode, id),
		}
	}

	var species speciesResponse
	if err := json.NewDecoder(resp.Body).Decode(&species); err != nil {
		return game.Puzzle{}, &game.ProviderError{Op: "decode species", Err: err}
	}
	if species.ID <= 0 || species.Name == "" {
		return game.Puzzle{}, &game.ProviderError{Op: "decode species", Err: fmt.Errorf("incomplete species payload for id %d", id)}
	}

	puzzle := game.Puzzle{
		ID:    species.ID,
		Name:  c.displayName(species),
		Image: fmt.Sprintf(ArtworkURL, species.ID),
	}
	log.Debug().Int("id", puzzle.ID).Str("name", puzzle.Name).Dur("took", time.Since(start)).Msg("fetched species")
	return puzzle, nil
}

// displayName prefers the localized name, then English, then a title-cased
// version of the species slug.
func (c *Client) displayName(s speciesResponse) string {
	for _, lang := range lo.Uniq([]string{c.Language, DefaultLanguage}) {
		if n, ok := lo.Find(s.Names, func(n speciesName) bool { return n.Language.Name == lang }); ok && n.Name != "" {
			return n.Name
		}
	}
	return titleFromSlug(s.Name)
}

func titleFromSlug(slug string) string {
	parts := strings.Split(slug, "-")
	return strings.Join(lo.Map(parts, func(p string, _ int) string {
		if p == "" {
			return p
		}
		return strings.ToUpper(p[:1]) + p[1:]
	}), "-")
}

// randomIndex returns a uniform value in [0, n).
func randomIndex(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("cannot pick from %d entries", n)
	}
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, err
	}
	return int(v.Int64()), nil
}
