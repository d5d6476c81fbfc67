package yahoo

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/clbanning/mxj/v2"
	"github.com/rs/zerolog/log"
)

const defaultBaseURL = "https://fantasysports.yahooapis.com/fantasy/v2"

// Client talks to the Yahoo Fantasy Sports API. Responses are XML and are
// decoded into loose maps so the scalar-or-tagged-text envelope survives
// down to the normalizer.
type Client struct {
	leagueID string
	baseURL  string
	client   *http.Client

	gameKeyOnce sync.Mutex
	gameKey     string

	playerNameCache sync.Map
}

type cachedName struct {
	name      string
	timestamp time.Time
}

// NewClient creates a client for one league. httpClient must already carry
// authentication (see OAuthConfig); a nil client gets a 10s-timeout default,
// useful only for tests against a fake server.
func NewClient(leagueID string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{
		leagueID: leagueID,
		baseURL:  defaultBaseURL,
		client:   httpClient,
	}
}

func (c *Client) get(ctx context.Context, path string) (map[string]interface{}, error) {
	url := c.baseURL + path
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	m, err := mxj.NewMapXml(body)
	if err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return map[string]interface{}(m), nil
}

// GameKey fetches and caches the current season's game key. Every league
// resource URL is prefixed with it.
func (c *Client) GameKey(ctx context.Context) (string, error) {
	c.gameKeyOnce.Lock()
	defer c.gameKeyOnce.Unlock()
	if c.gameKey != "" {
		return c.gameKey, nil
	}

	data, err := c.get(ctx, "/game/nhl")
	if err != nil {
		return "", fmt.Errorf("failed to get game key: %w", err)
	}
	key := scalar(dig(data, "fantasy_content", "game", "game_key"))
	if key == "" {
		return "", fmt.Errorf("game key missing from response")
	}
	c.gameKey = key
	log.Debug().Str("game_key", key).Msg("Resolved game key")
	return key, nil
}

func (c *Client) leaguePath(ctx context.Context, suffix string) (string, error) {
	key, err := c.GameKey(ctx)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("/league/%s.l.%s%s", key, c.leagueID, suffix), nil
}

// DraftResults returns the full current list of draft pick records as raw
// maps. An empty draft yields an empty list, not an error.
func (c *Client) DraftResults(ctx context.Context) ([]map[string]interface{}, error) {
	path, err := c.leaguePath(ctx, "/draftresults")
	if err != nil {
		return nil, err
	}

	data, err := c.get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("failed to get draft results: %w", err)
	}

	results := ensureList(dig(data, "fantasy_content", "league", "draft_results", "draft_result"))
	log.Debug().Int("count", len(results)).Msg("Retrieved draft results")
	return results, nil
}

// PlayerName resolves a player key to the player's full name, with a 1h
// in-process cache. Returns "" on any failure so callers can fall back to
// the raw key.
func (c *Client) PlayerName(ctx context.Context, playerKey string) string {
	if playerKey == "" {
		return ""
	}
	if cached, ok := c.playerNameCache.Load(playerKey); ok {
		entry := cached.(cachedName)
		if time.Since(entry.timestamp) < time.Hour {
			return entry.name
		}
	}

	data, err := c.get(ctx, "/player/"+playerKey)
	if err != nil {
		log.Warn().Err(err).Str("player_key", playerKey).Msg("Failed to fetch player name")
		return ""
	}

	player := digMap(data, "fantasy_content", "player")
	if player == nil {
		player = digMap(data, "fantasy_content", "players", "player")
	}
	name := scalar(dig(player, "name", "full"))
	if name == "" {
		name = scalar(dig(player, "name", "first"))
	}
	if name == "" {
		return ""
	}

	c.playerNameCache.Store(playerKey, cachedName{name: name, timestamp: time.Now()})
	return name
}
