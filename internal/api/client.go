// Package api is the thin client for the lobby HTTP flow. The table engine
// itself never calls it; create/join run before a session starts and hand
// the engine its game id and identity.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type lobbyResponse struct {
	GameID   string `json:"game_id"`
	PlayerID string `json:"player_id"`
	Error    string `json:"error"`
}

// CreateGame asks the lobby for a fresh table and returns its game id.
func (c *Client) CreateGame(ctx context.Context) (string, error) {
	resp, err := c.post(ctx, "/api/create_game")
	if err != nil {
		return "", err
	}
	if resp.GameID == "" {
		return "", fmt.Errorf("create_game: lobby returned no game id")
	}
	return resp.GameID, nil
}

// JoinGame registers playerName at the table and returns the minted
// player id. The caller persists it; the engine only ever reads it.
func (c *Client) JoinGame(ctx context.Context, gameID, playerName string) (string, error) {
	gameID = strings.TrimSpace(gameID)
	playerName = strings.TrimSpace(playerName)
	if gameID == "" {
		return "", fmt.Errorf("join_game: empty game id")
	}
	if playerName == "" {
		return "", fmt.Errorf("join_game: empty player name")
	}

	path := fmt.Sprintf("/api/join_game/%s?player_name=%s", url.PathEscape(gameID), url.QueryEscape(playerName))
	resp, err := c.post(ctx, path)
	if err != nil {
		return "", err
	}
	if resp.PlayerID == "" {
		return "", fmt.Errorf("join_game: lobby returned no player id")
	}
	return resp.PlayerID, nil
}

func (c *Client) post(ctx context.Context, path string) (*lobbyResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	body, err := io.ReadAll(io.LimitReader(res.Body, 1<<16))
	if err != nil {
		return nil, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lobby returned %s", res.Status)
	}

	var resp lobbyResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("malformed lobby response: %w", err)
	}
	if resp.Error != "" {
		return nil, fmt.Errorf("lobby error: %s", resp.Error)
	}
	return &resp, nil
}
