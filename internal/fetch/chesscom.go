package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// playerStats is the JSON shape returned by chess.com's /pub/player/{user}/stats.
// Sections for time controls the player has never used are absent, so every
// level is a pointer.
type playerStats struct {
	Rapid  *timeControlStats `json:"chess_rapid"`
	Blitz  *timeControlStats `json:"chess_blitz"`
	Bullet *timeControlStats `json:"chess_bullet"`
	Daily  *timeControlStats `json:"chess_daily"`
}

type timeControlStats struct {
	Last *ratingPoint `json:"last"`
}

type ratingPoint struct {
	Rating int `json:"rating"`
}

type chesscomFetcher struct {
	url       string
	timeClass string
	client    *http.Client
}

// Fetch performs one GET against the stats endpoint and extracts the current
// rating for the configured time class. A missing time-class section means
// the player has no rating there — that is an error, not a zero.
func (f *chesscomFetcher) Fetch(ctx context.Context) (*Sample, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch chesscom: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch chesscom: http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch chesscom: unexpected status %d", resp.StatusCode)
	}

	var stats playerStats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		return nil, fmt.Errorf("fetch chesscom: decode JSON: %w", err)
	}

	tc := stats.section(f.timeClass)
	if tc == nil || tc.Last == nil {
		return nil, fmt.Errorf("fetch chesscom: no %s rating in response", f.timeClass)
	}

	return &Sample{Rating: tc.Last.Rating, FetchedAt: time.Now().UTC()}, nil
}

// section returns the stats block for the given time class, or nil if the
// response did not include one.
func (s *playerStats) section(timeClass string) *timeControlStats {
	switch timeClass {
	case "rapid":
		return s.Rapid
	case "blitz":
		return s.Blitz
	case "bullet":
		return s.Bullet
	case "daily":
		return s.Daily
	default:
		return nil
	}
}
