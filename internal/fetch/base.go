package fetch

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/chesstrend/chesstrend/internal/config"
)

// defaultStatsURL is the public chess.com stats endpoint for a player.
const defaultStatsURL = "https://api.chess.com/pub/player/%s/stats"

// Sample is one fetched rating observation.
type Sample struct {
	Rating    int
	FetchedAt time.Time
}

// Fetcher retrieves the current rating from the configured source.
// Implementations perform exactly one HTTP GET per call.
type Fetcher interface {
	Fetch(ctx context.Context) (*Sample, error)
}

// New returns the appropriate Fetcher for the given tracker configuration.
// It builds the HTTP client once and reuses it across fetch calls.
func New(tc config.TrackerConfig) (Fetcher, error) {
	client := buildHTTPClient(tc)
	switch tc.Source.Type {
	case "", "chesscom":
		url := tc.Source.Endpoint
		if url == "" {
			url = fmt.Sprintf(defaultStatsURL, tc.Username)
		}
		return &chesscomFetcher{url: url, timeClass: tc.TimeClass, client: client}, nil
	case "prometheus":
		return &promFetcher{url: tc.Source.Endpoint, metric: tc.Source.Metric, client: client}, nil
	default:
		return nil, fmt.Errorf("fetch: unsupported source type %q", tc.Source.Type)
	}
}

// authRoundTripper injects authentication headers into every outgoing request.
type authRoundTripper struct {
	base http.RoundTripper
	auth config.AuthConfig
}

func (t *authRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	switch t.auth.Mode {
	case "apikey":
		req = req.Clone(req.Context())
		req.Header.Set(t.auth.Header, t.auth.Key())
	case "bearer":
		req = req.Clone(req.Context())
		req.Header.Set("Authorization", "Bearer "+t.auth.Token())
	case "basic":
		req = req.Clone(req.Context())
		req.SetBasicAuth(t.auth.Username, t.auth.Password())
	}
	return t.base.RoundTrip(req)
}

// buildHTTPClient constructs an http.Client for the source's auth settings
// and the configured request timeout.
func buildHTTPClient(tc config.TrackerConfig) *http.Client {
	return &http.Client{
		Transport: &authRoundTripper{
			base: http.DefaultTransport,
			auth: tc.Source.Auth,
		},
		Timeout: tc.Timeout,
	}
}
