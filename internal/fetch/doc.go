// Package fetch retrieves the current rating value from the configured
// remote endpoint. Each Fetcher performs one HTTP GET per call and returns a
// Sample{Rating, FetchedAt}.
//
// Implemented sources: chess.com player stats JSON (chesscom.go, the default)
// and a Prometheus gauge endpoint (prometheus.go). Factory:
// New(config.TrackerConfig) returns the correct Fetcher.
//
// Authentication (API key, bearer token, basic auth) is handled by the shared
// authRoundTripper in base.go; individual fetchers receive a pre-configured
// *http.Client from New().
package fetch
