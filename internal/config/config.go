package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Default values applied when fields are absent from the config file.
const (
	DefaultTimeClass     = "rapid"
	DefaultHistoryFile   = "rating_history.json"
	DefaultChartFile     = "rating_trend.svg"
	DefaultReportFile    = "README.md"
	DefaultRetentionDays = 30
	DefaultMaxEntries    = 30
	DefaultTimeout       = 10 * time.Second
)

// Config is the top-level configuration tree.
// Fields map 1:1 to config.example.yaml.
type Config struct {
	Tracker TrackerConfig `yaml:"tracker"`
}

// TrackerConfig holds everything one tracking run needs: the identity being
// tracked, where the rating comes from, and where the artifacts go.
type TrackerConfig struct {
	// Username is the player whose rating is tracked. Required.
	Username string `yaml:"username" env:"CHESSTREND_USERNAME"`

	// TimeClass selects which rating to track when the source is the
	// chess.com stats API: rapid | blitz | bullet | daily.
	TimeClass string `yaml:"time_class" env:"CHESSTREND_TIME_CLASS"`

	// Source describes the endpoint the rating is fetched from.
	Source Source `yaml:"source"`

	// HistoryFile is the path of the JSON rating history array.
	HistoryFile string `yaml:"history_file" env:"CHESSTREND_HISTORY_FILE"`

	// ChartFile is the path of the rendered SVG trend chart.
	ChartFile string `yaml:"chart_file" env:"CHESSTREND_CHART_FILE"`

	// ChartPNG optionally enables a second, raster rendering of the chart.
	// Empty disables it.
	ChartPNG string `yaml:"chart_png"`

	// ReportFile is the path of the regenerated markdown status document.
	ReportFile string `yaml:"report_file" env:"CHESSTREND_REPORT_FILE"`

	// RetentionDays is how far back history entries are kept.
	RetentionDays int `yaml:"retention_days"`

	// MaxEntries caps the history array length after pruning.
	MaxEntries int `yaml:"max_entries"`

	// Timeout bounds the rating fetch HTTP request.
	Timeout time.Duration `yaml:"timeout"`

	// Interval, when positive, runs the pipeline continuously on a ticker
	// instead of once. Zero (the default) means run to completion and exit;
	// an external scheduler drives daily runs.
	Interval time.Duration `yaml:"interval"`
}

// Source describes the remote endpoint the rating value is fetched from.
type Source struct {
	// Type is the payload format: chesscom | prometheus.
	// Empty defaults to chesscom.
	Type string `yaml:"type"`

	// Endpoint is the full URL fetched. For the chesscom type it may be left
	// empty, in which case the public stats URL for Username is used.
	Endpoint string `yaml:"endpoint" env:"CHESSTREND_ENDPOINT"`

	// Metric is the metric family name holding the rating. Required for the
	// prometheus type, ignored otherwise.
	Metric string `yaml:"metric"`

	// Auth configures how the fetcher authenticates to the endpoint.
	Auth AuthConfig `yaml:"auth"`
}

// AuthConfig specifies the authentication mode for the source endpoint.
// Secret values are resolved from environment variables, never stored in
// the config file.
type AuthConfig struct {
	// Mode is one of: apikey | bearer | basic | none.
	Mode string `yaml:"mode"`

	// API key fields — used when Mode == "apikey".
	// Header is the HTTP header name to send the key in.
	Header string `yaml:"header"`
	// KeyEnv is the name of the environment variable that holds the key value.
	KeyEnv string `yaml:"key_env"`

	// Bearer token fields — used when Mode == "bearer".
	TokenEnv string `yaml:"token_env"`

	// Basic auth fields — used when Mode == "basic".
	Username    string `yaml:"username"`
	PasswordEnv string `yaml:"password_env"`
}

// Key returns the API key value resolved from the environment.
// Returns empty string if KeyEnv is unset or the variable is not found.
func (a AuthConfig) Key() string {
	if a.KeyEnv == "" {
		return ""
	}
	return os.Getenv(a.KeyEnv)
}

// Token returns the bearer token value resolved from the environment.
func (a AuthConfig) Token() string {
	if a.TokenEnv == "" {
		return ""
	}
	return os.Getenv(a.TokenEnv)
}

// Password returns the basic-auth password resolved from the environment.
func (a AuthConfig) Password() string {
	if a.PasswordEnv == "" {
		return ""
	}
	return os.Getenv(a.PasswordEnv)
}

// Load reads and parses the YAML config file at path, then applies
// environment-variable overrides (CHESSTREND_*). Missing optional fields are
// filled with sensible defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read file: %w", err)
	}

	cfg := defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse yaml: %w", err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: parse environment: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

// defaults returns a Config pre-populated with default values.
func defaults() *Config {
	return &Config{
		Tracker: TrackerConfig{
			TimeClass:     DefaultTimeClass,
			HistoryFile:   DefaultHistoryFile,
			ChartFile:     DefaultChartFile,
			ReportFile:    DefaultReportFile,
			RetentionDays: DefaultRetentionDays,
			MaxEntries:    DefaultMaxEntries,
			Timeout:       DefaultTimeout,
		},
	}
}

// validate checks required fields and structural constraints.
func validate(cfg *Config) error {
	t := cfg.Tracker
	if t.Username == "" {
		return fmt.Errorf("tracker.username is required")
	}
	switch t.TimeClass {
	case "rapid", "blitz", "bullet", "daily":
	default:
		return fmt.Errorf("tracker.time_class: unknown value %q", t.TimeClass)
	}
	switch t.Source.Type {
	case "", "chesscom":
	case "prometheus":
		if t.Source.Endpoint == "" {
			return fmt.Errorf("tracker.source.endpoint is required for type prometheus")
		}
		if t.Source.Metric == "" {
			return fmt.Errorf("tracker.source.metric is required for type prometheus")
		}
	default:
		return fmt.Errorf("tracker.source.type: unknown type %q", t.Source.Type)
	}
	switch t.Source.Auth.Mode {
	case "apikey":
		if t.Source.Auth.Header == "" {
			return fmt.Errorf("tracker.source.auth.header is required for mode apikey")
		}
	case "bearer", "basic", "none", "":
	default:
		return fmt.Errorf("tracker.source.auth.mode: unknown mode %q", t.Source.Auth.Mode)
	}
	if t.HistoryFile == "" {
		return fmt.Errorf("tracker.history_file must not be empty")
	}
	if t.ChartFile == "" {
		return fmt.Errorf("tracker.chart_file must not be empty")
	}
	if t.ReportFile == "" {
		return fmt.Errorf("tracker.report_file must not be empty")
	}
	if t.RetentionDays <= 0 {
		return fmt.Errorf("tracker.retention_days must be positive")
	}
	if t.MaxEntries <= 0 {
		return fmt.Errorf("tracker.max_entries must be positive")
	}
	if t.Timeout <= 0 {
		return fmt.Errorf("tracker.timeout must be positive")
	}
	return nil
}
