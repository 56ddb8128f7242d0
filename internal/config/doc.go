// Package config loads and watches the tracker configuration file (config.yaml).
//
// Top-level types:
//   - Config{Tracker} — full config tree parsed from YAML
//   - TrackerConfig — username, time_class, source, artifact paths
//     (history_file, chart_file, chart_png, report_file), retention_days,
//     max_entries, timeout, interval
//   - Source — type (chesscom|prometheus), endpoint, metric, auth
//   - AuthConfig — mode (apikey|bearer|basic|none), header, key_env,
//     token_env, username, password_env; Key(), Token() and Password()
//     resolve secret values from environment variables
//
// Load(path) reads the YAML file, applies defaults (rapid time class,
// rating_history.json / rating_trend.svg / README.md artifacts, 30-day
// retention, 30-entry cap, 10s timeout), overlays CHESSTREND_* environment
// variables, then validates required fields and enums.
//
// Watch(ctx, path, onChange) uses fsnotify to detect file changes and calls
// onChange with the newly parsed Config. It handles the rename→create pattern
// used by atomic-save editors (vim, VS Code) by re-adding the watch after
// a rename event. Only interval mode uses it; a run-once invocation reads the
// config exactly once.
package config
