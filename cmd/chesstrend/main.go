package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/chesstrend/chesstrend/internal/config"
	"github.com/chesstrend/chesstrend/internal/fetch"
	"github.com/chesstrend/chesstrend/internal/history"
	"github.com/chesstrend/chesstrend/internal/render"
	"github.com/chesstrend/chesstrend/internal/report"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	interval := flag.Duration("interval", 0, "run continuously at this interval (0 = run once)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err)
		os.Exit(1)
	}
	if *interval > 0 {
		cfg.Tracker.Interval = *interval
	}
	slog.Info("chesstrend starting",
		"config", *configPath,
		"username", cfg.Tracker.Username,
		"time_class", cfg.Tracker.TimeClass,
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if cfg.Tracker.Interval <= 0 {
		if err := run(ctx, cfg.Tracker); err != nil {
			slog.Error("run failed", "err", err)
			os.Exit(1)
		}
		return
	}

	// Interval mode: the same pipeline on a ticker, with config hot-reload.
	var mu sync.Mutex
	current := cfg
	go func() {
		if err := config.Watch(ctx, *configPath, func(updated *config.Config) {
			mu.Lock()
			current = updated
			mu.Unlock()
			slog.Info("config hot-reloaded", "username", updated.Tracker.Username)
		}); err != nil {
			slog.Error("config watcher stopped", "err", err)
		}
	}()

	if err := run(ctx, cfg.Tracker); err != nil {
		slog.Warn("cycle failed — skipping", "err", err)
	}

	ticker := time.NewTicker(cfg.Tracker.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("chesstrend shutting down")
			return
		case <-ticker.C:
			mu.Lock()
			tc := current.Tracker
			mu.Unlock()
			if err := run(ctx, tc); err != nil {
				slog.Warn("cycle failed — skipping", "err", err)
			}
		}
	}
}

// run executes one fetch → merge → prune → persist → render → report pass.
func run(ctx context.Context, tc config.TrackerConfig) error {
	fetcher, err := fetch.New(tc)
	if err != nil {
		return err
	}
	sample, err := fetcher.Fetch(ctx)
	if err != nil {
		return err
	}
	slog.Info("fetched rating", "username", tc.Username, "rating", sample.Rating)

	store := history.NewStore(tc.HistoryFile, tc.RetentionDays, tc.MaxEntries)
	entries, err := store.Load()
	if err != nil {
		return err
	}
	slog.Info("loaded history", "points", len(entries))

	entries, dropped := store.Prune(entries)
	if dropped > 0 {
		slog.Info("pruned old entries", "count", dropped)
	}

	entries = store.Upsert(entries, sample.Rating)
	if err := store.Save(entries); err != nil {
		return err
	}
	slog.Info("history saved", "path", tc.HistoryFile, "points", len(entries))

	title := fmt.Sprintf("Chess.com %s Rating - %s", titleCase(tc.TimeClass), tc.Username)
	if err := render.WriteSVG(tc.ChartFile, title, entries); err != nil {
		return err
	}
	slog.Info("chart rendered", "path", tc.ChartFile)

	if tc.ChartPNG != "" {
		// The raster chart is a secondary artifact; a failure here should not
		// abort the run after the canonical files are already written.
		if err := render.WritePNG(tc.ChartPNG, title, entries); err != nil {
			slog.Warn("png chart failed", "path", tc.ChartPNG, "err", err)
		} else {
			slog.Info("chart rendered", "path", tc.ChartPNG)
		}
	}

	if err := report.Write(tc.ReportFile, chartRel(tc.ReportFile, tc.ChartFile), titleCase(tc.TimeClass), entries, time.Now()); err != nil {
		return err
	}
	slog.Info("report written", "path", tc.ReportFile)

	if len(entries) > 1 {
		high, low := entries[0].Rating, entries[0].Rating
		for _, e := range entries {
			if e.Rating > high {
				high = e.Rating
			}
			if e.Rating < low {
				low = e.Rating
			}
		}
		slog.Info("stats",
			"current", entries[len(entries)-1].Rating,
			"high", high,
			"low", low,
			"change", entries[len(entries)-1].Rating-entries[0].Rating,
		)
	}
	return nil
}

// chartRel returns the chart path as referenced from the report's directory.
func chartRel(reportPath, chartPath string) string {
	rel, err := filepath.Rel(filepath.Dir(reportPath), chartPath)
	if err != nil {
		return chartPath
	}
	return filepath.ToSlash(rel)
}

// titleCase capitalizes the first letter of an ASCII time-class name.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
