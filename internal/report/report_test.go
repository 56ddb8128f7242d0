package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/chesstrend/chesstrend/internal/history"
)

var now = time.Date(2026, 3, 15, 18, 30, 0, 0, time.UTC)

func entries(ratings ...int) []history.Entry {
	out := make([]history.Entry, len(ratings))
	for i, r := range ratings {
		d := now.AddDate(0, 0, i-len(ratings)+1)
		out[i] = history.Entry{Date: d.Format("2006-01-02"), Rating: r}
	}
	return out
}

func TestWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	if err := Write(path, "rating_trend.svg", "Rapid", entries(1500, 1510, 1523), now); err != nil {
		t.Fatalf("Write: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	doc := string(data)

	for _, want := range []string{
		"# Chess Rating Tracker",
		"## Rapid Rating: 1523",
		"![Rating Trend](rating_trend.svg)",
		"**Days Tracked:** 3",
		"**Last Updated:** 2026-03-15 18:30",
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("missing %q in report:\n%s", want, doc)
		}
	}
}

func TestWrite_UsesLatestEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	if err := Write(path, "c.svg", "Blitz", entries(1600, 1400), now); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, _ := os.ReadFile(path)
	if !strings.Contains(string(data), "## Blitz Rating: 1400") {
		t.Errorf("report should show the newest rating:\n%s", data)
	}
}

func TestWrite_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	if err := Write(path, "c.svg", "Rapid", nil, now); err == nil {
		t.Fatal("Write: expected error for empty history")
	}
}

func TestWrite_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README.md")
	if err := os.WriteFile(path, []byte("stale content"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := Write(path, "c.svg", "Rapid", entries(1500), now); err != nil {
		t.Fatalf("Write: %v", err)
	}
	data, _ := os.ReadFile(path)
	if strings.Contains(string(data), "stale content") {
		t.Errorf("report was not fully regenerated")
	}
}
