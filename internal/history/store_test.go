package history

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// fixedClock returns a func() time.Time that always returns t.
func fixedClock(t time.Time) func() time.Time { return func() time.Time { return t } }

var base = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T, maxEntries int) *Store {
	t.Helper()
	st := NewStore(filepath.Join(t.TempDir(), "history.json"), 30, maxEntries)
	st.now = fixedClock(base)
	return st
}

// entryOn builds an entry dated daysAgo days before the fixed clock.
func entryOn(daysAgo, rating int) Entry {
	d := base.AddDate(0, 0, -daysAgo)
	return Entry{Date: d.Format(dateLayout), Rating: rating, Updated: d.Format(time.RFC3339)}
}

func TestLoad_MissingFile(t *testing.T) {
	st := newTestStore(t, 30)
	entries, err := st.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Load on missing file: got %d entries, want 0", len(entries))
	}
}

func TestLoad_Malformed(t *testing.T) {
	st := newTestStore(t, 30)
	if err := os.WriteFile(st.path, []byte("{not an array"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := st.Load(); err == nil {
		t.Fatal("Load: expected error for malformed file")
	}
}

func TestUpsert_AppendsNewDay(t *testing.T) {
	st := newTestStore(t, 30)
	entries := st.Upsert([]Entry{entryOn(1, 1500)}, 1510)

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	last := entries[1]
	if last.Date != "2026-03-15" {
		t.Errorf("Date: got %q, want 2026-03-15", last.Date)
	}
	if last.Rating != 1510 {
		t.Errorf("Rating: got %d, want 1510", last.Rating)
	}
	if last.Updated != base.Format(time.RFC3339) {
		t.Errorf("Updated: got %q", last.Updated)
	}
}

func TestUpsert_ReplacesSameDay(t *testing.T) {
	st := newTestStore(t, 30)
	entries := st.Upsert([]Entry{entryOn(0, 1500)}, 1520)

	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if entries[0].Rating != 1520 {
		t.Errorf("Rating: got %d, want 1520", entries[0].Rating)
	}
	if entries[0].Updated != base.Format(time.RFC3339) {
		t.Errorf("Updated not refreshed: got %q", entries[0].Updated)
	}
}

func TestUpsert_SortsByDate(t *testing.T) {
	st := newTestStore(t, 30)
	entries := st.Upsert([]Entry{entryOn(1, 1510), entryOn(3, 1490), entryOn(2, 1500)}, 1520)

	want := []string{"2026-03-12", "2026-03-13", "2026-03-14", "2026-03-15"}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, w := range want {
		if entries[i].Date != w {
			t.Errorf("entries[%d].Date: got %q, want %q", i, entries[i].Date, w)
		}
	}
}

func TestUpsert_PrunesBeyondRetention(t *testing.T) {
	st := newTestStore(t, 30)
	entries := st.Upsert([]Entry{entryOn(40, 1400), entryOn(5, 1500)}, 1510)

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Date != "2026-03-10" {
		t.Errorf("oldest kept: got %q, want 2026-03-10", entries[0].Date)
	}
}

func TestUpsert_CapsAtMaxEntries(t *testing.T) {
	st := newTestStore(t, 3)
	var entries []Entry
	for d := 5; d >= 1; d-- {
		entries = append(entries, entryOn(d, 1500+d))
	}
	entries = st.Upsert(entries, 1510)

	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	// Newest three survive; today is last.
	if entries[0].Date != "2026-03-13" {
		t.Errorf("entries[0].Date: got %q, want 2026-03-13", entries[0].Date)
	}
	if entries[2].Date != "2026-03-15" {
		t.Errorf("entries[2].Date: got %q, want 2026-03-15", entries[2].Date)
	}
}

func TestPrune_KeepsCutoffDay(t *testing.T) {
	st := newTestStore(t, 30)
	kept, dropped := st.Prune([]Entry{entryOn(30, 1450), entryOn(31, 1440)})

	if dropped != 1 {
		t.Errorf("dropped: got %d, want 1", dropped)
	}
	if len(kept) != 1 || kept[0].Date != "2026-02-13" {
		t.Errorf("kept: got %+v, want the entry exactly on the cutoff day", kept)
	}
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	st := newTestStore(t, 30)
	in := []Entry{entryOn(1, 1500), entryOn(0, 1510)}
	if err := st.Save(in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	out, err := st.Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d entries, want 2", len(out))
	}
	if out[0] != in[0] || out[1] != in[1] {
		t.Errorf("round trip mismatch: got %+v, want %+v", out, in)
	}
}

func TestSave_EmptyWritesArray(t *testing.T) {
	st := newTestStore(t, 30)
	if err := st.Save(nil); err != nil {
		t.Fatalf("Save: %v", err)
	}
	data, err := os.ReadFile(st.path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if got := strings.TrimSpace(string(data)); got != "[]" {
		t.Errorf("file content: got %q, want []", got)
	}
}

func TestSave_LeavesNoTempFile(t *testing.T) {
	st := newTestStore(t, 30)
	if err := st.Save([]Entry{entryOn(0, 1500)}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(st.path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file still present after Save")
	}
}
