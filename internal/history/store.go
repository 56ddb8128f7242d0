package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sort"
	"time"
)

// dateLayout is the per-day key format. Lexicographic order on these strings
// equals chronological order, which the prune cutoff comparison relies on.
const dateLayout = "2006-01-02"

// Entry is one day's rating observation as persisted on disk.
type Entry struct {
	Date    string `json:"date"`
	Rating  int    `json:"rating"`
	Updated string `json:"updated"`
}

// Store reads and writes the bounded rating history file: a JSON array of
// entries sorted by date, at most one entry per day, pruned to the retention
// window and capped at a maximum length.
type Store struct {
	path      string
	retention int // days
	max       int
	now       func() time.Time // injectable for deterministic tests
}

// NewStore creates a Store for the history file at path.
func NewStore(path string, retentionDays, maxEntries int) *Store {
	return &Store{
		path:      path,
		retention: retentionDays,
		max:       maxEntries,
		now:       time.Now,
	}
}

// Load reads the history array from disk. A missing file is not an error —
// it yields an empty history, the state of a first run.
func (s *Store) Load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("history: read file: %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("history: parse file: %w", err)
	}
	return entries, nil
}

// Prune returns entries within the retention window and how many were dropped.
// The cutoff is compared as an ISO date string; entries on the cutoff day are
// kept.
func (s *Store) Prune(entries []Entry) ([]Entry, int) {
	cutoff := s.now().AddDate(0, 0, -s.retention).Format(dateLayout)
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if e.Date >= cutoff {
			kept = append(kept, e)
		}
	}
	return kept, len(entries) - len(kept)
}

// Upsert merges rating into entries under today's date: an existing entry for
// today is updated in place, otherwise a new one is appended. The result is
// sorted by date, pruned to the retention window, and capped at the newest
// max entries.
func (s *Store) Upsert(entries []Entry, rating int) []Entry {
	now := s.now()
	today := now.Format(dateLayout)
	updated := now.Format(time.RFC3339)

	found := false
	for i := range entries {
		if entries[i].Date == today {
			entries[i].Rating = rating
			entries[i].Updated = updated
			found = true
			break
		}
	}
	if !found {
		entries = append(entries, Entry{Date: today, Rating: rating, Updated: updated})
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Date < entries[j].Date })

	entries, _ = s.Prune(entries)
	if len(entries) > s.max {
		entries = entries[len(entries)-s.max:]
	}
	return entries
}

// Save writes the history array back to disk, indented for readability.
// The write goes through a temp file in the same directory and a rename so a
// crash mid-write never truncates the existing history.
func (s *Store) Save(entries []Entry) error {
	if entries == nil {
		entries = []Entry{} // the file always holds an array, never null
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("history: marshal: %w", err)
	}
	data = append(data, '\n')

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("history: write temp file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("history: replace file: %w", err)
	}
	return nil
}
