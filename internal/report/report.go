package report

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/chesstrend/chesstrend/internal/history"
)

// Write regenerates the status document at path from the current history.
// chartRel is the chart image path relative to the document's directory,
// label names the tracked time class ("Rapid", "Blitz", ...).
//
// The whole document is rewritten every run; it is generated output, not a
// file anyone edits.
func Write(path, chartRel, label string, entries []history.Entry, now time.Time) error {
	if len(entries) == 0 {
		return errors.New("report: no history entries")
	}
	current := entries[len(entries)-1].Rating

	// The two trailing spaces after Days Tracked are a markdown hard break.
	doc := fmt.Sprintf("# Chess Rating Tracker\n\n"+
		"## %s Rating: %d\n\n"+
		"![Rating Trend](%s)\n\n"+
		"**Days Tracked:** %d  \n"+
		"**Last Updated:** %s\n\n"+
		"*This graph shows only real rating data. Run daily to build up your historical trend!*\n",
		label, current, chartRel, len(entries), now.Format("2006-01-02 15:04"))

	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		return fmt.Errorf("report: write file: %w", err)
	}
	return nil
}
