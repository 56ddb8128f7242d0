// Package history persists the bounded rating time series. The on-disk
// format is a 2-space-indented JSON array of {date, rating, updated} objects,
// one per day, sorted by date — readable and diffable when the file is
// committed alongside the generated chart.
//
// Store bounds the series two ways: entries older than the retention window
// are pruned (date-string comparison against the cutoff day), and the array
// is capped at a maximum length, keeping the newest entries.
package history
