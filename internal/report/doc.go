// Package report regenerates the short markdown status document that fronts
// the tracked history: current rating, the trend chart referenced by relative
// path, days tracked and a last-updated timestamp.
package report
