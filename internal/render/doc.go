// Package render turns the rating history into chart images.
//
// SVG (svg.go) is the canonical output: a fixed 1000x500 dark-theme document
// with gridlines, an area-filled trend line, per-point markers and a
// Current/High/Low/Change stats block. The document is assembled directly so
// the layout stays byte-stable across runs — only values change, which keeps
// commits of the generated file reviewable.
//
// WritePNG (png.go) is an optional raster rendering of the same series via
// go-chart, for embedding contexts that reject SVG.
package render
