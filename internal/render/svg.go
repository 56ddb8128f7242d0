package render

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/chesstrend/chesstrend/internal/history"
)

// Canvas geometry. The chart is a fixed-size document; ratings are padded by
// ratingPad on both sides so the line never touches the frame.
const (
	width     = 1000
	height    = 500
	margin    = 60
	ratingPad = 50
	gridBands = 5
)

const (
	colorBG    = "#1e1e1e"
	colorLine  = "#00ff88"
	colorDown  = "#ff4444"
	colorMuted = "#888"
	colorGrid  = "#333"
)

// SVG renders the history as a self-contained SVG document. Coordinates use
// integer math: x spreads entries evenly across the plot area in date order,
// y maps ratings linearly between the padded min and max.
func SVG(title string, entries []history.Entry) ([]byte, error) {
	if len(entries) == 0 {
		return nil, errors.New("render: no history entries")
	}

	minR, maxR := entries[0].Rating, entries[0].Rating
	for _, e := range entries {
		if e.Rating < minR {
			minR = e.Rating
		}
		if e.Rating > maxR {
			maxR = e.Rating
		}
	}
	lo := minR - ratingPad
	hi := maxR + ratingPad
	span := hi - lo

	var b strings.Builder
	fmt.Fprintf(&b, "<svg width=\"%d\" height=\"%d\" xmlns=\"http://www.w3.org/2000/svg\">\n", width, height)
	fmt.Fprintf(&b, "  <rect width=\"%d\" height=\"%d\" fill=\"%s\"/>\n", width, height, colorBG)
	fmt.Fprintf(&b, "  <text x=\"%d\" y=\"30\" text-anchor=\"middle\" fill=\"white\" font-family=\"Arial\" font-size=\"18\" font-weight=\"bold\">%s</text>\n",
		width/2, escape(title))
	fmt.Fprintf(&b, "  <text x=\"%d\" y=\"55\" text-anchor=\"middle\" fill=\"%s\" font-family=\"Arial\" font-size=\"12\">Last 30 Days (%d days tracked)</text>\n",
		width/2, colorMuted, len(entries))

	// Horizontal gridlines with rating labels, top (hi) to bottom (lo).
	for i := 0; i <= gridBands; i++ {
		y := margin + i*(height-2*margin)/gridBands
		val := hi - i*span/gridBands
		fmt.Fprintf(&b, "  <line x1=\"%d\" y1=\"%d\" x2=\"%d\" y2=\"%d\" stroke=\"%s\" stroke-width=\"1\"/>\n",
			margin, y, width-margin, y, colorGrid)
		fmt.Fprintf(&b, "  <text x=\"%d\" y=\"%d\" text-anchor=\"end\" fill=\"%s\" font-family=\"Arial\" font-size=\"12\">%d</text>\n",
			margin-10, y+5, colorMuted, val)
	}

	if len(entries) > 1 {
		points := make([]string, len(entries))
		for i, e := range entries {
			x := margin + i*(width-2*margin)/(len(entries)-1)
			y := margin + (hi-e.Rating)*(height-2*margin)/span
			points[i] = fmt.Sprintf("%d,%d", x, y)
		}

		// Area fill closed down to the baseline, then the line itself.
		area := fmt.Sprintf("%d,%d %s %d,%d",
			margin, height-margin, strings.Join(points, " "), width-margin, height-margin)
		fmt.Fprintf(&b, "  <polygon points=\"%s\" fill=\"%s\" fill-opacity=\"0.2\"/>\n", area, colorLine)
		fmt.Fprintf(&b, "  <polyline points=\"%s\" fill=\"none\" stroke=\"%s\" stroke-width=\"3\"/>\n",
			strings.Join(points, " "), colorLine)
		for _, p := range points {
			xy := strings.SplitN(p, ",", 2)
			fmt.Fprintf(&b, "  <circle cx=\"%s\" cy=\"%s\" r=\"4\" fill=\"%s\"/>\n", xy[0], xy[1], colorLine)
		}

		writeStats(&b, entries)
	} else {
		// A single data point gets a marker with its value; there is no trend
		// to draw yet.
		x := width / 2
		y := margin + (hi-entries[0].Rating)*(height-2*margin)/span
		fmt.Fprintf(&b, "  <circle cx=\"%d\" cy=\"%d\" r=\"6\" fill=\"%s\"/>\n", x, y, colorLine)
		fmt.Fprintf(&b, "  <text x=\"%d\" y=\"%d\" text-anchor=\"middle\" fill=\"%s\" font-family=\"Arial\" font-size=\"14\" font-weight=\"bold\">%d</text>\n",
			x, y-15, colorLine, entries[0].Rating)
		fmt.Fprintf(&b, "  <text x=\"%d\" y=\"%d\" text-anchor=\"end\" fill=\"%s\" font-family=\"Arial\" font-size=\"16\" font-weight=\"bold\">Current: %d</text>\n",
			width-10, height-25, colorLine, entries[0].Rating)
	}

	b.WriteString("</svg>\n")
	return []byte(b.String()), nil
}

// writeStats emits the Current/High/Low/Change block in the lower right.
func writeStats(b *strings.Builder, entries []history.Entry) {
	current := entries[len(entries)-1].Rating
	high, low := entries[0].Rating, entries[0].Rating
	for _, e := range entries {
		if e.Rating > high {
			high = e.Rating
		}
		if e.Rating < low {
			low = e.Rating
		}
	}
	change := current - entries[0].Rating
	changeText := fmt.Sprintf("%+d", change)
	changeColor := colorLine
	if change < 0 {
		changeColor = colorDown
	}

	fmt.Fprintf(b, "  <text x=\"%d\" y=\"%d\" text-anchor=\"end\" fill=\"%s\" font-family=\"Arial\" font-size=\"16\" font-weight=\"bold\">Current: %d</text>\n",
		width-10, height-80, colorLine, current)
	fmt.Fprintf(b, "  <text x=\"%d\" y=\"%d\" text-anchor=\"end\" fill=\"%s\" font-family=\"Arial\" font-size=\"12\">High: %d</text>\n",
		width-10, height-60, colorMuted, high)
	fmt.Fprintf(b, "  <text x=\"%d\" y=\"%d\" text-anchor=\"end\" fill=\"%s\" font-family=\"Arial\" font-size=\"12\">Low: %d</text>\n",
		width-10, height-45, colorMuted, low)
	fmt.Fprintf(b, "  <text x=\"%d\" y=\"%d\" text-anchor=\"end\" fill=\"%s\" font-family=\"Arial\" font-size=\"12\" font-weight=\"bold\">Change: %s</text>\n",
		width-10, height-25, changeColor, changeText)
}

// WriteSVG renders the chart and writes it to path.
func WriteSVG(path, title string, entries []history.Entry) error {
	data, err := SVG(title, entries)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("render: write svg: %w", err)
	}
	return nil
}

// escape makes a string safe for inclusion in SVG text content.
func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}
