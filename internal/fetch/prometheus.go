package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"
)

// promFetcher reads the rating from a single gauge exposed on a Prometheus
// text exposition endpoint. Useful when the rating is mirrored by another
// system rather than fetched from chess.com directly.
type promFetcher struct {
	url    string
	metric string
	client *http.Client
}

func (f *promFetcher) Fetch(ctx context.Context) (*Sample, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch prometheus: build request: %w", err)
	}
	req.Header.Set("Accept", string(expfmt.NewFormat(expfmt.TypeTextPlain)))

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch prometheus: http get: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch prometheus: unexpected status %d", resp.StatusCode)
	}

	mfs, err := parseMetrics(resp.Body)
	if err != nil {
		return nil, err
	}

	mf, ok := mfs[f.metric]
	if !ok {
		return nil, fmt.Errorf("fetch prometheus: metric %q not found", f.metric)
	}
	v, ok := firstValue(mf)
	if !ok {
		return nil, fmt.Errorf("fetch prometheus: metric %q has no samples", f.metric)
	}

	return &Sample{Rating: int(v), FetchedAt: time.Now().UTC()}, nil
}

// parseMetrics decodes a Prometheus text exposition from r into metric families.
// A partial result with a non-fatal parse warning is still returned successfully.
func parseMetrics(r io.Reader) (map[string]*dto.MetricFamily, error) {
	var parser expfmt.TextParser
	mfs, err := parser.TextToMetricFamilies(r)
	if err != nil && len(mfs) == 0 {
		return nil, fmt.Errorf("fetch prometheus: parse text: %w", err)
	}
	// Non-empty result with a non-nil err means partial parse (trailing lines,
	// format warnings). Treat as success.
	return mfs, nil
}

// firstValue returns the first gauge, counter, or untyped sample in mf.
func firstValue(mf *dto.MetricFamily) (float64, bool) {
	for _, m := range mf.GetMetric() {
		switch {
		case m.Gauge != nil:
			return m.Gauge.GetValue(), true
		case m.Counter != nil:
			return m.Counter.GetValue(), true
		case m.Untyped != nil:
			return m.Untyped.GetValue(), true
		}
	}
	return 0, false
}
