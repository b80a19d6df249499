package feed

import (
	"errors"
	"fmt"
	"slices"
	"strings"
)

// SummaryBase is the USGS directory holding the summary feeds.
const SummaryBase = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/"

// ErrUnknownSummary is returned for a feed name outside the catalogue.
var ErrUnknownSummary = errors.New("unknown summary feed")

// Levels and Periods are the two halves of a summary feed name,
// "<level>_<period>".
var (
	Levels  = []string{"significant", "4.5", "2.5", "1.0", "all"}
	Periods = []string{"hour", "day", "week", "month"}
)

// Summary returns the feed name for level and period.
func Summary(level, period string) (string, error) {
	if !slices.Contains(Levels, level) {
		return "", fmt.Errorf("%w: magnitude level %q", ErrUnknownSummary, level)
	}
	if !slices.Contains(Periods, period) {
		return "", fmt.Errorf("%w: period %q", ErrUnknownSummary, period)
	}
	return level + "_" + period, nil
}

// SummaryURL returns the feed URL for level and period.
func SummaryURL(level, period string) (string, error) {
	name, err := Summary(level, period)
	if err != nil {
		return "", err
	}
	return SummaryBase + name + ".geojson", nil
}

// WithSummary swaps the summary name in a feed URL, keeping everything
// else.
func WithSummary(endpoint, summary string) (string, error) {
	level, period, ok := strings.Cut(summary, "_")
	if !ok {
		return "", fmt.Errorf("%w: %q is not <level>_<period>", ErrUnknownSummary, summary)
	}
	if _, err := Summary(level, period); err != nil {
		return "", err
	}
	x := strings.Index(endpoint, "summary/")
	y := strings.LastIndex(endpoint, ".geojson")
	if x < 0 || y < x+len("summary/") {
		return "", fmt.Errorf("%s is not a summary feed URL", endpoint)
	}
	return endpoint[:x+len("summary/")] + summary + endpoint[y:], nil
}

// Session owns the endpoint a caller is currently looking at.
type Session struct {
	Endpoint string
}

// Select points the session at another summary feed.
func (s *Session) Select(summary string) error {
	next, err := WithSummary(s.Endpoint, summary)
	if err != nil {
		return err
	}
	s.Endpoint = next
	return nil
}
