package utils

import (
	"strconv"
	"strings"
	"time"
)

// ParseBuckets parses a comma separated list of histogram bucket bounds.
// An empty or invalid list yields nil so the caller falls back to the
// default buckets.
func ParseBuckets(s string) []float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var buckets []float64
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil
		}
		if len(buckets) > 0 && v <= buckets[len(buckets)-1] {
			return nil
		}
		buckets = append(buckets, v)
	}
	return buckets
}

// UnixMilliToTime converts a Unix timestamp in milliseconds to a UTC time.Time
func UnixMilliToTime(unixMilli int64) time.Time {
	return time.UnixMilli(unixMilli).UTC()
}

// FormatUnixMilli renders an epoch-ms timestamp the way the feed header
// is shown, always in UTC.
func FormatUnixMilli(unixMilli int64) string {
	return UnixMilliToTime(unixMilli).Format("2006-01-02 15:04:05 MST")
}
