package config

import (
	"time"
)

const (
	DefaultFeedURL     = "https://earthquake.usgs.gov/earthquakes/feed/v1.0/summary/2.5_day.geojson"
	DefaultCachePath   = "earthquake.json"
	DefaultArchivePath = "./quakes.db"
)

// Feed is the configuration shared by the collector and the viewer.
type Feed struct {
	FeedURL     string
	Summary     string
	CachePath   string
	LoadPolicy  string
	RankBy      string
	ArchivePath string

	SvcAddress string
	SvcPort    string

	UpdateFrequency time.Duration
	MetricAddr      string
	MetricPort      string
	FetchBuckets    string
}

// ParseFeed reads the feed configuration from the environment.
func ParseFeed() Feed {
	return Feed{
		FeedURL:         GetEnv("FEED_URL", DefaultFeedURL),
		Summary:         GetEnv("FEED_SUMMARY", ""),
		CachePath:       GetEnv("CACHE_PATH", DefaultCachePath),
		LoadPolicy:      GetEnv("LOAD_POLICY", "prefer-fresh"),
		RankBy:          GetEnv("RANK_BY", "magnitude"),
		ArchivePath:     GetEnv("ARCHIVE_PATH", DefaultArchivePath),
		SvcAddress:      GetEnv("SVC_FEED_ADDR", "localhost"),
		SvcPort:         GetEnv("SVC_FEED_PORT", "50051"),
		UpdateFrequency: time.Duration(GetEnvInt("UPDATE_FREQUENCY", 300)) * time.Second,
		MetricAddr:      GetEnv("METRIC_ADDR", ""),
		MetricPort:      GetEnv("METRIC_PORT", "9100"),
		FetchBuckets:    GetEnv("FETCH_TIME_BUCKETS", ""),
	}
}
