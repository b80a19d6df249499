package feed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	api "github.com/etesami/earthquake-feed/api"
	"github.com/etesami/earthquake-feed/pkg/logging"
	"github.com/etesami/earthquake-feed/pkg/metric"
)

// ErrNoData is returned when neither the network nor the cache produced a
// document.
var ErrNoData = errors.New("no feed data available")

// Policy decides which source the loader tries first.
type Policy int

const (
	// PreferFresh fetches first and falls back to the cache on failure.
	PreferFresh Policy = iota
	// PreferCache uses the cached document and only fetches on a miss.
	PreferCache
)

func (p Policy) String() string {
	switch p {
	case PreferFresh:
		return "prefer-fresh"
	case PreferCache:
		return "prefer-cache"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "", "prefer-fresh", "fresh":
		return PreferFresh, nil
	case "prefer-cache", "cache":
		return PreferCache, nil
	default:
		return PreferFresh, fmt.Errorf("unknown load policy %q", s)
	}
}

// Origin names where a loaded document came from.
type Origin string

const (
	OriginNetwork Origin = "network"
	OriginCache   Origin = "cache"
)

// Result is the outcome of a successful load.
type Result struct {
	LoadID   string
	Endpoint string
	Document *api.FeedDocument
	Origin   Origin
	// Elapsed is the fetch round trip; zero when the cache served the load.
	Elapsed time.Duration
}

// Loader combines a Source and a Cache under a Policy.
type Loader struct {
	source Source
	cache  Cache
	policy Policy
	log    logging.Logger
	metric *metric.Metric
}

func NewLoader(source Source, cache Cache, policy Policy, log logging.Logger, m *metric.Metric) *Loader {
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	return &Loader{source: source, cache: cache, policy: policy, log: log, metric: m}
}

func (l *Loader) Policy() Policy { return l.policy }

// Load returns a document for endpoint, or ErrNoData when both sources fail.
func (l *Loader) Load(ctx context.Context, endpoint string) (*Result, error) {
	return l.LoadWithPolicy(ctx, endpoint, l.policy)
}

// LoadWithPolicy is Load with the loader's policy overridden for one call.
func (l *Loader) LoadWithPolicy(ctx context.Context, endpoint string, policy Policy) (*Result, error) {
	loadID := uuid.NewString()
	log := l.log.WithFields(logging.Fields{
		"load_id":  loadID,
		"endpoint": endpoint,
		"policy":   policy.String(),
	})

	var res *Result
	if policy == PreferCache {
		res = l.fromCache(log)
		if res == nil {
			res = l.fromNetwork(ctx, endpoint)
		}
	} else {
		res = l.fromNetwork(ctx, endpoint)
		if res == nil {
			res = l.fromCache(log)
		}
	}

	if res == nil {
		log.Error("Neither the feed nor the cache produced data")
		return nil, ErrNoData
	}
	res.LoadID = loadID
	res.Endpoint = endpoint
	l.metric.AddLoad(string(res.Origin))
	log.WithField("origin", res.Origin).Debug("Feed loaded")
	return res, nil
}

// fromNetwork relies on the fetcher to report its own failures.
func (l *Loader) fromNetwork(ctx context.Context, endpoint string) *Result {
	if l.source == nil {
		return nil
	}
	fetched, err := l.source.Fetch(ctx, endpoint)
	if err != nil {
		return nil
	}
	return &Result{Document: fetched.Document, Origin: OriginNetwork, Elapsed: fetched.Elapsed}
}

// fromCache treats an unreadable cache the same as an empty one.
func (l *Loader) fromCache(log logging.Entry) *Result {
	if l.cache == nil {
		return nil
	}
	doc, found, err := l.cache.Read()
	if err != nil {
		log.WithError(err).Warn("Cache unusable")
		return nil
	}
	if !found {
		return nil
	}
	return &Result{Document: doc, Origin: OriginCache}
}
