package internal

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	api "github.com/etesami/earthquake-feed/api"
	"github.com/etesami/earthquake-feed/api/feedrpc"
	"github.com/etesami/earthquake-feed/pkg/feed"
	"github.com/etesami/earthquake-feed/pkg/logging"
	"github.com/etesami/earthquake-feed/pkg/metric"
)

var errNoArchive = errors.New("event archive is disabled")

// Collector loads the feed, keeps the latest snapshot and archives events.
type Collector struct {
	Loader  *feed.Loader
	Builder *feed.Builder
	Archive *Archive
	Health  *health.Server
	Log     logging.Logger
	Metric  *metric.Metric

	// loadMu serializes loads so only one goroutine writes the cache file.
	loadMu  sync.Mutex
	mu      sync.RWMutex
	session feed.Session
	latest  *api.Snapshot
}

func NewCollector(endpoint string) *Collector {
	return &Collector{session: feed.Session{Endpoint: endpoint}}
}

// Endpoint returns the feed URL the collector is currently following.
func (c *Collector) Endpoint() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.session.Endpoint
}

func (c *Collector) Latest() (*api.Snapshot, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.latest, c.latest != nil
}

// ProcessTicker reloads the current feed.
func (c *Collector) ProcessTicker(ctx context.Context) error {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	snap, err := c.load(ctx, c.Endpoint(), c.Loader.Policy())
	if err != nil {
		return err
	}
	c.commit(ctx, snap, nil)
	return nil
}

// Refresh reloads the feed. A non-empty summary switches the collector to
// that feed, but only once it was fetched from the network: the cache holds
// the previous feed and cannot stand in for the new one. A switch therefore
// always tries the network first.
func (c *Collector) Refresh(ctx context.Context, summary string) (*api.Snapshot, error) {
	c.loadMu.Lock()
	defer c.loadMu.Unlock()

	next := feed.Session{Endpoint: c.Endpoint()}
	policy := c.Loader.Policy()
	if summary != "" {
		if err := next.Select(summary); err != nil {
			return nil, err
		}
		policy = feed.PreferFresh
	}
	snap, err := c.load(ctx, next.Endpoint, policy)
	if err != nil {
		return nil, err
	}
	if summary != "" && snap.Source != string(feed.OriginNetwork) {
		c.logger().WithFields(logging.Fields{
			"summary":  summary,
			"endpoint": next.Endpoint,
			"source":   snap.Source,
		}).Warn("Summary switch abandoned, new feed could not be fetched")
		return nil, fmt.Errorf("%w: %s could not be fetched", feed.ErrNoData, next.Endpoint)
	}
	c.commit(ctx, snap, &next)
	return snap, nil
}

func (c *Collector) History(ctx context.Context, limit int) ([]api.EventRecord, error) {
	if c.Archive == nil {
		return nil, errNoArchive
	}
	return c.Archive.Recent(ctx, limit)
}

// load builds a snapshot for endpoint without publishing it. Callers hold
// loadMu so only one goroutine writes the cache file.
func (c *Collector) load(ctx context.Context, endpoint string, policy feed.Policy) (*api.Snapshot, error) {
	res, err := c.Loader.LoadWithPolicy(ctx, endpoint, policy)
	if err != nil {
		if _, ok := c.Latest(); !ok {
			c.setHealth(healthpb.HealthCheckResponse_NOT_SERVING)
		}
		return nil, fmt.Errorf("loading %s: %w", endpoint, err)
	}
	return c.Builder.Build(res)
}

// commit archives the rows and publishes snap, switching the session when
// next is set.
func (c *Collector) commit(ctx context.Context, snap *api.Snapshot, next *feed.Session) {
	if c.Archive != nil {
		n, err := c.Archive.Store(ctx, snap.Events)
		if err != nil {
			c.logger().WithError(err).Warn("Archiving events failed")
		} else {
			c.Metric.AddArchived(n)
		}
	}

	c.mu.Lock()
	c.latest = snap
	if next != nil {
		c.session = *next
	}
	c.mu.Unlock()
	c.setHealth(healthpb.HealthCheckResponse_SERVING)

	c.logger().WithFields(logging.Fields{
		"load_id":  snap.LoadID,
		"source":   snap.Source,
		"title":    snap.Header.Title,
		"events":   len(snap.Events),
		"elapsed":  snap.Elapsed.String(),
		"unranked": snap.Unranked,
	}).Info("Snapshot updated")
}

func (c *Collector) logger() logging.Logger {
	if c.Log == nil {
		return logging.NewDiscardLogger()
	}
	return c.Log
}

func (c *Collector) setHealth(s healthpb.HealthCheckResponse_ServingStatus) {
	if c.Health == nil {
		return
	}
	c.Health.SetServingStatus(feedrpc.ServiceName, s)
	c.Health.SetServingStatus("", s)
}
