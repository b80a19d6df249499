package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	api "github.com/etesami/earthquake-feed/api"
	"github.com/etesami/earthquake-feed/api/feedrpc"
	"github.com/etesami/earthquake-feed/pkg/feed"
	"github.com/etesami/earthquake-feed/pkg/logging"
)

var errHistoryNeedsCollector = errors.New("history is kept by the collector, pass --addr")

// snapshotSource is where the viewer gets its data: the pipeline run in
// process, or a collector over gRPC.
type snapshotSource interface {
	Snapshot(ctx context.Context) (*api.Snapshot, error)
	Refresh(ctx context.Context, summary string) (*api.Snapshot, error)
	History(ctx context.Context, limit int) ([]api.EventRecord, error)
}

type localSource struct {
	session feed.Session
	loader  *feed.Loader
	builder *feed.Builder
}

func newLocalSource(o *options, log logging.Logger) (*localSource, error) {
	policy, err := feed.ParsePolicy(o.policy)
	if err != nil {
		return nil, err
	}
	selector, err := feed.ParseSelector(o.rankBy)
	if err != nil {
		return nil, err
	}
	s := &localSource{session: feed.Session{Endpoint: o.feedURL}}
	if o.summary != "" {
		if err := s.session.Select(o.summary); err != nil {
			return nil, err
		}
	}
	cache := feed.NewFileCache(o.cachePath)
	fetcher := feed.NewFetcher(&http.Client{}, cache, log, nil)
	s.loader = feed.NewLoader(fetcher, cache, policy, log, nil)
	s.builder = feed.NewBuilder(selector, log, nil)
	return s, nil
}

func (s *localSource) Snapshot(ctx context.Context) (*api.Snapshot, error) {
	res, err := s.loader.Load(ctx, s.session.Endpoint)
	if err != nil {
		return nil, err
	}
	return s.builder.Build(res)
}

func (s *localSource) Refresh(ctx context.Context, summary string) (*api.Snapshot, error) {
	if summary != "" {
		if err := s.session.Select(summary); err != nil {
			return nil, err
		}
	}
	return s.Snapshot(ctx)
}

func (s *localSource) History(context.Context, int) ([]api.EventRecord, error) {
	return nil, errHistoryNeedsCollector
}

// dialCollector connects to a collector after checking it accepts
// connections.
func dialCollector(addr string) (*feedrpc.Client, func() error, error) {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --addr %q: %w", addr, err)
	}
	svc := &api.Service{Address: host, Port: port}
	if err := svc.ServiceReachable(); err != nil {
		return nil, nil, fmt.Errorf("collector [%s] is not reachable: %w", svc.Target(), err)
	}
	conn, err := grpc.NewClient(svc.Target(), grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("did not connect to [%s]: %w", svc.Target(), err)
	}
	return feedrpc.NewClient(conn), conn.Close, nil
}

// remoteSource adapts the gRPC client; Snapshot returns what the collector
// already holds.
type remoteSource struct {
	*feedrpc.Client
}
