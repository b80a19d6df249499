package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/etesami/earthquake-feed/api/feedrpc"
	"github.com/etesami/earthquake-feed/pkg/config"
	"github.com/etesami/earthquake-feed/pkg/feed"
	"github.com/etesami/earthquake-feed/pkg/logging"
	"github.com/etesami/earthquake-feed/pkg/metric"
	"github.com/etesami/earthquake-feed/pkg/utils"
	internal "github.com/etesami/earthquake-feed/svc-feed-collector/internal"
)

func main() {
	log := logging.NewLoggerWithService("svc-feed-collector")
	config.LoadEnv(log)
	cfg := config.ParseFeed()

	endpoint := cfg.FeedURL
	if cfg.Summary != "" {
		var err error
		if endpoint, err = feed.WithSummary(endpoint, cfg.Summary); err != nil {
			log.Fatalf("Invalid FEED_SUMMARY: %v", err)
		}
	}
	policy, err := feed.ParsePolicy(cfg.LoadPolicy)
	if err != nil {
		log.Fatalf("Invalid LOAD_POLICY: %v", err)
	}
	selector, err := feed.ParseSelector(cfg.RankBy)
	if err != nil {
		log.Fatalf("Invalid RANK_BY: %v", err)
	}
	if cfg.UpdateFrequency <= 0 {
		log.Fatalf("UPDATE_FREQUENCY must be positive, got %s", cfg.UpdateFrequency)
	}

	m := metric.New(utils.ParseBuckets(cfg.FetchBuckets))
	if err := m.RegisterMetrics(prometheus.DefaultRegisterer); err != nil {
		log.Fatalf("Registering metrics: %v", err)
	}

	archive, err := internal.OpenArchive(cfg.ArchivePath)
	if err != nil {
		log.Fatalf("Opening archive: %v", err)
	}
	defer archive.Close()

	cache := feed.NewFileCache(cfg.CachePath)
	fetcher := feed.NewFetcher(&http.Client{}, cache, log, m)

	collector := internal.NewCollector(endpoint)
	collector.Loader = feed.NewLoader(fetcher, cache, policy, log, m)
	collector.Builder = feed.NewBuilder(selector, log, m)
	collector.Archive = archive
	collector.Health = health.NewServer()
	collector.Log = log
	collector.Metric = m

	log.WithFields(logging.Fields{
		"endpoint": endpoint,
		"policy":   collector.Loader.Policy().String(),
		"rank_by":  selector.String(),
		"cache":    cache.Path(),
		"archive":  cfg.ArchivePath,
	}).Info("Collector configured")

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	listener, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.SvcAddress, cfg.SvcPort))
	if err != nil {
		log.Fatalf("Listening on %s:%s: %v", cfg.SvcAddress, cfg.SvcPort, err)
	}
	grpcServer := grpc.NewServer()
	feedrpc.Register(grpcServer, &feedrpc.Server{Provider: collector, Log: log})
	healthpb.RegisterHealthServer(grpcServer, collector.Health)

	go func() {
		log.Infof("gRPC server is running on %s", listener.Addr())
		if err := grpcServer.Serve(listener); err != nil {
			log.Fatalf("gRPC server: %v", err)
		}
	}()

	// First call to processTicker
	if err := collector.ProcessTicker(ctx); err != nil {
		log.WithError(err).Error("Error during processing")
	}

	ticker := time.NewTicker(cfg.UpdateFrequency)
	defer ticker.Stop()

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := collector.ProcessTicker(ctx); err != nil {
					log.WithError(err).Error("Error during processing")
				}
			}
		}
	}()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	metricSrv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.MetricAddr, cfg.MetricPort),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Infof("Starting metric server on %s", metricSrv.Addr)
		if err := metricSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Metric server: %v", err)
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")
	shutdownCtx, cancel2 := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel2()
	_ = metricSrv.Shutdown(shutdownCtx)
	grpcServer.GracefulStop()
}
