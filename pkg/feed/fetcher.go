package feed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	api "github.com/etesami/earthquake-feed/api"
	"github.com/etesami/earthquake-feed/pkg/logging"
	"github.com/etesami/earthquake-feed/pkg/metric"
)

// FailureKind classifies why a fetch did not produce a document.
type FailureKind int

const (
	FailureTransport FailureKind = iota
	FailureStatus
	FailureParse
)

func (k FailureKind) String() string {
	switch k {
	case FailureTransport:
		return "transport"
	case FailureStatus:
		return "status"
	case FailureParse:
		return "parse"
	default:
		return "unknown"
	}
}

// FetchError is returned for every failed fetch.
type FetchError struct {
	Kind       FailureKind
	Endpoint   string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	switch e.Kind {
	case FailureStatus:
		msg := fmt.Sprintf("error from website - %d - %s from %s",
			e.StatusCode, http.StatusText(e.StatusCode), e.Endpoint)
		if e.StatusCode == http.StatusBadRequest {
			msg += ": this error usually occurs when the file is too big"
		}
		return msg
	case FailureParse:
		return fmt.Sprintf("unknown error from website %s: %v", e.Endpoint, e.Err)
	default:
		return fmt.Sprintf("cannot reach %s: %v", e.Endpoint, e.Err)
	}
}

func (e *FetchError) Unwrap() error { return e.Err }

// Fetched is a successfully retrieved document and how long it took.
type Fetched struct {
	Document *api.FeedDocument
	Elapsed  time.Duration
}

// Source retrieves a feed document from the network.
type Source interface {
	Fetch(ctx context.Context, endpoint string) (*Fetched, error)
}

// Fetcher performs a single GET per call and stores every good document in
// the cache.
type Fetcher struct {
	client *http.Client
	cache  Cache
	log    logging.Logger
	metric *metric.Metric
	now    func() time.Time
}

// NewFetcher returns a Fetcher. A nil client uses http.DefaultClient and a
// nil cache skips persistence.
func NewFetcher(client *http.Client, cache Cache, log logging.Logger, m *metric.Metric) *Fetcher {
	if client == nil {
		client = http.DefaultClient
	}
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	return &Fetcher{client: client, cache: cache, log: log, metric: m, now: time.Now}
}

func (f *Fetcher) Fetch(ctx context.Context, endpoint string) (*Fetched, error) {
	st := f.now()
	doc, err := f.get(ctx, endpoint)
	elapsed := f.now().Sub(st)

	if err != nil {
		var fe *FetchError
		outcome := "error"
		if errors.As(err, &fe) {
			outcome = fe.Kind.String()
		}
		f.metric.AddFetchTime(outcome, elapsed.Seconds())
		f.log.WithError(err).WithFields(logging.Fields{
			"endpoint": endpoint,
			"outcome":  outcome,
		}).Warn("Feed fetch failed")
		return nil, err
	}
	f.metric.AddFetchTime("ok", elapsed.Seconds())

	if f.cache != nil {
		if err := f.cache.Write(doc); err != nil {
			f.log.WithError(err).Warn("Feed fetched but cache write failed")
		}
	}

	f.log.WithFields(logging.Fields{
		"endpoint": endpoint,
		"features": len(doc.Features),
		"elapsed":  elapsed.String(),
	}).Info("Feed fetched")
	return &Fetched{Document: doc, Elapsed: elapsed}, nil
}

func (f *Fetcher) get(ctx context.Context, endpoint string) (*api.FeedDocument, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &FetchError{Kind: FailureTransport, Endpoint: endpoint, Err: err}
	}
	req.Header.Set("Accept", "application/geo+json, application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{Kind: FailureTransport, Endpoint: endpoint, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &FetchError{Kind: FailureStatus, Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Kind: FailureTransport, Endpoint: endpoint, Err: err}
	}
	doc, err := api.DecodeFeed(body)
	if err != nil {
		return nil, &FetchError{Kind: FailureParse, Endpoint: endpoint, Err: err}
	}
	return doc, nil
}
