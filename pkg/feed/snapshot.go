package feed

import (
	"fmt"

	api "github.com/etesami/earthquake-feed/api"
	"github.com/etesami/earthquake-feed/pkg/logging"
	"github.com/etesami/earthquake-feed/pkg/metric"
)

// Builder turns a loaded document into a Snapshot.
type Builder struct {
	selector Selector
	log      logging.Logger
	metric   *metric.Metric
}

func NewBuilder(sel Selector, log logging.Logger, m *metric.Metric) *Builder {
	if log == nil {
		log = logging.NewDiscardLogger()
	}
	return &Builder{selector: sel, log: log, metric: m}
}

// Build extracts the header, normalizes and ranks the rows. A malformed
// header is returned as an error; a refused ranking is recorded on the
// snapshot and the rows stay in feed order.
func (b *Builder) Build(res *Result) (*api.Snapshot, error) {
	header, err := ExtractHeader(res.Document)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", res.LoadID, err)
	}

	rows := Normalize(res.Document)
	ranked, rankErr := Rank(rows, b.selector)

	snap := &api.Snapshot{
		LoadID:   res.LoadID,
		Endpoint: res.Endpoint,
		Source:   string(res.Origin),
		Elapsed:  res.Elapsed,
		RankedBy: b.selector.String(),
		Header:   header,
		Events:   ranked,
	}
	if rankErr != nil {
		snap.Unranked = true
		snap.RankError = rankErr.Error()
		b.metric.AddRankFallback()
		b.log.WithError(rankErr).WithField("load_id", res.LoadID).Warn("Events left unranked")
	}
	b.metric.SetSnapshotEvents(len(ranked))
	return snap, nil
}
