package api

import (
	"fmt"
	"time"
)

// Snapshot is one loaded feed as handed to a presentation layer: the
// header, the ranked rows and where the data came from.
type Snapshot struct {
	LoadID    string        `json:"loadId"`
	Endpoint  string        `json:"endpoint"`
	Source    string        `json:"source"`
	Elapsed   time.Duration `json:"elapsed"`
	RankedBy  string        `json:"rankedBy"`
	Unranked  bool          `json:"unranked"`
	RankError string        `json:"rankError,omitempty"`
	Header    HeaderInfo    `json:"header"`
	Events    []EventRecord `json:"events"`
}

// Record returns the i-th row of the snapshot.
func (s *Snapshot) Record(i int) (EventRecord, error) {
	if i < 0 || i >= len(s.Events) {
		return EventRecord{}, fmt.Errorf("record %d out of range [0, %d)", i, len(s.Events))
	}
	return s.Events[i], nil
}

// Labels returns the selector text of every row, in order.
func (s *Snapshot) Labels() []string {
	labels := make([]string, 0, len(s.Events))
	for _, e := range s.Events {
		labels = append(labels, e.Label())
	}
	return labels
}
