package feedrpc

import (
	"fmt"
	"time"

	"google.golang.org/protobuf/types/known/structpb"

	api "github.com/etesami/earthquake-feed/api"
)

// SnapshotToStruct encodes a snapshot as a protobuf Struct.
func SnapshotToStruct(s *api.Snapshot) (*structpb.Struct, error) {
	fields := map[string]any{
		"loadId":    s.LoadID,
		"endpoint":  s.Endpoint,
		"source":    s.Source,
		"elapsedNs": int64(s.Elapsed),
		"rankedBy":  s.RankedBy,
		"unranked":  s.Unranked,
		"rankError": s.RankError,
		"header": map[string]any{
			"timeStamp": s.Header.TimeStamp,
			"url":       s.Header.URL,
			"title":     s.Header.Title,
			"count":     s.Header.Count,
		},
		"events": eventsToList(s.Events),
	}
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("encoding snapshot: %w", err)
	}
	return st, nil
}

// SnapshotFromStruct is the inverse of SnapshotToStruct.
func SnapshotFromStruct(st *structpb.Struct) (*api.Snapshot, error) {
	m := st.AsMap()
	header, ok := m["header"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("decoding snapshot: header is missing")
	}
	events, err := eventsFromList(m["events"])
	if err != nil {
		return nil, err
	}
	return &api.Snapshot{
		LoadID:    str(m, "loadId"),
		Endpoint:  str(m, "endpoint"),
		Source:    str(m, "source"),
		Elapsed:   time.Duration(num(m, "elapsedNs")),
		RankedBy:  str(m, "rankedBy"),
		Unranked:  m["unranked"] == true,
		RankError: str(m, "rankError"),
		Header: api.HeaderInfo{
			TimeStamp: int64(num(header, "timeStamp")),
			URL:       str(header, "url"),
			Title:     str(header, "title"),
			Count:     int(num(header, "count")),
		},
		Events: events,
	}, nil
}

func eventsToList(events []api.EventRecord) []any {
	list := make([]any, 0, len(events))
	for _, e := range events {
		list = append(list, map[string]any{
			"id":    e.ID,
			"mag":   e.Magnitude,
			"place": e.Place,
			"time":  e.Time,
			"tz":    optional(e.TZ),
			"url":   e.URL,
			"felt":  optional(e.Felt),
			"alert": e.Alert,
			"mmi":   e.MMI,
			"lon":   e.Longitude,
			"lat":   e.Latitude,
			"depth": e.Depth,
		})
	}
	return list
}

func eventsFromList(v any) ([]api.EventRecord, error) {
	if v == nil {
		return []api.EventRecord{}, nil
	}
	list, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("decoding events: got %T, want a list", v)
	}
	events := make([]api.EventRecord, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("decoding event %d: got %T, want an object", i, item)
		}
		events = append(events, api.EventRecord{
			ID:        str(m, "id"),
			Magnitude: num(m, "mag"),
			Place:     str(m, "place"),
			Time:      int64(num(m, "time")),
			TZ:        optionalInt(m, "tz"),
			URL:       str(m, "url"),
			Felt:      optionalInt(m, "felt"),
			Alert:     str(m, "alert"),
			MMI:       num(m, "mmi"),
			Longitude: num(m, "lon"),
			Latitude:  num(m, "lat"),
			Depth:     num(m, "depth"),
		})
	}
	return events, nil
}

func optional(p *int64) any {
	if p == nil {
		return nil
	}
	return *p
}

func optionalInt(m map[string]any, key string) *int64 {
	f, ok := m[key].(float64)
	if !ok {
		return nil
	}
	v := int64(f)
	return &v
}

func str(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}

func num(m map[string]any, key string) float64 {
	f, _ := m[key].(float64)
	return f
}
