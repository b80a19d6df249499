package api

import (
	"encoding/json"
	"fmt"
)

// Metadata is the feed-level section of a USGS summary document.
// The four header fields are pointers so a missing field can be told
// apart from a zero value.
type Metadata struct {
	Generated *int64  `json:"generated"`
	URL       *string `json:"url"`
	Title     *string `json:"title"`
	Count     *int    `json:"count"`
	Status    int     `json:"status,omitempty"`
	API       string  `json:"api,omitempty"`
}

// Properties holds the per-event attributes. Mag, Alert and MMI are kept
// as decoded because the feed mixes nulls, numbers and strings in them.
type Properties struct {
	Mag   any    `json:"mag"`
	Place string `json:"place"`
	Time  int64  `json:"time"`
	TZ    *int64 `json:"tz"`
	URL   string `json:"url"`
	Felt  *int64 `json:"felt"`
	Alert any    `json:"alert"`
	MMI   any    `json:"mmi"`
}

type Geometry struct {
	Type        string    `json:"type,omitempty"`
	Coordinates []float64 `json:"coordinates"`
}

type Feature struct {
	Type       string     `json:"type,omitempty"`
	ID         string     `json:"id"`
	Properties Properties `json:"properties"`
	Geometry   Geometry   `json:"geometry"`
}

// FeedDocument is a decoded GeoJSON summary feed.
type FeedDocument struct {
	Type     string    `json:"type,omitempty"`
	Metadata Metadata  `json:"metadata"`
	Features []Feature `json:"features"`
	BBox     []float64 `json:"bbox,omitempty"`

	raw []byte
}

// DecodeFeed parses a response body and checks it has the shape of a feed.
// The body is retained so it can be written back byte for byte.
func DecodeFeed(body []byte) (*FeedDocument, error) {
	doc := &FeedDocument{}
	if err := json.Unmarshal(body, doc); err != nil {
		return nil, fmt.Errorf("decoding feed: %w", err)
	}
	if doc.Features == nil {
		return nil, fmt.Errorf("decoding feed: features field is missing")
	}
	for i, f := range doc.Features {
		if len(f.Geometry.Coordinates) < 3 {
			return nil, fmt.Errorf("decoding feed: feature %d (%s) has %d coordinates, want 3",
				i, f.ID, len(f.Geometry.Coordinates))
		}
	}
	doc.raw = append([]byte(nil), body...)
	return doc, nil
}

// Bytes returns the body the document was decoded from, or its JSON
// encoding when it was built in memory.
func (d *FeedDocument) Bytes() ([]byte, error) {
	if len(d.raw) > 0 {
		return d.raw, nil
	}
	return json.Marshal(d)
}

// HeaderInfo is the feed-level summary shown above the record selector.
type HeaderInfo struct {
	TimeStamp int64  `json:"timeStamp"`
	URL       string `json:"url"`
	Title     string `json:"title"`
	Count     int    `json:"count"`
}

// EventRecord is one normalized feed row. The field order is fixed and
// matches Values.
type EventRecord struct {
	ID        string  `json:"id"`
	Magnitude float64 `json:"mag"`
	Place     string  `json:"place"`
	Time      int64   `json:"time"`
	TZ        *int64  `json:"tz"`
	URL       string  `json:"url"`
	Felt      *int64  `json:"felt"`
	Alert     string  `json:"alert"`
	MMI       float64 `json:"mmi"`
	Longitude float64 `json:"lon"`
	Latitude  float64 `json:"lat"`
	Depth     float64 `json:"depth"`
}

// RecordWidth is the number of fields in every EventRecord.
const RecordWidth = 12

// Values returns the record as an ordered tuple. Nullable fields are nil
// when absent.
func (r EventRecord) Values() []any {
	var tz, felt any
	if r.TZ != nil {
		tz = *r.TZ
	}
	if r.Felt != nil {
		felt = *r.Felt
	}
	return []any{
		r.ID, r.Magnitude, r.Place, r.Time, tz, r.URL,
		felt, r.Alert, r.MMI, r.Longitude, r.Latitude, r.Depth,
	}
}

// Label is the text used for the record in a selector list.
func (r EventRecord) Label() string {
	return fmt.Sprintf("%g  -  %s", r.Magnitude, r.Place)
}
