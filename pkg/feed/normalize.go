package feed

import (
	"math"

	api "github.com/etesami/earthquake-feed/api"
)

// Normalize flattens the features of doc into records, in feed order.
// Magnitude, alert and intensity get their defaults here so ranking never
// has to deal with missing or mistyped values. Missing coordinates are
// zero so every feature still yields one row.
func Normalize(doc *api.FeedDocument) []api.EventRecord {
	if doc == nil {
		return []api.EventRecord{}
	}
	records := make([]api.EventRecord, 0, len(doc.Features))
	for _, f := range doc.Features {
		p := f.Properties
		var c [3]float64
		copy(c[:], f.Geometry.Coordinates)
		records = append(records, api.EventRecord{
			ID:        f.ID,
			Magnitude: numberOrZero(p.Mag),
			Place:     p.Place,
			Time:      p.Time,
			TZ:        p.TZ,
			URL:       p.URL,
			Felt:      p.Felt,
			Alert:     stringOrEmpty(p.Alert),
			MMI:       numberOrZero(p.MMI),
			Longitude: c[0],
			Latitude:  c[1],
			Depth:     c[2],
		})
	}
	return records
}

func numberOrZero(v any) float64 {
	n, ok := v.(float64)
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

func stringOrEmpty(v any) string {
	s, _ := v.(string)
	return s
}
