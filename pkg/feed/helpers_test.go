package feed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	api "github.com/etesami/earthquake-feed/api"
)

func readFixture(t *testing.T) []byte {
	t.Helper()
	body, err := os.ReadFile(filepath.Join("testdata", "2.5_day.geojson"))
	require.NoError(t, err)
	return body
}

func loadFixture(t *testing.T) *api.FeedDocument {
	t.Helper()
	doc, err := api.DecodeFeed(readFixture(t))
	require.NoError(t, err)
	return doc
}

func ptr[T any](v T) *T { return &v }

func rec(id string, mag float64, alert string) api.EventRecord {
	return api.EventRecord{ID: id, Magnitude: mag, Alert: alert}
}

func ids(rows []api.EventRecord) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ID)
	}
	return out
}
