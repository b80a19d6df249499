package feed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/etesami/earthquake-feed/api"
)

func TestFileCacheMissingIsNotAnError(t *testing.T) {
	c := NewFileCache(filepath.Join(t.TempDir(), "earthquake.json"))
	doc, found, err := c.Read()
	require.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, doc)
}

func TestFileCacheRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "earthquake.json")
	c := NewFileCache(path)
	assert.Equal(t, path, c.Path())
	doc := &api.FeedDocument{
		Metadata: api.Metadata{Generated: ptr(int64(5)), URL: ptr("u"), Title: ptr("t"), Count: ptr(1)},
		Features: []api.Feature{{
			ID:         "us1",
			Properties: api.Properties{Mag: 4.5, Place: "X", Time: 1000, Alert: "green", Felt: ptr(int64(2))},
			Geometry:   api.Geometry{Coordinates: []float64{1, 2, 3}},
		}},
	}
	require.NoError(t, c.Write(doc))

	got, found, err := c.Read()
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, doc.Metadata, got.Metadata)
	assert.Equal(t, doc.Features, got.Features)
}

func TestFileCacheKeepsResponseBytes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "earthquake.json")
	c := NewFileCache(path)
	body := readFixture(t)

	require.NoError(t, c.Write(loadFixture(t)))
	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, body, onDisk)
}

func TestFileCacheCorruptIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "earthquake.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"features":`), 0o644))

	_, found, err := NewFileCache(path).Read()
	assert.Error(t, err)
	assert.False(t, found)
}

func TestFileCacheFailedWriteKeepsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), "earthquake.json")
	c := NewFileCache(path)
	require.NoError(t, c.Write(loadFixture(t)))

	bad := &api.FeedDocument{Features: []api.Feature{{Properties: api.Properties{Mag: make(chan int)}}}}
	require.Error(t, c.Write(bad))

	got, found, err := c.Read()
	require.NoError(t, err)
	require.True(t, found)
	assert.Len(t, got.Features, 4)
}

func TestFileCacheFailedCommitCleansUp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "earthquake.json")
	require.NoError(t, os.Mkdir(path, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(path, "keep"), []byte("x"), 0o644))

	require.Error(t, NewFileCache(path).Write(loadFixture(t)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.HasSuffix(e.Name(), ".tmp"), "left behind %s", e.Name())
	}
}
