package feed

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/etesami/earthquake-feed/api"
)

func TestBuildSnapshot(t *testing.T) {
	res := &Result{
		LoadID:   "load-1",
		Endpoint: "http://feed",
		Document: loadFixture(t),
		Origin:   OriginNetwork,
		Elapsed:  time.Second,
	}

	snap, err := NewBuilder(SelectMagnitude, nil, nil).Build(res)
	require.NoError(t, err)
	assert.Equal(t, "network", snap.Source)
	assert.Equal(t, "magnitude", snap.RankedBy)
	assert.Equal(t, time.Second, snap.Elapsed)
	assert.False(t, snap.Unranked)
	assert.Equal(t, 4, snap.Header.Count)
	assert.Equal(t, []string{"us2", "us1", "hv1", "ak1"}, ids(snap.Events))

	first, err := snap.Record(0)
	require.NoError(t, err)
	assert.Equal(t, "5.4  -  Southern Peru", first.Label())
	_, err = snap.Record(4)
	assert.Error(t, err)
	assert.Len(t, snap.Labels(), 4)
}

func TestBuildSnapshotByIntensity(t *testing.T) {
	snap, err := NewBuilder(SelectIntensity, nil, nil).Build(&Result{Document: loadFixture(t), Origin: OriginCache})
	require.NoError(t, err)
	assert.Equal(t, []string{"us2", "us1", "hv1", "ak1"}, ids(snap.Events))
}

func TestBuildSnapshotMalformedHeader(t *testing.T) {
	doc, err := api.DecodeFeed([]byte(`{"metadata":{"title":"t"},"features":[]}`))
	require.NoError(t, err)

	_, err = NewBuilder(SelectMagnitude, nil, nil).Build(&Result{Document: doc})
	assert.ErrorIs(t, err, ErrMalformedHeader)
}

func TestBuildSnapshotRecordsFallback(t *testing.T) {
	snap, err := NewBuilder(Selector(7), nil, nil).Build(&Result{Document: loadFixture(t)})
	require.NoError(t, err)
	assert.True(t, snap.Unranked)
	assert.NotEmpty(t, snap.RankError)
	assert.Equal(t, []string{"hv1", "us1", "us2", "ak1"}, ids(snap.Events))
}
