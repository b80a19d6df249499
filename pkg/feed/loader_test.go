package feed

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/etesami/earthquake-feed/api"
)

type stubSource struct {
	doc   *api.FeedDocument
	err   error
	calls int
}

func (s *stubSource) Fetch(context.Context, string) (*Fetched, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return &Fetched{Document: s.doc, Elapsed: 250 * time.Millisecond}, nil
}

type memCache struct {
	doc   *api.FeedDocument
	err   error
	reads int
}

func (c *memCache) Read() (*api.FeedDocument, bool, error) {
	c.reads++
	if c.err != nil {
		return nil, false, c.err
	}
	return c.doc, c.doc != nil, nil
}

func (c *memCache) Write(doc *api.FeedDocument) error {
	c.doc = doc
	return nil
}

var errDown = &FetchError{Kind: FailureTransport, Endpoint: "x", Err: errors.New("down")}

func TestLoadPreferFreshUsesNetwork(t *testing.T) {
	fresh := loadFixture(t)
	src := &stubSource{doc: fresh}
	cache := &memCache{doc: &api.FeedDocument{}}

	res, err := NewLoader(src, cache, PreferFresh, nil, nil).Load(context.Background(), "http://feed")
	require.NoError(t, err)
	assert.Same(t, fresh, res.Document)
	assert.Equal(t, OriginNetwork, res.Origin)
	assert.Equal(t, 250*time.Millisecond, res.Elapsed)
	assert.Equal(t, "http://feed", res.Endpoint)
	assert.NotEmpty(t, res.LoadID)
	assert.Zero(t, cache.reads)
}

func TestLoadFallsBackToCache(t *testing.T) {
	stale := loadFixture(t)
	cache := &memCache{doc: stale}

	res, err := NewLoader(&stubSource{err: errDown}, cache, PreferFresh, nil, nil).Load(context.Background(), "http://feed")
	require.NoError(t, err)
	assert.Same(t, stale, res.Document)
	assert.Equal(t, OriginCache, res.Origin)
	assert.Zero(t, res.Elapsed)
}

func TestLoadBothSourcesFail(t *testing.T) {
	for name, cache := range map[string]*memCache{
		"empty":      {},
		"unreadable": {err: errors.New("permission denied")},
	} {
		res, err := NewLoader(&stubSource{err: errDown}, cache, PreferFresh, nil, nil).Load(context.Background(), "http://feed")
		assert.ErrorIs(t, err, ErrNoData, name)
		assert.Nil(t, res, name)
	}
}

func TestLoadPreferCache(t *testing.T) {
	stale := loadFixture(t)
	src := &stubSource{doc: &api.FeedDocument{}}

	l := NewLoader(src, &memCache{doc: stale}, PreferCache, nil, nil)
	assert.Equal(t, PreferCache, l.Policy())
	res, err := l.Load(context.Background(), "http://feed")
	require.NoError(t, err)
	assert.Same(t, stale, res.Document)
	assert.Zero(t, src.calls)

	res, err = NewLoader(src, &memCache{}, PreferCache, nil, nil).Load(context.Background(), "http://feed")
	require.NoError(t, err)
	assert.Equal(t, OriginNetwork, res.Origin)
	assert.Equal(t, 1, src.calls)
}

func TestLoadIDsAreUnique(t *testing.T) {
	l := NewLoader(&stubSource{doc: loadFixture(t)}, nil, PreferFresh, nil, nil)
	a, err := l.Load(context.Background(), "http://feed")
	require.NoError(t, err)
	b, err := l.Load(context.Background(), "http://feed")
	require.NoError(t, err)
	assert.NotEqual(t, a.LoadID, b.LoadID)
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("prefer-cache")
	require.NoError(t, err)
	assert.Equal(t, PreferCache, p)

	p, err = ParsePolicy("")
	require.NoError(t, err)
	assert.Equal(t, PreferFresh, p)
	assert.Equal(t, "prefer-fresh", p.String())

	_, err = ParsePolicy("sometimes")
	assert.Error(t, err)
}

func TestLoadWithPolicyOverridesOnce(t *testing.T) {
	fresh := loadFixture(t)
	src := &stubSource{doc: fresh}
	cache := &memCache{doc: &api.FeedDocument{}}
	l := NewLoader(src, cache, PreferCache, nil, nil)

	res, err := l.LoadWithPolicy(context.Background(), "http://feed", PreferFresh)
	require.NoError(t, err)
	assert.Equal(t, OriginNetwork, res.Origin)
	assert.Zero(t, cache.reads)

	res, err = l.Load(context.Background(), "http://feed")
	require.NoError(t, err)
	assert.Equal(t, OriginCache, res.Origin)
}
