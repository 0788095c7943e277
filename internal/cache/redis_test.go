package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
	"github.com/actuallystonmai/movie-recommendation-service/internal/query"
)

type stubDiscoverer struct {
	calls int
	res   *domain.DiscoveryResult
	err   error
}

func (s *stubDiscoverer) Discover(ctx context.Context, q query.Query) (*domain.DiscoveryResult, error) {
	s.calls++
	return s.res, s.err
}

// unreachable points at a closed port so every cache call fails fast.
func unreachable(t *testing.T) *Cache {
	t.Helper()
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })
	return NewCache(client, time.Minute)
}

func newMiniCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewCache(client, time.Minute), mr
}

func spookyPage() *domain.DiscoveryResult {
	return &domain.DiscoveryResult{
		Page:         2,
		TotalPages:   7,
		TotalResults: 131,
		Results: []domain.MovieSummary{{
			ID:               694,
			Title:            "The Shining",
			OriginalLanguage: "en",
			ReleaseDate:      "1980-05-23",
			VoteAverage:      8.2,
			VoteCount:        17000,
			GenreIDs:         []domain.GenreID{27, 53},
		}},
	}
}

func TestBuildKey(t *testing.T) {
	a := query.Query{GenreIDs: []domain.GenreID{27, 53}, Page: 1}
	b := query.Query{GenreIDs: []domain.GenreID{27, 53}, Page: 1}
	c := a.WithPage(2)

	assert.Equal(t, buildKey(a), buildKey(b))
	assert.NotEqual(t, buildKey(a), buildKey(c))
	assert.Contains(t, buildKey(a), keyPrefix)
}

func TestNewCacheDefaultTTL(t *testing.T) {
	c := NewCache(nil, 0)
	assert.Equal(t, defaultTTL, c.ttl)
}

func TestGatewayFallsThroughWhenCacheDown(t *testing.T) {
	next := &stubDiscoverer{res: &domain.DiscoveryResult{Page: 1, TotalPages: 1, TotalResults: 1,
		Results: []domain.MovieSummary{{ID: 1, Title: "Alien"}}}}
	gw := NewGateway(next, unreachable(t))

	res, err := gw.Discover(context.Background(), query.Query{Page: 1})
	require.NoError(t, err)
	assert.Equal(t, "Alien", res.Results[0].Title)
	assert.Equal(t, 1, next.calls)
}

func TestGatewayPropagatesUpstreamError(t *testing.T) {
	upErr := &domain.UpstreamError{Status: 502, Cause: errors.New("bad gateway")}
	gw := NewGateway(&stubDiscoverer{err: upErr}, unreachable(t))

	_, err := gw.Discover(context.Background(), query.Query{Page: 1})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}

func TestGatewayServesRepeatQueryFromCache(t *testing.T) {
	c, mr := newMiniCache(t)
	next := &stubDiscoverer{res: spookyPage()}
	gw := NewGateway(next, c)
	q := query.Query{GenreIDs: []domain.GenreID{27, 53, 9648}, Page: 2}

	first, err := gw.Discover(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, next.calls)
	assert.True(t, mr.Exists(buildKey(q)))
	assert.Equal(t, time.Minute, mr.TTL(buildKey(q)))

	second, err := gw.Discover(context.Background(), q)
	require.NoError(t, err)
	assert.Equal(t, 1, next.calls, "second lookup must not reach the upstream")
	assert.Equal(t, first, second)

	_, err = gw.Discover(context.Background(), q.WithPage(3))
	require.NoError(t, err)
	assert.Equal(t, 2, next.calls)
}

func TestCacheGetMiss(t *testing.T) {
	c, _ := newMiniCache(t)

	res, err := c.Get(context.Background(), query.Query{Page: 1})
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestCacheGetCorruptEntry(t *testing.T) {
	c, mr := newMiniCache(t)
	q := query.Query{Page: 1}
	require.NoError(t, mr.Set(buildKey(q), "{not json"))

	_, err := c.Get(context.Background(), q)
	assert.Error(t, err)
}

func TestCacheClear(t *testing.T) {
	c, mr := newMiniCache(t)
	ctx := context.Background()
	require.NoError(t, mr.Set("session:1", "keep"))

	for page := 1; page <= 3; page++ {
		require.NoError(t, c.Set(ctx, query.Query{Page: page}, spookyPage()))
	}
	require.Len(t, mr.Keys(), 4)

	require.NoError(t, c.Clear(ctx))
	assert.Equal(t, []string{"session:1"}, mr.Keys())

	res, err := c.Get(ctx, query.Query{Page: 1})
	require.NoError(t, err)
	assert.Nil(t, res)
}
