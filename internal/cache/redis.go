package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/actuallystonmai/movie-recommendation-service/internal/domain"
	"github.com/actuallystonmai/movie-recommendation-service/internal/logging"
	"github.com/actuallystonmai/movie-recommendation-service/internal/metrics"
	"github.com/actuallystonmai/movie-recommendation-service/internal/query"
)

const (
	defaultTTL = 10 * time.Minute
	keyPrefix  = "discover:"
)

// Discoverer fetches one page of discovery results.
type Discoverer interface {
	Discover(ctx context.Context, q query.Query) (*domain.DiscoveryResult, error)
}

type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCache(client *redis.Client, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &Cache{client: client, ttl: ttl}
}

func buildKey(q query.Query) string {
	return keyPrefix + strconv.FormatUint(xxhash.Sum64String(q.Encode()), 16)
}

// Get a discovery page from cache. A miss returns nil, nil.
func (c *Cache) Get(ctx context.Context, q query.Query) (*domain.DiscoveryResult, error) {
	key := buildKey(q)
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get discovery page from cache: %w", err)
	}

	var res domain.DiscoveryResult
	if err := json.Unmarshal(val, &res); err != nil {
		return nil, fmt.Errorf("unmarshal discovery page %s: %w", key, err)
	}
	return &res, nil
}

// Set stores a discovery page.
func (c *Cache) Set(ctx context.Context, q query.Query, res *domain.DiscoveryResult) error {
	val, err := json.Marshal(res)
	if err != nil {
		return fmt.Errorf("marshal discovery page: %w", err)
	}
	if err := c.client.Set(ctx, buildKey(q), val, c.ttl).Err(); err != nil {
		return fmt.Errorf("set discovery page in cache: %w", err)
	}
	return nil
}

// Clear removes every cached discovery page.
func (c *Cache) Clear(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, keyPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

// Gateway serves discovery pages from Redis and falls through to next on a
// miss. Cache failures are logged and never returned.
type Gateway struct {
	next  Discoverer
	cache *Cache
}

func NewGateway(next Discoverer, cache *Cache) *Gateway {
	return &Gateway{next: next, cache: cache}
}

func (g *Gateway) Discover(ctx context.Context, q query.Query) (*domain.DiscoveryResult, error) {
	cached, err := g.cache.Get(ctx, q)
	if err != nil {
		logging.Warn().Err(err).Msg("discovery cache get failed")
	}
	if cached != nil {
		metrics.DiscoveryCacheHits.Inc()
		return cached, nil
	}
	metrics.DiscoveryCacheMisses.Inc()

	res, err := g.next.Discover(ctx, q)
	if err != nil {
		return nil, err
	}

	if err := g.cache.Set(ctx, q, res); err != nil {
		logging.Warn().Err(err).Msg("discovery cache set failed")
	}
	return res, nil
}
