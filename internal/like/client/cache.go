package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tair/article-likes/internal/like/domain"
	"github.com/tair/article-likes/pkg/logger"
)

// DefaultCacheTTL is used when a non-positive TTL is configured
const DefaultCacheTTL = 5 * time.Minute

// Only found entities are cached, so a newly created article or user is
// never hidden behind a cached miss. Redis failures fall through to the
// remote service.

// lookupCache is the shared read-through logic for both finders
type lookupCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func newLookupCache(rdb *redis.Client, ttl time.Duration) lookupCache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return lookupCache{rdb: rdb, ttl: ttl}
}

func (c lookupCache) load(ctx context.Context, key string, dest interface{}) bool {
	if c.rdb == nil {
		return false
	}
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false
	}
	if err != nil {
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Lookup cache read failed")
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Discarding corrupt cache entry")
		return false
	}
	return true
}

func (c lookupCache) store(ctx context.Context, key string, v interface{}) {
	if c.rdb == nil {
		return
	}
	b, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, b, c.ttl).Err(); err != nil {
		logger.Warn(ctx).Err(err).Str("cache_key", key).Msg("Lookup cache write failed")
	}
}

func articleKey(id uint) string { return fmt.Sprintf("likes:article:%d", id) }
func userKey(id uint) string    { return fmt.Sprintf("likes:user:%d", id) }

// CachedArticleFinder fronts an ArticleFinder with Redis
type CachedArticleFinder struct {
	next  domain.ArticleFinder
	cache lookupCache
}

// NewCachedArticleFinder wraps next. A nil client disables caching.
func NewCachedArticleFinder(next domain.ArticleFinder, rdb *redis.Client, ttl time.Duration) *CachedArticleFinder {
	return &CachedArticleFinder{next: next, cache: newLookupCache(rdb, ttl)}
}

func (f *CachedArticleFinder) FindArticle(ctx context.Context, id uint) (*domain.Article, error) {
	var cached domain.Article
	if f.cache.load(ctx, articleKey(id), &cached) {
		return &cached, nil
	}

	article, err := f.next.FindArticle(ctx, id)
	if err != nil || article == nil {
		return article, err
	}
	f.cache.store(ctx, articleKey(id), article)
	return article, nil
}

// CachedUserFinder fronts a UserFinder with Redis
type CachedUserFinder struct {
	next  domain.UserFinder
	cache lookupCache
}

// NewCachedUserFinder wraps next. A nil client disables caching.
func NewCachedUserFinder(next domain.UserFinder, rdb *redis.Client, ttl time.Duration) *CachedUserFinder {
	return &CachedUserFinder{next: next, cache: newLookupCache(rdb, ttl)}
}

func (f *CachedUserFinder) FindUser(ctx context.Context, id uint) (*domain.User, error) {
	var cached domain.User
	if f.cache.load(ctx, userKey(id), &cached) {
		return &cached, nil
	}

	user, err := f.next.FindUser(ctx, id)
	if err != nil || user == nil {
		return user, err
	}
	f.cache.store(ctx, userKey(id), user)
	return user, nil
}
