package client

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tair/article-likes/internal/like/liketest"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return mr, rdb
}

func TestCachedArticleFinder_HitAfterFirstLookup(t *testing.T) {
	mr, rdb := newTestRedis(t)
	articles := liketest.NewArticles(1)
	finder := NewCachedArticleFinder(articles, rdb, time.Minute)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		article, err := finder.FindArticle(ctx, 1)
		require.NoError(t, err)
		require.NotNil(t, article)
		assert.Equal(t, uint(1), article.ID)
	}
	assert.Equal(t, 1, articles.Calls)
	assert.True(t, mr.Exists(articleKey(1)))
	assert.Equal(t, time.Minute, mr.TTL(articleKey(1)))
}

func TestCachedArticleFinder_MissesAreNotCached(t *testing.T) {
	mr, rdb := newTestRedis(t)
	articles := liketest.NewArticles()
	finder := NewCachedArticleFinder(articles, rdb, time.Minute)
	ctx := context.Background()

	article, err := finder.FindArticle(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, article)
	assert.False(t, mr.Exists(articleKey(7)))

	articles.Items = liketest.NewArticles(7).Items
	article, err = finder.FindArticle(ctx, 7)
	require.NoError(t, err)
	assert.NotNil(t, article)
	assert.Equal(t, 2, articles.Calls)
}

func TestCachedUserFinder_ErrorsAreNotCached(t *testing.T) {
	mr, rdb := newTestRedis(t)
	users := liketest.NewUsers(5)
	users.Err = errors.New("user service down")
	finder := NewCachedUserFinder(users, rdb, 0)

	_, err := finder.FindUser(context.Background(), 5)
	assert.ErrorIs(t, err, users.Err)
	assert.False(t, mr.Exists(userKey(5)))
}

func TestCachedUserFinder_DefaultTTL(t *testing.T) {
	mr, rdb := newTestRedis(t)
	finder := NewCachedUserFinder(liketest.NewUsers(5), rdb, 0)

	_, err := finder.FindUser(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, DefaultCacheTTL, mr.TTL(userKey(5)))
}

func TestCachedUserFinder_RedisDownFallsThrough(t *testing.T) {
	mr, rdb := newTestRedis(t)
	users := liketest.NewUsers(5)
	finder := NewCachedUserFinder(users, rdb, time.Minute)
	mr.Close()

	user, err := finder.FindUser(context.Background(), 5)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.Equal(t, 1, users.Calls)
}

func TestCachedFinders_NilClientPassesThrough(t *testing.T) {
	users := liketest.NewUsers(5)
	finder := NewCachedUserFinder(users, nil, time.Minute)
	ctx := context.Background()

	_, err := finder.FindUser(ctx, 5)
	require.NoError(t, err)
	_, err = finder.FindUser(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, 2, users.Calls)
}

func TestCachedUserFinder_CorruptEntryRefetches(t *testing.T) {
	mr, rdb := newTestRedis(t)
	users := liketest.NewUsers(5)
	require.NoError(t, mr.Set(userKey(5), "{broken"))

	user, err := NewCachedUserFinder(users, rdb, time.Minute).FindUser(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, uint(5), user.ID)
	assert.Equal(t, 1, users.Calls)
}
