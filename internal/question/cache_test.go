package question

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestCacheMissReturnsNil(t *testing.T) {
	_, client := newTestRedis(t)
	cache := NewCache(client, time.Minute)

	got, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheRoundTripAndExpiry(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewCache(client, time.Minute)

	require.NoError(t, cache.Set(context.Background(), testCategories))
	assert.True(t, mr.Exists(categoryCacheKey))
	assert.Equal(t, time.Minute, mr.TTL(categoryCacheKey))

	got, err := cache.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testCategories, got)

	mr.FastForward(2 * time.Minute)
	got, err = cache.Get(context.Background())
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheDefaultTTL(t *testing.T) {
	mr, client := newTestRedis(t)
	cache := NewCache(client, 0)

	require.NoError(t, cache.Set(context.Background(), testCategories))
	assert.Equal(t, defaultCacheTTL, mr.TTL(categoryCacheKey))
}

func TestCacheCorruptValue(t *testing.T) {
	mr, client := newTestRedis(t)
	require.NoError(t, mr.Set(categoryCacheKey, "{not json"))

	_, err := NewCache(client, time.Minute).Get(context.Background())
	assert.Error(t, err)
}

func TestServiceReadsThroughRedis(t *testing.T) {
	_, client := newTestRedis(t)
	store := new(mockStore)
	store.On("ListCategories", mock.Anything).Return(testCategories, nil).Once()

	svc := NewService(store, NewCache(client, time.Minute), ServiceOptions{}, zerolog.New(io.Discard))

	for i := 0; i < 3; i++ {
		got, err := svc.Categories(context.Background())
		require.NoError(t, err)
		assert.Equal(t, testCategories, got)
	}
	store.AssertNumberOfCalls(t, "ListCategories", 1)
}

func TestServiceSurvivesRedisOutage(t *testing.T) {
	mr, client := newTestRedis(t)
	svc := NewService(newMemStore(testCategories), NewCache(client, time.Minute), ServiceOptions{}, zerolog.New(io.Discard))

	mr.Close()
	got, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, testCategories, got)
}
