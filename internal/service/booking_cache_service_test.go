package service

import (
	"context"
	"testing"
	"time"

	"borewell-booking/internal/domain/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T) (BookingCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewBookingCache(client, time.Minute, discardLogger()), mr
}

func TestBookingCacheRoundTrip(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	booking := sampleBooking()
	oldBore := 80
	booking.OldBoreFeet = &oldBore
	cache.Set(ctx, &booking)

	key := RedisBookingKeyPrefix + booking.ID.String()
	require.True(t, mr.Exists(key))
	assert.Equal(t, time.Minute, mr.TTL(key))

	got, ok := cache.Get(ctx, booking.ID)
	require.True(t, ok)
	assert.Equal(t, booking.ID, got.ID)
	assert.Equal(t, booking.Email, got.Email)
	require.NotNil(t, got.OldBoreFeet)
	assert.Equal(t, 80, *got.OldBoreFeet)
	assert.True(t, got.CreatedAt.Equal(booking.CreatedAt))

	cache.Invalidate(ctx, booking.ID)
	_, ok = cache.Get(ctx, booking.ID)
	assert.False(t, ok)
}

func TestBookingCacheMissAndCorruptEntry(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	_, ok := cache.Get(ctx, uuid.New())
	assert.False(t, ok)

	id := uuid.New()
	mr.HSet(RedisBookingKeyPrefix+id.String(), "v", "1", "data", "{not json")
	_, ok = cache.Get(ctx, id)
	assert.False(t, ok)
	assert.False(t, mr.Exists(RedisBookingKeyPrefix+id.String()))
}

func TestBookingCacheKeepsNewestVersion(t *testing.T) {
	cache, _ := newTestCache(t)
	ctx := context.Background()

	stale := sampleBooking()
	fresh := stale
	fresh.SetStatus(entity.BookingStatusCompleted, stale.UpdatedAt.Add(time.Second))

	// writes landing out of order: the older copy must not win
	cache.Set(ctx, &fresh)
	cache.Set(ctx, &stale)

	got, ok := cache.Get(ctx, stale.ID)
	require.True(t, ok)
	assert.Equal(t, entity.BookingStatusCompleted, got.Status)
	assert.True(t, got.UpdatedAt.Equal(fresh.UpdatedAt))

	// in order, the newer copy replaces the older one
	other := sampleBooking()
	cache.Set(ctx, &other)
	next := other
	next.SetStatus(entity.BookingStatusContacted, other.UpdatedAt.Add(time.Minute))
	cache.Set(ctx, &next)

	got, ok = cache.Get(ctx, other.ID)
	require.True(t, ok)
	assert.Equal(t, entity.BookingStatusContacted, got.Status)
}

func TestBookingCacheRedisDown(t *testing.T) {
	cache, mr := newTestCache(t)
	mr.Close()

	booking := sampleBooking()
	cache.Set(context.Background(), &booking)
	_, ok := cache.Get(context.Background(), booking.ID)
	assert.False(t, ok)
}

func TestNoopBookingCache(t *testing.T) {
	cache := NewBookingCache(nil, time.Minute, discardLogger())

	booking := sampleBooking()
	cache.Set(context.Background(), &booking)
	_, ok := cache.Get(context.Background(), booking.ID)
	assert.False(t, ok)
	cache.Invalidate(context.Background(), booking.ID)
}
