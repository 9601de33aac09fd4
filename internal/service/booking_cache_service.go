package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"borewell-booking/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

const (
	RedisBookingKeyPrefix = "booking:"

	// Timeout for individual Redis operations
	redisCacheTimeout = 2 * time.Second
)

// BookingCache is a read-through copy of single bookings. Misses and Redis
// errors both fall back to the store, so the cache never decides an outcome.
//
// Entries are versioned by UpdatedAt: Set only replaces an entry holding an
// older version, so a slow reader can never put back a booking that a later
// status update has already replaced.
type BookingCache interface {
	Get(ctx context.Context, id uuid.UUID) (*entity.Booking, bool)
	Set(ctx context.Context, booking *entity.Booking)
	Invalidate(ctx context.Context, id uuid.UUID)
}

// Each entry is a hash {v: UpdatedAt in µs, data: booking JSON}.
// KEYS[1] entry key; ARGV[1] version; ARGV[2] data; ARGV[3] ttl in ms.
var setIfNewerScript = redis.NewScript(`
local current = redis.call('HGET', KEYS[1], 'v')
if current and tonumber(current) >= tonumber(ARGV[1]) then
	return 0
end
redis.call('HSET', KEYS[1], 'v', ARGV[1], 'data', ARGV[2])
if tonumber(ARGV[3]) > 0 then
	redis.call('PEXPIRE', KEYS[1], ARGV[3])
end
return 1
`)

// NewBookingCache returns a no-op cache when redisClient is nil.
func NewBookingCache(redisClient *redis.Client, ttl time.Duration, log *logrus.Logger) BookingCache {
	if redisClient == nil {
		return noopBookingCache{}
	}
	return &redisBookingCache{
		redisClient: redisClient,
		ttl:         ttl,
		log:         log,
	}
}

type redisBookingCache struct {
	redisClient *redis.Client
	ttl         time.Duration
	log         *logrus.Logger
}

func bookingKey(id uuid.UUID) string {
	return RedisBookingKeyPrefix + id.String()
}

func (c *redisBookingCache) Get(ctx context.Context, id uuid.UUID) (*entity.Booking, bool) {
	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()

	raw, err := c.redisClient.HGet(ctx, bookingKey(id), "data").Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read booking %s from cache: %+v", id, err)
		}
		return nil, false
	}

	var booking entity.Booking
	if err := json.Unmarshal(raw, &booking); err != nil {
		c.log.Warnf("Dropping unreadable cache entry for booking %s: %+v", id, err)
		c.Invalidate(ctx, id)
		return nil, false
	}
	return &booking, true
}

func (c *redisBookingCache) Set(ctx context.Context, booking *entity.Booking) {
	raw, err := json.Marshal(booking)
	if err != nil {
		c.log.Warnf("Failed to encode booking %s for cache: %+v", booking.ID, err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()
	keys := []string{bookingKey(booking.ID)}
	version := booking.UpdatedAt.UnixMicro()
	if err := setIfNewerScript.Run(ctx, c.redisClient, keys, version, raw, c.ttl.Milliseconds()).Err(); err != nil {
		c.log.Warnf("Failed to cache booking %s: %+v", booking.ID, err)
	}
}

func (c *redisBookingCache) Invalidate(ctx context.Context, id uuid.UUID) {
	ctx, cancel := context.WithTimeout(ctx, redisCacheTimeout)
	defer cancel()
	if err := c.redisClient.Del(ctx, bookingKey(id)).Err(); err != nil {
		c.log.Warnf("Failed to invalidate cached booking %s: %+v", id, err)
	}
}

type noopBookingCache struct{}

func (noopBookingCache) Get(context.Context, uuid.UUID) (*entity.Booking, bool) { return nil, false }
func (noopBookingCache) Set(context.Context, *entity.Booking)                    {}
func (noopBookingCache) Invalidate(context.Context, uuid.UUID)                   {}
