package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-redis/redis/v8"
)

// SlotCachePrefix is the prefix used for Redis available-slot keys.
const SlotCachePrefix = "slots:"

// SlotCache memoises AvailableSlots results per (user, date).
//
// Every (user, date) carries a version that Invalidate bumps. A fill reads the
// version before loading the profile and Set only stores when the version is
// unchanged, so a list computed before a booking never outlives it.
type SlotCache interface {
	// Get reports ok=false on a miss.
	Get(ctx context.Context, userID, date string) (slots []string, ok bool, err error)
	Version(ctx context.Context, userID, date string) (int64, error)
	// Set is a no-op when the entry was invalidated after version was read.
	Set(ctx context.Context, userID, date string, version int64, slots []string) error
	Invalidate(ctx context.Context, userID string, dates ...string) error
}

func slotCacheKey(userID, date string) string {
	return fmt.Sprintf("%s%s:%s", SlotCachePrefix, userID, date)
}

func slotVersionKey(userID, date string) string {
	return slotCacheKey(userID, date) + ":v"
}

type redisSlotCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSlotCache returns a SlotCache backed by client.
func NewRedisSlotCache(client *redis.Client, ttl time.Duration) SlotCache {
	return &redisSlotCache{client: client, ttl: ttl}
}

func (c *redisSlotCache) Get(ctx context.Context, userID, date string) ([]string, bool, error) {
	raw, err := c.client.Get(ctx, slotCacheKey(userID, date)).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, errors.Wrap(err, "slot cache get")
	}

	var slots []string
	if err := json.Unmarshal(raw, &slots); err != nil {
		return nil, false, errors.Wrap(err, "slot cache decode")
	}
	return slots, true, nil
}

type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func readVersion(ctx context.Context, cmd stringGetter, key string) (int64, error) {
	v, err := cmd.Get(ctx, key).Int64()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "slot cache version")
	}
	return v, nil
}

func (c *redisSlotCache) Version(ctx context.Context, userID, date string) (int64, error) {
	return readVersion(ctx, c.client, slotVersionKey(userID, date))
}

func (c *redisSlotCache) Set(ctx context.Context, userID, date string, version int64, slots []string) error {
	raw, err := json.Marshal(slots)
	if err != nil {
		return errors.Wrap(err, "slot cache encode")
	}

	versionKey := slotVersionKey(userID, date)
	err = c.client.Watch(ctx, func(tx *redis.Tx) error {
		current, err := readVersion(ctx, tx, versionKey)
		if err != nil {
			return err
		}
		if current != version {
			return redis.TxFailedErr
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, slotCacheKey(userID, date), raw, c.ttl)
			return nil
		})
		return err
	}, versionKey)

	// A concurrent invalidation won; the computed list is stale.
	if err == redis.TxFailedErr {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "slot cache set")
	}
	return nil
}

func (c *redisSlotCache) Invalidate(ctx context.Context, userID string, dates ...string) error {
	if len(dates) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, d := range dates {
			versionKey := slotVersionKey(userID, d)
			pipe.Incr(ctx, versionKey)
			// Versions must outlive any entry filled under them.
			if c.ttl > 0 {
				pipe.Expire(ctx, versionKey, 2*c.ttl)
			}
			pipe.Del(ctx, slotCacheKey(userID, d))
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "slot cache invalidate")
	}
	return nil
}

// noopSlotCache is used when Redis is not configured.
type noopSlotCache struct{}

func NewNoopSlotCache() SlotCache { return noopSlotCache{} }

func (noopSlotCache) Get(context.Context, string, string) ([]string, bool, error) {
	return nil, false, nil
}

func (noopSlotCache) Version(context.Context, string, string) (int64, error) { return 0, nil }

func (noopSlotCache) Set(context.Context, string, string, int64, []string) error { return nil }

func (noopSlotCache) Invalidate(context.Context, string, ...string) error { return nil }
