package kvstore

import (
	"context"
	"errors"
	"sort"

	"github.com/redis/go-redis/v9"
)

// Redis adapts a go-redis client to the Store port.  It is the
// production backing for daily schedules and ticket scan marks.
type Redis struct {
	rdb *redis.Client
}

// NewRedis wraps an already-connected client.  The caller owns the
// client lifecycle.
func NewRedis(rdb *redis.Client) *Redis {
	return &Redis{rdb: rdb}
}

func (r *Redis) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return v, nil
}

func (r *Redis) Set(ctx context.Context, key string, value []byte) error {
	// Schedules have no natural expiry; they persist until overwritten.
	return r.rdb.Set(ctx, key, value, 0).Err()
}

func (r *Redis) Delete(ctx context.Context, key string) error {
	return r.rdb.Del(ctx, key).Err()
}

// Keys lists keys under prefix using SCAN so large keyspaces do not
// block the server the way KEYS would.
func (r *Redis) Keys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	iter := r.rdb.Scan(ctx, 0, prefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Strings(keys)
	return keys, nil
}
