package storage

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/redis/go-redis/v9"
)

const maxTxRetries = 5

// RedisStore persists values as JSON strings in Redis. Multi-key updates use
// WATCH/MULTI and are retried when a watched key changes underneath.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a Redis-backed store. A positive ttl is applied to
// every write; zero keeps values forever.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func (r *RedisStore) Load(ctx context.Context, key string, dst any) (bool, error) {
	return load(ctx, r.client, key, dst)
}

func (r *RedisStore) Save(ctx context.Context, key string, value any) error {
	data, err := encode(key, value)
	if err != nil {
		return err
	}
	if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (r *RedisStore) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

func (r *RedisStore) Update(ctx context.Context, keys []string, fn func(ctx context.Context, tx KV) error) error {
	txf := func(tx *redis.Tx) error {
		staged := &redisTx{tx: tx, keys: keys, writes: make(map[string][]byte, len(keys))}
		if err := fn(ctx, staged); err != nil {
			return err
		}
		if len(staged.writes) == 0 {
			return nil
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for k, v := range staged.writes {
				pipe.Set(ctx, k, v, r.ttl)
			}
			return nil
		})
		return err
	}

	for attempt := 0; attempt < maxTxRetries; attempt++ {
		err := r.client.Watch(ctx, txf, keys...)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
	}
	return fmt.Errorf("redis update %v: %w", keys, redis.TxFailedErr)
}

func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

func load(ctx context.Context, c getter, key string, dst any) (bool, error) {
	data, err := c.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, fmt.Errorf("redis get %q: %w", key, err)
	}
	return true, decode(key, data, dst)
}

type redisTx struct {
	tx     *redis.Tx
	keys   []string
	writes map[string][]byte
}

func (t *redisTx) Load(ctx context.Context, key string, dst any) (bool, error) {
	if !slices.Contains(t.keys, key) {
		return false, fmt.Errorf("key %q not declared in update", key)
	}
	if data, ok := t.writes[key]; ok {
		return true, decode(key, data, dst)
	}
	return load(ctx, t.tx, key, dst)
}

func (t *redisTx) Save(_ context.Context, key string, value any) error {
	if !slices.Contains(t.keys, key) {
		return fmt.Errorf("key %q not declared in update", key)
	}
	data, err := encode(key, value)
	if err != nil {
		return err
	}
	t.writes[key] = data
	return nil
}
