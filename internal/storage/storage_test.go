package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/nobih83-prog/Nashwa01/pkg/errors"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

type backend struct {
	name    string
	store   Store
	setRaw  func(key, value string)
	rawKeys func() []string
}

func backends(t *testing.T) []backend {
	t.Helper()

	mem := NewMemoryStore()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return []backend{
		{
			name:   "memory",
			store:  mem,
			setRaw: func(k, v string) { mem.SetRaw(k, []byte(v)) },
		},
		{
			name:    "redis",
			store:   NewRedisStore(client, 0),
			setRaw:  func(k, v string) { require.NoError(t, mr.Set(k, v)) },
			rawKeys: mr.Keys,
		},
	}
}

func TestStore_SaveLoad(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()

			var got record
			found, err := b.store.Load(ctx, "missing", &got)
			require.NoError(t, err)
			assert.False(t, found)

			require.NoError(t, b.store.Save(ctx, "k", record{Name: "cart", Count: 2}))
			found, err = b.store.Load(ctx, "k", &got)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, record{Name: "cart", Count: 2}, got)

			require.NoError(t, b.store.Delete(ctx, "k"))
			found, err = b.store.Load(ctx, "k", &got)
			require.NoError(t, err)
			assert.False(t, found)

			assert.NoError(t, b.store.Ping(ctx))
		})
	}
}

func TestStore_CorruptRecord(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			b.setRaw("bad", "{{not-json")

			var got record
			found, err := b.store.Load(context.Background(), "bad", &got)
			assert.True(t, found)
			require.Error(t, err)
			assert.ErrorIs(t, err, apperrors.ErrCorruptRecord)
			assert.Contains(t, err.Error(), `"bad"`)
		})
	}
}

func TestStore_UpdateCommits(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, b.store.Save(ctx, "a", record{Count: 1}))

			err := b.store.Update(ctx, []string{"a", "b"}, func(ctx context.Context, tx KV) error {
				var a record
				if _, err := tx.Load(ctx, "a", &a); err != nil {
					return err
				}
				a.Count++
				if err := tx.Save(ctx, "a", a); err != nil {
					return err
				}
				// reads see staged writes
				var again record
				if _, err := tx.Load(ctx, "a", &again); err != nil {
					return err
				}
				return tx.Save(ctx, "b", record{Count: again.Count * 10})
			})
			require.NoError(t, err)

			var a, bRec record
			_, err = b.store.Load(ctx, "a", &a)
			require.NoError(t, err)
			_, err = b.store.Load(ctx, "b", &bRec)
			require.NoError(t, err)
			assert.Equal(t, 2, a.Count)
			assert.Equal(t, 20, bRec.Count)
		})
	}
}

func TestStore_UpdateRollsBackOnError(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			require.NoError(t, b.store.Save(ctx, "a", record{Count: 1}))
			boom := errors.New("boom")

			err := b.store.Update(ctx, []string{"a"}, func(ctx context.Context, tx KV) error {
				if err := tx.Save(ctx, "a", record{Count: 99}); err != nil {
					return err
				}
				return boom
			})
			assert.ErrorIs(t, err, boom)

			var a record
			_, err = b.store.Load(ctx, "a", &a)
			require.NoError(t, err)
			assert.Equal(t, 1, a.Count)
		})
	}
}

func TestStore_UpdateRejectsUndeclaredKey(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			err := b.store.Update(context.Background(), []string{"a"}, func(ctx context.Context, tx KV) error {
				return tx.Save(ctx, "other", record{})
			})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "not declared")
		})
	}
}

func TestNamespace(t *testing.T) {
	for _, b := range backends(t) {
		t.Run(b.name, func(t *testing.T) {
			ctx := context.Background()
			s1 := Namespace(b.store, "session:one:")
			s2 := Namespace(b.store, "session:two:")

			require.NoError(t, s1.Save(ctx, "nashwa_cart", record{Count: 1}))
			require.NoError(t, s2.Save(ctx, "nashwa_cart", record{Count: 2}))

			var got record
			found, err := b.store.Load(ctx, "session:one:nashwa_cart", &got)
			require.NoError(t, err)
			assert.True(t, found)
			assert.Equal(t, 1, got.Count)

			err = s2.Update(ctx, []string{"nashwa_cart"}, func(ctx context.Context, tx KV) error {
				return tx.Save(ctx, "nashwa_cart", record{Count: 3})
			})
			require.NoError(t, err)
			_, err = s2.Load(ctx, "nashwa_cart", &got)
			require.NoError(t, err)
			assert.Equal(t, 3, got.Count)

			if b.rawKeys != nil {
				assert.ElementsMatch(t, []string{"session:one:nashwa_cart", "session:two:nashwa_cart"}, b.rawKeys())
			}
		})
	}
}

func TestRedisStore_TTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	s := NewRedisStore(client, time.Hour)
	require.NoError(t, s.Save(context.Background(), "k", record{}))
	assert.Equal(t, time.Hour, mr.TTL("k"))

	mr.FastForward(2 * time.Hour)
	found, err := s.Load(context.Background(), "k", &record{})
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisStore_PingFailsWhenDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	mr.Close()

	assert.Error(t, NewRedisStore(client, 0).Ping(context.Background()))
}
