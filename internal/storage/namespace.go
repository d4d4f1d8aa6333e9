package storage

import "context"

// Namespace returns a Store that prefixes every key with prefix.
func Namespace(s Store, prefix string) Store {
	return &namespaced{inner: s, prefix: prefix}
}

type namespaced struct {
	inner  Store
	prefix string
}

func (n *namespaced) Load(ctx context.Context, key string, dst any) (bool, error) {
	return n.inner.Load(ctx, n.prefix+key, dst)
}

func (n *namespaced) Save(ctx context.Context, key string, value any) error {
	return n.inner.Save(ctx, n.prefix+key, value)
}

func (n *namespaced) Delete(ctx context.Context, key string) error {
	return n.inner.Delete(ctx, n.prefix+key)
}

func (n *namespaced) Update(ctx context.Context, keys []string, fn func(ctx context.Context, tx KV) error) error {
	full := make([]string, len(keys))
	for i, k := range keys {
		full[i] = n.prefix + k
	}
	return n.inner.Update(ctx, full, func(ctx context.Context, tx KV) error {
		return fn(ctx, prefixedKV{kv: tx, prefix: n.prefix})
	})
}

func (n *namespaced) Ping(ctx context.Context) error {
	return n.inner.Ping(ctx)
}

type prefixedKV struct {
	kv     KV
	prefix string
}

func (p prefixedKV) Load(ctx context.Context, key string, dst any) (bool, error) {
	return p.kv.Load(ctx, p.prefix+key, dst)
}

func (p prefixedKV) Save(ctx context.Context, key string, value any) error {
	return p.kv.Save(ctx, p.prefix+key, value)
}
