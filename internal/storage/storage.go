// Package storage persists JSON snapshots under string keys.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	apperrors "github.com/nobih83-prog/Nashwa01/pkg/errors"
)

// KV loads and saves JSON values under fixed keys.
type KV interface {
	// Load decodes the value stored under key into dst. It reports false,
	// leaving dst untouched, when the key is absent. A value that does not
	// decode is returned as an error wrapping apperrors.ErrCorruptRecord.
	Load(ctx context.Context, key string, dst any) (bool, error)

	// Save encodes value and stores it under key, replacing any previous value.
	Save(ctx context.Context, key string, value any) error
}

// Store is a KV with deletion, health checks and multi-key atomic updates.
type Store interface {
	KV

	Delete(ctx context.Context, key string) error

	// Update runs fn with a KV scoped to keys. Writes made through tx are
	// applied together when fn returns nil and discarded otherwise. fn may be
	// invoked more than once when a concurrent writer races the update.
	Update(ctx context.Context, keys []string, fn func(ctx context.Context, tx KV) error) error

	Ping(ctx context.Context) error
}

func encode(key string, value any) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("marshal %q: %w", key, err)
	}
	return data, nil
}

func decode(key string, data []byte, dst any) error {
	if err := json.Unmarshal(data, dst); err != nil {
		return apperrors.Corrupt(key, err)
	}
	return nil
}
