package service

import (
	"context"
	"fmt"
	"time"

	"github.com/nobih83-prog/Nashwa01/internal/storage"
	apperrors "github.com/nobih83-prog/Nashwa01/pkg/errors"
)

// SessionKeyPrefix namespaces per-session keys in the shared store.
const SessionKeyPrefix = "session:"

// Sessions opens per-shopper engines over a shared store.
type Sessions struct {
	store storage.Store
	now   func() time.Time
}

// NewSessions creates a session opener over store.
func NewSessions(store storage.Store) *Sessions {
	return &Sessions{store: store, now: time.Now}
}

// Store returns the key-value view of one session.
func (s *Sessions) Store(sessionID string) storage.Store {
	return storage.Namespace(s.store, SessionKeyPrefix+sessionID+":")
}

// Open returns the rehydrated engine for sessionID.
func (s *Sessions) Open(ctx context.Context, sessionID string) (*Engine, error) {
	if sessionID == "" {
		return nil, apperrors.InvalidInput("session id is required")
	}
	e := NewEngine(s.Store(sessionID), WithClock(s.now))
	if err := e.Load(ctx); err != nil {
		return nil, fmt.Errorf("open session %s: %w", sessionID, err)
	}
	return e, nil
}
