package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	pkgerrors "github.com/rohandesai/brandline-backend/pkg/errors"
	"github.com/rohandesai/brandline-backend/pkg/redis"
)

// SnapshotStore persists one ledger per session. Every mutation rewrites the
// whole snapshot; concurrent writers are last-write-wins.
type SnapshotStore interface {
	Load(ctx context.Context, sessionID string) (*Ledger, error)
	Save(ctx context.Context, sessionID string, ledger *Ledger) error
	Delete(ctx context.Context, sessionID string) error
}

// RedisStore keeps ledgers as JSON snapshots in Redis with a sliding TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore builds a snapshot store over the shared Redis client.
func NewRedisStore(client *redis.Client, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("cart ttl must be positive")
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

// Load returns the session's ledger, or an empty one when no snapshot exists.
func (s *RedisStore) Load(ctx context.Context, sessionID string) (*Ledger, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(sessionID))
	if err != nil {
		if errors.Is(err, redis.ErrNotFound) {
			return NewLedger(), nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: load cart snapshot")
	}

	ledger := NewLedger()
	if err := json.Unmarshal([]byte(raw), ledger); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cart: decode snapshot")
	}
	if ledger.Lines == nil {
		ledger.Lines = []Line{}
	}
	return ledger, nil
}

// Save rewrites the session's snapshot and refreshes its TTL.
func (s *RedisStore) Save(ctx context.Context, sessionID string, ledger *Ledger) error {
	payload, err := json.Marshal(ledger)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "cart: encode snapshot")
	}
	if err := s.client.Set(ctx, s.client.CartKey(sessionID), payload, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: save cart snapshot")
	}
	return nil
}

// Delete drops the session's snapshot.
func (s *RedisStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.client.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "redis: delete cart snapshot")
	}
	return nil
}

// MemoryStore is an in-process SnapshotStore for tests and local runs.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string][]byte
}

// NewMemoryStore builds an empty in-process store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: map[string][]byte{}}
}

func (s *MemoryStore) Load(_ context.Context, sessionID string) (*Ledger, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.sessions[sessionID]
	if !ok {
		return NewLedger(), nil
	}
	ledger := NewLedger()
	if err := json.Unmarshal(raw, ledger); err != nil {
		return nil, err
	}
	return ledger, nil
}

func (s *MemoryStore) Save(_ context.Context, sessionID string, ledger *Ledger) error {
	payload, err := json.Marshal(ledger)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = payload
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
