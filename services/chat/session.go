// File: services/chat/session.go
package chat

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"placemate/models"

	"github.com/go-redis/redis/v8"
)

const sessionPrefix = "chat:session:"

// SessionStore holds the accumulated slots of each conversation, keyed by
// session id. Get returns empty slots for an unseen id; sessions are created
// implicitly on first write. Eviction policy belongs to the implementation.
type SessionStore interface {
	Get(ctx context.Context, sessionID string) (models.Slots, error)
	Set(ctx context.Context, sessionID string, slots models.Slots) error
	Clear(ctx context.Context, sessionID string) error
}

// RedisSessionStore keeps session slots in Redis with a TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (models.Slots, error) {
	key := sessionPrefix + sessionID
	data, err := s.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return models.Slots{}, nil
	}
	if err != nil {
		return models.Slots{}, err
	}
	var slots models.Slots
	if err := json.Unmarshal([]byte(data), &slots); err != nil {
		return models.Slots{}, err
	}
	return slots, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, sessionID string, slots models.Slots) error {
	key := sessionPrefix + sessionID
	b, err := json.Marshal(slots)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, key, b, s.ttl).Err()
}

func (s *RedisSessionStore) Clear(ctx context.Context, sessionID string) error {
	key := sessionPrefix + sessionID
	return s.client.Del(ctx, key).Err()
}

// MemorySessionStore is a map-backed SessionStore for Redis-less deployments
// and tests. Keys are independent; turns on different sessions never block
// each other beyond the map lock.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]models.Slots
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]models.Slots)}
}

func (s *MemorySessionStore) Get(ctx context.Context, sessionID string) (models.Slots, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[sessionID], nil
}

func (s *MemorySessionStore) Set(ctx context.Context, sessionID string, slots models.Slots) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sessionID] = slots
	return nil
}

func (s *MemorySessionStore) Clear(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
	return nil
}
