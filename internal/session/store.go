// Package session implements the server-side half of admin sessions: a
// record mapping a random session id to the authenticated administrator,
// expiring 24 hours after last use. The cookie only references a record
// here, so deleting the record logs the admin out everywhere.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNoSession is returned when a session id is unknown or has expired.
var ErrNoSession = errors.New("no such session")

// Store persists session records. Touch implements the rolling expiry: it
// resets the TTL on every authenticated request.
type Store interface {
	// Create registers sid for the given admin with the given lifetime.
	Create(ctx context.Context, sid string, adminID int64, ttl time.Duration) error
	// Touch returns the admin bound to sid and resets its TTL.
	Touch(ctx context.Context, sid string, ttl time.Duration) (int64, error)
	// Delete removes sid. Deleting an unknown sid is not an error.
	Delete(ctx context.Context, sid string) error
}

// ---- Redis-backed store ----

const redisKeyPrefix = "session:"

// RedisStore keeps session records in Redis with native TTLs, so expiry
// needs no sweeper and survives process restarts.
type RedisStore struct{ rdb *redis.Client }

func NewRedisStore(rdb *redis.Client) *RedisStore { return &RedisStore{rdb: rdb} }

func (s *RedisStore) Create(ctx context.Context, sid string, adminID int64, ttl time.Duration) error {
	return s.rdb.Set(ctx, redisKeyPrefix+sid, adminID, ttl).Err()
}

func (s *RedisStore) Touch(ctx context.Context, sid string, ttl time.Duration) (int64, error) {
	// GETEX reads the record and resets the TTL in one round trip.
	id, err := s.rdb.GetEx(ctx, redisKeyPrefix+sid, ttl).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNoSession
	}
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (s *RedisStore) Delete(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, redisKeyPrefix+sid).Err()
}

// ---- In-memory store ----

type memoryRecord struct {
	adminID int64
	expires time.Time
}

// MemoryStore is the in-process fallback used when Redis is unavailable,
// and the store of choice in tests. Expired records are dropped lazily on
// access; with a single admin account the map stays tiny.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryRecord
	now      func() time.Time // overridable in tests
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]memoryRecord), now: time.Now}
}

func (s *MemoryStore) Create(_ context.Context, sid string, adminID int64, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sid] = memoryRecord{adminID: adminID, expires: s.now().Add(ttl)}
	return nil
}

func (s *MemoryStore) Touch(_ context.Context, sid string, ttl time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.sessions[sid]
	if !ok {
		return 0, ErrNoSession
	}
	if s.now().After(rec.expires) {
		delete(s.sessions, sid)
		return 0, ErrNoSession
	}
	rec.expires = s.now().Add(ttl)
	s.sessions[sid] = rec
	return rec.adminID, nil
}

func (s *MemoryStore) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sid)
	return nil
}
