package impersonation

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store keeps flat string keys per session. Apply removes clear and then
// writes set as one step; readers never see both applied halfway.
type Store interface {
	Load(ctx context.Context, session string) (map[string]string, error)
	Apply(ctx context.Context, session string, clear []string, set map[string]string) error
}

type memoryEntry struct {
	values  map[string]string
	expires time.Time
}

// MemoryStore is a process-local Store. Sessions expire ttl after their last
// write; a zero ttl never expires.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]*memoryEntry
	ttl      time.Duration
	now      func() time.Time
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*memoryEntry), ttl: ttl, now: time.Now}
}

func (s *MemoryStore) Load(_ context.Context, session string) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.live(session)
	out := make(map[string]string)
	if e == nil {
		return out, nil
	}
	for k, v := range e.values {
		out[k] = v
	}
	return out, nil
}

func (s *MemoryStore) Apply(_ context.Context, session string, clear []string, set map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	e := s.live(session)
	if e == nil {
		e = &memoryEntry{values: make(map[string]string)}
		s.sessions[session] = e
	}
	for _, k := range clear {
		delete(e.values, k)
	}
	for k, v := range set {
		e.values[k] = v
	}
	if len(e.values) == 0 {
		delete(s.sessions, session)
		return nil
	}
	if s.ttl > 0 {
		e.expires = s.now().Add(s.ttl)
	}
	return nil
}

// live returns the session entry, dropping it when expired. Caller holds mu.
func (s *MemoryStore) live(session string) *memoryEntry {
	e, ok := s.sessions[session]
	if !ok {
		return nil
	}
	if !e.expires.IsZero() && !s.now().Before(e.expires) {
		delete(s.sessions, session)
		return nil
	}
	return e
}

// RedisStore keeps each session in a hash that expires ttl after the last
// write, so state survives restarts and is shared across instances.
type RedisStore struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

var _ Store = (*RedisStore)(nil)

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, prefix: "labtracker:impersonation:", ttl: ttl}
}

func (s *RedisStore) key(session string) string { return s.prefix + session }

func (s *RedisStore) Load(ctx context.Context, session string) (map[string]string, error) {
	return s.client.HGetAll(ctx, s.key(session)).Result()
}

func (s *RedisStore) Apply(ctx context.Context, session string, clear []string, set map[string]string) error {
	key := s.key(session)
	_, err := s.client.TxPipelined(ctx, func(p redis.Pipeliner) error {
		if len(clear) > 0 {
			p.HDel(ctx, key, clear...)
		}
		if len(set) > 0 {
			p.HSet(ctx, key, set)
			if s.ttl > 0 {
				p.Expire(ctx, key, s.ttl)
			}
		}
		return nil
	})
	return err
}
