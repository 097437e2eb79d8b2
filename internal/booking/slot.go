package booking

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// SlotKey is the key of a visitor's confirmation.
func SlotKey(sid string) string { return "transactionData:" + sid }

// Slot persists the last confirmed form of a visitor.  Save overwrites the
// whole value.  Load returns nil and no error when the slot is empty.
type Slot interface {
	Load(ctx context.Context, sid string) (*Form, error)
	Save(ctx context.Context, sid string, f Form) error
	Clear(ctx context.Context, sid string) error
}

// RedisSlot keeps confirmations in Redis.  A zero TTL keeps them until
// cleared.
type RedisSlot struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewRedisSlot(rdb redis.Cmdable, ttl time.Duration) *RedisSlot {
	return &RedisSlot{rdb: rdb, ttl: ttl}
}

func (s *RedisSlot) Load(ctx context.Context, sid string) (*Form, error) {
	bs, err := s.rdb.Get(ctx, SlotKey(sid)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("booking: load slot: %w", err)
	}
	var f Form
	if err := json.Unmarshal(bs, &f); err != nil {
		return nil, fmt.Errorf("booking: decode slot: %w", err)
	}
	return &f, nil
}

func (s *RedisSlot) Save(ctx context.Context, sid string, f Form) error {
	bs, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, SlotKey(sid), bs, s.ttl).Err()
}

func (s *RedisSlot) Clear(ctx context.Context, sid string) error {
	return s.rdb.Del(ctx, SlotKey(sid)).Err()
}

// MemorySlot is the in-process Slot used when Redis is unavailable.  Values
// are stored encoded so callers never share a Form.
type MemorySlot struct {
	mu sync.Mutex
	m  map[string][]byte
}

func NewMemorySlot() *MemorySlot { return &MemorySlot{m: map[string][]byte{}} }

func (s *MemorySlot) Load(_ context.Context, sid string) (*Form, error) {
	s.mu.Lock()
	bs, ok := s.m[SlotKey(sid)]
	s.mu.Unlock()
	if !ok {
		return nil, nil
	}
	var f Form
	if err := json.Unmarshal(bs, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (s *MemorySlot) Save(_ context.Context, sid string, f Form) error {
	bs, err := json.Marshal(f)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.m[SlotKey(sid)] = bs
	s.mu.Unlock()
	return nil
}

func (s *MemorySlot) Clear(_ context.Context, sid string) error {
	s.mu.Lock()
	delete(s.m, SlotKey(sid))
	s.mu.Unlock()
	return nil
}
