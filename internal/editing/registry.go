package editing

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Registry keeps one Store per visitor session for as long as the session
// lives.  Load never fails for an unknown session; it returns a fresh store.
type Registry interface {
	Load(ctx context.Context, sid string) (*Store, error)
	Save(ctx context.Context, sid string, s *Store) error
}

type memoryEntry struct {
	store    *Store
	lastSeen time.Time
}

// MemoryRegistry keeps stores in process memory.  Entries idle for longer
// than ttl are dropped by Sweep.
type MemoryRegistry struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]*memoryEntry
}

// NewMemoryRegistry returns a registry whose entries expire after ttl of
// inactivity.
func NewMemoryRegistry(ttl time.Duration) *MemoryRegistry {
	return &MemoryRegistry{ttl: ttl, now: time.Now, entries: make(map[string]*memoryEntry)}
}

// Load returns the live store for sid, creating it on first use.
func (r *MemoryRegistry) Load(_ context.Context, sid string) (*Store, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[sid]
	if !ok || r.expired(e) {
		e = &memoryEntry{store: NewStore()}
		r.entries[sid] = e
	}
	e.lastSeen = r.now()
	return e.store, nil
}

// Save refreshes the entry.  The store is shared by pointer, so there is no
// copy to write.
func (r *MemoryRegistry) Save(_ context.Context, sid string, s *Store) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[sid] = &memoryEntry{store: s, lastSeen: r.now()}
	return nil
}

// Sweep drops expired entries and reports how many were removed.
func (r *MemoryRegistry) Sweep() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for sid, e := range r.entries {
		if r.expired(e) {
			delete(r.entries, sid)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (r *MemoryRegistry) Run(ctx context.Context, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			r.Sweep()
		}
	}
}

func (r *MemoryRegistry) expired(e *memoryEntry) bool {
	return r.ttl > 0 && r.now().Sub(e.lastSeen) > r.ttl
}

// RedisRegistry stores a JSON snapshot of each session's store under
// "<prefix>:<sid>" with a sliding TTL.
type RedisRegistry struct {
	rdb    *redis.Client
	prefix string
	ttl    time.Duration
}

// NewRedisRegistry builds a registry on rdb.
func NewRedisRegistry(rdb *redis.Client, prefix string, ttl time.Duration) *RedisRegistry {
	if prefix == "" {
		prefix = "edit"
	}
	return &RedisRegistry{rdb: rdb, prefix: prefix, ttl: ttl}
}

func (r *RedisRegistry) key(sid string) string { return r.prefix + ":" + sid }

// Load decodes the snapshot for sid and pushes its expiry out by the TTL,
// so a session that only reads keeps its overrides.  A missing key yields
// an empty store.
func (r *RedisRegistry) Load(ctx context.Context, sid string) (*Store, error) {
	s := NewStore()
	var cmd *redis.StringCmd
	if r.ttl > 0 {
		cmd = r.rdb.GetEx(ctx, r.key(sid), r.ttl)
	} else {
		cmd = r.rdb.Get(ctx, r.key(sid))
	}
	bs, err := cmd.Bytes()
	if errors.Is(err, redis.Nil) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	var snap Snapshot
	if err := json.Unmarshal(bs, &snap); err != nil {
		return nil, err
	}
	s.Restore(snap)
	return s, nil
}

// Save writes the full snapshot, overwriting any previous one.
func (r *RedisRegistry) Save(ctx context.Context, sid string, s *Store) error {
	bs, err := json.Marshal(s.Snapshot())
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, r.key(sid), bs, r.ttl).Err()
}
