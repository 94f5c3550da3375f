package store

import (
	"bytes"
	"context"
	"sync"
	"time"

	"github.com/hp-grievance/portal/internal/core/ports"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time // zero means no expiry
}

// MemoryKV is an in-process KeyValueStore. Values are copied on the way in
// and out. Expired entries are dropped lazily when touched.
type MemoryKV struct {
	mu   sync.Mutex
	data map[string]memoryEntry
	now  func() time.Time
}

func NewMemoryKV() *MemoryKV {
	return &MemoryKV{data: make(map[string]memoryEntry), now: time.Now}
}

// lookup must be called with mu held.
func (m *MemoryKV) lookup(key string) ([]byte, bool) {
	e, ok := m.data[key]
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && !m.now().Before(e.expiresAt) {
		delete(m.data, key)
		return nil, false
	}
	return e.value, true
}

func (m *MemoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.lookup(key)
	if !ok {
		return nil, ports.ErrKeyNotFound
	}
	return bytes.Clone(v), nil
}

func (m *MemoryKV) Set(ctx context.Context, key string, value []byte) error {
	return m.SetWithTTL(ctx, key, value, 0)
}

func (m *MemoryKV) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e := memoryEntry{value: bytes.Clone(value)}
	if ttl > 0 {
		e.expiresAt = m.now().Add(ttl)
	}
	m.data[key] = e
	return nil
}

func (m *MemoryKV) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryKV) CompareAndSwap(_ context.Context, key string, prev, next []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cur, ok := m.lookup(key)
	if prev == nil {
		if ok {
			return ports.ErrConflict
		}
	} else if !ok || !bytes.Equal(cur, prev) {
		return ports.ErrConflict
	}
	m.data[key] = memoryEntry{value: bytes.Clone(next)}
	return nil
}

func (m *MemoryKV) Ping(context.Context) error { return nil }
