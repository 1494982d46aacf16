package storage

import (
	"context"
	"sync"
)

// MemoryStore keeps entries in process memory.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Entry
	closed  bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Entry)}
}

func (s *MemoryStore) Get(ctx context.Context, key string) (Entry, error) {
	if err := ctx.Err(); err != nil {
		return Entry{}, Wrap("get", key, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return Entry{}, Wrap("get", key, errClosed)
	}
	e, ok := s.entries[key]
	if !ok {
		return Entry{}, ErrNotFound
	}
	// copy so callers can't mutate stored bytes
	return Entry{Value: append([]byte(nil), e.Value...), Version: e.Version}, nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte, expected int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, Wrap("set", key, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, Wrap("set", key, errClosed)
	}
	cur := s.entries[key]
	if cur.Version != expected {
		return 0, ErrStale
	}
	next := cur.Version + 1
	s.entries[key] = Entry{Value: append([]byte(nil), value...), Version: next}
	return next, nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
