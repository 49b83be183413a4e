package repo

import (
	"context"
	"sync"
)

// Memory is a process local cache for tests and single shot runs
type Memory struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemory returns an empty in memory cache
func NewMemory() *Memory { return &Memory{m: make(map[string]string)} }

// Migrate is a no op
func (r *Memory) Migrate(context.Context) error { return nil }

// Get reads a value
func (r *Memory) Get(_ context.Context, key string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.m[key]
	return v, ok, nil
}

// Set stores a value
func (r *Memory) Set(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.m[key] = value
	return nil
}

// Stats reports entries and key plus value bytes
func (r *Memory) Stats(context.Context) (Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s := Stats{Entries: int64(len(r.m))}
	for k, v := range r.m {
		s.Bytes += int64(len(k) + len(v))
	}
	return s, nil
}

// Purge drops every entry
func (r *Memory) Purge(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.m))
	clear(r.m)
	return n, nil
}

// Close is a no op
func (r *Memory) Close() error { return nil }
