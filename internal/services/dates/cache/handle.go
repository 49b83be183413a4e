package cache

import (
	"context"
	"sync"

	perr "datefmt/internal/platform/errors"
	"datefmt/internal/platform/logger"
	"datefmt/internal/services/dates/domain"
)

// Backend is a cache that can be released
type Backend interface {
	domain.Cache
	Close() error
}

// Opener builds the backend on first use
type Opener func(ctx context.Context) (Backend, error)

// Handle is the process wide cache, opened on first use and closed once
// a failed open is reported to that caller and attempted again on the next use
// Get and Set hold the read lock across the backend call; Close takes the
// write lock, so it waits for them
type Handle struct {
	mu      sync.RWMutex
	open    Opener
	backend Backend
	closed  bool
}

// NewHandle wraps an opener; nothing is opened until the first Get or Set
func NewHandle(open Opener) *Handle {
	if open == nil {
		panic("cache: NewHandle requires an opener")
	}
	return &Handle{open: open}
}

// ensure opens the backend under the write lock
func (h *Handle) ensure(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return perr.Unavailablef("format cache is closed")
	}
	if h.backend != nil {
		return nil
	}
	b, err := h.open(ctx)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "open format cache")
	}
	logger.C(ctx).Info().Msg("format cache opened")
	h.backend = b
	return nil
}

// with runs fn against the open backend while holding the read lock
func (h *Handle) with(ctx context.Context, fn func(Backend) error) error {
	h.mu.RLock()
	if h.backend == nil && !h.closed {
		h.mu.RUnlock()
		if err := h.ensure(ctx); err != nil {
			return err
		}
		h.mu.RLock()
	}
	defer h.mu.RUnlock()
	// Close may have won the race between ensure and RLock
	if h.closed || h.backend == nil {
		return perr.Unavailablef("format cache is closed")
	}
	return fn(h.backend)
}

// Get implements domain.Cache
func (h *Handle) Get(ctx context.Context, key string) (v string, ok bool, err error) {
	err = h.with(ctx, func(b Backend) error {
		var gerr error
		v, ok, gerr = b.Get(ctx, key)
		return gerr
	})
	return v, ok, err
}

// Set implements domain.Cache
func (h *Handle) Set(ctx context.Context, key, value string) error {
	return h.with(ctx, func(b Backend) error { return b.Set(ctx, key, value) })
}

// Opened reports whether the backend has been built
func (h *Handle) Opened() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.backend != nil
}

// Close releases the backend if it was opened; later calls fail as unavailable
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	if h.backend == nil {
		return nil
	}
	err := h.backend.Close()
	h.backend = nil
	return err
}
