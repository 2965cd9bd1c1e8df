// Package memo is an explicit, optional cache of pipeline stage outputs keyed
// by input identity. Disabling it changes timing only, never results
package memo

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"sync"

	"telejoin/internal/core/version"

	"golang.org/x/sync/singleflight"
)

// Key identifies one stage input; build with KeyOf
type Key string

// KeyOf hashes parts into a Key. Parts are length prefixed so ("ab","c") and
// ("a","bc") differ, and the build version is always mixed in
func KeyOf(parts ...string) Key {
	h := sha256.New()
	var n [8]byte
	write := func(s string) {
		binary.BigEndian.PutUint64(n[:], uint64(len(s)))
		h.Write(n[:])
		h.Write([]byte(s))
	}
	write(version.Info().Version)
	for _, p := range parts {
		write(p)
	}
	return Key(hex.EncodeToString(h.Sum(nil)))
}

// Option configures a Cache
type Option func(*settings)

type settings struct {
	max      int
	disabled bool
}

// WithMax bounds the number of entries; the oldest entry goes first
// Zero or negative means unbounded
func WithMax(n int) Option { return func(s *settings) { s.max = n } }

// Disabled makes every Do call recompute
func Disabled() Option { return func(s *settings) { s.disabled = true } }

// Enabled toggles caching from a config flag
func Enabled(on bool) Option { return func(s *settings) { s.disabled = !on } }

// Cache maps Keys to prior outputs of one stage
// Concurrent misses for the same key share a single computation that runs
// detached from any one caller's cancellation; errors are returned to every
// waiter but never stored
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[Key]V
	order   []Key
	group   singleflight.Group
	cfg     settings

	hits, misses uint64
}

// New returns an empty cache
func New[V any](opts ...Option) *Cache[V] {
	c := &Cache[V]{entries: map[Key]V{}}
	for _, o := range opts {
		o(&c.cfg)
	}
	return c
}

// Do returns the cached value for key or computes, stores and returns it
func (c *Cache[V]) Do(ctx context.Context, key Key, fn func(context.Context) (V, error)) (V, error) {
	if c == nil || c.cfg.disabled {
		return fn(ctx)
	}
	if v, ok := c.Get(key); ok {
		return v, nil
	}
	if err := ctx.Err(); err != nil {
		var zero V
		return zero, err
	}

	// the computation is shared, so one waiter going away must not cancel it
	shared := context.WithoutCancel(ctx)
	res, err, _ := c.group.Do(string(key), func() (any, error) {
		// another caller may have stored it between Get and Do
		if v, ok := c.Get(key); ok {
			return v, nil
		}
		v, err := fn(shared)
		if err != nil {
			return v, err
		}
		c.put(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, err
	}
	return res.(V), nil
}

// Get looks key up without computing
func (c *Cache[V]) Get(key Key) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

func (c *Cache[V]) put(key Key, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; !ok {
		c.order = append(c.order, key)
	}
	c.entries[key] = v
	for c.cfg.max > 0 && len(c.order) > c.cfg.max {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.entries, oldest)
	}
}

// Purge drops every entry
func (c *Cache[V]) Purge() {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = map[Key]V{}
	c.order = nil
}

// Stats is a point-in-time view of a cache
type Stats struct {
	Entries  int    `json:"entries"`
	Hits     uint64 `json:"hits"`
	Misses   uint64 `json:"misses"`
	Disabled bool   `json:"disabled"`
}

// Stats reports size and lookup counters
func (c *Cache[V]) Stats() Stats {
	if c == nil {
		return Stats{Disabled: true}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{Entries: len(c.entries), Hits: c.hits, Misses: c.misses, Disabled: c.cfg.disabled}
}
