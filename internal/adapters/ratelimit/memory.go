// Package ratelimit provides the process-local rate limiter implementation.
package ratelimit

import (
	"hash/fnv"
	"sync"
	"time"
)

// Default limiter settings: 10 mutating calls per identity per minute.
const (
	DefaultLimit  = 10
	DefaultWindow = time.Minute
)

// shardCount spreads keys over independent locks so unrelated callers
// never contend with each other.
const shardCount = 16

// entry tracks one caller's usage inside the current window.
type entry struct {
	count   int
	resetAt time.Time
}

// shard holds one lock's worth of counters.
type shard struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// MemoryLimiter is an in-memory windowed counter keyed by caller identity.
// Keys are hashed onto a fixed set of shards, each with its own lock, so
// check-and-increment is atomic per key without a limiter-wide lock.
// State lives for the process lifetime only; restarts clear all counters,
// which is acceptable for abuse mitigation. Stale entries are overwritten on
// next use rather than evicted, so the maps grow with the number of distinct
// callers seen.
type MemoryLimiter struct {
	shards [shardCount]shard
	limit  int
	window time.Duration

	// now is overridable for tests.
	now func() time.Time
}

// New creates a limiter allowing limit calls per key within each window.
// Non-positive arguments fall back to the defaults.
func New(limit int, window time.Duration) *MemoryLimiter {
	if limit <= 0 {
		limit = DefaultLimit
	}

	if window <= 0 {
		window = DefaultWindow
	}

	l := &MemoryLimiter{
		limit:  limit,
		window: window,
		now:    time.Now,
	}

	for i := range l.shards {
		l.shards[i].entries = make(map[string]*entry)
	}

	return l
}

// shardFor picks the shard owning the key.
func (l *MemoryLimiter) shardFor(key string) *shard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))

	return &l.shards[h.Sum32()%shardCount]
}

// Allow reports whether the keyed caller may proceed.
// A fresh or expired window starts over with count 1; within a live window
// the call is counted only while under the limit, so denied calls consume
// no quota. Implements ports.RateLimiter.
func (l *MemoryLimiter) Allow(key string) bool {
	s := l.shardFor(key)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := l.now()

	e, ok := s.entries[key]
	if !ok || now.After(e.resetAt) {
		s.entries[key] = &entry{count: 1, resetAt: now.Add(l.window)}
		return true
	}

	if e.count < l.limit {
		e.count++
		return true
	}

	return false
}
