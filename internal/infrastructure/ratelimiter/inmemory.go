package ratelimiter

import (
	"context"
	"sync"
	"time"
)

// sweepEvery is the number of takes between two passes over expired buckets.
const sweepEvery = 1024

type memoryEntry struct {
	bucket    Bucket
	expiresAt time.Time
}

// InMemory keeps buckets in process. An expired bucket starts over full and
// expired buckets are swept lazily from Take.
type InMemory struct {
	mu      sync.Mutex
	buckets map[string]memoryEntry
	takes   int
}

func NewInMemory() *InMemory {
	return &InMemory{
		buckets: make(map[string]memoryEntry),
	}
}

func (m *InMemory) Take(_ context.Context, key string, now time.Time, rule Rule) (Decision, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	bucket := rule.full(now)
	if entry, ok := m.buckets[key]; ok && !m.expired(entry, now) {
		bucket = entry.bucket
	}

	bucket, decision := rule.take(bucket, now)
	entry := memoryEntry{bucket: bucket}
	if rule.TTL > 0 {
		entry.expiresAt = now.Add(rule.TTL)
	}
	m.buckets[key] = entry

	m.takes++
	if m.takes%sweepEvery == 0 {
		m.sweep(now)
	}
	return decision, nil
}

// Len reports the number of stored buckets, expired ones included.
func (m *InMemory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.buckets)
}

func (m *InMemory) Close() error {
	return nil
}

func (m *InMemory) sweep(now time.Time) {
	for key, entry := range m.buckets {
		if m.expired(entry, now) {
			delete(m.buckets, key)
		}
	}
}

func (m *InMemory) expired(entry memoryEntry, now time.Time) bool {
	return !entry.expiresAt.IsZero() && !now.Before(entry.expiresAt)
}
