package repository

import (
	"context"
	"sync"
	"time"
)

const (
	DefaultMemoryCacheEntries = 10000
	memorySweepInterval       = 5 * time.Minute
)

type memoryEntry struct {
	value     string
	expiresAt time.Time
	seq       uint64
}

// MemoryCache is the in-process CacheRepository used when no redis address is
// configured, and in tests. Expired entries are swept periodically; once
// maxEntries is reached the oldest write is evicted. Call Stop to end the
// sweep goroutine.
type MemoryCache struct {
	mu         sync.RWMutex
	data       map[string]memoryEntry
	maxEntries int
	seq        uint64
	now        func() time.Time

	stopOnce  sync.Once
	stopSweep chan struct{}
	sweepDone chan struct{}
}

func NewMemoryCache() *MemoryCache {
	return NewBoundedMemoryCache(DefaultMemoryCacheEntries, memorySweepInterval)
}

// NewBoundedMemoryCache holds at most maxEntries keys (zero means unbounded)
// and drops expired ones every sweepInterval.
func NewBoundedMemoryCache(maxEntries int, sweepInterval time.Duration) *MemoryCache {
	m := &MemoryCache{
		data:       make(map[string]memoryEntry),
		maxEntries: maxEntries,
		now:        time.Now,
		stopSweep:  make(chan struct{}),
		sweepDone:  make(chan struct{}),
	}
	if sweepInterval <= 0 {
		sweepInterval = memorySweepInterval
	}
	go m.sweepLoop(sweepInterval)
	return m
}

func (m *MemoryCache) sweepLoop(interval time.Duration) {
	defer close(m.sweepDone)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweep()
		case <-m.stopSweep:
			return
		}
	}
}

func (m *MemoryCache) sweep() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropExpiredLocked()
}

func (m *MemoryCache) dropExpiredLocked() {
	now := m.now()
	for key, entry := range m.data {
		if !entry.expiresAt.IsZero() && now.After(entry.expiresAt) {
			delete(m.data, key)
		}
	}
}

func (m *MemoryCache) evictOldestLocked() {
	var (
		oldestKey string
		oldestSeq uint64
		found     bool
	)
	for key, entry := range m.data {
		if !found || entry.seq < oldestSeq {
			oldestKey, oldestSeq, found = key, entry.seq, true
		}
	}
	if found {
		delete(m.data, oldestKey)
	}
}

// Stop ends the sweep goroutine. Safe to call more than once.
func (m *MemoryCache) Stop() {
	m.stopOnce.Do(func() {
		close(m.stopSweep)
		<-m.sweepDone
	})
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	m.mu.RLock()
	entry, ok := m.data[key]
	m.mu.RUnlock()
	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		m.mu.Lock()
		delete(m.data, key)
		m.mu.Unlock()
		return "", false
	}
	return entry.value, true
}

// Set stores value; a zero ttl never expires.
func (m *MemoryCache) Set(_ context.Context, key string, value string, ttl time.Duration) error {
	entry := memoryEntry{value: value}
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.data[key]; !exists && m.maxEntries > 0 && len(m.data) >= m.maxEntries {
		m.dropExpiredLocked()
		if len(m.data) >= m.maxEntries {
			m.evictOldestLocked()
		}
	}
	m.seq++
	entry.seq = m.seq
	m.data[key] = entry
	return nil
}

func (m *MemoryCache) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}
