package state

import (
	"sync"
	"time"
)

const (
	defaultSessionTTL  = 24 * time.Hour
	defaultSweepPeriod = 10 * time.Minute
	minimumSweepPeriod = time.Second
)

// StoreConfig is the envconfig surface for the session store.
type StoreConfig struct {
	// TTL evicts sessions idle for longer than this. 0 disables eviction and
	// restores pure process-lifetime sessions.
	TTL         time.Duration `envconfig:"TTL" split_words:"true" default:"24h"`
	SweepPeriod time.Duration `envconfig:"SWEEP_PERIOD" split_words:"true" default:"10m"`
}

// StoreOption customizes MemoryStore.
type StoreOption func(*MemoryStore)

func WithTTL(ttl time.Duration) StoreOption {
	return func(s *MemoryStore) {
		s.ttl = ttl
	}
}

func WithSweepPeriod(period time.Duration) StoreOption {
	return func(s *MemoryStore) {
		if period >= minimumSweepPeriod {
			s.sweepPeriod = period
		}
	}
}

func WithClock(now func() time.Time) StoreOption {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}

type sessionEntry struct {
	mu       sync.Mutex
	session  *Session
	lastSeen time.Time
}

// MemoryStore maps user ids to sessions, creating them lazily. Each entry
// carries its own mutex so turns for one user serialize while turns for
// different users run in parallel. Sessions idle past the TTL are evicted by
// a janitor goroutine; TTL 0 keeps them for the process lifetime.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*sessionEntry

	ttl         time.Duration
	sweepPeriod time.Duration
	now         func() time.Time

	done      chan struct{}
	closeOnce sync.Once
}

func NewMemoryStore(opts ...StoreOption) *MemoryStore {
	s := &MemoryStore{
		entries:     make(map[string]*sessionEntry),
		ttl:         defaultSessionTTL,
		sweepPeriod: defaultSweepPeriod,
		now:         time.Now,
		done:        make(chan struct{}),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.ttl > 0 {
		go s.janitor()
	}
	return s
}

// Acquire returns the session for userID, creating it on first contact, with
// that user's turn lock held. The caller must invoke release when the turn is
// done; release also refreshes the idle timestamp.
func (s *MemoryStore) Acquire(userID string) (*Session, func()) {
	now := s.now()

	s.mu.Lock()
	entry, ok := s.entries[userID]
	if !ok {
		entry = &sessionEntry{
			session:  NewSession(userID, now),
			lastSeen: now,
		}
		s.entries[userID] = entry
	}
	s.mu.Unlock()

	entry.mu.Lock()
	release := func() {
		entry.lastSeen = s.now()
		entry.mu.Unlock()
	}
	return entry.session, release
}

// Len reports how many sessions are currently held.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops the eviction janitor. The store remains usable afterwards.
func (s *MemoryStore) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}

func (s *MemoryStore) janitor() {
	ticker := time.NewTicker(s.sweepPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.evictIdle()
		}
	}
}

func (s *MemoryStore) evictIdle() {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()
	for id, entry := range s.entries {
		// TryLock skips sessions with a turn in flight; they are live by
		// definition and will refresh lastSeen on release.
		if !entry.mu.TryLock() {
			continue
		}
		idle := entry.lastSeen.Before(cutoff)
		entry.mu.Unlock()
		if idle {
			delete(s.entries, id)
		}
	}
}
