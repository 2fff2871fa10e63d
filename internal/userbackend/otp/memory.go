package otp

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/freecontest/userbackend/internal/userbackend/domain"
	"github.com/freecontest/userbackend/pkg/cryptox"
)

type memoryEntry struct {
	key       string
	code      string
	bound     *string
	createdAt time.Time
}

// MemoryStore is an in-process Store. Entries are kept in creation order;
// expiry is checked lazily on Verify and on insert, and the oldest entry is
// evicted once Capacity is exceeded.
type MemoryStore struct {
	cfg Config

	mu      sync.Mutex
	order   *list.List // front is newest
	entries map[string]*list.Element
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore(cfg Config) *MemoryStore {
	return &MemoryStore{
		cfg:     cfg.withDefaults(),
		order:   list.New(),
		entries: make(map[string]*list.Element),
	}
}

func (s *MemoryStore) Create(_ context.Context, key string, bound *string) (string, error) {
	code, err := s.cfg.Generate()
	if err != nil {
		return "", err
	}

	var b *string
	if bound != nil {
		v := *bound
		b = &v
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.cfg.Now()
	if el, ok := s.entries[key]; ok {
		s.order.Remove(el)
	}
	s.entries[key] = s.order.PushFront(&memoryEntry{
		key:       key,
		code:      code,
		bound:     b,
		createdAt: now,
	})

	s.evictLocked(now)
	return code, nil
}

func (s *MemoryStore) Verify(_ context.Context, key string, bound *string, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	e := el.Value.(*memoryEntry)

	if s.expired(e, s.cfg.Now()) {
		s.removeLocked(el)
		return false, nil
	}

	// Evaluate both checks so the timing does not reveal which one failed.
	codeOK := cryptox.EqualString(e.code, code)
	boundOK := domain.SameUsername(e.bound, bound)
	if !codeOK || !boundOK {
		return false, nil
	}

	if s.cfg.SingleUse {
		s.removeLocked(el)
	}
	return true, nil
}

func (s *MemoryStore) Revoke(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.entries[key]
	if !ok {
		return false, nil
	}
	s.removeLocked(el)
	return true, nil
}

func (s *MemoryStore) Stats(_ context.Context) (Stats, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.evictLocked(s.cfg.Now())
	return Stats{
		Backend:  "memory",
		Entries:  s.order.Len(),
		Capacity: s.cfg.Capacity,
	}, nil
}

func (s *MemoryStore) Ping(context.Context) error { return nil }

func (s *MemoryStore) expired(e *memoryEntry, now time.Time) bool {
	return !now.Before(e.createdAt.Add(s.cfg.TTL))
}

// evictLocked drops expired entries and then the oldest entries beyond
// capacity. Both live at the back of the list.
func (s *MemoryStore) evictLocked(now time.Time) {
	for el := s.order.Back(); el != nil; el = s.order.Back() {
		if !s.expired(el.Value.(*memoryEntry), now) && s.order.Len() <= s.cfg.Capacity {
			return
		}
		s.removeLocked(el)
	}
}

func (s *MemoryStore) removeLocked(el *list.Element) {
	e := s.order.Remove(el).(*memoryEntry)
	delete(s.entries, e.key)
}
