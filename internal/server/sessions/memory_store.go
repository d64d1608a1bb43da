package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/filekeeper/internal/common"
)

type memoryEntry struct {
	userID    string
	expiresAt time.Time
}

// MemoryStore is an in-process Store used in tests and single-node setups.
// Expired entries are evicted lazily on read, mirroring the Redis behaviour.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Open(ctx context.Context) error { return nil }
func (s *MemoryStore) Close() error                   { return nil }
func (s *MemoryStore) Ping(ctx context.Context) error { return nil }

func (s *MemoryStore) Create(ctx context.Context, userID string, ttl time.Duration) (string, error) {
	token, err := common.MakeRandHexString(tokenBytes)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[token] = memoryEntry{userID: userID, expiresAt: s.now().Add(ttl)}

	return token, nil
}

func (s *MemoryStore) Resolve(ctx context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[token]
	if !ok {
		return "", common.ErrorNotFound
	}
	if !s.now().Before(e.expiresAt) {
		delete(s.entries, token)
		return "", common.ErrorNotFound
	}
	return e.userID, nil
}

func (s *MemoryStore) Revoke(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, token)
	return nil
}
