package session

import (
	"context"
	"sync"
	"time"

	"pulse-core-targeting-api/internal/ports"
)

type memoryEntry struct {
	companyID string
	expiresAt time.Time
}

// MemoryStore is an in-process session store. It backs tests and local runs
// without a Redis instance.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

// NewMemoryStore creates a new in-memory session store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]memoryEntry)}
}

var _ ports.SessionStore = (*MemoryStore)(nil)

func (s *MemoryStore) Get(_ context.Context, sessionID string) (string, error) {
	s.mu.RLock()
	entry, ok := s.entries[sessionID]
	s.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return "", nil
	}
	return entry.companyID, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID, companyID string, ttl time.Duration) error {
	s.mu.Lock()
	s.entries[sessionID] = memoryEntry{companyID: companyID, expiresAt: time.Now().Add(ttl)}
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.entries, sessionID)
	s.mu.Unlock()
	return nil
}
