package session

import (
	"context"
	"errors"
	"sync"
	"task-service/internal/entity"
	"time"
)

var ErrNotFound = errors.New("session not found")

// Store holds the authoritative session data keyed by session id.
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, id string) (*entity.SessionData, error)
	Set(ctx context.Context, id string, data entity.SessionData, ttl time.Duration) error
	Delete(ctx context.Context, id string) error
}

// sweepInterval bounds how often Set scans the map for expired sessions.
const sweepInterval = time.Minute

type memoryEntry struct {
	data      entity.SessionData
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryStore keeps sessions for the lifetime of the process.
// Expired sessions are dropped when read and swept out during Set.
type MemoryStore struct {
	mu        sync.RWMutex
	sessions  map[string]memoryEntry
	now       func() time.Time
	lastSweep time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		now:      time.Now,
	}
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*entity.SessionData, error) {
	s.mu.RLock()
	entry, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if now := s.now(); entry.expired(now) {
		s.mu.Lock()
		if current, ok := s.sessions[id]; ok && current.expired(now) {
			delete(s.sessions, id)
		}
		s.mu.Unlock()
		return nil, ErrNotFound
	}

	data := entry.data
	return &data, nil
}

// Set stores data under id. A ttl of zero keeps the session until it is deleted.
func (s *MemoryStore) Set(ctx context.Context, id string, data entity.SessionData, ttl time.Duration) error {
	now := s.now()
	entry := memoryEntry{data: data}
	if ttl > 0 {
		entry.expiresAt = now.Add(ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if now.Sub(s.lastSweep) >= sweepInterval {
		s.sweep(now)
	}
	s.sessions[id] = entry
	return nil
}

// sweep removes expired entries. The caller must hold the write lock.
func (s *MemoryStore) sweep(now time.Time) {
	for id, entry := range s.sessions {
		if entry.expired(now) {
			delete(s.sessions, id)
		}
	}
	s.lastSweep = now
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
	return nil
}
