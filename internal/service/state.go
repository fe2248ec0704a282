package service

import (
	"sync"

	"aibot/internal/domain"
)

// StateStore tracks which flow, if any, each user's next text belongs to
type StateStore interface {
	SetAwaiting(userID int64, flag domain.AwaitingFlag)
	IsAwaiting(userID int64, flag domain.AwaitingFlag) bool
	Awaiting(userID int64) (domain.AwaitingFlag, bool)
	Clear(userID int64)
}

// MemoryStateStore is a process-local StateStore. State is lost on restart.
type MemoryStateStore struct {
	mu     sync.RWMutex
	states map[int64]domain.AwaitingFlag
}

// NewMemoryStateStore creates an empty store
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{states: make(map[int64]domain.AwaitingFlag)}
}

// SetAwaiting replaces any flag held for userID
func (s *MemoryStateStore) SetAwaiting(userID int64, flag domain.AwaitingFlag) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[userID] = flag
}

// IsAwaiting reports whether flag is the one held for userID.
// It does not clear anything.
func (s *MemoryStateStore) IsAwaiting(userID int64, flag domain.AwaitingFlag) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	current, ok := s.states[userID]
	return ok && current == flag
}

// Awaiting returns the flag held for userID
func (s *MemoryStateStore) Awaiting(userID int64) (domain.AwaitingFlag, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	flag, ok := s.states[userID]
	return flag, ok
}

// Clear drops any flag held for userID
func (s *MemoryStateStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
}
