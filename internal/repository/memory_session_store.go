package repository

import (
	"context"
	"sync"

	"mcq-generator/internal/domain"
)

// MemorySessionStore keeps the last MCQ set per session in process memory
type MemorySessionStore struct {
	mu   sync.RWMutex
	sets map[string]*domain.MCQSet
}

// NewMemorySessionStore creates an empty store
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sets: make(map[string]*domain.MCQSet)}
}

// Save replaces the session's last set
func (s *MemorySessionStore) Save(ctx context.Context, set *domain.MCQSet) error {
	if set == nil || set.SessionID == "" {
		return &domain.ValidationError{Field: "session_id", Message: "session ID is required"}
	}
	stored := *set
	s.mu.Lock()
	s.sets[set.SessionID] = &stored
	s.mu.Unlock()
	return nil
}

// Latest returns a copy of the session's last set
func (s *MemorySessionStore) Latest(ctx context.Context, sessionID string) (*domain.MCQSet, error) {
	s.mu.RLock()
	set, ok := s.sets[sessionID]
	s.mu.RUnlock()
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	out := *set
	return &out, nil
}

// Delete evicts the session. Deleting an unknown session is not an error.
func (s *MemorySessionStore) Delete(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sets, sessionID)
	s.mu.Unlock()
	return nil
}

// Len reports the number of live sessions
func (s *MemorySessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sets)
}
