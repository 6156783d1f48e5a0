package auth

import (
	"context"
	"sync"
	"time"
)

// MemorySessionRepository is the in-memory implementation of the session
// port for development and tests.
type MemorySessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]Session // keyed by session id
}

func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]Session)}
}

func (r *MemorySessionRepository) FindByToken(ctx context.Context, token string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, s := range r.sessions {
		if s.Token == token {
			s := s
			return &s, nil
		}
	}
	return nil, ErrSessionNotFound
}

func (r *MemorySessionRepository) FindByUserID(ctx context.Context, userID string) ([]*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var sessions []*Session
	for _, s := range r.sessions {
		if s.UserID == userID {
			s := s
			sessions = append(sessions, &s)
		}
	}
	return sessions, nil
}

func (r *MemorySessionRepository) Save(ctx context.Context, s *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[s.SessionID] = *s
	return nil
}

func (r *MemorySessionRepository) MarkAsUsed(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return ErrSessionNotFound
	}

	now := time.Now()
	s.UsedAt = &now
	r.sessions[sessionID] = s
	return nil
}

func (r *MemorySessionRepository) Delete(ctx context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}

	delete(r.sessions, sessionID)
	return nil
}

// Count reports the number of stored sessions.
func (r *MemorySessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
