package memstore

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/visionscan/backend/internal/domain"
)

// SessionStore is a thread-safe in-memory scan session repository.
type SessionStore struct {
	mutex    sync.RWMutex
	sessions map[string]domain.ScanSession
}

// NewSessionStore creates an empty session store
func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]domain.ScanSession),
	}
}

// Create starts a new active session
func (s *SessionStore) Create(ctx context.Context) (*domain.ScanSession, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()
	session := domain.ScanSession{
		ID:        uuid.NewString(),
		Status:    domain.SessionActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions[session.ID] = session
	return &session, nil
}

// GetByID returns the session with the given id
func (s *SessionStore) GetByID(ctx context.Context, id string) (*domain.ScanSession, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil, domain.ErrSessionNotFound
	}
	return &session, nil
}

// SetStatus transitions the session to the given status
func (s *SessionStore) SetStatus(ctx context.Context, id, status string) (*domain.ScanSession, error) {
	if !domain.ValidSessionStatus(status) {
		return nil, fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, status)
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	session, exists := s.sessions[id]
	if !exists {
		return nil, domain.ErrSessionNotFound
	}
	session.Status = status
	session.UpdatedAt = time.Now()
	s.sessions[id] = session
	return &session, nil
}
