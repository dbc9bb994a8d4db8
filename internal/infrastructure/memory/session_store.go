package memory

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionStore)(nil)

// SessionStore sesiones con TTL en memoria. Las entradas vencidas se descartan al leerlas.
type SessionStore struct {
	mu    sync.RWMutex
	items map[string]sessionEntry
	now   func() time.Time
}

type sessionEntry struct {
	userID    string
	expiresAt time.Time
}

// NewSessionStore construye el almacén.
func NewSessionStore() *SessionStore {
	return &SessionStore{items: make(map[string]sessionEntry), now: time.Now}
}

func (s *SessionStore) Store(_ context.Context, sessionID, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[sessionID] = sessionEntry{userID: userID, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *SessionStore) Exists(_ context.Context, sessionID string) (bool, error) {
	s.mu.RLock()
	e, ok := s.items[sessionID]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if s.now().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.items, sessionID)
		s.mu.Unlock()
		return false, nil
	}
	return true, nil
}

func (s *SessionStore) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, sessionID)
	return nil
}
