package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
	"github.com/redis/go-redis/v9"
)

var _ repository.SessionRepository = (*SessionStore)(nil)

// SessionStore sesiones activas en Redis: session:<sid> -> user_id con el TTL del token.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore conecta a Redis a partir de una URL redis:// y verifica con PING.
func NewSessionStore(ctx context.Context, redisURL string) (*SessionStore, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse Redis URL: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("conectar a Redis: %w", err)
	}
	return NewSessionStoreWithClient(client), nil
}

// NewSessionStoreWithClient usa un cliente ya construido (sin PING).
func NewSessionStoreWithClient(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Close cierra el cliente.
func (s *SessionStore) Close() error {
	return s.client.Close()
}

func sessionKey(sessionID string) string {
	return "session:" + sessionID
}

// Store registra la sesión con vencimiento.
func (s *SessionStore) Store(ctx context.Context, sessionID, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, sessionKey(sessionID), userID, ttl).Err(); err != nil {
		return fmt.Errorf("guardar sesión: %w", err)
	}
	return nil
}

// Exists indica si la sesión sigue registrada.
func (s *SessionStore) Exists(ctx context.Context, sessionID string) (bool, error) {
	n, err := s.client.Exists(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		return false, fmt.Errorf("consultar sesión: %w", err)
	}
	return n == 1, nil
}

// Delete revoca la sesión.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("borrar sesión: %w", err)
	}
	return nil
}
