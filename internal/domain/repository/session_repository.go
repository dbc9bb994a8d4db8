package repository

import (
	"context"
	"time"
)

// SessionRepository almacén de sesiones activas (revocación de tokens en logout).
type SessionRepository interface {
	Store(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	// Exists indica si la sesión sigue vigente.
	Exists(ctx context.Context, sessionID string) (bool, error)
	Delete(ctx context.Context, sessionID string) error
}
