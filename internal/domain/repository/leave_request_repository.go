package repository

import (
	"context"

	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

// LeaveRequestRepository define el puerto de persistencia para LeaveRequest.
// Los listados se ordenan por created_at descendente.
type LeaveRequestRepository interface {
	Create(ctx context.Context, req *entity.LeaveRequest) error
	// FindByID devuelve (nil, nil) si no existe.
	FindByID(ctx context.Context, id string) (*entity.LeaveRequest, error)
	// FindByIDForUpdate igual que FindByID pero bloquea la fila dentro de una transacción.
	FindByIDForUpdate(ctx context.Context, id string) (*entity.LeaveRequest, error)
	UpdateDecision(ctx context.Context, req *entity.LeaveRequest) error
	Delete(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]*entity.LeaveRequest, error)
	ListAll(ctx context.Context) ([]*entity.LeaveRequest, error)
	ListByStatus(ctx context.Context, status string) ([]*entity.LeaveRequest, error)
}

// LeaveTxRunner ejecuta fn en una transacción con repos atados a ella.
// Si fn devuelve error se hace rollback.
type LeaveTxRunner interface {
	RunLeave(ctx context.Context, fn func(leaves LeaveRequestRepository, users UserRepository) error) error
}
