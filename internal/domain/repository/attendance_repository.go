package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

// AttendanceFilter rango opcional e inclusivo de fechas calendario.
type AttendanceFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
}

// AttendanceRepository define el puerto de persistencia para AttendanceRecord.
type AttendanceRepository interface {
	// Create inserta la jornada de forma atómica. Si ya existe una para (user, date)
	// devuelve domain.ErrAlreadyClockedIn; el almacenamiento debe garantizar la unicidad.
	Create(ctx context.Context, record *entity.AttendanceRecord) error
	// FindByUserAndDate devuelve (nil, nil) si no hay jornada ese día.
	FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*entity.AttendanceRecord, error)
	// CloseOpen cierra la jornada solo si sigue abierta (clock_out IS NULL).
	// Devuelve false si otra escritura la cerró antes.
	CloseOpen(ctx context.Context, record *entity.AttendanceRecord) (bool, error)
	// ListByUser ordenado por fecha descendente.
	ListByUser(ctx context.Context, userID string, filter AttendanceFilter) ([]*entity.AttendanceRecord, error)
	// ListAll ordenado por fecha descendente.
	ListAll(ctx context.Context, filter AttendanceFilter) ([]*entity.AttendanceRecord, error)
}
