// Package attendance implementa el registro de jornadas: una por usuario y día calendario,
// con la máquina de estados NotClockedIn → ClockedIn → ClockedOut (terminal).
package attendance

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
	"github.com/jhoicas/Asistencia-api/pkg/clock"
	"github.com/jhoicas/Asistencia-api/pkg/logger"
)

// UseCase casos de uso de asistencia.
type UseCase struct {
	users   repository.UserRepository
	records repository.AttendanceRepository
	clock   clock.Clock
	metrics Metrics
	log     *logger.Logger
}

// NewUseCase construye el caso de uso. metrics puede ser nil.
func NewUseCase(
	users repository.UserRepository,
	records repository.AttendanceRepository,
	clk clock.Clock,
	metrics Metrics,
	log *logger.Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &UseCase{users: users, records: records, clock: clk, metrics: metrics, log: log.Component("attendance")}
}

// ClockIn abre la jornada de hoy. Falla con ErrUserNotFound, ErrUserInactive o ErrAlreadyClockedIn.
// La unicidad la decide el almacenamiento en una sola inserción (sin leer antes).
func (uc *UseCase) ClockIn(ctx context.Context, userID string, notes *string) (*dto.AttendanceResponse, error) {
	user, err := uc.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !user.IsActive() {
		return nil, domain.ErrUserInactive
	}

	now := uc.clock.Now()
	rec := &entity.AttendanceRecord{
		ID:        entity.NewID(),
		UserID:    user.ID,
		Date:      uc.dateOf(now),
		ClockIn:   now,
		Notes:     normalizeNotes(notes),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.records.Create(ctx, rec); err != nil {
		if errors.Is(err, domain.ErrAlreadyClockedIn) {
			uc.log.Debug().Str("user_id", user.ID).Msg("clock-in duplicado")
			return nil, err
		}
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("clock-in")
		return nil, err
	}

	uc.metrics.ClockEvent("clock_in")
	uc.log.Info().Str("user_id", user.ID).Str("record_id", rec.ID).Time("clock_in", now).Msg("clock-in registrado")
	return toAttendanceResponse(rec), nil
}

// ClockOut cierra la jornada de hoy y calcula las horas trabajadas una sola vez.
// notes nil (o en blanco) conserva las notas de la entrada.
func (uc *UseCase) ClockOut(ctx context.Context, userID string, notes *string) (*dto.AttendanceResponse, error) {
	user, err := uc.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	rec, err := uc.records.FindByUserAndDate(ctx, user.ID, uc.dateOf(now))
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNoClockInToday
	}
	if rec.HasClockedOut() {
		return nil, domain.ErrAlreadyClockedOut
	}
	if !now.After(rec.ClockIn) {
		return nil, domain.ErrClockOutBeforeIn
	}

	rec.Close(now, normalizeNotes(notes))
	closed, err := uc.records.CloseOpen(ctx, rec)
	if err != nil {
		if !errors.Is(err, domain.ErrClockOutBeforeIn) {
			uc.log.Error().Err(err).Str("user_id", user.ID).Msg("clock-out")
		}
		return nil, err
	}
	if !closed {
		// Otra petición cerró la jornada entre la lectura y el UPDATE condicional.
		return nil, domain.ErrAlreadyClockedOut
	}

	uc.metrics.ClockEvent("clock_out")
	uc.log.Info().Str("user_id", user.ID).Str("record_id", rec.ID).Float64("total_hours", *rec.TotalHours).Msg("clock-out registrado")
	return toAttendanceResponse(rec), nil
}

// GetTodayStatus estado de la jornada de hoy. Solo lectura.
func (uc *UseCase) GetTodayStatus(ctx context.Context, userID string) (*dto.TodayStatusResponse, error) {
	user, err := uc.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	rec, err := uc.records.FindByUserAndDate(ctx, user.ID, uc.dateOf(uc.clock.Now()))
	if err != nil {
		return nil, err
	}
	out := &dto.TodayStatusResponse{}
	if rec != nil {
		out.HasClockedIn = true
		out.HasClockedOut = rec.HasClockedOut()
		out.CurrentRecord = toAttendanceResponse(rec)
	}
	return out, nil
}

// GetUserAttendance jornadas de un usuario, fecha descendente, con rango inclusivo opcional.
// Una lista vacía no es error.
func (uc *UseCase) GetUserAttendance(ctx context.Context, userID string, start, end *time.Time) ([]dto.AttendanceResponse, error) {
	filter, err := newFilter(start, end)
	if err != nil {
		return nil, err
	}
	user, err := uc.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	list, err := uc.records.ListByUser(ctx, user.ID, filter)
	if err != nil {
		return nil, err
	}
	return toAttendanceList(list), nil
}

// GetAllAttendance jornadas de todos los usuarios, fecha descendente. El control de rol
// (solo admin) lo hace la capa HTTP.
func (uc *UseCase) GetAllAttendance(ctx context.Context, start, end *time.Time) ([]dto.AttendanceResponse, error) {
	filter, err := newFilter(start, end)
	if err != nil {
		return nil, err
	}
	list, err := uc.records.ListAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return toAttendanceList(list), nil
}

// dateOf día calendario de t en la zona horaria de la organización.
func (uc *UseCase) dateOf(t time.Time) time.Time {
	return clock.DateOf(t.In(uc.clock.Location()))
}

func (uc *UseCase) requireUser(ctx context.Context, userID string) (*entity.User, error) {
	if !entity.ValidID(userID) {
		return nil, domain.ErrUserNotFound
	}
	user, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func newFilter(start, end *time.Time) (repository.AttendanceFilter, error) {
	if start != nil && end != nil && start.After(*end) {
		return repository.AttendanceFilter{}, domain.ErrInvalidDateRange
	}
	return repository.AttendanceFilter{StartDate: start, EndDate: end}, nil
}

func normalizeNotes(notes *string) *string {
	if notes == nil {
		return nil
	}
	n := strings.TrimSpace(*notes)
	if n == "" {
		return nil
	}
	return &n
}

func toAttendanceList(list []*entity.AttendanceRecord) []dto.AttendanceResponse {
	items := make([]dto.AttendanceResponse, 0, len(list))
	for _, r := range list {
		items = append(items, *toAttendanceResponse(r))
	}
	return items
}

func toAttendanceResponse(r *entity.AttendanceRecord) *dto.AttendanceResponse {
	if r == nil {
		return nil
	}
	return &dto.AttendanceResponse{
		ID:         r.ID,
		UserID:     r.UserID,
		Date:       r.Date.Format(clock.DateLayout),
		ClockIn:    r.ClockIn,
		ClockOut:   r.ClockOut,
		TotalHours: r.TotalHours,
		Notes:      r.Notes,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
