// Package leave implementa el flujo de solicitudes de ausencia:
// pending → approved | rejected (terminales), y borrado por el dueño mientras siga pending.
package leave

import (
	"context"
	"errors"
	"strings"

	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
	"github.com/jhoicas/Asistencia-api/pkg/clock"
	"github.com/jhoicas/Asistencia-api/pkg/logger"
)

// UseCase casos de uso de solicitudes de ausencia.
type UseCase struct {
	users   repository.UserRepository
	leaves  repository.LeaveRequestRepository
	tx      repository.LeaveTxRunner
	clock   clock.Clock
	metrics Metrics
	log     *logger.Logger
}

// NewUseCase construye el caso de uso. metrics puede ser nil.
func NewUseCase(
	users repository.UserRepository,
	leaves repository.LeaveRequestRepository,
	tx repository.LeaveTxRunner,
	clk clock.Clock,
	metrics Metrics,
	log *logger.Logger,
) *UseCase {
	if metrics == nil {
		metrics = noopMetrics{}
	}
	return &UseCase{users: users, leaves: leaves, tx: tx, clock: clk, metrics: metrics, log: log.Component("leave")}
}

// Create registra una solicitud pending del usuario.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateLeaveRequest) (*dto.LeaveRequestResponse, error) {
	leaveType := strings.ToLower(strings.TrimSpace(in.LeaveType))
	if !entity.ValidLeaveType(leaveType) {
		return nil, domain.ErrInvalidLeaveType
	}
	start, err := clock.ParseDate(strings.TrimSpace(in.StartDate))
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	end, err := clock.ParseDate(strings.TrimSpace(in.EndDate))
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	if start.After(end) {
		return nil, domain.ErrInvalidDateRange
	}
	user, err := uc.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := uc.clock.Now()
	req := &entity.LeaveRequest{
		ID:        entity.NewID(),
		UserID:    user.ID,
		Type:      leaveType,
		StartDate: start,
		EndDate:   end,
		Reason:    strings.TrimSpace(in.Reason),
		Status:    entity.LeavePending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.leaves.Create(ctx, req); err != nil {
		uc.log.Error().Err(err).Str("user_id", user.ID).Msg("crear solicitud")
		return nil, err
	}

	uc.metrics.LeaveEvent(entity.LeavePending)
	uc.log.Info().Str("user_id", user.ID).Str("leave_id", req.ID).Str("type", req.Type).
		Int("days", req.Days()).Msg("solicitud creada")
	return toLeaveResponse(req), nil
}

// UpdateStatus aprueba o rechaza una solicitud pending. Lectura con bloqueo, validación
// y escritura ocurren en la misma transacción; una segunda decisión sobre la misma
// solicitud falla con ErrLeaveAlreadyProcessed.
func (uc *UseCase) UpdateStatus(ctx context.Context, requestID, approverID string, in dto.UpdateLeaveStatusRequest) (*dto.LeaveRequestResponse, error) {
	status := strings.ToLower(strings.TrimSpace(in.Status))
	if status != entity.LeaveApproved && status != entity.LeaveRejected {
		return nil, domain.ErrInvalidLeaveStatus
	}
	if !entity.ValidID(requestID) {
		return nil, domain.ErrLeaveNotFound
	}

	var out *entity.LeaveRequest
	err := uc.tx.RunLeave(ctx, func(leaves repository.LeaveRequestRepository, users repository.UserRepository) error {
		req, err := leaves.FindByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil {
			return domain.ErrLeaveNotFound
		}
		var approver *entity.User
		if entity.ValidID(approverID) {
			if approver, err = users.FindByID(ctx, approverID); err != nil {
				return err
			}
		}
		if approver == nil {
			return domain.ErrApproverNotFound
		}
		if !approver.IsAdmin() {
			return domain.ErrApproverNotAdmin
		}
		if !req.IsPending() {
			return domain.ErrLeaveAlreadyProcessed
		}

		var reason *string
		if status == entity.LeaveRejected {
			reason = normalize(in.RejectionReason)
		}
		req.Decide(status, approver.ID, reason, uc.clock.Now())
		if err := leaves.UpdateDecision(ctx, req); err != nil {
			return err
		}
		out = req
		return nil
	})
	if err != nil {
		uc.logFailure(err, "decidir solicitud", requestID)
		return nil, err
	}

	uc.metrics.LeaveEvent(out.Status)
	uc.log.Info().Str("leave_id", out.ID).Str("status", out.Status).Str("approver_id", approverID).Msg("solicitud decidida")
	return toLeaveResponse(out), nil
}

// Get una solicitud por ID. El control de propiedad (dueño o admin) lo hace la capa HTTP.
func (uc *UseCase) Get(ctx context.Context, requestID string) (*dto.LeaveRequestResponse, error) {
	if !entity.ValidID(requestID) {
		return nil, domain.ErrLeaveNotFound
	}
	req, err := uc.leaves.FindByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if req == nil {
		return nil, domain.ErrLeaveNotFound
	}
	return toLeaveResponse(req), nil
}

// ListForUser solicitudes de un usuario existente, más recientes primero.
func (uc *UseCase) ListForUser(ctx context.Context, userID string) ([]dto.LeaveRequestResponse, error) {
	user, err := uc.requireUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	list, err := uc.leaves.ListByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return toLeaveList(list), nil
}

// ListAll todas las solicitudes (solo admin; lo controla la capa HTTP).
func (uc *UseCase) ListAll(ctx context.Context) ([]dto.LeaveRequestResponse, error) {
	list, err := uc.leaves.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return toLeaveList(list), nil
}

// ListPending solicitudes pendientes de decisión.
func (uc *UseCase) ListPending(ctx context.Context) ([]dto.LeaveRequestResponse, error) {
	list, err := uc.leaves.ListByStatus(ctx, entity.LeavePending)
	if err != nil {
		return nil, err
	}
	return toLeaveList(list), nil
}

// Delete elimina una solicitud pending del propio usuario. Inexistente y ajena
// devuelven el mismo error para no revelar solicitudes de otros.
func (uc *UseCase) Delete(ctx context.Context, requestID, userID string) error {
	if !entity.ValidID(requestID) {
		return domain.ErrLeaveNotOwned
	}
	err := uc.tx.RunLeave(ctx, func(leaves repository.LeaveRequestRepository, _ repository.UserRepository) error {
		req, err := leaves.FindByIDForUpdate(ctx, requestID)
		if err != nil {
			return err
		}
		if req == nil || req.UserID != userID {
			return domain.ErrLeaveNotOwned
		}
		if !req.IsPending() {
			return domain.ErrLeaveNotPending
		}
		return leaves.Delete(ctx, req.ID)
	})
	if err != nil {
		uc.logFailure(err, "borrar solicitud", requestID)
		return err
	}

	uc.metrics.LeaveEvent("deleted")
	uc.log.Info().Str("leave_id", requestID).Str("user_id", userID).Msg("solicitud eliminada")
	return nil
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

// logFailure los errores de dominio son respuestas esperadas; solo los de almacenamiento van a error.
func (uc *UseCase) logFailure(err error, op, requestID string) {
	var de *domain.Error
	if errors.As(err, &de) {
		uc.log.Debug().Err(err).Str("leave_id", requestID).Msg(op)
		return
	}
	uc.log.Error().Err(err).Str("leave_id", requestID).Msg(op)
}

func normalize(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}

func toLeaveList(list []*entity.LeaveRequest) []dto.LeaveRequestResponse {
	items := make([]dto.LeaveRequestResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLeaveResponse(l))
	}
	return items
}

func toLeaveResponse(l *entity.LeaveRequest) *dto.LeaveRequestResponse {
	return &dto.LeaveRequestResponse{
		ID:              l.ID,
		UserID:          l.UserID,
		LeaveType:       l.Type,
		StartDate:       l.StartDate.Format(clock.DateLayout),
		EndDate:         l.EndDate.Format(clock.DateLayout),
		Days:            l.Days(),
		Reason:          l.Reason,
		Status:          l.Status,
		ApprovedBy:      l.ApprovedBy,
		ApprovedAt:      l.ApprovedAt,
		RejectionReason: l.RejectionReason,
		CreatedAt:       l.CreatedAt,
		UpdatedAt:       l.UpdatedAt,
	}
}
