package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
)

var _ repository.LeaveRequestRepository = (*LeaveRequestRepo)(nil)

const leaveColumns = `id, user_id, leave_type, start_date, end_date, reason, status,
	approved_by, approved_at, rejection_reason, created_at, updated_at`

// LeaveRequestRepo implementación del puerto LeaveRequestRepository sobre PostgreSQL.
type LeaveRequestRepo struct {
	q Querier
}

// NewLeaveRequestRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLeaveRequestRepository(q Querier) *LeaveRequestRepo {
	return &LeaveRequestRepo{q: q}
}

// Create persiste una solicitud nueva.
func (r *LeaveRequestRepo) Create(ctx context.Context, req *entity.LeaveRequest) error {
	query := `
		INSERT INTO leave_requests (` + leaveColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		req.ID, req.UserID, req.Type, req.StartDate, req.EndDate, req.Reason, req.Status,
		req.ApprovedBy, req.ApprovedAt, req.RejectionReason, req.CreatedAt, req.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert leave request: %w", err)
	}
	return nil
}

// FindByID obtiene una solicitud. (nil, nil) si no existe.
func (r *LeaveRequestRepo) FindByID(ctx context.Context, id string) (*entity.LeaveRequest, error) {
	req, err := scanLeave(r.q.QueryRow(ctx, `SELECT `+leaveColumns+` FROM leave_requests WHERE id = $1`, id))
	if err != nil {
		return nil, fmt.Errorf("get leave request: %w", err)
	}
	return req, nil
}

// FindByIDForUpdate bloquea la fila hasta el fin de la transacción (SELECT ... FOR UPDATE).
// Fuera de una transacción el bloqueo se libera al terminar la sentencia.
func (r *LeaveRequestRepo) FindByIDForUpdate(ctx context.Context, id string) (*entity.LeaveRequest, error) {
	req, err := scanLeave(r.q.QueryRow(ctx, `SELECT `+leaveColumns+` FROM leave_requests WHERE id = $1 FOR UPDATE`, id))
	if err != nil {
		return nil, fmt.Errorf("lock leave request: %w", err)
	}
	return req, nil
}

// UpdateDecision guarda estado, aprobador, fecha de aprobación y motivo de rechazo.
func (r *LeaveRequestRepo) UpdateDecision(ctx context.Context, req *entity.LeaveRequest) error {
	query := `
		UPDATE leave_requests
		SET status = $2, approved_by = $3, approved_at = $4, rejection_reason = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		req.ID, req.Status, req.ApprovedBy, req.ApprovedAt, req.RejectionReason, req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update leave request status: %w", err)
	}
	return nil
}

// Delete elimina una solicitud por ID.
func (r *LeaveRequestRepo) Delete(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete leave request: %w", err)
	}
	return nil
}

// ListByUser solicitudes de un usuario, más recientes primero.
func (r *LeaveRequestRepo) ListByUser(ctx context.Context, userID string) ([]*entity.LeaveRequest, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+leaveColumns+` FROM leave_requests WHERE user_id = $1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list leave requests by user: %w", err)
	}
	return collectLeaves(rows)
}

// ListAll todas las solicitudes, más recientes primero.
func (r *LeaveRequestRepo) ListAll(ctx context.Context) ([]*entity.LeaveRequest, error) {
	rows, err := r.q.Query(ctx, `SELECT `+leaveColumns+` FROM leave_requests ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list leave requests: %w", err)
	}
	return collectLeaves(rows)
}

// ListByStatus solicitudes en un estado, más recientes primero.
func (r *LeaveRequestRepo) ListByStatus(ctx context.Context, status string) ([]*entity.LeaveRequest, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+leaveColumns+` FROM leave_requests WHERE status = $1 ORDER BY created_at DESC`, status)
	if err != nil {
		return nil, fmt.Errorf("list leave requests by status: %w", err)
	}
	return collectLeaves(rows)
}

func scanLeave(row pgx.Row) (*entity.LeaveRequest, error) {
	var l entity.LeaveRequest
	err := row.Scan(
		&l.ID, &l.UserID, &l.Type, &l.StartDate, &l.EndDate, &l.Reason, &l.Status,
		&l.ApprovedBy, &l.ApprovedAt, &l.RejectionReason, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &l, nil
}

func collectLeaves(rows pgx.Rows) ([]*entity.LeaveRequest, error) {
	defer rows.Close()
	list := make([]*entity.LeaveRequest, 0)
	for rows.Next() {
		l, err := scanLeave(rows)
		if err != nil {
			return nil, fmt.Errorf("scan leave request: %w", err)
		}
		list = append(list, l)
	}
	return list, rows.Err()
}
