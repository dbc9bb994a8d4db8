package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
)

var _ repository.AttendanceRepository = (*AttendanceRepo)(nil)

const attendanceColumns = `id, user_id, date, clock_in, clock_out, total_hours, notes, created_at, updated_at`

// AttendanceRepo implementación del puerto AttendanceRepository sobre PostgreSQL.
type AttendanceRepo struct {
	q Querier
}

// NewAttendanceRepository construye el adaptador. Pasar pool o tx (Querier).
func NewAttendanceRepository(q Querier) *AttendanceRepo {
	return &AttendanceRepo{q: q}
}

// Create inserta la jornada. La unicidad (user_id, date) la garantiza el constraint
// attendance_user_date_key: dos entradas simultáneas no pueden pasar ambas.
func (r *AttendanceRepo) Create(ctx context.Context, rec *entity.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (` + attendanceColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		rec.ID, rec.UserID, rec.Date, rec.ClockIn, rec.ClockOut, rec.TotalHours, rec.Notes,
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyClockedIn
		}
		return fmt.Errorf("insert attendance record: %w", err)
	}
	return nil
}

// FindByUserAndDate obtiene la jornada de un usuario en una fecha. (nil, nil) si no existe.
func (r *AttendanceRepo) FindByUserAndDate(ctx context.Context, userID string, date time.Time) (*entity.AttendanceRecord, error) {
	rec, err := scanAttendance(r.q.QueryRow(ctx,
		`SELECT `+attendanceColumns+` FROM attendance_records WHERE user_id = $1 AND date = $2`, userID, date))
	if err != nil {
		return nil, fmt.Errorf("get attendance record: %w", err)
	}
	return rec, nil
}

// CloseOpen escribe salida, horas y notas con un UPDATE condicional: si la fila ya
// tenía clock_out no se toca y se devuelve false.
func (r *AttendanceRepo) CloseOpen(ctx context.Context, rec *entity.AttendanceRecord) (bool, error) {
	query := `
		UPDATE attendance_records
		SET clock_out = $2, total_hours = $3, notes = $4, updated_at = $5
		WHERE id = $1 AND clock_out IS NULL`
	cmd, err := r.q.Exec(ctx, query, rec.ID, rec.ClockOut, rec.TotalHours, rec.Notes, rec.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.ConstraintName == "attendance_clock_out_after_in" {
			return false, domain.ErrClockOutBeforeIn
		}
		return false, fmt.Errorf("close attendance record: %w", err)
	}
	return cmd.RowsAffected() == 1, nil
}

// ListByUser lista las jornadas de un usuario, fecha descendente.
func (r *AttendanceRepo) ListByUser(ctx context.Context, userID string, filter repository.AttendanceFilter) ([]*entity.AttendanceRecord, error) {
	where, args := attendanceWhere(filter, []string{"user_id = $1"}, []any{userID})
	rows, err := r.q.Query(ctx,
		`SELECT `+attendanceColumns+` FROM attendance_records`+where+` ORDER BY date DESC, clock_in DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list attendance by user: %w", err)
	}
	return collectAttendance(rows)
}

// ListAll lista las jornadas de todos los usuarios, fecha descendente.
func (r *AttendanceRepo) ListAll(ctx context.Context, filter repository.AttendanceFilter) ([]*entity.AttendanceRecord, error) {
	where, args := attendanceWhere(filter, nil, nil)
	rows, err := r.q.Query(ctx,
		`SELECT `+attendanceColumns+` FROM attendance_records`+where+` ORDER BY date DESC, clock_in DESC`, args...)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return collectAttendance(rows)
}

func attendanceWhere(filter repository.AttendanceFilter, conds []string, args []any) (string, []any) {
	if filter.StartDate != nil {
		args = append(args, *filter.StartDate)
		conds = append(conds, fmt.Sprintf("date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, *filter.EndDate)
		conds = append(conds, fmt.Sprintf("date <= $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanAttendance(row pgx.Row) (*entity.AttendanceRecord, error) {
	var rec entity.AttendanceRecord
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Date, &rec.ClockIn, &rec.ClockOut, &rec.TotalHours, &rec.Notes,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func collectAttendance(rows pgx.Rows) ([]*entity.AttendanceRecord, error) {
	defer rows.Close()
	list := make([]*entity.AttendanceRecord, 0)
	for rows.Next() {
		rec, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance record: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}
