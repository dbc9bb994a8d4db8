// Package memory implementa los puertos de persistencia en memoria del proceso.
// Se usa con APP_STORAGE=memory (demos locales) y en los tests de casos de uso y handlers.
// Las garantías de unicidad y de escritura condicional se respetan bajo un mutex.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
)

var (
	_ repository.UserRepository         = (*UserRepo)(nil)
	_ repository.AttendanceRepository   = (*AttendanceRepo)(nil)
	_ repository.LeaveRequestRepository = (*LeaveRequestRepo)(nil)
	_ repository.LeaveTxRunner          = (*Store)(nil)
)

// Store datos compartidos por los repos en memoria.
type Store struct {
	mu         sync.RWMutex
	txMu       sync.Mutex
	users      map[string]entity.User
	attendance map[string]entity.AttendanceRecord
	leaves     map[string]entity.LeaveRequest
	seq        int64 // desempate estable para created_at iguales
	leaveSeq   map[string]int64
}

// NewStore construye un almacén vacío.
func NewStore() *Store {
	return &Store{
		users:      make(map[string]entity.User),
		attendance: make(map[string]entity.AttendanceRecord),
		leaves:     make(map[string]entity.LeaveRequest),
		leaveSeq:   make(map[string]int64),
	}
}

// Users repo de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Attendance repo de jornadas.
func (s *Store) Attendance() *AttendanceRepo { return &AttendanceRepo{s: s} }

// Leaves repo de solicitudes.
func (s *Store) Leaves() *LeaveRequestRepo { return &LeaveRequestRepo{s: s} }

// RunLeave serializa las transacciones de solicitudes. Sin rollback: fn solo escribe
// después de validar, igual que el caso de uso hace con PostgreSQL.
func (s *Store) RunLeave(ctx context.Context, fn func(leaves repository.LeaveRequestRepository, users repository.UserRepository) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()
	return fn(s.Leaves(), s.Users())
}

// ── Usuarios ─────────────────────────────────────────────────────────────────

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.s.checkUserUnique(u); err != nil {
		return err
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) FindByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			u := u
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.ID]; !ok {
		return domain.ErrUserNotFound
	}
	if err := r.s.checkUserUnique(u); err != nil {
		return err
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) List(ctx context.Context, limit, offset int) ([]*entity.User, error) {
	r.s.mu.RLock()
	list := r.s.sortedUsers(func(a, b *entity.User) bool {
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID < b.ID
	})
	r.s.mu.RUnlock()
	if offset >= len(list) {
		return []*entity.User{}, nil
	}
	end := offset + limit
	if end > len(list) {
		end = len(list)
	}
	return list[offset:end], nil
}

func (r *UserRepo) ListAll(_ context.Context) ([]*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.sortedUsers(func(a, b *entity.User) bool {
		if a.FullName != b.FullName {
			return a.FullName < b.FullName
		}
		return a.ID < b.ID
	}), nil
}

func (s *Store) checkUserUnique(u *entity.User) error {
	for id, other := range s.users {
		if id == u.ID {
			continue
		}
		if strings.EqualFold(other.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
		if u.EmployeeID != nil && other.EmployeeID != nil && *u.EmployeeID == *other.EmployeeID {
			return domain.ErrEmployeeIDExists
		}
	}
	return nil
}

func (s *Store) sortedUsers(less func(a, b *entity.User) bool) []*entity.User {
	list := make([]*entity.User, 0, len(s.users))
	for _, u := range s.users {
		u := u
		list = append(list, &u)
	}
	sort.Slice(list, func(i, j int) bool { return less(list[i], list[j]) })
	return list
}

// ── Asistencia ───────────────────────────────────────────────────────────────

// AttendanceRepo jornadas en memoria.
type AttendanceRepo struct{ s *Store }

// Create comprueba e inserta bajo el mismo lock: equivalente al constraint único (user_id, date).
func (r *AttendanceRepo) Create(_ context.Context, rec *entity.AttendanceRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.attendance {
		if other.UserID == rec.UserID && other.Date.Equal(rec.Date) {
			return domain.ErrAlreadyClockedIn
		}
	}
	r.s.attendance[rec.ID] = *rec
	return nil
}

func (r *AttendanceRepo) FindByUserAndDate(_ context.Context, userID string, date time.Time) (*entity.AttendanceRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, rec := range r.s.attendance {
		if rec.UserID == userID && rec.Date.Equal(date) {
			rec := rec
			return &rec, nil
		}
	}
	return nil, nil
}

func (r *AttendanceRepo) CloseOpen(_ context.Context, rec *entity.AttendanceRecord) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.attendance[rec.ID]
	if !ok || cur.ClockOut != nil {
		return false, nil
	}
	if rec.ClockOut == nil || !rec.ClockOut.After(cur.ClockIn) {
		return false, domain.ErrClockOutBeforeIn
	}
	cur.ClockOut = rec.ClockOut
	cur.TotalHours = rec.TotalHours
	cur.Notes = rec.Notes
	cur.UpdatedAt = rec.UpdatedAt
	r.s.attendance[rec.ID] = cur
	return true, nil
}

func (r *AttendanceRepo) ListByUser(_ context.Context, userID string, f repository.AttendanceFilter) ([]*entity.AttendanceRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.filterAttendance(func(rec *entity.AttendanceRecord) bool {
		return rec.UserID == userID && inRange(rec.Date, f)
	}), nil
}

func (r *AttendanceRepo) ListAll(_ context.Context, f repository.AttendanceFilter) ([]*entity.AttendanceRecord, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.filterAttendance(func(rec *entity.AttendanceRecord) bool {
		return inRange(rec.Date, f)
	}), nil
}

func inRange(d time.Time, f repository.AttendanceFilter) bool {
	if f.StartDate != nil && d.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && d.After(*f.EndDate) {
		return false
	}
	return true
}

func (s *Store) filterAttendance(keep func(*entity.AttendanceRecord) bool) []*entity.AttendanceRecord {
	list := make([]*entity.AttendanceRecord, 0)
	for _, rec := range s.attendance {
		rec := rec
		if keep(&rec) {
			list = append(list, &rec)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].Date.Equal(list[j].Date) {
			return list[i].Date.After(list[j].Date)
		}
		return list[i].ClockIn.After(list[j].ClockIn)
	})
	return list
}

// ── Solicitudes de ausencia ──────────────────────────────────────────────────

// LeaveRequestRepo solicitudes en memoria.
type LeaveRequestRepo struct{ s *Store }

func (r *LeaveRequestRepo) Create(_ context.Context, req *entity.LeaveRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.seq++
	r.s.leaves[req.ID] = *req
	r.s.leaveSeq[req.ID] = r.s.seq
	return nil
}

func (r *LeaveRequestRepo) FindByID(_ context.Context, id string) (*entity.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	l, ok := r.s.leaves[id]
	if !ok {
		return nil, nil
	}
	return &l, nil
}

// FindByIDForUpdate el bloqueo lo da Store.RunLeave.
func (r *LeaveRequestRepo) FindByIDForUpdate(ctx context.Context, id string) (*entity.LeaveRequest, error) {
	return r.FindByID(ctx, id)
}

func (r *LeaveRequestRepo) UpdateDecision(_ context.Context, req *entity.LeaveRequest) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.leaves[req.ID]
	if !ok {
		return domain.ErrLeaveNotFound
	}
	cur.Status = req.Status
	cur.ApprovedBy = req.ApprovedBy
	cur.ApprovedAt = req.ApprovedAt
	cur.RejectionReason = req.RejectionReason
	cur.UpdatedAt = req.UpdatedAt
	r.s.leaves[req.ID] = cur
	return nil
}

func (r *LeaveRequestRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.leaves, id)
	delete(r.s.leaveSeq, id)
	return nil
}

func (r *LeaveRequestRepo) ListByUser(_ context.Context, userID string) ([]*entity.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.filterLeaves(func(l *entity.LeaveRequest) bool { return l.UserID == userID }), nil
}

func (r *LeaveRequestRepo) ListAll(_ context.Context) ([]*entity.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.filterLeaves(func(*entity.LeaveRequest) bool { return true }), nil
}

func (r *LeaveRequestRepo) ListByStatus(_ context.Context, status string) ([]*entity.LeaveRequest, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.s.filterLeaves(func(l *entity.LeaveRequest) bool { return l.Status == status }), nil
}

func (s *Store) filterLeaves(keep func(*entity.LeaveRequest) bool) []*entity.LeaveRequest {
	list := make([]*entity.LeaveRequest, 0)
	for _, l := range s.leaves {
		l := l
		if keep(&l) {
			list = append(list, &l)
		}
	}
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return s.leaveSeq[list[i].ID] > s.leaveSeq[list[j].ID]
	})
	return list
}
