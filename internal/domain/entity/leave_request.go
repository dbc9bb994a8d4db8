package entity

import "time"

// Tipos de ausencia.
const (
	LeaveVacation  = "vacation"
	LeaveSick      = "sick"
	LeavePersonal  = "personal"
	LeaveEmergency = "emergency"
)

// LeaveTypes lista ordenada de tipos válidos (usada también por los reportes).
var LeaveTypes = []string{LeaveVacation, LeaveSick, LeavePersonal, LeaveEmergency}

// ValidLeaveType indica si t es un tipo de ausencia conocido.
func ValidLeaveType(t string) bool {
	for _, lt := range LeaveTypes {
		if lt == t {
			return true
		}
	}
	return false
}

// Estados de una solicitud. pending es el único estado no terminal.
const (
	LeavePending  = "pending"
	LeaveApproved = "approved"
	LeaveRejected = "rejected"
)

// LeaveStatuses lista ordenada de estados.
var LeaveStatuses = []string{LeavePending, LeaveApproved, LeaveRejected}

// LeaveRequest solicitud de ausencia sobre un rango de fechas inclusivo.
type LeaveRequest struct {
	ID              string
	UserID          string
	Type            string
	StartDate       time.Time
	EndDate         time.Time // inclusiva, EndDate >= StartDate
	Reason          string
	Status          string
	ApprovedBy      *string
	ApprovedAt      *time.Time // no nulo sii Status == approved
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsPending indica si la solicitud aún admite decisión o borrado.
func (l *LeaveRequest) IsPending() bool {
	return l.Status == LeavePending
}

// Days número de días calendario del rango, ambos extremos incluidos.
func (l *LeaveRequest) Days() int {
	return int(l.EndDate.Sub(l.StartDate).Hours()/24) + 1
}

// Decide aplica la decisión del aprobador. La transición desde un estado terminal
// la rechaza el caso de uso antes de llegar aquí.
func (l *LeaveRequest) Decide(status, approverID string, rejectionReason *string, at time.Time) {
	l.Status = status
	l.ApprovedBy = &approverID
	l.ApprovedAt = nil
	if status == LeaveApproved {
		l.ApprovedAt = &at
	}
	l.RejectionReason = rejectionReason
	l.UpdatedAt = at
}
