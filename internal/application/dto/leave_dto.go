package dto

import "time"

// CreateLeaveRequest entrada para solicitar una ausencia. Fechas YYYY-MM-DD.
type CreateLeaveRequest struct {
	LeaveType string `json:"leave_type" validate:"required"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	Reason    string `json:"reason" validate:"max=2000"`
}

// UpdateLeaveStatusRequest decisión del aprobador.
type UpdateLeaveStatusRequest struct {
	Status          string  `json:"status" validate:"required"`
	RejectionReason *string `json:"rejection_reason" validate:"omitempty,max=2000"`
}

// LeaveRequestResponse salida de una solicitud.
type LeaveRequestResponse struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	LeaveType       string     `json:"leave_type"`
	StartDate       string     `json:"start_date"`
	EndDate         string     `json:"end_date"`
	Days            int        `json:"days"`
	Reason          string     `json:"reason"`
	Status          string     `json:"status"`
	ApprovedBy      *string    `json:"approved_by"`
	ApprovedAt      *time.Time `json:"approved_at"`
	RejectionReason *string    `json:"rejection_reason"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}
