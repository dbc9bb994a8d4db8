package dto

import "time"

// ClockRequest cuerpo opcional de clock-in / clock-out.
type ClockRequest struct {
	Notes *string `json:"notes" validate:"omitempty,max=1000"`
}

// AttendanceResponse salida de una jornada. Date en formato YYYY-MM-DD.
type AttendanceResponse struct {
	ID         string     `json:"id"`
	UserID     string     `json:"user_id"`
	Date       string     `json:"date"`
	ClockIn    time.Time  `json:"clock_in"`
	ClockOut   *time.Time `json:"clock_out"`
	TotalHours *float64   `json:"total_hours"`
	Notes      *string    `json:"notes"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// TodayStatusResponse estado del día para el usuario.
type TodayStatusResponse struct {
	HasClockedIn  bool                `json:"has_clocked_in"`
	HasClockedOut bool                `json:"has_clocked_out"`
	CurrentRecord *AttendanceResponse `json:"current_record"`
}
