package dto

import "github.com/shopspring/decimal"

// ReportSummaryDTO resumen de asistencia y ausencias en un período.
// Las horas y tasas se redondean a 2 decimales.
type ReportSummaryDTO struct {
	StartDate        string                 `json:"start_date"`
	EndDate          string                 `json:"end_date"`
	WorkingDays      int                    `json:"working_days"`
	ActiveEmployees  int                    `json:"active_employees"`
	Records          int                    `json:"records"`
	CompletedRecords int                    `json:"completed_records"`
	TotalHours       decimal.Decimal        `json:"total_hours"`
	AverageHours     decimal.Decimal        `json:"average_hours"`
	LeavesByStatus   map[string]int         `json:"leaves_by_status"`
	LeavesByType     map[string]int         `json:"leaves_by_type"`
	Employees        []EmployeeSummaryDTO   `json:"employees"`
	Departments      []DepartmentSummaryDTO `json:"departments"`
}

// EmployeeSummaryDTO totales por empleado.
type EmployeeSummaryDTO struct {
	UserID            string          `json:"user_id"`
	FullName          string          `json:"full_name"`
	Department        string          `json:"department"`
	DaysPresent       int             `json:"days_present"`
	TotalHours        decimal.Decimal `json:"total_hours"`
	AverageHours      decimal.Decimal `json:"average_hours"`
	ApprovedLeaveDays int             `json:"approved_leave_days"`
}

// DepartmentSummaryDTO tasas por departamento.
type DepartmentSummaryDTO struct {
	Department     string          `json:"department"`
	Employees      int             `json:"employees"`
	DaysPresent    int             `json:"days_present"`
	AttendanceRate decimal.Decimal `json:"attendance_rate"` // porcentaje 0-100
	AverageHours   decimal.Decimal `json:"average_hours"`
}
