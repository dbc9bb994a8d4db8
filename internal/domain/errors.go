package domain

import "errors"

// Clases de error de dominio (sin dependencias externas).
// Los errores concretos son *Error y se comparan contra estas clases con errors.Is.
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrConflict     = errors.New("conflicto con el estado actual")
	ErrValidation   = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")
)

// Error error de dominio con código estable. Message forma parte del contrato con el cliente.
type Error struct {
	Kind    error
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Unwrap expone la clase: errors.Is(err, domain.ErrConflict) funciona para cualquier *Error de conflicto.
func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, code, msg string) *Error {
	return &Error{Kind: kind, Code: code, Message: msg}
}

// Identidad y sesión.
var (
	ErrUserNotFound       = newError(ErrNotFound, "USER_NOT_FOUND", "user not found")
	ErrApproverNotFound   = newError(ErrNotFound, "APPROVER_NOT_FOUND", "approver not found")
	ErrEmailAlreadyExists = newError(ErrConflict, "EMAIL_EXISTS", "email already registered")
	ErrEmployeeIDExists   = newError(ErrConflict, "EMPLOYEE_ID_EXISTS", "employee id already registered")
	ErrUserInactive       = newError(ErrConflict, "USER_INACTIVE", "user account is inactive")
	ErrInvalidCredentials = newError(ErrUnauthorized, "INVALID_CREDENTIALS", "invalid credentials")
	ErrAccountInactive    = newError(ErrForbidden, "ACCOUNT_INACTIVE", "user account is inactive")
	ErrSessionExpired     = newError(ErrUnauthorized, "SESSION_EXPIRED", "session expired or revoked")
	ErrInvalidRole        = newError(ErrValidation, "INVALID_ROLE", "role must be employee or admin")
	ErrPasswordTooShort   = newError(ErrValidation, "PASSWORD_TOO_SHORT", "password must have at least 8 characters")
)

// Asistencia.
var (
	ErrAlreadyClockedIn  = newError(ErrConflict, "ALREADY_CLOCKED_IN", "already clocked in today")
	ErrAlreadyClockedOut = newError(ErrConflict, "ALREADY_CLOCKED_OUT", "already clocked out today")
	ErrNoClockInToday    = newError(ErrNotFound, "NO_CLOCK_IN", "no clock-in record found for today")
	ErrClockOutBeforeIn  = newError(ErrValidation, "CLOCK_OUT_BEFORE_IN", "clock-out must be after clock-in")
	ErrInvalidDateRange  = newError(ErrValidation, "INVALID_DATE_RANGE", "start date must be before or equal to end date")
	ErrInvalidDate       = newError(ErrValidation, "INVALID_DATE", "dates must use the YYYY-MM-DD format")
)

// Solicitudes de ausencia.
var (
	ErrLeaveNotFound         = newError(ErrNotFound, "LEAVE_NOT_FOUND", "leave request not found")
	ErrLeaveNotOwned         = newError(ErrNotFound, "LEAVE_NOT_FOUND", "leave request not found or does not belong to user")
	ErrLeaveNotPending       = newError(ErrConflict, "LEAVE_NOT_PENDING", "only pending leave requests can be deleted")
	ErrLeaveAlreadyProcessed = newError(ErrConflict, "LEAVE_ALREADY_PROCESSED", "leave request has already been processed")
	ErrInvalidLeaveType      = newError(ErrValidation, "INVALID_LEAVE_TYPE", "invalid leave type")
	ErrInvalidLeaveStatus    = newError(ErrValidation, "INVALID_LEAVE_STATUS", "invalid leave status")
	ErrApproverNotAdmin      = newError(ErrForbidden, "APPROVER_NOT_ADMIN", "only admins can approve or reject leave requests")
)
