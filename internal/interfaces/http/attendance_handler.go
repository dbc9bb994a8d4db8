package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Asistencia-api/internal/application/attendance"
	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

// AttendanceHandler maneja fichajes y consultas de jornadas.
type AttendanceHandler struct {
	uc *attendance.UseCase
}

// NewAttendanceHandler construye el handler.
func NewAttendanceHandler(uc *attendance.UseCase) *AttendanceHandler {
	return &AttendanceHandler{uc: uc}
}

// ClockIn godoc
// @Summary      Registrar entrada del día
// @Description  Abre la jornada de hoy (zona horaria de la organización) para el usuario del token.
// @Tags         attendance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClockRequest  false  "notas opcionales"
// @Success      201   {object}  dto.AttendanceResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/attendance/clock-in [post]
func (h *AttendanceHandler) ClockIn(c *fiber.Ctx) error {
	var in dto.ClockRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ClockIn(c.UserContext(), GetUserID(c), in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ClockOut godoc
// @Summary      Registrar salida del día
// @Description  Cierra la jornada de hoy y calcula total_hours. Sin notas se conservan las de la entrada.
// @Tags         attendance
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ClockRequest  false  "notas opcionales"
// @Success      200   {object}  dto.AttendanceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/attendance/clock-out [post]
func (h *AttendanceHandler) ClockOut(c *fiber.Ctx) error {
	var in dto.ClockRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.ClockOut(c.UserContext(), GetUserID(c), in.Notes)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Today godoc
// @Summary      Estado de la jornada de hoy
// @Tags         attendance
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TodayStatusResponse
// @Router       /api/attendance/today [get]
func (h *AttendanceHandler) Today(c *fiber.Ctx) error {
	out, err := h.uc.GetTodayStatus(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Mine godoc
// @Summary      Mis jornadas
// @Tags         attendance
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {array}   dto.AttendanceResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/attendance/me [get]
func (h *AttendanceHandler) Mine(c *fiber.Ctx) error {
	return h.listForUser(c, GetUserID(c))
}

// ByUser godoc
// @Summary      Jornadas de un usuario (propias o, para admin, de cualquiera)
// @Tags         attendance
// @Security     Bearer
// @Produce      json
// @Param        id          path   string  true   "ID del usuario"
// @Param        start_date  query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {array}   dto.AttendanceResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/attendance/users/{id} [get]
func (h *AttendanceHandler) ByUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if id != GetUserID(c) && GetRole(c) != entity.RoleAdmin {
		return forbidden(c)
	}
	return h.listForUser(c, id)
}

func (h *AttendanceHandler) listForUser(c *fiber.Ctx, userID string) error {
	start, end, err := dateRange(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetUserAttendance(c.UserContext(), userID, start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Jornadas de todos los usuarios (admin)
// @Tags         attendance
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (inclusive)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (inclusive)"
// @Success      200  {array}   dto.AttendanceResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/attendance [get]
func (h *AttendanceHandler) List(c *fiber.Ctx) error {
	start, end, err := dateRange(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.GetAllAttendance(c.UserContext(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
