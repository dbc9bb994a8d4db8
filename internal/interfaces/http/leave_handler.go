package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/application/leave"
	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

// LeaveHandler maneja las solicitudes de ausencia.
type LeaveHandler struct {
	uc *leave.UseCase
}

// NewLeaveHandler construye el handler.
func NewLeaveHandler(uc *leave.UseCase) *LeaveHandler {
	return &LeaveHandler{uc: uc}
}

// Create godoc
// @Summary      Solicitar una ausencia
// @Tags         leave-requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLeaveRequest  true  "tipo (vacation, sick, personal, emergency), fechas YYYY-MM-DD y motivo"
// @Success      201   {object}  dto.LeaveRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leave-requests [post]
func (h *LeaveHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLeaveRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Mine godoc
// @Summary      Mis solicitudes
// @Tags         leave-requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LeaveRequestResponse
// @Router       /api/leave-requests/me [get]
func (h *LeaveHandler) Mine(c *fiber.Ctx) error {
	out, err := h.uc.ListForUser(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ByUser godoc
// @Summary      Solicitudes de un usuario (propias o, para admin, de cualquiera)
// @Tags         leave-requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del usuario"
// @Success      200  {array}   dto.LeaveRequestResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leave-requests/users/{id} [get]
func (h *LeaveHandler) ByUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if id != GetUserID(c) && GetRole(c) != entity.RoleAdmin {
		return forbidden(c)
	}
	out, err := h.uc.ListForUser(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Detalle de una solicitud (dueño o admin)
// @Tags         leave-requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.LeaveRequestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leave-requests/{id} [get]
func (h *LeaveHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	// Un empleado no distingue solicitudes ajenas de inexistentes.
	if out.UserID != GetUserID(c) && GetRole(c) != entity.RoleAdmin {
		return respondError(c, domain.ErrLeaveNotFound)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Todas las solicitudes (admin)
// @Tags         leave-requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LeaveRequestResponse
// @Router       /api/leave-requests [get]
func (h *LeaveHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListAll(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Pending godoc
// @Summary      Solicitudes pendientes de decisión (admin)
// @Tags         leave-requests
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LeaveRequestResponse
// @Router       /api/leave-requests/pending [get]
func (h *LeaveHandler) Pending(c *fiber.Ctx) error {
	out, err := h.uc.ListPending(c.UserContext())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Aprobar o rechazar una solicitud (admin)
// @Description  El aprobador es el usuario del token. Solo se decide una vez: una solicitud ya procesada devuelve 409.
// @Tags         leave-requests
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                        true  "ID de la solicitud"
// @Param        body  body  dto.UpdateLeaveStatusRequest  true  "status (approved|rejected) y rejection_reason opcional"
// @Success      200   {object}  dto.LeaveRequestResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/leave-requests/{id}/status [patch]
func (h *LeaveHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateLeaveStatusRequest
	if err := bindBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), GetUserID(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar una solicitud propia pendiente
// @Tags         leave-requests
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/leave-requests/{id} [delete]
func (h *LeaveHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id"), GetUserID(c)); err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.SuccessResponse{Success: true})
}
