package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Asistencia-api/internal/application/report"
)

// ReportHandler expone los resúmenes de asistencia (admin).
type ReportHandler struct {
	uc *report.UseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.UseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// Summary godoc
// @Summary      Resumen de asistencia y ausencias
// @Description  Totales por empleado, tasas por departamento y desglose de solicitudes.
//               Período por defecto: del primer día del mes a hoy.
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.ReportSummaryDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/summary [get]
func (h *ReportHandler) Summary(c *fiber.Ctx) error {
	start, end, err := dateRange(c)
	if err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Summary(c.UserContext(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SummaryPDF godoc
// @Summary      Resumen de asistencia en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}    binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/reports/summary.pdf [get]
func (h *ReportHandler) SummaryPDF(c *fiber.Ctx) error {
	start, end, err := dateRange(c)
	if err != nil {
		return respondError(c, err)
	}
	doc, filename, err := h.uc.SummaryPDF(c.UserContext(), start, end)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(doc)
}
