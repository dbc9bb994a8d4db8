package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Asistencia-api/internal/application/attendance"
	"github.com/jhoicas/Asistencia-api/internal/application/auth"
	"github.com/jhoicas/Asistencia-api/internal/application/leave"
	"github.com/jhoicas/Asistencia-api/internal/application/report"
	"github.com/jhoicas/Asistencia-api/internal/application/usecase"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC       *auth.AuthUseCase
	AttendanceUC *attendance.UseCase
	LeaveUC      *leave.UseCase
	UserUC       *usecase.UserUseCase
	ReportUC     *report.UseCase
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	adminOnly := RequireRole(entity.RoleAdmin)

	// Auth (login público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token con sesión vigente)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret, deps.AuthUC))
	protected.Post("/auth/logout", authHandler.Logout)
	protected.Get("/auth/me", authHandler.Me)

	// Asistencia
	attendanceHandler := NewAttendanceHandler(deps.AttendanceUC)
	att := protected.Group("/attendance")
	att.Post("/clock-in", attendanceHandler.ClockIn)
	att.Post("/clock-out", attendanceHandler.ClockOut)
	att.Get("/today", attendanceHandler.Today)
	att.Get("/me", attendanceHandler.Mine)
	att.Get("/users/:id", attendanceHandler.ByUser)
	att.Get("/", adminOnly, attendanceHandler.List)

	// Solicitudes de ausencia
	leaveHandler := NewLeaveHandler(deps.LeaveUC)
	leaves := protected.Group("/leave-requests")
	leaves.Post("/", leaveHandler.Create)
	leaves.Get("/me", leaveHandler.Mine)
	leaves.Get("/users/:id", leaveHandler.ByUser)
	leaves.Get("/pending", adminOnly, leaveHandler.Pending)
	leaves.Get("/", adminOnly, leaveHandler.List)
	leaves.Get("/:id", leaveHandler.Get)
	leaves.Patch("/:id/status", adminOnly, leaveHandler.UpdateStatus)
	leaves.Delete("/:id", leaveHandler.Delete)

	// Usuarios
	userHandler := NewUserHandler(deps.UserUC)
	users := protected.Group("/users")
	users.Post("/", adminOnly, userHandler.Create)
	users.Get("/", adminOnly, userHandler.List)
	users.Get("/:id", userHandler.GetByID)
	users.Patch("/:id", adminOnly, userHandler.Update)
	users.Patch("/:id/active", adminOnly, userHandler.SetActive)

	// Reportes
	reportHandler := NewReportHandler(deps.ReportUC)
	reports := protected.Group("/reports", adminOnly)
	reports.Get("/summary", reportHandler.Summary)
	reports.Get("/summary.pdf", reportHandler.SummaryPDF)
}
