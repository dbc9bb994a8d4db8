// Package report agrega jornadas y solicitudes en resúmenes de solo lectura:
// totales por empleado, tasas por departamento y desglose de ausencias.
package report

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/domain/repository"
	"github.com/jhoicas/Asistencia-api/pkg/clock"
	"github.com/jhoicas/Asistencia-api/pkg/logger"
)

// NoDepartment etiqueta de los usuarios sin departamento.
const NoDepartment = "sin departamento"

var hundred = decimal.NewFromInt(100)

// UseCase agregador de reportes. No guarda estado.
type UseCase struct {
	users     repository.UserRepository
	records   repository.AttendanceRepository
	leaves    repository.LeaveRequestRepository
	clock     clock.Clock
	generator PDFGenerator
	log       *logger.Logger
}

// NewUseCase construye el agregador. generator puede ser nil si no se exporta PDF.
func NewUseCase(
	users repository.UserRepository,
	records repository.AttendanceRepository,
	leaves repository.LeaveRequestRepository,
	clk clock.Clock,
	generator PDFGenerator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{users: users, records: records, leaves: leaves, clock: clk, generator: generator, log: log.Component("report")}
}

// Summary resumen del período [start, end] (ambos inclusive). Por defecto: desde el
// primer día del mes en curso hasta hoy.
func (uc *UseCase) Summary(ctx context.Context, start, end *time.Time) (*dto.ReportSummaryDTO, error) {
	from, to, err := uc.period(start, end)
	if err != nil {
		return nil, err
	}

	users, err := uc.users.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: usuarios: %w", err)
	}
	records, err := uc.records.ListAll(ctx, repository.AttendanceFilter{StartDate: &from, EndDate: &to})
	if err != nil {
		return nil, fmt.Errorf("report: jornadas: %w", err)
	}
	leaves, err := uc.leaves.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("report: solicitudes: %w", err)
	}

	out := &dto.ReportSummaryDTO{
		StartDate:      from.Format(clock.DateLayout),
		EndDate:        to.Format(clock.DateLayout),
		WorkingDays:    WorkingDays(from, to),
		LeavesByStatus: make(map[string]int, len(entity.LeaveStatuses)),
		LeavesByType:   make(map[string]int, len(entity.LeaveTypes)),
		Employees:      []dto.EmployeeSummaryDTO{},
		Departments:    []dto.DepartmentSummaryDTO{},
	}
	for _, s := range entity.LeaveStatuses {
		out.LeavesByStatus[s] = 0
	}
	for _, t := range entity.LeaveTypes {
		out.LeavesByType[t] = 0
	}

	acc := make(map[string]*employeeAcc, len(users))
	for _, u := range users {
		acc[u.ID] = &employeeAcc{user: u}
		if u.IsActive() {
			out.ActiveEmployees++
		}
	}

	var totalHours float64
	for _, r := range records {
		out.Records++
		e := acc[r.UserID]
		if e == nil {
			continue
		}
		e.days++
		if isWeekday(r.Date) {
			e.workingDays++
		}
		if r.TotalHours != nil {
			out.CompletedRecords++
			totalHours += *r.TotalHours
			e.hours += *r.TotalHours
			e.completed++
		}
	}
	out.TotalHours = round(totalHours)
	out.AverageHours = average(totalHours, out.CompletedRecords)

	for _, l := range leaves {
		days := overlapDays(l.StartDate, l.EndDate, from, to)
		if days == 0 {
			continue
		}
		out.LeavesByStatus[l.Status]++
		out.LeavesByType[l.Type]++
		if e := acc[l.UserID]; e != nil && l.Status == entity.LeaveApproved {
			e.leaveDays += days
		}
	}

	depts := make(map[string]*departmentAcc)
	for _, u := range users {
		e := acc[u.ID]
		if !u.IsActive() && e.days == 0 && e.leaveDays == 0 {
			continue
		}
		out.Employees = append(out.Employees, dto.EmployeeSummaryDTO{
			UserID:            u.ID,
			FullName:          u.FullName,
			Department:        departmentOf(u),
			DaysPresent:       e.days,
			TotalHours:        round(e.hours),
			AverageHours:      average(e.hours, e.completed),
			ApprovedLeaveDays: e.leaveDays,
		})

		name := departmentOf(u)
		d := depts[name]
		if d == nil {
			d = &departmentAcc{}
			depts[name] = d
		}
		if u.IsActive() {
			d.employees++
		}
		d.days += e.days
		d.workingDays += e.workingDays
		d.hours += e.hours
		d.completed += e.completed
	}

	names := make([]string, 0, len(depts))
	for name := range depts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		d := depts[name]
		out.Departments = append(out.Departments, dto.DepartmentSummaryDTO{
			Department:     name,
			Employees:      d.employees,
			DaysPresent:    d.days,
			AttendanceRate: attendanceRate(d.workingDays, d.employees, out.WorkingDays),
			AverageHours:   average(d.hours, d.completed),
		})
	}

	uc.log.Debug().Str("start", out.StartDate).Str("end", out.EndDate).Int("records", out.Records).Msg("resumen generado")
	return out, nil
}

// SummaryPDF resumen renderizado como PDF. Devuelve los bytes y un nombre de archivo.
func (uc *UseCase) SummaryPDF(ctx context.Context, start, end *time.Time) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", fmt.Errorf("report: generador PDF no configurado")
	}
	summary, err := uc.Summary(ctx, start, end)
	if err != nil {
		return nil, "", err
	}
	doc, err := uc.generator.GenerateSummaryPDF(ctx, summary)
	if err != nil {
		return nil, "", fmt.Errorf("report: pdf: %w", err)
	}
	return doc, fmt.Sprintf("asistencia_%s_%s.pdf", summary.StartDate, summary.EndDate), nil
}

func (uc *UseCase) period(start, end *time.Time) (time.Time, time.Time, error) {
	today := clock.Today(uc.clock)
	to := today
	if end != nil {
		to = clock.DateOf(*end)
	}
	from := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	if start != nil {
		from = clock.DateOf(*start)
	}
	if from.After(to) {
		return time.Time{}, time.Time{}, domain.ErrInvalidDateRange
	}
	return from, to, nil
}

type employeeAcc struct {
	user        *entity.User
	days        int
	workingDays int
	completed   int
	hours       float64
	leaveDays   int
}

type departmentAcc struct {
	employees   int
	days        int
	workingDays int
	completed   int
	hours       float64
}

// WorkingDays días lunes a viernes en [from, to], ambos inclusive.
func WorkingDays(from, to time.Time) int {
	n := 0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		if isWeekday(d) {
			n++
		}
	}
	return n
}

func isWeekday(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}

// overlapDays días de [start, end] que caen dentro de [from, to].
func overlapDays(start, end, from, to time.Time) int {
	if start.Before(from) {
		start = from
	}
	if end.After(to) {
		end = to
	}
	if start.After(end) {
		return 0
	}
	return int(end.Sub(start).Hours()/24) + 1
}

// attendanceRate porcentaje de días hábiles con fichaje sobre los posibles (empleados × días hábiles).
func attendanceRate(present, employees, workingDays int) decimal.Decimal {
	possible := employees * workingDays
	if possible == 0 {
		return decimal.Zero
	}
	rate := decimal.NewFromInt(int64(present)).Mul(hundred).Div(decimal.NewFromInt(int64(possible)))
	if rate.GreaterThan(hundred) {
		rate = hundred
	}
	return rate.Round(2)
}

func average(total float64, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(total).Div(decimal.NewFromInt(int64(n))).Round(2)
}

func round(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

func departmentOf(u *entity.User) string {
	if u.Department == "" {
		return NoDepartment
	}
	return u.Department
}
