package report_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Asistencia-api/internal/application/dto"
	"github.com/jhoicas/Asistencia-api/internal/application/report"
	"github.com/jhoicas/Asistencia-api/internal/domain"
	"github.com/jhoicas/Asistencia-api/internal/domain/entity"
	"github.com/jhoicas/Asistencia-api/internal/infrastructure/memory"
	"github.com/jhoicas/Asistencia-api/pkg/clock"
	"github.com/jhoicas/Asistencia-api/pkg/logger"
)

type fakePDF struct {
	got *dto.ReportSummaryDTO
	err error
}

func (f *fakePDF) GenerateSummaryPDF(_ context.Context, s *dto.ReportSummaryDTO) ([]byte, error) {
	f.got = s
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.3"), nil
}

func day(d int) time.Time { return time.Date(2024, 1, d, 0, 0, 0, 0, time.UTC) }

func at(d, h int) time.Time { return time.Date(2024, 1, d, h, 0, 0, 0, time.UTC) }

type seeded struct {
	store              *memory.Store
	ana, luis, eva, ex *entity.User
}

func seed(t *testing.T) *seeded {
	t.Helper()
	ctx := context.Background()
	s := &seeded{store: memory.NewStore()}
	mk := func(name, dept string, active bool) *entity.User {
		u := &entity.User{ID: entity.NewID(), Email: name + "@acme.test", FullName: name, Role: entity.RoleEmployee, Department: dept, Active: active}
		require.NoError(t, s.store.Users().Create(ctx, u))
		return u
	}
	s.ana = mk("Ana", "Ventas", true)
	s.luis = mk("Luis", "Ventas", true)
	s.eva = mk("Eva", "", true)
	s.ex = mk("Zoe", "Ventas", false)

	closed := func(u *entity.User, d int) {
		rec := &entity.AttendanceRecord{ID: entity.NewID(), UserID: u.ID, Date: day(d), ClockIn: at(d, 9), CreatedAt: at(d, 9), UpdatedAt: at(d, 9)}
		rec.Close(at(d, 17), nil)
		require.NoError(t, s.store.Attendance().Create(ctx, rec))
	}
	closed(s.ana, 15)
	closed(s.ana, 16)
	require.NoError(t, s.store.Attendance().Create(ctx, &entity.AttendanceRecord{
		ID: entity.NewID(), UserID: s.luis.ID, Date: day(15), ClockIn: at(15, 8), CreatedAt: at(15, 8), UpdatedAt: at(15, 8),
	}))
	closed(s.eva, 20) // sábado, fuera del período

	leave := func(u *entity.User, typ, status string, from, to int) {
		require.NoError(t, s.store.Leaves().Create(ctx, &entity.LeaveRequest{
			ID: entity.NewID(), UserID: u.ID, Type: typ, StartDate: day(from), EndDate: day(to), Status: status,
			CreatedAt: at(from, 1), UpdatedAt: at(from, 1),
		}))
	}
	leave(s.ana, entity.LeaveVacation, entity.LeaveApproved, 18, 22)
	leave(s.luis, entity.LeaveSick, entity.LeavePending, 10, 12)
	leave(s.eva, entity.LeavePersonal, entity.LeaveRejected, 19, 19)
	return s
}

func newUseCase(s *seeded, gen report.PDFGenerator) *report.UseCase {
	clk := clock.NewFixed(at(25, 12))
	return report.NewUseCase(s.store.Users(), s.store.Attendance(), s.store.Leaves(), clk, gen, logger.Nop())
}

func TestSummary(t *testing.T) {
	s := seed(t)
	uc := newUseCase(s, nil)
	from, to := day(15), day(19)

	out, err := uc.Summary(context.Background(), &from, &to)
	require.NoError(t, err)

	assert.Equal(t, "2024-01-15", out.StartDate)
	assert.Equal(t, "2024-01-19", out.EndDate)
	assert.Equal(t, 5, out.WorkingDays)
	assert.Equal(t, 3, out.ActiveEmployees)
	assert.Equal(t, 3, out.Records)
	assert.Equal(t, 2, out.CompletedRecords)
	assert.Equal(t, "16", out.TotalHours.String())
	assert.Equal(t, "8", out.AverageHours.String())

	assert.Equal(t, map[string]int{"pending": 0, "approved": 1, "rejected": 1}, out.LeavesByStatus)
	assert.Equal(t, map[string]int{"vacation": 1, "sick": 0, "personal": 1, "emergency": 0}, out.LeavesByType)

	require.Len(t, out.Employees, 3, "los inactivos sin actividad no aparecen")
	ana := out.Employees[0]
	assert.Equal(t, s.ana.ID, ana.UserID)
	assert.Equal(t, 2, ana.DaysPresent)
	assert.Equal(t, "16", ana.TotalHours.String())
	assert.Equal(t, "8", ana.AverageHours.String())
	assert.Equal(t, 2, ana.ApprovedLeaveDays, "solo los días de la ausencia dentro del período")
	assert.Equal(t, report.NoDepartment, out.Employees[1].Department)
	luis := out.Employees[2]
	assert.Equal(t, 1, luis.DaysPresent)
	assert.Equal(t, "0", luis.AverageHours.String(), "una jornada abierta no suma horas")

	require.Len(t, out.Departments, 2)
	ventas := out.Departments[0]
	assert.Equal(t, "Ventas", ventas.Department)
	assert.Equal(t, 2, ventas.Employees)
	assert.Equal(t, 3, ventas.DaysPresent)
	assert.Equal(t, "30", ventas.AttendanceRate.String())
	assert.Equal(t, "8", ventas.AverageHours.String())
	assert.Equal(t, report.NoDepartment, out.Departments[1].Department)
	assert.Equal(t, "0", out.Departments[1].AttendanceRate.String())
}

func TestSummary_PeriodoPorDefectoYRangoInvalido(t *testing.T) {
	s := seed(t)
	uc := newUseCase(s, nil)

	out, err := uc.Summary(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-01", out.StartDate)
	assert.Equal(t, "2024-01-25", out.EndDate)
	assert.Equal(t, 4, out.Records)

	from, to := day(20), day(10)
	_, err = uc.Summary(context.Background(), &from, &to)
	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

func TestSummary_SinDatos(t *testing.T) {
	uc := report.NewUseCase(memory.NewStore().Users(), memory.NewStore().Attendance(), memory.NewStore().Leaves(),
		clock.NewFixed(at(10, 9)), nil, logger.Nop())
	out, err := uc.Summary(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.NotNil(t, out.Employees)
	assert.Empty(t, out.Employees)
	assert.Empty(t, out.Departments)
	assert.Equal(t, "0", out.AverageHours.String())
}

func TestSummaryPDF(t *testing.T) {
	s := seed(t)
	gen := &fakePDF{}
	uc := newUseCase(s, gen)
	from, to := day(15), day(19)

	doc, name, err := uc.SummaryPDF(context.Background(), &from, &to)
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), doc)
	assert.Equal(t, "asistencia_2024-01-15_2024-01-19.pdf", name)
	require.NotNil(t, gen.got)
	assert.Equal(t, 3, gen.got.Records)

	gen.err = errors.New("boom")
	_, _, err = uc.SummaryPDF(context.Background(), &from, &to)
	assert.Error(t, err)

	_, _, err = newUseCase(s, nil).SummaryPDF(context.Background(), &from, &to)
	assert.Error(t, err)
}

func TestWorkingDays(t *testing.T) {
	assert.Equal(t, 5, report.WorkingDays(day(15), day(21)))
	assert.Equal(t, 0, report.WorkingDays(day(20), day(21)))
	assert.Equal(t, 1, report.WorkingDays(day(15), day(15)))
	assert.Equal(t, 23, report.WorkingDays(day(1), day(31)))
}
